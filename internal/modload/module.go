// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package modload

import (
	"reflect"
)

// Exports maps the exported top-level identifiers of an executed script to
// their values.
type Exports map[string]reflect.Value

// Value returns the export with the given name.
func (e Exports) Value(name string) (reflect.Value, bool) {
	value, ok := e[name]
	return value, ok
}

// Object returns the exports as a plain object, the form handed to scripts
// that require this module through the dependency resolver.
func (e Exports) Object() map[string]any {
	object := make(map[string]any, len(e))

	for name, value := range e {
		object[name] = value.Interface()
	}

	return object
}

// Module is a script loaded from the virtual store, executed exactly once
// per process.
type Module struct {
	// Key is the identifier the module was requested with.
	Key string

	// Path is the canonical store path the key resolved to.
	Path string

	// Pkg is the script's declared package name.
	Pkg string

	// Exports holds the script's exported values.
	Exports Exports
}
