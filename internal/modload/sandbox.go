// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package modload

import (
	"fmt"
	"path"
	"reflect"

	"github.com/SatoruFF/npack/internal/vfs"
	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// resolverFunc serves a module reference requested by an executing script.
// It returns the exports object of the referenced module, or an empty
// placeholder when the reference cannot be served.
type resolverFunc func(ref string) map[string]any

// newSandbox constructs the isolated scope a rewritten script runs in: a
// fresh interpreter without environment or GOPATH, the host's ambient symbol
// table with its filesystem read surface rebound to fsys, and the given
// dependency resolver as the only way to reach other modules.
func newSandbox(resolve resolverFunc, fsys *vfs.FS) (*interp.Interpreter, error) {
	sandbox := interp.New(interp.Options{
		Env: []string{},
	})

	if err := sandbox.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("load ambient symbols: %w", err)
	}

	// Shadow the ambient os read functions so scripts see packaged assets
	// at their original paths. Misses fall through to the delegate inside
	// fsys.
	if fsys != nil {
		err := sandbox.Use(interp.Exports{
			"os/os": {
				"Open":     reflect.ValueOf(fsys.Open),
				"ReadFile": reflect.ValueOf(fsys.ReadFile),
				"ReadDir":  reflect.ValueOf(fsys.ReadDir),
				"Stat":     reflect.ValueOf(fsys.Stat),
			},
		})
		if err != nil {
			return nil, fmt.Errorf("bind virtual filesystem: %w", err)
		}
	}

	err := sandbox.Use(interp.Exports{
		resolverImportPath + "/rt": {
			"Resolve": reflect.ValueOf(resolve),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("bind resolver: %w", err)
	}

	return sandbox, nil
}

// extractExports evaluates the recorded exported identifiers of an executed
// script and collects their values.
func extractExports(sandbox *interp.Interpreter, names []string) (Exports, error) {
	exports := make(Exports, len(names))

	for _, name := range names {
		value, err := sandbox.Eval("main." + name)
		if err != nil {
			return nil, fmt.Errorf("extract export %s: %w", name, err)
		}

		exports[name] = value
	}

	return exports, nil
}

// ambientServes reports whether the host's ambient symbol table can serve an
// import path directly.
func ambientServes(importPath string) bool {
	_, ok := stdlib.Symbols[importPath+"/"+path.Base(importPath)]
	return ok
}
