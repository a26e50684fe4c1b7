// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package modload

import (
	"errors"
	"fmt"
)

var (
	// ErrModuleNotFound is returned if the requested module key does not
	// resolve to any record in the virtual store.
	ErrModuleNotFound = errors.New("module not found in virtual store")

	// ErrUnsupportedSyntax is returned if a script uses a linkage construct
	// outside the supported statement subset.
	ErrUnsupportedSyntax = errors.New("unsupported linkage syntax")

	// ErrImportCycle is returned if scripts require each other, directly or
	// transitively.
	ErrImportCycle = errors.New("module import cycle")

	// ErrNotText is returned if the stored module content is not text.
	ErrNotText = errors.New("module content is not text")
)

// excerptLen bounds how much of the offending source an [ExecError] carries.
const excerptLen = 160

// ExecError records a script execution failure together with the offending
// module key and a truncated source excerpt.
type ExecError struct {
	Key     string
	Excerpt string
	Err     error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execute module %s: %v (source: %s)",
		e.Key, e.Err, e.Excerpt)
}

func (e *ExecError) Is(other error) bool {
	_, ok := other.(*ExecError)
	return ok
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// excerpt truncates source text for error reporting.
func excerpt(source string) string {
	if len(source) <= excerptLen {
		return source
	}

	return source[:excerptLen] + "..."
}
