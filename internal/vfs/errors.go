// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"errors"
	"io/fs"
)

var (
	// ErrFileNotExist is returned if a path neither virtualizes nor exists
	// on the delegate filesystem.
	ErrFileNotExist = fs.ErrNotExist

	// ErrFileInvalid is returned if a file is invalid for the requested
	// operation.
	ErrFileInvalid = fs.ErrInvalid

	// ErrFileNotDir is returned if a directory operation hits a virtualized
	// regular file.
	ErrFileNotDir = errors.New("not a directory")
)

// PathError records an error and the operation and file path that caused it.
type PathError = fs.PathError
