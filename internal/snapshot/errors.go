// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot

import (
	"errors"
)

var (
	// ErrDuplicatePath is returned if two collected assets normalize to the
	// same canonical path. Uniqueness within the store is an explicit
	// constraint, not a silent last-writer-wins.
	ErrDuplicatePath = errors.New("duplicate canonical path")

	// ErrEmptyPath is returned if an asset record has an empty path.
	ErrEmptyPath = errors.New("asset path must not be empty")

	// ErrUnknownEncoding is returned if an asset map entry declares an
	// encoding other than base64 or utf8.
	ErrUnknownEncoding = errors.New("unknown asset encoding")
)
