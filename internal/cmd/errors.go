// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"errors"
	"flag"
	"fmt"
)

var (
	// ErrHelp is returned if help or version output is requested.
	ErrHelp = flag.ErrHelp

	// ErrReadBuildInfo is returned if build info cannot be read.
	ErrReadBuildInfo = errors.New("cannot read build info")

	// ErrNoSnapshot is returned if neither flags nor config name a
	// snapshot file.
	ErrNoSnapshot = errors.New("no snapshot given (use -snapshot)")

	// ErrNoEntry is returned if neither flags nor config name an entry
	// module.
	ErrNoEntry = errors.New("no entry module given")

	// ErrNoDatabase is returned if migrations are requested without a
	// database connection.
	ErrNoDatabase = errors.New("no database connection given (use -db)")

	// ErrUnknownSnapshotFormat is returned for snapshot files with an
	// unsupported extension.
	ErrUnknownSnapshotFormat = errors.New("unknown snapshot format")

	// ErrNoMainExport is returned if the entry module does not export a
	// Main procedure.
	ErrNoMainExport = errors.New("entry module exports no Main")

	// ErrBadMainExport is returned if the exported Main has an
	// unsupported signature.
	ErrBadMainExport = errors.New("unsupported Main signature")
)

// ParseArgsError wraps errors that occur during argument parsing.
type ParseArgsError struct {
	err error
	msg string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
