// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package migrate

import (
	"errors"
)

var (
	// ErrNoMigrations is returned if a rollback is requested and nothing has
	// been applied.
	ErrNoMigrations = errors.New("no applied migrations")

	// ErrDuplicateName is returned if two migration scripts share a
	// filename. Identifiers must be unique within the migrations namespace.
	ErrDuplicateName = errors.New("duplicate migration name")

	// ErrMissingProcedure is returned if a migration script does not export
	// the expected procedure.
	ErrMissingProcedure = errors.New("migration procedure missing")

	// ErrBadProcedure is returned if an exported migration procedure has the
	// wrong signature.
	ErrBadProcedure = errors.New("migration procedure has wrong signature")
)
