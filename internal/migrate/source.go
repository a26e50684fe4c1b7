// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package migrate

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/SatoruFF/npack/internal/modload"
	"github.com/SatoruFF/npack/internal/snapshot"
)

// Migration holds the exported procedures of one migration script. Down may
// be nil for irreversible migrations.
type Migration struct {
	Up   func(tx *sql.Tx) error
	Down func(tx *sql.Tx) error
}

// Source is the pluggable migration source contract the client consumes.
type Source interface {
	// Migrations enumerates the available migration identifiers in
	// ascending order.
	Migrations() ([]string, error)

	// Name maps an identifier to its display name.
	Name(id string) string

	// Fetch returns the exported procedures of the identified migration.
	Fetch(id string) (Migration, error)
}

// DirSource serves migrations from a real directory for unpackaged runs.
//
// The directory content is collected into a private snapshot store once, so
// fetching goes through the same loader pipeline as the packaged form.
type DirSource struct {
	store *StoreSource
}

// NewDirSource collects the migration scripts below dir.
func NewDirSource(dir string) (*DirSource, error) {
	records, err := snapshot.CollectFS(os.DirFS(dir), snapshot.MigrationsSegment)
	if err != nil {
		return nil, fmt.Errorf("collect migrations from %s: %w", dir, err)
	}

	store, err := snapshot.New(records, snapshot.Options{})
	if err != nil {
		return nil, fmt.Errorf("build migration store: %w", err)
	}

	source, err := NewStoreSource(store, modload.New(store))
	if err != nil {
		return nil, err
	}

	return &DirSource{store: source}, nil
}

// Migrations implements [Source].
func (s *DirSource) Migrations() ([]string, error) {
	return s.store.Migrations()
}

// Name implements [Source].
func (s *DirSource) Name(id string) string {
	return s.store.Name(id)
}

// Fetch implements [Source].
func (s *DirSource) Fetch(id string) (Migration, error) {
	return s.store.Fetch(id)
}
