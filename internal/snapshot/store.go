// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot

import (
	"fmt"
	"slices"
)

// MigrationsSegment is the single well-known path segment under which
// filename-only matching applies. Migration scripts are discovered and
// loaded dynamically at run time, so requests for them arrive with the
// least predictable path prefixes.
const MigrationsSegment = "migrations"

// Record is a single embedded asset. It is created once at packaging time
// and never mutated afterwards.
type Record struct {
	// Path is the canonical path the asset had at packaging time.
	Path string

	// Data is the raw file content.
	Data []byte

	// Text records whether the content was collected as UTF-8 text. It
	// controls how the asset map codec serializes the content.
	Text bool
}

// Options control path canonicalization for a store.
type Options struct {
	// BasePrefix is a process-supplied directory prefix stripped during
	// normalization, e.g. the mount point the application believes it is
	// installed under.
	BasePrefix string

	// OutputSegments overrides [DefaultOutputSegments] when non-nil.
	OutputSegments []string
}

func (o Options) outputSegments() []string {
	if o.OutputSegments != nil {
		return o.OutputSegments
	}

	return DefaultOutputSegments
}

// Store is the flat, immutable map from canonical path to asset record. It
// is built once before any application code runs and is safe for concurrent
// readers without locking.
type Store struct {
	records map[string]*Record
	paths   []string
	opts    Options
}

// New builds a store from the given records.
//
// Record paths are normalized with the given options. Two records that
// normalize to the same canonical path are an error, wrapping
// [ErrDuplicatePath]: collisions are rejected at build time instead of
// resolving silently to one of the contenders.
func New(records []Record, opts Options) (*Store, error) {
	store := &Store{
		records: make(map[string]*Record, len(records)),
		paths:   make([]string, 0, len(records)),
		opts:    opts,
	}

	for _, record := range records {
		if record.Path == "" {
			return nil, ErrEmptyPath
		}

		canonical := normalize(record.Path, opts)

		if _, exists := store.records[canonical]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePath, canonical)
		}

		stored := record
		stored.Path = canonical

		store.records[canonical] = &stored
		store.paths = append(store.paths, canonical)
	}

	slices.Sort(store.paths)

	return store, nil
}

// Normalize returns the canonical form of the given raw path under this
// store's options.
func (s *Store) Normalize(raw string) string {
	return normalize(raw, s.opts)
}

// Get returns the record stored under the exact canonical path.
func (s *Store) Get(canonical string) (*Record, bool) {
	record, ok := s.records[canonical]
	return record, ok
}

// Paths returns all canonical paths in lexical order.
func (s *Store) Paths() []string {
	return slices.Clone(s.paths)
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	return len(s.records)
}
