// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package migrate

import (
	"database/sql"
	"fmt"
	"path"
	"strings"

	"github.com/SatoruFF/npack/internal/modload"
	"github.com/SatoruFF/npack/internal/snapshot"
)

var _ Source = (*StoreSource)(nil)

// StoreSource exposes the module loader as a migration source. It is the
// single integration point between the virtual filesystem core and the
// migration client's plugin contract.
type StoreSource struct {
	store  *snapshot.Store
	loader *modload.Loader
	ids    []string
}

// NewStoreSource enumerates the migration scripts embedded in the store.
//
// Identifiers are the script filenames under the migrations namespace, in
// ascending order. Filename-only matching makes a colliding name ambiguous,
// so duplicates are rejected here with [ErrDuplicateName] instead of
// resolving silently to one of the contenders.
func NewStoreSource(store *snapshot.Store, loader *modload.Loader) (*StoreSource, error) {
	marker := "/" + snapshot.MigrationsSegment + "/"
	seen := map[string]string{}

	var ids []string

	for _, key := range store.Paths() {
		idx := strings.LastIndex(key, marker)
		if idx < 0 {
			continue
		}

		name := key[idx+len(marker):]
		if strings.Contains(name, "/") || !strings.HasSuffix(name, ".go") {
			continue
		}

		if previous, exists := seen[name]; exists {
			return nil, fmt.Errorf("%w: %s in %s and %s",
				ErrDuplicateName, name, previous, key)
		}

		seen[name] = key
		ids = append(ids, name)
	}

	return &StoreSource{
		store:  store,
		loader: loader,
		ids:    ids,
	}, nil
}

// Migrations implements [Source]. Store paths are already sorted, so the
// identifiers derived from them are as well.
func (s *StoreSource) Migrations() ([]string, error) {
	return s.ids, nil
}

// Name implements [Source]. Identifiers are their own display names.
func (s *StoreSource) Name(id string) string {
	return id
}

// Fetch implements [Source]. The script is loaded through the module loader
// and its exported Up and Down procedures are extracted.
func (s *StoreSource) Fetch(id string) (Migration, error) {
	module, err := s.loader.Load(id)
	if err != nil {
		return Migration{}, fmt.Errorf("fetch migration %s: %w", id, err)
	}

	up, err := procedure(module, "Up")
	if err != nil {
		return Migration{}, err
	}

	if up == nil {
		return Migration{}, fmt.Errorf("%w: %s exports no Up", ErrMissingProcedure, id)
	}

	down, err := procedure(module, "Down")
	if err != nil {
		return Migration{}, err
	}

	return Migration{Up: up, Down: down}, nil
}

// procedure extracts an exported migration procedure by name. A missing
// export returns nil without error; the caller decides whether it is
// required.
func procedure(module *modload.Module, name string) (func(tx *sql.Tx) error, error) {
	value, ok := module.Exports.Value(name)
	if !ok {
		return nil, nil
	}

	fn, ok := value.Interface().(func(*sql.Tx) error)
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s is %T, want func(*sql.Tx) error",
			ErrBadProcedure, module.Key, name, value.Interface())
	}

	return fn, nil
}

// Virtualizes reports whether the given migration directory reference is
// answered by the store, which is what lets [NewClient] swap a configured
// directory for a store-backed source.
func Virtualizes(store *snapshot.Store, dir string) bool {
	if dir == "" {
		return false
	}

	if path.Base(store.Normalize(dir)) != snapshot.MigrationsSegment {
		return false
	}

	_, ok := store.ListChildren(dir)

	return ok
}
