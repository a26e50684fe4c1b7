// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package modload

import (
	"fmt"
	"log/slog"
	"os"
	"path"
	"slices"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/SatoruFF/npack/internal/snapshot"
	"github.com/SatoruFF/npack/internal/vfs"
	"golang.org/x/sync/singleflight"
)

// Loader loads, rewrites, executes and caches scripts found in the snapshot
// store.
//
// Module keys are resolved against the migrations namespace; see
// [Loader.Load]. The cache is the only mutable state. Top-level loads for
// the same canonical path are synchronized, so a script executes at most
// once under parallel [Loader.Load] calls. Nested requires run on the
// requesting goroutine instead of entering that synchronization.
type Loader struct {
	store *snapshot.Store
	fsys  *vfs.FS

	group singleflight.Group

	mu    sync.RWMutex
	cache map[string]*Module
}

// New creates a loader over the given store. Scripts observe the store
// through a virtual filesystem that falls through to the host root.
func New(store *snapshot.Store) *Loader {
	return NewWithFS(store, vfs.New(store, os.DirFS("/")))
}

// NewWithFS creates a loader whose scripts observe the given filesystem,
// usually the process-wide installed one.
func NewWithFS(store *snapshot.Store, fsys *vfs.FS) *Loader {
	return &Loader{
		store: store,
		fsys:  fsys,
		cache: make(map[string]*Module),
	}
}

// Load loads the module with the given key.
//
// The key is resolved against the migrations namespace root. A bare filename
// like "003_add_index.go" finds the stored migration regardless of the
// prefix it was packaged under. A key without extension is retried with
// ".go" appended. Absence is [ErrModuleNotFound].
//
// Repeated calls for the same module return the cached module without
// executing the script again.
func (l *Loader) Load(key string) (*Module, error) {
	record, ok := l.lookup(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, key)
	}

	return l.loadRecord(record, key, nil)
}

// LoadPath loads a script by store path instead of namespace key. It backs
// the launcher's entry-point execution, where the script lives outside the
// migrations namespace.
func (l *Loader) LoadPath(raw string) (*Module, error) {
	record, ok := l.store.Resolve(raw)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrModuleNotFound, raw)
	}

	return l.loadRecord(record, raw, nil)
}

// lookup resolves a module key against the namespace root.
func (l *Loader) lookup(key string) (*snapshot.Record, bool) {
	ref := path.Join("/", snapshot.MigrationsSegment, key)

	if record, ok := l.store.Resolve(ref); ok {
		return record, true
	}

	if path.Ext(ref) == "" {
		if record, ok := l.store.Resolve(ref + ".go"); ok {
			return record, true
		}
	}

	return nil, false
}

func (l *Loader) cached(canonical string) *Module {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.cache[canonical]
}

func (l *Loader) loadRecord(
	record *snapshot.Record,
	key string,
	stack []string,
) (*Module, error) {
	canonical := record.Path

	if module := l.cached(canonical); module != nil {
		return module, nil
	}

	if slices.Contains(stack, canonical) {
		return nil, fmt.Errorf("%w: %s",
			ErrImportCycle, strings.Join(append(stack, canonical), " -> "))
	}

	// Nested loads run directly on the requesting goroutine. Only top-level
	// loads enter singleflight, so no goroutine ever holds one key while
	// waiting on another and mutually-requiring scripts cannot deadlock two
	// parallel loads.
	if len(stack) > 0 {
		return l.buildCached(record, key, stack)
	}

	result, err, _ := l.group.Do(canonical, func() (any, error) {
		if module := l.cached(canonical); module != nil {
			return module, nil
		}

		return l.buildCached(record, key, stack)
	})
	if err != nil {
		return nil, err
	}

	return result.(*Module), nil
}

func (l *Loader) buildCached(
	record *snapshot.Record,
	key string,
	stack []string,
) (*Module, error) {
	module, err := l.build(record, key, append(stack, record.Path))
	if err != nil {
		return nil, err
	}

	l.mu.Lock()
	l.cache[record.Path] = module
	l.mu.Unlock()

	return module, nil
}

// build runs the Resolving, Rewriting and Executing stages for one module.
func (l *Loader) build(
	record *snapshot.Record,
	key string,
	stack []string,
) (*Module, error) {
	if !utf8.Valid(record.Data) {
		return nil, fmt.Errorf("%w: %s", ErrNotText, key)
	}

	source := string(record.Data)

	translated, err := rewrite(source, ambientServes)
	if err != nil {
		return nil, fmt.Errorf("rewrite module %s: %w", key, err)
	}

	sandbox, err := newSandbox(l.resolverFor(stack), l.fsys)
	if err != nil {
		return nil, fmt.Errorf("sandbox for module %s: %w", key, err)
	}

	if _, err := sandbox.Eval(translated.source); err != nil {
		execErr := &ExecError{Key: key, Excerpt: excerpt(source), Err: err}

		slog.Error("Module execution failed",
			slog.String("module", key),
			slog.String("source", execErr.Excerpt),
			slog.Any("error", err))

		return nil, execErr
	}

	exports, err := extractExports(sandbox, translated.exports)
	if err != nil {
		return nil, &ExecError{Key: key, Excerpt: excerpt(source), Err: err}
	}

	slog.Debug("Loaded module",
		slog.String("module", key),
		slog.String("path", record.Path),
		slog.Int("exports", len(exports)))

	return &Module{
		Key:     key,
		Path:    record.Path,
		Pkg:     translated.pkg,
		Exports: exports,
	}, nil
}

// resolverFor returns the dependency resolver granted to scripts executing
// with the given load stack.
//
// A reference that resolves in the store is loaded recursively through this
// loader. Anything else degrades to an empty placeholder object: migration
// scripts are expected to tolerate optional dependencies being absent in a
// packaged environment.
func (l *Loader) resolverFor(stack []string) resolverFunc {
	return func(ref string) map[string]any {
		record, ok := l.lookup(ref)
		if !ok {
			slog.Warn("Optional module dependency missing, substituting empty object",
				slog.String("ref", ref))

			return map[string]any{}
		}

		module, err := l.loadRecord(record, ref, stack)
		if err != nil {
			slog.Warn("Optional module dependency failed to load",
				slog.String("ref", ref),
				slog.Any("error", err))

			return map[string]any{}
		}

		return module.Exports.Object()
	}
}
