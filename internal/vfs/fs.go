// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"io/fs"
	"slices"
	"strings"

	"github.com/SatoruFF/npack/internal/snapshot"
)

var (
	_ fs.FS         = (*FS)(nil)
	_ fs.ReadFileFS = (*FS)(nil)
	_ fs.ReadDirFS  = (*FS)(nil)
	_ fs.StatFS     = (*FS)(nil)
)

// FS answers filesystem operations from the snapshot store and falls through
// to the delegate filesystem for paths that do not virtualize.
//
// The store is immutable, so an FS is safe for concurrent use without
// locking.
type FS struct {
	store    *snapshot.Store
	delegate fs.FS
}

// New creates an FS over the given store. Unmatched operations are delegated
// to delegate, which may be nil for a fully sealed filesystem where misses
// report [ErrFileNotExist].
func New(store *snapshot.Store, delegate fs.FS) *FS {
	return &FS{
		store:    store,
		delegate: delegate,
	}
}

// Store returns the underlying snapshot store.
func (fsys *FS) Store() *snapshot.Store {
	return fsys.store
}

// Virtualizes reports whether the path is answered from the store, either as
// a file or as a synthesized directory.
func (fsys *FS) Virtualizes(name string) bool {
	if _, ok := fsys.store.Resolve(name); ok {
		return true
	}

	_, ok := fsys.store.ListChildren(name)

	return ok
}

// Open opens the named file.
//
// Virtualized files read from the embedded content. Virtualized directories
// support [fs.ReadDirFile]. Anything else is opened on the delegate.
func (fsys *FS) Open(name string) (fs.File, error) {
	if record, ok := fsys.store.Resolve(name); ok {
		return newOpenFile(record.Path, record.Data), nil
	}

	if _, ok := fsys.store.ListChildren(name); ok {
		entries, err := fsys.ReadDir(name)
		if err != nil {
			return nil, err
		}

		return newOpenDir(fsys.store.Normalize(name), entries), nil
	}

	if fsys.delegate == nil {
		return nil, &PathError{Op: "open", Path: name, Err: ErrFileNotExist}
	}

	return fsys.delegate.Open(delegateName(name)) //nolint:wrapcheck
}

// ReadFile returns the full content of the named file.
//
// Virtualized content is returned as a fresh copy so callers cannot mutate
// the store.
func (fsys *FS) ReadFile(name string) ([]byte, error) {
	if record, ok := fsys.store.Resolve(name); ok {
		return slices.Clone(record.Data), nil
	}

	if fsys.delegate == nil {
		return nil, &PathError{Op: "readfile", Path: name, Err: ErrFileNotExist}
	}

	return fs.ReadFile(fsys.delegate, delegateName(name)) //nolint:wrapcheck
}

// ReadText returns the content of the named file as text, decoded per the
// record's collected encoding.
func (fsys *FS) ReadText(name string) (string, error) {
	data, err := fsys.ReadFile(name)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// ReadDir returns the sorted listing of the named directory.
//
// Virtualized listings are synthesized from the flat key space. A
// virtualized regular file reports [ErrFileNotDir] instead of falling
// through.
func (fsys *FS) ReadDir(name string) ([]fs.DirEntry, error) {
	children, ok := fsys.store.ListChildren(name)
	if !ok {
		if _, isFile := fsys.store.Resolve(name); isFile {
			return nil, &PathError{Op: "readdir", Path: name, Err: ErrFileNotDir}
		}

		if fsys.delegate == nil {
			return nil, &PathError{Op: "readdir", Path: name, Err: ErrFileNotExist}
		}

		return fs.ReadDir(fsys.delegate, delegateName(name)) //nolint:wrapcheck
	}

	canonical := fsys.store.Normalize(name)
	entries := make([]fs.DirEntry, 0, len(children))

	for _, child := range children {
		childPath := canonical + "/" + child
		if canonical == "/" {
			childPath = "/" + child
		}

		info := &fileInfo{name: child, mode: virtualDirMode}

		if record, ok := fsys.store.Resolve(childPath); ok {
			info.size = int64(len(record.Data))
			info.mode = virtualFileMode
		}

		entries = append(entries, info)
	}

	return entries, nil
}

// Stat returns metadata for the named file.
func (fsys *FS) Stat(name string) (fs.FileInfo, error) {
	if record, ok := fsys.store.Resolve(name); ok {
		return &fileInfo{
			name: record.Path,
			size: int64(len(record.Data)),
			mode: virtualFileMode,
		}, nil
	}

	if _, ok := fsys.store.ListChildren(name); ok {
		return &fileInfo{
			name: fsys.store.Normalize(name),
			mode: virtualDirMode,
		}, nil
	}

	if fsys.delegate == nil {
		return nil, &PathError{Op: "stat", Path: name, Err: ErrFileNotExist}
	}

	return fs.Stat(fsys.delegate, delegateName(name)) //nolint:wrapcheck
}

// Exists reports whether the named file or directory exists, virtualized or
// on the delegate.
func (fsys *FS) Exists(name string) bool {
	_, err := fsys.Stat(name)
	return err == nil
}

// delegateName adapts an incoming path to the rooted, slash-separated form
// [io/fs] requires. The path is otherwise passed through unchanged so the
// delegate's own error behavior applies.
func delegateName(name string) string {
	trimmed := strings.TrimLeft(name, "/")
	if trimmed == "" {
		return "."
	}

	return trimmed
}
