// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"bytes"
	"io"
	"io/fs"
	"path"
	"time"
)

const (
	virtualFileMode = fs.FileMode(0o644)
	virtualDirMode  = fs.ModeDir | 0o755
)

var (
	_ fs.FileInfo = (*fileInfo)(nil)
	_ fs.DirEntry = (*fileInfo)(nil)
)

// fileInfo describes a virtualized file or directory. A virtualized file
// reports its content length and regular mode, a virtualized directory
// reports directory mode and zero size. Modification times do not survive
// packaging and are always zero.
type fileInfo struct {
	name string
	size int64
	mode fs.FileMode
}

func (i *fileInfo) Name() string               { return path.Base(i.name) }
func (i *fileInfo) Size() int64                { return i.size }
func (i *fileInfo) Mode() fs.FileMode          { return i.mode }
func (i *fileInfo) ModTime() time.Time         { return time.Time{} }
func (i *fileInfo) IsDir() bool                { return i.mode.IsDir() }
func (i *fileInfo) Sys() any                   { return nil }
func (i *fileInfo) Type() fs.FileMode          { return i.mode.Type() }
func (i *fileInfo) Info() (fs.FileInfo, error) { return i, nil }
func (i *fileInfo) String() string             { return fs.FormatFileInfo(i) }

var (
	_ fs.File        = (*openFile)(nil)
	_ fs.ReadDirFile = (*openFile)(nil)
)

// openFile is an open virtualized file. Regular files read from an
// in-memory reader over the stored content. Directories carry their
// synthesized entries and support cursor style ReadDir.
type openFile struct {
	info    fileInfo
	reader  io.Reader
	entries []fs.DirEntry
	offset  int
}

func newOpenFile(name string, data []byte) *openFile {
	return &openFile{
		info: fileInfo{
			name: name,
			size: int64(len(data)),
			mode: virtualFileMode,
		},
		reader: bytes.NewReader(data),
	}
}

func newOpenDir(name string, entries []fs.DirEntry) *openFile {
	return &openFile{
		info: fileInfo{
			name: name,
			mode: virtualDirMode,
		},
		entries: entries,
	}
}

// Stat implements [fs.File].
func (f *openFile) Stat() (fs.FileInfo, error) {
	return &f.info, nil
}

// Read implements [fs.File].
func (f *openFile) Read(b []byte) (int, error) {
	if f.reader == nil {
		return 0, ErrFileInvalid
	}

	return f.reader.Read(b) //nolint:wrapcheck
}

// Close implements [fs.File]. Virtual files hold no resources.
func (f *openFile) Close() error {
	return nil
}

// ReadDir implements [fs.ReadDirFile].
func (f *openFile) ReadDir(count int) ([]fs.DirEntry, error) {
	if !f.info.IsDir() {
		return nil, ErrFileNotDir
	}

	start := f.offset
	end := len(f.entries)
	available := end - start

	if available == 0 && count > 0 {
		return nil, io.EOF
	}

	if count > 0 && available > count {
		end = start + count
	}

	f.offset = end

	return f.entries[start:end], nil
}
