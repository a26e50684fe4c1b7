// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package vfs_test

import (
	"io"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/SatoruFF/npack/internal/snapshot"
	"github.com/SatoruFF/npack/internal/vfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T, delegate fs.FS) *vfs.FS {
	t.Helper()

	records := []snapshot.Record{
		{Path: "/config/app.json", Data: []byte(`{"name":"app"}`), Text: true},
		{Path: "/assets/logo.png", Data: []byte{0x89, 0x50, 0x4e, 0x47}},
		{Path: "/migrations/001_a.go", Data: []byte("package migration"), Text: true},
		{Path: "/migrations/002_b.go", Data: []byte("package migration"), Text: true},
	}

	store, err := snapshot.New(records, snapshot.Options{BasePrefix: "/app"})
	require.NoError(t, err)

	return vfs.New(store, delegate)
}

func TestFSReadFile(t *testing.T) {
	delegate := fstest.MapFS{
		"var/data/delegate.txt": {Data: []byte("from disk")},
	}
	fsys := newTestFS(t, delegate)

	t.Run("virtualized text", func(t *testing.T) {
		data, err := fsys.ReadFile("/app/config/app.json")
		require.NoError(t, err)
		assert.Equal(t, `{"name":"app"}`, string(data))
	})

	t.Run("virtualized binary is byte identical", func(t *testing.T) {
		data, err := fsys.ReadFile("/assets/logo.png")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, data)
	})

	t.Run("content is a copy", func(t *testing.T) {
		data, err := fsys.ReadFile("/assets/logo.png")
		require.NoError(t, err)

		data[0] = 0xff

		again, err := fsys.ReadFile("/assets/logo.png")
		require.NoError(t, err)
		assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, again)
	})

	t.Run("fallthrough to delegate", func(t *testing.T) {
		data, err := fsys.ReadFile("/var/data/delegate.txt")
		require.NoError(t, err)
		assert.Equal(t, "from disk", string(data))
	})

	t.Run("fallthrough preserves delegate errors", func(t *testing.T) {
		_, err := fsys.ReadFile("/var/data/missing.txt")
		require.Error(t, err)

		_, expected := fs.ReadFile(delegate, "var/data/missing.txt")
		assert.Equal(t, expected, err)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestFSReadText(t *testing.T) {
	fsys := newTestFS(t, nil)

	text, err := fsys.ReadText("/config/app.json")
	require.NoError(t, err)
	assert.Equal(t, `{"name":"app"}`, text)
}

func TestFSStat(t *testing.T) {
	fsys := newTestFS(t, fstest.MapFS{
		"var/data/delegate.txt": {Data: []byte("from disk")},
	})

	t.Run("virtualized file", func(t *testing.T) {
		info, err := fsys.Stat("/app/config/app.json")
		require.NoError(t, err)

		assert.Equal(t, "app.json", info.Name())
		assert.Equal(t, int64(len(`{"name":"app"}`)), info.Size())
		assert.True(t, info.Mode().IsRegular())
		assert.True(t, info.ModTime().IsZero())
	})

	t.Run("virtualized directory", func(t *testing.T) {
		info, err := fsys.Stat("/migrations")
		require.NoError(t, err)

		assert.True(t, info.IsDir())
		assert.Zero(t, info.Size())
	})

	t.Run("delegate file", func(t *testing.T) {
		info, err := fsys.Stat("/var/data/delegate.txt")
		require.NoError(t, err)
		assert.Equal(t, "delegate.txt", info.Name())
	})

	t.Run("missing", func(t *testing.T) {
		_, err := fsys.Stat("/nope")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestFSExists(t *testing.T) {
	fsys := newTestFS(t, nil)

	assert.True(t, fsys.Exists("/config/app.json"))
	assert.True(t, fsys.Exists("/migrations"))
	assert.False(t, fsys.Exists("/migrations/999_missing.go"))
}

func TestFSReadDir(t *testing.T) {
	fsys := newTestFS(t, fstest.MapFS{
		"var/data/delegate.txt": {Data: []byte("from disk")},
	})

	t.Run("synthesized listing", func(t *testing.T) {
		entries, err := fsys.ReadDir("/migrations")
		require.NoError(t, err)
		require.Len(t, entries, 2)

		assert.Equal(t, "001_a.go", entries[0].Name())
		assert.Equal(t, "002_b.go", entries[1].Name())
		assert.True(t, entries[0].Type().IsRegular())
	})

	t.Run("intermediate directories", func(t *testing.T) {
		entries, err := fsys.ReadDir("/")
		require.NoError(t, err)
		require.Len(t, entries, 3)

		assert.Equal(t, "assets", entries[0].Name())
		assert.True(t, entries[0].IsDir())
	})

	t.Run("virtualized file is not a directory", func(t *testing.T) {
		_, err := fsys.ReadDir("/config/app.json")
		assert.ErrorIs(t, err, vfs.ErrFileNotDir)
	})

	t.Run("fallthrough to delegate", func(t *testing.T) {
		entries, err := fsys.ReadDir("/var/data")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "delegate.txt", entries[0].Name())
	})
}

func TestFSOpen(t *testing.T) {
	fsys := newTestFS(t, nil)

	t.Run("read full content", func(t *testing.T) {
		file, err := fsys.Open("/config/app.json")
		require.NoError(t, err)

		t.Cleanup(func() { _ = file.Close() })

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, `{"name":"app"}`, string(data))
	})

	t.Run("directory iteration with cursor", func(t *testing.T) {
		file, err := fsys.Open("/migrations")
		require.NoError(t, err)

		t.Cleanup(func() { _ = file.Close() })

		dir, ok := file.(fs.ReadDirFile)
		require.True(t, ok)

		first, err := dir.ReadDir(1)
		require.NoError(t, err)
		require.Len(t, first, 1)
		assert.Equal(t, "001_a.go", first[0].Name())

		rest, err := dir.ReadDir(-1)
		require.NoError(t, err)
		require.Len(t, rest, 1)
		assert.Equal(t, "002_b.go", rest[0].Name())

		_, err = dir.ReadDir(1)
		assert.ErrorIs(t, err, io.EOF)
	})

	t.Run("sealed filesystem misses", func(t *testing.T) {
		_, err := fsys.Open("/nope")
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})
}

func TestFSVirtualizes(t *testing.T) {
	fsys := newTestFS(t, nil)

	assert.True(t, fsys.Virtualizes("/app/config/app.json"))
	assert.True(t, fsys.Virtualizes("/migrations"))
	assert.False(t, fsys.Virtualizes("/etc"))
}
