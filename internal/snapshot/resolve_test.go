// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot_test

import (
	"testing"

	"github.com/SatoruFF/npack/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts snapshot.Options) *snapshot.Store {
	t.Helper()

	records := []snapshot.Record{
		{Path: "/config/app.json", Data: []byte(`{"name":"app"}`), Text: true},
		{Path: "/assets/logo.png", Data: []byte{0x89, 0x50, 0x4e, 0x47}},
		{Path: "/migrations/001_init.go", Data: []byte("package migration"), Text: true},
		{Path: "/migrations/003_add_index.go", Data: []byte("package migration"), Text: true},
	}

	store, err := snapshot.New(records, opts)
	require.NoError(t, err)

	return store
}

func TestStoreResolve(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		opts         snapshot.Options
		expectedPath string
		assertFound  assert.BoolAssertionFunc
	}{
		{
			name:         "exact match",
			raw:          "/config/app.json",
			expectedPath: "/config/app.json",
			assertFound:  assert.True,
		},
		{
			name:         "exact match via base prefix",
			raw:          "/app/config/app.json",
			opts:         snapshot.Options{BasePrefix: "/app"},
			expectedPath: "/config/app.json",
			assertFound:  assert.True,
		},
		{
			name:         "exact match via output segment",
			raw:          "/home/user/project/dist/config/app.json",
			expectedPath: "/config/app.json",
			assertFound:  assert.True,
		},
		{
			name:         "input is suffix of stored key",
			raw:          "/app.json",
			expectedPath: "/config/app.json",
			assertFound:  assert.True,
		},
		{
			name:         "stored key is suffix of input",
			raw:          "/virtual/root/assets/logo.png",
			expectedPath: "/assets/logo.png",
			assertFound:  assert.True,
		},
		{
			name:         "filename match in migrations namespace",
			raw:          "/some/other/root/migrations/003_add_index.go",
			expectedPath: "/migrations/003_add_index.go",
			assertFound:  assert.True,
		},
		{
			name:        "filename match outside namespace misses",
			raw:         "/some/other/root/scripts/003_add_index.go",
			assertFound: assert.False,
		},
		{
			name:        "missing migration",
			raw:         "/migrations/999_missing.go",
			assertFound: assert.False,
		},
		{
			name:        "unrelated path misses",
			raw:         "/etc/passwd",
			assertFound: assert.False,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newTestStore(t, tt.opts)

			record, found := store.Resolve(tt.raw)
			tt.assertFound(t, found)

			if tt.expectedPath != "" {
				require.NotNil(t, record)
				assert.Equal(t, tt.expectedPath, record.Path)

				expected, ok := store.Get(tt.expectedPath)
				require.True(t, ok)
				assert.Same(t, expected, record)
			}
		})
	}
}

func TestStoreResolveDeterministic(t *testing.T) {
	records := []snapshot.Record{
		{Path: "/a/migrations/shared.go", Data: []byte("a"), Text: true},
		{Path: "/b/migrations/shared.go", Data: []byte("b"), Text: true},
	}

	store, err := snapshot.New(records, snapshot.Options{})
	require.NoError(t, err)

	// Both keys carry the namespace segment and the same filename. The
	// lexically first key wins, every time.
	for range 10 {
		record, found := store.Resolve("/other/migrations/shared.go")
		require.True(t, found)
		assert.Equal(t, "/a/migrations/shared.go", record.Path)
	}
}
