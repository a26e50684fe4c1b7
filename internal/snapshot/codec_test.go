// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/SatoruFF/npack/internal/snapshot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeAssetMap(t *testing.T) {
	input := `{
		"/config/app.json": {"content": "{\"name\":\"app\"}", "encoding": "utf8"},
		"/assets/logo.png": {"content": "iVBORw==", "encoding": "base64"}
	}`

	records, err := snapshot.DecodeAssetMap(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 2)

	store, err := snapshot.New(records, snapshot.Options{})
	require.NoError(t, err)

	text, ok := store.Get("/config/app.json")
	require.True(t, ok)
	assert.True(t, text.Text)
	assert.Equal(t, `{"name":"app"}`, string(text.Data))

	binary, ok := store.Get("/assets/logo.png")
	require.True(t, ok)
	assert.False(t, binary.Text)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, binary.Data)
}

func TestDecodeAssetMapErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		errIs error
	}{
		{
			name:  "unknown encoding",
			input: `{"/a": {"content": "x", "encoding": "hex"}}`,
			errIs: snapshot.ErrUnknownEncoding,
		},
		{
			name:  "invalid base64",
			input: `{"/a": {"content": "!!", "encoding": "base64"}}`,
		},
		{
			name:  "invalid json",
			input: `{`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := snapshot.DecodeAssetMap(strings.NewReader(tt.input))
			require.Error(t, err)

			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			}
		})
	}
}

func TestAssetMapRoundTrip(t *testing.T) {
	store := newTestStore(t, snapshot.Options{})

	var buf bytes.Buffer
	require.NoError(t, snapshot.EncodeAssetMap(&buf, store))

	records, err := snapshot.DecodeAssetMap(&buf)
	require.NoError(t, err)

	restored, err := snapshot.New(records, snapshot.Options{})
	require.NoError(t, err)

	require.Equal(t, store.Paths(), restored.Paths())

	for _, path := range store.Paths() {
		expected, _ := store.Get(path)
		actual, ok := restored.Get(path)
		require.True(t, ok)

		assert.Equal(t, expected.Data, actual.Data, path)
		assert.Equal(t, expected.Text, actual.Text, path)
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	store := newTestStore(t, snapshot.Options{})

	var buf bytes.Buffer
	require.NoError(t, snapshot.WriteArchive(&buf, store))

	records, err := snapshot.ReadArchive(&buf)
	require.NoError(t, err)

	// Written entries must carry regular-file type bits, or the reader
	// skips every one of them.
	require.Len(t, records, store.Len())

	restored, err := snapshot.New(records, snapshot.Options{})
	require.NoError(t, err)

	require.Equal(t, store.Paths(), restored.Paths())

	for _, path := range store.Paths() {
		expected, _ := store.Get(path)
		actual, ok := restored.Get(path)
		require.True(t, ok)

		assert.Equal(t, expected.Data, actual.Data, path)
	}
}
