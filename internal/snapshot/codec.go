// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
)

// Asset map encodings as produced by the bundling pass.
const (
	encodingBase64 = "base64"
	encodingUTF8   = "utf8"
)

// assetEntry is the wire form of a single asset in the asset map, the sole
// contract consumed from the upstream bundler.
type assetEntry struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// DecodeAssetMap reads the JSON asset map emitted by the bundling pass: an
// object mapping canonical path to content and encoding.
func DecodeAssetMap(r io.Reader) ([]Record, error) {
	var entries map[string]assetEntry

	if err := json.NewDecoder(r).Decode(&entries); err != nil {
		return nil, fmt.Errorf("decode asset map: %w", err)
	}

	records := make([]Record, 0, len(entries))

	for _, path := range slices.Sorted(maps.Keys(entries)) {
		entry := entries[path]

		record := Record{Path: path}

		switch entry.Encoding {
		case encodingUTF8:
			record.Data = []byte(entry.Content)
			record.Text = true
		case encodingBase64:
			data, err := base64.StdEncoding.DecodeString(entry.Content)
			if err != nil {
				return nil, fmt.Errorf("decode asset %s: %w", path, err)
			}

			record.Data = data
		default:
			return nil, fmt.Errorf("%w: %q for %s",
				ErrUnknownEncoding, entry.Encoding, path)
		}

		records = append(records, record)
	}

	return records, nil
}

// EncodeAssetMap writes the store back out in the asset map format. Text
// records keep their content verbatim, binary records are base64 encoded.
func EncodeAssetMap(w io.Writer, store *Store) error {
	entries := make(map[string]assetEntry, store.Len())

	for _, path := range store.Paths() {
		record, _ := store.Get(path)

		entry := assetEntry{Encoding: encodingBase64}
		if record.Text {
			entry.Content = string(record.Data)
			entry.Encoding = encodingUTF8
		} else {
			entry.Content = base64.StdEncoding.EncodeToString(record.Data)
		}

		entries[path] = entry
	}

	encoder := json.NewEncoder(w)
	if err := encoder.Encode(entries); err != nil {
		return fmt.Errorf("encode asset map: %w", err)
	}

	return nil
}
