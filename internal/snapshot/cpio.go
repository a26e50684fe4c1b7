// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/cavaliergopher/cpio"
)

// ReadArchive reads asset records from a cpio snapshot archive, the
// alternative packaging format for large asset trees. Only regular file
// entries are collected; the directory structure is implied by the keys.
func ReadArchive(r io.Reader) ([]Record, error) {
	reader := cpio.NewReader(r)

	var records []Record

	for {
		header, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}

		if err != nil {
			return nil, fmt.Errorf("read archive header: %w", err)
		}

		if !header.Mode.IsRegular() {
			continue
		}

		data, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("read archive entry %s: %w", header.Name, err)
		}

		records = append(records, Record{
			Path: "/" + strings.TrimPrefix(header.Name, "/"),
			Data: data,
			Text: isText(data),
		})
	}
}

// WriteArchive writes all records of the store as a cpio snapshot archive.
func WriteArchive(w io.Writer, store *Store) error {
	writer := cpio.NewWriter(w)

	for _, path := range store.Paths() {
		record, _ := store.Get(path)

		header := &cpio.Header{
			Name: strings.TrimPrefix(path, "/"),
			Mode: cpio.TypeReg | 0o644,
			Size: int64(len(record.Data)),
		}

		if err := writer.WriteHeader(header); err != nil {
			return fmt.Errorf("write header for %s: %w", path, err)
		}

		if _, err := writer.Write(record.Data); err != nil {
			return fmt.Errorf("write body for %s: %w", path, err)
		}
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

// isText reports whether collected content can be treated as UTF-8 text.
func isText(data []byte) bool {
	return utf8.Valid(data) && !bytes.ContainsRune(data, 0)
}
