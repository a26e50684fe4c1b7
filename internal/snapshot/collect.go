// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot

import (
	"fmt"
	"io/fs"
	"path"
)

// CollectFS gathers asset records from a filesystem tree, rooting every
// collected path under the given canonical root. It is the packaging-side
// producer of the store contract and also serves unpackaged runs that read
// scripts from a real directory.
//
// Which trees and extensions are collected is decided by the caller through
// the fsys it passes in.
func CollectFS(fsys fs.FS, root string) ([]Record, error) {
	var records []Record

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.Type().IsRegular() {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}

		records = append(records, Record{
			Path: path.Join("/", root, p),
			Data: data,
			Text: isText(data),
		})

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("collect assets: %w", err)
	}

	return records, nil
}
