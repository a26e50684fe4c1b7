// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot

import (
	"maps"
	"path"
	"slices"
	"strings"
)

// ListChildren synthesizes a one-level directory listing for the given path
// by scanning the flat key space.
//
// It returns the sorted set of immediate child names under the normalized
// path. The second return value is false when no key matches, which
// distinguishes "not virtualized" from a virtualized empty directory.
//
// For a request naming the migrations segment the raw prefix is not trusted:
// any stored key carrying that segment contributes its children, mirroring
// the drift tolerance of [Store.Resolve].
func (s *Store) ListChildren(raw string) ([]string, bool) {
	canonical := s.Normalize(raw)

	prefix := canonical + "/"
	if canonical == "/" {
		prefix = "/"
	}

	children := map[string]struct{}{}

	for _, key := range s.paths {
		if rest, ok := strings.CutPrefix(key, prefix); ok {
			children[firstSegment(rest)] = struct{}{}
		}
	}

	if path.Base(canonical) == MigrationsSegment {
		marker := "/" + MigrationsSegment + "/"

		for _, key := range s.paths {
			if idx := strings.LastIndex(key, marker); idx >= 0 {
				children[firstSegment(key[idx+len(marker):])] = struct{}{}
			}
		}
	}

	if len(children) == 0 {
		return nil, false
	}

	return slices.Sorted(maps.Keys(children)), true
}

func firstSegment(p string) string {
	if idx := strings.IndexByte(p, '/'); idx >= 0 {
		return p[:idx]
	}

	return p
}
