// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot

import (
	"path"
	"strings"
)

// Resolve matches an arbitrary incoming path against the store.
//
// Strategies are tried in order, least to most heuristic, first hit wins:
//
//  1. Exact match of the normalized input.
//  2. Suffix match on whole segments, in either direction, absorbing prefix
//     drift between the perceived roots of packaging time and run time.
//  3. Filename-only match, restricted to paths where both the input and the
//     stored key carry the migrations segment.
//
// A miss is not an error. It signals that the path is not virtualized and
// the caller should fall through to the real filesystem.
func (s *Store) Resolve(raw string) (*Record, bool) {
	canonical := s.Normalize(raw)

	if record, ok := s.records[canonical]; ok {
		return record, true
	}

	// Stored keys are iterated in lexical order so ambiguous drift resolves
	// deterministically.
	for _, key := range s.paths {
		if suffixMatch(key, canonical) || suffixMatch(canonical, key) {
			return s.records[key], true
		}
	}

	if hasSegment(canonical, MigrationsSegment) {
		name := path.Base(canonical)

		for _, key := range s.paths {
			if hasSegment(key, MigrationsSegment) && path.Base(key) == name {
				return s.records[key], true
			}
		}
	}

	return nil, false
}

// suffixMatch reports whether short is a strict suffix of long on a segment
// boundary. Both paths are canonical, so the leading slash of short
// guarantees the boundary.
func suffixMatch(long, short string) bool {
	if short == "/" || len(short) >= len(long) {
		return false
	}

	return strings.HasSuffix(long, short)
}

// hasSegment reports whether the canonical path contains the given path
// segment.
func hasSegment(canonical, segment string) bool {
	for s := range strings.SplitSeq(canonical, "/") {
		if s == segment {
			return true
		}
	}

	return false
}
