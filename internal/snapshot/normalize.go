// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package snapshot

import (
	"path"
	"strings"
)

// DefaultOutputSegments are the well-known build output directory names. A
// packaged application computes paths relative to the artifact's on-disk
// location, so the bundler's output directory leaks into them and must be
// stripped.
var DefaultOutputSegments = []string{"dist", "build", "bundle", ".npack"}

const uriSchemeMarker = "://"

// normalize turns an arbitrary incoming path representation into the
// canonical form used as the store's key space: slash-separated, anchored
// with exactly one leading slash, case-preserving.
//
// It never fails. Malformed input degrades to a best-effort canonical form so
// the resolver always receives a value to attempt matching.
func normalize(raw string, opts Options) string {
	p := strings.ReplaceAll(raw, `\`, "/")

	// Strip a URI scheme prefix like "file://".
	if idx := strings.Index(p, uriSchemeMarker); idx >= 0 {
		p = p[idx+len(uriSchemeMarker):]
	}

	// Strip a drive letter marker like "C:".
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		p = p[2:]
	}

	segments := splitSegments(p)
	segments = stripOutputSegments(segments, opts.outputSegments())

	p = "/" + strings.Join(segments, "/")

	// Strip the process-supplied base directory prefix.
	if base := opts.BasePrefix; base != "" && base != "/" {
		base = "/" + strings.Trim(strings.ReplaceAll(base, `\`, "/"), "/")
		switch {
		case p == base:
			p = "/"
		case strings.HasPrefix(p, base+"/"):
			p = p[len(base):]
		}
	}

	// Collapse duplicate separators and dot segments, keep one leading slash.
	p = path.Clean("/" + p)

	return p
}

// stripOutputSegments drops everything up to and including the last
// occurrence of a known build output segment.
func stripOutputSegments(segments, output []string) []string {
	last := -1

	for i, segment := range segments {
		for _, name := range output {
			if segment == name {
				last = i
				break
			}
		}
	}

	return segments[last+1:]
}

func splitSegments(p string) []string {
	segments := make([]string, 0, strings.Count(p, "/")+1)

	for segment := range strings.SplitSeq(p, "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}

	return segments
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
