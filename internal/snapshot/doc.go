// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

// Package snapshot provides the embedded asset store of a packaged
// application.
//
// A snapshot is a flat, immutable map from canonical slash-separated paths to
// the content of the files that were collected at packaging time. It is built
// once, before any application code runs, and is read-only afterwards.
//
// Incoming paths are matched against the store with [Store.Resolve], which
// tolerates the path drift introduced by differing perceived roots between
// packaging time and run time. Directory listings do not exist in the flat
// key space and are synthesized on demand with [Store.ListChildren].
package snapshot
