// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

// Package vfs answers filesystem operations of a packaged application from
// the embedded snapshot store.
//
// [FS] is an explicit capability object rather than a patched set of process
// globals: code paths that need filesystem access receive it as a dependency.
// Every operation first tries to virtualize the path against the store. If
// the path resolves, the answer comes entirely from memory. Otherwise the
// operation is delegated unchanged to the underlying filesystem, preserving
// its error behavior, so non-packaged paths keep working exactly as before.
//
// [Install] binds one FS as the process-wide default for call sites that
// cannot thread the capability through. Installation happens at most once;
// later calls are no-ops returning the FS installed first.
package vfs
