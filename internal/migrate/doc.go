// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

// Package migrate applies schema migrations of a packaged application.
//
// The client does not care where migration scripts come from: it talks to a
// pluggable [Source] that enumerates migration identifiers and fetches their
// exported procedures. [StoreSource] is the packaged form, serving scripts
// from the embedded snapshot store through the module loader instead of a
// disk read. [DirSource] serves unpackaged development runs from a real
// directory. [NewClient] picks between them by observing the configured
// migration directory: if it virtualizes, the directory reference is
// replaced with the store-backed source.
package migrate
