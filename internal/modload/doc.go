// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

// Package modload executes auxiliary scripts straight out of the snapshot
// store, without a real disk path.
//
// Scripts are authored as ordinary Go source files with declarative imports
// and exported top-level declarations. Inside a packaged artifact they run in
// a dynamically constructed interpreter that only understands a callable
// dependency resolver and an exports object, so the loader translates
// between the two conventions with a bounded, statement-pattern based
// rewrite before execution. Constructs outside the supported subset are
// rejected explicitly rather than silently passed through.
//
// Each script executes at most once per process. Loaded exports are cached
// for the process lifetime and population is synchronized per key, so
// concurrent loads of the same script observe a single execution.
package modload
