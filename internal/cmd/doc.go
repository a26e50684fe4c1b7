// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

// Package cmd implements the npack runtime launcher.
//
// The launcher reads the packaged snapshot, installs the virtual
// filesystem, optionally applies database migrations and runs the
// application's entry module.
package cmd
