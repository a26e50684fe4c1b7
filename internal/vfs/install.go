// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package vfs

import (
	"log/slog"
	"sync"
)

var (
	installMu sync.Mutex
	installed *FS
)

// Install binds the given FS as the process-wide default filesystem.
//
// The binding happens at most once per process, before application code
// runs. A second call does not rebind; it returns the FS installed first, so
// double installation cannot stack interceptors.
func Install(fsys *FS) *FS {
	installMu.Lock()
	defer installMu.Unlock()

	if installed != nil {
		slog.Debug("Filesystem already installed, keeping first binding")
		return installed
	}

	installed = fsys

	slog.Debug("Installed virtual filesystem",
		slog.Int("assets", fsys.store.Len()))

	return installed
}

// Installed returns the process-wide FS, or nil if none was installed.
func Installed() *FS {
	installMu.Lock()
	defer installMu.Unlock()

	return installed
}
