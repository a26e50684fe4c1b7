// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package cmd_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SatoruFF/npack/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	file := filepath.Join(t.TempDir(), "npack.config.json")
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	return file
}

func TestReadConfig(t *testing.T) {
	t.Run("full", func(t *testing.T) {
		file := writeConfig(t, `{
			"entry": "main.go",
			"assets": "app.cpio",
			"scripts": "./migrations",
			"env": {"APP_MODE": "packaged"},
			"dbConnection": "app.db"
		}`)

		config, err := cmd.ReadConfig(file)
		require.NoError(t, err)

		expected := &cmd.Config{
			Entry:        "main.go",
			Assets:       "app.cpio",
			Scripts:      "./migrations",
			Env:          map[string]string{"APP_MODE": "packaged"},
			DBConnection: "app.db",
		}
		assert.Equal(t, expected, config)
	})

	t.Run("missing file", func(t *testing.T) {
		config, err := cmd.ReadConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)

		assert.Equal(t, &cmd.Config{}, config)
	})

	t.Run("invalid json", func(t *testing.T) {
		file := writeConfig(t, "{")

		_, err := cmd.ReadConfig(file)
		require.Error(t, err)
	})
}

func TestConfigApplyEnv(t *testing.T) {
	// Register cleanup for the variable before ApplyEnv overrides it.
	t.Setenv("NPACK_TEST_MODE", "unset")

	config := &cmd.Config{
		Env: map[string]string{"NPACK_TEST_MODE": "packaged"},
	}

	require.NoError(t, config.ApplyEnv())
	assert.Equal(t, "packaged", os.Getenv("NPACK_TEST_MODE"))
}
