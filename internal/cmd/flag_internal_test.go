// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    flags
		expectedErr error
	}{
		{
			name: "defaults",
			args: []string{"main.go"},
			expected: flags{
				configFile: defaultConfigFile,
				entry:      "main.go",
				appArgs:    []string{},
			},
		},
		{
			name: "no positional args",
			args: []string{"-migrate"},
			expected: flags{
				configFile:  defaultConfigFile,
				migrateOnly: true,
			},
		},
		{
			name: "all flags",
			args: []string{
				"-snapshot", "app.cpio",
				"-base", "/srv/app",
				"-config", "other.json",
				"-db", "app.db",
				"-debug",
				"entry.go",
				"-appflag", "value",
			},
			expected: flags{
				snapshotPath: "app.cpio",
				basePrefix:   "/srv/app",
				configFile:   "other.json",
				dsn:          "app.db",
				debug:        true,
				entry:        "entry.go",
				appArgs:      []string{"-appflag", "value"},
			},
		},
		{
			name:        "version",
			args:        []string{"-version"},
			expectedErr: ErrHelp,
		},
		{
			name:        "unknown flag",
			args:        []string{"-nope"},
			expectedErr: &ParseArgsError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := parseArgs(tt.args, io.Discard)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)

			assert.Equal(t, tt.expected.snapshotPath, actual.snapshotPath)
			assert.Equal(t, tt.expected.basePrefix, actual.basePrefix)
			assert.Equal(t, tt.expected.configFile, actual.configFile)
			assert.Equal(t, tt.expected.dsn, actual.dsn)
			assert.Equal(t, tt.expected.migrateOnly, actual.migrateOnly)
			assert.Equal(t, tt.expected.debug, actual.debug)
			assert.Equal(t, tt.expected.entry, actual.entry)
			assert.Equal(t, tt.expected.appArgs, actual.appArgs)
		})
	}
}
