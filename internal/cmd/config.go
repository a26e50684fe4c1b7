// SPDX-FileCopyrightText: 2026 The npack authors
//
// SPDX-License-Identifier: MIT

package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

const defaultConfigFile = "npack.config.json"

// Config is the project configuration file of a packaged application.
//
// All fields are optional. Command line flags take precedence over the
// corresponding config fields.
type Config struct {
	// Entry is the entry module reference.
	Entry string `json:"entry"`

	// Assets is the path to the snapshot file.
	Assets string `json:"assets"`

	// Scripts is the migration scripts directory the application refers
	// to. If the snapshot answers for it, the packaged scripts are used.
	Scripts string `json:"scripts"`

	// Env is applied to the process environment before the entry module
	// runs.
	Env map[string]string `json:"env"`

	// DBConnection is the database DSN for migrations.
	DBConnection string `json:"dbConnection"`
}

// ReadConfig reads the project configuration from the given file.
//
// A missing file is not an error and yields an empty configuration, since
// all settings can be given as flags.
func ReadConfig(file string) (*Config, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}

		return nil, fmt.Errorf("read config: %w", err)
	}

	var config Config

	err = json.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	return &config, nil
}

// ApplyEnv sets the configured environment variables on the process.
func (c *Config) ApplyEnv() error {
	for name, value := range c.Env {
		err := os.Setenv(name, value)
		if err != nil {
			return fmt.Errorf("set %s: %w", name, err)
		}
	}

	return nil
}
