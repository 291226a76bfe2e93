/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package runnercfg loads the orchestrator's configuration via viper:
// environment variables (IMIBOOK_ prefix) over an optional YAML file.
// Command-line flags are not read here; cmd/imibook applies them over the
// loaded Config.
package runnercfg

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/sixmd/imibook/constants"
)

// Config controls one orchestrator run across a directory of day files.
type Config struct {
	InputGlob     string `mapstructure:"input_glob"`
	Workers       int    `mapstructure:"workers"`
	SnapshotStart uint32 `mapstructure:"snapshot_start_seconds"`
	SnapshotEnd   uint32 `mapstructure:"snapshot_end_seconds"`
	DBPath        string `mapstructure:"db_path"`      // empty disables persistence
	MetricsAddr   string `mapstructure:"metrics_addr"` // empty disables the Prometheus endpoint
}

// Load reads configuration from an optional file at configPath (skipped
// if empty or not found), then IMIBOOK_-prefixed environment variables,
// which override file values; defaults fill any key neither sets.
func Load(configPath string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("imibook")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("input_glob", "*.bin")
	v.SetDefault("workers", 0) // 0 means "N-1 cores", resolved by the orchestrator
	v.SetDefault("snapshot_start_seconds", constants.SnapshotWindowStartSeconds)
	v.SetDefault("snapshot_end_seconds", constants.SnapshotWindowEndSeconds)
	v.SetDefault("db_path", "")
	v.SetDefault("metrics_addr", "")

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			_, notFound := err.(viper.ConfigFileNotFoundError)
			if !notFound && !errors.Is(err, fs.ErrNotExist) {
				return Config{}, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
