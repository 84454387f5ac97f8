// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"affinity.yaml",
	"affinity.yml",
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix of every environment variable read into the config.
const EnvPrefix = "AFFINITY_"

// LoadOptions controls a Load call.
type LoadOptions struct {
	// ConfigPath is an explicit config file. Unlike CONFIG_PATH, a missing
	// file here is an error.
	ConfigPath string

	// Overrides are applied last, keyed by koanf path ("report.subjects").
	Overrides map[string]interface{}
}

// defaultConfig returns a Config struct with all sensible default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			UsersPath: "users.csv",
			PostsPath: "posts.csv",
			StrictIDs: true,
		},
		Report: ReportConfig{
			Subjects: 15,
			Format:   "text",
			Output:   "",
			Workers:  0, // 0 = use runtime.NumCPU()
		},
		Recommend: RecommendConfig{
			UserLimit: 5,
			PostLimit: 5,
			MaxLimit:  100,
			TieBreak:  "stable",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
		},
		Metrics: MetricsConfig{
			TextfilePath:     "",
			TextfileInterval: 15 * time.Second,
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimit:       600,
			CacheSize:       4096,
			CORSOrigins:     []string{},
		},
	}
}

// Default returns the built-in configuration without consulting any file or
// environment variable.
func Default() *Config {
	return defaultConfig()
}

// Load loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in sensible defaults
//  2. Config File: Optional YAML config file
//  3. Environment Variables: AFFINITY_* variables
//  4. Overrides: opts.Overrides
//
// The result is validated before it is returned.
func Load(opts LoadOptions) (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	configPath, err := resolveConfigFile(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables
	// AFFINITY_USERS_PATH -> data.users_path
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	// Layer 4: Explicit overrides, applied in key order for determinism
	keys := make([]string, 0, len(opts.Overrides))
	for key := range opts.Overrides {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if !k.Exists(key) {
			return nil, fmt.Errorf("unknown configuration key %q", key)
		}
		if err := k.Set(key, opts.Overrides[key]); err != nil {
			return nil, fmt.Errorf("failed to set %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// resolveConfigFile returns the config file to load, or "" for none.
// An explicit path must exist.
func resolveConfigFile(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file %s: %w", explicit, err)
		}
		return explicit, nil
	}
	return findConfigFile(), nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps lowercased variable names, without EnvPrefix, to koanf paths.
var envMappings = map[string]string{
	// Data
	"users_path": "data.users_path",
	"posts_path": "data.posts_path",
	"strict_ids": "data.strict_ids",

	// Report
	"subjects":      "report.subjects",
	"report_format": "report.format",
	"report_output": "report.output",
	"workers":       "report.workers",

	// Recommend
	"user_limit": "recommend.user_limit",
	"post_limit": "recommend.post_limit",
	"max_limit":  "recommend.max_limit",
	"tie_break":  "recommend.tie_break",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Metrics
	"metrics_textfile":          "metrics.textfile_path",
	"metrics_textfile_interval": "metrics.textfile_interval",

	// Server
	"server_addr":             "server.addr",
	"server_read_timeout":     "server.read_timeout",
	"server_write_timeout":    "server.write_timeout",
	"server_shutdown_timeout": "server.shutdown_timeout",
	"server_rate_limit":       "server.rate_limit",
	"server_cache_size":       "server.cache_size",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - AFFINITY_USERS_PATH -> data.users_path
//   - AFFINITY_LOG_LEVEL -> logging.level
//   - AFFINITY_UNKNOWN -> "" (ignored)
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}

	// For unmapped keys, return empty string to skip them
	return ""
}
