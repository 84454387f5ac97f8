// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package config

import "time"

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in sensible defaults for all settings
//  2. Config File: Optional YAML config file
//  3. Environment Variables: Override any setting via AFFINITY_* variables
//  4. Overrides: Explicit values from the command line
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Report    ReportConfig    `koanf:"report"`
	Recommend RecommendConfig `koanf:"recommend"`
	Logging   LoggingConfig   `koanf:"logging"`
	Metrics   MetricsConfig   `koanf:"metrics"`
	Server    ServerConfig    `koanf:"server"`
}

// DataConfig locates the input datasets.
type DataConfig struct {
	// UsersPath is the users CSV (id,username,preferences).
	// Default: users.csv
	UsersPath string `koanf:"users_path" validate:"required"`

	// PostsPath is the posts CSV (id,title,tags).
	// Default: posts.csv
	PostsPath string `koanf:"posts_path" validate:"required"`

	// StrictIDs rejects a dataset in which an id appears twice.
	// Default: true
	StrictIDs bool `koanf:"strict_ids"`
}

// ReportConfig controls which users are reported on and how.
type ReportConfig struct {
	// Subjects is the number of users, taken in load order, to report on.
	// Loading fewer users than this is an error.
	// Default: 15
	Subjects int `koanf:"subjects" validate:"min=1,max=100000"`

	// Format is the output format: text or json.
	// Default: text
	Format string `koanf:"format" validate:"oneof=text json"`

	// Output is the report file. Empty writes to stdout.
	Output string `koanf:"output"`

	// Workers bounds concurrent subject scoring. 0 uses one per CPU.
	// Default: 0
	Workers int `koanf:"workers" validate:"min=0,max=1024"`
}

// RecommendConfig holds ranking limits and ordering.
type RecommendConfig struct {
	// UserLimit is the length of each similar-users list.
	// Default: 5
	UserLimit int `koanf:"user_limit" validate:"min=0,ltefield=MaxLimit"`

	// PostLimit is the length of each matching-posts list.
	// Default: 5
	PostLimit int `koanf:"post_limit" validate:"min=0,ltefield=MaxLimit"`

	// MaxLimit caps both list limits.
	// Default: 100
	MaxLimit int `koanf:"max_limit" validate:"min=1,max=10000"`

	// TieBreak orders equal scores: stable keeps input order, id sorts by
	// ascending id.
	// Default: stable
	TieBreak string `koanf:"tie_break" validate:"oneof=stable id"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	// Default: info
	Level string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled"`

	// Format is the output format: json or console.
	// Default: console
	Format string `koanf:"format" validate:"oneof=json console"`

	// Caller includes caller file and line number in logs.
	// Default: false
	Caller bool `koanf:"caller"`
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	// TextfilePath is where Prometheus metrics are written when the run
	// finishes, in the node_exporter textfile format. Empty disables export.
	TextfilePath string `koanf:"textfile_path"`

	// TextfileInterval is how often the serve command rewrites the textfile.
	// Default: 15s
	TextfileInterval time.Duration `koanf:"textfile_interval" validate:"gt=0"`
}

// ServerConfig holds settings for the serve command.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: :8080
	Addr string `koanf:"addr" validate:"required,hostname_port"`

	// ReadTimeout bounds reading a whole request.
	// Default: 5s
	ReadTimeout time.Duration `koanf:"read_timeout" validate:"gt=0"`

	// WriteTimeout bounds writing a response.
	// Default: 10s
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`

	// ShutdownTimeout is how long in-flight requests may finish after a
	// stop signal.
	// Default: 10s
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`

	// RateLimit is the number of requests per minute allowed from one client
	// IP. 0 disables rate limiting.
	// Default: 600
	RateLimit int `koanf:"rate_limit" validate:"min=0"`

	// CacheSize is the number of ranked lists of each kind the server
	// memoizes. 0 disables caching.
	// Default: 4096
	CacheSize int `koanf:"cache_size" validate:"min=0,max=1000000"`

	// CORSOrigins lists origins allowed to call the API from a browser.
	// Empty disables cross-origin access.
	CORSOrigins []string `koanf:"cors_origins"`
}
