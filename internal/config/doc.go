// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package config provides centralized configuration management for Affinity.

# Configuration Sources

Configuration is layered with Koanf v2. Later layers override earlier ones:

 1. Defaults: built-in values from defaultConfig
 2. Config file: optional YAML file, chosen by LoadOptions.ConfigPath, the
    CONFIG_PATH environment variable, or the first of DefaultConfigPaths
    that exists
 3. Environment variables: AFFINITY_* (see below)
 4. Overrides: values set explicitly by the caller, usually CLI flags

# Environment Variables

Data:
  - AFFINITY_USERS_PATH: users CSV (default: users.csv)
  - AFFINITY_POSTS_PATH: posts CSV (default: posts.csv)
  - AFFINITY_STRICT_IDS: reject duplicate ids (default: true)

Report:
  - AFFINITY_SUBJECTS: number of users to report on (default: 15)
  - AFFINITY_REPORT_FORMAT: text or json (default: text)
  - AFFINITY_REPORT_OUTPUT: output file, empty for stdout
  - AFFINITY_WORKERS: concurrent subjects, 0 for one per CPU (default: 0)

Recommend:
  - AFFINITY_USER_LIMIT: similar users per subject (default: 5)
  - AFFINITY_POST_LIMIT: matching posts per subject (default: 5)
  - AFFINITY_MAX_LIMIT: upper bound for either limit (default: 100)
  - AFFINITY_TIE_BREAK: stable or id (default: stable)

Logging:
  - AFFINITY_LOG_LEVEL: trace, debug, info, warn, error (default: info)
  - AFFINITY_LOG_FORMAT: json or console (default: console)
  - AFFINITY_LOG_CALLER: include caller info (default: false)

Metrics:
  - AFFINITY_METRICS_TEXTFILE: Prometheus textfile written at exit
  - AFFINITY_METRICS_TEXTFILE_INTERVAL: rewrite period under serve (default: 15s)

Server:
  - AFFINITY_SERVER_ADDR: listen address (default: :8080)
  - AFFINITY_SERVER_READ_TIMEOUT: request read timeout (default: 5s)
  - AFFINITY_SERVER_WRITE_TIMEOUT: response write timeout (default: 10s)
  - AFFINITY_SERVER_SHUTDOWN_TIMEOUT: graceful shutdown window (default: 10s)
  - AFFINITY_SERVER_RATE_LIMIT: requests per minute per client IP, 0 disables (default: 600)
  - AFFINITY_SERVER_CACHE_SIZE: memoized ranked lists per kind, 0 disables (default: 4096)

# Example

	cfg, err := config.Load(config.LoadOptions{
	    Overrides: map[string]interface{}{"report.subjects": 3},
	})
	if err != nil {
	    return err
	}
*/
package config
