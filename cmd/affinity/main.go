// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package main is the entry point for the affinity command.
//
// Affinity reads a users CSV and a posts CSV, normalizes their tags and
// prints, for each selected user, the users and posts sharing the most tags
// with them.
//
// # Commands
//
//	affinity report    # build and print the recommendation report
//	affinity serve     # answer recommendation queries over HTTP
//	affinity generate  # write synthetic users.csv and posts.csv
//
// # Configuration
//
// Configuration is loaded via Koanf v2 with layered sources (highest priority wins):
//   - Command line flags
//   - Environment variables (AFFINITY_*)
//   - Config file (affinity.yaml, config.yaml, or CONFIG_PATH / --config)
//   - Built-in defaults
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the run. Loading and scoring stop at the next
// row or subject and nothing is written. Under serve they start a graceful
// shutdown bounded by server.shutdown_timeout.
//
// # Exit Status
//
// 0 on success, 1 on any failure. Errors are logged to stderr; the report
// goes to stdout unless report.output is set.
//
// # Example Usage
//
//	affinity generate --users 200 --posts 500 --out-dir ./data
//	affinity report --users ./data/users.csv --posts ./data/posts.csv --subjects 10
//	AFFINITY_REPORT_FORMAT=json affinity report > report.json
//	affinity serve --addr 127.0.0.1:8080 --users ./data/users.csv --posts ./data/posts.csv
package main

import (
	"os"

	"github.com/tomtom215/affinity/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logging.Error().Err(err).Msg("affinity failed")
		os.Exit(1)
	}
}
