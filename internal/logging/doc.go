// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package logging provides centralized zerolog-based logging for Affinity.

Logs always go to stderr so that the report written to stdout stays clean
and can be piped.

# Quick Start

	import "github.com/tomtom215/affinity/internal/logging"

	// Initialize at startup
	logging.Init(logging.Config{
	    Level:  "info",
	    Format: "console",
	})

	// Log messages
	logging.Info().Msg("Report starting")
	logging.Error().Err(err).Msg("Load failed")

	// With context (run ID)
	ctx = logging.ContextWithNewRunID(ctx)
	logging.Ctx(ctx).Info().Int("users", n).Msg("Users loaded")

# Configuration

Logging is configured through the logging section of the application config
(see internal/config):

  - logging.level: trace, debug, info, warn, error (default: info)
  - logging.format: json, console (default: console)
  - logging.caller: include caller file and line (default: false)

# Best Practices

Always terminate log chains with .Msg() or .Send():

	logging.Info().Str("key", "value").Msg("message")  // Correct
	logging.Info().Str("key", "value")                 // WRONG - log not emitted

Use structured fields instead of string formatting:

	logging.Info().Str("source", p).Int("rows", n).Msg("loaded")  // Correct
	logging.Info().Msgf("loaded %d rows from %s", n, p)           // Avoid
*/
package logging
