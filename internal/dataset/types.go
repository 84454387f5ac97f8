// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package dataset

import (
	"time"
)

// Dataset names used in LoadStats and log fields.
const (
	DatasetUsers = "users"
	DatasetPosts = "posts"
)

// Config controls loader behavior.
type Config struct {
	// StrictIDs rejects a file in which the same id appears twice.
	StrictIDs bool
}

// DefaultConfig returns the default loader configuration.
func DefaultConfig() Config {
	return Config{StrictIDs: true}
}

// LoadStats holds statistics about one load operation.
type LoadStats struct {
	// Dataset is DatasetUsers or DatasetPosts.
	Dataset string

	// Source is the file path or reader name.
	Source string

	// Rows is the number of data rows accepted, excluding the header.
	Rows int

	// StartTime is when the load started.
	StartTime time.Time

	// EndTime is when the load completed (zero if still running).
	EndTime time.Time

	// Err is the load failure, nil on success.
	Err error
}

// Duration returns the duration of the load operation.
func (s *LoadStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RowsPerSecond returns the load rate.
func (s *LoadStats) RowsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Rows) / duration
}
