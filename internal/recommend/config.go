// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"fmt"
)

// TieBreak selects how candidates with equal scores are ordered.
type TieBreak string

const (
	// TieBreakStable keeps equal-score candidates in input pool order.
	TieBreakStable TieBreak = "stable"

	// TieBreakID orders equal-score candidates by ascending ID.
	// Use this when output must be identical across implementations
	// that do not share a stable sort.
	TieBreakID TieBreak = "id"
)

// Valid reports whether t is a known tie-break mode.
func (t TieBreak) Valid() bool {
	return t == TieBreakStable || t == TieBreakID
}

// Config contains all configuration for the recommendation engine.
type Config struct {
	// TieBreak orders candidates with equal scores.
	// Default: stable.
	TieBreak TieBreak `json:"tie_break"`

	// Limits contains per-list result limits.
	Limits LimitsConfig `json:"limits"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// Users is the default length of a similar-users list.
	// Default: 5.
	Users int `json:"users"`

	// Posts is the default length of a matching-posts list.
	// Default: 5.
	Posts int `json:"posts"`

	// MaxK bounds the configured list limits and, at the API boundary,
	// requested ones. The engine itself honours any limit it is given.
	// Default: 100.
	MaxK int `json:"max_k"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		TieBreak: TieBreakStable,
		Limits: LimitsConfig{
			Users: 5,
			Posts: 5,
			MaxK:  100,
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if !c.TieBreak.Valid() {
		return fmt.Errorf("tie_break must be %q or %q, got %q", TieBreakStable, TieBreakID, c.TieBreak)
	}

	if c.Limits.MaxK < 1 {
		return fmt.Errorf("limits.max_k must be positive, got %d", c.Limits.MaxK)
	}
	if c.Limits.Users < 0 {
		return fmt.Errorf("limits.users must be non-negative, got %d", c.Limits.Users)
	}
	if c.Limits.Posts < 0 {
		return fmt.Errorf("limits.posts must be non-negative, got %d", c.Limits.Posts)
	}
	if c.Limits.Users > c.Limits.MaxK {
		return fmt.Errorf("limits.users (%d) must not exceed limits.max_k (%d)", c.Limits.Users, c.Limits.MaxK)
	}
	if c.Limits.Posts > c.Limits.MaxK {
		return fmt.Errorf("limits.posts (%d) must not exceed limits.max_k (%d)", c.Limits.Posts, c.Limits.MaxK)
	}

	return nil
}
