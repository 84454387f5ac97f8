// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tomtom215/affinity/internal/models"
	"github.com/tomtom215/affinity/internal/recommend/algorithms"
)

// ErrNilScorer is returned by NewEngine when no scorer is supplied.
var ErrNilScorer = errors.New("recommend: scorer is required")

// Engine produces ranked post and user lists for a subject user.
// It is safe for concurrent use.
type Engine struct {
	config *Config
	scorer algorithms.Scorer
	logger zerolog.Logger
}

// NewEngine creates a new recommendation engine.
// A nil cfg selects DefaultConfig.
func NewEngine(cfg *Config, scorer algorithms.Scorer, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if scorer == nil {
		return nil, ErrNilScorer
	}

	// Copy so later caller mutations do not race with ranking.
	c := *cfg

	e := &Engine{
		config: &c,
		scorer: scorer,
		logger: logger.With().Str("component", "recommend").Str("scorer", scorer.Name()).Logger(),
	}

	e.logger.Debug().
		Str("tie_break", string(c.TieBreak)).
		Int("user_limit", c.Limits.Users).
		Int("post_limit", c.Limits.Posts).
		Int("max_k", c.Limits.MaxK).
		Msg("Recommendation engine created")

	return e, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() Config {
	return *e.config
}

// ScorerName returns the name of the configured scorer.
func (e *Engine) ScorerName() string {
	return e.scorer.Name()
}

// ScorePosts ranks posts by overlap between their tags and the user's
// preferences, returning at most limit entries with their scores.
func (e *Engine) ScorePosts(user models.User, posts []models.Post, limit int) []Scored[models.Post] {
	out := Rank(e.scorer, user.Preferences, posts, limit, RankOptions{
		TieBreak: e.config.TieBreak,
	})

	e.logger.Trace().
		Uint32("user_id", user.ID).
		Int("candidates", len(posts)).
		Int("limit", limit).
		Int("results", len(out)).
		Msg("Scored posts")

	return out
}

// ScoreUsers ranks other users by overlap between their preferences and the
// target's, returning at most limit entries with their scores. Any candidate
// sharing the target's ID is excluded.
func (e *Engine) ScoreUsers(target models.User, users []models.User, limit int) []Scored[models.User] {
	out := Rank(e.scorer, target.Preferences, users, limit, RankOptions{
		TieBreak: e.config.TieBreak,
		Exclude:  map[uint32]struct{}{target.ID: {}},
	})

	e.logger.Trace().
		Uint32("user_id", target.ID).
		Int("candidates", len(users)).
		Int("limit", limit).
		Int("results", len(out)).
		Msg("Scored users")

	return out
}

// RecommendPosts returns up to limit posts sharing at least one tag with the
// user's preferences, best match first.
func (e *Engine) RecommendPosts(user models.User, posts []models.Post, limit int) []models.Post {
	return Items(e.ScorePosts(user, posts, limit))
}

// RecommendUsers returns up to limit users, other than target, sharing at
// least one preference with target, most similar first.
func (e *Engine) RecommendUsers(target models.User, users []models.User, limit int) []models.User {
	return Items(e.ScoreUsers(target, users, limit))
}
