// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/affinity/internal/metrics"
	"github.com/tomtom215/affinity/internal/models"
	"github.com/tomtom215/affinity/internal/recommend"
)

// ErrNotEnoughUsers is returned when fewer users are loaded than the
// configured subject count.
var ErrNotEnoughUsers = errors.New("not enough users for report")

// Config controls report building.
type Config struct {
	// Subjects is the number of users, in load order, to report on.
	Subjects int

	// Workers bounds concurrent subject scoring. 0 uses runtime.NumCPU().
	Workers int

	// UserLimit is the length of each similar-users list.
	UserLimit int

	// PostLimit is the length of each matching-posts list.
	PostLimit int
}

// Entry is one subject's section of the report.
type Entry struct {
	User         models.User                    `json:"user"`
	SimilarUsers []recommend.Scored[models.User] `json:"similar_users"`
	Posts        []recommend.Scored[models.Post] `json:"recommended_posts"`
}

// Driver builds report entries and renders them.
type Driver struct {
	engine   *recommend.Engine
	renderer Renderer
	cfg      Config
	logger   zerolog.Logger
}

// NewDriver creates a Driver.
func NewDriver(engine *recommend.Engine, renderer Renderer, cfg Config, logger zerolog.Logger) (*Driver, error) {
	if engine == nil {
		return nil, errors.New("report: engine is required")
	}
	if renderer == nil {
		return nil, errors.New("report: renderer is required")
	}
	if cfg.Subjects < 1 {
		return nil, fmt.Errorf("report: subjects must be positive, got %d", cfg.Subjects)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("report: workers must be non-negative, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}

	return &Driver{
		engine:   engine,
		renderer: renderer,
		cfg:      cfg,
		logger:   logger.With().Str("component", "report").Logger(),
	}, nil
}

// Build computes the report entries for the first Subjects users.
func (d *Driver) Build(ctx context.Context, users []models.User, posts []models.Post) ([]Entry, error) {
	if len(users) < d.cfg.Subjects {
		return nil, fmt.Errorf("%w: need %d, loaded %d", ErrNotEnoughUsers, d.cfg.Subjects, len(users))
	}

	entries := make([]Entry, d.cfg.Subjects)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.cfg.Workers)

	for i := range entries {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			subject := users[i]
			entries[i] = Entry{
				User:         subject,
				SimilarUsers: d.engine.ScoreUsers(subject, users, d.cfg.UserLimit),
				Posts:        d.engine.ScorePosts(subject, posts, d.cfg.PostLimit),
			}
			metrics.RecordRecommendations(metrics.ListUsers, len(entries[i].SimilarUsers))
			metrics.RecordRecommendations(metrics.ListPosts, len(entries[i].Posts))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// Covers cancellation observed by the loop before any goroutine saw it.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

// Run builds the report and renders it to w. Output is buffered, so w
// receives nothing if either step fails.
func (d *Driver) Run(ctx context.Context, users []models.User, posts []models.Post, w io.Writer) error {
	start := time.Now()

	entries, err := d.Build(ctx, users, posts)
	if err == nil {
		var buf bytes.Buffer
		if err = d.renderer.Render(&buf, entries); err == nil {
			_, err = buf.WriteTo(w)
		}
	}

	duration := time.Since(start)
	metrics.RecordReport(d.cfg.Subjects, duration, err)

	if err != nil {
		return fmt.Errorf("report: %w", err)
	}

	d.logger.Info().
		Int("subjects", len(entries)).
		Int("users", len(users)).
		Int("posts", len(posts)).
		Str("format", d.renderer.Name()).
		Dur("duration", duration).
		Msg("Report written")

	return nil
}
