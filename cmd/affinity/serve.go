// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tomtom215/affinity/internal/api"
	"github.com/tomtom215/affinity/internal/config"
	"github.com/tomtom215/affinity/internal/dataset"
	"github.com/tomtom215/affinity/internal/logging"
	"github.com/tomtom215/affinity/internal/metrics"
	"github.com/tomtom215/affinity/internal/recommend"
	"github.com/tomtom215/affinity/internal/recommend/algorithms"
	"github.com/tomtom215/affinity/internal/supervisor"
	"github.com/tomtom215/affinity/internal/supervisor/services"
)

var serveFlagKeys = map[string]string{
	"users":            "data.users_path",
	"posts":            "data.posts_path",
	"addr":             "server.addr",
	"rate-limit":       "server.rate_limit",
	"cache-size":       "server.cache_size",
	"cors-origin":      "server.cors_origins",
	"tie-break":        "recommend.tie_break",
	"log-level":        "logging.level",
	"metrics-textfile": "metrics.textfile_path",
}

func newServeCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve recommendations over HTTP from the loaded datasets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides, err := flagOverrides(cmd.Flags(), serveFlagKeys)
			if err != nil {
				return err
			}

			cfg, err := config.Load(config.LoadOptions{
				ConfigPath: configPath,
				Overrides:  overrides,
			})
			if err != nil {
				return err
			}
			logging.Init(loggingConfig(cfg))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return runServe(ctx, cfg)
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "config file (default: $CONFIG_PATH, ./affinity.yaml or ./config.yaml)")
	f.String("users", "", "users CSV path")
	f.String("posts", "", "posts CSV path")
	f.String("addr", "", "listen address, for example :8080")
	f.Int("rate-limit", 0, "requests per minute per client IP (0 disables)")
	f.Int("cache-size", 0, "ranked lists of each kind to memoize (0 disables)")
	f.StringSlice("cors-origin", nil, "origin allowed to call the API from a browser (repeatable)")
	f.String("tie-break", "", "ordering of equal scores: stable or id")
	f.String("log-level", "", "log level: trace, debug, info, warn, error")
	f.String("metrics-textfile", "", "periodically write Prometheus metrics to this file")

	return cmd
}

// runServe loads the datasets once and serves them until ctx is canceled.
func runServe(ctx context.Context, cfg *config.Config) error {
	ctx = logging.ContextWithNewRunID(ctx)
	base := logging.CtxWith(ctx).Logger()
	logger := base.With().Str("component", "cli").Logger()

	server, err := buildServer(ctx, cfg, base)
	if err != nil {
		return err
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(base), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if cfg.Metrics.TextfilePath != "" {
		tree.AddTelemetryService(services.NewTextfileService(
			cfg.Metrics.TextfilePath, cfg.Metrics.TextfileInterval, metrics.WriteTextfile, base))
	}

	logger.Info().
		Str("addr", cfg.Server.Addr).
		Int("rate_limit", cfg.Server.RateLimit).
		Msg("Serving recommendations")

	err = tree.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	logger.Info().Msg("Server stopped")
	return nil
}

// buildServer loads both datasets and returns an unstarted HTTP server for
// them.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func buildServer(ctx context.Context, cfg *config.Config, base zerolog.Logger) (*http.Server, error) {
	loader := dataset.NewLoader(dataset.Config{StrictIDs: cfg.Data.StrictIDs}, base)
	defer recordLoadMetrics(loader)

	users, err := loader.LoadUsers(ctx, cfg.Data.UsersPath)
	if err != nil {
		return nil, err
	}
	posts, err := loader.LoadPosts(ctx, cfg.Data.PostsPath)
	if err != nil {
		return nil, err
	}

	engine, err := recommend.NewEngine(recommendConfig(cfg), algorithms.NewOverlap(), base)
	if err != nil {
		return nil, err
	}
	handler, err := api.NewHandler(engine, users, posts, api.HandlerConfig{
		UserLimit: cfg.Recommend.UserLimit,
		PostLimit: cfg.Recommend.PostLimit,
		MaxLimit:  cfg.Recommend.MaxLimit,
		CacheSize: cfg.Server.CacheSize,
	}, base)
	if err != nil {
		return nil, err
	}

	router := api.NewRouter(handler, api.MiddlewareConfig{
		CORSOrigins:       cfg.Server.CORSOrigins,
		RateLimitRequests: cfg.Server.RateLimit,
		RateLimitWindow:   time.Minute,
	}, nil)

	return &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}, nil
}
