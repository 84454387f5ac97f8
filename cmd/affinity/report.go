// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/tomtom215/affinity/internal/config"
	"github.com/tomtom215/affinity/internal/dataset"
	"github.com/tomtom215/affinity/internal/logging"
	"github.com/tomtom215/affinity/internal/metrics"
	"github.com/tomtom215/affinity/internal/recommend"
	"github.com/tomtom215/affinity/internal/recommend/algorithms"
	"github.com/tomtom215/affinity/internal/report"
)

// reportFlagKeys maps report flags to the configuration keys they override.
// Only flags set on the command line are applied.
var reportFlagKeys = map[string]string{
	"users":            "data.users_path",
	"posts":            "data.posts_path",
	"subjects":         "report.subjects",
	"format":           "report.format",
	"output":           "report.output",
	"workers":          "report.workers",
	"tie-break":        "recommend.tie_break",
	"log-level":        "logging.level",
	"metrics-textfile": "metrics.textfile_path",
}

func newReportCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print similar users and matching posts for each subject user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides, err := flagOverrides(cmd.Flags(), reportFlagKeys)
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

			return runReport(ctx, cfg, cmd.OutOrStdout())
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "config file (default: $CONFIG_PATH, ./affinity.yaml or ./config.yaml)")
	f.String("users", "", "users CSV path")
	f.String("posts", "", "posts CSV path")
	f.Int("subjects", 0, "number of users, in load order, to report on")
	f.String("format", "", "report format: text or json")
	f.StringP("output", "o", "", "write the report to this file instead of stdout")
	f.Int("workers", 0, "concurrent subject scoring workers (0 = one per CPU)")
	f.String("tie-break", "", "ordering of equal scores: stable or id")
	f.String("log-level", "", "log level: trace, debug, info, warn, error")
	f.String("metrics-textfile", "", "write Prometheus metrics to this file on exit")

	return cmd
}

// flagOverrides collects the changed flags named in keys as configuration
// overrides.
func flagOverrides(flags *pflag.FlagSet, keys map[string]string) (map[string]interface{}, error) {
	overrides := make(map[string]interface{})
	for name, key := range keys {
		if !flags.Changed(name) {
			continue
		}
		var (
			value interface{}
			err   error
		)
		switch flags.Lookup(name).Value.Type() {
		case "int":
			value, err = flags.GetInt(name)
		case "stringSlice":
			value, err = flags.GetStringSlice(name)
		default:
			value, err = flags.GetString(name)
		}
		if err != nil {
			return nil, fmt.Errorf("flag --%s: %w", name, err)
		}
		overrides[key] = value
	}
	return overrides, nil
}

func loggingConfig(cfg *config.Config) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Logging.Level
	lc.Format = cfg.Logging.Format
	lc.Caller = cfg.Logging.Caller
	return lc
}

func recommendConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		TieBreak: recommend.TieBreak(cfg.Recommend.TieBreak),
		Limits: recommend.LimitsConfig{
			Users: cfg.Recommend.UserLimit,
			Posts: cfg.Recommend.PostLimit,
			MaxK:  cfg.Recommend.MaxLimit,
		},
	}
}

// runReport loads both datasets and writes the report to the configured
// output, falling back to stdout. Metrics are exported whether or not the
// run succeeds.
func runReport(ctx context.Context, cfg *config.Config, stdout io.Writer) (err error) {
	ctx = logging.ContextWithNewRunID(ctx)
	base := logging.CtxWith(ctx).Logger()
	logger := base.With().Str("component", "cli").Logger()

	if cfg.Metrics.TextfilePath != "" {
		defer func() {
			if werr := metrics.WriteTextfile(cfg.Metrics.TextfilePath); werr != nil {
				logger.Error().Err(werr).Msg("Failed to write metrics textfile")
				err = errors.Join(err, werr)
			}
		}()
	}

	logger.Info().
		Str("users_path", cfg.Data.UsersPath).
		Str("posts_path", cfg.Data.PostsPath).
		Int("subjects", cfg.Report.Subjects).
		Str("format", cfg.Report.Format).
		Msg("Configuration loaded")

	loader := dataset.NewLoader(dataset.Config{StrictIDs: cfg.Data.StrictIDs}, base)
	defer recordLoadMetrics(loader)

	users, err := loader.LoadUsers(ctx, cfg.Data.UsersPath)
	if err != nil {
		return err
	}
	posts, err := loader.LoadPosts(ctx, cfg.Data.PostsPath)
	if err != nil {
		return err
	}

	engine, err := recommend.NewEngine(recommendConfig(cfg), algorithms.NewOverlap(), base)
	if err != nil {
		return err
	}
	renderer, err := report.NewRenderer(cfg.Report.Format)
	if err != nil {
		return err
	}
	driver, err := report.NewDriver(engine, renderer, report.Config{
		Subjects:  cfg.Report.Subjects,
		Workers:   cfg.Report.Workers,
		UserLimit: cfg.Recommend.UserLimit,
		PostLimit: cfg.Recommend.PostLimit,
	}, base)
	if err != nil {
		return err
	}

	out := stdout
	if cfg.Report.Output != "" {
		f := &lazyFile{path: cfg.Report.Output}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		out = f
	}

	return driver.Run(ctx, users, posts, out)
}

func recordLoadMetrics(loader *dataset.Loader) {
	for _, s := range loader.Stats() {
		kind := ""
		if s.Err != nil {
			kind = dataset.ErrorKind(s.Err)
		}
		metrics.RecordLoad(s.Dataset, s.Rows, s.Duration(), kind)
	}
}

// lazyFile creates its file on the first Write, so a failed run leaves no
// empty report behind.
type lazyFile struct {
	path string
	f    *os.File
}

func (l *lazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.path)
		if err != nil {
			return 0, fmt.Errorf("create report output: %w", err)
		}
		l.f = f
	}
	return l.f.Write(p)
}

func (l *lazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}
