// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/affinity/internal/generate"
	"github.com/tomtom215/affinity/internal/logging"
)

func newGenerateCmd() *cobra.Command {
	var (
		opts   generate.Options
		outDir string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write synthetic users.csv and posts.csv",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ctx = logging.ContextWithNewRunID(ctx)
			logger := logging.CtxWith(ctx).Str("component", "generate").Logger()
			return generate.WriteDir(ctx, outDir, opts, logger)
		},
	}

	f := cmd.Flags()
	f.IntVar(&opts.Users, "users", 10000, "number of users")
	f.IntVar(&opts.Posts, "posts", 10000, "number of posts")
	f.Uint64Var(&opts.Seed, "seed", 1, "random seed")
	f.StringVar(&outDir, "out-dir", ".", "directory to write users.csv and posts.csv into")

	return cmd
}
