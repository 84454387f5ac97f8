// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "affinity",
		Short: "Tag overlap recommendations for users and posts",
		Long: `Affinity ranks users and posts by how many normalized tags they share
with a subject user and prints a short-list for each subject.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newReportCmd(), newServeCmd(), newGenerateCmd())
	return root
}
