// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package config

import (
	"fmt"
	"path/filepath"

	"github.com/tomtom215/affinity/internal/validation"
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	return c.validatePaths()
}

// validatePaths rejects an output or metrics file that would overwrite an
// input dataset.
func (c *Config) validatePaths() error {
	inputs := map[string]string{
		filepath.Clean(c.Data.UsersPath): "data.users_path",
		filepath.Clean(c.Data.PostsPath): "data.posts_path",
	}

	if c.Report.Output != "" {
		if key, clash := inputs[filepath.Clean(c.Report.Output)]; clash {
			return fmt.Errorf("report.output must not be the same file as %s", key)
		}
	}
	if c.Metrics.TextfilePath != "" {
		if key, clash := inputs[filepath.Clean(c.Metrics.TextfilePath)]; clash {
			return fmt.Errorf("metrics.textfile_path must not be the same file as %s", key)
		}
	}

	return nil
}
