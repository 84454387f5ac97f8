// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

/*
Package models defines the entities Affinity loads and ranks.

Key Components:

  - User: a person with a set of stated preferences
  - Post: a piece of content with a set of descriptive tags
  - APIResponse: the JSON envelope returned by the HTTP API

Both entities are created once by the dataset loader and treated as read-only
for the rest of a run. Their tag sets only contain canonical tokens (see
package tags), which is what makes raw set intersection a meaningful score.

Usage Example:

	import "github.com/tomtom215/affinity/internal/models"

	user := models.User{
	    ID:          7,
	    Username:    "alice",
	    Preferences: tags.Parse("Tech, gaming_"),
	}

JSON Serialization:

All models carry json struct tags for the JSON report renderer. Tag sets are
encoded as sorted arrays so output is stable between runs.
*/
package models
