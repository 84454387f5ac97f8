// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package models

import "github.com/tomtom215/affinity/internal/tags"

// Post is one row of the posts dataset.
// Authorship is not modeled, so a post can be recommended to anyone.
type Post struct {
	ID    uint32   `json:"id"`
	Title string   `json:"title"`
	Tags  tags.Set `json:"tags"`
}

// Key returns the post ID.
func (p Post) Key() uint32 {
	return p.ID
}

// TagSet returns the tag set.
func (p Post) TagSet() tags.Set {
	return p.Tags
}
