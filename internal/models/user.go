// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package models

import "github.com/tomtom215/affinity/internal/tags"

// User is one row of the users dataset.
type User struct {
	// ID is the unique user identifier from the id column.
	ID uint32 `json:"id"`

	// Username is the display name.
	Username string `json:"username"`

	// Preferences holds the canonical preference tags.
	// An empty set is legal and never produces recommendations.
	Preferences tags.Set `json:"preferences"`
}

// Key returns the user ID.
func (u User) Key() uint32 {
	return u.ID
}

// TagSet returns the preference set.
func (u User) TagSet() tags.Set {
	return u.Preferences
}
