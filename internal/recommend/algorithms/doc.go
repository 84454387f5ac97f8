// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package algorithms implements the similarity scorers used by the
// recommendation engine.
//
// A scorer compares two canonical tag sets and returns a non-negative integer.
// Scorers never normalize their inputs: callers must pass sets built by
// tags.Parse (the dataset loader does this for every entity).
//
// # Scorers
//
//   - Overlap: size of the set intersection |A ∩ B|
//
// # Interface
//
// All scorers implement the Scorer interface:
//
//	type Scorer interface {
//	    Name() string
//	    Score(a, b tags.Set) int
//	}
//
// # Usage Example
//
//	scorer := algorithms.NewOverlap()
//	score := scorer.Score(tags.Parse("tech, gaming"), tags.Parse("Tech, music"))
//	// score == 1
//
// # Thread Safety
//
// Scorers are stateless after construction and safe for concurrent use.
package algorithms
