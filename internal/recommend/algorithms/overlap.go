// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package algorithms

import "github.com/tomtom215/affinity/internal/tags"

// OverlapName is the identifier of the overlap scorer.
const OverlapName = "overlap"

// Overlap scores two tag sets by the number of tags they share:
//
//	score(a, b) = |a ∩ b|
//
// The score is symmetric, score(S, S) == |S| and score(S, ∅) == 0. No
// weighting is applied: every shared tag counts exactly once.
type Overlap struct {
	BaseScorer
}

// NewOverlap creates the overlap scorer.
func NewOverlap() Overlap {
	return Overlap{BaseScorer: NewBaseScorer(OverlapName)}
}

// Score returns the size of the intersection of a and b.
func (Overlap) Score(a, b tags.Set) int {
	return intersectionSize(a, b)
}
