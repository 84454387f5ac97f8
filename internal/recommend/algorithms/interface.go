// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package algorithms

import "github.com/tomtom215/affinity/internal/tags"

// Scorer computes the similarity of two canonical tag sets.
// Implementations must be symmetric, non-negative and free of side effects.
type Scorer interface {
	// Name returns the scorer identifier used in logs and configuration.
	Name() string

	// Score returns the similarity of a and b. Zero means "unrelated".
	Score(a, b tags.Set) int
}

// BaseScorer provides the common identity for all scorers.
type BaseScorer struct {
	name string
}

// NewBaseScorer creates a base scorer with the given name.
func NewBaseScorer(name string) BaseScorer {
	return BaseScorer{name: name}
}

// Name returns the scorer identifier.
func (b BaseScorer) Name() string {
	return b.name
}

// intersectionSize counts tags present in both sets.
// It walks the smaller set and probes the larger one.
func intersectionSize(a, b tags.Set) int {
	if len(a) > len(b) {
		a, b = b, a
	}

	count := 0
	for t := range a {
		if _, ok := b[t]; ok {
			count++
		}
	}
	return count
}

// Ensure all scorers implement the interface.
var _ Scorer = Overlap{}
