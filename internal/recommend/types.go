// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"cmp"
	"slices"

	"github.com/tomtom215/affinity/internal/recommend/algorithms"
	"github.com/tomtom215/affinity/internal/tags"
)

// Candidate is anything that can be ranked against a subject's tag set.
// models.User and models.Post both satisfy it.
type Candidate interface {
	// Key returns the unique identifier within the candidate's collection.
	Key() uint32

	// TagSet returns the canonical tags to score.
	TagSet() tags.Set
}

// Scored pairs a candidate with its score against the subject.
// It only exists while a list is being ranked or rendered.
type Scored[T Candidate] struct {
	// Item is the ranked candidate.
	Item T `json:"item"`

	// Score is the similarity to the subject, always > 0 in ranked output.
	Score int `json:"score"`
}

// RankOptions controls a single ranking pass.
type RankOptions struct {
	// TieBreak orders candidates with equal scores.
	// The zero value behaves like TieBreakStable.
	TieBreak TieBreak

	// Exclude is a set of candidate keys that are never scored.
	Exclude map[uint32]struct{}
}

// Rank scores every candidate in pool against subject, discards candidates
// scoring zero, sorts the rest by descending score and returns at most limit
// entries.
//
// The sort is stable, so candidates with equal scores keep their pool order
// unless opts.TieBreak is TieBreakID. A non-positive limit returns an empty,
// non-nil slice.
func Rank[T Candidate](scorer algorithms.Scorer, subject tags.Set, pool []T, limit int, opts RankOptions) []Scored[T] {
	if limit <= 0 || len(subject) == 0 {
		return []Scored[T]{}
	}

	scored := make([]Scored[T], 0, min(len(pool), 64))
	for _, c := range pool {
		if _, skip := opts.Exclude[c.Key()]; skip {
			continue
		}
		score := scorer.Score(c.TagSet(), subject)
		if score <= 0 {
			continue
		}
		scored = append(scored, Scored[T]{Item: c, Score: score})
	}

	slices.SortStableFunc(scored, func(a, b Scored[T]) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		if opts.TieBreak == TieBreakID {
			return cmp.Compare(a.Item.Key(), b.Item.Key())
		}
		return 0
	})

	if len(scored) > limit {
		scored = slices.Clip(scored[:limit])
	}
	return scored
}

// Items strips the scores from a ranked list.
func Items[T Candidate](scored []Scored[T]) []T {
	out := make([]T, len(scored))
	for i, s := range scored {
		out[i] = s.Item
	}
	return out
}
