// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package recommend ranks users and posts against a subject user's
// preferences.
//
// # Architecture
//
// Ranking is a single generic pass shared by every candidate type:
//
//   - Score: each candidate's tag set is scored against the subject's
//     preferences with an algorithms.Scorer
//   - Filter: candidates scoring zero are dropped
//   - Sort: stable descending by score, optionally ties by ascending ID
//   - Truncate: at most K results are kept
//
// # Usage
//
//	cfg := recommend.DefaultConfig()
//	engine, err := recommend.NewEngine(cfg, algorithms.NewOverlap(), logger)
//	if err != nil {
//	    return err
//	}
//
//	posts := engine.RecommendPosts(user, allPosts, cfg.Limits.Posts)
//	peers := engine.RecommendUsers(user, allUsers, cfg.Limits.Users)
//
// # Thread Safety
//
// An Engine holds no mutable state after construction and is safe for
// concurrent use. Callers must not mutate the candidate slices while a
// ranking call is in flight.
package recommend
