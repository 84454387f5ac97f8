// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package cache provides a bounded, thread-safe LRU cache.
//
// The serve command uses it to memoize ranked lists per user and limit.
// The datasets never change while serving, so entries do not expire; the
// capacity alone bounds memory.
//
//	c := cache.NewLRU[string, []int](1024)
//	c.Add("k", []int{1, 2})
//	if v, ok := c.Get("k"); ok {
//	    _ = v
//	}
package cache
