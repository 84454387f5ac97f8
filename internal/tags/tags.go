// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package tags canonicalizes free-form tag and preference tokens and provides
// the Set type every scorer operates on.
//
// Source data spells the same tag many ways ("Rock", "ROCK_", " rock "). All
// of them collapse to one canonical token:
//
//	tags.Normalize(" Tech_Gadgets ") // "techgadgets"
//
// A Set only ever holds canonical tokens when built with Parse. NewSet trusts
// its caller and stores tokens verbatim.
package tags

import (
	"sort"
	"strings"

	"github.com/goccy/go-json"
)

// Separator splits a raw tag field into tokens.
const Separator = ","

// Normalize returns the canonical form of a raw token: surrounding whitespace
// trimmed, lowercased, and every underscore removed.
// Normalize is idempotent.
func Normalize(raw string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(raw)), "_", "")
}

// Set is an unordered collection of canonical tags.
type Set map[string]struct{}

// NewSet builds a set from tokens that are already canonical.
func NewSet(canonical ...string) Set {
	s := make(Set, len(canonical))
	for _, t := range canonical {
		s[t] = struct{}{}
	}
	return s
}

// Parse splits a comma-separated field, normalizes each token and collects
// the results. Tokens that normalize to the empty string are dropped, so
// "tech,,gaming," yields {gaming, tech} and "" yields the empty set.
func Parse(field string) Set {
	parts := strings.Split(field, Separator)
	s := make(Set, len(parts))
	for _, p := range parts {
		if t := Normalize(p); t != "" {
			s[t] = struct{}{}
		}
	}
	return s
}

// Contains reports whether tag is in the set.
func (s Set) Contains(tag string) bool {
	_, ok := s[tag]
	return ok
}

// Len returns the number of tags.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the tags in ascending order.
func (s Set) Sorted() []string {
	out := make([]string, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// String renders the set as {a, b, c} with tags sorted.
func (s Set) String() string {
	return "{" + strings.Join(s.Sorted(), ", ") + "}"
}

// MarshalJSON encodes the set as a sorted array.
func (s Set) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

// UnmarshalJSON decodes an array of tags, normalizing each entry.
func (s *Set) UnmarshalJSON(data []byte) error {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(Set, len(raw))
	for _, r := range raw {
		if t := Normalize(r); t != "" {
			out[t] = struct{}{}
		}
	}
	*s = out
	return nil
}
