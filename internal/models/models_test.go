// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package models

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/affinity/internal/tags"
)

func TestUser_Accessors(t *testing.T) {
	u := User{ID: 3, Username: "alice", Preferences: tags.Parse("Tech, Gaming_")}

	if u.Key() != 3 {
		t.Errorf("Key() = %d, want 3", u.Key())
	}
	if !u.TagSet().Contains("gaming") || !u.TagSet().Contains("tech") {
		t.Errorf("TagSet() = %v", u.TagSet())
	}
}

func TestPost_Accessors(t *testing.T) {
	p := Post{ID: 9, Title: "Post: #9", Tags: tags.NewSet("rock")}

	if p.Key() != 9 {
		t.Errorf("Key() = %d, want 9", p.Key())
	}
	if p.TagSet().Len() != 1 {
		t.Errorf("TagSet().Len() = %d, want 1", p.TagSet().Len())
	}
}

func TestUser_JSON(t *testing.T) {
	u := User{ID: 1, Username: "bob", Preferences: tags.NewSet("tech", "anime")}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	want := `{"id":1,"username":"bob","preferences":["anime","tech"]}`
	if string(data) != want {
		t.Errorf("Marshal = %s, want %s", data, want)
	}
}

func TestPost_JSONRoundTripNormalizes(t *testing.T) {
	var p Post
	if err := json.Unmarshal([]byte(`{"id":2,"title":"x","tags":["ROCK_"," Go "]}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if got := strings.Join(p.Tags.Sorted(), ","); got != "go,rock" {
		t.Errorf("tags = %s, want go,rock", got)
	}
}
