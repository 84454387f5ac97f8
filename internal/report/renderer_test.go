// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/affinity/internal/models"
	"github.com/tomtom215/affinity/internal/recommend"
	"github.com/tomtom215/affinity/internal/tags"
)

func sampleEntries() []Entry {
	alice := models.User{ID: 1, Username: "alice", Preferences: tags.NewSet("tech", "gaming")}
	bob := models.User{ID: 2, Username: "bob", Preferences: tags.NewSet("tech")}
	return []Entry{
		{
			User:         alice,
			SimilarUsers: []recommend.Scored[models.User]{{Item: bob, Score: 1}},
			Posts: []recommend.Scored[models.Post]{
				{Item: models.Post{ID: 2, Title: "P2", Tags: tags.NewSet("gaming", "tech")}, Score: 2},
				{Item: models.Post{ID: 1, Title: "P1", Tags: tags.NewSet("tech", "music")}, Score: 1},
			},
		},
		{
			User:         models.User{ID: 3, Username: "carol", Preferences: tags.NewSet()},
			SimilarUsers: []recommend.Scored[models.User]{},
			Posts:        []recommend.Scored[models.Post]{},
		},
	}
}

func TestNewRenderer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format   string
		wantName string
		wantErr  bool
	}{
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{" JSON ", FormatJSON, false},
		{"xml", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()
			r, err := NewRenderer(tt.format)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownFormat) {
					t.Errorf("err = %v, want ErrUnknownFormat", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewRenderer: %v", err)
			}
			if r.Name() != tt.wantName {
				t.Errorf("Name() = %q, want %q", r.Name(), tt.wantName)
			}
		})
	}
}

func TestTextRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (TextRenderer{}).Render(&buf, sampleEntries()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	want := `
========== Recommended users and posts ==========

User alice (ID: 1)
Preferences: {gaming, tech}
Recommended users:
  1. bob (ID: 2) - Preferences: {tech}
Recommended posts:
  1. P2 (ID: 2) - Tags: {gaming, tech}
  2. P1 (ID: 1) - Tags: {music, tech}

------------------------------------------------------------

User carol (ID: 3)
Preferences: {}
Recommended users:
Recommended posts:

------------------------------------------------------------
`
	if got := buf.String(); got != want {
		t.Errorf("Render output mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
}

func TestJSONRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (JSONRenderer{}).Render(&buf, sampleEntries()); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var doc struct {
		Subjects int `json:"subjects"`
		Entries  []struct {
			User struct {
				ID          uint32   `json:"id"`
				Username    string   `json:"username"`
				Preferences []string `json:"preferences"`
			} `json:"user"`
			SimilarUsers []struct {
				Item struct {
					ID uint32 `json:"id"`
				} `json:"item"`
				Score int `json:"score"`
			} `json:"similar_users"`
			Posts []struct {
				Item struct {
					ID   uint32   `json:"id"`
					Tags []string `json:"tags"`
				} `json:"item"`
				Score int `json:"score"`
			} `json:"recommended_posts"`
		} `json:"entries"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("Unmarshal: %v\n%s", err, buf.String())
	}

	if doc.Subjects != 2 || len(doc.Entries) != 2 {
		t.Fatalf("subjects = %d, entries = %d", doc.Subjects, len(doc.Entries))
	}
	first := doc.Entries[0]
	if first.User.Username != "alice" || len(first.User.Preferences) != 2 || first.User.Preferences[0] != "gaming" {
		t.Errorf("user = %+v", first.User)
	}
	if len(first.Posts) != 2 || first.Posts[0].Item.ID != 2 || first.Posts[0].Score != 2 {
		t.Errorf("posts = %+v", first.Posts)
	}
	if len(first.SimilarUsers) != 1 || first.SimilarUsers[0].Score != 1 {
		t.Errorf("similar users = %+v", first.SimilarUsers)
	}
	if len(doc.Entries[1].Posts) != 0 {
		t.Errorf("posts = %+v, want none", doc.Entries[1].Posts)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"recommended_posts":[]`)) {
		t.Errorf("empty list should encode as [], got:\n%s", buf.String())
	}
}

func TestJSONRenderer_EmptyReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := (JSONRenderer{}).Render(&buf, nil); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := buf.String(); got != "{\"subjects\":0,\"entries\":[]}\n" {
		t.Errorf("Render = %q", got)
	}
}
