// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package recommend

import (
	"errors"
	"reflect"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tomtom215/affinity/internal/models"
	"github.com/tomtom215/affinity/internal/recommend/algorithms"
	"github.com/tomtom215/affinity/internal/tags"
)

func newTestEngine(t *testing.T, modify func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if modify != nil {
		modify(cfg)
	}
	e, err := NewEngine(cfg, algorithms.NewOverlap(), zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func user(id uint32, prefs ...string) models.User {
	return models.User{ID: id, Username: "u", Preferences: tags.NewSet(prefs...)}
}

func postIDs(posts []models.Post) []uint32 {
	out := make([]uint32, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func userIDs(users []models.User) []uint32 {
	out := make([]uint32, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}

// =============================================================================
// Construction
// =============================================================================

func TestNewEngine(t *testing.T) {
	t.Parallel()

	t.Run("nil config uses defaults", func(t *testing.T) {
		e, err := NewEngine(nil, algorithms.NewOverlap(), zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		if got := e.Config(); !reflect.DeepEqual(got, *DefaultConfig()) {
			t.Errorf("Config() = %+v, want defaults", got)
		}
		if e.ScorerName() != algorithms.OverlapName {
			t.Errorf("ScorerName() = %q", e.ScorerName())
		}
	})

	t.Run("nil scorer", func(t *testing.T) {
		_, err := NewEngine(DefaultConfig(), nil, zerolog.Nop())
		if !errors.Is(err, ErrNilScorer) {
			t.Errorf("err = %v, want ErrNilScorer", err)
		}
	})

	t.Run("invalid config", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Limits.MaxK = 0
		if _, err := NewEngine(cfg, algorithms.NewOverlap(), zerolog.Nop()); err == nil {
			t.Error("expected error for invalid config")
		}
	})

	t.Run("config is copied", func(t *testing.T) {
		cfg := DefaultConfig()
		e, err := NewEngine(cfg, algorithms.NewOverlap(), zerolog.Nop())
		if err != nil {
			t.Fatalf("NewEngine: %v", err)
		}
		cfg.Limits.MaxK = 1
		if e.Config().Limits.MaxK != 100 {
			t.Error("engine config changed after caller mutation")
		}
	})
}

// =============================================================================
// RecommendPosts
// =============================================================================

func TestRecommendPosts(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	u := user(1, "tech", "gaming")
	posts := []models.Post{
		post(1, "tech", "music"),
		post(2, "gaming", "tech"),
		post(3, "cooking"),
	}

	got := e.RecommendPosts(u, posts, 5)
	if want := []uint32{2, 1}; !reflect.DeepEqual(postIDs(got), want) {
		t.Errorf("RecommendPosts = %v, want %v", postIDs(got), want)
	}
}

func TestRecommendPosts_EdgeCases(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	posts := []models.Post{post(1, "a"), post(2, "a", "b"), post(3, "b")}

	tests := []struct {
		name  string
		user  models.User
		posts []models.Post
		limit int
		want  []uint32
	}{
		{"empty preferences", user(1), posts, 5, []uint32{}},
		{"empty pool", user(1, "a"), nil, 5, []uint32{}},
		{"zero limit", user(1, "a"), posts, 0, []uint32{}},
		{"negative limit", user(1, "a"), posts, -1, []uint32{}},
		{"fewer matches than limit", user(1, "b"), posts, 10, []uint32{2, 3}},
		{"no matches", user(1, "z"), posts, 5, []uint32{}},
		{"post ids may equal user id", user(2, "a"), posts, 5, []uint32{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := e.RecommendPosts(tt.user, tt.posts, tt.limit)
			if got == nil {
				t.Fatal("RecommendPosts returned nil")
			}
			if !reflect.DeepEqual(postIDs(got), tt.want) {
				t.Errorf("got %v, want %v", postIDs(got), tt.want)
			}
		})
	}
}

func TestRecommendPosts_LimitAboveMaxK(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	posts := make([]models.Post, 150)
	for i := range posts {
		posts[i] = post(uint32(i+1), "tech")
	}
	subject := user(9, "tech")

	tests := []struct {
		limit int
		want  int
	}{
		{limit: 120, want: 120},
		{limit: 150, want: 150},
		{limit: 500, want: 150},
	}
	for _, tt := range tests {
		if got := len(e.RecommendPosts(subject, posts, tt.limit)); got != tt.want {
			t.Errorf("limit %d: len = %d, want %d", tt.limit, got, tt.want)
		}
	}

	users := make([]models.User, 130)
	for i := range users {
		users[i] = user(uint32(i+100), "tech")
	}
	if got := len(e.RecommendUsers(subject, users, 110)); got != 110 {
		t.Errorf("RecommendUsers len = %d, want 110", got)
	}
}

// =============================================================================
// RecommendUsers
// =============================================================================

func TestRecommendUsers(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	users := []models.User{
		user(1, "a", "b", "c"),
		user(2, "a", "b"),
		user(3, "a", "c"),
		user(4, "z"),
	}

	got := e.RecommendUsers(users[0], users, 5)
	if want := []uint32{2, 3}; !reflect.DeepEqual(userIDs(got), want) {
		t.Errorf("RecommendUsers = %v, want %v", userIDs(got), want)
	}
}

func TestRecommendUsers_ExcludesTarget(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	target := user(7, "a", "b")
	users := []models.User{user(1, "a"), target, user(3, "a", "b")}

	for _, u := range e.RecommendUsers(target, users, 10) {
		if u.ID == target.ID {
			t.Errorf("target %d appears in its own list", target.ID)
		}
	}

	// A target absent from the pool is still excluded by ID only.
	outsider := user(99, "a")
	got := e.RecommendUsers(outsider, users, 10)
	if want := []uint32{1, 7, 3}; !reflect.DeepEqual(userIDs(got), want) {
		t.Errorf("outsider list = %v, want %v", userIDs(got), want)
	}
}

func TestRecommendUsers_TieBreakID(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, func(c *Config) { c.TieBreak = TieBreakID })
	users := []models.User{user(1, "a"), user(40, "a"), user(8, "a"), user(3, "a", "b")}

	got := e.RecommendUsers(user(1, "a", "b"), users, 10)
	if want := []uint32{3, 8, 40}; !reflect.DeepEqual(userIDs(got), want) {
		t.Errorf("got %v, want %v", userIDs(got), want)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	users := []models.User{user(1, "a", "b"), user(2, "a"), user(3, "b"), user(4, "a", "b")}

	first := userIDs(e.RecommendUsers(users[0], users, 5))
	for i := 0; i < 20; i++ {
		if got := userIDs(e.RecommendUsers(users[0], users, 5)); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d = %v, want %v", i, got, first)
		}
	}
}

func TestEngine_ConcurrentUse(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, nil)
	users := []models.User{user(1, "a", "b"), user(2, "a"), user(3, "b")}
	posts := []models.Post{post(1, "a"), post(2, "b"), post(3, "a", "b")}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = e.RecommendUsers(users[0], users, 5)
			_ = e.RecommendPosts(users[0], posts, 5)
		}()
	}
	wg.Wait()
}
