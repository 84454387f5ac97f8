// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/tomtom215/affinity/internal/cache"
	"github.com/tomtom215/affinity/internal/metrics"
	"github.com/tomtom215/affinity/internal/models"
	"github.com/tomtom215/affinity/internal/recommend"
	"github.com/tomtom215/affinity/internal/report"
)

// Handler answers recommendation queries against an in-memory snapshot of
// both datasets. It is safe for concurrent use.
type Handler struct {
	engine    *recommend.Engine
	users     []models.User
	posts     []models.Post
	byID      map[uint32]int
	userLimit int
	postLimit int
	maxLimit  int
	logger    zerolog.Logger

	// nil when caching is disabled
	similarCache *cache.LRU[listKey, []recommend.Scored[models.User]]
	postsCache   *cache.LRU[listKey, []recommend.Scored[models.Post]]
}

// listKey identifies one ranked list.
type listKey struct {
	userID uint32
	limit  int
}

// HandlerConfig sets the list lengths used when a request has no limit.
type HandlerConfig struct {
	UserLimit int
	PostLimit int

	// MaxLimit is the largest limit a request may ask for. 0 uses the
	// engine's Limits.MaxK.
	MaxLimit int

	// CacheSize is the number of ranked lists of each kind to memoize.
	// 0 disables caching.
	CacheSize int
}

// NewHandler creates a Handler over users and posts. When an id appears more
// than once, lookups resolve to its first occurrence.
func NewHandler(engine *recommend.Engine, users []models.User, posts []models.Post, cfg HandlerConfig, logger zerolog.Logger) (*Handler, error) {
	if engine == nil {
		return nil, errors.New("api: engine is required")
	}
	if cfg.UserLimit < 0 || cfg.PostLimit < 0 {
		return nil, fmt.Errorf("api: limits must be non-negative, got users=%d posts=%d", cfg.UserLimit, cfg.PostLimit)
	}
	if cfg.MaxLimit < 0 {
		return nil, fmt.Errorf("api: max limit must be non-negative, got %d", cfg.MaxLimit)
	}
	if cfg.MaxLimit == 0 {
		cfg.MaxLimit = engine.Config().Limits.MaxK
	}
	if cfg.CacheSize < 0 {
		return nil, fmt.Errorf("api: cache size must be non-negative, got %d", cfg.CacheSize)
	}

	byID := make(map[uint32]int, len(users))
	for i, u := range users {
		if _, seen := byID[u.ID]; !seen {
			byID[u.ID] = i
		}
	}

	metrics.DatasetSize.WithLabelValues("users").Set(float64(len(users)))
	metrics.DatasetSize.WithLabelValues("posts").Set(float64(len(posts)))

	h := &Handler{
		engine:    engine,
		users:     users,
		posts:     posts,
		byID:      byID,
		userLimit: cfg.UserLimit,
		postLimit: cfg.PostLimit,
		maxLimit:  cfg.MaxLimit,
		logger:    logger.With().Str("component", "api").Logger(),
	}
	if cfg.CacheSize > 0 {
		h.similarCache = cache.NewLRU[listKey, []recommend.Scored[models.User]](cfg.CacheSize)
		h.postsCache = cache.NewLRU[listKey, []recommend.Scored[models.Post]](cfg.CacheSize)
	}
	return h, nil
}

// similarUsers ranks users against user, consulting the cache when enabled.
// Cached slices are shared between responses and must not be modified.
func (h *Handler) similarUsers(user models.User, limit int) []recommend.Scored[models.User] {
	compute := func() []recommend.Scored[models.User] {
		return h.engine.ScoreUsers(user, h.users, limit)
	}
	if h.similarCache == nil {
		return compute()
	}
	list, hit := h.similarCache.GetOrCompute(listKey{userID: user.ID, limit: limit}, compute)
	metrics.RecordCacheLookup(metrics.ListUsers, hit)
	return list
}

// matchingPosts ranks posts against user, consulting the cache when enabled.
func (h *Handler) matchingPosts(user models.User, limit int) []recommend.Scored[models.Post] {
	compute := func() []recommend.Scored[models.Post] {
		return h.engine.ScorePosts(user, h.posts, limit)
	}
	if h.postsCache == nil {
		return compute()
	}
	list, hit := h.postsCache.GetOrCompute(listKey{userID: user.ID, limit: limit}, compute)
	metrics.RecordCacheLookup(metrics.ListPosts, hit)
	return list
}

// healthResponse is the body of GET /api/v1/health.
type healthResponse struct {
	Status string `json:"status"`
	Users  int    `json:"users"`
	Posts  int    `json:"posts"`
	Scorer string `json:"scorer"`
}

// similarResponse is the body of GET /api/v1/users/{id}/similar.
type similarResponse struct {
	User         models.User                     `json:"user"`
	SimilarUsers []recommend.Scored[models.User] `json:"similar_users"`
}

// postsResponse is the body of GET /api/v1/users/{id}/posts.
type postsResponse struct {
	User  models.User                     `json:"user"`
	Posts []recommend.Scored[models.Post] `json:"recommended_posts"`
}

// Health handles GET /api/v1/health.
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	respondData(w, time.Now(), healthResponse{
		Status: "ok",
		Users:  len(h.users),
		Posts:  len(h.posts),
		Scorer: h.engine.ScorerName(),
	})
}

// User handles GET /api/v1/users/{id}.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	user, ok := h.lookupUser(w, r)
	if !ok {
		return
	}
	respondData(w, start, user)
}

// SimilarUsers handles GET /api/v1/users/{id}/similar.
func (h *Handler) SimilarUsers(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	user, ok := h.lookupUser(w, r)
	if !ok {
		return
	}
	limit, ok := parseLimit(w, r, h.userLimit, h.maxLimit)
	if !ok {
		return
	}

	similar := h.similarUsers(user, limit)
	metrics.RecordRecommendations(metrics.ListUsers, len(similar))

	respondData(w, start, similarResponse{User: user, SimilarUsers: similar})
}

// MatchingPosts handles GET /api/v1/users/{id}/posts.
func (h *Handler) MatchingPosts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	user, ok := h.lookupUser(w, r)
	if !ok {
		return
	}
	limit, ok := parseLimit(w, r, h.postLimit, h.maxLimit)
	if !ok {
		return
	}

	posts := h.matchingPosts(user, limit)
	metrics.RecordRecommendations(metrics.ListPosts, len(posts))

	respondData(w, start, postsResponse{User: user, Posts: posts})
}

// Recommendations handles GET /api/v1/users/{id}/recommendations and
// returns the same entry the report prints for the user.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	user, ok := h.lookupUser(w, r)
	if !ok {
		return
	}

	entry := report.Entry{
		User:         user,
		SimilarUsers: h.similarUsers(user, h.userLimit),
		Posts:        h.matchingPosts(user, h.postLimit),
	}
	metrics.RecordRecommendations(metrics.ListUsers, len(entry.SimilarUsers))
	metrics.RecordRecommendations(metrics.ListPosts, len(entry.Posts))

	respondData(w, start, entry)
}

// NotFound is the router's fallback for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, CodeNotFound, "no route for "+r.URL.Path)
}

// MethodNotAllowed is the router's fallback for known paths with the wrong
// method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, CodeMethod, r.Method+" is not allowed on "+r.URL.Path)
}

// lookupUser resolves the {id} URL parameter, writing an error response
// when it is malformed or unknown.
func (h *Handler) lookupUser(w http.ResponseWriter, r *http.Request) (models.User, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
	if err != nil {
		respondError(w, http.StatusBadRequest, CodeInvalidUserID, fmt.Sprintf("invalid user id %q", raw))
		return models.User{}, false
	}

	idx, ok := h.byID[uint32(id)]
	if !ok {
		respondError(w, http.StatusNotFound, CodeUserNotFound, fmt.Sprintf("user %d not found", id))
		return models.User{}, false
	}
	return h.users[idx], true
}

// parseLimit reads the limit query parameter, falling back to def. Values
// above maxLimit are rejected so each cached list stays bounded.
func parseLimit(w http.ResponseWriter, r *http.Request, def, maxLimit int) (int, bool) {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return def, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondError(w, http.StatusBadRequest, CodeInvalidLimit, fmt.Sprintf("limit must be a non-negative integer, got %q", raw))
		return 0, false
	}
	if limit > maxLimit {
		respondError(w, http.StatusBadRequest, CodeInvalidLimit, fmt.Sprintf("limit must be at most %d, got %d", maxLimit, limit))
		return 0, false
	}
	return limit, true
}
