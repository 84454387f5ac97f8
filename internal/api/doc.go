// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package api serves recommendations over HTTP using the Chi router.
//
// The server holds both datasets in memory, loaded once at startup, and
// answers read-only queries against them with the same engine the report
// command uses.
//
// # Endpoints
//
//	GET /api/v1/health                       dataset sizes and scorer name
//	GET /api/v1/users/{id}                   one user
//	GET /api/v1/users/{id}/similar?limit=N   users sharing the most tags
//	GET /api/v1/users/{id}/posts?limit=N     posts sharing the most tags
//	GET /api/v1/users/{id}/recommendations   both lists, as in the report
//	GET /metrics                             Prometheus metrics
//
// Every response uses the models.APIResponse envelope. A missing limit uses
// the configured list length; a limit above the configured maximum is
// rejected with INVALID_LIMIT.
//
// # Middleware
//
// Applied in order: RealIP, Recoverer, RequestID, CORS (when origins are
// configured), per-IP rate limiting (go-chi/httprate), request metrics and
// gzip compression of JSON bodies.
//
// # Caching
//
// With HandlerConfig.CacheSize set, ranked lists are memoized per user id
// and limit in a bounded LRU. The snapshot never changes while serving, so
// cached lists never go stale.
package api
