// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires h into a Chi router. gatherer backs GET /metrics; nil
// selects prometheus.DefaultGatherer.
func NewRouter(h *Handler, cfg MiddlewareConfig, gatherer prometheus.Gatherer) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestID)
	if mw := CORS(cfg.CORSOrigins); mw != nil {
		r.Use(mw)
	}

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		if mw := RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow); mw != nil {
			r.Use(mw)
		}
		r.Use(Instrument(h.logger))
		r.Use(chimiddleware.Compress(5, "application/json"))

		r.Get("/health", h.Health)
		r.Route("/users/{id}", func(r chi.Router) {
			r.Get("/", h.User)
			r.Get("/similar", h.SimilarUsers)
			r.Get("/posts", h.MatchingPosts)
			r.Get("/recommendations", h.Recommendations)
		})
	})

	return r
}
