// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/tomtom215/affinity/internal/logging"
	"github.com/tomtom215/affinity/internal/metrics"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// MiddlewareConfig holds CORS and rate limiting settings.
type MiddlewareConfig struct {
	// CORSOrigins lists allowed browser origins. Empty installs no CORS
	// handler, so cross-origin requests get no Access-Control headers.
	CORSOrigins []string

	// RateLimitRequests is the number of requests allowed per client IP in
	// each RateLimitWindow. 0 disables rate limiting.
	RateLimitRequests int

	// RateLimitWindow is the rate limiting window.
	// Default: 1 minute
	RateLimitWindow time.Duration
}

// RequestID reuses an incoming X-Request-ID or generates one, echoes it in
// the response and stores it in the request context for logging.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logging.ContextWithRequestID(r.Context(), id)))
	})
}

// CORS returns the go-chi/cors handler for origins, or nil when origins is
// empty. go-chi/cors treats an empty list as "allow all".
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		return nil
	}
	return cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
		MaxAge:         86400,
	})
}

// RateLimit returns a per-IP go-chi/httprate limiter, or nil when requests
// is 0. Rejected requests get a RATE_LIMITED error envelope.
func RateLimit(requests int, window time.Duration) func(http.Handler) http.Handler {
	if requests <= 0 {
		return nil
	}
	if window <= 0 {
		window = time.Minute
	}
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			respondError(w, http.StatusTooManyRequests, CodeRateLimited, "rate limit exceeded")
		}),
	)
}

// Instrument records Prometheus metrics for each request under its route
// pattern and logs it at debug level.
func Instrument(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			metrics.TrackActiveRequest(true)
			defer metrics.TrackActiveRequest(false)

			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			duration := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			route := routePattern(r)
			metrics.RecordAPIRequest(r.Method, route, strconv.Itoa(status), duration)

			l := logger.With().Str("request_id", logging.RequestIDFromContext(r.Context())).Logger()
			l.Debug().
				Str("method", r.Method).
				Str("route", route).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", duration).
				Msg("Request served")
		})
	}
}

// routePattern returns the matched Chi route, or "unmatched" so unknown
// paths do not each become a label value.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return "unmatched"
}
