// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Context keys for logging.
type contextKey string

const (
	// runIDKey is the context key for the run ID.
	runIDKey contextKey = "run_id"

	// requestIDKey is the context key for an HTTP request ID.
	requestIDKey contextKey = "request_id"

	// loggerKey is the context key for storing a logger instance.
	loggerKey contextKey = "logger"
)

// GenerateRunID creates a new unique run ID.
// Returns the first 8 characters of a UUID for readability.
func GenerateRunID() string {
	return uuid.New().String()[:8]
}

// ContextWithRunID returns a new context with the given run ID.
func ContextWithRunID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, runIDKey, id)
}

// ContextWithNewRunID returns a context with a newly generated run ID.
//
//	ctx = logging.ContextWithNewRunID(ctx)
func ContextWithNewRunID(ctx context.Context) context.Context {
	return ContextWithRunID(ctx, GenerateRunID())
}

// RunIDFromContext retrieves the run ID from context.
// Returns empty string if not present.
func RunIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(runIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithRequestID returns a new context with the given request ID.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext retrieves the request ID from context.
// Returns empty string if not present.
func RequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok {
		return id
	}
	return ""
}

// ContextWithLogger stores a logger in the context.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext retrieves a logger from context.
// Returns the global logger if no logger is stored in context.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	if logger, ok := ctx.Value(loggerKey).(zerolog.Logger); ok {
		return logger
	}
	return Logger()
}

// Ctx returns a logger with the run_id and request_id context values added
// when present.
//
//	logging.Ctx(ctx).Info().Msg("Report written")
//	// Output: {"level":"info","run_id":"abc12345","message":"Report written"}
func Ctx(ctx context.Context) *zerolog.Logger {
	logger := CtxWith(ctx).Logger()
	return &logger
}

// CtxWith returns a logger context builder with context values pre-populated.
//
//	logger := logging.CtxWith(ctx).Str("component", "report").Logger()
func CtxWith(ctx context.Context) zerolog.Context {
	logger := LoggerFromContext(ctx)
	logCtx := logger.With()

	if runID := RunIDFromContext(ctx); runID != "" {
		logCtx = logCtx.Str("run_id", runID)
	}
	if requestID := RequestIDFromContext(ctx); requestID != "" {
		logCtx = logCtx.Str("request_id", requestID)
	}

	return logCtx
}

// WithComponent creates a child logger with a component field.
//
//	loadLogger := logging.WithComponent("dataset")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
