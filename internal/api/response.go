// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/affinity/internal/logging"
	"github.com/tomtom215/affinity/internal/models"
)

// Error codes returned in models.APIError.
const (
	CodeInvalidUserID = "INVALID_USER_ID"
	CodeInvalidLimit  = "INVALID_LIMIT"
	CodeUserNotFound  = "USER_NOT_FOUND"
	CodeRateLimited   = "RATE_LIMITED"
	CodeNotFound      = "NOT_FOUND"
	CodeMethod        = "METHOD_NOT_ALLOWED"
)

// respondJSON writes response with the given status.
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData writes a success envelope around data.
func respondData(w http.ResponseWriter, start time.Time, data interface{}) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   data,
		Metadata: models.Metadata{
			Timestamp:   time.Now().UTC(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// respondError writes an error envelope.
func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, &models.APIResponse{
		Status: "error",
		Metadata: models.Metadata{
			Timestamp: time.Now().UTC(),
		},
		Error: &models.APIError{
			Code:    code,
			Message: sanitize(message),
		},
	})
}

// sanitize strips control characters from text echoed back from a request.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
