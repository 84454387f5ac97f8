// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package models

import "time"

// APIResponse is the envelope of every API response.
//
// Success:
//
//	{"status":"success","data":{...},"metadata":{"timestamp":"...","query_time_ms":1}}
//
// Failure:
//
//	{"status":"error","data":null,"metadata":{...},"error":{"code":"USER_NOT_FOUND","message":"..."}}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata describes how a response was produced.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError is a machine-readable error code with a human-readable message.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
