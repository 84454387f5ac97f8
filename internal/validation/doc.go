// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package validation provides struct validation using go-playground/validator v10.
//
// It wraps a thread-safe singleton validator and translates failures into
// messages keyed by configuration path rather than Go field name:
//
//	type ReportConfig struct {
//	    Subjects int    `koanf:"subjects" validate:"min=1"`
//	    Format   string `koanf:"format" validate:"oneof=text json"`
//	}
//
//	err := validation.ValidateStruct(&cfg)
//	// report.subjects must be at least 1
//
// ValidateStruct returns a *StructError; use errors.As to inspect individual
// FieldError values.
package validation
