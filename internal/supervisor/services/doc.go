// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package services adapts long-running components to suture.Service.
//
//   - HTTPServerService: http.Server with graceful shutdown
//   - TextfileService: periodic Prometheus textfile export
package services
