// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

// Package supervisor runs the long-lived parts of the serve command under a
// suture v4 supervisor tree.
//
// The tree has two layers under one root:
//
//	affinity
//	├── api-layer        HTTP server
//	└── telemetry-layer  periodic metrics textfile export
//
// A service that fails is restarted with backoff; a service returning an
// error wrapping suture.ErrTerminateSupervisorTree stops the whole tree.
// Supervisor events are logged through zerolog via sutureslog.
package supervisor
