// Affinity - Tag Overlap Recommendations for Users and Posts
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/affinity

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// TextfileService writes metrics to a file on an interval and once more
// on shutdown. Write failures are logged and retried on the next tick.
type TextfileService struct {
	path     string
	interval time.Duration
	write    func(path string) error
	logger   zerolog.Logger
}

// NewTextfileService creates the service. write is typically
// metrics.WriteTextfile. A non-positive interval defaults to 15s.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewTextfileService(path string, interval time.Duration, write func(string) error, logger zerolog.Logger) *TextfileService {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &TextfileService{
		path:     path,
		interval: interval,
		write:    write,
		logger:   logger.With().Str("service", "metrics-textfile").Str("path", path).Logger(),
	}
}

// Serve implements suture.Service.
func (s *TextfileService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.flush()
		case <-ctx.Done():
			s.flush()
			return ctx.Err()
		}
	}
}

func (s *TextfileService) flush() {
	if err := s.write(s.path); err != nil {
		s.logger.Warn().Err(err).Msg("Metrics textfile write failed")
		return
	}
	s.logger.Trace().Msg("Metrics textfile written")
}

// String implements fmt.Stringer.
func (s *TextfileService) String() string {
	return "metrics-textfile"
}
