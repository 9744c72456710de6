// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/wayfinderhq/wayfinder/internal/recommend"
)

// RebuildScheduler periodically reloads the corpus and rebuilds the index.
// It implements suture.Service and runs under the process supervisor.
type RebuildScheduler struct {
	service  *Service
	interval time.Duration
	logger   zerolog.Logger
}

// NewRebuildScheduler creates a scheduler that rebuilds every interval.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRebuildScheduler(svc *Service, interval time.Duration, logger zerolog.Logger) *RebuildScheduler {
	return &RebuildScheduler{
		service:  svc,
		interval: interval,
		logger:   logger.With().Str("component", "rebuild-scheduler").Logger(),
	}
}

// Serve runs the rebuild loop until the context is canceled. Rebuild failures
// are logged and the loop continues; the previous index keeps serving.
func (r *RebuildScheduler) Serve(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info().Dur("interval", r.interval).Msg("rebuild scheduler started")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			err := r.service.Rebuild(ctx)
			switch {
			case errors.Is(err, recommend.ErrRebuildInProgress):
				r.logger.Debug().Msg("scheduled rebuild skipped, another rebuild in progress")
			case err != nil:
				r.logger.Warn().Err(err).Msg("scheduled rebuild failed")
			}
		}
	}
}

// String names the service in supervisor logs.
func (r *RebuildScheduler) String() string {
	return "rebuild-scheduler"
}
