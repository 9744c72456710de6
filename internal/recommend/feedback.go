// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// PopularityStore persists popularity adjustments. Implementations must make
// the adjustment atomic per destination.
type PopularityStore interface {
	AdjustPopularity(ctx context.Context, destinationID string, delta float64) error
}

// PopularityDelta maps a feedback rating to a popularity delta:
// rating >= 4 adds 0.1, rating <= 2 subtracts 0.05, rating 3 is a no-op.
//
// The mapping is pure and total over valid ratings; ratings outside 1-5
// return ErrInvalidRating. Replaying the same record applies the delta again,
// there is no deduplication.
func PopularityDelta(rating int) (float64, error) {
	if rating < 1 || rating > 5 {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidRating, rating)
	}

	switch {
	case rating >= 4:
		return 0.1, nil
	case rating <= 2:
		return -0.05, nil
	default:
		return 0, nil
	}
}

// Adjuster applies feedback-driven popularity deltas to the live corpus index
// and to the persistent store. It is the single mutation path for popularity.
type Adjuster struct {
	engine *Engine
	store  PopularityStore
	logger zerolog.Logger
}

// NewAdjuster creates a feedback adjuster.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewAdjuster(engine *Engine, store PopularityStore, logger zerolog.Logger) *Adjuster {
	return &Adjuster{
		engine: engine,
		store:  store,
		logger: logger.With().Str("component", "feedback").Logger(),
	}
}

// Apply maps the record's rating to a popularity delta and applies it to the
// record's destination, in the live index and in the store.
//
// Invalid ratings fail with ErrInvalidRating before any mutation. A
// destination missing from the corpus skips the mutation without error:
// the feedback record itself was already durably stored by the caller, and
// recording sentiment must never fail because the join target is missing.
func (a *Adjuster) Apply(ctx context.Context, rec FeedbackRecord) error {
	delta, err := PopularityDelta(rec.Rating)
	if err != nil {
		return err
	}
	if delta == 0 {
		return nil
	}

	idx, ok := a.engine.Index()
	if !ok || !idx.Contains(rec.DestinationID) {
		a.logger.Debug().
			Str("destination_id", rec.DestinationID).
			Int("rating", rec.Rating).
			Msg("destination not in corpus, skipping popularity update")
		return nil
	}

	if err := a.store.AdjustPopularity(ctx, rec.DestinationID, delta); err != nil {
		return fmt.Errorf("persist popularity delta: %w", err)
	}

	if err := idx.AdjustPopularity(rec.DestinationID, delta); err != nil {
		// Index may have been swapped between the Contains check and here;
		// the persisted value is authoritative and the next rebuild
		// reconciles the in-memory copy.
		if !errors.Is(err, ErrDestinationNotFound) {
			return err
		}
	}

	a.logger.Debug().
		Str("destination_id", rec.DestinationID).
		Int("rating", rec.Rating).
		Float64("delta", delta).
		Msg("popularity adjusted")

	return nil
}
