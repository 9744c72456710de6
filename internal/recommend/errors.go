// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import "errors"

// Sentinel errors for the recommendation core. Callers distinguish failure
// causes with errors.Is rather than string matching.
var (
	// ErrEmptyCorpus indicates a vectorizer cannot be fitted because the
	// corpus has no destinations. Scoring degrades to the static fallback
	// list; this error is never surfaced from Recommend.
	ErrEmptyCorpus = errors.New("empty destination corpus")

	// ErrDestinationNotFound indicates a destination id referenced by a
	// similarity or feedback operation does not exist in the corpus.
	ErrDestinationNotFound = errors.New("destination not found")

	// ErrInvalidRating indicates a feedback rating outside the 1-5 range.
	// Rejected before any mutation occurs.
	ErrInvalidRating = errors.New("feedback rating must be between 1 and 5")

	// ErrIndexUnavailable indicates no fitted corpus index is available.
	ErrIndexUnavailable = errors.New("corpus index not available")

	// ErrRebuildInProgress indicates a rebuild request arrived while another
	// rebuild holds the single-writer lock.
	ErrRebuildInProgress = errors.New("rebuild already in progress")
)
