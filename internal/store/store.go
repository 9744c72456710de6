// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

// Package store defines the persistence interfaces for the recommendation
// service and provides in-memory and BadgerDB-backed implementations.
//
// The in-memory store is the default backend and is also what the test suites
// run against. The Badger backend persists user state and the recommendation
// cache across restarts and is selected through configuration.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/wayfinderhq/wayfinder/internal/recommend"
)

// ErrNotFound is returned for lookups of entities that do not exist where
// absence is an error rather than a defined default.
var ErrNotFound = errors.New("store: not found")

// CorpusStore provides the destination corpus and persists popularity drift.
//
// AdjustPopularity makes it satisfy recommend.PopularityStore, so feedback
// deltas survive an index rebuild.
type CorpusStore interface {
	// LoadCorpus returns every destination with its current popularity.
	LoadCorpus(ctx context.Context) ([]recommend.DestinationProfile, error)

	// AdjustPopularity applies a delta to one destination's popularity.
	AdjustPopularity(ctx context.Context, destinationID string, delta float64) error
}

// PreferenceStore persists user preference profiles.
//
// Profiles are replaced wholesale, never merged. Load returns (nil, nil) for
// a user with no stored profile; callers substitute the defined defaults.
type PreferenceStore interface {
	Load(ctx context.Context, userID string) (*recommend.UserPreferenceProfile, error)
	Replace(ctx context.Context, profile recommend.UserPreferenceProfile) error
}

// VisitStore is the append-only visit history.
//
// CountVisitsSince makes it satisfy recommend.VisitCounter for trending
// queries.
type VisitStore interface {
	AppendVisit(ctx context.Context, visit recommend.VisitRecord) error

	// VisitedIDs returns the set of destination ids the user has visited,
	// used to exclude already-visited destinations from recommendations.
	VisitedIDs(ctx context.Context, userID string) (map[string]struct{}, error)

	CountVisitsSince(ctx context.Context, cutoff time.Time) (map[string]int, error)
}

// FeedbackStore is the append-only feedback history.
type FeedbackStore interface {
	AppendFeedback(ctx context.Context, feedback recommend.FeedbackRecord) error
}

// RecommendationCache caches ranked recommendation lists per user.
//
// Entries expire after their TTL; Invalidate drops a user's entry eagerly
// when their preferences change.
type RecommendationCache interface {
	Get(ctx context.Context, userID string) ([]recommend.RankedRecommendation, bool, error)
	Put(ctx context.Context, userID string, recs []recommend.RankedRecommendation, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}
