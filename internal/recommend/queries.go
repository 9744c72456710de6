// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import (
	"context"
	"fmt"
	"sort"
	"time"
)

// VisitCounter counts visits per destination recorded at or after a cutoff.
type VisitCounter interface {
	CountVisitsSince(ctx context.Context, cutoff time.Time) (map[string]int, error)
}

// TrendingDestination pairs a destination with its recent visit count.
type TrendingDestination struct {
	DestinationProfile
	RecentVisitCount int `json:"recent_visit_count"`
}

// SimilarTo returns up to limit destinations sharing the reference
// destination's climate category and at least one activity tag, excluding the
// reference itself.
//
// This is a filter in corpus storage order followed by truncation, not a
// ranking: candidates are not scored against each other.
//
// Returns ErrDestinationNotFound for an unknown reference id and
// ErrIndexUnavailable when no fitted index exists.
func (e *Engine) SimilarTo(id string, limit int) ([]DestinationProfile, error) {
	idx, ok := e.index.Load()
	if !ok {
		return nil, ErrIndexUnavailable
	}

	ref, err := idx.Lookup(id)
	if err != nil {
		return nil, err
	}

	if limit < 0 {
		limit = 0
	}

	refActivities := toSet(ref.ActivityTags)
	matches := make([]DestinationProfile, 0, limit)

	for i := range idx.destinations {
		if len(matches) == limit {
			break
		}
		dest := idx.destinationAt(i)
		if dest.ID == id {
			continue
		}
		if dest.Climate != ref.Climate {
			continue
		}
		if intersectCount(dest.ActivityTags, refActivities) == 0 {
			continue
		}
		matches = append(matches, dest)
	}

	return matches, nil
}

// Trending returns up to limit destinations ordered by visit count within the
// configured trailing window (descending), with popularity score as the
// secondary sort key.
//
// Returns ErrIndexUnavailable when no fitted index exists.
func (e *Engine) Trending(ctx context.Context, counter VisitCounter, limit int) ([]TrendingDestination, error) {
	idx, ok := e.index.Load()
	if !ok {
		return nil, ErrIndexUnavailable
	}

	cutoff := time.Now().Add(-e.config.TrendingWindow)
	counts, err := counter.CountVisitsSince(ctx, cutoff)
	if err != nil {
		return nil, fmt.Errorf("count recent visits: %w", err)
	}

	if limit < 0 {
		limit = 0
	}

	trending := make([]TrendingDestination, 0, idx.Len())
	for i := range idx.destinations {
		dest := idx.destinationAt(i)
		trending = append(trending, TrendingDestination{
			DestinationProfile: dest,
			RecentVisitCount:   counts[dest.ID],
		})
	}

	sort.SliceStable(trending, func(i, j int) bool {
		if trending[i].RecentVisitCount != trending[j].RecentVisitCount {
			return trending[i].RecentVisitCount > trending[j].RecentVisitCount
		}
		return trending[i].PopularityScore > trending[j].PopularityScore
	})

	if len(trending) > limit {
		trending = trending[:limit]
	}

	return trending, nil
}
