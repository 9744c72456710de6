// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/wayfinderhq/wayfinder/internal/recommend"
)

// MemoryStore is an in-memory implementation of CorpusStore, PreferenceStore,
// VisitStore, and FeedbackStore. It is the default backend and the one the
// test suites run against.
type MemoryStore struct {
	mu       sync.RWMutex
	corpus   []recommend.DestinationProfile
	byID     map[string]int
	prefs    map[string]recommend.UserPreferenceProfile
	visits   []recommend.VisitRecord
	feedback []recommend.FeedbackRecord
}

// NewMemoryStore creates a memory store seeded with the given corpus.
func NewMemoryStore(corpus []recommend.DestinationProfile) *MemoryStore {
	s := &MemoryStore{
		corpus: make([]recommend.DestinationProfile, len(corpus)),
		byID:   make(map[string]int, len(corpus)),
		prefs:  make(map[string]recommend.UserPreferenceProfile),
	}
	copy(s.corpus, corpus)
	for i := range s.corpus {
		s.byID[s.corpus[i].ID] = i
	}
	return s
}

// LoadCorpus returns a copy of every destination.
func (s *MemoryStore) LoadCorpus(_ context.Context) ([]recommend.DestinationProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recommend.DestinationProfile, len(s.corpus))
	copy(out, s.corpus)
	return out, nil
}

// AdjustPopularity applies a delta to one destination's popularity score.
func (s *MemoryStore) AdjustPopularity(_ context.Context, destinationID string, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[destinationID]
	if !ok {
		return fmt.Errorf("%w: destination %q", ErrNotFound, destinationID)
	}
	s.corpus[i].PopularityScore += delta
	return nil
}

// Load returns the stored preference profile, or (nil, nil) when the user has
// none.
func (s *MemoryStore) Load(_ context.Context, userID string) (*recommend.UserPreferenceProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.prefs[userID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// Replace stores the profile, overwriting any previous one for the user.
func (s *MemoryStore) Replace(_ context.Context, profile recommend.UserPreferenceProfile) error {
	if profile.UserID == "" {
		return fmt.Errorf("store: preference profile missing user id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs[profile.UserID] = profile
	return nil
}

// AppendVisit records a visit.
func (s *MemoryStore) AppendVisit(_ context.Context, visit recommend.VisitRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visits = append(s.visits, visit)
	return nil
}

// VisitedIDs returns the set of destination ids the user has visited.
func (s *MemoryStore) VisitedIDs(_ context.Context, userID string) (map[string]struct{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	visited := make(map[string]struct{})
	for i := range s.visits {
		if s.visits[i].UserID == userID {
			visited[s.visits[i].DestinationID] = struct{}{}
		}
	}
	return visited, nil
}

// CountVisitsSince counts visits per destination at or after the cutoff.
func (s *MemoryStore) CountVisitsSince(_ context.Context, cutoff time.Time) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for i := range s.visits {
		if !s.visits[i].Timestamp.Before(cutoff) {
			counts[s.visits[i].DestinationID]++
		}
	}
	return counts, nil
}

// AppendFeedback records a feedback event.
func (s *MemoryStore) AppendFeedback(_ context.Context, rec recommend.FeedbackRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = append(s.feedback, rec)
	return nil
}

// FeedbackFor returns the user's feedback history, newest last.
func (s *MemoryStore) FeedbackFor(_ context.Context, userID string) ([]recommend.FeedbackRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []recommend.FeedbackRecord
	for i := range s.feedback {
		if s.feedback[i].UserID == userID {
			out = append(out, s.feedback[i])
		}
	}
	return out, nil
}

type memoryCacheEntry struct {
	recs      []recommend.RankedRecommendation
	expiresAt time.Time
}

// MemoryCache is an in-memory RecommendationCache with per-entry TTL.
// Expired entries are dropped lazily on read.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryCacheEntry
	now     func() time.Time
}

// NewMemoryCache creates an empty in-memory recommendation cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryCacheEntry),
		now:     time.Now,
	}
}

// Get returns the cached list for the user, reporting a miss for absent or
// expired entries.
func (c *MemoryCache) Get(_ context.Context, userID string) ([]recommend.RankedRecommendation, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[userID]
	if !ok {
		return nil, false, nil
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, userID)
		return nil, false, nil
	}

	out := make([]recommend.RankedRecommendation, len(entry.recs))
	copy(out, entry.recs)
	return out, true, nil
}

// Put caches the list for the user with the given TTL.
func (c *MemoryCache) Put(_ context.Context, userID string, recs []recommend.RankedRecommendation, ttl time.Duration) error {
	stored := make([]recommend.RankedRecommendation, len(recs))
	copy(stored, recs)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[userID] = memoryCacheEntry{
		recs:      stored,
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

// Invalidate drops the user's cached list, if any.
func (c *MemoryCache) Invalidate(_ context.Context, userID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}
