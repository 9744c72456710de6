// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// Note: This package has no dependencies on other internal packages. The
// surrounding service wires stores, caching, and transport around it.

// Engine scores destinations against user preferences and produces ranked,
// explained recommendation lists. It is safe for concurrent use: scoring
// reads an immutable index through a single swappable reference, and rebuilds
// run on a single-writer path that never mutates a published index.
type Engine struct {
	config *Config
	logger zerolog.Logger

	// Current corpus index; nil until the first successful rebuild.
	index IndexRef

	// Rebuild state (single writer).
	rebuildMu  sync.Mutex
	rebuilding atomic.Bool
	lastError  atomic.Value // string

	// Counters
	requestCount  atomic.Int64
	fallbackCount atomic.Int64
	rebuildCount  atomic.Int64
}

// NewEngine creates a recommendation engine. A nil config uses defaults.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Rebuild fits a new corpus index and atomically swaps it in. In-flight
// Recommend calls keep reading the old index until the swap completes.
//
// Returns ErrEmptyCorpus (wrapped) for an empty corpus; the previously
// published index, if any, stays in place.
func (e *Engine) Rebuild(ctx context.Context, corpus []DestinationProfile) error {
	if !e.rebuildMu.TryLock() {
		return ErrRebuildInProgress
	}
	defer e.rebuildMu.Unlock()

	e.rebuilding.Store(true)
	defer e.rebuilding.Store(false)

	if err := ctx.Err(); err != nil {
		return err
	}

	start := time.Now()
	version := int(e.rebuildCount.Load()) + 1

	idx, err := BuildIndex(corpus, e.config.VocabularyCap, version)
	if err != nil {
		e.lastError.Store(err.Error())
		e.logger.Warn().
			Err(err).
			Int("corpus_size", len(corpus)).
			Msg("index rebuild failed, keeping previous index")
		return fmt.Errorf("build index: %w", err)
	}

	e.index.Swap(idx)
	e.rebuildCount.Add(1)
	e.lastError.Store("")

	e.logger.Info().
		Int("destinations", idx.Len()).
		Int("vocabulary", idx.Vectorizer().VocabularySize()).
		Int("version", version).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("corpus index rebuilt")

	return nil
}

// Index returns the current corpus index and whether one is available.
func (e *Engine) Index() (*CorpusIndex, bool) {
	return e.index.Load()
}

// Status summarizes engine state for health reporting.
type Status struct {
	// Ready indicates a fitted index is available for scoring.
	Ready bool `json:"ready"`

	// Rebuilding indicates a rebuild is currently in progress.
	Rebuilding bool `json:"rebuilding"`

	// Destinations is the indexed destination count (0 when not ready).
	Destinations int `json:"destinations"`

	// VocabularySize is the fitted vocabulary size (0 when not ready).
	VocabularySize int `json:"vocabulary_size"`

	// Version is the current index version (0 when not ready).
	Version int `json:"version"`

	// BuiltAt is when the current index was built.
	BuiltAt time.Time `json:"built_at,omitempty"`

	// LastError is the most recent rebuild error, if any.
	LastError string `json:"last_error,omitempty"`
}

// Status returns the current engine status.
func (e *Engine) Status() Status {
	s := Status{Rebuilding: e.rebuilding.Load()}
	if msg, ok := e.lastError.Load().(string); ok {
		s.LastError = msg
	}

	idx, ok := e.index.Load()
	if !ok {
		return s
	}

	s.Ready = true
	s.Destinations = idx.Len()
	s.VocabularySize = idx.Vectorizer().VocabularySize()
	s.Version = idx.Version()
	s.BuiltAt = idx.BuiltAt()
	return s
}

// Recommend scores every destination outside the exclusion set against the
// given preferences and returns up to limit recommendations, best first.
//
// It never fails: with no fitted index available the bounded static fallback
// list is returned instead. A limit of 0 yields an empty list; negative
// limits are treated as 0; limits above the configured maximum are capped.
func (e *Engine) Recommend(prefs UserPreferenceProfile, exclude map[string]struct{}, limit int) []RankedRecommendation {
	e.requestCount.Add(1)

	switch {
	case limit < 0:
		limit = 0
	case limit > e.config.MaxLimit:
		limit = e.config.MaxLimit
	}

	idx, ok := e.index.Load()
	if !ok {
		e.fallbackCount.Add(1)
		e.logger.Debug().
			Str("user_id", prefs.UserID).
			Msg("no fitted index, serving fallback recommendations")
		return FallbackRecommendations(limit)
	}

	queryVec := idx.Vectorizer().Transform(preferenceQuery(prefs))

	userActivities := toSet(prefs.ActivityTypes)
	scored := make([]RankedRecommendation, 0, idx.Len())

	for i := range idx.destinations {
		dest := idx.destinationAt(i)
		if _, skip := exclude[dest.ID]; skip {
			continue
		}

		score := cosineSimilarity(queryVec, idx.vectors[i])
		if dest.Budget == prefs.Budget {
			score += e.config.BudgetBoost
		}
		overlap := intersectCount(dest.ActivityTags, userActivities)
		score += float64(overlap) * e.config.ActivityBoost

		scored = append(scored, RankedRecommendation{
			DestinationID: dest.ID,
			Name:          dest.Name,
			Country:       dest.Country,
			Score:         score,
			Reason:        e.justification(&dest, &prefs),
			Location:      dest.Location,
			Climate:       dest.Climate,
			ActivityTags:  dest.ActivityTags,
			Budget:        dest.Budget,
		})
	}

	// Stable sort keeps first-seen corpus order on equal scores, so results
	// are deterministic and testable.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > limit {
		scored = scored[:limit]
	}
	for i := range scored {
		scored[i].Position = i + 1
	}

	return scored
}

// preferenceQuery synthesizes the vectorizer query text from a preference
// profile: activity types, interests, and travel style, space joined.
func preferenceQuery(prefs UserPreferenceProfile) string {
	parts := make([]string, 0, 3)
	if len(prefs.ActivityTypes) > 0 {
		parts = append(parts, strings.Join(prefs.ActivityTypes, " "))
	}
	if len(prefs.Interests) > 0 {
		parts = append(parts, strings.Join(prefs.Interests, " "))
	}
	if prefs.TravelStyle != "" {
		parts = append(parts, prefs.TravelStyle)
	}
	return strings.Join(parts, " ")
}

// justification builds the human-readable reason for a recommendation.
// Matches are cited in priority order: activity overlap, interest overlap,
// budget fit; with no match at all a generic line is emitted. Presentation
// only, never part of the score.
func (e *Engine) justification(dest *DestinationProfile, prefs *UserPreferenceProfile) string {
	reasons := make([]string, 0, 3)

	if overlap := intersect(dest.ActivityTags, toSet(prefs.ActivityTypes), 2); len(overlap) > 0 {
		reasons = append(reasons, "Matches your interest in "+strings.Join(overlap, ", "))
	}

	if overlap := intersect(dest.InterestTags, toSet(prefs.Interests), 2); len(overlap) > 0 {
		reasons = append(reasons, "Great for "+strings.Join(overlap, ", ")+" enthusiasts")
	}

	if dest.Budget == prefs.Budget {
		reasons = append(reasons, "Fits your "+prefs.Budget.String()+" budget")
	}

	if len(reasons) == 0 {
		return "Highly rated destination with diverse experiences"
	}
	return strings.Join(reasons, "; ")
}

// RequestCount returns the total number of Recommend calls served.
func (e *Engine) RequestCount() int64 {
	return e.requestCount.Load()
}

// FallbackCount returns how many requests were served from the fallback list.
func (e *Engine) FallbackCount() int64 {
	return e.fallbackCount.Load()
}

// toSet lowercases a tag list into a set.
func toSet(tags []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[strings.ToLower(t)] = struct{}{}
	}
	return set
}

// intersectCount counts tags present in the given set.
func intersectCount(tags []string, set map[string]struct{}) int {
	n := 0
	for _, t := range tags {
		if _, ok := set[strings.ToLower(t)]; ok {
			n++
		}
	}
	return n
}

// intersect returns up to max tags present in the given set, preserving the
// tag list's order for deterministic output.
func intersect(tags []string, set map[string]struct{}, max int) []string {
	var out []string
	for _, t := range tags {
		if _, ok := set[strings.ToLower(t)]; ok {
			out = append(out, t)
			if len(out) == max {
				break
			}
		}
	}
	return out
}
