// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

// Package service orchestrates the recommendation core against the
// persistence and caching layers: it resolves effective preferences, applies
// visited-exclusion, serves and caches ranked lists, and routes feedback and
// visit events.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wayfinderhq/wayfinder/internal/metrics"
	"github.com/wayfinderhq/wayfinder/internal/recommend"
	"github.com/wayfinderhq/wayfinder/internal/store"
)

// Options configures a Service.
type Options struct {
	Engine   *recommend.Engine
	Corpus   store.CorpusStore
	Prefs    store.PreferenceStore
	Visits   store.VisitStore
	Feedback store.FeedbackStore
	Cache    store.RecommendationCache

	// CacheTTL is how long recommendation lists stay cached. Default 1h.
	CacheTTL time.Duration

	// DefaultLimit is used when a request carries no limit. Default 10.
	DefaultLimit int

	Logger zerolog.Logger
}

// Service is the application-facing recommendation service.
type Service struct {
	engine   *recommend.Engine
	adjuster *recommend.Adjuster
	corpus   store.CorpusStore
	prefs    store.PreferenceStore
	visits   store.VisitStore
	feedback store.FeedbackStore
	cache    store.RecommendationCache

	cacheTTL     time.Duration
	defaultLimit int
	logger       zerolog.Logger
}

// New creates a Service from the given options.
func New(opts Options) (*Service, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("service: engine is required")
	}
	if opts.Corpus == nil || opts.Prefs == nil || opts.Visits == nil || opts.Feedback == nil {
		return nil, fmt.Errorf("service: all stores are required")
	}
	if opts.Cache == nil {
		return nil, fmt.Errorf("service: recommendation cache is required")
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = time.Hour
	}
	if opts.DefaultLimit <= 0 {
		opts.DefaultLimit = recommend.DefaultLimit
	}

	logger := opts.Logger.With().Str("component", "service").Logger()

	return &Service{
		engine:       opts.Engine,
		adjuster:     recommend.NewAdjuster(opts.Engine, opts.Corpus, opts.Logger),
		corpus:       opts.Corpus,
		prefs:        opts.Prefs,
		visits:       opts.Visits,
		feedback:     opts.Feedback,
		cache:        opts.Cache,
		cacheTTL:     opts.CacheTTL,
		defaultLimit: opts.DefaultLimit,
		logger:       logger,
	}, nil
}

// RecommendationRequest is one recommendation query.
type RecommendationRequest struct {
	// UserID identifies the requesting user.
	UserID string

	// Preferences, when set, are used instead of the stored profile.
	Preferences *recommend.UserPreferenceProfile

	// ExcludeVisited removes destinations the user has already visited.
	ExcludeVisited bool

	// Limit caps the returned list. Nil means the configured default; an
	// explicit zero yields an empty list.
	Limit *int
}

// RecommendationResponse is a served ranked list.
type RecommendationResponse struct {
	UserID          string                            `json:"user_id"`
	Total           int                               `json:"total_recommendations"`
	Recommendations []recommend.RankedRecommendation `json:"recommendations"`
	GeneratedAt     time.Time                         `json:"generated_at"`

	// Source reports how the list was produced: engine, cache, or fallback.
	Source string `json:"source"`
}

// Recommend serves a ranked recommendation list for the request.
//
// Requests without explicit preferences are served from the cache when a
// fresh entry exists. Explicit preferences bypass the cache entirely, in both
// directions: the cached entry always reflects the user's stored or default
// profile.
func (s *Service) Recommend(ctx context.Context, req RecommendationRequest) (*RecommendationResponse, error) {
	limit := s.defaultLimit
	if req.Limit != nil {
		limit = *req.Limit
		if limit < 0 {
			limit = 0
		}
	}

	explicit := req.Preferences != nil

	if !explicit {
		cached, hit, err := s.cache.Get(ctx, req.UserID)
		if err != nil {
			s.logger.Warn().Err(err).Str("user_id", req.UserID).Msg("cache read failed, scoring instead")
		} else if hit {
			if len(cached) > limit {
				cached = cached[:limit]
			}
			metrics.CacheHits.Inc()
			metrics.RecordRecommendation("cache", len(cached), 0)
			return &RecommendationResponse{
				UserID:          req.UserID,
				Total:           len(cached),
				Recommendations: cached,
				GeneratedAt:     time.Now().UTC(),
				Source:          "cache",
			}, nil
		} else {
			metrics.CacheMisses.Inc()
		}
	}

	prefs, err := s.resolvePreferences(ctx, req)
	if err != nil {
		return nil, err
	}

	exclude := map[string]struct{}{}
	if req.ExcludeVisited {
		exclude, err = s.visits.VisitedIDs(ctx, req.UserID)
		if err != nil {
			return nil, fmt.Errorf("load visited destinations: %w", err)
		}
	}

	start := time.Now()
	recs := s.engine.Recommend(prefs, exclude, limit)
	scoring := time.Since(start)

	source := "engine"
	if _, ok := s.engine.Index(); !ok {
		source = "fallback"
	}
	metrics.RecordRecommendation(source, len(recs), scoring)

	if !explicit {
		if err := s.cache.Put(ctx, req.UserID, recs, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("user_id", req.UserID).Msg("cache write failed")
		}
	}

	return &RecommendationResponse{
		UserID:          req.UserID,
		Total:           len(recs),
		Recommendations: recs,
		GeneratedAt:     time.Now().UTC(),
		Source:          source,
	}, nil
}

// resolvePreferences picks explicit request preferences, else the stored
// profile, else the defined defaults.
func (s *Service) resolvePreferences(ctx context.Context, req RecommendationRequest) (recommend.UserPreferenceProfile, error) {
	if req.Preferences != nil {
		prefs := *req.Preferences
		if prefs.UserID == "" {
			prefs.UserID = req.UserID
		}
		return prefs, nil
	}

	stored, err := s.prefs.Load(ctx, req.UserID)
	if err != nil {
		return recommend.UserPreferenceProfile{}, fmt.Errorf("load preferences: %w", err)
	}
	if stored != nil {
		return *stored, nil
	}
	return recommend.DefaultPreferences(req.UserID), nil
}

// UpdatePreferences replaces the user's stored profile wholesale and drops
// their cached recommendations.
func (s *Service) UpdatePreferences(ctx context.Context, profile recommend.UserPreferenceProfile) error {
	if profile.UserID == "" {
		return fmt.Errorf("update preferences: missing user id")
	}

	if err := s.prefs.Replace(ctx, profile); err != nil {
		return fmt.Errorf("replace preferences: %w", err)
	}

	if err := s.cache.Invalidate(ctx, profile.UserID); err != nil {
		// The TTL bounds how long the stale entry can survive.
		s.logger.Warn().Err(err).Str("user_id", profile.UserID).Msg("cache invalidation failed")
	} else {
		metrics.CacheInvalidations.Inc()
	}

	s.logger.Info().Str("user_id", profile.UserID).Msg("preferences updated")
	return nil
}

// SubmitFeedback validates and stores a feedback event, then applies its
// popularity delta to the live index and the corpus store.
func (s *Service) SubmitFeedback(ctx context.Context, rec recommend.FeedbackRecord) error {
	delta, err := recommend.PopularityDelta(rec.Rating)
	if err != nil {
		return err
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now().UTC()
	}

	if err := s.feedback.AppendFeedback(ctx, rec); err != nil {
		return fmt.Errorf("store feedback: %w", err)
	}
	metrics.RecordFeedback(rec.Rating, delta)

	if err := s.adjuster.Apply(ctx, rec); err != nil {
		return err
	}
	return nil
}

// RecordVisit appends a visit event.
func (s *Service) RecordVisit(ctx context.Context, visit recommend.VisitRecord) error {
	if visit.UserID == "" || visit.DestinationID == "" {
		return fmt.Errorf("record visit: user id and destination id are required")
	}
	if visit.Timestamp.IsZero() {
		visit.Timestamp = time.Now().UTC()
	}
	return s.visits.AppendVisit(ctx, visit)
}

// SimilarTo returns destinations sharing climate and activities with the
// reference destination.
func (s *Service) SimilarTo(_ context.Context, destinationID string, limit int) ([]recommend.DestinationProfile, error) {
	if limit < 0 {
		limit = 5
	}
	return s.engine.SimilarTo(destinationID, limit)
}

// Trending returns destinations ranked by recent visit activity.
func (s *Service) Trending(ctx context.Context, limit int) ([]recommend.TrendingDestination, error) {
	if limit < 0 {
		limit = s.defaultLimit
	}
	return s.engine.Trending(ctx, s.visits, limit)
}

// Rebuild reloads the corpus from the store and swaps in a fresh index.
func (s *Service) Rebuild(ctx context.Context) error {
	start := time.Now()

	corpus, err := s.corpus.LoadCorpus(ctx)
	if err != nil {
		metrics.RecordRebuild(time.Since(start), 0, 0, err)
		return fmt.Errorf("load corpus: %w", err)
	}

	err = s.engine.Rebuild(ctx, corpus)
	if errors.Is(err, recommend.ErrRebuildInProgress) {
		metrics.RecordRebuildSkipped()
		return err
	}
	status := s.engine.Status()
	metrics.RecordRebuild(time.Since(start), status.Destinations, status.VocabularySize, err)
	return err
}

// Status reports engine readiness for health checks.
func (s *Service) Status() recommend.Status {
	return s.engine.Status()
}
