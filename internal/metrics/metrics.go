// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)

	// Recommendation Metrics
	RecommendationRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Total recommendation requests by serving source",
		},
		[]string{"source"}, // engine, cache, fallback
	)

	RecommendationScoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendation_scoring_duration_seconds",
			Help:    "Time spent scoring and ranking the corpus per request",
			Buckets: prometheus.DefBuckets,
		},
	)

	RecommendationsReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommendations_returned",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 3, 5, 10, 25, 50, 100},
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_hits_total",
			Help: "Recommendation cache hits",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_misses_total",
			Help: "Recommendation cache misses",
		},
	)

	CacheInvalidations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommendation_cache_invalidations_total",
			Help: "Recommendation cache entries dropped after preference updates",
		},
	)

	// Index Metrics
	IndexRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "corpus_index_rebuilds_total",
			Help: "Corpus index rebuild attempts by outcome",
		},
		[]string{"outcome"}, // success, failure, skipped
	)

	IndexRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "corpus_index_rebuild_duration_seconds",
			Help:    "Duration of corpus index rebuilds in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30, 60},
		},
	)

	IndexDestinations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corpus_index_destinations",
			Help: "Number of destinations in the live corpus index",
		},
	)

	IndexVocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corpus_index_vocabulary_size",
			Help: "Fitted TF-IDF vocabulary size of the live corpus index",
		},
	)

	IndexLastRebuild = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "corpus_index_last_rebuild_timestamp",
			Help: "Unix timestamp of the last successful index rebuild",
		},
	)

	// Feedback Metrics
	FeedbackReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_received_total",
			Help: "Feedback events received by rating",
		},
		[]string{"rating"},
	)

	PopularityAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "popularity_adjustments_total",
			Help: "Popularity adjustments applied by direction",
		},
		[]string{"direction"}, // up, down
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one served recommendation request.
// Source is "engine", "cache", or "fallback".
func RecordRecommendation(source string, returned int, scoring time.Duration) {
	RecommendationRequests.WithLabelValues(source).Inc()
	RecommendationsReturned.Observe(float64(returned))
	if source != "cache" {
		RecommendationScoringDuration.Observe(scoring.Seconds())
	}
}

// RecordRebuild records an index rebuild attempt and, on success, updates the
// index gauges.
func RecordRebuild(duration time.Duration, destinations, vocabulary int, err error) {
	IndexRebuildDuration.Observe(duration.Seconds())
	if err != nil {
		IndexRebuilds.WithLabelValues("failure").Inc()
		return
	}
	IndexRebuilds.WithLabelValues("success").Inc()
	IndexDestinations.Set(float64(destinations))
	IndexVocabularySize.Set(float64(vocabulary))
	IndexLastRebuild.Set(float64(time.Now().Unix()))
}

// RecordRebuildSkipped records a rebuild request that found one already in
// progress.
func RecordRebuildSkipped() {
	IndexRebuilds.WithLabelValues("skipped").Inc()
}

// RecordFeedback records a received feedback event and the resulting
// popularity adjustment direction.
func RecordFeedback(rating int, delta float64) {
	FeedbackReceived.WithLabelValues(ratingLabel(rating)).Inc()
	switch {
	case delta > 0:
		PopularityAdjustments.WithLabelValues("up").Inc()
	case delta < 0:
		PopularityAdjustments.WithLabelValues("down").Inc()
	}
}

func ratingLabel(rating int) string {
	switch rating {
	case 1:
		return "1"
	case 2:
		return "2"
	case 3:
		return "3"
	case 4:
		return "4"
	case 5:
		return "5"
	default:
		return "invalid"
	}
}
