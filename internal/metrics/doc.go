// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

/*
Package metrics provides Prometheus metrics collection and export.

Metrics are exposed at the /metrics endpoint in Prometheus text format:

	curl http://localhost:8080/metrics

# Available Metrics

HTTP:
  - http_requests_total: Total HTTP requests (counter)
    Labels: method, endpoint, status
  - http_request_duration_seconds: Request latency (histogram)
    Labels: method, endpoint
  - http_requests_in_flight: Active requests (gauge)

Recommendations:
  - recommendation_requests_total: Requests by serving source (counter)
    Labels: source (engine, cache, fallback)
  - recommendation_scoring_duration_seconds: Corpus scoring time (histogram)
  - recommendations_returned: List size per request (histogram)

Cache:
  - recommendation_cache_hits_total / _misses_total (counters)
  - recommendation_cache_invalidations_total: Entries dropped after
    preference updates (counter)

Corpus index:
  - corpus_index_rebuilds_total: Rebuild attempts (counter)
    Labels: outcome (success, failure, skipped)
  - corpus_index_rebuild_duration_seconds (histogram)
  - corpus_index_destinations, corpus_index_vocabulary_size (gauges)
  - corpus_index_last_rebuild_timestamp (gauge)

Feedback:
  - feedback_received_total: Events by rating (counter)
  - popularity_adjustments_total: Applied deltas by direction (counter)

All collectors register through promauto at package initialization, so
importing this package is enough to wire them into the default registry.
*/
package metrics
