// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

// Package recommend implements the destination recommendation and ranking
// core: TF-IDF feature vectorization, the corpus index, the scoring engine,
// feedback-driven popularity adjustment, and the trending/similarity queries.
//
// # Architecture
//
// The package consumes and produces plain data structures; it speaks no wire
// protocol and performs no I/O of its own beyond the interfaces it accepts
// (PopularityStore, VisitCounter). Storage, caching, and HTTP live in the
// surrounding service.
//
//	corpus ──▶ BuildIndex ──▶ CorpusIndex ──▶ Engine.Recommend
//	                              │                 │
//	          Adjuster.Apply ─────┘            ranked list
//
// # Concurrency
//
// All query paths are read-mostly over an index that is immutable once
// published. Engine.Rebuild builds a complete new index and swaps a single
// atomic reference, so in-flight readers always observe either the old or the
// new index in full. Popularity is the one mutable per-destination value and
// is adjusted with a CAS loop, making concurrent feedback for the same
// destination lose no updates.
//
// # Degraded mode
//
// When no index has been fitted (empty corpus, or before the first rebuild),
// Engine.Recommend serves a fixed three-entry fallback list rather than
// failing: recommendation availability is prioritized over quality.
package recommend
