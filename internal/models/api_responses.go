// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package models

import "time"

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the structured error payload.
//
// Common codes:
//   - VALIDATION_ERROR: invalid input parameters
//   - NOT_FOUND: the referenced resource does not exist
//   - INDEX_UNAVAILABLE: no fitted index to answer the query
//   - INTERNAL_ERROR: unexpected server-side failure
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus is the payload of the full health endpoint.
type HealthStatus struct {
	Status       string     `json:"status"`
	Version      string     `json:"version"`
	IndexReady   bool       `json:"index_ready"`
	IndexVersion int        `json:"index_version,omitempty"`
	Destinations int        `json:"destinations"`
	Vocabulary   int        `json:"vocabulary_size"`
	LastRebuild  *time.Time `json:"last_rebuild,omitempty"`
	Uptime       float64    `json:"uptime_seconds"`
}
