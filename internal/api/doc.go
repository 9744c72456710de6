// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

// Package api provides the HTTP surface of Wayfinder using the Chi router:
// recommendation, preference, feedback, visit, similarity, and trending
// endpoints, plus health probes and Prometheus metrics exposure.
package api
