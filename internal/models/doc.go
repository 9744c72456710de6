// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

// Package models defines the shared wire types for the HTTP API: the
// response envelope, structured errors, and health payloads. Domain types
// live in internal/recommend.
package models
