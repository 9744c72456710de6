// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

// Package supervisor builds the suture supervision tree the process runs
// under. Long-running components (the HTTP server and the rebuild
// scheduler) implement suture.Service and are restarted on failure with
// exponential backoff, with failure isolation between layers.
package supervisor
