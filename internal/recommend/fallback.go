// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

// fallbackList is the fixed recommendation list served whenever no fitted
// corpus index is available. Recommendation availability is prioritized over
// recommendation quality, so this list is deterministic and always valid.
var fallbackList = []RankedRecommendation{
	{
		DestinationID: "paris_france",
		Name:          "Paris",
		Country:       "France",
		Score:         0.95,
		Reason:        "Based on your interest in culture and history",
	},
	{
		DestinationID: "tokyo_japan",
		Name:          "Tokyo",
		Country:       "Japan",
		Score:         0.90,
		Reason:        "Perfect blend of modern and traditional experiences",
	},
	{
		DestinationID: "new_york_usa",
		Name:          "New York",
		Country:       "USA",
		Score:         0.88,
		Reason:        "Vibrant city life and diverse cultural offerings",
	},
}

// FallbackRecommendations returns up to limit entries of the static fallback
// list with positions assigned. Negative limits yield an empty list.
func FallbackRecommendations(limit int) []RankedRecommendation {
	if limit < 0 {
		limit = 0
	}
	if limit > len(fallbackList) {
		limit = len(fallbackList)
	}

	out := make([]RankedRecommendation, limit)
	copy(out, fallbackList[:limit])
	for i := range out {
		out[i].Position = i + 1
	}
	return out
}
