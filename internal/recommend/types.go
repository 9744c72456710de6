// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import "time"

// BudgetTier is an ordered budget classification for destinations and users.
type BudgetTier int

const (
	// BudgetLow indicates a low-cost destination or budget.
	BudgetLow BudgetTier = iota
	// BudgetMedium indicates a mid-range destination or budget.
	BudgetMedium
	// BudgetHigh indicates a premium destination or budget.
	BudgetHigh
)

// String returns the wire name for the budget tier.
func (b BudgetTier) String() string {
	switch b {
	case BudgetLow:
		return "low"
	case BudgetMedium:
		return "medium"
	case BudgetHigh:
		return "high"
	default:
		return "unknown"
	}
}

// ParseBudgetTier parses a wire name into a BudgetTier.
// Unknown values map to BudgetMedium, the defined default.
func ParseBudgetTier(s string) BudgetTier {
	switch s {
	case "low":
		return BudgetLow
	case "high":
		return BudgetHigh
	default:
		return BudgetMedium
	}
}

// MarshalJSON encodes the tier as its wire name.
func (b BudgetTier) MarshalJSON() ([]byte, error) {
	return []byte(`"` + b.String() + `"`), nil
}

// UnmarshalJSON decodes a wire name into the tier.
func (b *BudgetTier) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	*b = ParseBudgetTier(s)
	return nil
}

// GeoPoint is a WGS84 coordinate pair.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// DestinationProfile describes a single travel destination in the corpus.
//
// The ID is opaque, unique, and immutable. PopularityScore is the only field
// mutated after load, and only through the feedback Adjuster; the feature
// vector is derived at index build time and lives in the CorpusIndex, not here.
type DestinationProfile struct {
	// ID is the unique destination identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Country is the destination's country.
	Country string `json:"country"`

	// Location is the destination's geocoordinate.
	Location GeoPoint `json:"location"`

	// Climate is the climate category (tropical, temperate, cold, ...).
	Climate string `json:"climate"`

	// ActivityTags lists activities offered (adventure, culture, ...).
	ActivityTags []string `json:"activity_types"`

	// InterestTags lists interests served (history, nature, food, ...).
	InterestTags []string `json:"interests"`

	// Budget is the destination's budget tier.
	Budget BudgetTier `json:"budget_level"`

	// Description is the free-text description fed to the vectorizer.
	Description string `json:"description"`

	// PopularityScore drifts over time in response to user feedback.
	// Unbounded in both directions.
	PopularityScore float64 `json:"popularity_score"`
}

// UserPreferenceProfile captures a user's stated travel preferences.
//
// Profiles are replaced wholesale on update, never merged. A user with no
// stored profile gets DefaultPreferences, never an error.
type UserPreferenceProfile struct {
	// UserID is the unique user identifier.
	UserID string `json:"user_id"`

	// PreferredClimates is the set of acceptable climate categories.
	PreferredClimates []string `json:"preferred_climates"`

	// ActivityTypes is the set of preferred activities.
	ActivityTypes []string `json:"activity_types"`

	// Interests is the set of interest tags.
	Interests []string `json:"interests"`

	// Budget is the user's budget range.
	Budget BudgetTier `json:"budget_range"`

	// TravelStyle is a free label (adventure, luxury, budget, family, ...).
	TravelStyle string `json:"travel_style"`

	// Languages lists the user's languages.
	Languages []string `json:"languages"`

	// AccessibilityNeeds lists accessibility requirements.
	AccessibilityNeeds []string `json:"accessibility_needs"`
}

// DefaultPreferences returns the defined default profile for a user with no
// stored preferences: empty sets and a medium budget.
func DefaultPreferences(userID string) UserPreferenceProfile {
	return UserPreferenceProfile{
		UserID:      userID,
		Budget:      BudgetMedium,
		TravelStyle: "balanced",
		Languages:   []string{"en"},
	}
}

// VisitRecord is an append-only record of a user visiting a destination.
type VisitRecord struct {
	UserID        string    `json:"user_id"`
	DestinationID string    `json:"destination_id"`
	Timestamp     time.Time `json:"timestamp"`
}

// FeedbackCategory classifies user feedback sentiment.
type FeedbackCategory string

const (
	// FeedbackLike indicates positive sentiment.
	FeedbackLike FeedbackCategory = "like"
	// FeedbackDislike indicates negative sentiment.
	FeedbackDislike FeedbackCategory = "dislike"
	// FeedbackNeutral indicates neutral sentiment.
	FeedbackNeutral FeedbackCategory = "neutral"
)

// FeedbackRecord is an append-only user feedback event.
//
// Ratings are bounded to 1-5 inclusive. Each accepted record maps to exactly
// one popularity delta; replaying a record applies the delta again (no dedup).
type FeedbackRecord struct {
	UserID        string           `json:"user_id"`
	DestinationID string           `json:"destination_id"`
	Rating        int              `json:"rating"`
	Category      FeedbackCategory `json:"feedback_type"`
	Comment       string           `json:"comments,omitempty"`
	Timestamp     time.Time        `json:"timestamp"`
}

// RankedRecommendation is one entry of a scored, ranked recommendation list.
//
// It snapshots the destination's public attributes at scoring time and is
// superseded wholesale by the next scoring call.
type RankedRecommendation struct {
	// DestinationID is the recommended destination.
	DestinationID string `json:"id"`

	// Name is the destination display name at scoring time.
	Name string `json:"name"`

	// Country is the destination country at scoring time.
	Country string `json:"country"`

	// Score is the final score: cosine similarity plus boosts.
	Score float64 `json:"score"`

	// Position is the 1-based rank in the returned list.
	Position int `json:"position"`

	// Reason is a human-readable justification. Presentation only; it
	// never affects ranking.
	Reason string `json:"reason"`

	// Location, Climate, ActivityTags and Budget snapshot the public
	// destination attributes at scoring time.
	Location     GeoPoint   `json:"location"`
	Climate      string     `json:"climate"`
	ActivityTags []string   `json:"activity_types"`
	Budget       BudgetTier `json:"budget_level"`
}
