// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import (
	"fmt"
	"time"
)

// Default tuning values for the recommendation core.
const (
	// DefaultVocabularyCap bounds the fitted TF-IDF vocabulary.
	DefaultVocabularyCap = 1000

	// DefaultBudgetBoost is added when destination and user budget tiers
	// match exactly.
	DefaultBudgetBoost = 0.10

	// DefaultActivityBoost is added per overlapping activity tag.
	DefaultActivityBoost = 0.05

	// DefaultLimit is the recommendation count when the caller passes none.
	DefaultLimit = 10

	// DefaultMaxLimit caps caller-supplied limits.
	DefaultMaxLimit = 100

	// DefaultTrendingWindow is the trailing window for trending queries.
	DefaultTrendingWindow = 7 * 24 * time.Hour
)

// Config contains tuning parameters for the recommendation engine.
type Config struct {
	// VocabularyCap bounds the fitted vocabulary size.
	VocabularyCap int `json:"vocabulary_cap"`

	// BudgetBoost is the additive boost for an exact budget tier match.
	BudgetBoost float64 `json:"budget_boost"`

	// ActivityBoost is the additive boost per overlapping activity tag.
	ActivityBoost float64 `json:"activity_boost"`

	// DefaultLimit is used when a request carries no limit.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps caller-supplied limits.
	MaxLimit int `json:"max_limit"`

	// TrendingWindow is the trailing window for trending visit counts.
	TrendingWindow time.Duration `json:"trending_window"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		VocabularyCap:  DefaultVocabularyCap,
		BudgetBoost:    DefaultBudgetBoost,
		ActivityBoost:  DefaultActivityBoost,
		DefaultLimit:   DefaultLimit,
		MaxLimit:       DefaultMaxLimit,
		TrendingWindow: DefaultTrendingWindow,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.VocabularyCap <= 0 {
		return fmt.Errorf("vocabulary_cap must be positive, got %d", c.VocabularyCap)
	}
	if c.BudgetBoost < 0 {
		return fmt.Errorf("budget_boost must be non-negative, got %f", c.BudgetBoost)
	}
	if c.ActivityBoost < 0 {
		return fmt.Errorf("activity_boost must be non-negative, got %f", c.ActivityBoost)
	}
	if c.DefaultLimit <= 0 {
		return fmt.Errorf("default_limit must be positive, got %d", c.DefaultLimit)
	}
	if c.MaxLimit < c.DefaultLimit {
		return fmt.Errorf("max_limit (%d) must be >= default_limit (%d)", c.MaxLimit, c.DefaultLimit)
	}
	if c.TrendingWindow <= 0 {
		return fmt.Errorf("trending_window must be positive, got %s", c.TrendingWindow)
	}
	return nil
}

// Clone returns a copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
