// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import "testing"

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "zero vocabulary cap", mutate: func(c *Config) { c.VocabularyCap = 0 }, wantErr: true},
		{name: "negative budget boost", mutate: func(c *Config) { c.BudgetBoost = -0.1 }, wantErr: true},
		{name: "negative activity boost", mutate: func(c *Config) { c.ActivityBoost = -0.05 }, wantErr: true},
		{name: "zero boosts allowed", mutate: func(c *Config) { c.BudgetBoost = 0; c.ActivityBoost = 0 }},
		{name: "zero default limit", mutate: func(c *Config) { c.DefaultLimit = 0 }, wantErr: true},
		{name: "max limit below default limit", mutate: func(c *Config) { c.MaxLimit = 5 }, wantErr: true},
		{name: "zero trending window", mutate: func(c *Config) { c.TrendingWindow = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_Clone(t *testing.T) {
	cfg := DefaultConfig()
	clone := cfg.Clone()

	clone.VocabularyCap = 7
	if cfg.VocabularyCap == 7 {
		t.Error("Clone() shares state with the original")
	}
}
