// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

// Package config loads and validates application configuration from layered
// sources: built-in defaults, an optional YAML file, and environment
// variables, in increasing order of precedence.
package config

import (
	"fmt"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server  ServerConfig  `koanf:"server"`
	Engine  EngineConfig  `koanf:"engine"`
	Store   StoreConfig   `koanf:"store"`
	Cache   CacheConfig   `koanf:"cache"`
	Rebuild RebuildConfig `koanf:"rebuild"`
	Logging LoggingConfig `koanf:"logging"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	Timeout         time.Duration `koanf:"timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	RateLimitReqs   int           `koanf:"rate_limit_requests"`
	RateLimitWindow time.Duration `koanf:"rate_limit_window"`
}

// EngineConfig configures the recommendation engine.
type EngineConfig struct {
	VocabularyCap  int           `koanf:"vocabulary_cap"`
	BudgetBoost    float64       `koanf:"budget_boost"`
	ActivityBoost  float64       `koanf:"activity_boost"`
	DefaultLimit   int           `koanf:"default_limit"`
	MaxLimit       int           `koanf:"max_limit"`
	TrendingWindow time.Duration `koanf:"trending_window"`
}

// StoreConfig configures the persistence backend.
type StoreConfig struct {
	// Backend selects the store implementation: memory or badger.
	Backend string `koanf:"backend"`

	// Path is the BadgerDB directory when the badger backend is selected.
	Path string `koanf:"path"`

	// CorpusFile is an optional JSON file holding the destination corpus.
	// When empty, a small built-in development corpus is used.
	CorpusFile string `koanf:"corpus_file"`
}

// CacheConfig configures the recommendation cache.
type CacheConfig struct {
	// TTL is how long a user's recommendation list stays cached.
	TTL time.Duration `koanf:"ttl"`
}

// RebuildConfig configures the periodic index rebuild.
type RebuildConfig struct {
	// Interval between scheduled rebuilds. Zero disables the scheduler.
	Interval time.Duration `koanf:"interval"`

	// OnStart triggers a rebuild during startup before serving traffic.
	OnStart bool `koanf:"on_start"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Default returns a Config with all default values applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			Timeout:         30 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Engine: EngineConfig{
			VocabularyCap:  1000,
			BudgetBoost:    0.10,
			ActivityBoost:  0.05,
			DefaultLimit:   10,
			MaxLimit:       100,
			TrendingWindow: 7 * 24 * time.Hour,
		},
		Store: StoreConfig{
			Backend: "memory",
			Path:    "/data/wayfinder",
		},
		Cache: CacheConfig{
			TTL: time.Hour,
		},
		Rebuild: RebuildConfig{
			Interval: time.Hour,
			OnStart:  true,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1-65535, got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Server.RateLimitReqs < 0 {
		return fmt.Errorf("server.rate_limit_requests must be non-negative, got %d", c.Server.RateLimitReqs)
	}

	if c.Engine.VocabularyCap <= 0 {
		return fmt.Errorf("engine.vocabulary_cap must be positive, got %d", c.Engine.VocabularyCap)
	}
	if c.Engine.DefaultLimit <= 0 {
		return fmt.Errorf("engine.default_limit must be positive, got %d", c.Engine.DefaultLimit)
	}
	if c.Engine.MaxLimit < c.Engine.DefaultLimit {
		return fmt.Errorf("engine.max_limit (%d) must be >= engine.default_limit (%d)",
			c.Engine.MaxLimit, c.Engine.DefaultLimit)
	}
	if c.Engine.TrendingWindow <= 0 {
		return fmt.Errorf("engine.trending_window must be positive, got %s", c.Engine.TrendingWindow)
	}

	switch c.Store.Backend {
	case "memory":
	case "badger":
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the badger backend")
		}
	default:
		return fmt.Errorf("store.backend must be memory or badger, got %q", c.Store.Backend)
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative, got %s", c.Cache.TTL)
	}
	if c.Rebuild.Interval < 0 {
		return fmt.Errorf("rebuild.interval must be non-negative, got %s", c.Rebuild.Interval)
	}

	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
