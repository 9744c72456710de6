// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in priority order.
var DefaultConfigPaths = []string{
	"wayfinder.yaml",
	"wayfinder.yml",
	"/etc/wayfinder/config.yaml",
	"/etc/wayfinder/config.yml",
}

// ConfigPathEnvVar overrides the config file path when set.
const ConfigPathEnvVar = "WAYFINDER_CONFIG"

// envPrefix namespaces this service's environment variables.
const envPrefix = "WAYFINDER_"

// Load builds configuration from layered sources:
//  1. Built-in defaults
//  2. Optional YAML config file
//  3. WAYFINDER_* environment variables (highest priority)
//
// Examples:
//
//	WAYFINDER_SERVER_PORT=9090
//	WAYFINDER_STORE_BACKEND=badger
//	WAYFINDER_ENGINE_VOCABULARY_CAP=2000
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransform maps WAYFINDER_* environment variable names to config paths:
// WAYFINDER_SERVER_PORT -> server.port.
func envTransform(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	// Multi-word leaves cannot be derived by splitting on underscores alone,
	// so known keys map explicitly and the rest fall back to section_leaf.
	mappings := map[string]string{
		"server_cors_origins":        "server.cors_origins",
		"server_rate_limit_requests": "server.rate_limit_requests",
		"server_rate_limit_window":   "server.rate_limit_window",
		"engine_vocabulary_cap":      "engine.vocabulary_cap",
		"engine_budget_boost":        "engine.budget_boost",
		"engine_activity_boost":      "engine.activity_boost",
		"engine_default_limit":       "engine.default_limit",
		"engine_max_limit":           "engine.max_limit",
		"engine_trending_window":     "engine.trending_window",
		"store_corpus_file":          "store.corpus_file",
		"rebuild_on_start":           "rebuild.on_start",
	}
	if mapped, ok := mappings[key]; ok {
		return mapped
	}

	if section, leaf, ok := strings.Cut(key, "_"); ok {
		return section + "." + leaf
	}

	// Unmapped keys are skipped so stray variables don't pollute config.
	return ""
}

// sliceConfigPaths lists config paths parsed as comma-separated slices when
// they arrive as strings from the environment.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		val := k.Get(path)
		strVal, ok := val.(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) > 0 {
			if err := k.Set(path, trimmed); err != nil {
				return fmt.Errorf("set %s: %w", path, err)
			}
		}
	}
	return nil
}
