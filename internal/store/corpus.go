// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package store

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/wayfinderhq/wayfinder/internal/recommend"
)

// LoadCorpusFile reads a destination corpus from a JSON file: a top-level
// array of destination profiles in wire format.
func LoadCorpusFile(path string) ([]recommend.DestinationProfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read corpus file: %w", err)
	}

	var corpus []recommend.DestinationProfile
	if err := json.Unmarshal(data, &corpus); err != nil {
		return nil, fmt.Errorf("parse corpus file %s: %w", path, err)
	}

	seen := make(map[string]struct{}, len(corpus))
	for i := range corpus {
		if corpus[i].ID == "" {
			return nil, fmt.Errorf("corpus file %s: entry %d missing id", path, i)
		}
		if _, dup := seen[corpus[i].ID]; dup {
			return nil, fmt.Errorf("corpus file %s: duplicate destination id %q", path, corpus[i].ID)
		}
		seen[corpus[i].ID] = struct{}{}
	}

	return corpus, nil
}

// DevCorpus returns a small built-in corpus for development and demos, used
// when no corpus file is configured.
func DevCorpus() []recommend.DestinationProfile {
	return []recommend.DestinationProfile{
		{
			ID:              "paris_france",
			Name:            "Paris",
			Country:         "France",
			Location:        recommend.GeoPoint{Latitude: 48.8566, Longitude: 2.3522},
			Climate:         "temperate",
			ActivityTags:    []string{"culture", "food", "art"},
			InterestTags:    []string{"history", "museums", "architecture"},
			Budget:          recommend.BudgetHigh,
			Description:     "iconic museums galleries cafes historic boulevards gothic cathedrals fine dining",
			PopularityScore: 4.8,
		},
		{
			ID:              "tokyo_japan",
			Name:            "Tokyo",
			Country:         "Japan",
			Location:        recommend.GeoPoint{Latitude: 35.6762, Longitude: 139.6503},
			Climate:         "temperate",
			ActivityTags:    []string{"culture", "food", "shopping"},
			InterestTags:    []string{"technology", "tradition", "cuisine"},
			Budget:          recommend.BudgetHigh,
			Description:     "neon districts ancient shrines sushi markets modern towers traditional gardens",
			PopularityScore: 4.7,
		},
		{
			ID:              "new_york_usa",
			Name:            "New York",
			Country:         "United States",
			Location:        recommend.GeoPoint{Latitude: 40.7128, Longitude: -74.0060},
			Climate:         "temperate",
			ActivityTags:    []string{"culture", "nightlife", "shopping"},
			InterestTags:    []string{"museums", "theater", "cuisine"},
			Budget:          recommend.BudgetHigh,
			Description:     "skyline theaters museums diverse neighborhoods vibrant nightlife central park",
			PopularityScore: 4.6,
		},
		{
			ID:              "bali_indonesia",
			Name:            "Bali",
			Country:         "Indonesia",
			Location:        recommend.GeoPoint{Latitude: -8.3405, Longitude: 115.0920},
			Climate:         "tropical",
			ActivityTags:    []string{"beach", "relaxation", "surfing"},
			InterestTags:    []string{"nature", "wellness", "spirituality"},
			Budget:          recommend.BudgetLow,
			Description:     "rice terraces beaches temples surfing yoga retreats volcanic mountains",
			PopularityScore: 4.5,
		},
		{
			ID:              "queenstown_new_zealand",
			Name:            "Queenstown",
			Country:         "New Zealand",
			Location:        recommend.GeoPoint{Latitude: -45.0312, Longitude: 168.6626},
			Climate:         "cold",
			ActivityTags:    []string{"adventure", "hiking", "skiing"},
			InterestTags:    []string{"nature", "mountains"},
			Budget:          recommend.BudgetMedium,
			Description:     "bungee jumping alpine lakes hiking trails ski slopes adventure sports fjords",
			PopularityScore: 4.3,
		},
		{
			ID:              "cancun_mexico",
			Name:            "Cancun",
			Country:         "Mexico",
			Location:        recommend.GeoPoint{Latitude: 21.1619, Longitude: -86.8515},
			Climate:         "tropical",
			ActivityTags:    []string{"beach", "relaxation", "nightlife"},
			InterestTags:    []string{"nature", "ruins"},
			Budget:          recommend.BudgetMedium,
			Description:     "turquoise waters sandy beaches mayan ruins coral reefs resort nightlife",
			PopularityScore: 4.2,
		},
		{
			ID:              "marrakech_morocco",
			Name:            "Marrakech",
			Country:         "Morocco",
			Location:        recommend.GeoPoint{Latitude: 31.6295, Longitude: -7.9811},
			Climate:         "arid",
			ActivityTags:    []string{"culture", "food", "shopping"},
			InterestTags:    []string{"history", "markets", "architecture"},
			Budget:          recommend.BudgetLow,
			Description:     "bustling souks spice markets ornate palaces desert excursions riads",
			PopularityScore: 4.0,
		},
		{
			ID:              "interlaken_switzerland",
			Name:            "Interlaken",
			Country:         "Switzerland",
			Location:        recommend.GeoPoint{Latitude: 46.6863, Longitude: 7.8632},
			Climate:         "cold",
			ActivityTags:    []string{"adventure", "hiking", "skiing"},
			InterestTags:    []string{"nature", "mountains"},
			Budget:          recommend.BudgetHigh,
			Description:     "alpine peaks paragliding mountain railways glacial lakes hiking chalets",
			PopularityScore: 3.9,
		},
	}
}
