// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubVisitCounter struct {
	counts map[string]int
	err    error

	lastCutoff time.Time
}

func (s *stubVisitCounter) CountVisitsSince(_ context.Context, cutoff time.Time) (map[string]int, error) {
	s.lastCutoff = cutoff
	if s.err != nil {
		return nil, s.err
	}
	return s.counts, nil
}

func TestEngine_SimilarTo(t *testing.T) {
	// Two temperate culture destinations, one temperate destination with no
	// activity overlap, and one tropical destination that shares tags.
	corpus := []DestinationProfile{
		{ID: "ref", Climate: "temperate", ActivityTags: []string{"culture", "food"}, Description: "temples museums"},
		{ID: "match_one", Climate: "temperate", ActivityTags: []string{"culture"}, Description: "old town plazas"},
		{ID: "wrong_climate", Climate: "tropical", ActivityTags: []string{"culture", "food"}, Description: "island markets"},
		{ID: "no_overlap", Climate: "temperate", ActivityTags: []string{"hiking"}, Description: "forest trails"},
		{ID: "match_two", Climate: "temperate", ActivityTags: []string{"food", "nightlife"}, Description: "street food stalls"},
	}

	e := newTestEngine(t, corpus)

	got, err := e.SimilarTo("ref", 10)
	if err != nil {
		t.Fatalf("SimilarTo() error = %v", err)
	}

	wantIDs := []string{"match_one", "match_two"}
	if len(got) != len(wantIDs) {
		t.Fatalf("SimilarTo() returned %d items, want %d", len(got), len(wantIDs))
	}
	// Results come back in corpus storage order, not ranked.
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("SimilarTo()[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
	for _, dest := range got {
		if dest.ID == "ref" {
			t.Error("SimilarTo() included the reference destination")
		}
	}
}

func TestEngine_SimilarToLimits(t *testing.T) {
	corpus := []DestinationProfile{
		{ID: "ref", Climate: "temperate", ActivityTags: []string{"culture"}, Description: "temples"},
		{ID: "a", Climate: "temperate", ActivityTags: []string{"culture"}, Description: "plazas"},
		{ID: "b", Climate: "temperate", ActivityTags: []string{"culture"}, Description: "galleries"},
		{ID: "c", Climate: "temperate", ActivityTags: []string{"culture"}, Description: "castles"},
	}
	e := newTestEngine(t, corpus)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "truncates to limit", limit: 2, want: 2},
		{name: "limit above matches returns all", limit: 10, want: 3},
		{name: "zero limit yields empty list", limit: 0, want: 0},
		{name: "negative limit yields empty list", limit: -1, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.SimilarTo("ref", tt.limit)
			if err != nil {
				t.Fatalf("SimilarTo() error = %v", err)
			}
			if len(got) != tt.want {
				t.Errorf("SimilarTo(limit=%d) returned %d items, want %d", tt.limit, len(got), tt.want)
			}
		})
	}
}

func TestEngine_SimilarToErrors(t *testing.T) {
	e := newTestEngine(t, testCorpus())
	if _, err := e.SimilarTo("atlantis", 10); !errors.Is(err, ErrDestinationNotFound) {
		t.Errorf("SimilarTo(unknown) error = %v, want ErrDestinationNotFound", err)
	}

	bare := newTestEngine(t, nil)
	if _, err := bare.SimilarTo("kyoto_japan", 10); !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("SimilarTo() without index error = %v, want ErrIndexUnavailable", err)
	}
}

func TestEngine_Trending(t *testing.T) {
	// x and y tie on visit count, so popularity breaks the tie; z leads on
	// visits outright despite carrying no popularity at all.
	corpus := []DestinationProfile{
		{ID: "x", Climate: "temperate", Description: "city parks", PopularityScore: 3.0},
		{ID: "y", Climate: "cold", Description: "ski slopes", PopularityScore: 1.0},
		{ID: "z", Climate: "tropical", Description: "coral reefs"},
	}
	e := newTestEngine(t, corpus)

	counter := &stubVisitCounter{counts: map[string]int{"x": 5, "y": 5, "z": 9}}
	got, err := e.Trending(context.Background(), counter, 10)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}

	wantIDs := []string{"z", "x", "y"}
	if len(got) != len(wantIDs) {
		t.Fatalf("Trending() returned %d items, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("Trending()[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
	if got[0].RecentVisitCount != 9 {
		t.Errorf("Trending()[0].RecentVisitCount = %d, want 9", got[0].RecentVisitCount)
	}

	// Cutoff reflects the configured trailing window.
	wantCutoff := time.Now().Add(-DefaultTrendingWindow)
	if diff := counter.lastCutoff.Sub(wantCutoff); diff < -time.Minute || diff > time.Minute {
		t.Errorf("trending cutoff = %v, want about %v", counter.lastCutoff, wantCutoff)
	}
}

func TestEngine_TrendingZeroVisits(t *testing.T) {
	// No visits in the window: every destination still appears, ordered by
	// popularity alone.
	e := newTestEngine(t, testCorpus())

	counter := &stubVisitCounter{counts: map[string]int{}}
	got, err := e.Trending(context.Background(), counter, 10)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}

	wantIDs := []string{"kyoto_japan", "cancun_mexico", "interlaken_switzerland"}
	if len(got) != len(wantIDs) {
		t.Fatalf("Trending() returned %d items, want %d", len(got), len(wantIDs))
	}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("Trending()[%d].ID = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestEngine_TrendingLimit(t *testing.T) {
	e := newTestEngine(t, testCorpus())
	counter := &stubVisitCounter{counts: map[string]int{"kyoto_japan": 3}}

	got, err := e.Trending(context.Background(), counter, 1)
	if err != nil {
		t.Fatalf("Trending() error = %v", err)
	}
	if len(got) != 1 || got[0].ID != "kyoto_japan" {
		t.Errorf("Trending(limit=1) = %v, want single kyoto_japan entry", got)
	}
}

func TestEngine_TrendingErrors(t *testing.T) {
	bare := newTestEngine(t, nil)
	if _, err := bare.Trending(context.Background(), &stubVisitCounter{}, 10); !errors.Is(err, ErrIndexUnavailable) {
		t.Errorf("Trending() without index error = %v, want ErrIndexUnavailable", err)
	}

	e := newTestEngine(t, testCorpus())
	counter := &stubVisitCounter{err: errors.New("store offline")}
	if _, err := e.Trending(context.Background(), counter, 10); err == nil {
		t.Error("Trending() with failing counter expected error")
	}
}
