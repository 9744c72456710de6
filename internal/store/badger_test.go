// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package store

import (
	"context"
	"testing"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/wayfinderhq/wayfinder/internal/recommend"
)

func createTestBadgerDB(t *testing.T) *badger.DB {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir())
	opts.Logger = nil // Disable logging for tests
	db, err := badger.Open(opts)
	if err != nil {
		t.Fatalf("Failed to open BadgerDB: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestBadgerStore_Preferences(t *testing.T) {
	db := createTestBadgerDB(t)
	s := NewBadgerStore(db, nil)
	ctx := context.Background()

	got, err := s.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != nil {
		t.Fatalf("Load() = %+v, want nil for unknown user", got)
	}

	profile := recommend.UserPreferenceProfile{
		UserID:            "u1",
		PreferredClimates: []string{"tropical"},
		ActivityTypes:     []string{"beach", "relaxation"},
		Budget:            recommend.BudgetLow,
		TravelStyle:       "budget",
	}
	if err := s.Replace(ctx, profile); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	got, err = s.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got == nil {
		t.Fatal("Load() = nil after Replace()")
	}
	if got.Budget != recommend.BudgetLow || got.TravelStyle != "budget" {
		t.Errorf("Load() = %+v, want stored profile", got)
	}
	if len(got.ActivityTypes) != 2 {
		t.Errorf("ActivityTypes = %v, want 2 entries", got.ActivityTypes)
	}

	// Replacement is wholesale.
	if err := s.Replace(ctx, recommend.UserPreferenceProfile{UserID: "u1", Budget: recommend.BudgetHigh}); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}
	got, _ = s.Load(ctx, "u1")
	if got.Budget != recommend.BudgetHigh || len(got.ActivityTypes) != 0 {
		t.Errorf("Load() after second Replace() = %+v, want only new fields", got)
	}
}

func TestBadgerStore_Visits(t *testing.T) {
	db := createTestBadgerDB(t)
	s := NewBadgerStore(db, nil)
	ctx := context.Background()
	now := time.Now()

	visits := []recommend.VisitRecord{
		{UserID: "u1", DestinationID: "paris_france", Timestamp: now.Add(-time.Hour)},
		{UserID: "u1", DestinationID: "tokyo_japan", Timestamp: now.Add(-30 * 24 * time.Hour)},
		{UserID: "u2", DestinationID: "paris_france", Timestamp: now.Add(-time.Minute)},
	}
	for _, v := range visits {
		if err := s.AppendVisit(ctx, v); err != nil {
			t.Fatalf("AppendVisit() error = %v", err)
		}
	}

	visited, err := s.VisitedIDs(ctx, "u1")
	if err != nil {
		t.Fatalf("VisitedIDs() error = %v", err)
	}
	if len(visited) != 2 {
		t.Errorf("VisitedIDs(u1) = %v, want 2 destinations", visited)
	}

	counts, err := s.CountVisitsSince(ctx, now.Add(-7*24*time.Hour))
	if err != nil {
		t.Fatalf("CountVisitsSince() error = %v", err)
	}
	if counts["paris_france"] != 2 {
		t.Errorf("counts[paris_france] = %d, want 2", counts["paris_france"])
	}
	if counts["tokyo_japan"] != 0 {
		t.Errorf("counts[tokyo_japan] = %d, want 0 (outside window)", counts["tokyo_japan"])
	}
}

func TestBadgerStore_Feedback(t *testing.T) {
	db := createTestBadgerDB(t)
	s := NewBadgerStore(db, nil)
	ctx := context.Background()

	records := []recommend.FeedbackRecord{
		{UserID: "u1", DestinationID: "paris_france", Rating: 5, Category: recommend.FeedbackLike},
		{UserID: "u1", DestinationID: "tokyo_japan", Rating: 1, Category: recommend.FeedbackDislike},
		{UserID: "u2", DestinationID: "bali_indonesia", Rating: 4},
	}
	for _, rec := range records {
		if err := s.AppendFeedback(ctx, rec); err != nil {
			t.Fatalf("AppendFeedback() error = %v", err)
		}
	}

	got, err := s.FeedbackFor(ctx, "u1")
	if err != nil {
		t.Fatalf("FeedbackFor() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("FeedbackFor(u1) returned %d records, want 2", len(got))
	}
}

func TestBadgerStore_Corpus(t *testing.T) {
	db := createTestBadgerDB(t)
	ctx := context.Background()

	corpus := []recommend.DestinationProfile{
		{ID: "paris_france", Name: "Paris", PopularityScore: 4.8},
		{ID: "tokyo_japan", Name: "Tokyo", PopularityScore: 4.7},
	}
	s := NewBadgerStore(db, corpus)

	got, err := s.LoadCorpus(ctx)
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("LoadCorpus() returned %d destinations, want 2", len(got))
	}

	if err := s.AdjustPopularity(ctx, "paris_france", 0.2); err != nil {
		t.Fatalf("AdjustPopularity() error = %v", err)
	}
	got, _ = s.LoadCorpus(ctx)
	if got[0].PopularityScore != 5.0 {
		t.Errorf("PopularityScore = %v, want 5.0 after adjustment", got[0].PopularityScore)
	}

	if err := s.AdjustPopularity(ctx, "atlantis", 1.0); err == nil {
		t.Error("AdjustPopularity(unknown) error = nil, want error")
	}

	// Adjustments survive a reopened store over the same DB.
	s2 := NewBadgerStore(db, corpus)
	got, err = s2.LoadCorpus(ctx)
	if err != nil {
		t.Fatalf("LoadCorpus() error = %v", err)
	}
	if got[0].PopularityScore != 5.0 {
		t.Errorf("PopularityScore after restore = %v, want 5.0", got[0].PopularityScore)
	}
}

func TestBadgerCache(t *testing.T) {
	db := createTestBadgerDB(t)
	c := NewBadgerCache(db)
	ctx := context.Background()

	if _, hit, err := c.Get(ctx, "u1"); err != nil || hit {
		t.Fatalf("Get() on empty cache = hit %v, err %v", hit, err)
	}

	recs := []recommend.RankedRecommendation{
		{DestinationID: "paris_france", Name: "Paris", Score: 0.92, Position: 1},
		{DestinationID: "tokyo_japan", Name: "Tokyo", Score: 0.85, Position: 2},
	}
	if err := c.Put(ctx, "u1", recs, time.Hour); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	got, hit, err := c.Get(ctx, "u1")
	if err != nil || !hit {
		t.Fatalf("Get() = hit %v, err %v, want hit", hit, err)
	}
	if len(got) != 2 || got[0].DestinationID != "paris_france" || got[0].Position != 1 {
		t.Errorf("Get() = %v, want cached list in order", got)
	}

	if err := c.Invalidate(ctx, "u1"); err != nil {
		t.Fatalf("Invalidate() error = %v", err)
	}
	if _, hit, _ := c.Get(ctx, "u1"); hit {
		t.Error("Get() hit after Invalidate()")
	}

	// Invalidating an absent entry is a no-op.
	if err := c.Invalidate(ctx, "ghost"); err != nil {
		t.Errorf("Invalidate(absent) error = %v", err)
	}
}

func TestBadgerCache_TTLExpiry(t *testing.T) {
	db := createTestBadgerDB(t)
	c := NewBadgerCache(db)
	ctx := context.Background()

	recs := []recommend.RankedRecommendation{{DestinationID: "paris_france", Position: 1}}
	if err := c.Put(ctx, "u1", recs, 50*time.Millisecond); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	time.Sleep(150 * time.Millisecond)

	if _, hit, err := c.Get(ctx, "u1"); err != nil || hit {
		t.Errorf("Get() after TTL = hit %v, err %v, want miss", hit, err)
	}
}
