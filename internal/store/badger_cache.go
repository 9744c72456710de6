// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/wayfinderhq/wayfinder/internal/recommend"
)

const recommendationKeyPrefix = "recommendations:"

// BadgerCache is a RecommendationCache backed by BadgerDB. Entry expiry rides
// on Badger's native TTL, so stale entries vanish without a sweeper.
type BadgerCache struct {
	db *badger.DB
}

// NewBadgerCache creates a cache from an existing BadgerDB connection.
func NewBadgerCache(db *badger.DB) *BadgerCache {
	return &BadgerCache{db: db}
}

// Get returns the cached recommendation list for the user. Absent and expired
// entries both report a miss.
func (c *BadgerCache) Get(_ context.Context, userID string) ([]recommend.RankedRecommendation, bool, error) {
	var recs []recommend.RankedRecommendation
	found := false

	err := c.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(recommendationKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get cached recommendations: %w", err)
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &recs)
		})
	})
	if err != nil {
		return nil, false, err
	}
	return recs, found, nil
}

// Put caches the list for the user with the given TTL.
func (c *BadgerCache) Put(_ context.Context, userID string, recs []recommend.RankedRecommendation, ttl time.Duration) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}

	return c.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry([]byte(recommendationKeyPrefix+userID), data)
		if ttl > 0 {
			entry = entry.WithTTL(ttl)
		}
		return txn.SetEntry(entry)
	})
}

// Invalidate drops the user's cached list, if any.
func (c *BadgerCache) Invalidate(_ context.Context, userID string) error {
	return c.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(recommendationKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
}
