// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/wayfinderhq/wayfinder/internal/recommend"
)

// Key prefixes for BadgerDB namespacing.
const (
	prefsKeyPrefix      = "prefs:"
	visitKeyPrefix      = "visit:"
	visitUserKeyPrefix  = "visit_user:"
	feedbackKeyPrefix   = "feedback:"
	popularityKeyPrefix = "popularity:"
)

// OpenBadger opens a BadgerDB at the given directory with settings tuned for
// the small records this service stores.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil // Suppress BadgerDB internal logs
	opts.ValueLogFileSize = 16 << 20
	opts.SyncWrites = true

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return db, nil
}

// BadgerStore persists user preferences, visits, feedback, and popularity
// adjustments in BadgerDB so they survive restarts. It implements
// CorpusStore, PreferenceStore, VisitStore, and FeedbackStore over a shared
// DB handle.
//
// The corpus itself is held in memory; only popularity scores are persisted,
// keyed by destination id, and reapplied over the loaded corpus at startup.
type BadgerStore struct {
	db *badger.DB

	mu     sync.RWMutex
	corpus []recommend.DestinationProfile
	byID   map[string]int
}

// NewBadgerStore creates a store from an existing BadgerDB connection and
// the loaded corpus. Persisted popularity scores override the corpus values.
// Sharing one DB across stores keeps a single value log on disk.
func NewBadgerStore(db *badger.DB, corpus []recommend.DestinationProfile) *BadgerStore {
	s := &BadgerStore{
		db:     db,
		corpus: append([]recommend.DestinationProfile(nil), corpus...),
		byID:   make(map[string]int, len(corpus)),
	}
	for i := range s.corpus {
		s.byID[s.corpus[i].ID] = i
	}
	s.restorePopularity()
	return s
}

// restorePopularity overlays persisted popularity scores onto the corpus.
func (s *BadgerStore) restorePopularity() {
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(popularityKeyPrefix)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			id := string(it.Item().Key()[len(prefix):])
			i, ok := s.byID[id]
			if !ok {
				continue
			}
			_ = it.Item().Value(func(val []byte) error {
				if score, err := strconv.ParseFloat(string(val), 64); err == nil {
					s.corpus[i].PopularityScore = score
				}
				return nil
			})
		}
		return nil
	})
}

// LoadCorpus returns a copy of the destination corpus with current
// popularity scores applied.
func (s *BadgerStore) LoadCorpus(_ context.Context) ([]recommend.DestinationProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]recommend.DestinationProfile(nil), s.corpus...), nil
}

// AdjustPopularity applies a delta to the destination's popularity score and
// persists the new absolute value.
func (s *BadgerStore) AdjustPopularity(_ context.Context, destinationID string, delta float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.byID[destinationID]
	if !ok {
		return fmt.Errorf("%w: destination %q", ErrNotFound, destinationID)
	}
	score := s.corpus[i].PopularityScore + delta

	key := []byte(popularityKeyPrefix + destinationID)
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, []byte(strconv.FormatFloat(score, 'g', -1, 64)))
	})
	if err != nil {
		return fmt.Errorf("persist popularity: %w", err)
	}

	s.corpus[i].PopularityScore = score
	return nil
}

// Load returns the stored preference profile, or (nil, nil) when the user has
// none.
func (s *BadgerStore) Load(_ context.Context, userID string) (*recommend.UserPreferenceProfile, error) {
	var profile recommend.UserPreferenceProfile
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefsKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("get preferences: %w", err)
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &profile)
		})
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// Replace stores the profile, overwriting any previous one for the user.
func (s *BadgerStore) Replace(_ context.Context, profile recommend.UserPreferenceProfile) error {
	if profile.UserID == "" {
		return fmt.Errorf("store: preference profile missing user id")
	}

	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefsKeyPrefix+profile.UserID), data)
	})
}

// AppendVisit records a visit under a fresh key, with a user-scoped secondary
// key for efficient per-user lookup.
func (s *BadgerStore) AppendVisit(_ context.Context, visit recommend.VisitRecord) error {
	data, err := json.Marshal(visit)
	if err != nil {
		return fmt.Errorf("marshal visit: %w", err)
	}

	id := uuid.NewString()
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(visitKeyPrefix+id), data); err != nil {
			return fmt.Errorf("set visit: %w", err)
		}
		userKey := []byte(visitUserKeyPrefix + visit.UserID + ":" + id)
		if err := txn.Set(userKey, []byte(visit.DestinationID)); err != nil {
			return fmt.Errorf("set visit user mapping: %w", err)
		}
		return nil
	})
}

// VisitedIDs returns the set of destination ids the user has visited.
func (s *BadgerStore) VisitedIDs(_ context.Context, userID string) (map[string]struct{}, error) {
	visited := make(map[string]struct{})

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(visitUserKeyPrefix + userID + ":")
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			err := it.Item().Value(func(val []byte) error {
				visited[string(val)] = struct{}{}
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan visits for user: %w", err)
	}
	return visited, nil
}

// CountVisitsSince counts visits per destination at or after the cutoff.
func (s *BadgerStore) CountVisitsSince(_ context.Context, cutoff time.Time) (map[string]int, error) {
	counts := make(map[string]int)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(visitKeyPrefix)
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var visit recommend.VisitRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &visit)
			})
			if err != nil {
				return err
			}
			if !visit.Timestamp.Before(cutoff) {
				counts[visit.DestinationID]++
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan visits: %w", err)
	}
	return counts, nil
}

// AppendFeedback records a feedback event under a fresh key.
func (s *BadgerStore) AppendFeedback(_ context.Context, rec recommend.FeedbackRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	key := []byte(feedbackKeyPrefix + rec.UserID + ":" + uuid.NewString())
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// FeedbackFor returns the user's stored feedback history.
func (s *BadgerStore) FeedbackFor(_ context.Context, userID string) ([]recommend.FeedbackRecord, error) {
	var out []recommend.FeedbackRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(feedbackKeyPrefix + userID + ":")
		opts.Prefix = prefix

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var rec recommend.FeedbackRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			})
			if err != nil {
				return err
			}
			out = append(out, rec)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan feedback: %w", err)
	}
	return out, nil
}
