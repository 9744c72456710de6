// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import (
	"math"
	"strings"
	"sync/atomic"
	"time"
)

// CorpusIndex holds the fitted vectorizer, every destination's feature vector,
// and the destination attributes, in stable corpus enumeration order.
//
// An index is immutable after build except for the per-destination popularity
// values, which are adjusted atomically by the feedback Adjuster. Rebuilds
// produce a whole new index that replaces the old one via IndexRef.Swap, so
// readers always see either the complete old index or the complete new one.
type CorpusIndex struct {
	vectorizer   *Vectorizer
	destinations []DestinationProfile
	vectors      [][]float64
	byID         map[string]int

	// popularity holds float64 bits per destination, adjusted with CAS so
	// concurrent feedback on the same destination never loses updates.
	popularity []atomic.Uint64

	builtAt time.Time
	version int
}

// BuildIndex fits a vectorizer over the corpus and computes every
// destination's feature vector. Returns ErrEmptyCorpus for an empty corpus.
//
// The document for each destination is its description joined with its
// activity and interest tags.
func BuildIndex(corpus []DestinationProfile, vocabularyCap, version int) (*CorpusIndex, error) {
	if len(corpus) == 0 {
		return nil, ErrEmptyCorpus
	}

	documents := make([]string, len(corpus))
	for i := range corpus {
		documents[i] = destinationDocument(&corpus[i])
	}

	vectorizer, err := FitVectorizer(documents, vocabularyCap)
	if err != nil {
		return nil, err
	}

	idx := &CorpusIndex{
		vectorizer:   vectorizer,
		destinations: make([]DestinationProfile, len(corpus)),
		vectors:      make([][]float64, len(corpus)),
		byID:         make(map[string]int, len(corpus)),
		popularity:   make([]atomic.Uint64, len(corpus)),
		builtAt:      time.Now(),
		version:      version,
	}
	copy(idx.destinations, corpus)

	for i := range idx.destinations {
		idx.vectors[i] = vectorizer.Transform(documents[i])
		idx.byID[idx.destinations[i].ID] = i
		idx.popularity[i].Store(math.Float64bits(idx.destinations[i].PopularityScore))
	}

	return idx, nil
}

// destinationDocument reduces a destination to the single text string the
// vectorizer is fitted on.
func destinationDocument(d *DestinationProfile) string {
	parts := make([]string, 0, 3)
	if d.Description != "" {
		parts = append(parts, d.Description)
	}
	if len(d.ActivityTags) > 0 {
		parts = append(parts, strings.Join(d.ActivityTags, " "))
	}
	if len(d.InterestTags) > 0 {
		parts = append(parts, strings.Join(d.InterestTags, " "))
	}
	return strings.Join(parts, " ")
}

// Len returns the number of indexed destinations.
func (idx *CorpusIndex) Len() int {
	return len(idx.destinations)
}

// Version returns the index build version.
func (idx *CorpusIndex) Version() int {
	return idx.version
}

// BuiltAt returns when the index was built.
func (idx *CorpusIndex) BuiltAt() time.Time {
	return idx.builtAt
}

// Vectorizer returns the fitted vectorizer for query synthesis.
func (idx *CorpusIndex) Vectorizer() *Vectorizer {
	return idx.vectorizer
}

// Lookup returns the destination with the given id, with its current
// popularity, or ErrDestinationNotFound.
func (idx *CorpusIndex) Lookup(id string) (DestinationProfile, error) {
	i, ok := idx.byID[id]
	if !ok {
		return DestinationProfile{}, ErrDestinationNotFound
	}
	return idx.destinationAt(i), nil
}

// Contains reports whether the given destination id is indexed.
func (idx *CorpusIndex) Contains(id string) bool {
	_, ok := idx.byID[id]
	return ok
}

// Enumerate returns all destinations in stable corpus order, with current
// popularity values. The returned slice is a copy.
func (idx *CorpusIndex) Enumerate() []DestinationProfile {
	out := make([]DestinationProfile, len(idx.destinations))
	for i := range idx.destinations {
		out[i] = idx.destinationAt(i)
	}
	return out
}

// destinationAt copies the destination at position i with live popularity.
func (idx *CorpusIndex) destinationAt(i int) DestinationProfile {
	d := idx.destinations[i]
	d.PopularityScore = math.Float64frombits(idx.popularity[i].Load())
	return d
}

// Popularity returns the current popularity score for a destination.
func (idx *CorpusIndex) Popularity(id string) (float64, error) {
	i, ok := idx.byID[id]
	if !ok {
		return 0, ErrDestinationNotFound
	}
	return math.Float64frombits(idx.popularity[i].Load()), nil
}

// AdjustPopularity atomically adds delta to a destination's popularity score.
// There is no floor or ceiling; drift is accepted.
func (idx *CorpusIndex) AdjustPopularity(id string, delta float64) error {
	i, ok := idx.byID[id]
	if !ok {
		return ErrDestinationNotFound
	}

	for {
		old := idx.popularity[i].Load()
		next := math.Float64bits(math.Float64frombits(old) + delta)
		if idx.popularity[i].CompareAndSwap(old, next) {
			return nil
		}
	}
}

// IndexRef is the single swappable reference to the current corpus index.
//
// It models the fitted/unfitted states explicitly: Load returns (index, true)
// when a fitted index is ready and (nil, false) when scoring must fall back to
// the static recommendation list. Rebuilds never mutate a published index;
// they build a new one and Swap the reference.
type IndexRef struct {
	ptr atomic.Pointer[CorpusIndex]
}

// Load returns the current index and whether one is available.
func (r *IndexRef) Load() (*CorpusIndex, bool) {
	idx := r.ptr.Load()
	return idx, idx != nil
}

// Swap publishes a new index, returning the previous one (may be nil).
func (r *IndexRef) Swap(idx *CorpusIndex) *CorpusIndex {
	return r.ptr.Swap(idx)
}
