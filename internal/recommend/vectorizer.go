// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package recommend

import (
	"math"
	"sort"
	"strings"
	"unicode"
)

// Vectorizer converts free text into fixed-length TF-IDF weighted term
// vectors. It is fitted once per corpus and immutable afterwards, so a single
// instance is safe for concurrent Transform calls.
//
// Fitting is deterministic: the same corpus always yields the same vocabulary
// (and therefore the same vectors for any given text).
type Vectorizer struct {
	vocabulary map[string]int // term -> vector index
	idf        []float64      // per-term inverse document frequency
	docCount   int
}

// stopWords is the fixed english stop-word list excluded from vocabularies.
var stopWords = map[string]struct{}{
	"a": {}, "about": {}, "above": {}, "after": {}, "again": {}, "all": {},
	"an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {}, "be": {},
	"because": {}, "been": {}, "before": {}, "being": {}, "below": {},
	"between": {}, "both": {}, "but": {}, "by": {}, "can": {}, "could": {},
	"did": {}, "do": {}, "does": {}, "down": {}, "during": {}, "each": {},
	"few": {}, "for": {}, "from": {}, "further": {}, "had": {}, "has": {},
	"have": {}, "having": {}, "he": {}, "her": {}, "here": {}, "hers": {},
	"him": {}, "his": {}, "how": {}, "if": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "its": {}, "just": {}, "me": {}, "more": {}, "most": {}, "my": {},
	"no": {}, "nor": {}, "not": {}, "now": {}, "of": {}, "off": {}, "on": {},
	"once": {}, "only": {}, "or": {}, "other": {}, "our": {}, "out": {},
	"over": {}, "own": {}, "same": {}, "she": {}, "should": {}, "so": {},
	"some": {}, "such": {}, "than": {}, "that": {}, "the": {}, "their": {},
	"them": {}, "then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"those": {}, "through": {}, "to": {}, "too": {}, "under": {}, "until": {},
	"up": {}, "very": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "where": {}, "which": {}, "while": {}, "who": {}, "whom": {},
	"why": {}, "will": {}, "with": {}, "would": {}, "you": {}, "your": {},
	"yours": {},
}

// FitVectorizer fits a vocabulary over the given documents, keeping at most
// maxTerms terms. Stop words and single-character tokens are excluded.
//
// Term selection is by document frequency (descending), with alphabetical
// order breaking ties, so fitting is fully deterministic. The retained
// vocabulary is then indexed alphabetically.
//
// Returns ErrEmptyCorpus if documents is empty.
func FitVectorizer(documents []string, maxTerms int) (*Vectorizer, error) {
	if len(documents) == 0 {
		return nil, ErrEmptyCorpus
	}
	if maxTerms <= 0 {
		maxTerms = DefaultVocabularyCap
	}

	// Document frequency per term.
	df := make(map[string]int)
	for _, doc := range documents {
		seen := make(map[string]struct{})
		for _, term := range tokenize(doc) {
			if _, dup := seen[term]; dup {
				continue
			}
			seen[term] = struct{}{}
			df[term]++
		}
	}

	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Slice(terms, func(i, j int) bool {
		if df[terms[i]] != df[terms[j]] {
			return df[terms[i]] > df[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > maxTerms {
		terms = terms[:maxTerms]
	}
	sort.Strings(terms)

	v := &Vectorizer{
		vocabulary: make(map[string]int, len(terms)),
		idf:        make([]float64, len(terms)),
		docCount:   len(documents),
	}
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed, log-dampened IDF. The +1 terms keep weights finite
		// and non-zero for terms present in every document.
		v.idf[i] = math.Log(float64(1+len(documents))/float64(1+df[term])) + 1
	}

	return v, nil
}

// Transform converts text into a TF-IDF weighted vector of vocabulary length.
// Terms outside the fitted vocabulary are ignored; unknown-only text yields
// the zero vector.
func (v *Vectorizer) Transform(text string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, term := range tokenize(text) {
		idx, ok := v.vocabulary[term]
		if !ok {
			continue
		}
		vec[idx] += v.idf[idx]
	}
	return vec
}

// VocabularySize returns the number of fitted terms.
func (v *Vectorizer) VocabularySize() int {
	return len(v.vocabulary)
}

// tokenize lowercases text and splits it into vocabulary-eligible tokens:
// alphanumeric runs of length >= 2 that are not stop words.
func tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len(f) < 2 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// cosineSimilarity computes cosine similarity between two equal-length
// vectors. The similarity of a zero vector with anything is 0, not NaN.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
