// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wayfinderhq/wayfinder/internal/logging"
	"github.com/wayfinderhq/wayfinder/internal/models"
	"github.com/wayfinderhq/wayfinder/internal/recommend"
	"github.com/wayfinderhq/wayfinder/internal/service"
)

// Version is the reported application version.
const Version = "1.0.0"

// Handler holds the HTTP handlers and their dependencies.
type Handler struct {
	service   *service.Service
	maxLimit  int
	startTime time.Time
}

// NewHandler creates a Handler backed by the given service.
func NewHandler(svc *service.Service, maxLimit int) *Handler {
	if maxLimit <= 0 {
		maxLimit = recommend.DefaultMaxLimit
	}
	return &Handler{
		service:   svc,
		maxLimit:  maxLimit,
		startTime: time.Now(),
	}
}

// RecommendationsRequest is the POST /recommendations body.
type RecommendationsRequest struct {
	UserID      string                           `json:"user_id" validate:"required"`
	Preferences *recommend.UserPreferenceProfile `json:"preferences"`

	// ExcludeVisited defaults to true when absent.
	ExcludeVisited *bool `json:"exclude_visited"`

	// Limit caps the list size. Absent means the server default; an
	// explicit zero yields an empty list.
	Limit *int `json:"limit" validate:"omitempty,min=0"`
}

// Recommendations handles POST /api/v1/recommendations.
//
// Returns a ranked recommendation list for the user. Preferences resolve in
// order: explicit request preferences, the stored profile, the defaults.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationsRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}
	if req.Limit != nil && *req.Limit > h.maxLimit {
		*req.Limit = h.maxLimit
	}

	excludeVisited := true
	if req.ExcludeVisited != nil {
		excludeVisited = *req.ExcludeVisited
	}

	start := time.Now()
	resp, err := h.service.Recommend(r.Context(), service.RecommendationRequest{
		UserID:         req.UserID,
		Preferences:    req.Preferences,
		ExcludeVisited: excludeVisited,
		Limit:          req.Limit,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to generate recommendations", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   resp,
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
			Cached:      resp.Source == "cache",
		},
	})
}

// UpdatePreferences handles POST /api/v1/preferences.
//
// The stored profile is replaced wholesale and the user's cached
// recommendations are invalidated.
func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var profile recommend.UserPreferenceProfile
	if err := decodeJSONBody(r, &profile); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}
	if profile.UserID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "user_id is required", nil)
		return
	}

	if err := h.service.UpdatePreferences(r.Context(), profile); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update preferences", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"user_id": profile.UserID,
			"updated": true,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// FeedbackRequest is the POST /feedback body.
type FeedbackRequest struct {
	UserID        string `json:"user_id" validate:"required"`
	DestinationID string `json:"destination_id" validate:"required"`
	Rating        int    `json:"rating" validate:"min=1,max=5"`
	Category      string `json:"feedback_type" validate:"omitempty,oneof=like dislike neutral"`
	Comment       string `json:"comments"`
}

// SubmitFeedback handles POST /api/v1/feedback.
//
// Stores the feedback event and nudges the destination's popularity score:
// ratings of 4-5 raise it, 1-2 lower it, 3 leaves it unchanged.
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	rec := recommend.FeedbackRecord{
		UserID:        req.UserID,
		DestinationID: req.DestinationID,
		Rating:        req.Rating,
		Category:      recommend.FeedbackCategory(req.Category),
		Comment:       req.Comment,
	}
	if err := h.service.SubmitFeedback(r.Context(), rec); err != nil {
		if errors.Is(err, recommend.ErrInvalidRating) {
			respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "rating must be between 1 and 5", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record feedback", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"user_id":        req.UserID,
			"destination_id": req.DestinationID,
			"recorded":       true,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// VisitRequest is the POST /visits body.
type VisitRequest struct {
	UserID        string    `json:"user_id" validate:"required"`
	DestinationID string    `json:"destination_id" validate:"required"`
	Timestamp     time.Time `json:"timestamp"`
}

// RecordVisit handles POST /api/v1/visits.
func (h *Handler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	var req VisitRequest
	if err := decodeJSONBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be valid JSON", err)
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	visit := recommend.VisitRecord{
		UserID:        req.UserID,
		DestinationID: req.DestinationID,
		Timestamp:     req.Timestamp,
	}
	if err := h.service.RecordVisit(r.Context(), visit); err != nil {
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to record visit", err)
		return
	}

	respondJSON(w, http.StatusCreated, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"user_id":        req.UserID,
			"destination_id": req.DestinationID,
			"recorded":       true,
		},
		Metadata: models.Metadata{Timestamp: time.Now()},
	})
}

// SimilarDestinations handles GET /api/v1/similar/{id}.
//
// Returns destinations sharing the reference destination's climate with at
// least one overlapping activity, excluding the reference itself.
func (h *Handler) SimilarDestinations(w http.ResponseWriter, r *http.Request) {
	destinationID := chi.URLParam(r, "id")
	if destinationID == "" {
		respondError(w, http.StatusBadRequest, "VALIDATION_ERROR", "destination id is required", nil)
		return
	}
	limit := getIntParam(r, "limit", 5)
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	start := time.Now()
	similar, err := h.service.SimilarTo(r.Context(), destinationID, limit)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrDestinationNotFound):
			respondError(w, http.StatusNotFound, "NOT_FOUND", "Destination not found", nil)
		case errors.Is(err, recommend.ErrIndexUnavailable):
			respondError(w, http.StatusServiceUnavailable, "INDEX_UNAVAILABLE", "Index not ready", nil)
		default:
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to find similar destinations", err)
		}
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"destination_id": destinationID,
			"similar":        similar,
			"total":          len(similar),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// Trending handles GET /api/v1/trending.
//
// Returns destinations ranked by recent visit volume, breaking ties on
// popularity score.
func (h *Handler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := getIntParam(r, "limit", 10)
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	start := time.Now()
	trending, err := h.service.Trending(r.Context(), limit)
	if err != nil {
		if errors.Is(err, recommend.ErrIndexUnavailable) {
			respondError(w, http.StatusServiceUnavailable, "INDEX_UNAVAILABLE", "Index not ready", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to compute trending destinations", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"trending": trending,
			"total":    len(trending),
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}

// TriggerRebuild handles POST /api/v1/rebuild.
//
// Reloads the corpus and swaps in a fresh index. Requests arriving while a
// rebuild is in flight are rejected with 409.
func (h *Handler) TriggerRebuild(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if err := h.service.Rebuild(r.Context()); err != nil {
		if errors.Is(err, recommend.ErrRebuildInProgress) {
			respondError(w, http.StatusConflict, "REBUILD_IN_PROGRESS", "A rebuild is already running", nil)
			return
		}
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "Index rebuild failed", err)
		return
	}

	status := h.service.Status()
	logging.Info().
		Int("destinations", status.Destinations).
		Int("vocabulary_size", status.VocabularySize).
		Dur("duration", time.Since(start)).
		Msg("index rebuild completed")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"destinations":    status.Destinations,
			"vocabulary_size": status.VocabularySize,
			"index_version":   status.Version,
		},
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
