// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package api

import (
	"net/http"
	"time"

	"github.com/wayfinderhq/wayfinder/internal/models"
)

// Health handles full health check requests.
//
// Reports degraded when no fitted index is available; the process still
// serves fallback recommendations in that state.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	engineStatus := h.service.Status()

	status := "healthy"
	if !engineStatus.Ready {
		status = "degraded"
	}

	var lastRebuild *time.Time
	if !engineStatus.BuiltAt.IsZero() {
		t := engineStatus.BuiltAt
		lastRebuild = &t
	}

	health := models.HealthStatus{
		Status:       status,
		Version:      Version,
		IndexReady:   engineStatus.Ready,
		IndexVersion: engineStatus.Version,
		Destinations: engineStatus.Destinations,
		Vocabulary:   engineStatus.VocabularySize,
		LastRebuild:  lastRebuild,
		Uptime:       time.Since(h.startTime).Seconds(),
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 200 only when a fitted index is available; 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	engineStatus := h.service.Status()

	if !engineStatus.Ready {
		respondJSON(w, http.StatusServiceUnavailable, &models.APIResponse{
			Status: "error",
			Data: map[string]interface{}{
				"ready": false,
			},
			Metadata: models.Metadata{
				Timestamp: time.Now(),
			},
			Error: &models.APIError{
				Code:    "INDEX_UNAVAILABLE",
				Message: "Index not fitted yet",
			},
		})
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"ready":         true,
			"index_version": engineStatus.Version,
		},
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
