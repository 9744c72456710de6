// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/wayfinderhq/wayfinder/internal/models"
	"github.com/wayfinderhq/wayfinder/internal/recommend"
	"github.com/wayfinderhq/wayfinder/internal/service"
	"github.com/wayfinderhq/wayfinder/internal/store"
)

// newTestRouter builds the full HTTP stack over an in-memory store. When
// fitted is false the engine has no index and serves fallback results.
func newTestRouter(t *testing.T, fitted bool) (http.Handler, *store.MemoryStore) {
	t.Helper()

	engine, err := recommend.NewEngine(nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}

	mem := store.NewMemoryStore(store.DevCorpus())
	svc, err := service.New(service.Options{
		Engine:   engine,
		Corpus:   mem,
		Prefs:    mem,
		Visits:   mem,
		Feedback: mem,
		Cache:    store.NewMemoryCache(),
		Logger:   zerolog.Nop(),
	})
	if err != nil {
		t.Fatalf("service.New() error = %v", err)
	}

	if fitted {
		if err := svc.Rebuild(context.Background()); err != nil {
			t.Fatalf("Rebuild() error = %v", err)
		}
	}

	handler := NewHandler(svc, 100)
	router := NewRouter(handler, NewChiMiddleware(&ChiMiddlewareConfig{
		CORSAllowedOrigins: []string{"*"},
		RateLimitRequests:  1000,
		RateLimitWindow:    time.Minute,
	}))
	return router.Setup(), mem
}

func doJSON(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) models.APIResponse {
	t.Helper()

	var envelope models.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response envelope: %v\nbody: %s", err, rec.Body.String())
	}
	return envelope
}

func TestRecommendations(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
		"user_id": "u1",
		"preferences": map[string]interface{}{
			"activity_types": []string{"beach"},
			"budget_range":   "low",
		},
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	if envelope.Status != "success" {
		t.Errorf("Status = %q, want success", envelope.Status)
	}

	data, _ := json.Marshal(envelope.Data)
	var resp service.RecommendationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.Source != "engine" {
		t.Errorf("Source = %q, want engine", resp.Source)
	}
	if resp.Total == 0 {
		t.Error("no recommendations returned")
	}
	if resp.Recommendations[0].DestinationID != "bali_indonesia" {
		t.Errorf("top recommendation = %q, want bali_indonesia", resp.Recommendations[0].DestinationID)
	}
}

func TestRecommendations_ExplicitZeroLimit(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
		"user_id":         "u1",
		"exclude_visited": false,
		"limit":           0,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	data, _ := json.Marshal(envelope.Data)
	var resp service.RecommendationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.Total != 0 || len(resp.Recommendations) != 0 {
		t.Errorf("limit 0 returned %d recommendations, want empty list", resp.Total)
	}
}

func TestRecommendations_NegativeLimit(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
		"user_id": "u1",
		"limit":   -1,
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400\nbody: %s", rec.Code, rec.Body.String())
	}
}

func TestRecommendations_MissingUserID(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
		"limit": 5,
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Code != "VALIDATION_ERROR" {
		t.Errorf("Error = %+v, want VALIDATION_ERROR", envelope.Error)
	}
}

func TestRecommendations_InvalidBody(t *testing.T) {
	h, _ := newTestRouter(t, true)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestRecommendations_ExcludeVisitedDefault(t *testing.T) {
	h, mem := newTestRouter(t, true)

	visit := recommend.VisitRecord{UserID: "u1", DestinationID: "bali_indonesia", Timestamp: time.Now()}
	if err := mem.AppendVisit(context.Background(), visit); err != nil {
		t.Fatalf("AppendVisit() error = %v", err)
	}

	rec := doJSON(t, h, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
		"user_id": "u1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, _ := json.Marshal(decodeEnvelope(t, rec).Data)
	var resp service.RecommendationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	for _, r := range resp.Recommendations {
		if r.DestinationID == "bali_indonesia" {
			t.Error("visited destination returned despite default exclude_visited")
		}
	}
}

func TestRecommendations_Fallback(t *testing.T) {
	h, _ := newTestRouter(t, false)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/recommendations", map[string]interface{}{
		"user_id": "u1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, _ := json.Marshal(decodeEnvelope(t, rec).Data)
	var resp service.RecommendationResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if resp.Source != "fallback" {
		t.Errorf("Source = %q, want fallback", resp.Source)
	}
}

func TestUpdatePreferences(t *testing.T) {
	h, mem := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/preferences", map[string]interface{}{
		"user_id":        "u1",
		"activity_types": []string{"hiking"},
		"budget_range":   "high",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	stored, err := mem.Load(context.Background(), "u1")
	if err != nil || stored == nil {
		t.Fatalf("Load() = %v, %v, want stored profile", stored, err)
	}
	if stored.Budget != recommend.BudgetHigh {
		t.Errorf("Budget = %v, want high", stored.Budget)
	}
}

func TestUpdatePreferences_MissingUserID(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/preferences", map[string]interface{}{
		"activity_types": []string{"hiking"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSubmitFeedback(t *testing.T) {
	h, mem := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/feedback", map[string]interface{}{
		"user_id":        "u1",
		"destination_id": "paris_france",
		"rating":         5,
		"feedback_type":  "like",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	history, _ := mem.FeedbackFor(context.Background(), "u1")
	if len(history) != 1 {
		t.Fatalf("feedback history = %d records, want 1", len(history))
	}
}

func TestSubmitFeedback_InvalidRating(t *testing.T) {
	h, _ := newTestRouter(t, true)

	for _, rating := range []int{0, 6, -1} {
		rec := doJSON(t, h, http.MethodPost, "/api/v1/feedback", map[string]interface{}{
			"user_id":        "u1",
			"destination_id": "paris_france",
			"rating":         rating,
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("rating %d: status = %d, want 400", rating, rec.Code)
		}
	}
}

func TestRecordVisit(t *testing.T) {
	h, mem := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/visits", map[string]interface{}{
		"user_id":        "u1",
		"destination_id": "tokyo_japan",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201\nbody: %s", rec.Code, rec.Body.String())
	}

	visited, _ := mem.VisitedIDs(context.Background(), "u1")
	if _, ok := visited["tokyo_japan"]; !ok {
		t.Error("visit not recorded")
	}
}

func TestRecordVisit_MissingFields(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/visits", map[string]interface{}{
		"user_id": "u1",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestSimilarDestinations(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/similar/interlaken_switzerland", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	data, _ := envelope.Data.(map[string]interface{})
	similar, _ := data["similar"].([]interface{})
	if len(similar) != 1 {
		t.Errorf("similar = %d entries, want 1", len(similar))
	}
}

func TestSimilarDestinations_NotFound(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/similar/atlantis", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope.Error == nil || envelope.Error.Code != "NOT_FOUND" {
		t.Errorf("Error = %+v, want NOT_FOUND", envelope.Error)
	}
}

func TestSimilarDestinations_IndexUnavailable(t *testing.T) {
	h, _ := newTestRouter(t, false)

	rec := doJSON(t, h, http.MethodGet, "/api/v1/similar/paris_france", nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestTrending(t *testing.T) {
	h, mem := newTestRouter(t, true)

	now := time.Now()
	for i := 0; i < 3; i++ {
		_ = mem.AppendVisit(context.Background(), recommend.VisitRecord{
			UserID: "u1", DestinationID: "cancun_mexico", Timestamp: now,
		})
	}

	rec := doJSON(t, h, http.MethodGet, "/api/v1/trending?limit=3", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	data, _ := envelope.Data.(map[string]interface{})
	trending, _ := data["trending"].([]interface{})
	if len(trending) != 3 {
		t.Fatalf("trending = %d entries, want 3", len(trending))
	}
	first, _ := trending[0].(map[string]interface{})
	if first["id"] != "cancun_mexico" {
		t.Errorf("trending[0] = %v, want cancun_mexico", first["id"])
	}
}

func TestTriggerRebuild(t *testing.T) {
	h, _ := newTestRouter(t, false)

	rec := doJSON(t, h, http.MethodPost, "/api/v1/rebuild", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200\nbody: %s", rec.Code, rec.Body.String())
	}

	// After the rebuild the index answers similarity queries.
	rec = doJSON(t, h, http.MethodGet, "/api/v1/similar/interlaken_switzerland", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("similar after rebuild: status = %d, want 200", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	envelope := decodeEnvelope(t, rec)
	data, _ := json.Marshal(envelope.Data)
	var health models.HealthStatus
	if err := json.Unmarshal(data, &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "healthy" || !health.IndexReady {
		t.Errorf("health = %+v, want healthy with ready index", health)
	}
	if health.Destinations != len(store.DevCorpus()) {
		t.Errorf("Destinations = %d, want %d", health.Destinations, len(store.DevCorpus()))
	}
}

func TestHealth_DegradedWithoutIndex(t *testing.T) {
	h, _ := newTestRouter(t, false)

	rec := doJSON(t, h, http.MethodGet, "/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	data, _ := json.Marshal(decodeEnvelope(t, rec).Data)
	var health models.HealthStatus
	if err := json.Unmarshal(data, &health); err != nil {
		t.Fatalf("decode health: %v", err)
	}
	if health.Status != "degraded" {
		t.Errorf("Status = %q, want degraded", health.Status)
	}
}

func TestHealthProbes(t *testing.T) {
	ready, _ := newTestRouter(t, true)
	notReady, _ := newTestRouter(t, false)

	if rec := doJSON(t, ready, http.MethodGet, "/health/live", nil); rec.Code != http.StatusOK {
		t.Errorf("live: status = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, notReady, http.MethodGet, "/health/live", nil); rec.Code != http.StatusOK {
		t.Errorf("live without index: status = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, ready, http.MethodGet, "/health/ready", nil); rec.Code != http.StatusOK {
		t.Errorf("ready: status = %d, want 200", rec.Code)
	}
	if rec := doJSON(t, notReady, http.MethodGet, "/health/ready", nil); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("ready without index: status = %d, want 503", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	h, _ := newTestRouter(t, true)

	rec := doJSON(t, h, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.Len() == 0 {
		t.Error("metrics body empty")
	}
}
