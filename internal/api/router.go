// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router wires handlers and middleware into the Chi route tree.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a Router from a handler and middleware factory.
// A nil middleware factory uses the secure defaults.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		chiMiddleware: mw,
	}
}

// Setup configures all HTTP routes and returns the root handler.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is handled

	// Health endpoints get permissive rate limiting so monitoring tools can
	// poll frequently.
	r.Route("/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
		r.Get("/", router.handler.Health)
	})

	// Read endpoints.
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Post("/recommendations", router.handler.Recommendations)
		r.Get("/similar/{id}", router.handler.SimilarDestinations)
		r.Get("/trending", router.handler.Trending)
		r.Get("/health", router.handler.Health)
	})

	// Write endpoints with moderate rate limiting.
	r.Route("/api/v1/preferences", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWrite())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Post("/", router.handler.UpdatePreferences)
	})

	r.Route("/api/v1/feedback", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWrite())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Post("/", router.handler.SubmitFeedback)
	})

	r.Route("/api/v1/visits", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitWrite())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Post("/", router.handler.RecordVisit)
	})

	// Rebuild trigger is resource intensive; strict rate limiting.
	r.Route("/api/v1/rebuild", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitRebuild())
		r.Use(APISecurityHeaders())
		r.Use(PrometheusMetrics())

		r.Post("/", router.handler.TriggerRebuild)
	})

	// Observability.
	r.Handle("/metrics", promhttp.Handler())

	return r
}
