// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

// Package main is the entry point for the Wayfinder server.
//
// Wayfinder is a self-hosted travel destination recommendation engine. It
// fits a TF-IDF index over a destination corpus and serves personalized,
// explained recommendation lists, plus similarity and trending queries,
// over a REST API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered defaults, YAML file, environment (koanf v2)
//  2. Stores: in-memory or BadgerDB-backed persistence and cache
//  3. Corpus: loaded from a JSON file or the built-in development corpus
//  4. Engine: TF-IDF vectorizer and scoring engine
//  5. Supervisor tree: rebuild scheduler and HTTP server under suture
//
// # Configuration
//
// Configuration is loaded via koanf v2 with layered sources (highest
// priority wins):
//   - Environment variables (WAYFINDER_ prefix)
//   - Config file (wayfinder.yaml)
//   - Built-in defaults
//
// # Signal Handling
//
// The server handles graceful shutdown on SIGINT and SIGTERM:
//   - Stops accepting new connections
//   - Waits for in-flight requests to complete (10s timeout)
//   - Closes the BadgerDB store if one is open
//
// # Example Usage
//
// Development with the built-in corpus:
//
//	./wayfinder
//
// Production with a corpus file and persistent store:
//
//	export WAYFINDER_STORE_BACKEND=badger
//	export WAYFINDER_STORE_PATH=/data/wayfinder
//	export WAYFINDER_STORE_CORPUS_FILE=/data/destinations.json
//	./wayfinder
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wayfinderhq/wayfinder/internal/api"
	"github.com/wayfinderhq/wayfinder/internal/config"
	"github.com/wayfinderhq/wayfinder/internal/logging"
	"github.com/wayfinderhq/wayfinder/internal/recommend"
	"github.com/wayfinderhq/wayfinder/internal/service"
	"github.com/wayfinderhq/wayfinder/internal/store"
	"github.com/wayfinderhq/wayfinder/internal/supervisor"
)

func main() {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("addr", cfg.Addr()).
		Str("store_backend", cfg.Store.Backend).
		Str("corpus_file", cfg.Store.CorpusFile).
		Msg("Starting Wayfinder")

	// Stores: shared persistence plus the recommendation cache.
	stores, cache, closeStores, err := initStores(cfg)
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to initialize stores")
	}
	defer closeStores()

	engineCfg := &recommend.Config{
		VocabularyCap:  cfg.Engine.VocabularyCap,
		BudgetBoost:    cfg.Engine.BudgetBoost,
		ActivityBoost:  cfg.Engine.ActivityBoost,
		DefaultLimit:   cfg.Engine.DefaultLimit,
		MaxLimit:       cfg.Engine.MaxLimit,
		TrendingWindow: cfg.Engine.TrendingWindow,
	}
	engine, err := recommend.NewEngine(engineCfg, logging.Logger())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create recommendation engine")
	}

	svc, err := service.New(service.Options{
		Engine:       engine,
		Corpus:       stores.corpus,
		Prefs:        stores.prefs,
		Visits:       stores.visits,
		Feedback:     stores.feedback,
		Cache:        cache,
		CacheTTL:     cfg.Cache.TTL,
		DefaultLimit: cfg.Engine.DefaultLimit,
		Logger:       logging.Logger(),
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create service")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Rebuild.OnStart {
		if err := svc.Rebuild(ctx); err != nil {
			// Fallback recommendations keep serving until a rebuild succeeds.
			logging.Warn().Err(err).Msg("Initial index rebuild failed")
		} else {
			status := svc.Status()
			logging.Info().
				Int("destinations", status.Destinations).
				Int("vocabulary_size", status.VocabularySize).
				Msg("Initial index built")
		}
	}

	// Bridge zerolog to slog for sutureslog compatibility.
	slogLogger := logging.NewSlogLogger()

	tree, err := supervisor.NewSupervisorTree(slogLogger, supervisor.DefaultTreeConfig())
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to create supervisor tree")
	}

	if cfg.Rebuild.Interval > 0 {
		scheduler := service.NewRebuildScheduler(svc, cfg.Rebuild.Interval, logging.Logger())
		tree.AddEngineService(scheduler)
	} else {
		logging.Info().Msg("Periodic rebuild disabled (rebuild.interval=0)")
	}

	handler := api.NewHandler(svc, cfg.Engine.MaxLimit)
	router := api.NewRouter(handler, api.NewChiMiddleware(&api.ChiMiddlewareConfig{
		CORSAllowedOrigins: cfg.Server.CORSOrigins,
		CORSAllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		CORSAllowedHeaders: []string{"Content-Type", "Authorization"},
		CORSMaxAge:         86400,
		RateLimitRequests:  cfg.Server.RateLimitReqs,
		RateLimitWindow:    cfg.Server.RateLimitWindow,
	}))

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.Setup(),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
	}
	tree.AddAPIService(api.NewHTTPServerService(server, supervisor.DefaultTreeConfig().ShutdownTimeout))

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	logging.Info().Str("addr", cfg.Addr()).Msg("Starting supervisor tree")
	errCh := tree.ServeBackground(ctx)

	select {
	case <-ctx.Done():
		logging.Info().Msg("Context canceled, waiting for supervisor to finish")
	case err := <-errCh:
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor tree error")
		}
	}

	// Drain until the supervisor finishes.
	for err := range errCh {
		if err != nil && !errors.Is(err, context.Canceled) {
			logging.Error().Err(err).Msg("Supervisor shutdown error")
		}
	}

	unstopped, _ := tree.UnstoppedServiceReport()
	if len(unstopped) > 0 {
		logging.Warn().Int("count", len(unstopped)).Msg("Services failed to stop within timeout")
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service failed to stop")
		}
	}

	logging.Info().Msg("Application stopped gracefully")
}

// appStores groups the persistence interfaces the service consumes. Both
// backends satisfy all of them with a single store value.
type appStores struct {
	corpus   store.CorpusStore
	prefs    store.PreferenceStore
	visits   store.VisitStore
	feedback store.FeedbackStore
}

// initStores builds the configured persistence backend and recommendation
// cache. The returned cleanup closes the BadgerDB handle when one is open.
func initStores(cfg *config.Config) (appStores, store.RecommendationCache, func(), error) {
	corpus, err := loadCorpus(cfg)
	if err != nil {
		return appStores{}, nil, nil, err
	}

	switch cfg.Store.Backend {
	case "badger":
		db, err := store.OpenBadger(cfg.Store.Path)
		if err != nil {
			return appStores{}, nil, nil, err
		}
		bs := store.NewBadgerStore(db, corpus)
		cache := store.NewBadgerCache(db)
		closeFn := func() {
			if err := db.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing badger store")
			}
		}
		return appStores{corpus: bs, prefs: bs, visits: bs, feedback: bs}, cache, closeFn, nil

	default:
		mem := store.NewMemoryStore(corpus)
		return appStores{corpus: mem, prefs: mem, visits: mem, feedback: mem}, store.NewMemoryCache(), func() {}, nil
	}
}

// loadCorpus reads the configured corpus file, falling back to the built-in
// development corpus when none is configured.
func loadCorpus(cfg *config.Config) ([]recommend.DestinationProfile, error) {
	if cfg.Store.CorpusFile == "" {
		logging.Info().Msg("No corpus file configured, using built-in development corpus")
		return store.DevCorpus(), nil
	}

	corpus, err := store.LoadCorpusFile(cfg.Store.CorpusFile)
	if err != nil {
		return nil, err
	}
	logging.Info().
		Int("destinations", len(corpus)).
		Str("file", cfg.Store.CorpusFile).
		Msg("Corpus loaded")
	return corpus, nil
}
