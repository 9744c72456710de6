// Wayfinder - Travel Destination Recommendation Engine
// Copyright 2026 Wayfinder Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/wayfinderhq/wayfinder

package supervisor

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// blockingService runs until its context is canceled and counts starts.
type blockingService struct {
	starts atomic.Int64
}

func (s *blockingService) Serve(ctx context.Context) error {
	s.starts.Add(1)
	<-ctx.Done()
	return ctx.Err()
}

func (s *blockingService) String() string { return "blocking-service" }

func TestDefaultTreeConfig(t *testing.T) {
	cfg := DefaultTreeConfig()
	if cfg.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %f, want 5.0", cfg.FailureThreshold)
	}
	if cfg.FailureDecay != 30.0 {
		t.Errorf("FailureDecay = %f, want 30.0", cfg.FailureDecay)
	}
	if cfg.FailureBackoff != 15*time.Second {
		t.Errorf("FailureBackoff = %s, want 15s", cfg.FailureBackoff)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %s, want 10s", cfg.ShutdownTimeout)
	}
}

func TestNewSupervisorTree_AppliesDefaults(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}
	if tree.config.FailureThreshold != 5.0 {
		t.Errorf("FailureThreshold = %f, want default 5.0", tree.config.FailureThreshold)
	}
	if tree.config.ShutdownTimeout != 10*time.Second {
		t.Errorf("ShutdownTimeout = %s, want default 10s", tree.config.ShutdownTimeout)
	}
	if tree.Root() == nil {
		t.Error("Root() returned nil")
	}
}

func TestSupervisorTree_RunsServices(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), DefaultTreeConfig())
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	engineSvc := &blockingService{}
	apiSvc := &blockingService{}
	tree.AddEngineService(engineSvc)
	tree.AddAPIService(apiSvc)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(2 * time.Second)
	for engineSvc.starts.Load() == 0 || apiSvc.starts.Load() == 0 {
		select {
		case <-deadline:
			t.Fatalf("services not started: engine=%d api=%d",
				engineSvc.starts.Load(), apiSvc.starts.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop after context cancel")
	}
}

func TestSupervisorTree_RestartsFailedService(t *testing.T) {
	tree, err := NewSupervisorTree(testLogger(), TreeConfig{
		FailureThreshold: 100, // keep restarting without backoff during the test
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  time.Second,
	})
	if err != nil {
		t.Fatalf("NewSupervisorTree() error = %v", err)
	}

	svc := &flappingService{failUntil: 2}
	tree.AddEngineService(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	errCh := tree.ServeBackground(ctx)

	deadline := time.After(5 * time.Second)
	for svc.starts.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("service restarted %d times, want >= 3", svc.starts.Load())
		case <-time.After(10 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-errCh:
	case <-time.After(5 * time.Second):
		t.Fatal("supervisor did not stop after context cancel")
	}
}

// flappingService fails its first failUntil runs, then blocks.
type flappingService struct {
	starts    atomic.Int64
	failUntil int64
}

func (s *flappingService) Serve(ctx context.Context) error {
	n := s.starts.Add(1)
	if n <= s.failUntil {
		return errTransient
	}
	<-ctx.Done()
	return ctx.Err()
}

func (s *flappingService) String() string { return "flapping-service" }

var errTransient = io.ErrUnexpectedEOF
