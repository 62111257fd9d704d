package main

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"khamthai/internal/config"
	"khamthai/internal/highscore"
)

// waitClosed fails the test if ch is not closed within a second.
func waitClosed(t *testing.T, ch <-chan struct{}, what string) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(time.Second):
		t.Fatalf("%s did not finish", what)
	}
}

func TestRunEvery(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var calls atomic.Int32
	done := make(chan struct{})
	go func() {
		runEvery(ctx, 5*time.Millisecond, func() { calls.Add(1) })
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for calls.Load() < 3 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	cancel()
	waitClosed(t, done, "runEvery")

	if calls.Load() < 3 {
		t.Errorf("fn called %d times, want at least 3", calls.Load())
	}
}

func TestPruneLimiters(t *testing.T) {
	app, _ := setupTestApp(t, nil)

	app.getLimiter("10.0.0.1")
	app.getLimiter("10.0.0.2")
	app.LimiterMap["10.0.0.1"].lastSeen = time.Now().Add(-time.Hour)

	if n := app.pruneLimiters(10 * time.Minute); n != 1 {
		t.Errorf("pruneLimiters removed %d, want 1", n)
	}
	if _, ok := app.LimiterMap["10.0.0.1"]; ok {
		t.Error("idle limiter should be removed")
	}
	if _, ok := app.LimiterMap["10.0.0.2"]; !ok {
		t.Error("recent limiter should be kept")
	}
}

func TestStartMaintenance_RemovesExpiredScoreFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := highscore.NewFileStore(dir, time.Hour, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}

	ctx := context.Background()
	stale, fresh := uuid.NewString(), uuid.NewString()
	for _, p := range []string{stale, fresh} {
		if _, err := store.Save(ctx, p, 10); err != nil {
			t.Fatal(err)
		}
	}
	old := time.Now().Add(-2 * time.Hour)
	stalePath := filepath.Join(dir, stale+".json")
	if err := os.Chtimes(stalePath, old, old); err != nil {
		t.Fatal(err)
	}

	app, _ := setupTestApp(t, nil, func(cfg *config.Config) {
		cfg.HighScore.Backend = highscore.BackendFile
		cfg.HighScore.MaxAge = time.Hour
	})
	app.Scores = store

	runCtx, cancel := context.WithCancel(ctx)
	done := app.startMaintenance(runCtx, time.Hour)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(stalePath); os.IsNotExist(err) {
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	waitClosed(t, done, "maintenance")

	if _, err := os.Stat(stalePath); !os.IsNotExist(err) {
		t.Error("expired high score file should be removed at startup")
	}
	if _, err := os.Stat(filepath.Join(dir, fresh+".json")); err != nil {
		t.Errorf("fresh high score file should be kept: %v", err)
	}
}

func TestStartMaintenance_NoCleanupWithoutMaxAge(t *testing.T) {
	dir := t.TempDir()
	store, err := highscore.NewFileStore(dir, 0, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	player := uuid.NewString()
	if _, err := store.Save(context.Background(), player, 1); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, player+".json")
	old := time.Now().Add(-24 * 365 * time.Hour)
	if err := os.Chtimes(path, old, old); err != nil {
		t.Fatal(err)
	}

	app, _ := setupTestApp(t, nil)
	app.Scores = store

	ctx, cancel := context.WithCancel(context.Background())
	done := app.startMaintenance(ctx, time.Hour)
	cancel()
	waitClosed(t, done, "maintenance")

	if _, err := os.Stat(path); err != nil {
		t.Errorf("high score files must be kept when no max age is set: %v", err)
	}
}
