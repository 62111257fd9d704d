package main

import (
	"context"
	"sync"
	"time"

	"khamthai/internal/highscore"
)

const (
	maintenanceInterval = time.Minute
	limiterIdleTimeout  = 10 * time.Minute
)

// startMaintenance runs periodic housekeeping until ctx is done: idle rate
// limiters are dropped and, for the file backend with a max age, expired high
// score files are removed. The returned channel closes once every loop exits.
func (app *App) startMaintenance(ctx context.Context, interval time.Duration) <-chan struct{} {
	var wg sync.WaitGroup
	spawn := func(fn func()) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runEvery(ctx, interval, fn)
		}()
	}

	spawn(func() {
		if n := app.pruneLimiters(limiterIdleTimeout); n > 0 {
			logInfo("Pruned %d idle rate limiters", n)
		}
	})

	if files, ok := app.Scores.(*highscore.FileStore); ok && app.ScoreMaxAge > 0 {
		logInfo("Removing high score files older than %s", app.ScoreMaxAge)
		spawn(func() {
			if _, err := files.Cleanup(app.ScoreMaxAge); err != nil {
				logWarn("High score cleanup failed: %v", err)
			}
		})
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()
	return done
}

// runEvery calls fn immediately and then every interval until ctx is done.
func runEvery(ctx context.Context, interval time.Duration, fn func()) {
	fn()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}
