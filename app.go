package main

import (
	"sync"
	"time"

	"golang.org/x/time/rate"

	"khamthai/internal/config"
	"khamthai/internal/highscore"
	"khamthai/internal/words"
)

// clientLimiter is the token bucket of one client and when it was last used.
type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// App holds the shared state of the HTTP service.
type App struct {
	Words  *words.Service
	Scores highscore.Store

	IsProduction   bool
	StaticDir      string
	StaticCacheAge time.Duration
	CookieMaxAge   time.Duration
	Model          string
	ScoreBackend   string
	ScoreMaxAge    time.Duration

	RateLimitRPS   int
	RateLimitBurst int
	LimiterMap     map[string]*clientLimiter
	LimiterMutex   sync.Mutex

	StartTime time.Time
}

// newApp wires the word service and high score store into an App. model is
// empty when generation is disabled.
func newApp(cfg *config.Config, svc *words.Service, scores highscore.Store, model string) *App {
	return &App{
		Words:          svc,
		Scores:         scores,
		IsProduction:   cfg.IsProduction(),
		StaticDir:      cfg.Server.StaticDir,
		StaticCacheAge: cfg.Server.StaticCacheAge,
		CookieMaxAge:   cfg.Server.CookieMaxAge,
		Model:          model,
		ScoreBackend:   cfg.HighScore.Backend,
		ScoreMaxAge:    cfg.HighScore.MaxAge,
		RateLimitRPS:   cfg.RateLimit.RPS,
		RateLimitBurst: cfg.RateLimit.Burst,
		LimiterMap:     make(map[string]*clientLimiter),
		StartTime:      time.Now(),
	}
}
