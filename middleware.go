package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"khamthai/internal/reqid"
)

// getLimiter returns a rate limiter for the given key (usually client IP).
func (app *App) getLimiter(key string) *rate.Limiter {
	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()
	now := time.Now()
	if cl, ok := app.LimiterMap[key]; ok {
		cl.lastSeen = now
		return cl.limiter
	}

	if key == "" {
		logWarn("Rate limiter key is empty")
	}
	rps := app.RateLimitRPS
	if rps <= 0 {
		rps = 1
	}
	lim := rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), app.RateLimitBurst)
	app.LimiterMap[key] = &clientLimiter{limiter: lim, lastSeen: now}
	return lim
}

// pruneLimiters drops limiters unused for longer than idle and returns how many
// were removed. A returning client starts with a full bucket.
func (app *App) pruneLimiters(idle time.Duration) int {
	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()
	cutoff := time.Now().Add(-idle)
	removed := 0
	for key, cl := range app.LimiterMap {
		if cl.lastSeen.Before(cutoff) {
			delete(app.LimiterMap, key)
			removed++
		}
	}
	return removed
}

// rateLimitMiddleware returns a Gin middleware that enforces per-client rate limiting.
func (app *App) rateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP()
		if !app.getLimiter(key).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": ErrorTooManyRequests})
			return
		}
		c.Next()
	}
}

// requestIDMiddleware injects a request ID into the context for each request.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Request.Header.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Request = c.Request.WithContext(reqid.With(c.Request.Context(), id))
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// requestLogMiddleware writes one access log line per request.
func requestLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		ev := log.Info()
		if status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("request_id", reqid.From(c.Request.Context())).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Str("client_ip", c.ClientIP()).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	}
}
