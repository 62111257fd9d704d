package config

import (
	"fmt"
	"net/url"
	"slices"
	"strconv"

	"github.com/rs/zerolog"
)

var (
	backends   = []string{"memory", "file", "sqlite"}
	logFormats = []string{"json", "console"}
)

// Validate checks values the struct tags cannot express. Load calls it.
func (c *Config) Validate() error {
	if p, err := strconv.Atoi(c.Server.Port); err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("server.port must be 1-65535 (got %q)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %s)", c.Server.ShutdownTimeout)
	}

	if c.Generation.Enabled {
		u, err := url.Parse(c.Generation.Endpoint)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("generation.endpoint must be an absolute http(s) URL (got %q)", c.Generation.Endpoint)
		}
		if c.Generation.Model == "" {
			return fmt.Errorf("generation.model is required")
		}
		if c.Generation.Timeout <= 0 {
			return fmt.Errorf("generation.timeout must be > 0 (got %s)", c.Generation.Timeout)
		}
	}

	if !slices.Contains(backends, c.HighScore.Backend) {
		return fmt.Errorf("high_score.backend must be one of %v (got %q)", backends, c.HighScore.Backend)
	}
	if c.HighScore.Backend == "file" && c.HighScore.Dir == "" {
		return fmt.Errorf("high_score.dir is required for the file backend")
	}
	if c.HighScore.Backend == "sqlite" && c.HighScore.DSN == "" {
		return fmt.Errorf("high_score.dsn is required for the sqlite backend")
	}
	if c.HighScore.MaxAge < 0 {
		return fmt.Errorf("high_score.max_age must be >= 0 (got %s)", c.HighScore.MaxAge)
	}

	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("rate_limit rps and burst must be > 0 (got %d/%d)", c.RateLimit.RPS, c.RateLimit.Burst)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if !slices.Contains(logFormats, c.Log.Format) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}
	return nil
}
