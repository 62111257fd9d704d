package main

// Cookie names
const (
	PlayerCookieName = "player_id"
)

// Route constants
const (
	RouteHome      = "/"
	RouteStatic    = "/static"
	RouteGetWord   = "/api/getWord"
	RouteHighScore = "/api/highscore"
	RouteHealth    = "/healthz"
)

// Response headers
const (
	HeaderRequestID      = "X-Request-Id"
	HeaderExclusionReset = "X-Exclusion-Reset"
)

// Error message constants
const (
	ErrorInvalidScore     = "Score must be a non-negative integer."
	ErrorInvalidRequest   = "Invalid request body."
	ErrorHighScoreFailure = "High score is unavailable right now."
	ErrorTooManyRequests  = "Too many requests. Please slow down."
)

// Request limits
const (
	maxRequestBytes = 64 << 10
	maxExcludeWords = 256
)
