package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"khamthai/internal/highscore"
	"khamthai/internal/reqid"
)

type getWordRequest struct {
	Exclude []string `json:"exclude"`
}

type highScoreRequest struct {
	Score *int `json:"score"`
}

// getWordHandler returns a word and hint for a new round. The body is optional
// and only narrows the fallback pick; a bad body is ignored rather than rejected.
func (app *App) getWordHandler(c *gin.Context) {
	ctx := c.Request.Context()
	exclude := app.parseExclusions(c)

	word := app.Words.GetWordExcluding(ctx, exclude)
	if word.ExclusionReset {
		c.Header(HeaderExclusionReset, "true")
	}
	c.JSON(http.StatusOK, word.WordEntry)
}

func (app *App) parseExclusions(c *gin.Context) []string {
	if c.Request.ContentLength == 0 {
		return nil
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var req getWordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logWarn("[request_id=%s] Ignoring unreadable getWord body: %v", reqid.From(c.Request.Context()), err)
		return nil
	}

	exclude := lo.Uniq(lo.FilterMap(req.Exclude, func(w string, _ int) (string, bool) {
		w = strings.TrimSpace(w)
		return w, w != ""
	}))
	// The client appends completed words, so the newest are at the end.
	if len(exclude) > maxExcludeWords {
		exclude = exclude[len(exclude)-maxExcludeWords:]
	}
	return exclude
}

// getHighScoreHandler returns the stored high score for the player cookie.
func (app *App) getHighScoreHandler(c *gin.Context) {
	ctx := c.Request.Context()
	playerID := app.getOrCreatePlayer(c)

	score, err := app.Scores.Load(ctx, playerID)
	if err != nil {
		logWarn("[request_id=%s] Failed to load high score for %s: %v", reqid.From(ctx), playerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorHighScoreFailure})
		return
	}
	c.JSON(http.StatusOK, gin.H{"highScore": score})
}

// saveHighScoreHandler records a finished score and returns the player's best.
func (app *App) saveHighScoreHandler(c *gin.Context) {
	ctx := c.Request.Context()
	playerID := app.getOrCreatePlayer(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxRequestBytes)

	var req highScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidRequest})
		return
	}
	if req.Score == nil || *req.Score < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidScore})
		return
	}

	best, err := app.Scores.Save(ctx, playerID, *req.Score)
	switch {
	case errors.Is(err, highscore.ErrNegativeScore):
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidScore})
		return
	case err != nil:
		logWarn("[request_id=%s] Failed to save high score for %s: %v", reqid.From(ctx), playerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": ErrorHighScoreFailure})
		return
	}
	if best == *req.Score && best > 0 {
		logInfo("[request_id=%s] New high score %d for %s", reqid.From(ctx), best, playerID)
	}
	c.JSON(http.StatusOK, gin.H{"highScore": best})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"env":          map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"words_loaded": app.Words.Corpus().Len(),
		"generation":   lo.Ternary(app.Model != "", app.Model, "disabled"),
		"high_score":   app.ScoreBackend,
		"uptime":       formatUptime(uptime),
		"timestamp":    time.Now().UTC().Format(time.RFC3339),
	})
}
