package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// getOrCreatePlayer returns the player id from the cookie, issuing a new one
// when it is missing or malformed.
func (app *App) getOrCreatePlayer(c *gin.Context) string {
	playerID, err := c.Cookie(PlayerCookieName)
	if err == nil {
		if _, perr := uuid.Parse(playerID); perr == nil {
			return playerID
		}
	}

	playerID = uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(PlayerCookieName, playerID, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
	logInfo("Created new player: %s", playerID)
	return playerID
}
