package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	cachecontrol "go.eigsys.de/gin-cachecontrol/v2"

	"khamthai/internal/config"
	"khamthai/internal/corpus"
	"khamthai/internal/generation"
	"khamthai/internal/highscore"
	"khamthai/internal/words"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logFatal("Failed to load configuration: %v", err)
	}
	setupLogger(cfg.Log)
	logInfo("Starting khamthai in %s mode", cfg.Server.Env)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	wordCorpus, err := corpus.Load(cfg.Corpus.Path, log.Logger)
	if err != nil {
		logFatal("Failed to load words: %v", err)
	}
	logInfo("Loaded %d fallback words", wordCorpus.Len())

	var gen words.Generator
	var model string
	if cfg.Generation.Enabled {
		client, err := generation.NewClient(generation.Config{
			Endpoint: cfg.Generation.Endpoint,
			Model:    cfg.Generation.Model,
			Prompt:   cfg.Generation.Prompt,
			Timeout:  cfg.Generation.Timeout,
		}, generation.DefaultTransportConfig(), log.Logger)
		if err != nil {
			logFatal("Failed to create generation client: %v", err)
		}
		gen, model = client, client.Model()
		logInfo("Generating words with %s at %s", model, cfg.Generation.Endpoint)
	} else {
		logWarn("Generation disabled, serving fallback words only")
	}

	scores, err := highscore.Open(context.Background(), highscore.Options{
		Backend: cfg.HighScore.Backend,
		Dir:     cfg.HighScore.Dir,
		MaxAge:  cfg.HighScore.MaxAge,
		DSN:     cfg.HighScore.DSN,
	}, log.Logger)
	if err != nil {
		logFatal("Failed to open high score store: %v", err)
	}
	defer scores.Close()
	logInfo("High scores stored in %s backend", cfg.HighScore.Backend)

	app := newApp(cfg, words.NewService(gen, wordCorpus, nil, log.Logger), scores, model)

	ctx, stopMaintenance := context.WithCancel(context.Background())
	maintenanceDone := app.startMaintenance(ctx, maintenanceInterval)

	app.startServer(app.newRouter(), cfg.Server.Port, cfg.Server.ShutdownTimeout)
	stopMaintenance()
	<-maintenanceDone
}

// newRouter builds the gin engine with middleware, static assets and routes.
func (app *App) newRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestIDMiddleware(), requestLogMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}

	router.Use(func(c *gin.Context) {
		app.applyCacheHeaders(c)
	})

	staticDir := app.resolveStaticDir()
	router.Static(RouteStatic, staticDir)
	router.GET(RouteHome, func(c *gin.Context) {
		c.File(filepath.Join(staticDir, "index.html"))
	})

	router.POST(RouteGetWord, app.rateLimitMiddleware(), app.getWordHandler)
	router.GET(RouteHighScore, app.getHighScoreHandler)
	router.POST(RouteHighScore, app.rateLimitMiddleware(), app.saveHighScoreHandler)
	router.GET(RouteHealth, app.healthzHandler)

	return router
}

// resolveStaticDir prefers minified assets under dist/ in production.
func (app *App) resolveStaticDir() string {
	if app.IsProduction {
		dist := filepath.Join("dist", filepath.Base(app.StaticDir))
		if dirExists(dist) {
			logInfo("Serving assets from %s", dist)
			return dist
		}
	}
	logInfo("Serving assets from %s", app.StaticDir)
	return app.StaticDir
}

func (app *App) startServer(router *gin.Engine, port string, shutdownTimeout time.Duration) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		// Generation alone may take the full client timeout.
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}

// applyCacheHeaders lets browsers cache static assets in production and
// disables caching for everything else.
func (app *App) applyCacheHeaders(c *gin.Context) {
	if app.IsProduction && strings.HasPrefix(c.Request.URL.Path, RouteStatic+"/") {
		cachecontrol.New(cachecontrol.Config{
			Public: true,
			MaxAge: cachecontrol.Duration(app.StaticCacheAge),
		})(c)
		c.Header("Vary", "Accept-Encoding")
		return
	}
	cachecontrol.New(cachecontrol.Config{
		NoStore:        true,
		NoCache:        true,
		MustRevalidate: true,
	})(c)
}
