package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"echopath/internal/curriculum"
	"echopath/internal/profile"
)

func main() {
	_ = godotenv.Load()

	app, err := loadApp()
	if err != nil {
		logFatal("Failed to configure server: %v", err)
	}
	logInfo("Starting Echo Path in %s mode", map[bool]string{true: "production", false: "development"}[app.IsProduction])

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go app.runJanitor(ctx, getEnvDuration("CLEANUP_INTERVAL", 10*time.Minute))

	startServer(ctx, app.newRouter())
}

// loadApp builds the App from the environment.
func loadApp() (*App, error) {
	app := &App{
		IsProduction:   os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production",
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 2*time.Hour),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 2*time.Hour),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),
		DefaultAnimal:  getEnvString("DEFAULT_ANIMAL", profile.DefaultAnimal),
		SessionsDir:    getEnvString("SESSIONS_DIR", "data/sessions"),
		StartTime:      time.Now(),
		GameSessions:   make(map[string]*GameSession),
		LimiterMap:     make(map[string]*clientLimiter),
	}

	templates, err := loadCurriculumTemplates(getEnvString("CURRICULUM_FILE", "data/curriculum.yaml"))
	if err != nil {
		return nil, err
	}
	app.Templates = templates

	if url := getEnvString("PROFILE_LOGIN_URL", ""); url != "" {
		app.Profiles = profile.NewClient(url, getEnvDuration("PROFILE_TIMEOUT", 10*time.Second))
		logInfo("Profile login enabled against %s", url)
	}
	return app, nil
}

// loadCurriculumTemplates reads the template file when present and falls back
// to the built-in curriculum otherwise.
func loadCurriculumTemplates(path string) (curriculum.Templates, error) {
	if !fileExists(path) {
		logInfo("No curriculum file at %s, using built-in curriculum", path)
		return curriculum.DefaultTemplates(), nil
	}
	t, err := curriculum.LoadTemplates(path)
	if err != nil {
		return curriculum.Templates{}, err
	}
	logInfo("Loaded curriculum from %s: %d unit(s)", path, len(t.Units))
	return t, nil
}

// newRouter wires middleware and routes.
func (app *App) newRouter() *gin.Engine {
	if app.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression))
	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}
	router.Use(requestIDMiddleware(), noStoreMiddleware())

	router.GET(RouteHome, app.gameStateHandler)
	router.GET(RouteGameState, app.gameStateHandler)
	router.GET(RouteCurriculum, app.curriculumHandler)
	router.GET(RouteAnimals, app.animalsHandler)
	router.GET(RouteHealthz, app.healthzHandler)
	router.POST(RouteNewGame, app.rateLimitMiddleware(), app.newGameHandler)
	router.POST(RouteLogin, app.rateLimitMiddleware(), app.loginHandler)
	router.POST(RoutePlace, app.rateLimitMiddleware(), app.placeHandler)
	router.POST(RouteNextLevel, app.rateLimitMiddleware(), app.nextLevelHandler)
	router.POST(RouteResetLevel, app.rateLimitMiddleware(), app.resetLevelHandler)

	return router
}

// runJanitor periodically drops idle sessions, stale limiters and old
// progress files until ctx is done.
func (app *App) runJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			app.cleanupExpiredSessions(now)
			app.cleanupLimiters(now.Add(-interval))
			if app.SessionTimeout > 0 {
				if _, err := app.cleanupOldProgress(app.SessionTimeout); err != nil {
					logWarn("Progress cleanup failed: %v", err)
				}
			}
		}
	}
}

func startServer(ctx context.Context, router *gin.Engine) {
	port := getEnvString("PORT", "8080")
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()
		logInfo("Shutdown signal received, shutting down server gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
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
