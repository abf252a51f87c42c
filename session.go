package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"echopath/internal/engine"
	"echopath/internal/types"
)

// getOrCreateSession retrieves the session ID from the cookie or creates a new one.
func (app *App) getOrCreateSession(c *gin.Context) string {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || len(sessionID) < MinSessionIDLen {
		sessionID = app.issueSessionCookie(c)
		logInfo("%sCreated new session: %s", reqTag(c.Request.Context()), sessionID)
	}
	return sessionID
}

// issueSessionCookie sets a fresh session cookie and returns its ID.
func (app *App) issueSessionCookie(c *gin.Context) string {
	sessionID := uuid.NewString()
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(SessionCookieName, sessionID, int(app.CookieMaxAge.Seconds()), "/", "", app.IsProduction, true)
	return sessionID
}

// getGameSession returns the session's game, restoring saved progress or
// starting a new game with the default animal when there is none in memory.
func (app *App) getGameSession(ctx context.Context, sessionID string) *GameSession {
	app.SessionMutex.Lock()
	gs, exists := app.GameSessions[sessionID]
	if exists {
		gs.LastAccessTime = time.Now()
	}
	app.SessionMutex.Unlock()
	if exists {
		return gs
	}

	progress, err := app.loadProgress(sessionID)
	if err == nil {
		logInfo("%sRestored session %s at %+v (theme: %s)", reqTag(ctx), sessionID, progress.Position, progress.Theme)
		return app.storeGame(sessionID, app.newEngine(progress.Theme, engine.WithStart(progress.Position)), false)
	}
	if !errors.Is(err, os.ErrNotExist) {
		logWarn("%sFailed to load progress for session %s: %v", reqTag(ctx), sessionID, err)
	}

	return app.createNewGame(ctx, sessionID, app.DefaultAnimal)
}

// storeGame registers eng for the session. Unless replace is set, a game
// stored concurrently by another request wins.
func (app *App) storeGame(sessionID string, eng *engine.Engine, replace bool) *GameSession {
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()
	if existing, ok := app.GameSessions[sessionID]; ok && !replace {
		existing.LastAccessTime = time.Now()
		return existing
	}
	gs := &GameSession{Engine: eng, LastAccessTime: time.Now()}
	app.GameSessions[sessionID] = gs
	return gs
}

// saveGameSession records the session's position on disk.
func (app *App) saveGameSession(ctx context.Context, sessionID string, snap engine.Snapshot) {
	app.SessionMutex.Lock()
	if gs, ok := app.GameSessions[sessionID]; ok {
		gs.LastAccessTime = time.Now()
	}
	app.SessionMutex.Unlock()

	err := app.saveProgress(sessionID, types.SavedProgress{Theme: snap.Theme, Position: snap.Position})
	if err != nil {
		logWarn("%sFailed to save progress for session %s: %v", reqTag(ctx), sessionID, err)
	}
}

// cleanupExpiredSessions drops in-memory games idle for longer than the
// session timeout and returns how many were dropped.
func (app *App) cleanupExpiredSessions(now time.Time) int {
	if app.SessionTimeout <= 0 {
		return 0
	}
	app.SessionMutex.Lock()
	defer app.SessionMutex.Unlock()

	expired := lo.Filter(lo.Keys(app.GameSessions), func(id string, _ int) bool {
		return now.Sub(app.GameSessions[id].LastAccessTime) > app.SessionTimeout
	})
	for _, id := range expired {
		delete(app.GameSessions, id)
	}
	if len(expired) > 0 {
		logInfo("Removed %d expired sessions, %d active", len(expired), len(app.GameSessions))
	}
	return len(expired)
}

// activeSessions returns the number of games held in memory.
func (app *App) activeSessions() int {
	app.SessionMutex.RLock()
	defer app.SessionMutex.RUnlock()
	return len(app.GameSessions)
}
