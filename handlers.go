package main

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"echopath/internal/engine"
	"echopath/internal/profile"
	"echopath/internal/types"
)

// gameStateHandler returns the current game for the session.
func (app *App) gameStateHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	gs := app.getGameSession(ctx, sessionID)
	snap := gs.withEngine(nil)
	c.JSON(http.StatusOK, types.GameResponse{Game: snap})
}

// newGameHandler starts the session over with the requested animal,
// optionally under a fresh session ID.
func (app *App) newGameHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)

	var form types.NewGameForm
	if err := c.ShouldBind(&form); err != nil {
		logWarn("%sInvalid new game request: %v", reqTag(ctx), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	animal, err := app.normalizeAnimal(form.Animal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !profile.IsKnownAnimal(animal) {
		logInfo("%sSession %s chose a custom animal: %s", reqTag(ctx), sessionID, animal)
	}

	if c.Query("reset") == "1" {
		app.SessionMutex.Lock()
		delete(app.GameSessions, sessionID)
		app.SessionMutex.Unlock()
		app.deleteProgress(sessionID)
		logInfo("%sCleared old session data for: %s", reqTag(ctx), sessionID)
		sessionID = app.issueSessionCookie(c)
		logInfo("%sCreated new session ID: %s", reqTag(ctx), sessionID)
	}

	gs := app.createNewGame(ctx, sessionID, animal)
	snap := gs.withEngine(nil)
	app.saveGameSession(ctx, sessionID, snap)
	c.JSON(http.StatusOK, types.GameResponse{Game: snap})
}

// placeHandler attempts to drop a word into a slot. Misrouted or wrong
// placements are part of play and still answer 200.
func (app *App) placeHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)

	var form types.PlaceForm
	if err := c.ShouldBind(&form); err != nil {
		logWarn("%sInvalid placement from session %s: %v", reqTag(ctx), sessionID, err)
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidPlacement})
		return
	}
	word := strings.TrimSpace(form.Word)

	gs := app.getGameSession(ctx, sessionID)
	var outcome engine.Outcome
	snap := gs.withEngine(func(e *engine.Engine) {
		outcome = e.Place(word, *form.Slot)
	})
	logInfo("%sSession %s placed %q at slot %d: %s (%d/%d)", reqTag(ctx), sessionID, word, *form.Slot, outcome, snap.SlotCursor, len(snap.Slots))

	c.JSON(http.StatusOK, types.GameResponse{Game: snap, Outcome: outcome.String()})
}

// nextLevelHandler advances to the next level, lesson or unit. It also serves
// as "skip level" while a round is unfinished.
func (app *App) nextLevelHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	gs := app.getGameSession(ctx, sessionID)

	var moved bool
	snap := gs.withEngine(func(e *engine.Engine) {
		moved = e.Advance()
	})
	if moved {
		logInfo("%sSession %s advanced to %+v", reqTag(ctx), sessionID, snap.Position)
		app.saveGameSession(ctx, sessionID, snap)
	} else {
		logInfo("%sSession %s is at the final level", reqTag(ctx), sessionID)
	}
	c.JSON(http.StatusOK, types.GameResponse{Game: snap, Moved: &moved})
}

// resetLevelHandler restarts the current level with a reshuffled bank.
func (app *App) resetLevelHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	gs := app.getGameSession(ctx, sessionID)

	snap := gs.withEngine(func(e *engine.Engine) {
		e.ResetLevel()
	})
	logInfo("%sSession %s reset level %+v", reqTag(ctx), sessionID, snap.Position)
	c.JSON(http.StatusOK, types.GameResponse{Game: snap})
}

// curriculumHandler lists lessons and level lengths for the session's theme.
func (app *App) curriculumHandler(c *gin.Context) {
	ctx := c.Request.Context()
	sessionID := app.getOrCreateSession(c)
	gs := app.getGameSession(ctx, sessionID)

	var view types.CurriculumView
	gs.withEngine(func(e *engine.Engine) {
		view = buildCurriculumView(e)
	})
	c.JSON(http.StatusOK, view)
}

// animalsHandler returns the companions offered by the picker.
func (app *App) animalsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"animals": profile.Animals,
		"default": app.DefaultAnimal,
	})
}

// loginHandler signs a child in through the profile service and starts a
// game themed on their preferred animal.
func (app *App) loginHandler(c *gin.Context) {
	ctx := c.Request.Context()
	if app.Profiles == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": ErrorLoginDisabled})
		return
	}

	var form types.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidLogin})
		return
	}
	dob, err := time.Parse(profile.DateLayout, strings.TrimSpace(form.DateOfBirth))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": ErrorInvalidLogin})
		return
	}

	resp, err := app.Profiles.Login(ctx, strings.TrimSpace(form.ShortID), dob)
	if err != nil {
		logWarn("%sLogin failed for %s: %v", reqTag(ctx), form.ShortID, err)
		status := http.StatusBadGateway
		var httpErr *profile.HTTPError
		if errors.As(err, &httpErr) && (httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusNotFound) {
			status = http.StatusUnauthorized
		}
		c.JSON(status, gin.H{"error": ErrorLoginFailed})
		return
	}

	animal, err := app.normalizeAnimal(resp.Child.Theme())
	if err != nil {
		logWarn("%sIgnoring animal preference of %s: %v", reqTag(ctx), resp.Child.ShortID, err)
		animal = app.DefaultAnimal
	}

	sessionID := app.getOrCreateSession(c)
	gs := app.createNewGame(ctx, sessionID, animal)
	snap := gs.withEngine(nil)
	app.saveGameSession(ctx, sessionID, snap)

	logInfo("%sChild %s logged in, session %s themed on %s", reqTag(ctx), resp.Child.ShortID, sessionID, animal)
	c.JSON(http.StatusOK, gin.H{
		"message":     resp.Message,
		"firstName":   resp.Child.FirstName,
		"preferences": resp.Preferences,
		"game":        snap,
	})
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":          "ok",
		"env":             map[bool]string{true: "production", false: "development"}[app.IsProduction],
		"active_sessions": app.activeSessions(),
		"default_animal":  app.DefaultAnimal,
		"uptime":          formatUptime(uptime),
		"timestamp":       time.Now().UTC().Format(time.RFC3339),
	})
}
