package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"echopath/internal/types"
)

var errInvalidSessionID = errors.New("invalid session ID")

// progressFile returns the on-disk path of a session's progress record.
func (app *App) progressFile(sessionID string) (string, error) {
	if len(sessionID) < MinSessionIDLen || filepath.Base(sessionID) != sessionID {
		return "", errInvalidSessionID
	}
	return filepath.Join(app.SessionsDir, sessionID+".json"), nil
}

// saveProgress persists where a session is in the curriculum. Only the theme
// and position are stored; the round restarts on restore.
func (app *App) saveProgress(sessionID string, progress types.SavedProgress) error {
	if app.SessionsDir == "" {
		return nil
	}
	path, err := app.progressFile(sessionID)
	if err != nil {
		logWarn("Skipping save for invalid session ID: %q", sessionID)
		return nil
	}
	if err := os.MkdirAll(app.SessionsDir, 0o755); err != nil {
		return fmt.Errorf("creating sessions directory: %w", err)
	}

	progress.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(progress, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling progress for session %s: %w", sessionID, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing progress file %s: %w", path, err)
	}
	return nil
}

// loadProgress reads a session's progress record. Missing, expired, corrupted
// or structurally invalid files all yield os.ErrNotExist; the bad ones are
// removed.
func (app *App) loadProgress(sessionID string) (*types.SavedProgress, error) {
	if app.SessionsDir == "" {
		return nil, os.ErrNotExist
	}
	path, err := app.progressFile(sessionID)
	if err != nil {
		return nil, os.ErrNotExist
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if age := time.Since(info.ModTime()); app.SessionTimeout > 0 && age > app.SessionTimeout {
		logInfo("Progress file is too old (%v, max: %v), removing: %s", age, app.SessionTimeout, path)
		removeQuietly(path)
		return nil, os.ErrNotExist
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading progress file %s: %w", path, err)
	}

	var progress types.SavedProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		logWarn("Progress file %s is corrupted, removing: %v", path, err)
		removeQuietly(path)
		return nil, os.ErrNotExist
	}

	pos := progress.Position
	if progress.Theme == "" || pos.Unit < 0 || pos.Lesson < 0 || pos.Level < 0 {
		logWarn("Progress file %s has invalid structure (theme: %q, position: %+v), removing", path, progress.Theme, pos)
		removeQuietly(path)
		return nil, os.ErrNotExist
	}

	return &progress, nil
}

// deleteProgress removes a session's progress record if present.
func (app *App) deleteProgress(sessionID string) {
	if app.SessionsDir == "" {
		return
	}
	if path, err := app.progressFile(sessionID); err == nil {
		removeQuietly(path)
	}
}

// cleanupOldProgress removes progress files older than maxAge and returns how
// many were removed.
func (app *App) cleanupOldProgress(maxAge time.Duration) (int, error) {
	if app.SessionsDir == "" {
		return 0, nil
	}
	entries, err := os.ReadDir(app.SessionsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("reading sessions directory: %w", err)
	}

	cutoff := time.Now().Add(-maxAge)
	removed, failed := 0, 0
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			failed++
			continue
		}
		if info.ModTime().Before(cutoff) {
			if err := os.Remove(filepath.Join(app.SessionsDir, entry.Name())); err != nil {
				logWarn("Failed to remove old progress file %s: %v", entry.Name(), err)
				failed++
				continue
			}
			removed++
		}
	}

	logInfo("Progress cleanup completed: removed %d files, %d errors", removed, failed)
	return removed, nil
}

func removeQuietly(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		logWarn("Failed to remove %s: %v", path, err)
	}
}
