package main

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"

	"echopath/internal/curriculum"
	"echopath/internal/engine"
	"echopath/internal/types"
)

var errAnimalTooLong = errors.New(ErrorAnimalTooLong)

// newEngine builds an engine for theme from the configured templates.
func (app *App) newEngine(theme string, opts ...engine.Option) *engine.Engine {
	if len(app.Templates.Units) > 0 {
		opts = append([]engine.Option{engine.WithTemplates(app.Templates)}, opts...)
	}
	return engine.New(theme, opts...)
}

// createNewGame starts the session over at the first level with animal as
// the theme, replacing any game in memory and any saved progress.
func (app *App) createNewGame(ctx context.Context, sessionID, animal string) *GameSession {
	eng := app.newEngine(animal)
	logInfo("%sNew game created for session %s with animal: %s", reqTag(ctx), sessionID, animal)
	app.deleteProgress(sessionID)
	return app.storeGame(sessionID, eng, true)
}

// normalizeAnimal trims the requested animal and falls back to the default.
// Any casing or script is accepted; only the length is bounded.
func (app *App) normalizeAnimal(input string) (string, error) {
	animal := strings.TrimSpace(input)
	if animal == "" {
		return app.DefaultAnimal, nil
	}
	if utf8.RuneCountInString(animal) > MaxAnimalLength {
		return "", errAnimalTooLong
	}
	return animal, nil
}

// withEngine runs fn while holding the session lock and returns the state
// fn left behind.
func (gs *GameSession) withEngine(fn func(e *engine.Engine)) engine.Snapshot {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	if fn != nil {
		fn(gs.Engine)
	}
	return gs.Engine.Snapshot()
}

// buildCurriculumView summarises the curriculum without revealing sentences.
func buildCurriculumView(e *engine.Engine) types.CurriculumView {
	return types.CurriculumView{
		Theme: e.Theme(),
		Units: lo.Map(e.Curriculum().Units(), func(u curriculum.Unit, _ int) types.UnitView {
			return types.UnitView{
				Name: u.Name,
				Lessons: lo.Map(u.Lessons, func(l curriculum.Lesson, _ int) types.LessonView {
					return types.LessonView{
						Name: l.Name,
						LevelLength: lo.Map(l.Levels, func(lv curriculum.Level, _ int) int {
							return len(lv.Words)
						}),
					}
				}),
			}
		}),
	}
}
