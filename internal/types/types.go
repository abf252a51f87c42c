package types

import (
	"time"

	"echopath/internal/engine"
)

// SavedProgress is the on-disk record of a session's place in the curriculum.
type SavedProgress struct {
	Theme     string          `json:"theme"`
	Position  engine.Position `json:"position"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

type NewGameForm struct {
	Animal string `form:"animal" json:"animal"`
}

type PlaceForm struct {
	Word string `form:"word" json:"word" binding:"required"`
	Slot *int   `form:"slot" json:"slot" binding:"required"`
}

type LoginForm struct {
	ShortID     string `form:"short_id" json:"short_id" binding:"required"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth" binding:"required"`
}

// GameResponse wraps a snapshot with the result of the last action.
type GameResponse struct {
	Game    engine.Snapshot `json:"game"`
	Outcome string          `json:"outcome,omitempty"`
	Moved   *bool           `json:"moved,omitempty"`
}

type LessonView struct {
	Name        string `json:"name"`
	LevelLength []int  `json:"levelLength"`
}

type UnitView struct {
	Name    string       `json:"name"`
	Lessons []LessonView `json:"lessons"`
}

type CurriculumView struct {
	Theme string     `json:"theme"`
	Units []UnitView `json:"units"`
}
