// Package engine holds the game rules of the sentence builder: progression
// through the curriculum and the word-placement round of the current level.
//
// An Engine is not safe for concurrent use. Hosts that share one between
// goroutines must guard the whole Engine with a single lock.
package engine

import (
	"echopath/internal/curriculum"
)

// Engine couples a Progression with the Round of its current level. Every
// transition of the progression replaces the round.
type Engine struct {
	curriculum  *curriculum.Curriculum
	progression *Progression
	round       *Round
	version     uint64
}

type options struct {
	shuffle   Shuffler
	start     Position
	templates *curriculum.Templates
}

// Option configures New.
type Option func(*options)

// WithShuffler sets the function used to shuffle the word bank on each reset.
func WithShuffler(s Shuffler) Option {
	return func(o *options) { o.shuffle = s }
}

// WithStart starts the engine at pos instead of the first level. Positions
// outside the curriculum are accepted and behave as the terminal state.
func WithStart(pos Position) Option {
	return func(o *options) { o.start = pos }
}

// WithTemplates builds the curriculum from t instead of the built-in content.
func WithTemplates(t curriculum.Templates) Option {
	return func(o *options) { o.templates = &t }
}

// New builds the curriculum for theme and opens the round of the start level.
func New(theme string, opts ...Option) *Engine {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var cur *curriculum.Curriculum
	if o.templates != nil {
		cur = curriculum.BuildFrom(theme, *o.templates)
	} else {
		cur = curriculum.Build(theme)
	}

	p := NewProgression(cur, o.start)
	return &Engine{
		curriculum:  cur,
		progression: p,
		round:       NewRound(p.CurrentLevel(), o.shuffle),
	}
}

// Curriculum returns the immutable content tree.
func (e *Engine) Curriculum() *curriculum.Curriculum { return e.curriculum }

// Theme returns the theme the curriculum was built from.
func (e *Engine) Theme() string { return e.curriculum.Theme() }

// Version increases whenever observable state changes. Renderers can poll it
// to decide whether to redraw.
func (e *Engine) Version() uint64 { return e.version }

func (e *Engine) Position() Position { return e.progression.Position() }
func (e *Engine) CurrentLevel() []string { return e.progression.CurrentLevel() }
func (e *Engine) CurrentLessonName() string { return e.progression.CurrentLessonName() }
func (e *Engine) UnitName() string { return e.progression.CurrentUnitName() }
func (e *Engine) IsLastLevelInLesson() bool { return e.progression.IsLastLevelInLesson() }
func (e *Engine) IsLastLessonInUnit() bool { return e.progression.IsLastLessonInUnit() }
func (e *Engine) HasNext() bool { return e.progression.HasNext() }
func (e *Engine) Bank() []string { return e.round.Bank() }
func (e *Engine) Slots() []Slot { return e.round.Slots() }
func (e *Engine) SlotCursor() int { return e.round.SlotCursor() }
func (e *Engine) Feedback() string { return e.round.Feedback() }
func (e *Engine) RoundComplete() bool { return e.round.Complete() }

// LessonComplete reports whether the player has just finished the last level
// of a lesson.
func (e *Engine) LessonComplete() bool {
	return e.progression.Valid() && e.round.Complete() && e.progression.IsLastLevelInLesson()
}

// Advance moves to the next level and opens a fresh round for it. It may be
// called before the current round is complete, which skips the level. At the
// final level it is a no-op and the round is left untouched.
func (e *Engine) Advance() bool {
	if !e.progression.Advance() {
		return false
	}
	e.round.Reset(e.progression.CurrentLevel())
	e.version++
	return true
}

// ResetLevel restarts the current level with a newly shuffled bank.
func (e *Engine) ResetLevel() {
	e.round.Reset(e.progression.CurrentLevel())
	e.version++
}

// Place attempts to put word into slot of the current round. Repeating the
// same wrong attempt leaves the version unchanged.
func (e *Engine) Place(word string, slot int) Outcome {
	before := e.round.Feedback()
	out := e.round.Place(word, slot)
	if out == Correct || (out == Incorrect && before != FeedbackIncorrect) {
		e.version++
	}
	return out
}

// Snapshot is a read-only copy of the engine state for rendering.
type Snapshot struct {
	Theme          string   `json:"theme"`
	UnitName       string   `json:"unitName"`
	LessonName     string   `json:"lessonName"`
	Position       Position `json:"position"`
	LessonNumber   int      `json:"lessonNumber"`
	LevelNumber    int      `json:"levelNumber"`
	Slots          []Slot   `json:"slots"`
	Bank           []string `json:"bank"`
	SlotCursor     int      `json:"slotCursor"`
	Feedback       string   `json:"feedback"`
	RoundComplete  bool     `json:"roundComplete"`
	LessonComplete bool     `json:"lessonComplete"`
	HasNext        bool     `json:"hasNext"`
	Version        uint64   `json:"version"`
}

// Snapshot captures the current state.
func (e *Engine) Snapshot() Snapshot {
	pos := e.Position()
	return Snapshot{
		Theme:          e.Theme(),
		UnitName:       e.UnitName(),
		LessonName:     e.CurrentLessonName(),
		Position:       pos,
		LessonNumber:   pos.Lesson + 1,
		LevelNumber:    pos.Level + 1,
		Slots:          e.Slots(),
		Bank:           e.Bank(),
		SlotCursor:     e.SlotCursor(),
		Feedback:       e.Feedback(),
		RoundComplete:  e.RoundComplete(),
		LessonComplete: e.LessonComplete(),
		HasNext:        e.HasNext(),
		Version:        e.version,
	}
}
