package engine

import (
	"slices"

	"echopath/internal/curriculum"
)

// UnknownLesson is returned as the lesson name when the cursor is out of range.
const UnknownLesson = "Unknown Lesson"

// Position is the progression cursor: indices into the curriculum tree.
type Position struct {
	Unit   int `json:"unit"`
	Lesson int `json:"lesson"`
	Level  int `json:"level"`
}

// Progression tracks where a player is in a curriculum. A cursor that points
// outside the tree is tolerated: reads return empty values and boundary
// queries report terminal.
type Progression struct {
	cur *curriculum.Curriculum
	pos Position
}

// located is the result of resolving the cursor against the curriculum once.
type located struct {
	ok      bool
	words   []string
	units   int
	lessons int
	levels  int
}

// NewProgression returns a progression over cur starting at start.
func NewProgression(cur *curriculum.Curriculum, start Position) *Progression {
	return &Progression{cur: cur, pos: start}
}

func (p *Progression) lookup() located {
	words, ok := p.cur.Words(p.pos.Unit, p.pos.Lesson, p.pos.Level)
	if !ok {
		return located{}
	}
	return located{
		ok:      true,
		words:   words,
		units:   p.cur.NumUnits(),
		lessons: p.cur.NumLessons(p.pos.Unit),
		levels:  p.cur.NumLevels(p.pos.Unit, p.pos.Lesson),
	}
}

// Position returns the current cursor.
func (p *Progression) Position() Position { return p.pos }

// Valid reports whether the cursor points at an existing level.
func (p *Progression) Valid() bool { return p.lookup().ok }

// CurrentLevel returns the target words at the cursor, or an empty slice.
func (p *Progression) CurrentLevel() []string {
	l := p.lookup()
	if !l.ok {
		return []string{}
	}
	return slices.Clone(l.words)
}

// CurrentLessonName returns the lesson name at the cursor, or UnknownLesson.
func (p *Progression) CurrentLessonName() string {
	name, ok := p.cur.LessonName(p.pos.Unit, p.pos.Lesson)
	if !ok {
		return UnknownLesson
	}
	return name
}

// CurrentUnitName returns the unit name at the cursor, or "".
func (p *Progression) CurrentUnitName() string {
	name, _ := p.cur.UnitName(p.pos.Unit)
	return name
}

func (p *Progression) IsLastLevelInLesson() bool {
	l := p.lookup()
	return !l.ok || p.pos.Level >= l.levels-1
}

func (p *Progression) IsLastLessonInUnit() bool {
	l := p.lookup()
	return !l.ok || p.pos.Lesson >= l.lessons-1
}

// HasNext reports whether Advance would move the cursor.
func (p *Progression) HasNext() bool {
	l := p.lookup()
	if !l.ok {
		return false
	}
	return p.pos.Level < l.levels-1 || p.pos.Lesson < l.lessons-1 || p.pos.Unit < l.units-1
}

// Advance moves to the next level, else the first level of the next lesson,
// else the first level of the next unit. It reports whether the cursor moved;
// at the final level, or with an invalid cursor, it does nothing.
func (p *Progression) Advance() bool {
	l := p.lookup()
	if !l.ok {
		return false
	}
	switch {
	case p.pos.Level < l.levels-1:
		p.pos.Level++
	case p.pos.Lesson < l.lessons-1:
		p.pos.Lesson++
		p.pos.Level = 0
	case p.pos.Unit < l.units-1:
		p.pos = Position{Unit: p.pos.Unit + 1}
	default:
		return false
	}
	return true
}
