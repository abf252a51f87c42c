// Package curriculum builds the Unit → Lesson → Level tree of target
// sentences for a themed sentence-building game.
package curriculum

import (
	"slices"

	"github.com/samber/lo"
)

// Level is one playable puzzle: the sentence to assemble, word by word.
type Level struct {
	Words []string `json:"words"`
}

// Lesson groups levels of increasing sentence length around one motif.
type Lesson struct {
	Name   string  `json:"name"`
	Levels []Level `json:"levels"`
}

// Unit groups lessons.
type Unit struct {
	Name    string   `json:"name"`
	Lessons []Lesson `json:"lessons"`
}

// Curriculum is the immutable content tree for one theme. Accessors hand out
// copies so callers cannot mutate the tree.
type Curriculum struct {
	theme string
	units []Unit
}

// Build returns the built-in curriculum for theme. It never fails; any string,
// including the empty one, yields a valid tree.
func Build(theme string) *Curriculum {
	return BuildFrom(theme, DefaultTemplates())
}

// BuildFrom expands tmpl for theme. The result is deterministic for a given
// (theme, tmpl) pair.
func BuildFrom(theme string, tmpl Templates) *Curriculum {
	units := lo.Map(tmpl.Units, func(ut UnitTemplate, _ int) Unit {
		return Unit{
			Name: ut.Name,
			Lessons: lo.Map(ut.Lessons, func(lt LessonTemplate, _ int) Lesson {
				return Lesson{
					Name: lt.Name,
					Levels: lo.Map(lt.Levels, func(pattern string, _ int) Level {
						return Level{Words: expand(pattern, theme)}
					}),
				}
			}),
		}
	})
	return &Curriculum{theme: theme, units: units}
}

// Theme returns the theme the curriculum was built for.
func (c *Curriculum) Theme() string { return c.theme }

// NumUnits returns the number of units.
func (c *Curriculum) NumUnits() int { return len(c.units) }

// NumLessons returns the number of lessons in unit, or 0 if unit is out of range.
func (c *Curriculum) NumLessons(unit int) int {
	u, ok := c.unit(unit)
	if !ok {
		return 0
	}
	return len(u.Lessons)
}

// NumLevels returns the number of levels in the lesson, or 0 if out of range.
func (c *Curriculum) NumLevels(unit, lesson int) int {
	l, ok := c.lesson(unit, lesson)
	if !ok {
		return 0
	}
	return len(l.Levels)
}

// Words returns a copy of the target words of a level.
func (c *Curriculum) Words(unit, lesson, level int) ([]string, bool) {
	l, ok := c.lesson(unit, lesson)
	if !ok || level < 0 || level >= len(l.Levels) {
		return nil, false
	}
	return slices.Clone(l.Levels[level].Words), true
}

// UnitName returns the display name of a unit.
func (c *Curriculum) UnitName(unit int) (string, bool) {
	u, ok := c.unit(unit)
	if !ok {
		return "", false
	}
	return u.Name, true
}

// LessonName returns the display name of a lesson.
func (c *Curriculum) LessonName(unit, lesson int) (string, bool) {
	l, ok := c.lesson(unit, lesson)
	if !ok {
		return "", false
	}
	return l.Name, true
}

// LessonNames returns the lesson names of unit, index-aligned with its lessons.
func (c *Curriculum) LessonNames(unit int) []string {
	u, ok := c.unit(unit)
	if !ok {
		return []string{}
	}
	return lo.Map(u.Lessons, func(l Lesson, _ int) string { return l.Name })
}

// Units returns a deep copy of the whole tree.
func (c *Curriculum) Units() []Unit {
	return lo.Map(c.units, func(u Unit, _ int) Unit {
		return Unit{
			Name: u.Name,
			Lessons: lo.Map(u.Lessons, func(l Lesson, _ int) Lesson {
				return Lesson{
					Name: l.Name,
					Levels: lo.Map(l.Levels, func(lv Level, _ int) Level {
						return Level{Words: slices.Clone(lv.Words)}
					}),
				}
			}),
		}
	})
}

func (c *Curriculum) unit(i int) (Unit, bool) {
	if i < 0 || i >= len(c.units) {
		return Unit{}, false
	}
	return c.units[i], true
}

func (c *Curriculum) lesson(unit, i int) (Lesson, bool) {
	u, ok := c.unit(unit)
	if !ok || i < 0 || i >= len(u.Lessons) {
		return Lesson{}, false
	}
	return u.Lessons[i], true
}
