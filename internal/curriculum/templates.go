package curriculum

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

// Placeholders recognised in level patterns.
const (
	// ThemePlaceholder expands to the theme exactly as given.
	ThemePlaceholder = "{theme}"
	// AnimalPlaceholder expands to the lower-cased theme, for use inside phrases.
	AnimalPlaceholder = "{animal}"
)

// Templates describes a curriculum independently of its theme. Each level is
// a space-separated pattern; a placeholder always occupies exactly one word
// slot, even when the theme itself contains spaces.
type Templates struct {
	Units []UnitTemplate `yaml:"units"`
}

type UnitTemplate struct {
	Name    string           `yaml:"name"`
	Lessons []LessonTemplate `yaml:"lessons"`
}

type LessonTemplate struct {
	Name   string   `yaml:"name"`
	Levels []string `yaml:"levels"`
}

var (
	ErrNoUnits   = errors.New("curriculum has no units")
	ErrNoLessons = errors.New("unit has no lessons")
	ErrNoLevels  = errors.New("lesson has no levels")
	ErrNoWords   = errors.New("level has no words")
	ErrShrinking = errors.New("level is shorter than the previous level")
)

// DefaultTemplates returns the built-in curriculum: one unit of three lessons
// (actions, emotions, interactions), five levels each.
func DefaultTemplates() Templates {
	return Templates{Units: []UnitTemplate{{
		Name: "My Animal Friend",
		Lessons: []LessonTemplate{
			{
				Name: "Basic Actions",
				Levels: []string{
					"{theme}",
					"Big {animal}",
					"The big {animal} runs",
					"The big {animal} runs and eats",
					"The big {animal} runs and eats a bone",
				},
			},
			{
				Name: "Emotions",
				Levels: []string{
					"{theme}",
					"Happy {animal}",
					"The happy {animal} jumps",
					"The happy {animal} jumps and wags tail",
					"The happy {animal} jumps and wags tail fast",
				},
			},
			{
				Name: "Interactions",
				Levels: []string{
					"{theme}",
					"Small {animal}",
					"The small {animal} plays",
					"The small {animal} plays with a ball",
					"The small {animal} plays with a ball and toy",
				},
			},
		},
	}}}
}

// LoadTemplates reads and validates a YAML template file.
func LoadTemplates(path string) (Templates, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Templates{}, fmt.Errorf("reading curriculum templates: %w", err)
	}
	return ParseTemplates(data)
}

// ParseTemplates decodes and validates YAML template data.
func ParseTemplates(data []byte) (Templates, error) {
	var t Templates
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Templates{}, fmt.Errorf("parsing curriculum templates: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Templates{}, err
	}
	return t, nil
}

// Validate checks the tree invariants: every unit has a lesson, every lesson
// a level, every level a word, and level lengths never decrease within a
// lesson.
func (t Templates) Validate() error {
	if len(t.Units) == 0 {
		return ErrNoUnits
	}
	for ui, u := range t.Units {
		if len(u.Lessons) == 0 {
			return fmt.Errorf("unit %d (%s): %w", ui+1, u.Name, ErrNoLessons)
		}
		for li, l := range u.Lessons {
			if len(l.Levels) == 0 {
				return fmt.Errorf("unit %d lesson %d (%s): %w", ui+1, li+1, l.Name, ErrNoLevels)
			}
			prev := 0
			for vi, pattern := range l.Levels {
				n := len(strings.Fields(pattern))
				if n == 0 {
					return fmt.Errorf("unit %d lesson %d level %d: %w", ui+1, li+1, vi+1, ErrNoWords)
				}
				if n < prev {
					return fmt.Errorf("unit %d lesson %d level %d (%d < %d words): %w", ui+1, li+1, vi+1, n, prev, ErrShrinking)
				}
				prev = n
			}
		}
	}
	return nil
}

// expand splits pattern into words and substitutes the placeholders.
func expand(pattern, theme string) []string {
	r := strings.NewReplacer(ThemePlaceholder, theme, AnimalPlaceholder, strings.ToLower(theme))
	return lo.Map(strings.Fields(pattern), func(tok string, _ int) string {
		return r.Replace(tok)
	})
}
