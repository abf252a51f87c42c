package curriculum_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"echopath/internal/curriculum"
)

func TestBuild_Shape(t *testing.T) {
	c := curriculum.Build("Dog")

	require.Equal(t, 1, c.NumUnits())
	require.Equal(t, 3, c.NumLessons(0))
	for lesson := 0; lesson < 3; lesson++ {
		assert.Equal(t, 5, c.NumLevels(0, lesson), "lesson %d", lesson)
	}

	name, ok := c.UnitName(0)
	require.True(t, ok)
	assert.Equal(t, "My Animal Friend", name)
	assert.Equal(t, []string{"Basic Actions", "Emotions", "Interactions"}, c.LessonNames(0))
}

func TestBuild_Casing(t *testing.T) {
	c := curriculum.Build("Dog")

	first, ok := c.Words(0, 0, 0)
	require.True(t, ok)
	assert.Equal(t, []string{"Dog"}, first)

	phrase, _ := c.Words(0, 0, 1)
	assert.Equal(t, []string{"Big", "dog"}, phrase)

	sentence, _ := c.Words(0, 0, 2)
	assert.Equal(t, []string{"The", "big", "dog", "runs"}, sentence)

	last, _ := c.Words(0, 2, 4)
	assert.Equal(t, []string{"The", "small", "dog", "plays", "with", "a", "ball", "and", "toy"}, last)
}

func TestBuild_Deterministic(t *testing.T) {
	a := curriculum.Build("Dog")
	b := curriculum.Build("Dog")
	assert.Equal(t, a.Units(), b.Units())
}

func TestBuild_MonotonicLength(t *testing.T) {
	for _, theme := range []string{"Dog", "Guinea Pig", "ÉLAN", ""} {
		c := curriculum.Build(theme)
		for _, u := range c.Units() {
			for _, l := range u.Lessons {
				for i := 1; i < len(l.Levels); i++ {
					assert.LessOrEqual(t, len(l.Levels[i-1].Words), len(l.Levels[i].Words),
						"theme %q lesson %q level %d", theme, l.Name, i)
				}
			}
		}
	}
}

func TestBuild_ThemeIsOneWord(t *testing.T) {
	c := curriculum.Build("Guinea Pig")

	first, _ := c.Words(0, 0, 0)
	assert.Equal(t, []string{"Guinea Pig"}, first)

	phrase, _ := c.Words(0, 1, 1)
	assert.Equal(t, []string{"Happy", "guinea pig"}, phrase)
}

func TestBuild_UnicodeTheme(t *testing.T) {
	c := curriculum.Build("ÉLAN")
	phrase, _ := c.Words(0, 0, 1)
	assert.Equal(t, []string{"Big", "élan"}, phrase)
}

func TestBuild_PlaceholderInTheme(t *testing.T) {
	c := curriculum.Build("{animal}")
	first, _ := c.Words(0, 0, 0)
	assert.Equal(t, []string{"{animal}"}, first)
}

func TestCurriculum_OutOfRange(t *testing.T) {
	c := curriculum.Build("Cat")

	_, ok := c.Words(0, 0, 5)
	assert.False(t, ok)
	_, ok = c.Words(0, 3, 0)
	assert.False(t, ok)
	_, ok = c.Words(1, 0, 0)
	assert.False(t, ok)
	_, ok = c.Words(-1, 0, 0)
	assert.False(t, ok)

	assert.Zero(t, c.NumLessons(4))
	assert.Zero(t, c.NumLevels(0, -1))
	assert.Empty(t, c.LessonNames(2))

	_, ok = c.LessonName(0, 9)
	assert.False(t, ok)
	_, ok = c.UnitName(9)
	assert.False(t, ok)
}

func TestCurriculum_Immutable(t *testing.T) {
	c := curriculum.Build("Cat")

	words, _ := c.Words(0, 0, 2)
	words[0] = "mutated"
	units := c.Units()
	units[0].Lessons[0].Levels[2].Words[1] = "mutated"

	again, _ := c.Words(0, 0, 2)
	assert.Equal(t, []string{"The", "big", "cat", "runs"}, again)
}

func TestDefaultTemplates_Valid(t *testing.T) {
	assert.NoError(t, curriculum.DefaultTemplates().Validate())
}

func TestTemplates_Validate(t *testing.T) {
	tests := []struct {
		name string
		tmpl curriculum.Templates
		want error
	}{
		{"no units", curriculum.Templates{}, curriculum.ErrNoUnits},
		{
			"no lessons",
			curriculum.Templates{Units: []curriculum.UnitTemplate{{Name: "U"}}},
			curriculum.ErrNoLessons,
		},
		{
			"no levels",
			curriculum.Templates{Units: []curriculum.UnitTemplate{{Lessons: []curriculum.LessonTemplate{{Name: "L"}}}}},
			curriculum.ErrNoLevels,
		},
		{
			"blank level",
			curriculum.Templates{Units: []curriculum.UnitTemplate{{Lessons: []curriculum.LessonTemplate{{Levels: []string{"{theme}", "  "}}}}}},
			curriculum.ErrNoWords,
		},
		{
			"shrinking",
			curriculum.Templates{Units: []curriculum.UnitTemplate{{Lessons: []curriculum.LessonTemplate{{Levels: []string{"a b c", "a b"}}}}}},
			curriculum.ErrShrinking,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.tmpl.Validate(), tt.want)
		})
	}
}

const twoUnitYAML = `
units:
  - name: Farm
    lessons:
      - name: Sounds
        levels:
          - "{theme}"
          - "Loud {animal}"
  - name: Forest
    lessons:
      - name: Moves
        levels:
          - "{theme} hops"
`

func TestParseTemplates(t *testing.T) {
	tmpl, err := curriculum.ParseTemplates([]byte(twoUnitYAML))
	require.NoError(t, err)

	c := curriculum.BuildFrom("Frog", tmpl)
	require.Equal(t, 2, c.NumUnits())

	words, ok := c.Words(0, 0, 1)
	require.True(t, ok)
	assert.Equal(t, []string{"Loud", "frog"}, words)

	words, ok = c.Words(1, 0, 0)
	require.True(t, ok)
	assert.Equal(t, []string{"Frog", "hops"}, words)

	name, _ := c.UnitName(1)
	assert.Equal(t, "Forest", name)
}

func TestParseTemplates_Errors(t *testing.T) {
	_, err := curriculum.ParseTemplates([]byte("units: [unclosed"))
	assert.Error(t, err)

	_, err = curriculum.ParseTemplates([]byte("units: []"))
	assert.ErrorIs(t, err, curriculum.ErrNoUnits)
}

func TestLoadTemplates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "curriculum.yaml")
	require.NoError(t, os.WriteFile(path, []byte(twoUnitYAML), 0o644))

	tmpl, err := curriculum.LoadTemplates(path)
	require.NoError(t, err)
	assert.Len(t, tmpl.Units, 2)

	_, err = curriculum.LoadTemplates(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
