// Package profile holds the child profile returned by the login service and a
// client for fetching it. The game only consumes the animal preference, which
// themes the curriculum.
package profile

import (
	"strings"

	"github.com/samber/lo"
)

// DefaultAnimal themes the game when the profile carries no preference.
const DefaultAnimal = "Dog"

// Animals lists the companions offered by the animal picker.
var Animals = []string{"Dog", "Cat", "Horse"}

type Child struct {
	ID               string  `json:"id"`
	ShortID          string  `json:"short_id"`
	FirstName        string  `json:"first_name"`
	LastName         string  `json:"last_name"`
	AnimalPreference *string `json:"animal_preference"`
	CurrentPath      *string `json:"current_path"`
}

type Preferences struct {
	Volume             int    `json:"volume"`
	Subtitles          bool   `json:"subtitles"`
	SpeechInputEnabled bool   `json:"speech_input_enabled"`
	AnimationIntensity string `json:"animation_intensity"`
	ColorContrast      string `json:"color_contrast"`
	MusicEnabled       bool   `json:"music_enabled"`
	VoiceSpeed         string `json:"voice_speed"`
}

type LoginRequest struct {
	ShortID     string `json:"short_id"`
	DateOfBirth string `json:"date_of_birth"`
}

type LoginResponse struct {
	Child       Child       `json:"child"`
	Preferences Preferences `json:"preferences"`
	Message     string      `json:"message"`
	UnitName    *string     `json:"unit_name"`
	LessonName  *string     `json:"lesson_name"`
}

// Theme returns the child's preferred animal, or DefaultAnimal.
func (c Child) Theme() string {
	pref := strings.TrimSpace(lo.FromPtr(c.AnimalPreference))
	if pref == "" {
		return DefaultAnimal
	}
	return pref
}

// IsKnownAnimal reports whether name is one of the picker's animals,
// ignoring case.
func IsKnownAnimal(name string) bool {
	return lo.ContainsBy(Animals, func(a string) bool { return strings.EqualFold(a, name) })
}
