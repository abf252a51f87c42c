package engine

import (
	"slices"

	"github.com/samber/lo"
	"github.com/samber/lo/mutable"
)

// Feedback messages shown after a placement attempt.
const (
	FeedbackCorrect   = "Correct!"
	FeedbackIncorrect = "Incorrect. Try again."
)

// Outcome is the result of a placement attempt.
type Outcome int

const (
	// Ignored means the attempt targeted a slot other than the next one; nothing changed.
	Ignored Outcome = iota
	// Correct means the word was placed and the slot cursor advanced.
	Correct
	// Incorrect means the word did not match; only the feedback changed.
	Incorrect
)

func (o Outcome) String() string {
	switch o {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	default:
		return "ignored"
	}
}

// MarshalText lets Outcome appear as a string in JSON responses.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Shuffler permutes words in place.
type Shuffler func(words []string)

// Slot is one position of the target sentence.
type Slot struct {
	Word   string `json:"word"`
	Filled bool   `json:"filled"`
}

// Round is the puzzle state of a single level. The zero value is an empty,
// already complete round.
//
// Invariant: slotCursor equals the number of filled slots, and bank holds
// exactly the target words of the empty slots, counted with multiplicity.
type Round struct {
	target     []string
	bank       []string
	slots      []Slot
	slotCursor int
	feedback   string
	shuffle    Shuffler
}

// NewRound returns a round for level. A nil shuffle uses a uniform
// Fisher-Yates shuffle.
func NewRound(level []string, shuffle Shuffler) *Round {
	if shuffle == nil {
		shuffle = func(words []string) { mutable.Shuffle(words) }
	}
	r := &Round{shuffle: shuffle}
	r.Reset(level)
	return r
}

// Reset replaces the whole round with a fresh one for level. The bank is
// shuffled once here and never again until the next reset.
func (r *Round) Reset(level []string) {
	r.target = slices.Clone(level)
	r.slots = lo.Times(len(level), func(_ int) Slot { return Slot{} })
	r.bank = slices.Clone(level)
	if r.shuffle != nil && len(r.bank) > 1 {
		r.shuffle(r.bank)
	}
	r.slotCursor = 0
	r.feedback = ""
}

// Place tries to put word into slot. Only the next expected slot accepts
// words; attempts at any other index are ignored without touching state.
func (r *Round) Place(word string, slot int) Outcome {
	if slot != r.slotCursor || slot >= len(r.target) {
		return Ignored
	}
	if word != r.target[slot] {
		r.feedback = FeedbackIncorrect
		return Incorrect
	}

	if i := slices.Index(r.bank, word); i >= 0 {
		r.bank = slices.Delete(r.bank, i, i+1)
	}
	r.slots[slot] = Slot{Word: word, Filled: true}
	r.slotCursor++
	r.feedback = FeedbackCorrect
	return Correct
}

// Bank returns the words still available to place.
func (r *Round) Bank() []string { return slices.Clone(r.bank) }

// Slots returns the slots of the target sentence.
func (r *Round) Slots() []Slot { return slices.Clone(r.slots) }

// SlotCursor returns the index of the next slot to fill.
func (r *Round) SlotCursor() int { return r.slotCursor }

// Feedback returns the message for the most recent attempt.
func (r *Round) Feedback() string { return r.feedback }

// Len returns the number of slots.
func (r *Round) Len() int { return len(r.slots) }

// Complete reports whether every slot is filled.
func (r *Round) Complete() bool { return r.slotCursor == len(r.slots) }
