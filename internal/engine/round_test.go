package engine

import (
	"slices"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reverse is a deterministic stand-in for the random shuffle.
func reverse(words []string) { slices.Reverse(words) }

func filledCount(r *Round) int {
	return lo.CountBy(r.Slots(), func(s Slot) bool { return s.Filled })
}

// unplaced returns the target words whose slots are still empty.
func unplaced(target []string, r *Round) []string {
	slots := r.Slots()
	return lo.Filter(target, func(_ string, i int) bool { return !slots[i].Filled })
}

func TestNewRound(t *testing.T) {
	level := []string{"The", "big", "dog", "runs"}
	r := NewRound(level, reverse)

	assert.Equal(t, []string{"runs", "dog", "big", "The"}, r.Bank())
	assert.Len(t, r.Slots(), 4)
	assert.Zero(t, filledCount(r))
	assert.Zero(t, r.SlotCursor())
	assert.Empty(t, r.Feedback())
	assert.False(t, r.Complete())
}

func TestNewRound_DefaultShuffleIsPermutation(t *testing.T) {
	level := []string{"The", "big", "dog", "runs", "and", "eats", "a", "bone"}
	for i := 0; i < 20; i++ {
		r := NewRound(level, nil)
		assert.ElementsMatch(t, level, r.Bank())
	}
}

func TestRound_FullRound(t *testing.T) {
	level := []string{"The", "big", "dog", "runs"}
	r := NewRound(level, reverse)

	for i, w := range level {
		require.Equal(t, Correct, r.Place(w, i), "slot %d", i)
		assert.Equal(t, FeedbackCorrect, r.Feedback())
	}

	assert.Equal(t, 4, r.SlotCursor())
	assert.Empty(t, r.Bank())
	assert.True(t, r.Complete())
	for i, s := range r.Slots() {
		assert.True(t, s.Filled)
		assert.Equal(t, level[i], s.Word)
	}
	assert.Equal(t, FeedbackCorrect, r.Feedback())
}

func TestRound_OutOfOrderIgnored(t *testing.T) {
	r := NewRound([]string{"Big", "dog"}, reverse)
	bank := r.Bank()

	assert.Equal(t, Ignored, r.Place("dog", 1))
	assert.Equal(t, Ignored, r.Place("Big", -1))
	assert.Equal(t, Ignored, r.Place("Big", 7))

	assert.Zero(t, r.SlotCursor())
	assert.Equal(t, bank, r.Bank())
	assert.Zero(t, filledCount(r))
	assert.NotEqual(t, FeedbackCorrect, r.Feedback())
	assert.Empty(t, r.Feedback())
}

func TestRound_WrongWord(t *testing.T) {
	r := NewRound([]string{"Big", "dog"}, reverse)
	bank := r.Bank()

	for i := 0; i < 3; i++ {
		assert.Equal(t, Incorrect, r.Place("dog", 0))
		assert.Equal(t, FeedbackIncorrect, r.Feedback())
		assert.Zero(t, r.SlotCursor())
		assert.Equal(t, bank, r.Bank())
		assert.Zero(t, filledCount(r))
	}
}

func TestRound_CorrectTwiceFailsSecondTime(t *testing.T) {
	r := NewRound([]string{"Big", "dog"}, reverse)

	assert.Equal(t, Correct, r.Place("Big", 0))
	assert.Equal(t, Ignored, r.Place("Big", 0))
	assert.Equal(t, 1, r.SlotCursor())
	assert.Equal(t, []string{"dog"}, r.Bank())
}

func TestRound_PlaceAfterComplete(t *testing.T) {
	r := NewRound([]string{"Dog"}, reverse)
	require.Equal(t, Correct, r.Place("Dog", 0))

	assert.Equal(t, Ignored, r.Place("Dog", 1))
	assert.True(t, r.Complete())
	assert.Equal(t, FeedbackCorrect, r.Feedback())
}

func TestRound_DuplicateWordsAreAMultiset(t *testing.T) {
	level := []string{"a", "dog", "and", "a", "cat"}
	r := NewRound(level, reverse)

	require.Equal(t, Correct, r.Place("a", 0))
	assert.ElementsMatch(t, []string{"dog", "and", "a", "cat"}, r.Bank())

	require.Equal(t, Correct, r.Place("dog", 1))
	require.Equal(t, Correct, r.Place("and", 2))
	require.Equal(t, Correct, r.Place("a", 3))
	assert.Equal(t, []string{"cat"}, r.Bank())
}

func TestRound_Invariant(t *testing.T) {
	level := []string{"The", "happy", "dog", "jumps", "and", "wags", "tail"}
	r := NewRound(level, nil)

	attempts := []struct {
		word string
		slot int
	}{
		{"happy", 0}, {"The", 1}, {"The", 0}, {"The", 0}, {"dog", 1},
		{"happy", 1}, {"dog", 3}, {"dog", 2}, {"wags", 3}, {"jumps", 3},
	}
	for _, a := range attempts {
		r.Place(a.word, a.slot)
		assert.Equal(t, filledCount(r), r.SlotCursor())
		assert.ElementsMatch(t, unplaced(level, r), r.Bank())
	}
	assert.Equal(t, 4, r.SlotCursor())
}

func TestRound_ResetRestoresBank(t *testing.T) {
	level := []string{"The", "big", "dog", "runs"}
	r := NewRound(level, nil)
	r.Place("The", 0)
	r.Place("big", 1)
	r.Place("cat", 2)

	r.Reset(level)

	assert.ElementsMatch(t, level, r.Bank())
	assert.Zero(t, filledCount(r))
	assert.Zero(t, r.SlotCursor())
	assert.Empty(t, r.Feedback())
}

func TestRound_ResetEmptyLevel(t *testing.T) {
	r := NewRound([]string{"Dog"}, nil)
	r.Reset(nil)

	assert.Empty(t, r.Bank())
	assert.Empty(t, r.Slots())
	assert.Zero(t, r.SlotCursor())
	assert.True(t, r.Complete())
	assert.Equal(t, Ignored, r.Place("Dog", 0))
}

func TestRound_ResetDoesNotAliasLevel(t *testing.T) {
	level := []string{"Big", "dog"}
	r := NewRound(level, reverse)
	level[0] = "Small"

	assert.Equal(t, Correct, r.Place("Big", 0))
}

func TestOutcome_String(t *testing.T) {
	assert.Equal(t, "correct", Correct.String())
	assert.Equal(t, "incorrect", Incorrect.String())
	assert.Equal(t, "ignored", Ignored.String())

	b, err := Correct.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "correct", string(b))
}
