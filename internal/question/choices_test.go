package question

import (
	"math/rand/v2"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	calls := 0
	v, ok := retry(5, func() (int, bool) {
		calls++
		return calls, calls == 3
	})
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	calls = 0
	v, ok = retry(4, func() (int, bool) {
		calls++
		return calls, false
	})
	assert.False(t, ok)
	assert.Zero(t, v)
	assert.Equal(t, 4, calls)
}

func TestNumericChoices_DropsCollisionsAndOutOfRange(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))

	options, answer, ok := numericChoices(rng, 0, []int{1, -1, 2, 1}, 0, 20, plain)
	require.True(t, ok)
	assert.ElementsMatch(t, []string{"0", "1", "2"}, options)
	assert.Equal(t, "0", options[answer])

	_, _, ok = numericChoices(rng, 0, []int{1, -1, -2}, 0, 20, plain)
	assert.False(t, ok, "only one distractor survives the range filter")

	options, answer, ok = numericChoices(rng, 10, []int{1, -1, 2, -2}, 0, 20, withUnit("apples"))
	require.True(t, ok)
	assert.Len(t, options, 4)
	assert.Equal(t, "10 apples", options[answer])
}

func TestTextChoices(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))

	options, answer, ok := textChoices(rng, "circle", []string{"square", "square", "triangle", "star", "heart"})
	require.True(t, ok)
	assert.Len(t, options, 4)
	assert.Equal(t, "circle", options[answer])
	assert.NotContains(t, options, "heart")

	_, _, ok = textChoices(rng, "circle", []string{"circle", "square"})
	assert.False(t, ok)
}

func TestQuestion_Validate(t *testing.T) {
	valid := Question{
		ID:            "q_1",
		Options:       []string{"1", "2", "3"},
		CorrectAnswer: 2,
		Difficulty:    DifficultyEasy,
		Category:      CategoryNumbers,
	}
	require.NoError(t, valid.Validate())

	cases := map[string]struct {
		mutate func(q *Question)
		err    error
	}{
		"too few options":   {func(q *Question) { q.Options = []string{"1", "2"} }, ErrOptionCount},
		"too many options":  {func(q *Question) { q.Options = []string{"1", "2", "3", "4", "5"} }, ErrOptionCount},
		"duplicate option":  {func(q *Question) { q.Options = []string{"1", "2", "1"} }, ErrDuplicateOption},
		"negative answer":   {func(q *Question) { q.CorrectAnswer = -1 }, ErrAnswerOutOfRange},
		"answer past end":   {func(q *Question) { q.CorrectAnswer = 3 }, ErrAnswerOutOfRange},
		"difficulty zero":   {func(q *Question) { q.Difficulty = 0 }, ErrDifficulty},
		"unknown category":  {func(q *Question) { q.Category = "geology" }, ErrUnknownCategory},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			q := valid.Clone()
			tc.mutate(&q)
			assert.ErrorIs(t, q.Validate(), tc.err)
		})
	}
}

func TestGenerator_SkipsExhaustedItems(t *testing.T) {
	g := NewGenerator(CategoryNumbers, rand.New(rand.NewPCG(1, 1)), 3, zerolog.Nop())

	g.emit("impossible", 1, func() (Question, bool) { return Question{}, false })
	g.emit("invalid", 1, func() (Question, bool) {
		return Question{Options: []string{"a", "a", "b"}, Difficulty: DifficultyEasy}, true
	})

	assert.Empty(t, g.out)
	assert.Equal(t, 2, g.skipped)
	assert.Equal(t, 6, g.rejected)
}

func TestFill(t *testing.T) {
	assert.Equal(t, "3 and 4, {a}", fill("{a} and {b}, {a}", "a", 3, "b", 4))
}

func TestCategory_DisplayName(t *testing.T) {
	assert.Equal(t, "Knowing money (RMB)", CategoryCurrency.DisplayName())
	assert.Equal(t, "unknown", Category("unknown").DisplayName())
	assert.False(t, Category("unknown").Valid())
}
