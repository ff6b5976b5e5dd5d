package question

import (
	"math/rand/v2"
	"strconv"
)

// retry calls fn until it reports success or the attempt budget runs out.
// The zero value of T is returned with false on exhaustion.
func retry[T any](attempts int, fn func() (T, bool)) (T, bool) {
	for i := 0; i < attempts; i++ {
		if v, ok := fn(); ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// numericChoices builds an option set from the correct value and perturbed
// distractors. Distractors outside [lo, hi] or equal to an earlier value are
// dropped, at most three are kept, and at least two must survive. The
// options are shuffled and the post-shuffle index of correct is returned.
func numericChoices(rng *rand.Rand, correct int, deltas []int, lo, hi int, format func(int) string) ([]string, int, bool) {
	values := []int{correct}
	seen := map[int]bool{correct: true}
	for _, d := range deltas {
		v := correct + d
		if v < lo || v > hi || seen[v] {
			continue
		}
		seen[v] = true
		values = append(values, v)
		if len(values) == 4 {
			break
		}
	}
	if len(values) < 3 {
		return nil, 0, false
	}

	shuffleInts(rng, values)

	options := make([]string, len(values))
	answer := -1
	for i, v := range values {
		options[i] = format(v)
		if v == correct {
			answer = i
		}
	}
	return options, answer, answer >= 0
}

// textChoices shuffles the correct text together with up to three distinct
// wrong texts and returns the post-shuffle index of the correct one.
func textChoices(rng *rand.Rand, correct string, wrong []string) ([]string, int, bool) {
	options := []string{correct}
	seen := map[string]bool{correct: true}
	for _, w := range wrong {
		if seen[w] {
			continue
		}
		seen[w] = true
		options = append(options, w)
		if len(options) == 4 {
			break
		}
	}
	if len(options) < 3 {
		return nil, 0, false
	}

	rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	for i, opt := range options {
		if opt == correct {
			return options, i, true
		}
	}
	return nil, 0, false
}

func shuffleInts(rng *rand.Rand, values []int) {
	rng.Shuffle(len(values), func(i, j int) {
		values[i], values[j] = values[j], values[i]
	})
}

func plain(n int) string { return strconv.Itoa(n) }

func withUnit(unit string) func(int) string {
	return func(n int) string { return strconv.Itoa(n) + " " + unit }
}
