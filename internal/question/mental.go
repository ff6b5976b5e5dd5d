package question

import "fmt"

var mentalTricks = []fixedItem{
	{"🧠 Shortcut: 25 + 37 + 25 = ?", "87", []string{"77", "97", "67"}, "First 25 + 25 = 50, then 50 + 37 = 87"},
	{"🧠 Shortcut: 46 + 19 = ?", "65", []string{"55", "75", "45"}, "46 + 19 = 46 + 20 - 1 = 66 - 1 = 65"},
	{"🧠 Shortcut: 73 - 18 = ?", "55", []string{"45", "65", "35"}, "73 - 18 = 73 - 20 + 2 = 53 + 2 = 55"},
	{"🧠 Shortcut: 34 + 28 = ?", "62", []string{"52", "72", "42"}, "34 + 28 = 34 + 30 - 2 = 64 - 2 = 62"},
	{"🧠 Shortcut: 50 - 23 = ?", "27", []string{"37", "17", "47"}, "50 - 23 = 50 - 20 - 3 = 30 - 3 = 27"},
}

// generateMentalMath covers whole-ten arithmetic, splitting, chained
// operations and shortcut tricks.
func generateMentalMath(g *Generator) {
	for i := 0; i < 15; i++ {
		if g.coin() {
			g.emit("mental_whole_ten_add", i+1, func() (Question, bool) {
				a := g.between(2, 6) * 10
				b := g.between(1, 3) * 10
				result := a + b
				if result > 100 {
					return Question{}, false
				}
				return mentalQuestion(g, "⚡ Add whole tens: %d + %d = ?", "Whole tens: %d + %d = %d",
					a, b, result, []int{10, -10, 20}, DifficultyEasy)
			})
			continue
		}
		g.emit("mental_whole_ten_sub", i+1, func() (Question, bool) {
			a := g.between(4, 9) * 10
			b := g.between(1, 3) * 10
			return mentalQuestion(g, "⚡ Subtract whole tens: %d - %d = ?", "Whole tens: %d - %d = %d",
				a, b, a-b, []int{10, -10, 20}, DifficultyEasy)
		})
	}

	for i := 0; i < 15; i++ {
		if g.coin() {
			g.emit("mental_split_add", i+1, func() (Question, bool) {
				a := g.between(20, 79)
				b := g.between(1, 9)
				result := a + b
				if result > 100 {
					return Question{}, false
				}
				return mentalQuestion(g, "🔢 Split and add: %d + %d = ?", "Split: %d + %d = %d",
					a, b, result, []int{1, -1, 2}, DifficultyMedium)
			})
			continue
		}
		g.emit("mental_split_sub", i+1, func() (Question, bool) {
			a := g.between(30, 89)
			b := g.between(1, 9)
			return mentalQuestion(g, "🔢 Split and subtract: %d - %d = ?", "Split: %d - %d = %d",
				a, b, a-b, []int{1, -1, 2}, DifficultyMedium)
		})
	}

	for i := 0; i < 10; i++ {
		g.emit("mental_continuous", i+1, func() (Question, bool) {
			a := g.between(20, 59)
			b := g.between(5, 14)
			c := g.between(5, 14)
			result := a + b - c
			if result <= 0 || result > 100 {
				return Question{}, false
			}
			options, answer, ok := numericChoices(g.rng, result, []int{1, -1, 2}, 1, 100, plain)
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt:        fmt.Sprintf("🎯 Chain: %d + %d - %d = ?", a, b, c),
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   fmt.Sprintf("Left to right: %d + %d = %d, %d - %d = %d", a, b, a+b, a+b, c, result),
				Difficulty:    DifficultyHard,
				Operands:      []int{a, b, c},
			}, true
		})
	}

	g.emitFixed("mental_tricks", 10, DifficultyHard, mentalTricks)
}

func mentalQuestion(g *Generator, prompt, explanation string, a, b, result int, deltas []int, difficulty int) (Question, bool) {
	options, answer, ok := numericChoices(g.rng, result, deltas, 0, 100, plain)
	if !ok {
		return Question{}, false
	}
	return Question{
		Prompt:        fmt.Sprintf(prompt, a, b),
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   fmt.Sprintf(explanation, a, b, result),
		Difficulty:    difficulty,
		Operands:      []int{a, b},
	}, true
}
