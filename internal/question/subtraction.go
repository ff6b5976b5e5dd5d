package question

import "fmt"

// needsBorrow reports whether minuend - subtrahend borrows from the tens.
func needsBorrow(minuend, subtrahend int) bool {
	return minuend%10 < subtrahend%10
}

var breakTenItems = []struct{ minuend, subtrahend int }{
	{15, 9}, {14, 8}, {13, 7}, {16, 9}, {17, 8}, {12, 5}, {18, 9},
}

var takeAwayScenes = []struct {
	template string
	unit     string
}{
	{"🎈 Ming has {minuend} balloons and gives {subtrahend} to friends. How many are left?", "balloons"},
	{"🍎 Mum bought {minuend} apples and {subtrahend} were eaten. How many are left?", "apples"},
	{"📚 A shelf holds {minuend} books and {subtrahend} are borrowed. How many are left?", "books"},
	{"🌟 Hong collected {minuend} star stickers and used {subtrahend}. How many are left?", "stickers"},
	{"🚗 A car park has {minuend} cars and {subtrahend} drive away. How many are left?", "cars"},
}

var within20 = []int{1, -1, 2, -2}

// generateSubtraction covers basic borrowing, the break-ten method, thinking
// addition to subtract, and word problems. Every item requires borrowing.
func generateSubtraction(g *Generator) {
	for i := 0; i < 15; i++ {
		g.emit("subtraction_basic", i+1, func() (Question, bool) {
			minuend := g.between(12, 19)
			subtrahend := g.between(3, 9)
			if !needsBorrow(minuend, subtrahend) {
				return Question{}, false
			}
			result := minuend - subtrahend
			options, answer, ok := numericChoices(g.rng, result, within20, 0, 20, plain)
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt:        fmt.Sprintf("🧮 Calculate: %d - %d = ?", minuend, subtrahend),
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   fmt.Sprintf("%d - %d = %d (borrow from the tens)", minuend, subtrahend, result),
				Difficulty:    DifficultyEasy,
				Operands:      []int{minuend, subtrahend},
			}, true
		})
	}

	for i := 0; i < 15; i++ {
		item := breakTenItems[i%len(breakTenItems)]
		g.emit("subtraction_break_ten", i+1, func() (Question, bool) {
			result := item.minuend - item.subtrahend
			options, answer, ok := numericChoices(g.rng, result, within20, 0, 20, plain)
			if !ok {
				return Question{}, false
			}
			ones := item.minuend - 10
			return Question{
				Prompt:        fmt.Sprintf("🔟 Use break-ten: %d - %d = ?", item.minuend, item.subtrahend),
				Options:       options,
				CorrectAnswer: answer,
				Explanation: fmt.Sprintf("Break ten: %d - %d, first 10 - %d = %d, then %d + %d = %d",
					item.minuend, item.subtrahend, item.subtrahend, 10-item.subtrahend, 10-item.subtrahend, ones, result),
				Difficulty: DifficultyMedium,
				Operands:   []int{item.minuend, item.subtrahend},
			}, true
		})
	}

	for i := 0; i < 10; i++ {
		g.emit("subtraction_think_add", i+1, func() (Question, bool) {
			addend1 := g.between(3, 9)
			addend2 := g.between(3, 9)
			sum := addend1 + addend2
			if sum > 20 || !needsBorrow(sum, addend1) {
				return Question{}, false
			}
			options, answer, ok := numericChoices(g.rng, addend2, within20, 0, 20, plain)
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt:        fmt.Sprintf("🤔 Think addition: %d + ? = %d, so %d - %d = ?", addend1, sum, sum, addend1),
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   fmt.Sprintf("Because %d + %d = %d, %d - %d = %d", addend1, addend2, sum, sum, addend1, addend2),
				Difficulty:    DifficultyMedium,
				Operands:      []int{sum, addend1},
			}, true
		})
	}

	for i := 0; i < 10; i++ {
		scene := takeAwayScenes[i%len(takeAwayScenes)]
		g.emit("subtraction_application", i+1, func() (Question, bool) {
			minuend := g.between(12, 19)
			subtrahend := g.between(3, 9)
			if !needsBorrow(minuend, subtrahend) {
				return Question{}, false
			}
			result := minuend - subtrahend
			options, answer, ok := numericChoices(g.rng, result, within20, 0, 20, withUnit(scene.unit))
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt:        fill(scene.template, "minuend", minuend, "subtrahend", subtrahend),
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   fmt.Sprintf("Subtract: %d - %d = %d %s", minuend, subtrahend, result, scene.unit),
				Difficulty:    DifficultyMedium,
				Operands:      []int{minuend, subtrahend},
			}, true
		})
	}
}
