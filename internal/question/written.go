package question

import "fmt"

// carries reports whether a + b carries out of the ones column.
func carries(a, b int) bool {
	return a%10+b%10 >= 10
}

// generateWrittenMath covers column addition and subtraction, with and
// without regrouping. Each sub-section is constrained to its regrouping rule.
func generateWrittenMath(g *Generator) {
	for i := 0; i < 15; i++ {
		g.emit("written_no_carry_add", i+1, func() (Question, bool) {
			a := g.between(2, 5)*10 + g.between(1, 4)
			b := g.between(1, 3)*10 + g.between(1, 8)
			if carries(a, b) || a+b > 100 {
				return Question{}, false
			}
			return writtenQuestion(g, "📝 Add without carrying: %d + %d = ?", a, b, a+b, []int{1, -1, 10}, DifficultyEasy,
				fmt.Sprintf("Column method: ones %d + %d = %d, tens %d + %d = %d", a%10, b%10, a%10+b%10, a/10, b/10, a/10+b/10))
		})
	}

	for i := 0; i < 15; i++ {
		g.emit("written_carry_add", i+1, func() (Question, bool) {
			a := g.between(2, 4)*10 + g.between(5, 9)
			b := g.between(1, 3)*10 + g.between(5, 9)
			if !carries(a, b) || a+b > 100 {
				return Question{}, false
			}
			return writtenQuestion(g, "📝 Add with carrying: %d + %d = ?", a, b, a+b, []int{1, -1, -10}, DifficultyMedium,
				fmt.Sprintf("Column method: ones %d + %d = %d, carry 1 ten", a%10, b%10, a%10+b%10))
		})
	}

	for i := 0; i < 10; i++ {
		g.emit("written_no_borrow_sub", i+1, func() (Question, bool) {
			a := g.between(4, 7)*10 + g.between(4, 9)
			b := g.between(1, 3)*10 + g.between(1, 9)
			if needsBorrow(a, b) {
				return Question{}, false
			}
			return writtenQuestion(g, "📝 Subtract without borrowing: %d - %d = ?", a, b, a-b, []int{1, -1, 10}, DifficultyEasy,
				fmt.Sprintf("Column method: ones %d - %d = %d, tens %d - %d = %d", a%10, b%10, a%10-b%10, a/10, b/10, a/10-b/10))
		})
	}

	for i := 0; i < 10; i++ {
		g.emit("written_borrow_sub", i+1, func() (Question, bool) {
			a := g.between(4, 7)*10 + g.between(1, 8)
			b := g.between(1, 2)*10 + g.between(2, 9)
			if !needsBorrow(a, b) || a-b <= 0 {
				return Question{}, false
			}
			return writtenQuestion(g, "📝 Subtract with borrowing: %d - %d = ?", a, b, a-b, []int{1, -1, 10}, DifficultyMedium,
				fmt.Sprintf("Column method: ones not enough, borrow 1 ten, %d - %d = %d", a%10+10, b%10, a%10+10-b%10))
		})
	}
}

func writtenQuestion(g *Generator, prompt string, a, b, result int, deltas []int, difficulty int, explanation string) (Question, bool) {
	options, answer, ok := numericChoices(g.rng, result, deltas, 1, 100, plain)
	if !ok {
		return Question{}, false
	}
	return Question{
		Prompt:        fmt.Sprintf(prompt, a, b),
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   explanation,
		Difficulty:    difficulty,
		Operands:      []int{a, b},
	}, true
}
