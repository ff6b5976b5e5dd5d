package question

import "fmt"

var partWholeScenes = []string{
	"🎈 Ming has {part1} red balloons and {part2} blue balloons. How many balloons in all?",
	"📚 A shelf has {part1} story books and {part2} science books. How many books in all?",
	"🌟 Hong collected {part1} red stars and {part2} yellow stars. How many stars in all?",
	"🚗 A car park has {part1} cars and {part2} trucks. How many vehicles in all?",
	"🍎 A basket has {part1} apples and {part2} oranges. How many pieces of fruit in all?",
}

var compareScenes = []string{
	"🏃 Class 1 has {more} pupils and class 2 has {less}. How many more pupils does class 1 have?",
	"🌸 The garden has {more} red flowers and {less} white flowers. How many more red flowers are there?",
	"📖 Ming read {more} pages and Hong read {less}. How many more pages did Ming read?",
	"🎯 Hua scored {more} points and Li scored {less}. How many more points did Hua score?",
	"🍓 Mum bought {more} strawberries and {less} cherries. How many more strawberries are there?",
}

var twoStepScenes = []string{
	"🛍️ Mum bought {num1} apples, then {num2} more, and {num3} were eaten. How many are left?",
	"📚 The library has {num1} books, buys {num2} more and lends out {num3}. How many are there now?",
	"🎈 Ming has {num1} balloons, a friend gives him {num2} and he gives away {num3}. How many does he have?",
	"💰 Hong has {num1} yuan, Mum gives her {num2} yuan and she spends {num3} yuan. How much is left?",
	"🌟 Hua collected {num1} stars, then {num2} more, and gave {num3} to classmates. How many are left?",
}

const (
	subtractBoth = iota
	subtractThenAdd
)

var comprehensiveScenes = []struct {
	template    string
	explanation string
	op          int
}{
	{"🎪 The circus has {total} tickets. {first} sold in the morning and {second} in the afternoon. How many are left?",
		"Total minus tickets sold: {total} - {first} - {second} = {result}", subtractBoth},
	{"🍰 A bakery made {total} cakes, sold {first}, then made {second} more. How many are there now?",
		"Subtract, then add: {total} - {first} + {second} = {result}", subtractThenAdd},
	{"🚌 A bus has {total} passengers. {first} get off and {second} get on. How many are on the bus now?",
		"Getting off subtracts, getting on adds: {total} - {first} + {second} = {result}", subtractThenAdd},
	{"📦 A warehouse has {total} boxes. {first} are shipped out, then {second} more. How many are left?",
		"Total minus boxes shipped: {total} - {first} - {second} = {result}", subtractBoth},
	{"🎁 A shop has {total} gifts, gives away {first} and receives {second} more. How many are there now?",
		"Subtract, then add: {total} - {first} + {second} = {result}", subtractThenAdd},
}

const answerAsNumber = " (answer with a number)"

// generateRelationships covers part-whole, comparison, two-step and mixed
// word problems.
func generateRelationships(g *Generator) {
	for i := 0; i < 15; i++ {
		scene := partWholeScenes[i%len(partWholeScenes)]
		g.emit("relationship_part_whole", i+1, func() (Question, bool) {
			part1 := g.between(10, 39)
			part2 := g.between(10, 39)
			total := part1 + part2
			return relationshipQuestion(g, fill(scene, "part1", part1, "part2", part2), total,
				fmt.Sprintf("Part + part = whole: %d + %d = %d", part1, part2, total),
				DifficultyEasy, []int{part1, part2})
		})
	}

	for i := 0; i < 15; i++ {
		scene := compareScenes[i%len(compareScenes)]
		g.emit("relationship_compare", i+1, func() (Question, bool) {
			less := g.between(10, 39)
			difference := g.between(5, 19)
			more := less + difference
			return relationshipQuestion(g, fill(scene, "more", more, "less", less), difference,
				fmt.Sprintf("How many more means subtract: %d - %d = %d", more, less, difference),
				DifficultyMedium, []int{more, less})
		})
	}

	for i := 0; i < 10; i++ {
		scene := twoStepScenes[i%len(twoStepScenes)]
		g.emit("relationship_two_step", i+1, func() (Question, bool) {
			num1 := g.between(15, 34)
			num2 := g.between(10, 24)
			num3 := g.between(5, 19)
			result := num1 + num2 - num3
			if result <= 0 {
				return Question{}, false
			}
			return relationshipQuestion(g, fill(scene, "num1", num1, "num2", num2, "num3", num3), result,
				fmt.Sprintf("Two steps: first %d + %d = %d, then %d - %d = %d", num1, num2, num1+num2, num1+num2, num3, result),
				DifficultyHard, []int{num1, num2, -num3})
		})
	}

	for i := 0; i < 10; i++ {
		scene := comprehensiveScenes[i%len(comprehensiveScenes)]
		g.emit("relationship_comprehensive", i+1, func() (Question, bool) {
			total := g.between(40, 69)
			first := g.between(10, 24)
			second := g.between(10, 24)
			result := total - first - second
			signed := []int{total, -first, -second}
			if scene.op == subtractThenAdd {
				result = total - first + second
				signed[2] = second
			}
			if result <= 0 {
				return Question{}, false
			}
			prompt := fill(scene.template, "total", total, "first", first, "second", second)
			explanation := fill(scene.explanation, "total", total, "first", first, "second", second, "result", result)
			return relationshipQuestion(g, prompt, result, explanation, DifficultyHard, signed)
		})
	}
}

// relationshipQuestion builds a word problem whose answer is the sum of the
// signed operands.
func relationshipQuestion(g *Generator, prompt string, correct int, explanation string, difficulty int, operands []int) (Question, bool) {
	options, answer, ok := numericChoices(g.rng, correct, []int{1, -1, 2}, 1, 200, plain)
	if !ok {
		return Question{}, false
	}
	return Question{
		Prompt:        prompt + answerAsNumber,
		Options:       options,
		CorrectAnswer: answer,
		Explanation:   explanation,
		Difficulty:    difficulty,
		Operands:      operands,
	}, true
}
