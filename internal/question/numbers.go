package question

import "fmt"

const (
	countNext = iota
	countPosition
	countSequence
	countPlusTwo
)

var countingScenes = []struct {
	template string
	kind     int
}{
	{"📚 Books are numbered in order. The last one is book {start}. What number is the next book?", countNext},
	{"🎯 There are {start} people ahead of Ming in the ticket queue. What place is he?", countPosition},
	{"🔢 Continue the pattern: {start}, {next1}, ?, {next3}", countSequence},
	{"🏃 In a race, who comes right after place {start}?", countNext},
	{"📊 The counter shows {start}. Count on 2 more. What does it show?", countPlusTwo},
}

var compositionPrompts = []string{
	"🎯 How many tens and ones make %d?",
	"🔢 How many tens and how many ones are in %d?",
	"📊 Split %d into ( ) tens + ( ) ones",
	"🧮 An abacus shows %d. What are the tens and the ones?",
}

var comparePrompts = []string{
	"🔢 Compare: %d ○ %d",
	"📊 Which sign goes between %d and %d?",
	"🎯 Fill in the sign: %d ( ) %d",
}

var compareSigns = []string{">", "<", "=", "cannot compare"}

var placeValueItems = []fixedItem{
	{"🔢 In the number 56, which place is the 5 in?", "tens", []string{"ones", "hundreds", "thousands"}, "The 5 is in the tens place and means 5 tens"},
	{"📊 In the number 73, what digit is in the ones place?", "3", []string{"7", "73", "30"}, "The ones digit is 3"},
	{"🎯 The tens digit is 4 and the ones digit is 2. What is the number?", "42", []string{"24", "4", "2"}, "4 tens and 2 ones make 42"},
	{"🧮 An abacus shows 3 in the tens and 7 in the ones. What is the number?", "37", []string{"73", "3", "7"}, "3 tens and 7 ones make 37"},
	{"📐 In the number 89, which place holds the bigger digit?", "ones", []string{"tens", "they are equal", "cannot compare"}, "The tens digit is 8 and the ones digit is 9, so the ones digit is bigger"},
}

func tensOnes(tens, ones int) string {
	return fmt.Sprintf("%d tens %d ones", tens, ones)
}

// generateNumbers covers counting, composition into tens and ones,
// comparison and place value.
func generateNumbers(g *Generator) {
	for i := 0; i < 15; i++ {
		scene := countingScenes[i%len(countingScenes)]
		g.emit("number_counting", i+1, func() (Question, bool) {
			start := g.between(10, 89)
			step := 1
			prompt := fill(scene.template, "start", start)
			switch scene.kind {
			case countSequence:
				step = 2
				prompt = fill(scene.template, "start", start, "next1", start+1, "next3", start+3)
			case countPlusTwo:
				step = 2
			}
			correct := start + step
			options, answer, ok := numericChoices(g.rng, correct, []int{1, -1, 2}, 0, 100, plain)
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt:        prompt,
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   fmt.Sprintf("Counting on in order, the answer is %d", correct),
				Difficulty:    DifficultyEasy,
				Operands:      []int{start, step},
			}, true
		})
	}

	for i := 0; i < 15; i++ {
		prompt := compositionPrompts[i%len(compositionPrompts)]
		g.emit("number_composition", i+1, func() (Question, bool) {
			number := g.between(10, 99)
			tens, ones := number/10, number%10
			// Every distractor must be a real, distinct digit pair.
			if tens == ones || tens < 2 || tens > 8 || ones < 1 || ones > 8 {
				return Question{}, false
			}
			options, answer, ok := textChoices(g.rng, tensOnes(tens, ones), []string{
				tensOnes(ones, tens),
				tensOnes(tens+1, ones-1),
				tensOnes(tens-1, ones+1),
			})
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt:        fmt.Sprintf(prompt, number),
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   fmt.Sprintf("%d = %d tens + %d ones", number, tens, ones),
				Difficulty:    DifficultyMedium,
				Operands:      []int{number},
			}, true
		})
	}

	for i := 0; i < 10; i++ {
		prompt := comparePrompts[i%len(comparePrompts)]
		g.emit("number_compare", i+1, func() (Question, bool) {
			a := g.between(10, 99)
			b := g.between(10, 99)
			sign := "="
			switch {
			case a > b:
				sign = ">"
			case a < b:
				sign = "<"
			}
			wrong := make([]string, 0, 3)
			for _, s := range compareSigns {
				if s != sign {
					wrong = append(wrong, s)
				}
			}
			options, answer, ok := textChoices(g.rng, sign, wrong)
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt:        fmt.Sprintf(prompt, a, b),
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   "Compare the tens first; if they are the same, compare the ones",
				Difficulty:    DifficultyEasy,
				Operands:      []int{a, b},
			}, true
		})
	}

	g.emitFixed("number_place_value", 10, DifficultyMedium, placeValueItems)
}
