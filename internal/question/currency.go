package question

import "fmt"

var denominationItems = []fixedItem{
	{"💰 How many jiao make 1 yuan?", "10 jiao", []string{"5 jiao", "100 jiao", "20 jiao"}, "1 yuan = 10 jiao"},
	{"💰 How many fen make 1 jiao?", "10 fen", []string{"5 fen", "100 fen", "20 fen"}, "1 jiao = 10 fen"},
	{"💰 How many fen make 5 jiao?", "50 fen", []string{"5 fen", "25 fen", "10 fen"}, "5 jiao = 50 fen"},
	{"💰 How many jiao make 2 yuan?", "20 jiao", []string{"10 jiao", "200 jiao", "2 jiao"}, "2 yuan = 20 jiao"},
	{"💰 How many jiao make 50 fen?", "5 jiao", []string{"50 jiao", "10 jiao", "1 jiao"}, "50 fen = 5 jiao"},
	{"💰 How many jiao make 1 yuan 5 jiao?", "15 jiao", []string{"6 jiao", "10 jiao", "5 jiao"}, "1 yuan 5 jiao = 10 jiao + 5 jiao = 15 jiao"},
}

var exchangeItems = []fixedItem{
	{"💱 One 10-yuan note changes into how many 5-yuan notes?", "2 notes", []string{"1 note", "3 notes", "5 notes"}, "10 yuan ÷ 5 yuan = 2 notes"},
	{"💱 One 5-yuan note changes into how many 1-yuan notes?", "5 notes", []string{"2 notes", "10 notes", "3 notes"}, "5 yuan ÷ 1 yuan = 5 notes"},
	{"💱 Two 5-yuan notes equal how many 1-yuan notes?", "10 notes", []string{"5 notes", "2 notes", "15 notes"}, "2 × 5 yuan = 10 yuan = 10 one-yuan notes"},
	{"💱 One 20-yuan note changes into how many 10-yuan notes?", "2 notes", []string{"1 note", "4 notes", "20 notes"}, "20 yuan ÷ 10 yuan = 2 notes"},
	{"💱 Five 1-yuan notes equal how many 5-yuan notes?", "1 note", []string{"5 notes", "10 notes", "2 notes"}, "5 × 1 yuan = 5 yuan = one 5-yuan note"},
	{"💱 One 50-yuan note changes into how many 10-yuan notes?", "5 notes", []string{"10 notes", "2 notes", "50 notes"}, "50 yuan ÷ 10 yuan = 5 notes"},
	{"💱 Three 10-yuan notes equal how many 5-yuan notes?", "6 notes", []string{"3 notes", "10 notes", "15 notes"}, "3 × 10 yuan = 30 yuan, 30 yuan ÷ 5 yuan = 6 notes"},
}

var shoppingItems = []struct {
	item1  string
	price1 int
	item2  string
	price2 int
}{
	{"pencil", 2, "eraser", 3},
	{"ruler", 4, "notebook", 5},
	{"sticker", 6, "marker", 8},
	{"bookmark", 3, "glue stick", 4},
	{"pencil case", 12, "exercise book", 8},
	{"paint set", 15, "sketchbook", 7},
}

var changeItems = []struct {
	item  string
	price int
	paid  int
}{
	{"toy car", 3, 10},
	{"picture book", 8, 20},
	{"pencil case", 12, 20},
	{"sticker sheet", 6, 10},
	{"marker set", 15, 20},
	{"small toy", 7, 10},
	{"story book", 18, 20},
	{"eraser", 4, 5},
	{"notebook", 9, 10},
	{"paint set", 13, 20},
	{"ruler", 5, 10},
	{"stationery set", 16, 20},
	{"pencil", 2, 5},
}

var yuan = withUnit("yuan")

// generateCurrency covers denominations, exchanging notes, shopping totals
// and giving change.
func generateCurrency(g *Generator) {
	g.emitFixed("money_denomination", 12, DifficultyEasy, denominationItems)
	g.emitFixed("money_exchange", 13, DifficultyMedium, exchangeItems)

	for i := 0; i < 12; i++ {
		item := shoppingItems[i%len(shoppingItems)]
		g.emit("money_shopping", i+1, func() (Question, bool) {
			total := item.price1 + item.price2
			options, answer, ok := numericChoices(g.rng, total, []int{1, -1, 2}, 1, 100, yuan)
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt: fmt.Sprintf("🛒 A %s costs %d yuan and a %s costs %d yuan. How much for both?",
					item.item1, item.price1, item.item2, item.price2),
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   fmt.Sprintf("Add the prices: %d yuan + %d yuan = %d yuan", item.price1, item.price2, total),
				Difficulty:    DifficultyMedium,
				Operands:      []int{item.price1, item.price2},
			}, true
		})
	}

	for i := 0; i < 13; i++ {
		item := changeItems[i%len(changeItems)]
		g.emit("money_change", i+1, func() (Question, bool) {
			change := item.paid - item.price
			// Change can never be negative or more than what was paid.
			options, answer, ok := numericChoices(g.rng, change, []int{1, -1, 2}, 0, item.paid, yuan)
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt: fmt.Sprintf("💸 A %s costs %d yuan and you pay %d yuan. How much change do you get?",
					item.item, item.price, item.paid),
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   fmt.Sprintf("Change = paid - price = %d yuan - %d yuan = %d yuan", item.paid, item.price, change),
				Difficulty:    DifficultyMedium,
				Operands:      []int{item.paid, item.price},
			}, true
		})
	}
}
