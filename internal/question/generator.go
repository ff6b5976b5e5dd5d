package question

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/rs/zerolog"
)

// GenerateFunc produces one category's pool.
type GenerateFunc func(g *Generator)

// generators maps every category to the routine that fills its pool.
var generators = map[Category]GenerateFunc{
	CategoryShapes:        generateShapes,
	CategorySubtraction:   generateSubtraction,
	CategoryNumbers:       generateNumbers,
	CategoryMentalMath:    generateMentalMath,
	CategoryWrittenMath:   generateWrittenMath,
	CategoryRelationships: generateRelationships,
	CategoryCurrency:      generateCurrency,
}

// Report summarises a single category build.
type Report struct {
	Category  Category `json:"category"`
	Generated int      `json:"generated"`
	Rejected  int      `json:"rejected"`
	Skipped   int      `json:"skipped"`
}

// Generator accumulates the questions of one category. Candidates are
// produced by rejection sampling: a builder draws operands, and a candidate
// that fails its arithmetic constraint or Validate is thrown away without
// advancing the count.
type Generator struct {
	category Category
	rng      *rand.Rand
	attempts int
	logger   zerolog.Logger

	out      []Question
	rejected int
	skipped  int
}

// NewGenerator creates a generator for one category.
func NewGenerator(category Category, rng *rand.Rand, attempts int, logger zerolog.Logger) *Generator {
	if attempts <= 0 {
		attempts = DefaultAttempts
	}
	return &Generator{
		category: category,
		rng:      rng,
		attempts: attempts,
		logger:   logger,
	}
}

// Run fills the pool using the category's registered routine.
func (g *Generator) Run() ([]Question, Report) {
	if fn, ok := generators[g.category]; ok {
		fn(g)
	}
	return g.out, Report{
		Category:  g.category,
		Generated: len(g.out),
		Rejected:  g.rejected,
		Skipped:   g.skipped,
	}
}

// between returns a uniform integer in [lo, hi].
func (g *Generator) between(lo, hi int) int {
	return lo + g.rng.IntN(hi-lo+1)
}

// coin returns true half of the time.
func (g *Generator) coin() bool {
	return g.rng.IntN(2) == 1
}

// emit rejection-samples the n-th (1-based) item of a skill. build returns
// false when the drawn candidate does not satisfy the skill's constraint.
func (g *Generator) emit(skill string, n int, build func() (Question, bool)) {
	id := fmt.Sprintf("%s_%d", skill, n)
	q, ok := retry(g.attempts, func() (Question, bool) {
		q, ok := build()
		if !ok {
			g.rejected++
			return q, false
		}
		q.ID = id
		q.Type = TypeMultipleChoice
		q.Category = g.category
		q.Skill = skill
		if err := q.Validate(); err != nil {
			g.rejected++
			return q, false
		}
		return q, true
	})
	if !ok {
		g.skipped++
		g.logger.Warn().
			Str("question_id", id).
			Int("attempts", g.attempts).
			Msg("generation exhausted retries, skipping item")
		return
	}
	g.out = append(g.out, q)
}

// fixedItem is a hand-written question whose options are shuffled on emit.
type fixedItem struct {
	prompt      string
	correct     string
	wrong       []string
	explanation string
}

// emitFixed cycles through items for count entries of a skill.
func (g *Generator) emitFixed(skill string, count, difficulty int, items []fixedItem) {
	for i := 0; i < count; i++ {
		item := items[i%len(items)]
		g.emit(skill, i+1, func() (Question, bool) {
			options, answer, ok := textChoices(g.rng, item.correct, item.wrong)
			if !ok {
				return Question{}, false
			}
			return Question{
				Prompt:        item.prompt,
				Options:       options,
				CorrectAnswer: answer,
				Explanation:   item.explanation,
				Difficulty:    difficulty,
			}, true
		})
	}
}

// fill replaces the first occurrence of each {key} placeholder in template.
func fill(template string, pairs ...any) string {
	out := template
	for i := 0; i+1 < len(pairs); i += 2 {
		key := fmt.Sprintf("{%v}", pairs[i])
		out = strings.Replace(out, key, fmt.Sprint(pairs[i+1]), 1)
	}
	return out
}
