package scoring

// Config holds the star thresholds as whole percentages of the round total,
// ordered from three stars down to one.
type Config struct {
	ThreeStars int // default: 90
	TwoStars   int // default: 70
	OneStar    int // default: 50
}

// DefaultConfig returns production defaults.
func DefaultConfig() Config {
	return Config{
		ThreeStars: 90,
		TwoStars:   70,
		OneStar:    50,
	}
}

// Performance tiers shown with a result.
const (
	TierPerfect        = "perfect"
	TierGreat          = "great"
	TierGood           = "good"
	TierKeepPracticing = "keep_practicing"
)

// Engine turns round outcomes into star ratings.
type Engine struct {
	config Config
}

// NewEngine creates a scoring engine with the provided config.
func NewEngine(config Config) *Engine {
	return &Engine{config: config}
}

// Stars maps score out of total onto 0..3 stars. Each tier is inclusive on
// its lower bound, and the comparison stays in integers so 9/10 lands on
// exactly 90%.
func (e *Engine) Stars(score, total int) int {
	if total <= 0 {
		return 0
	}
	reached := func(pct int) bool { return score*100 >= pct*total }
	switch {
	case reached(e.config.ThreeStars):
		return 3
	case reached(e.config.TwoStars):
		return 2
	case reached(e.config.OneStar):
		return 1
	default:
		return 0
	}
}

// Accuracy returns the rounded percentage of correct answers.
func (e *Engine) Accuracy(score, total int) int {
	if total <= 0 {
		return 0
	}
	return (score*100 + total/2) / total
}

// Tier returns the performance message key for a star count.
func Tier(stars int) string {
	switch {
	case stars >= 3:
		return TierPerfect
	case stars == 2:
		return TierGreat
	case stars == 1:
		return TierGood
	default:
		return TierKeepPracticing
	}
}

// Summary aggregates a finished round.
type Summary struct {
	Score      int    `json:"score"`
	Total      int    `json:"total"`
	Stars      int    `json:"stars"`
	Accuracy   int    `json:"accuracy"`
	BestStreak int    `json:"best_streak"`
	Tier       string `json:"tier"`
}

// Summarize folds per-question correctness, in round order, into a Summary.
func (e *Engine) Summarize(correct []bool) Summary {
	score, streak, best := 0, 0, 0
	for _, ok := range correct {
		if !ok {
			streak = 0
			continue
		}
		score++
		streak++
		best = max(best, streak)
	}

	total := len(correct)
	stars := e.Stars(score, total)
	return Summary{
		Score:      score,
		Total:      total,
		Stars:      stars,
		Accuracy:   e.Accuracy(score, total),
		BestStreak: best,
		Tier:       Tier(stars),
	}
}
