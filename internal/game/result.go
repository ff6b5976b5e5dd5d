package game

import (
	"time"

	"github.com/gokatarajesh/mathquest/internal/game/scoring"
	"github.com/gokatarajesh/mathquest/internal/question"
)

// Unanswered is the selected answer reported for a slot that was skipped.
const Unanswered = -1

// WrongAnswer describes one slot that was not answered correctly.
type WrongAnswer struct {
	Index          int               `json:"index"`
	Question       question.Question `json:"question"`
	SelectedAnswer int               `json:"selected_answer"`
	CorrectAnswer  int               `json:"correct_answer"`
}

// Result is produced once per completed round and never changed afterwards.
type Result struct {
	Level          int           `json:"level"`
	Score          int           `json:"score"`
	TotalQuestions int           `json:"total_questions"`
	Stars          int           `json:"stars"`
	Accuracy       int           `json:"accuracy"`
	BestStreak     int           `json:"best_streak"`
	Tier           string        `json:"tier"`
	CorrectAnswers []int         `json:"correct_answers"`
	WrongAnswers   []WrongAnswer `json:"wrong_answers"`
	CompletedAt    time.Time     `json:"completed_at"`
}

// buildResult partitions every slot of the round into correct and wrong.
func buildResult(s *Session, scorer *scoring.Engine, now time.Time) *Result {
	correct := make([]bool, s.Total)
	result := &Result{
		Level:          s.Level,
		TotalQuestions: s.Total,
		CorrectAnswers: []int{},
		WrongAnswers:   []WrongAnswer{},
		CompletedAt:    now,
	}

	for i, q := range s.Questions {
		selected, answered := s.AnswerAt(i)
		if answered && selected == q.CorrectAnswer {
			correct[i] = true
			result.CorrectAnswers = append(result.CorrectAnswers, i)
			continue
		}
		if !answered {
			selected = Unanswered
		}
		result.WrongAnswers = append(result.WrongAnswers, WrongAnswer{
			Index:          i,
			Question:       q.Clone(),
			SelectedAnswer: selected,
			CorrectAnswer:  q.CorrectAnswer,
		})
	}

	summary := scorer.Summarize(correct)
	result.Score = summary.Score
	result.Stars = summary.Stars
	result.Accuracy = summary.Accuracy
	result.BestStreak = summary.BestStreak
	result.Tier = summary.Tier
	return result
}

func (r Result) clone() Result {
	out := r
	out.CorrectAnswers = append([]int{}, r.CorrectAnswers...)
	out.WrongAnswers = make([]WrongAnswer, len(r.WrongAnswers))
	for i, w := range r.WrongAnswers {
		w.Question = w.Question.Clone()
		out.WrongAnswers[i] = w
	}
	return out
}
