package game

import (
	"github.com/google/uuid"

	"github.com/gokatarajesh/mathquest/internal/question"
)

// QuestionView is a question as shown to the player. The correct answer and
// explanation stay hidden until the slot has been answered.
type QuestionView struct {
	Order         int               `json:"order"`
	ID            string            `json:"id"`
	Type          question.Type     `json:"type"`
	Prompt        string            `json:"prompt"`
	Options       []string          `json:"options"`
	Difficulty    int               `json:"difficulty"`
	Category      question.Category `json:"category"`
	Selected      *int              `json:"selected,omitempty"`
	CorrectAnswer *int              `json:"correct_answer,omitempty"`
	Explanation   string            `json:"explanation,omitempty"`
}

// SessionView is the player facing projection of a Session.
type SessionView struct {
	ID          uuid.UUID         `json:"id"`
	Level       int               `json:"level"`
	Status      Status            `json:"status"`
	Index       int               `json:"index"`
	Score       int               `json:"score"`
	Total       int               `json:"total"`
	Pending     bool              `json:"pending"`
	LastCorrect bool              `json:"last_correct"`
	Category    question.Category `json:"category,omitempty"`
	Answers     []*int            `json:"answers"`
	Current     *QuestionView     `json:"current,omitempty"`
	Stars       int               `json:"stars"`
	Result      *Result           `json:"result,omitempty"`
}

func newQuestionView(s *Session, i int) *QuestionView {
	q := s.Questions[i]
	view := &QuestionView{
		Order:      i,
		ID:         q.ID,
		Type:       q.Type,
		Prompt:     q.Prompt,
		Options:    append([]string(nil), q.Options...),
		Difficulty: q.Difficulty,
		Category:   q.Category,
	}
	if selected, ok := s.AnswerAt(i); ok {
		correct := q.CorrectAnswer
		view.Selected = &selected
		view.CorrectAnswer = &correct
		view.Explanation = q.Explanation
	}
	return view
}

// NewSessionView projects s for the player.
func NewSessionView(s *Session) SessionView {
	view := SessionView{
		ID:          s.ID,
		Level:       s.Level,
		Status:      s.Status(),
		Index:       s.Index,
		Score:       s.Score,
		Total:       s.Total,
		Pending:     s.Pending,
		LastCorrect: s.LastCorrect,
		Category:    s.Category,
		Answers:     s.Answers,
		Stars:       s.Stars,
		Result:      s.Result,
	}
	if !s.Complete && s.Index < len(s.Questions) {
		view.Current = newQuestionView(s, s.Index)
	}
	return view
}
