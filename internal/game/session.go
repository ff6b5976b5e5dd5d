package game

import (
	"time"

	"github.com/google/uuid"

	"github.com/gokatarajesh/mathquest/internal/game/scoring"
	"github.com/gokatarajesh/mathquest/internal/question"
)

// Status of the active round.
type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

// Position identifies one question slot of one round. RoundSeq changes on
// every Start, Continue and Restart so a stale position never matches.
type Position struct {
	RoundSeq int `json:"round_seq"`
	Index    int `json:"index"`
}

// Outcome reports what Submit did.
type Outcome struct {
	Accepted      bool     `json:"accepted"`
	Correct       bool     `json:"correct"`
	Selected      int      `json:"selected"`
	CorrectAnswer int      `json:"correct_answer"`
	Last          bool     `json:"last"`
	Position      Position `json:"position"`
}

// Session is the state of one player's rounds. It is owned by a single
// caller at a time; Service serialises access through the Store lock.
type Session struct {
	ID        uuid.UUID           `json:"id"`
	Level     int                 `json:"level"`
	RoundSeq  int                 `json:"round_seq"`
	Index     int                 `json:"index"`
	Score     int                 `json:"score"`
	Total     int                 `json:"total"`
	Questions []question.Question `json:"questions"`
	Answers   []*int              `json:"answers"`
	// Pending is set between an accepted answer and the following advance.
	Pending     bool              `json:"pending"`
	LastCorrect bool              `json:"last_correct"`
	Complete    bool              `json:"complete"`
	Stars       int               `json:"stars"`
	Result      *Result           `json:"result,omitempty"`
	Category    question.Category `json:"category,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewSession creates a level 1 session with no round yet.
func NewSession(id uuid.UUID, category question.Category, now time.Time) *Session {
	return &Session{
		ID:        id,
		Level:     1,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Start begins a fresh round over questions, resetting every round-local
// field. Level is left alone.
func (s *Session) Start(questions []question.Question) {
	s.RoundSeq++
	s.Index = 0
	s.Score = 0
	s.Total = len(questions)
	s.Questions = questions
	s.Answers = make([]*int, len(questions))
	s.Pending = false
	s.LastCorrect = false
	s.Complete = s.Total == 0
	s.Stars = 0
	s.Result = nil
}

// Continue starts the next round one level higher. Only a completed round
// can be continued.
func (s *Session) Continue(questions []question.Question) error {
	if !s.Complete {
		return ErrRoundNotComplete
	}
	s.Level++
	s.Start(questions)
	return nil
}

// Restart starts a new round at the current level.
func (s *Session) Restart(questions []question.Question) {
	s.Start(questions)
}

// Current returns the question under the cursor, or nil once complete.
func (s *Session) Current() *question.Question {
	if s.Complete || s.Index >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.Index]
}

// AnswerAt returns the recorded option index of slot i.
func (s *Session) AnswerAt(i int) (int, bool) {
	if i < 0 || i >= len(s.Answers) || s.Answers[i] == nil {
		return 0, false
	}
	return *s.Answers[i], true
}

// Position returns the current round and cursor.
func (s *Session) Position() Position {
	return Position{RoundSeq: s.RoundSeq, Index: s.Index}
}

// Status reports whether the round is still being played.
func (s *Session) Status() Status {
	if s.Complete {
		return StatusComplete
	}
	return StatusInProgress
}

// Submit records index as the answer to the current question. A second
// answer to the same slot, an index outside the options and any submission
// after completion are ignored and reported with Accepted false.
func (s *Session) Submit(index int) Outcome {
	out := Outcome{Selected: index, Position: s.Position()}
	q := s.Current()
	if q == nil {
		return out
	}
	out.CorrectAnswer = q.CorrectAnswer
	out.Last = s.Index == s.Total-1
	if s.Answers[s.Index] != nil || index < 0 || index >= len(q.Options) {
		if prev, ok := s.AnswerAt(s.Index); ok {
			out.Selected = prev
			out.Correct = prev == q.CorrectAnswer
		}
		return out
	}

	s.Answers[s.Index] = &index
	out.Accepted = true
	out.Correct = index == q.CorrectAnswer
	if out.Correct {
		s.Score++
	}
	s.Pending = true
	s.LastCorrect = out.Correct
	return out
}

// Advance moves to the next question, skipping the current one if it was
// never answered. On the last question it completes the round and returns
// the result. Advancing a completed round returns its existing result.
func (s *Session) Advance(scorer *scoring.Engine, now time.Time) (Status, *Result) {
	if s.Complete {
		return StatusComplete, s.Result
	}
	s.Pending = false
	if s.Index < s.Total-1 {
		s.Index++
		return StatusInProgress, nil
	}

	s.Result = buildResult(s, scorer, now)
	s.Stars = s.Result.Stars
	s.Complete = true
	return StatusComplete, s.Result
}

// AdvanceFrom advances only if the session is still pending at pos. It
// reports false when the round has moved on since pos was taken.
func (s *Session) AdvanceFrom(pos Position, scorer *scoring.Engine, now time.Time) (Status, *Result, bool) {
	if s.Complete || !s.Pending || s.Position() != pos {
		return s.Status(), nil, false
	}
	status, result := s.Advance(scorer, now)
	return status, result, true
}

// Clone deep copies the session.
func (s *Session) Clone() *Session {
	out := *s
	out.Questions = make([]question.Question, len(s.Questions))
	for i, q := range s.Questions {
		out.Questions[i] = q.Clone()
	}
	out.Answers = make([]*int, len(s.Answers))
	for i, a := range s.Answers {
		if a != nil {
			v := *a
			out.Answers[i] = &v
		}
	}
	if s.Result != nil {
		r := s.Result.clone()
		out.Result = &r
	}
	return &out
}
