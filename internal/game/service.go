package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/mathquest/internal/game/scoring"
	"github.com/gokatarajesh/mathquest/internal/metrics"
	"github.com/gokatarajesh/mathquest/internal/question"
)

// QuestionSource supplies the questions of a round. *question.Bank
// satisfies it.
type QuestionSource interface {
	Sample(count int) []question.Question
	ByCategory(category question.Category, count int) []question.Question
}

// ServiceOptions tunes the session service.
type ServiceOptions struct {
	QuestionsPerRound int
	Scoring           scoring.Config
	Metrics           *metrics.Metrics
	// LockTimeout bounds how long a transition waits for a busy session.
	LockTimeout time.Duration
	Clock       func() time.Time
}

// StartRequest describes a new session. An empty Category mixes every
// category.
type StartRequest struct {
	Category question.Category `json:"category,omitempty"`
}

// Service runs sessions on top of a question source and a Store.
type Service struct {
	questions QuestionSource
	store     Store
	scorer    *scoring.Engine
	metrics   *metrics.Metrics
	logger    zerolog.Logger

	perRound    int
	lockTimeout time.Duration
	now         func() time.Time
}

// NewService creates the session service.
func NewService(questions QuestionSource, store Store, opts ServiceOptions, logger zerolog.Logger) *Service {
	if opts.QuestionsPerRound <= 0 {
		opts.QuestionsPerRound = 10
	}
	if opts.Scoring == (scoring.Config{}) {
		opts.Scoring = scoring.DefaultConfig()
	}
	if opts.LockTimeout <= 0 {
		opts.LockTimeout = 2 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Service{
		questions:   questions,
		store:       store,
		scorer:      scoring.NewEngine(opts.Scoring),
		metrics:     opts.Metrics,
		logger:      logger.With().Str("component", "game_service").Logger(),
		perRound:    opts.QuestionsPerRound,
		lockTimeout: opts.LockTimeout,
		now:         opts.Clock,
	}
}

// QuestionsPerRound returns the configured round length.
func (s *Service) QuestionsPerRound() int { return s.perRound }

func (s *Service) draw(category question.Category) ([]question.Question, error) {
	var qs []question.Question
	if category == "" {
		qs = s.questions.Sample(s.perRound)
	} else {
		qs = s.questions.ByCategory(category, s.perRound)
	}
	if len(qs) == 0 {
		return nil, ErrNoQuestions
	}
	return qs, nil
}

// StartSession creates a session and its first round.
func (s *Service) StartSession(ctx context.Context, req StartRequest) (*Session, error) {
	if req.Category != "" && !req.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", question.ErrUnknownCategory, req.Category)
	}
	questions, err := s.draw(req.Category)
	if err != nil {
		return nil, err
	}

	session := NewSession(uuid.New(), req.Category, s.now())
	session.Start(questions)
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	s.metrics.RoundStarted("start")
	s.logger.Debug().
		Str("session_id", session.ID.String()).
		Str("category", string(req.Category)).
		Int("questions", session.Total).
		Msg("session started")
	return session, nil
}

// Get returns the current state of a session.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.store.Load(ctx, id)
}

// withLock runs fn while holding the session lock.
func (s *Service) withLock(ctx context.Context, id uuid.UUID, fn func() error) error {
	lockCtx, cancel := context.WithTimeout(ctx, s.lockTimeout)
	defer cancel()

	unlock, err := s.store.Lock(lockCtx, id)
	if err != nil {
		return err
	}
	defer func() {
		if err := unlock(); err != nil {
			s.logger.Warn().Err(err).Str("session_id", id.String()).Msg("unlock failed")
		}
	}()
	return fn()
}

// mutate runs fn on the locked session and saves it when fn reports a change.
func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(*Session) (bool, error)) (*Session, error) {
	var session *Session
	err := s.withLock(ctx, id, func() error {
		loaded, err := s.store.Load(ctx, id)
		if err != nil {
			return err
		}
		changed, err := fn(loaded)
		if err != nil {
			return err
		}
		if changed {
			loaded.UpdatedAt = s.now()
			if err := s.store.Save(ctx, loaded); err != nil {
				return err
			}
		}
		session = loaded
		return nil
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitAnswer records an answer to the current question.
func (s *Service) SubmitAnswer(ctx context.Context, id uuid.UUID, index int) (Outcome, *Session, error) {
	var outcome Outcome
	session, err := s.mutate(ctx, id, func(session *Session) (bool, error) {
		outcome = session.Submit(index)
		return outcome.Accepted, nil
	})
	if err != nil {
		return Outcome{}, nil, err
	}
	if outcome.Accepted {
		s.metrics.Answer(outcome.Correct)
	}
	return outcome, session, nil
}

// Advance moves the session on, completing the round after its last
// question.
func (s *Service) Advance(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) (bool, error) {
		if session.Complete {
			return false, nil
		}
		status, result := session.Advance(s.scorer, s.now())
		if status == StatusComplete {
			s.roundCompleted(session, result)
		}
		return true, nil
	})
}

// AdvanceFrom advances only if the session is still pending at pos. The
// bool reports whether it moved.
func (s *Service) AdvanceFrom(ctx context.Context, id uuid.UUID, pos Position) (*Session, bool, error) {
	var advanced bool
	session, err := s.mutate(ctx, id, func(session *Session) (bool, error) {
		status, result, ok := session.AdvanceFrom(pos, s.scorer, s.now())
		advanced = ok
		if ok && status == StatusComplete {
			s.roundCompleted(session, result)
		}
		return ok, nil
	})
	return session, advanced, err
}

func (s *Service) roundCompleted(session *Session, result *Result) {
	s.metrics.RoundCompleted(result.Stars)
	s.logger.Info().
		Str("session_id", session.ID.String()).
		Int("level", session.Level).
		Int("score", result.Score).
		Int("total", result.TotalQuestions).
		Int("stars", result.Stars).
		Msg("round complete")
}

// Continue starts the next level after a completed round.
func (s *Service) Continue(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) (bool, error) {
		if !session.Complete {
			return false, ErrRoundNotComplete
		}
		questions, err := s.draw(session.Category)
		if err != nil {
			return false, err
		}
		if err := session.Continue(questions); err != nil {
			return false, err
		}
		s.metrics.RoundStarted("continue")
		return true, nil
	})
}

// Restart replaces the current round with a fresh one at the same level.
func (s *Service) Restart(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.mutate(ctx, id, func(session *Session) (bool, error) {
		questions, err := s.draw(session.Category)
		if err != nil {
			return false, err
		}
		session.Restart(questions)
		s.metrics.RoundStarted("restart")
		return true, nil
	})
}

// Result returns the result of the completed round.
func (s *Service) Result(ctx context.Context, id uuid.UUID) (*Result, error) {
	session, err := s.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !session.Complete || session.Result == nil {
		return nil, ErrRoundNotComplete
	}
	return session.Result, nil
}

// End discards the session. It waits for any transition in flight so a
// concurrent save cannot bring the session back.
func (s *Service) End(ctx context.Context, id uuid.UUID) error {
	return s.withLock(ctx, id, func() error {
		if _, err := s.store.Load(ctx, id); err != nil {
			return err
		}
		return s.store.Delete(ctx, id)
	})
}

// IsClientError reports whether err stems from caller input rather than
// infrastructure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrSessionNotFound) ||
		errors.Is(err, ErrRoundNotComplete) ||
		errors.Is(err, question.ErrUnknownCategory)
}
