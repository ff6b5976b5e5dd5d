package game

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/mathquest/internal/metrics"
	"github.com/gokatarajesh/mathquest/internal/question"
)

func newTestService(t *testing.T, source QuestionSource) *Service {
	t.Helper()
	return NewService(source, NewMemoryStore(time.Hour), ServiceOptions{
		Metrics:     metrics.New(prometheus.NewRegistry()),
		LockTimeout: 200 * time.Millisecond,
		Clock:       func() time.Time { return testNow },
	}, zerolog.Nop())
}

func TestService_StartSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubSource{})

	s, err := svc.StartSession(ctx, StartRequest{})
	require.NoError(t, err)
	assert.Equal(t, 10, s.Total)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, testNow, s.CreatedAt)

	loaded, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, s.ID, loaded.ID)
}

func TestService_StartSessionByCategory(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubSource{})

	s, err := svc.StartSession(ctx, StartRequest{Category: question.CategoryCurrency})
	require.NoError(t, err)
	for _, q := range s.Questions {
		assert.Equal(t, question.CategoryCurrency, q.Category)
	}

	_, err = svc.StartSession(ctx, StartRequest{Category: "algebra"})
	assert.ErrorIs(t, err, question.ErrUnknownCategory)
	assert.True(t, IsClientError(err))
}

func TestService_StartSessionWithoutQuestions(t *testing.T) {
	svc := newTestService(t, &stubSource{empty: true})

	_, err := svc.StartSession(context.Background(), StartRequest{})
	assert.ErrorIs(t, err, ErrNoQuestions)
}

func TestService_PlayRound(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubSource{})

	s, err := svc.StartSession(ctx, StartRequest{})
	require.NoError(t, err)

	for i := 0; i < s.Total; i++ {
		q := s.Questions[i]
		pick := q.CorrectAnswer
		if i >= 7 {
			pick = wrongOption(q)
		}
		out, after, err := svc.SubmitAnswer(ctx, s.ID, pick)
		require.NoError(t, err)
		assert.True(t, out.Accepted)
		assert.True(t, after.Pending)

		after, err = svc.Advance(ctx, s.ID)
		require.NoError(t, err)
		assert.False(t, after.Pending)
	}

	result, err := svc.Result(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, result.Score)
	assert.Equal(t, 2, result.Stars)
	assert.Len(t, result.WrongAnswers, 3)
	assert.Equal(t, testNow, result.CompletedAt)

	// Advancing a finished round is harmless.
	after, err := svc.Advance(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, after.Result.Score)
}

func TestService_ResultBeforeCompletion(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubSource{})
	s, err := svc.StartSession(ctx, StartRequest{})
	require.NoError(t, err)

	_, err = svc.Result(ctx, s.ID)
	assert.ErrorIs(t, err, ErrRoundNotComplete)

	_, err = svc.Continue(ctx, s.ID)
	assert.ErrorIs(t, err, ErrRoundNotComplete)
}

func TestService_ContinueAndRestart(t *testing.T) {
	ctx := context.Background()
	source := &stubSource{}
	svc := newTestService(t, source)
	s, err := svc.StartSession(ctx, StartRequest{})
	require.NoError(t, err)

	for range s.Total {
		_, err = svc.Advance(ctx, s.ID)
		require.NoError(t, err)
	}

	s, err = svc.Continue(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Level)
	assert.False(t, s.Complete)

	s, err = svc.Restart(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, s.Level)
	assert.Equal(t, 3, s.RoundSeq)
	assert.Equal(t, 3, source.draws)
}

func TestService_AdvanceFrom(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubSource{})
	s, err := svc.StartSession(ctx, StartRequest{})
	require.NoError(t, err)

	out, _, err := svc.SubmitAnswer(ctx, s.ID, s.Questions[0].CorrectAnswer)
	require.NoError(t, err)

	s, moved, err := svc.AdvanceFrom(ctx, s.ID, out.Position)
	require.NoError(t, err)
	assert.True(t, moved)
	assert.Equal(t, 1, s.Index)

	s, moved, err = svc.AdvanceFrom(ctx, s.ID, out.Position)
	require.NoError(t, err)
	assert.False(t, moved)
	assert.Equal(t, 1, s.Index)
}

func TestService_ConcurrentAdvanceFromMovesOnce(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubSource{})
	s, err := svc.StartSession(ctx, StartRequest{})
	require.NoError(t, err)
	out, _, err := svc.SubmitAnswer(ctx, s.ID, s.Questions[0].CorrectAnswer)
	require.NoError(t, err)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		moves int
	)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, moved, err := svc.AdvanceFrom(ctx, s.ID, out.Position)
			assert.NoError(t, err)
			if moved {
				mu.Lock()
				moves++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, moves)
	final, err := svc.Get(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, final.Index)
}

func TestService_End(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, &stubSource{})
	s, err := svc.StartSession(ctx, StartRequest{})
	require.NoError(t, err)

	require.NoError(t, svc.End(ctx, s.ID))
	_, err = svc.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, svc.End(ctx, s.ID), ErrSessionNotFound)
	assert.ErrorIs(t, svc.End(ctx, uuid.New()), ErrSessionNotFound)
}

func TestService_EndWaitsForTransitionInFlight(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Hour)
	svc := NewService(&stubSource{}, store, ServiceOptions{
		LockTimeout: time.Second,
		Clock:       func() time.Time { return testNow },
	}, zerolog.Nop())
	s, err := svc.StartSession(ctx, StartRequest{})
	require.NoError(t, err)

	// Hold the lock the way an auto-advance between load and save does.
	unlock, err := store.Lock(ctx, s.ID)
	require.NoError(t, err)
	inFlight, err := store.Load(ctx, s.ID)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- svc.End(ctx, s.ID) }()

	select {
	case err := <-done:
		t.Fatalf("End returned while the session was locked: %v", err)
	case <-time.After(30 * time.Millisecond):
	}

	inFlight.Index++
	require.NoError(t, store.Save(ctx, inFlight))
	require.NoError(t, unlock())

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("End did not finish after the lock was released")
	}
	_, err = svc.Get(ctx, s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_RoundFromBank(t *testing.T) {
	ctx := context.Background()
	bank, err := question.Build(ctx, question.Options{Seed: 7, Strict: true, Logger: zerolog.Nop()})
	require.NoError(t, err)
	svc := newTestService(t, bank)

	s, err := svc.StartSession(ctx, StartRequest{})
	require.NoError(t, err)
	require.Equal(t, 10, s.Total)

	seen := make(map[string]bool)
	for _, q := range s.Questions {
		assert.NoError(t, q.Validate())
		assert.False(t, seen[q.ID], "duplicate %s", q.ID)
		seen[q.ID] = true
	}
}
