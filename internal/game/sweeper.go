package game

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Sweepable is a store that must drop expired sessions itself. Redis
// expires keys on its own and does not need one.
type Sweepable interface {
	Sweep() int
}

// SweepWorker periodically evicts expired sessions from a Sweepable store.
type SweepWorker struct {
	store    Sweepable
	interval time.Duration
	logger   zerolog.Logger
}

func NewSweepWorker(store Sweepable, interval time.Duration, logger zerolog.Logger) *SweepWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return &SweepWorker{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("component", "session_sweeper").Logger(),
	}
}

// Run blocks until context cancellation.
func (w *SweepWorker) Run(ctx context.Context) error {
	if w.store == nil {
		return nil
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick()
		}
	}
}

func (w *SweepWorker) tick() {
	if removed := w.store.Sweep(); removed > 0 {
		w.logger.Debug().Int("removed", removed).Msg("expired sessions swept")
	}
}
