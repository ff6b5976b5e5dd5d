package question

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultAttempts bounds the rejection sampling of a single generated item.
	DefaultAttempts = 1000
	// DefaultTarget is the number of questions every category pool must hold.
	DefaultTarget = 50
	// DefaultSampleAttempts bounds the duplicate check of one sampled slot.
	DefaultSampleAttempts = 100
)

// ErrPoolShortfall is returned by Build in strict mode when a category
// generated fewer questions than the target.
var ErrPoolShortfall = errors.New("question pool below target")

// Options configures a Build.
type Options struct {
	// Seed makes generation and sampling reproducible. Zero picks a random seed.
	Seed     uint64
	Target   int
	Attempts int
	// Strict fails the build when any category ends below Target.
	Strict bool
	Logger zerolog.Logger
}

// Bank is the category-partitioned question pool. Pools are read-only after
// Build; every question handed out is a copy.
type Bank struct {
	pools     map[Category][]Question
	byID      map[string]Question
	available []Category
	reports   []Report
	seed      uint64

	mu  sync.Mutex
	rng *rand.Rand
}

// categoryStream derives the PCG stream of one category from its position so
// categories stay reproducible regardless of goroutine scheduling.
func categoryStream(i int) uint64 {
	return uint64(i+1) * 0x9E3779B97F4A7C15
}

// Build generates every category concurrently.
func Build(ctx context.Context, opts Options) (*Bank, error) {
	if opts.Target <= 0 {
		opts.Target = DefaultTarget
	}
	if opts.Attempts <= 0 {
		opts.Attempts = DefaultAttempts
	}
	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	pools := make([][]Question, len(Categories))
	reports := make([]Report, len(Categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, category := range Categories {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seed, categoryStream(i)))
			logger := opts.Logger.With().Str("category", string(category)).Logger()
			pools[i], reports[i] = NewGenerator(category, rng, opts.Attempts, logger).Run()
			if reports[i].Generated < opts.Target {
				logger.Warn().
					Int("generated", reports[i].Generated).
					Int("target", opts.Target).
					Msg("category pool below target")
				if opts.Strict {
					return fmt.Errorf("%w: %s generated %d of %d", ErrPoolShortfall, category, reports[i].Generated, opts.Target)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	b := &Bank{
		pools:   make(map[Category][]Question, len(Categories)),
		byID:    make(map[string]Question),
		reports: reports,
		seed:    seed,
		rng:     rand.New(rand.NewPCG(seed, 0)),
	}
	for i, category := range Categories {
		b.pools[category] = pools[i]
		if len(pools[i]) > 0 {
			b.available = append(b.available, category)
		}
		for _, q := range pools[i] {
			b.byID[q.ID] = q
		}
	}

	opts.Logger.Info().
		Uint64("seed", seed).
		Int("questions", len(b.byID)).
		Msg("question bank built")
	return b, nil
}

// Seed returns the seed the bank was built with.
func (b *Bank) Seed() uint64 { return b.seed }

// Sample draws count questions: a uniformly random category, then a
// uniformly random question from it, retrying up to DefaultSampleAttempts
// times when the id was already drawn. On exhaustion the duplicate is kept so
// the round is never under-filled.
func (b *Bank) Sample(count int) []Question {
	if count <= 0 || len(b.available) == 0 {
		return []Question{}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]Question, 0, count)
	seen := make(map[string]struct{}, count)
	for len(out) < count {
		var last Question
		q, ok := retry(DefaultSampleAttempts, func() (Question, bool) {
			pool := b.pools[b.available[b.rng.IntN(len(b.available))]]
			last = pool[b.rng.IntN(len(pool))]
			_, dup := seen[last.ID]
			return last, !dup
		})
		if !ok {
			q = last
		}
		seen[q.ID] = struct{}{}
		out = append(out, q.Clone())
	}
	return out
}

// ByCategory shuffles the whole category pool and returns its first count
// entries. Unknown categories yield an empty slice.
func (b *Bank) ByCategory(category Category, count int) []Question {
	pool := b.pools[category]
	if count <= 0 || len(pool) == 0 {
		return []Question{}
	}

	order := make([]int, len(pool))
	for i := range order {
		order[i] = i
	}
	b.mu.Lock()
	shuffleInts(b.rng, order)
	b.mu.Unlock()

	count = min(count, len(pool))
	out := make([]Question, count)
	for i := range out {
		out[i] = pool[order[i]].Clone()
	}
	return out
}

// Categories returns the categories in bank order.
func (b *Bank) Categories() []Category {
	return append([]Category(nil), Categories...)
}

// Statistics returns the pool size of every category.
func (b *Bank) Statistics() Statistics {
	stats := make(Statistics, len(b.pools))
	for category, pool := range b.pools {
		stats[category] = len(pool)
	}
	return stats
}

// Reports returns the per-category generation reports in bank order.
func (b *Bank) Reports() []Report {
	return append([]Report(nil), b.reports...)
}

// Lookup finds a pooled question by id.
func (b *Bank) Lookup(id string) (Question, bool) {
	q, ok := b.byID[id]
	if !ok {
		return Question{}, false
	}
	return q.Clone(), true
}

// Size returns the total number of pooled questions.
func (b *Bank) Size() int { return len(b.byID) }
