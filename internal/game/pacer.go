package game

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Pacer schedules the delayed auto-advance that follows a correct answer.
// At most one timer exists per session; scheduling again or cancelling
// supersedes the pending one.
type Pacer struct {
	delay time.Duration

	mu     sync.Mutex
	timers map[uuid.UUID]*time.Timer
}

// NewPacer creates a pacer that waits delay before running a callback.
func NewPacer(delay time.Duration) *Pacer {
	return &Pacer{
		delay:  delay,
		timers: make(map[uuid.UUID]*time.Timer),
	}
}

// Schedule runs fn after the delay unless it is superseded first.
func (p *Pacer) Schedule(id uuid.UUID, fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if t, ok := p.timers[id]; ok {
		t.Stop()
	}
	var timer *time.Timer
	timer = time.AfterFunc(p.delay, func() {
		p.mu.Lock()
		current := p.timers[id] == timer
		if current {
			delete(p.timers, id)
		}
		p.mu.Unlock()
		if current {
			fn()
		}
	})
	p.timers[id] = timer
}

// Cancel stops the pending timer of id. It reports whether one was pending.
// A nil Pacer has nothing pending.
func (p *Pacer) Cancel(id uuid.UUID) bool {
	if p == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	t, ok := p.timers[id]
	if !ok {
		return false
	}
	t.Stop()
	delete(p.timers, id)
	return true
}

// Pending returns the number of scheduled timers.
func (p *Pacer) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.timers)
}

// Stop cancels every pending timer.
func (p *Pacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for id, t := range p.timers {
		t.Stop()
		delete(p.timers, id)
	}
}
