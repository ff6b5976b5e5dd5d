package game

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPacer_RunsAfterDelay(t *testing.T) {
	p := NewPacer(10 * time.Millisecond)
	var fired atomic.Int32

	p.Schedule(uuid.New(), func() { fired.Add(1) })
	assert.Equal(t, 1, p.Pending())

	assert.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 0, p.Pending())
}

func TestPacer_RescheduleSupersedes(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)
	id := uuid.New()
	var first, second atomic.Int32

	p.Schedule(id, func() { first.Add(1) })
	p.Schedule(id, func() { second.Add(1) })

	assert.Eventually(t, func() bool { return second.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, int32(0), first.Load())
	assert.Equal(t, int32(1), second.Load())
}

func TestPacer_Cancel(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)
	id := uuid.New()
	var fired atomic.Int32

	p.Schedule(id, func() { fired.Add(1) })
	assert.True(t, p.Cancel(id))
	assert.False(t, p.Cancel(id))

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

func TestPacer_StopCancelsAll(t *testing.T) {
	p := NewPacer(20 * time.Millisecond)
	var fired atomic.Int32
	for range 3 {
		p.Schedule(uuid.New(), func() { fired.Add(1) })
	}
	assert.Equal(t, 3, p.Pending())

	p.Stop()
	assert.Equal(t, 0, p.Pending())
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}
