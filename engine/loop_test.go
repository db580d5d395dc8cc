package engine

import (
	"sync/atomic"
	"testing"
	"time"
)

func waitFor(t *testing.T, cond func() bool, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestLoopStepsAndFrames(t *testing.T) {
	var steps, frames atomic.Int64
	l := NewLoop(func() { steps.Add(1) }, func() { frames.Add(1) }, time.Millisecond)
	l.Start()
	defer l.Stop()

	waitFor(t, func() bool { return l.Ticks() >= 5 }, 2*time.Second)

	if steps.Load() < 5 {
		t.Errorf("Expected at least 5 steps, got %d", steps.Load())
	}
	if frames.Load() < steps.Load()-1 {
		t.Errorf("Expected a frame per tick, steps=%d frames=%d", steps.Load(), frames.Load())
	}
}

// TestLoopSerializesEventsAndSteps checks posted closures never overlap a step
func TestLoopSerializesEventsAndSteps(t *testing.T) {
	var inside atomic.Int32
	var overlap atomic.Bool
	enter := func() {
		if inside.Add(1) != 1 {
			overlap.Store(true)
		}
		time.Sleep(50 * time.Microsecond)
		inside.Add(-1)
	}

	l := NewLoop(enter, nil, time.Millisecond)
	l.Start()
	defer l.Stop()

	var posted atomic.Int64
	for i := 0; i < 200; i++ {
		if l.Post(func() { enter(); posted.Add(1) }) {
			continue
		}
		time.Sleep(time.Millisecond)
	}
	waitFor(t, func() bool { return l.Ticks() >= 10 }, 2*time.Second)

	if overlap.Load() {
		t.Error("Event closure ran concurrently with a step")
	}
	if posted.Load() == 0 {
		t.Error("Expected posted closures to run")
	}
}

func TestLoopPauseStopsStepping(t *testing.T) {
	var frames atomic.Int64
	l := NewLoop(func() {}, func() { frames.Add(1) }, time.Millisecond)
	l.SetPaused(true)
	l.Start()
	defer l.Stop()

	waitFor(t, func() bool { return frames.Load() >= 5 }, 2*time.Second)
	if l.Ticks() != 0 {
		t.Errorf("Expected no steps while paused, got %d", l.Ticks())
	}

	l.SetPaused(false)
	waitFor(t, func() bool { return l.Ticks() > 0 }, 2*time.Second)
}

func TestLoopStopIsIdempotent(t *testing.T) {
	l := NewLoop(func() {}, nil, time.Millisecond)
	l.Start()
	l.Stop()
	l.Stop()

	if l.Post(func() {}) {
		t.Error("Expected Post to fail after Stop")
	}

	ticks := l.Ticks()
	time.Sleep(10 * time.Millisecond)
	if l.Ticks() != ticks {
		t.Errorf("Expected no ticks after Stop, went %d -> %d", ticks, l.Ticks())
	}
}

func TestLoopStopWithoutStart(t *testing.T) {
	l := NewLoop(func() {}, nil, 0)
	l.Stop()
	if l.Post(func() {}) {
		t.Error("Expected Post to fail on stopped loop")
	}
}
