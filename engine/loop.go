package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pulsefield/core"
	"github.com/lixenwraith/pulsefield/parameter"
)

// Loop is the single logical thread of a session
// Posted input closures and ticks (step + frame) run on one goroutine, never
// concurrently, so the Field needs no locking
type Loop struct {
	step    func()
	onFrame func()

	tickInterval     time.Duration
	nextTickDeadline time.Time

	events chan func()
	paused atomic.Bool

	tickCount atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewLoop creates a loop calling step then onFrame every tickInterval
// onFrame may be nil
func NewLoop(step, onFrame func(), tickInterval time.Duration) *Loop {
	if tickInterval <= 0 {
		tickInterval = parameter.TickInterval
	}
	return &Loop{
		step:         step,
		onFrame:      onFrame,
		tickInterval: tickInterval,
		events:       make(chan func(), parameter.LoopEventQueueSize),
		stopChan:     make(chan struct{}),
	}
}

// Start begins the loop goroutine
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		core.Go(l.run)
	}
}

// Stop halts the loop immediately, pending events are dropped
// Entities keep their last computed state
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
		if l.running.CompareAndSwap(true, false) {
			l.wg.Wait()
		}
	})
}

// Post queues fn to run on the loop goroutine between ticks
// Returns false if the loop is stopped or the queue is full
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.stopChan:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	default:
		return false
	}
}

// SetPaused suspends stepping, events and frames still run
func (l *Loop) SetPaused(paused bool) {
	l.paused.Store(paused)
}

// Paused reports the pause flag
func (l *Loop) Paused() bool {
	return l.paused.Load()
}

// Ticks returns the number of completed steps
func (l *Loop) Ticks() uint64 {
	return l.tickCount.Load()
}

func (l *Loop) run() {
	defer l.wg.Done()

	timer := time.NewTimer(l.tickInterval)
	defer timer.Stop()
	l.nextTickDeadline = time.Now().Add(l.tickInterval)

	for {
		select {
		case <-l.stopChan:
			return

		case fn := <-l.events:
			fn()

		case <-timer.C:
			l.tick()

			now := time.Now()
			l.nextTickDeadline = l.nextTickDeadline.Add(l.tickInterval)
			// Drop missed ticks instead of bursting to catch up
			if now.Sub(l.nextTickDeadline) > l.tickInterval*2 {
				l.nextTickDeadline = now.Add(l.tickInterval)
			}
			timer.Reset(max(0, l.nextTickDeadline.Sub(now)))
		}
	}
}

func (l *Loop) tick() {
	if !l.paused.Load() {
		l.step()
		l.tickCount.Add(1)
	}
	if l.onFrame != nil {
		l.onFrame()
	}
}
