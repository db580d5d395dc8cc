package parameter

import "time"

// Loop Timing
const (
	// TickInterval is the logical simulation tick (~60 FPS), one Step per tick
	TickInterval = 16 * time.Millisecond

	// LoopEventQueueSize bounds input closures waiting for the loop goroutine
	LoopEventQueueSize = 256
)
