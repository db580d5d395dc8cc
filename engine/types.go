package engine

import (
	"fmt"

	"github.com/lixenwraith/pulsefield/parameter"
)

// SpotID is a stable spot identity, never reused within a session
type SpotID uint64

// PulseID orders pulses by creation
type PulseID uint64

// ShapeHandle is an opaque renderer reference for one pulse ring
type ShapeHandle uint64

// Note selects a tone and colour, valid range [0, parameter.NoteCount)
type Note int

// Valid reports whether n is inside the palette
func (n Note) Valid() bool {
	return n >= 0 && int(n) < parameter.NoteCount
}

// SpotState is the lifecycle state of a spot
type SpotState uint8

const (
	// SpotActive spots are indexed and can be triggered
	SpotActive SpotState = iota
	// SpotDragging spots are held by the pointer, out of the index
	SpotDragging
	// SpotDetached spots were deleted, terminal state
	SpotDetached
)

func (s SpotState) String() string {
	switch s {
	case SpotActive:
		return "active"
	case SpotDragging:
		return "dragging"
	case SpotDetached:
		return "detached"
	default:
		return fmt.Sprintf("SpotState(%d)", uint8(s))
	}
}
