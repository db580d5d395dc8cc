package parameter

import "time"

// Spot & Pulse Geometry
const (
	// SpotRadius is the drawn spot radius and the starting radius of every pulse
	SpotRadius = 10.0

	// RadiusBoost scales ring growth: dr = strength * RadiusBoost * SpotRadius / r
	RadiusBoost = 20.0

	// NoteCount is the size of the tone/colour palette, notes are [0, NoteCount)
	NoteCount = 6
)

// Pulse Decay
const (
	// PulseInitialOpacity is the ring opacity at emission
	PulseInitialOpacity = 1.0

	// PulseDecrement is subtracted from opacity and weight every tick
	PulseDecrement = 0.01

	// OpacityThreshold removes a pulse once opacity is at or below it
	OpacityThreshold = 0.0

	// MaxStrength is the strength of a user-fired pulse
	MaxStrength = 1.0
)

// Trigger Policy
const (
	// SpotCooldown is the minimum gap between two pulses of the same spot
	SpotCooldown = 1000 * time.Millisecond

	// PlaceClearance is the squared-distance radius within which a new spot collides with an existing one
	// Zero rejects only identical positions
	PlaceClearance = 0.0
)

// Spot Display
const (
	SpotOpacityResting  = 0.7
	SpotOpacityDragging = 0.3
)
