package engine

import "errors"

var (
	// ErrUnknownSpot is returned for an id the registry does not hold
	ErrUnknownSpot = errors.New("engine: unknown spot")
	// ErrInvalidState is returned when drag/fire operations arrive out of order
	ErrInvalidState = errors.New("engine: invalid spot state")
	// ErrInvalidNote is returned for a note outside the palette
	ErrInvalidNote = errors.New("engine: invalid note")
	// ErrInvalidStrength is returned for a fire strength outside (0, 1]
	ErrInvalidStrength = errors.New("engine: invalid strength")
	// ErrOccupied is returned when placing a spot on top of an active one
	ErrOccupied = errors.New("engine: position occupied")
)
