package engine

import (
	"log"

	"github.com/lixenwraith/pulsefield/vmath"
)

// Renderer draws pulse rings, the engine only sets radius and opacity
type Renderer interface {
	CreatePulseShape(origin vmath.Point, radius float64, note Note) ShapeHandle
	UpdateShape(h ShapeHandle, radius, opacity float64)
	RemoveShape(h ShapeHandle)
}

// AudioSink plays one tone per pulse, fire-and-forget
// Errors are logged and dropped, they never alter simulation state
type AudioSink interface {
	Play(note Note, volume float64) error
}

// NopRenderer discards all drawing, hands out unique handles
type NopRenderer struct {
	next ShapeHandle
}

func (r *NopRenderer) CreatePulseShape(vmath.Point, float64, Note) ShapeHandle {
	r.next++
	return r.next
}

func (r *NopRenderer) UpdateShape(ShapeHandle, float64, float64) {}
func (r *NopRenderer) RemoveShape(ShapeHandle)                   {}

// NopAudio is a silent sink
type NopAudio struct{}

func (NopAudio) Play(Note, float64) error { return nil }

// boundary wraps collaborators so their failures degrade to a glitch
type boundary struct {
	renderer Renderer
	audio    AudioSink
}

func (b boundary) createShape(origin vmath.Point, radius float64, note Note) (h ShapeHandle) {
	defer b.guard("CreatePulseShape")
	return b.renderer.CreatePulseShape(origin, radius, note)
}

func (b boundary) updateShape(h ShapeHandle, radius, opacity float64) {
	defer b.guard("UpdateShape")
	b.renderer.UpdateShape(h, radius, opacity)
}

func (b boundary) removeShape(h ShapeHandle) {
	defer b.guard("RemoveShape")
	b.renderer.RemoveShape(h)
}

func (b boundary) play(note Note, volume float64) {
	defer b.guard("Play")
	if err := b.audio.Play(note, volume); err != nil {
		log.Printf("audio: play note %d failed: %v", note, err)
	}
}

func (boundary) guard(op string) {
	if r := recover(); r != nil {
		log.Printf("collaborator %s panicked: %v", op, r)
	}
}
