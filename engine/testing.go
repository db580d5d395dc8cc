package engine

import (
	"errors"
	"time"

	"github.com/lixenwraith/pulsefield/vmath"
)

// TestEpoch is the start time of clocks created by NewTestField
var TestEpoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

// ShapeRecord is the last state a RecordingRenderer saw for one shape
type ShapeRecord struct {
	Origin  vmath.Point
	Note    Note
	Radius  float64
	Opacity float64
	Updates int
}

// RecordingRenderer remembers every shape call, for tests
type RecordingRenderer struct {
	Shapes  map[ShapeHandle]*ShapeRecord
	Removed []ShapeHandle
	next    ShapeHandle
}

func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{Shapes: make(map[ShapeHandle]*ShapeRecord)}
}

func (r *RecordingRenderer) CreatePulseShape(origin vmath.Point, radius float64, note Note) ShapeHandle {
	r.next++
	r.Shapes[r.next] = &ShapeRecord{Origin: origin, Note: note, Radius: radius, Opacity: 1}
	return r.next
}

func (r *RecordingRenderer) UpdateShape(h ShapeHandle, radius, opacity float64) {
	if s, ok := r.Shapes[h]; ok {
		s.Radius, s.Opacity = radius, opacity
		s.Updates++
	}
}

func (r *RecordingRenderer) RemoveShape(h ShapeHandle) {
	delete(r.Shapes, h)
	r.Removed = append(r.Removed, h)
}

// Created is the number of shapes ever handed out
func (r *RecordingRenderer) Created() int {
	return int(r.next)
}

// PlayRecord is one AudioSink.Play call
type PlayRecord struct {
	Note   Note
	Volume float64
}

// ErrAudioUnavailable is returned by a failing RecordingAudio
var ErrAudioUnavailable = errors.New("audio unavailable")

// RecordingAudio remembers plays, optionally failing or panicking on each
type RecordingAudio struct {
	Plays []PlayRecord
	Fail  bool
	Panic bool
}

func (a *RecordingAudio) Play(note Note, volume float64) error {
	a.Plays = append(a.Plays, PlayRecord{Note: note, Volume: volume})
	if a.Panic {
		panic("audio device lost")
	}
	if a.Fail {
		return ErrAudioUnavailable
	}
	return nil
}

// NewTestField builds a Field with default tuning, recording collaborators and a manual clock
func NewTestField() (*Field, *RecordingRenderer, *RecordingAudio, *ManualClock) {
	r := NewRecordingRenderer()
	a := &RecordingAudio{}
	c := NewManualClock(TestEpoch)
	f := NewField(DefaultTuning(), Collaborators{Renderer: r, Audio: a, Clock: c})
	return f, r, a, c
}
