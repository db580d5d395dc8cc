package engine

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/pulsefield/spatial"
	"github.com/lixenwraith/pulsefield/vmath"
)

// Simulation owns the live pulses and advances them one logical tick per Step
type Simulation struct {
	tuning  Tuning
	index   *spatial.Index[SpotID]
	spots   *Registry
	policy  TriggerPolicy
	collab  boundary
	pulses  []*Pulse // creation order
	nextID  PulseID
	ticks   uint64
	removed uint64
}

// NewSimulation creates an empty simulation reading index
// The registry is attached by NewField, triggers need it to fire spots
func NewSimulation(index *spatial.Index[SpotID], renderer Renderer, audio AudioSink, t Tuning) *Simulation {
	if renderer == nil {
		renderer = &NopRenderer{}
	}
	if audio == nil {
		audio = NopAudio{}
	}
	return &Simulation{
		tuning: t,
		index:  index,
		collab: boundary{renderer: renderer, audio: audio},
	}
}

func (s *Simulation) attach(spots *Registry) {
	s.spots = spots
	s.policy = NewTriggerPolicy(spots)
}

// Spawn creates a pulse, draws its ring and plays its note
// Called through Registry.Fire
func (s *Simulation) Spawn(origin vmath.Point, note Note, strength float64) *Pulse {
	s.nextID++
	p := newPulse(s.nextID, origin, note, strength, s.tuning)
	p.shape = s.collab.createShape(origin, p.Radius, note)
	// Shapes start fully opaque, sync them to the tuned opacity
	s.collab.updateShape(p.shape, p.Radius, p.Opacity)
	s.pulses = append(s.pulses, p)
	s.collab.play(note, strength*s.tuning.SoundStrength)
	return p
}

// Step advances every live pulse by one tick, newest first
// Pulses spawned by triggers during this step are first advanced on the next one
func (s *Simulation) Step() {
	s.ticks++

	for i := len(s.pulses) - 1; i >= 0; i-- {
		p := s.pulses[i]

		if p.Expired(s.tuning) {
			s.collab.removeShape(p.shape)
			s.pulses = slices.Delete(s.pulses, i, i+1)
			s.removed++
			continue
		}

		p.advance(s.tuning)
		s.collab.updateShape(p.shape, p.Radius, p.Opacity)

		active := s.index.Len()
		if active == 0 || !p.CanTrigger() {
			continue
		}

		points := s.index.Nearest(p.Origin, active, p.Radius*p.Radius)
		if len(points) > len(p.lastSeen) {
			s.trigger(p, points)
		}
		p.lastSeen = points
	}
}

func (s *Simulation) trigger(p *Pulse, points []spatial.Neighbor[SpotID]) {
	id, ok := s.policy.Select(p, points)
	if !ok {
		return
	}
	p.markTriggered(id)
	// Index only holds Active spots and weight > 0 here, a failure is a broken invariant
	if _, err := s.spots.Fire(id, p.Weight); err != nil {
		panic(fmt.Sprintf("pulse %d trigger spot %d: %v", p.ID, id, err))
	}
}

// Len returns the number of live pulses
func (s *Simulation) Len() int {
	return len(s.pulses)
}

// Pulses returns the live pulses in creation order
// The pointers are shared, callers must not mutate them
func (s *Simulation) Pulses() []*Pulse {
	return slices.Clone(s.pulses)
}

// Ticks returns the number of Step calls
func (s *Simulation) Ticks() uint64 {
	return s.ticks
}

// Removed returns how many pulses have decayed out
func (s *Simulation) Removed() uint64 {
	return s.removed
}

// Reset drops every pulse and releases its shape
func (s *Simulation) Reset() {
	for _, p := range s.pulses {
		s.collab.removeShape(p.shape)
	}
	s.pulses = s.pulses[:0]
}
