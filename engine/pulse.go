package engine

import (
	"slices"

	"github.com/lixenwraith/pulsefield/spatial"
	"github.com/lixenwraith/pulsefield/vmath"
)

// Pulse is one expanding, decaying ring
// Origin and Note are copies, a pulse outlives the spot that emitted it
type Pulse struct {
	ID       PulseID
	Origin   vmath.Point
	Note     Note
	Strength float64 // initiating intensity, (0, 1]
	Radius   float64
	Opacity  float64
	Weight   float64 // trigger capacity left, 0 means visual only
	Age      int     // completed decay steps

	shape     ShapeHandle
	triggered map[SpotID]struct{}
	lastSeen  []spatial.Neighbor[SpotID]
}

func newPulse(id PulseID, origin vmath.Point, note Note, strength float64, t Tuning) *Pulse {
	return &Pulse{
		ID:        id,
		Origin:    origin,
		Note:      note,
		Strength:  strength,
		Radius:    t.SpotRadius,
		Opacity:   t.InitialOpacity,
		Weight:    strength,
		triggered: make(map[SpotID]struct{}),
	}
}

// advance applies one tick of decay and growth
// Growth slows with radius: dr = strength * boost * base / r
func (p *Pulse) advance(t Tuning) {
	p.Age++
	p.Opacity = t.opacityAt(p.Age)
	p.Weight = t.weightAt(p.Strength, p.Age)
	p.Radius += p.Strength * t.RadiusBoost * t.SpotRadius / p.Radius
}

// Expired reports whether the next step removes the pulse
func (p *Pulse) Expired(t Tuning) bool {
	return p.Opacity <= t.OpacityThreshold
}

// CanTrigger reports whether the pulse still carries weight
func (p *Pulse) CanTrigger() bool {
	return p.Weight > 0
}

// HasTriggered reports whether this pulse already fired spot id
func (p *Pulse) HasTriggered(id SpotID) bool {
	_, ok := p.triggered[id]
	return ok
}

// Triggered returns the spots fired by this pulse, ascending
func (p *Pulse) Triggered() []SpotID {
	ids := make([]SpotID, 0, len(p.triggered))
	for id := range p.triggered {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// LastSeen returns the in-range set recorded on the previous tick
func (p *Pulse) LastSeen() []spatial.Neighbor[SpotID] {
	return slices.Clone(p.lastSeen)
}

// Shape returns the renderer handle
func (p *Pulse) Shape() ShapeHandle {
	return p.shape
}

func (p *Pulse) markTriggered(id SpotID) {
	p.triggered[id] = struct{}{}
}
