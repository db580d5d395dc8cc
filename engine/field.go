package engine

import "github.com/lixenwraith/pulsefield/spatial"

// Collaborators are the outside capabilities injected into a Field
// Nil members fall back to a system clock and silent no-op sinks
type Collaborators struct {
	Renderer Renderer
	Audio    AudioSink
	Clock    Clock
}

// Field is one simulation session: index, spot registry and pulse simulation
// Not safe for concurrent use, drive it from a single goroutine (see Loop)
type Field struct {
	Index  *spatial.Index[SpotID]
	Spots  *Registry
	Pulses *Simulation
	tuning Tuning
}

// NewField wires a session, t must pass Validate
func NewField(t Tuning, c Collaborators) *Field {
	if c.Clock == nil {
		c.Clock = SystemClock{}
	}

	index := spatial.New[SpotID]()
	sim := NewSimulation(index, c.Renderer, c.Audio, t)
	reg := NewRegistry(index, c.Clock, sim, t)
	sim.attach(reg)

	return &Field{
		Index:  index,
		Spots:  reg,
		Pulses: sim,
		tuning: t,
	}
}

// Step advances the simulation one tick
func (f *Field) Step() {
	f.Pulses.Step()
}

// Tuning returns the session parameters
func (f *Field) Tuning() Tuning {
	return f.tuning
}
