package engine

import (
	"cmp"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/lixenwraith/pulsefield/spatial"
	"github.com/lixenwraith/pulsefield/vmath"
)

// Spot is a user-placed emitter
type Spot struct {
	ID       SpotID
	Position vmath.Point
	Note     Note
	LastFire time.Time // zero until first pulse
	State    SpotState
}

// Spawner creates pulses, implemented by Simulation
type Spawner interface {
	Spawn(origin vmath.Point, note Note, strength float64) *Pulse
}

// Registry owns every spot and its membership in the spatial index
// Only Active spots are indexed
type Registry struct {
	spots   map[SpotID]*Spot
	index   *spatial.Index[SpotID]
	clock   Clock
	spawner Spawner
	tuning  Tuning
	nextID  SpotID
}

// NewRegistry creates an empty registry over index
func NewRegistry(index *spatial.Index[SpotID], clock Clock, spawner Spawner, t Tuning) *Registry {
	return &Registry{
		spots:   make(map[SpotID]*Spot),
		index:   index,
		clock:   clock,
		spawner: spawner,
		tuning:  t,
	}
}

// Place creates an Active spot at pos
func (r *Registry) Place(pos vmath.Point, note Note) (Spot, error) {
	if !note.Valid() {
		return Spot{}, fmt.Errorf("%w: %d", ErrInvalidNote, note)
	}
	if hits := r.index.Nearest(pos, 1, r.tuning.PlaceClearance); len(hits) > 0 {
		return Spot{}, fmt.Errorf("%w: spot %d at (%g, %g)", ErrOccupied, hits[0].Payload, hits[0].Pos.X, hits[0].Pos.Y)
	}

	r.nextID++
	s := &Spot{ID: r.nextID, Position: pos, Note: note, State: SpotActive}
	if err := r.index.Insert(pos, s.ID); err != nil {
		return Spot{}, fmt.Errorf("place spot %d: %w", s.ID, err)
	}
	r.spots[s.ID] = s
	log.Printf("spot %d placed at (%.1f, %.1f) note %d", s.ID, pos.X, pos.Y, note)
	return *s, nil
}

// BeginDrag takes an Active spot out of play
func (r *Registry) BeginDrag(id SpotID) error {
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	if s.State != SpotActive {
		return fmt.Errorf("%w: begin drag on %s spot %d", ErrInvalidState, s.State, id)
	}
	if err := r.index.Remove(s.Position, id); err != nil {
		return fmt.Errorf("begin drag spot %d: %w", id, err)
	}
	s.State = SpotDragging
	return nil
}

// EndDrag drops a dragged spot
// moved: reposition and return to play; not moved: the spot is deleted for good
// A drop onto an occupied position puts the spot back where it was and returns ErrOccupied
func (r *Registry) EndDrag(id SpotID, pos vmath.Point, moved bool) error {
	s, err := r.lookup(id)
	if err != nil {
		return err
	}
	if s.State != SpotDragging {
		return fmt.Errorf("%w: end drag on %s spot %d", ErrInvalidState, s.State, id)
	}

	if !moved {
		s.State = SpotDetached
		delete(r.spots, id)
		log.Printf("spot %d deleted", id)
		return nil
	}

	var blocked error
	if hits := r.index.Nearest(pos, 1, r.tuning.PlaceClearance); len(hits) > 0 {
		blocked = fmt.Errorf("%w: drop spot %d onto spot %d", ErrOccupied, id, hits[0].Payload)
		pos = s.Position
	}

	if err := r.index.Insert(pos, id); err != nil {
		return fmt.Errorf("end drag spot %d: %w", id, err)
	}
	s.Position = pos
	s.State = SpotActive
	return blocked
}

// Fire emits a pulse from an Active spot, the only path that creates pulses
func (r *Registry) Fire(id SpotID, strength float64) (*Pulse, error) {
	s, err := r.lookup(id)
	if err != nil {
		return nil, err
	}
	if s.State != SpotActive {
		return nil, fmt.Errorf("%w: fire %s spot %d", ErrInvalidState, s.State, id)
	}
	if !(strength > 0 && strength <= 1) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidStrength, strength)
	}

	s.LastFire = r.clock.Now()
	return r.spawner.Spawn(s.Position, s.Note, strength), nil
}

// CooldownElapsed reports whether more than the cooldown passed since the spot last fired
// Unknown spots never qualify
func (r *Registry) CooldownElapsed(id SpotID) bool {
	s, ok := r.spots[id]
	if !ok {
		return false
	}
	if s.LastFire.IsZero() {
		return true
	}
	return r.clock.Now().Sub(s.LastFire) > r.tuning.Cooldown
}

// Get returns a copy of spot id
func (r *Registry) Get(id SpotID) (Spot, bool) {
	s, ok := r.spots[id]
	if !ok {
		return Spot{}, false
	}
	return *s, true
}

// Spots returns copies of all spots ordered by id
func (r *Registry) Spots() []Spot {
	out := make([]Spot, 0, len(r.spots))
	for _, s := range r.spots {
		out = append(out, *s)
	}
	slices.SortFunc(out, func(a, b Spot) int { return cmp.Compare(a.ID, b.ID) })
	return out
}

// Len is the number of live spots, dragging included
func (r *Registry) Len() int {
	return len(r.spots)
}

// ActiveCount is the number of indexed spots
func (r *Registry) ActiveCount() int {
	return r.index.Len()
}

// SpotAt hit-tests Active spots within radius of pos, nearest first
func (r *Registry) SpotAt(pos vmath.Point, radius float64) (SpotID, bool) {
	hits := r.index.Nearest(pos, 1, radius*radius)
	if len(hits) == 0 {
		return 0, false
	}
	return hits[0].Payload, true
}

// Clear deletes every spot
func (r *Registry) Clear() {
	for _, s := range r.spots {
		s.State = SpotDetached
	}
	clear(r.spots)
	r.index.Clear()
}

func (r *Registry) lookup(id SpotID) (*Spot, error) {
	s, ok := r.spots[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSpot, id)
	}
	return s, nil
}
