// Package input drives a Field from pointer and keyboard events
package input

import (
	"log"
	"math/rand/v2"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pulsefield/engine"
	"github.com/lixenwraith/pulsefield/parameter"
	"github.com/lixenwraith/pulsefield/vmath"
)

// CellMapper converts terminal cells to plane positions
type CellMapper interface {
	ToPlane(x, y int) vmath.Point
	HitRadius() float64
}

// drag is the spot currently held by the pointer
type drag struct {
	id    engine.SpotID
	start vmath.Point // pointer position at grab
	pos   vmath.Point
	moved bool
}

// Controller applies pointer gestures to a Field
// Not safe for concurrent use, call it from the loop goroutine
type Controller struct {
	field   *engine.Field
	cells   CellMapper
	machine *Machine
	rng     *rand.Rand

	drag  *drag
	hover engine.SpotID // spot under the pointer, 0 for none
}

// NewController binds a controller to field, rng picks notes for new spots (nil seeds one)
func NewController(field *engine.Field, cells CellMapper, machine *Machine, rng *rand.Rand) *Controller {
	if machine == nil {
		machine = NewMachine(nil)
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Controller{field: field, cells: cells, machine: machine, rng: rng}
}

// HandleEvent applies pointer intents and returns the intent for the caller
// System intents (quit, pause, clear, mute, resize) are left to the caller
func (c *Controller) HandleEvent(ev tcell.Event) *Intent {
	in := c.machine.Process(ev)
	if in == nil || !in.IsPointer() {
		return in
	}

	p := c.cells.ToPlane(in.X, in.Y)
	var err error
	switch in.Type {
	case IntentPointerDown:
		err = c.PointerDown(p)
	case IntentPointerMove:
		c.PointerMove(p)
	case IntentPointerUp:
		err = c.PointerUp(p)
	case IntentPointerOver:
		err = c.PointerOver(p)
	}
	if err != nil {
		log.Printf("input: %s at (%d, %d): %v", in.Type, in.X, in.Y, err)
	}
	return in
}

// PointerDown grabs the spot under p, or places a new spot with a random note
func (c *Controller) PointerDown(p vmath.Point) error {
	if c.drag != nil {
		return nil
	}
	if id, ok := c.field.Spots.SpotAt(p, c.cells.HitRadius()); ok {
		if err := c.field.Spots.BeginDrag(id); err != nil {
			return err
		}
		c.drag = &drag{id: id, start: p, pos: p}
		return nil
	}

	note := engine.Note(c.rng.IntN(parameter.NoteCount))
	s, err := c.field.Spots.Place(p, note)
	if err != nil {
		return err
	}
	// Pointer is now over the new spot, entering it must not fire
	c.hover = s.ID
	return nil
}

// PointerMove drags the held spot
func (c *Controller) PointerMove(p vmath.Point) {
	if c.drag == nil {
		return
	}
	c.drag.pos = p
	if p != c.drag.start {
		c.drag.moved = true
	}
}

// PointerUp drops the held spot: moved spots return to play, unmoved ones are deleted
func (c *Controller) PointerUp(p vmath.Point) error {
	if c.drag == nil {
		return nil
	}
	c.PointerMove(p)
	d := c.drag
	c.drag = nil

	c.hover = d.id
	return c.field.Spots.EndDrag(d.id, d.pos, d.moved)
}

// PointerOver fires a spot at full strength when the pointer enters it
// Ignored while a spot is held
func (c *Controller) PointerOver(p vmath.Point) error {
	if c.drag != nil {
		return nil
	}
	id, ok := c.field.Spots.SpotAt(p, c.cells.HitRadius())
	if !ok {
		c.hover = 0
		return nil
	}
	if id == c.hover {
		return nil
	}
	c.hover = id
	_, err := c.field.Spots.Fire(id, parameter.MaxStrength)
	return err
}

// Reset forgets the held spot and hover state, call after the field is cleared
func (c *Controller) Reset() {
	c.drag = nil
	c.hover = 0
}

// Dragging returns the held spot and its pointer position
func (c *Controller) Dragging() (engine.SpotID, vmath.Point, bool) {
	if c.drag == nil {
		return 0, vmath.Point{}, false
	}
	return c.drag.id, c.drag.pos, true
}
