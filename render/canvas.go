// Package render draws the spot plane and pulse rings to a tcell screen
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/pulsefield/engine"
	"github.com/lixenwraith/pulsefield/parameter"
	"github.com/lixenwraith/pulsefield/vmath"
)

// ring is the drawable state of one pulse
type ring struct {
	origin  vmath.Point
	radius  float64
	opacity float64
	note    engine.Note
}

// Canvas implements engine.Renderer over a cell buffer
// Shape calls and Draw must come from the same goroutine
type Canvas struct {
	view  Viewport
	buf   *Buffer
	rings map[engine.ShapeHandle]*ring
	order []engine.ShapeHandle // creation order, older rings draw first
	next  engine.ShapeHandle
}

var _ engine.Renderer = (*Canvas)(nil)

// NewCanvas creates a canvas width x height cells
func NewCanvas(view Viewport, width, height int) *Canvas {
	return &Canvas{
		view:  view,
		buf:   NewBuffer(width, height),
		rings: make(map[engine.ShapeHandle]*ring),
	}
}

func (c *Canvas) CreatePulseShape(origin vmath.Point, radius float64, note engine.Note) engine.ShapeHandle {
	c.next++
	c.rings[c.next] = &ring{origin: origin, radius: radius, opacity: parameter.PulseInitialOpacity, note: note}
	c.order = append(c.order, c.next)
	return c.next
}

func (c *Canvas) UpdateShape(h engine.ShapeHandle, radius, opacity float64) {
	if r, ok := c.rings[h]; ok {
		r.radius, r.opacity = radius, opacity
	}
}

func (c *Canvas) RemoveShape(h engine.ShapeHandle) {
	if _, ok := c.rings[h]; !ok {
		return
	}
	delete(c.rings, h)
	for i, o := range c.order {
		if o == h {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Rings returns the number of live shapes
func (c *Canvas) Rings() int {
	return len(c.rings)
}

// Resize changes the cell grid, plane coordinates are untouched
func (c *Canvas) Resize(width, height int) {
	c.buf.Resize(width, height)
}

// Viewport returns the plane-to-cell mapping
func (c *Canvas) Viewport() Viewport {
	return c.view
}

// Buffer exposes the composited frame
func (c *Canvas) Buffer() *Buffer {
	return c.buf
}

// Status is the summary shown on the bottom row
// Audio counters are shown only when Audio is set
type Status struct {
	Spots, Active, Pulses int
	Ticks                 uint64
	Paused, Muted         bool

	Audio           bool
	Voices          int
	Played, Dropped uint64
}

func (s Status) String() string {
	line := fmt.Sprintf(" spots %d  active %d  pulses %d  tick %d", s.Spots, s.Active, s.Pulses, s.Ticks)
	if s.Audio {
		line += fmt.Sprintf("  voices %d  played %d  dropped %d", s.Voices, s.Played, s.Dropped)
	}
	if s.Paused {
		line += "  [paused]"
	}
	if s.Muted {
		line += "  [muted]"
	}
	return line
}

// Compose renders rings, spots and the status line into the buffer
func (c *Canvas) Compose(spots []engine.Spot, status Status) {
	c.buf.Clear()

	for _, h := range c.order {
		c.drawRing(c.rings[h])
	}
	for _, s := range spots {
		c.drawSpot(s)
	}

	_, height := c.buf.Size()
	if height > 0 {
		c.buf.SetText(0, height-1, status.String(), StatusFg)
	}
}

// Draw composes a frame and shows it on screen
func (c *Canvas) Draw(screen tcell.Screen, spots []engine.Spot, status Status) {
	c.Compose(spots, status)
	c.buf.Flush(screen)
	screen.Show()
}

// drawRing samples the circle often enough to leave no gaps between cells
func (c *Canvas) drawRing(r *ring) {
	if r.opacity <= 0 {
		return
	}
	cells := 2 * math.Pi * r.radius / min(c.view.UnitsPerCol, c.view.UnitsPerRow)
	segments := max(parameter.RingSegmentsMin, int(math.Ceil(cells*2)))

	color := NoteColor(r.note)
	step := 2 * math.Pi / float64(segments)
	for i := 0; i < segments; i++ {
		a := float64(i) * step
		p := vmath.PAdd(r.origin, vmath.Pt(r.radius*math.Cos(a), r.radius*math.Sin(a)))
		x, y := c.view.ToCell(p)
		c.buf.Set(x, y, parameter.GlyphRing, color, BlendMax, r.opacity)
	}
}

func (c *Canvas) drawSpot(s engine.Spot) {
	alpha := parameter.SpotOpacityResting
	if s.State == engine.SpotDragging {
		alpha = parameter.SpotOpacityDragging
	}
	x, y := c.view.ToCell(s.Position)
	c.buf.Set(x, y, parameter.GlyphSpot, NoteColor(s.Note), BlendAlpha, alpha)
}
