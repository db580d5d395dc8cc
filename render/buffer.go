package render

import "github.com/gdamore/tcell/v2"

// Cell is one composited terminal cell
type Cell struct {
	Rune rune
	Fg   RGB
	Bg   RGB
}

// Buffer is a compositor over a cell array, flushed to the screen once per frame
type Buffer struct {
	cells  []Cell
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts buffer dimensions, reallocates only if capacity insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
	} else {
		b.cells = b.cells[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells to empty background using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{Rune: ' ', Fg: Background, Bg: Background}
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
	}
}

// Size returns width and height in cells
func (b *Buffer) Size() (int, int) {
	return b.width, b.height
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Get returns the cell at x, y, zero Cell when out of bounds
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Set composites a glyph with fg at alpha over the cell background
func (b *Buffer) Set(x, y int, r rune, fg RGB, mode BlendMode, alpha float64) {
	if !b.inBounds(x, y) {
		return
	}
	dst := &b.cells[y*b.width+x]
	src := dst.Bg.Blend(fg, alpha)

	switch mode {
	case BlendReplace:
		dst.Rune, dst.Fg = r, fg
	case BlendAlpha:
		dst.Rune, dst.Fg = r, src
	case BlendMax:
		if dst.Rune == ' ' {
			dst.Rune, dst.Fg = r, src
			return
		}
		// Overlapping rings keep the brighter glyph
		if luma(src) >= luma(dst.Fg) {
			dst.Rune = r
		}
		dst.Fg = dst.Fg.Max(src)
	}
}

// SetText writes s left to right from x, y
func (b *Buffer) SetText(x, y int, s string, fg RGB) {
	for _, r := range s {
		b.Set(x, y, r, fg, BlendReplace, 1)
		x++
	}
}

// Flush writes the buffer to screen, the caller calls Show
func (b *Buffer) Flush(screen tcell.Screen) {
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			style := tcell.StyleDefault.Foreground(c.Fg.Color()).Background(c.Bg.Color())
			screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
}

func luma(c RGB) int {
	return 299*int(c.R) + 587*int(c.G) + 114*int(c.B)
}
