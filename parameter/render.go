package parameter

// Viewport Defaults
const (
	// UnitsPerColumn is plane units covered by one terminal column
	UnitsPerColumn = 5.0

	// UnitsPerRow is plane units covered by one terminal row, cells are roughly twice as tall as wide
	UnitsPerRow = 10.0

	// RingSegmentsMin is the minimum number of samples used to rasterize a ring
	RingSegmentsMin = 24
)

// Glyphs
const (
	GlyphSpot = '●'
	GlyphRing = '·'
)
