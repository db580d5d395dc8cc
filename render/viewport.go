package render

import (
	"math"

	"github.com/lixenwraith/pulsefield/parameter"
	"github.com/lixenwraith/pulsefield/vmath"
)

// Viewport maps plane coordinates to terminal cells
// The plane origin sits at the top-left of cell (0, 0), y grows downward
type Viewport struct {
	UnitsPerCol float64
	UnitsPerRow float64
	SpotRadius  float64 // plane radius of a drawn spot, sets the hit area
}

// DefaultViewport uses the stock cell scale
func DefaultViewport() Viewport {
	return Viewport{UnitsPerCol: parameter.UnitsPerColumn, UnitsPerRow: parameter.UnitsPerRow, SpotRadius: parameter.SpotRadius}
}

// ToCell returns the cell containing p
func (v Viewport) ToCell(p vmath.Point) (x, y int) {
	return int(math.Floor(p.X / v.UnitsPerCol)), int(math.Floor(p.Y / v.UnitsPerRow))
}

// ToPlane returns the plane position at the center of cell x, y
func (v Viewport) ToPlane(x, y int) vmath.Point {
	return vmath.Pt((float64(x)+0.5)*v.UnitsPerCol, (float64(y)+0.5)*v.UnitsPerRow)
}

// HitRadius is the plane distance within which a pointer cell hits a spot
// Never smaller than half a cell so every spot stays clickable
func (v Viewport) HitRadius() float64 {
	return max(v.SpotRadius, 0.5*max(v.UnitsPerCol, v.UnitsPerRow))
}
