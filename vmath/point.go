package vmath

// Point is a position on the continuous spot plane
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

func PAdd(a, b Point) Point {
	return Point{a.X + b.X, a.Y + b.Y}
}

// DistSq returns squared Euclidean distance, no sqrt
// All range comparisons in the engine are done on squared values
func DistSq(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}

// Coord returns the coordinate along axis 0 (X) or 1 (Y)
func (p Point) Coord(axis int) float64 {
	if axis == 0 {
		return p.X
	}
	return p.Y
}
