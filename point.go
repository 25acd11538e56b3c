package pixeloid

import "math"

// Point represents a 2D point or vector in pixeloid space.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Div returns the point divided by a scalar.
func (p Point) Div(s float64) Point {
	return Point{X: p.X / s, Y: p.Y / s}
}

// Floor returns the point with both components rounded down.
// This is the origin of the unit grid cell containing p.
func (p Point) Floor() Point {
	return Point{X: math.Floor(p.X), Y: math.Floor(p.Y)}
}

// Frac returns the sub-cell remainder of the point, i.e. p - p.Floor().
// Both components are in [0, 1).
func (p Point) Frac() Point {
	return p.Sub(p.Floor())
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// IsFinite returns true if both components are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsInf(p.X, 0) && !math.IsNaN(p.X) &&
		!math.IsInf(p.Y, 0) && !math.IsNaN(p.Y)
}
