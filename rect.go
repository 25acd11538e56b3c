package pixeloid

import "math"

// Rect represents an axis-aligned bounding rectangle.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewRect creates a rectangle from its min corner and dimensions.
func NewRect(x, y, width, height float64) Rect {
	return Rect{MinX: x, MinY: y, MaxX: x + width, MaxY: y + height}
}

// EmptyRect returns an empty rectangle (inverted bounds for union operations).
func EmptyRect() Rect {
	return Rect{
		MinX: math.MaxFloat64,
		MinY: math.MaxFloat64,
		MaxX: -math.MaxFloat64,
		MaxY: -math.MaxFloat64,
	}
}

// IsEmpty returns true if the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.MinX >= r.MaxX || r.MinY >= r.MaxY
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Min returns the minimum (top-left) corner.
func (r Rect) Min() Point {
	return Point{X: r.MinX, Y: r.MinY}
}

// Max returns the maximum (bottom-right) corner.
func (r Rect) Max() Point {
	return Point{X: r.MaxX, Y: r.MaxY}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() Point {
	return Point{X: (r.MinX + r.MaxX) / 2, Y: (r.MinY + r.MaxY) / 2}
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	return Rect{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// UnionPoint expands the rectangle to include the point.
func (r Rect) UnionPoint(x, y float64) Rect {
	return Rect{
		MinX: math.Min(r.MinX, x),
		MinY: math.Min(r.MinY, y),
		MaxX: math.Max(r.MaxX, x),
		MaxY: math.Max(r.MaxY, y),
	}
}

// Intersects returns true if r and other overlap.
func (r Rect) Intersects(other Rect) bool {
	return r.MinX < other.MaxX && other.MinX < r.MaxX &&
		r.MinY < other.MaxY && other.MinY < r.MaxY
}

// Contains returns true if the point (x, y) is inside the rectangle.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x < r.MaxX && y >= r.MinY && y < r.MaxY
}

// Translate returns the rectangle moved by (dx, dy).
func (r Rect) Translate(dx, dy float64) Rect {
	return Rect{
		MinX: r.MinX + dx,
		MinY: r.MinY + dy,
		MaxX: r.MaxX + dx,
		MaxY: r.MaxY + dy,
	}
}

// Scale returns the rectangle with all coordinates multiplied by s.
func (r Rect) Scale(s float64) Rect {
	return Rect{
		MinX: r.MinX * s,
		MinY: r.MinY * s,
		MaxX: r.MaxX * s,
		MaxY: r.MaxY * s,
	}
}

// GridAligned returns the rectangle expanded outward to the enclosing
// integer grid cell boundaries (floor of min, ceil of max).
func (r Rect) GridAligned() Rect {
	return Rect{
		MinX: math.Floor(r.MinX),
		MinY: math.Floor(r.MinY),
		MaxX: math.Ceil(r.MaxX),
		MaxY: math.Ceil(r.MaxY),
	}
}

// IsFinite returns true if all coordinates are finite numbers.
func (r Rect) IsFinite() bool {
	return r.Min().IsFinite() && r.Max().IsFinite()
}
