package pixeloid

import (
	"fmt"
	"math"
)

// Metadata is the derived geometry of an object in pixeloid space: its
// analytic center and a grid-friendly axis-aligned bounding box.
//
// The bounding box always has width and height of at least one pixeloid
// unit. Degenerate shapes (a point, an axis-aligned line) are inflated
// to the enclosing unit cells so that the texture cache and filters,
// which key off area, never see a zero-area box.
type Metadata struct {
	Center Point
	Bounds Rect
}

// ComputeMetadata derives the metadata for a shape. Per-kind policy:
//
//   - Point: the unit cell containing the point
//     (floor(x), floor(y)) to (floor(x)+1, floor(y)+1).
//   - Line: min/max of the two endpoints. Stroke width does not inflate
//     the box; lines are defined by geometry alone.
//   - Rect: exact box from position and size.
//   - Circle: floor(center-radius) to ceil(center+radius) per axis, so
//     the rasterized circle is fully contained and grid-aligned.
//   - Diamond: box spanned by the four vertex extremes.
//
// Any axis whose extent falls below one pixeloid unit is expanded to
// the enclosing grid cells. Shapes with non-finite or negative-size
// parameters are rejected with a GeometryError wrapping
// ErrInvalidGeometry; the calculator never silently clamps.
func ComputeMetadata(s Shape) (Metadata, error) {
	var (
		center Point
		bounds Rect
	)

	switch sh := s.(type) {
	case PointShape:
		p := Point{X: sh.X, Y: sh.Y}
		if !p.IsFinite() {
			return Metadata{}, &GeometryError{Kind: KindPoint, Reason: "non-finite coordinates"}
		}
		center = p
		origin := p.Floor()
		bounds = Rect{MinX: origin.X, MinY: origin.Y, MaxX: origin.X + 1, MaxY: origin.Y + 1}

	case LineShape:
		a := Point{X: sh.X1, Y: sh.Y1}
		b := Point{X: sh.X2, Y: sh.Y2}
		if !a.IsFinite() || !b.IsFinite() {
			return Metadata{}, &GeometryError{Kind: KindLine, Reason: "non-finite endpoints"}
		}
		center = Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
		bounds = Rect{
			MinX: math.Min(a.X, b.X),
			MinY: math.Min(a.Y, b.Y),
			MaxX: math.Max(a.X, b.X),
			MaxY: math.Max(a.Y, b.Y),
		}

	case RectShape:
		p := Point{X: sh.X, Y: sh.Y}
		if !p.IsFinite() || !isFinite(sh.Width) || !isFinite(sh.Height) {
			return Metadata{}, &GeometryError{Kind: KindRect, Reason: "non-finite parameters"}
		}
		if sh.Width < 0 || sh.Height < 0 {
			return Metadata{}, &GeometryError{Kind: KindRect, Reason: fmt.Sprintf("negative size %gx%g", sh.Width, sh.Height)}
		}
		bounds = NewRect(sh.X, sh.Y, sh.Width, sh.Height)
		center = Point{X: sh.X + sh.Width/2, Y: sh.Y + sh.Height/2}

	case CircleShape:
		c := Point{X: sh.CX, Y: sh.CY}
		if !c.IsFinite() || !isFinite(sh.R) {
			return Metadata{}, &GeometryError{Kind: KindCircle, Reason: "non-finite parameters"}
		}
		if sh.R < 0 {
			return Metadata{}, &GeometryError{Kind: KindCircle, Reason: fmt.Sprintf("negative radius %g", sh.R)}
		}
		center = c
		bounds = Rect{
			MinX: math.Floor(sh.CX - sh.R),
			MinY: math.Floor(sh.CY - sh.R),
			MaxX: math.Ceil(sh.CX + sh.R),
			MaxY: math.Ceil(sh.CY + sh.R),
		}

	case DiamondShape:
		c := Point{X: sh.CX, Y: sh.CY}
		if !c.IsFinite() || !isFinite(sh.RX) || !isFinite(sh.RY) {
			return Metadata{}, &GeometryError{Kind: KindDiamond, Reason: "non-finite parameters"}
		}
		if sh.RX < 0 || sh.RY < 0 {
			return Metadata{}, &GeometryError{Kind: KindDiamond, Reason: fmt.Sprintf("negative half-extents %gx%g", sh.RX, sh.RY)}
		}
		center = c
		bounds = Rect{
			MinX: sh.CX - sh.RX,
			MinY: sh.CY - sh.RY,
			MaxX: sh.CX + sh.RX,
			MaxY: sh.CY + sh.RY,
		}

	default:
		return Metadata{}, &GeometryError{Kind: s.Kind(), Reason: "unknown shape kind"}
	}

	bounds = inflateDegenerate(bounds)

	// Unreachable given the policy above; a zero-area box here means the
	// policy itself is broken, not a runtime condition.
	if bounds.Width() < 1 || bounds.Height() < 1 {
		panic(fmt.Sprintf("pixeloid: degenerate bounds %+v for %s after inflation", bounds, s.Kind()))
	}

	return Metadata{Center: center, Bounds: bounds}, nil
}

// inflateDegenerate expands any axis with an extent below one pixeloid
// unit to the enclosing grid cells, guaranteeing a box of at least one
// unit cell that still contains the analytic bounds.
func inflateDegenerate(r Rect) Rect {
	if r.MaxX-r.MinX < 1 {
		r.MinX = math.Floor(r.MinX)
		r.MaxX = math.Ceil(r.MaxX)
		if r.MaxX-r.MinX < 1 {
			r.MaxX = r.MinX + 1
		}
	}
	if r.MaxY-r.MinY < 1 {
		r.MinY = math.Floor(r.MinY)
		r.MaxY = math.Ceil(r.MaxY)
		if r.MaxY-r.MinY < 1 {
			r.MaxY = r.MinY + 1
		}
	}
	return r
}

func isFinite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}
