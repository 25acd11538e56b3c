// Package viewport maintains the per-frame coordinate mapping between
// the three coordinate spaces of the editor plane:
//
//   - vertex space: the stable integer grid underlying the plane
//   - pixeloid space: the logical grid, vertex space plus a fractional
//     panning offset
//   - screen space: device pixels, pixeloid space scaled and offset by
//     the current view
//
// A Mapping is an immutable value computed once per frame from the
// current pan/zoom state and threaded read-only through every rendering
// component, so visual alignment across layers holds by construction.
package viewport

import (
	"errors"
	"math"

	"github.com/pixeloid/pixeloid"
)

// ErrNonPositiveScale is returned when a view's pixeloid scale is zero
// or negative. It is the only failure mode of mapping construction.
var ErrNonPositiveScale = errors.New("viewport: pixeloid scale must be positive")

// IntPoint is a point on the integer vertex grid.
type IntPoint struct {
	X, Y int
}

// IntRect is an integer rectangle in vertex space.
type IntRect struct {
	Min, Max IntPoint
}

// Width returns the horizontal extent in vertex cells.
func (r IntRect) Width() int { return r.Max.X - r.Min.X }

// Height returns the vertical extent in vertex cells.
func (r IntRect) Height() int { return r.Max.Y - r.Min.Y }

// View is the raw pan/zoom state a frame is rendered under.
type View struct {
	// Scale is the pixeloid scale: device pixels per pixeloid unit.
	Scale float64

	// Origin is the pixeloid coordinate appearing at screen (0, 0).
	Origin pixeloid.Point

	// WidthPx and HeightPx are the viewport dimensions in device pixels.
	WidthPx, HeightPx int
}

// Mapping is the immutable coordinate state for one frame.
//
// Invariant: Offset and VertexBounds are mutually consistent.
// VertexBounds.Min is the floor of Origin, and Offset is the sub-cell
// remainder Origin - floor(Origin), so the screen position of the
// vertex-grid origin is exactly -Offset*Scale.
type Mapping struct {
	// Scale is the pixeloid scale: device pixels per pixeloid unit.
	Scale float64

	// Origin is the pixeloid coordinate at screen (0, 0).
	Origin pixeloid.Point

	// Offset is the sub-cell panning remainder, both components in [0, 1).
	Offset pixeloid.Point

	// VertexBounds is the integer vertex rectangle covering the view.
	VertexBounds IntRect
}

// NewMapping computes the mapping for a view. It rejects a non-positive
// scale; there are no other failure modes.
func NewMapping(v View) (Mapping, error) {
	if v.Scale <= 0 || math.IsInf(v.Scale, 0) || math.IsNaN(v.Scale) {
		return Mapping{}, ErrNonPositiveScale
	}

	origin := v.Origin
	snapped := origin.Floor()

	extentX := float64(v.WidthPx) / v.Scale
	extentY := float64(v.HeightPx) / v.Scale

	return Mapping{
		Scale:  v.Scale,
		Origin: origin,
		Offset: origin.Sub(snapped),
		VertexBounds: IntRect{
			Min: IntPoint{X: int(snapped.X), Y: int(snapped.Y)},
			Max: IntPoint{
				X: int(math.Ceil(origin.X + extentX)),
				Y: int(math.Ceil(origin.Y + extentY)),
			},
		},
	}, nil
}

// ToScreen converts a pixeloid-space point to screen (device pixel)
// coordinates: a scale-then-offset affine map.
func (m Mapping) ToScreen(p pixeloid.Point) pixeloid.Point {
	return p.Sub(m.Origin).Mul(m.Scale)
}

// ToPixeloid converts a screen-space point back to pixeloid space.
// It is the exact inverse of ToScreen.
func (m Mapping) ToPixeloid(screen pixeloid.Point) pixeloid.Point {
	return screen.Div(m.Scale).Add(m.Origin)
}

// VertexToPixeloid converts an integer vertex coordinate to pixeloid
// space. The vertex grid is the integer lattice of pixeloid space.
func (m Mapping) VertexToPixeloid(v IntPoint) pixeloid.Point {
	return pixeloid.Pt(float64(v.X), float64(v.Y))
}

// VertexToScreen converts an integer vertex coordinate directly to
// screen coordinates.
func (m Mapping) VertexToScreen(v IntPoint) pixeloid.Point {
	return m.ToScreen(m.VertexToPixeloid(v))
}

// ScreenRect converts a pixeloid-space rectangle to screen coordinates.
func (m Mapping) ScreenRect(r pixeloid.Rect) pixeloid.Rect {
	minPt := m.ToScreen(r.Min())
	maxPt := m.ToScreen(r.Max())
	return pixeloid.Rect{MinX: minPt.X, MinY: minPt.Y, MaxX: maxPt.X, MaxY: maxPt.Y}
}

// VisibleBounds returns the pixeloid-space rectangle covered by the
// vertex bounds of the view.
func (m Mapping) VisibleBounds() pixeloid.Rect {
	return pixeloid.Rect{
		MinX: float64(m.VertexBounds.Min.X),
		MinY: float64(m.VertexBounds.Min.Y),
		MaxX: float64(m.VertexBounds.Max.X),
		MaxY: float64(m.VertexBounds.Max.Y),
	}
}
