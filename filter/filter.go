// Package filter provides the visual effect descriptors applied to
// compositing layers.
//
// Filters are immutable value descriptors: they carry parameters only,
// never per-application state, so one descriptor can be shared across
// every object of a layer while the compositor scopes its sampling to
// each object's own isolation group. Binding the same descriptor twice
// is a no-op by value equality.
package filter

import "github.com/pixeloid/pixeloid"

// Filter applies a visual effect to a region of pixels.
//
// Apply reads src within bounds and writes the filtered result to dst
// within the same bounds. The sampling region is clamped to bounds by
// the caller's buffer layout: an isolation group hands the filter only
// the object's own texture, so pixels of neighboring objects are
// unreachable by construction.
//
// Implementations must be comparable value types (parameters only).
type Filter interface {
	// Apply processes src and writes the result to dst.
	// bounds specifies the affected region in device pixel coordinates.
	Apply(src, dst *pixeloid.Pixmap, bounds pixeloid.Rect)

	// ExpandBounds returns the output bounds after filter application.
	// Filters that grow their output (e.g. glow) expand here; most
	// return the input unchanged.
	ExpandBounds(input pixeloid.Rect) pixeloid.Rect
}

// clampRegion converts bounds to integer pixel coordinates clamped to
// the pixmap dimensions.
func clampRegion(p *pixeloid.Pixmap, bounds pixeloid.Rect) (minX, minY, maxX, maxY int) {
	minX = int(bounds.MinX)
	minY = int(bounds.MinY)
	maxX = int(bounds.MaxX + 0.5)
	maxY = int(bounds.MaxY + 0.5)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX > p.Width() {
		maxX = p.Width()
	}
	if maxY > p.Height() {
		maxY = p.Height()
	}
	return minX, minY, maxX, maxY
}
