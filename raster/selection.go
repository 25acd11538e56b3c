package raster

import (
	"github.com/pixeloid/pixeloid"
	"github.com/pixeloid/pixeloid/texcache"
)

// SelectionSource rasterizes bounding-box highlight outlines for the
// selection layer. The outline hugs the object's grid-aligned bounds,
// so moving or resizing an object (which changes its version hash)
// refreshes the highlight in the same frame as the geometry.
type SelectionSource struct {
	// Color is the highlight color.
	Color pixeloid.RGBA

	// BorderPx is the outline thickness in device pixels. Values below
	// 1 are treated as 1.
	BorderPx int
}

// NewSelectionSource creates a selection highlight source.
func NewSelectionSource(c pixeloid.RGBA) *SelectionSource {
	return &SelectionSource{Color: c, BorderPx: 2}
}

// Rasterize draws the outline of the object's bounding box into a
// pixmap sized to its bounds at the given scale.
func (s *SelectionSource) Rasterize(obj *pixeloid.Object, md pixeloid.Metadata, scale float64) *pixeloid.Pixmap {
	w, h := texcache.TargetSize(md.Bounds, scale)
	p := pixeloid.NewPixmap(w, h)

	border := s.BorderPx
	if border < 1 {
		border = 1
	}

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			onEdge := px < border || px >= w-border || py < border || py >= h-border
			if onEdge {
				p.SetPixel(px, py, s.Color)
			}
		}
	}
	return p
}
