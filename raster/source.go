// Package raster provides software raster sources for the editor's
// shape kinds. Source draws base geometry; SelectionSource draws
// bounding-box highlights for the selection layer. Both satisfy
// texcache.RasterSource and produce pixmaps at full target resolution.
package raster

import (
	"math"

	"github.com/pixeloid/pixeloid"
	"github.com/pixeloid/pixeloid/texcache"
)

// Source rasterizes the five shape kinds with per-pixel coverage tests
// against the analytic geometry. It is stateless and always ready.
type Source struct{}

// NewSource creates a software raster source.
func NewSource() *Source {
	return &Source{}
}

// Rasterize draws the object into a pixmap sized to its bounds at the
// given pixeloid scale. The pixmap's local origin corresponds to the
// bounding box's min corner.
func (s *Source) Rasterize(obj *pixeloid.Object, md pixeloid.Metadata, scale float64) *pixeloid.Pixmap {
	w, h := texcache.TargetSize(md.Bounds, scale)
	p := pixeloid.NewPixmap(w, h)

	// Half stroke width in pixeloid units. Hairline strokes stay one
	// device pixel wide at any zoom.
	hw := obj.Style.StrokeWidth / 2
	if hw <= 0 {
		hw = 0.5 / scale
	}

	for py := 0; py < h; py++ {
		for px := 0; px < w; px++ {
			// Pixel center in pixeloid space.
			x := md.Bounds.MinX + (float64(px)+0.5)/scale
			y := md.Bounds.MinY + (float64(py)+0.5)/scale

			if c, ok := sample(obj, x, y, hw); ok {
				p.SetPixel(px, py, c)
			}
		}
	}
	return p
}

// sample returns the color of the shape at a pixeloid-space point, or
// false when the point is outside the shape.
func sample(obj *pixeloid.Object, x, y, hw float64) (pixeloid.RGBA, bool) {
	st := obj.Style

	switch sh := obj.Shape.(type) {
	case pixeloid.PointShape:
		// A point owns its whole unit cell.
		return st.Fill, true

	case pixeloid.LineShape:
		d := segmentDistance(x, y, sh.X1, sh.Y1, sh.X2, sh.Y2)
		if d <= hw {
			return st.Stroke, true
		}

	case pixeloid.RectShape:
		sd := rectSignedDistance(x, y, sh)
		if math.Abs(sd) <= hw {
			return st.Stroke, true
		}
		if sd < 0 {
			return st.Fill, true
		}

	case pixeloid.CircleShape:
		d := math.Hypot(x-sh.CX, y-sh.CY)
		if math.Abs(d-sh.R) <= hw {
			return st.Stroke, true
		}
		if d < sh.R {
			return st.Fill, true
		}

	case pixeloid.DiamondShape:
		if sh.RX <= 0 || sh.RY <= 0 {
			return pixeloid.Transparent, false
		}
		v := math.Abs(x-sh.CX)/sh.RX + math.Abs(y-sh.CY)/sh.RY
		band := math.Min(sh.RX, sh.RY)
		if math.Abs(v-1)*band <= hw {
			return st.Stroke, true
		}
		if v < 1 {
			return st.Fill, true
		}
	}
	return pixeloid.Transparent, false
}

// segmentDistance returns the distance from (x, y) to the segment
// (x1, y1)-(x2, y2).
func segmentDistance(x, y, x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(x-x1, y-y1)
	}
	t := ((x-x1)*dx + (y-y1)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return math.Hypot(x-(x1+t*dx), y-(y1+t*dy))
}

// rectSignedDistance returns the signed distance from a point to the
// rectangle boundary: negative inside, positive outside.
func rectSignedDistance(x, y float64, r pixeloid.RectShape) float64 {
	dx := math.Max(r.X-x, x-(r.X+r.Width))
	dy := math.Max(r.Y-y, y-(r.Y+r.Height))
	if dx > 0 || dy > 0 {
		return math.Hypot(math.Max(dx, 0), math.Max(dy, 0))
	}
	return math.Max(dx, dy)
}
