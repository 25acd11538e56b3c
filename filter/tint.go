package filter

import "github.com/pixeloid/pixeloid"

// Tint blends every non-transparent pixel toward a target color by a
// fixed amount, leaving alpha untouched. Used by the selection layer to
// wash highlights over cached textures.
type Tint struct {
	// Color is the target color.
	Color pixeloid.RGBA

	// Amount is the blend factor in [0, 1]. 0 is identity, 1 replaces
	// the color channels entirely.
	Amount float64
}

// NewTint creates a tint descriptor with the amount clamped to [0, 1].
func NewTint(c pixeloid.RGBA, amount float64) Tint {
	if amount < 0 {
		amount = 0
	}
	if amount > 1 {
		amount = 1
	}
	return Tint{Color: c, Amount: amount}
}

// Apply blends the region toward the tint color.
func (f Tint) Apply(src, dst *pixeloid.Pixmap, bounds pixeloid.Rect) {
	minX, minY, maxX, maxY := clampRegion(src, bounds)
	inv := 1 - f.Amount

	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			c := src.GetPixel(x, y)
			if c.A == 0 {
				if src != dst {
					dst.SetPixel(x, y, c)
				}
				continue
			}
			dst.SetPixel(x, y, pixeloid.RGBA{
				R: c.R*inv + f.Color.R*f.Amount,
				G: c.G*inv + f.Color.G*f.Amount,
				B: c.B*inv + f.Color.B*f.Amount,
				A: c.A,
			})
		}
	}
}

// ExpandBounds returns the input unchanged.
func (f Tint) ExpandBounds(input pixeloid.Rect) pixeloid.Rect {
	return input
}
