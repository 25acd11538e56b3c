package filter

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/pixeloid/pixeloid"
)

// Pixelate coarsens a region into uniform square blocks of BlockSize
// device pixels. It is a pure descriptor; two Pixelate values with the
// same block size compare equal.
type Pixelate struct {
	// BlockSize is the block edge length in device pixels.
	BlockSize float64
}

// NewPixelate creates a pixelate descriptor. Block sizes below 1 are
// treated as identity at Apply time.
func NewPixelate(blockSize float64) Pixelate {
	return Pixelate{BlockSize: blockSize}
}

// Apply downsamples the region to one sample per block and scales it
// back up, producing the blocky pixelation. Both passes use nearest
// neighbor sampling from x/image/draw.
func (f Pixelate) Apply(src, dst *pixeloid.Pixmap, bounds pixeloid.Rect) {
	minX, minY, maxX, maxY := clampRegion(src, bounds)
	w := maxX - minX
	h := maxY - minY
	if w <= 0 || h <= 0 {
		return
	}

	if f.BlockSize <= 1 {
		if src != dst {
			region := image.Rect(minX, minY, maxX, maxY)
			out := image.NewRGBA(image.Rect(0, 0, w, h))
			draw.Draw(out, out.Bounds(), src.ToImage(), region.Min, draw.Src)
			dst.BlitRGBA(out, minX, minY)
		}
		return
	}

	bw := int(math.Ceil(float64(w) / f.BlockSize))
	bh := int(math.Ceil(float64(h) / f.BlockSize))
	if bw < 1 {
		bw = 1
	}
	if bh < 1 {
		bh = 1
	}

	srcImg := src.ToImage()
	region := image.Rect(minX, minY, maxX, maxY)

	small := image.NewRGBA(image.Rect(0, 0, bw, bh))
	draw.NearestNeighbor.Scale(small, small.Bounds(), srcImg, region, draw.Src, nil)

	big := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(big, big.Bounds(), small, small.Bounds(), draw.Src, nil)

	dst.BlitRGBA(big, minX, minY)
}

// ExpandBounds returns the input unchanged: pixelation never grows its
// output region.
func (f Pixelate) ExpandBounds(input pixeloid.Rect) pixeloid.Rect {
	return input
}
