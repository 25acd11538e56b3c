package filter

import (
	"testing"

	"github.com/pixeloid/pixeloid"
)

// gradient fills a pixmap with a horizontal ramp so block averaging is
// observable.
func gradient(w, h int) *pixeloid.Pixmap {
	pm := pixeloid.NewPixmap(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := float64(x) / float64(w-1)
			pm.SetPixel(x, y, pixeloid.RGBA{R: v, G: v, B: v, A: 1})
		}
	}
	return pm
}

func TestPixelate_BlocksAreUniform(t *testing.T) {
	src := gradient(16, 16)
	dst := pixeloid.NewPixmap(16, 16)
	f := NewPixelate(4)
	f.Apply(src, dst, pixeloid.NewRect(0, 0, 16, 16))

	// Every pixel inside a 4x4 block matches the block's first pixel.
	for by := 0; by < 16; by += 4 {
		for bx := 0; bx < 16; bx += 4 {
			want := dst.GetPixel(bx, by)
			for y := by; y < by+4; y++ {
				for x := bx; x < bx+4; x++ {
					if got := dst.GetPixel(x, y); got != want {
						t.Fatalf("block (%d,%d): pixel (%d,%d) = %v, want %v", bx, by, x, y, got, want)
					}
				}
			}
		}
	}

	// The ramp survives at block granularity: leftmost and rightmost
	// blocks differ.
	if dst.GetPixel(0, 0) == dst.GetPixel(15, 0) {
		t.Error("pixelation flattened the whole image to one block")
	}
}

func TestPixelate_BlockSizeOneIsIdentity(t *testing.T) {
	src := gradient(8, 8)
	dst := pixeloid.NewPixmap(8, 8)
	NewPixelate(1).Apply(src, dst, pixeloid.NewRect(0, 0, 8, 8))

	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if dst.GetPixel(x, y) != src.GetPixel(x, y) {
				t.Fatalf("pixel (%d,%d) changed under identity block size", x, y)
			}
		}
	}
}

func TestPixelate_RespectsBounds(t *testing.T) {
	src := gradient(16, 16)
	dst := pixeloid.NewPixmap(16, 16)
	NewPixelate(4).Apply(src, dst, pixeloid.NewRect(0, 0, 8, 8))

	// Outside the region dst stays untouched (transparent).
	if got := dst.GetPixel(12, 12); got != pixeloid.Transparent {
		t.Errorf("pixel outside bounds = %v, want transparent", got)
	}
	if got := dst.GetPixel(2, 2); got == pixeloid.Transparent {
		t.Error("pixel inside bounds not written")
	}
}

func TestPixelate_Comparable(t *testing.T) {
	if NewPixelate(4) != NewPixelate(4) {
		t.Error("equal descriptors compare unequal")
	}
	if NewPixelate(4) == NewPixelate(8) {
		t.Error("different block sizes compare equal")
	}
}

func TestPixelate_ExpandBoundsIdentity(t *testing.T) {
	in := pixeloid.NewRect(3, 4, 10, 12)
	if got := NewPixelate(6).ExpandBounds(in); got != in {
		t.Errorf("ExpandBounds = %v, want %v", got, in)
	}
}

func TestTint_BlendsTowardColor(t *testing.T) {
	src := pixeloid.NewPixmap(2, 1)
	src.SetPixel(0, 0, pixeloid.RGBA{R: 1, A: 1})        // opaque red
	src.SetPixel(1, 0, pixeloid.RGBA{R: 1, G: 1, B: 1}) // transparent

	dst := pixeloid.NewPixmap(2, 1)
	f := NewTint(pixeloid.RGBA{B: 1, A: 1}, 0.5)
	f.Apply(src, dst, pixeloid.NewRect(0, 0, 2, 1))

	got := dst.GetPixel(0, 0)
	if got.R < 0.45 || got.R > 0.55 || got.B < 0.45 || got.B > 0.55 {
		t.Errorf("blended pixel = %v, want half red half blue", got)
	}
	if got.A != 1 {
		t.Errorf("alpha changed: %g", got.A)
	}

	// Fully transparent pixels pass through unmodified.
	if got := dst.GetPixel(1, 0); got.A != 0 {
		t.Errorf("transparent pixel tinted: %v", got)
	}
}

func TestTint_ClampsAmount(t *testing.T) {
	if f := NewTint(pixeloid.White, 2); f.Amount != 1 {
		t.Errorf("Amount = %g, want 1", f.Amount)
	}
	if f := NewTint(pixeloid.White, -1); f.Amount != 0 {
		t.Errorf("Amount = %g, want 0", f.Amount)
	}
}
