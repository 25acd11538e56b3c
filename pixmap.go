package pixeloid

import "image"

// Pixmap represents a rectangular pixel buffer in RGBA format.
// It is the CPU backing store for cached textures.
type Pixmap struct {
	width  int
	height int
	data   []uint8 // RGBA format, 4 bytes per pixel
}

// NewPixmap creates a new pixmap with the given dimensions.
func NewPixmap(width, height int) *Pixmap {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Pixmap{
		width:  width,
		height: height,
		data:   make([]uint8, width*height*4),
	}
}

// Width returns the width of the pixmap.
func (p *Pixmap) Width() int {
	return p.width
}

// Height returns the height of the pixmap.
func (p *Pixmap) Height() int {
	return p.height
}

// Data returns the raw pixel data (RGBA format).
func (p *Pixmap) Data() []uint8 {
	return p.data
}

// SetPixel sets the color of a single pixel.
func (p *Pixmap) SetPixel(x, y int, c RGBA) {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return
	}
	i := (y*p.width + x) * 4
	p.data[i+0] = uint8(clamp255(c.R * 255))
	p.data[i+1] = uint8(clamp255(c.G * 255))
	p.data[i+2] = uint8(clamp255(c.B * 255))
	p.data[i+3] = uint8(clamp255(c.A * 255))
}

// GetPixel returns the color of a single pixel.
func (p *Pixmap) GetPixel(x, y int) RGBA {
	if x < 0 || x >= p.width || y < 0 || y >= p.height {
		return Transparent
	}
	i := (y*p.width + x) * 4
	return RGBA{
		R: float64(p.data[i+0]) / 255,
		G: float64(p.data[i+1]) / 255,
		B: float64(p.data[i+2]) / 255,
		A: float64(p.data[i+3]) / 255,
	}
}

// Clear fills the entire pixmap with a color.
func (p *Pixmap) Clear(c RGBA) {
	r := uint8(clamp255(c.R * 255))
	g := uint8(clamp255(c.G * 255))
	b := uint8(clamp255(c.B * 255))
	a := uint8(clamp255(c.A * 255))

	for i := 0; i < len(p.data); i += 4 {
		p.data[i+0] = r
		p.data[i+1] = g
		p.data[i+2] = b
		p.data[i+3] = a
	}
}

// Blit draws src onto p at (atX, atY) using source-over alpha blending.
// Pixels falling outside p are discarded.
func (p *Pixmap) Blit(src *Pixmap, atX, atY int) {
	if src == nil {
		return
	}
	for sy := 0; sy < src.height; sy++ {
		dy := atY + sy
		if dy < 0 || dy >= p.height {
			continue
		}
		for sx := 0; sx < src.width; sx++ {
			dx := atX + sx
			if dx < 0 || dx >= p.width {
				continue
			}
			si := (sy*src.width + sx) * 4
			sa := float64(src.data[si+3]) / 255
			if sa == 0 {
				continue
			}
			if sa == 1 {
				di := (dy*p.width + dx) * 4
				copy(p.data[di:di+4], src.data[si:si+4])
				continue
			}
			d := p.GetPixel(dx, dy)
			s := src.GetPixel(sx, sy)
			inv := 1 - sa
			outA := sa + d.A*inv
			p.SetPixel(dx, dy, RGBA{
				R: (s.R*sa + d.R*d.A*inv) / outA,
				G: (s.G*sa + d.G*d.A*inv) / outA,
				B: (s.B*sa + d.B*d.A*inv) / outA,
				A: outA,
			})
		}
	}
}

// BlitRGBA copies an image.RGBA onto p at (atX, atY) without blending.
func (p *Pixmap) BlitRGBA(img *image.RGBA, atX, atY int) {
	if img == nil {
		return
	}
	b := img.Bounds()
	for sy := b.Min.Y; sy < b.Max.Y; sy++ {
		dy := atY + sy - b.Min.Y
		if dy < 0 || dy >= p.height {
			continue
		}
		for sx := b.Min.X; sx < b.Max.X; sx++ {
			dx := atX + sx - b.Min.X
			if dx < 0 || dx >= p.width {
				continue
			}
			si := img.PixOffset(sx, sy)
			di := (dy*p.width + dx) * 4
			copy(p.data[di:di+4], img.Pix[si:si+4])
		}
	}
}

// ToImage converts the pixmap to an image.RGBA.
func (p *Pixmap) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, p.width, p.height))
	copy(img.Pix, p.data)
	return img
}

// FromImage creates a pixmap from an image.
func FromImage(img image.Image) *Pixmap {
	b := img.Bounds()
	p := NewPixmap(b.Dx(), b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			p.SetPixel(x-b.Min.X, y-b.Min.Y, FromColor(img.At(x, y)))
		}
	}
	return p
}
