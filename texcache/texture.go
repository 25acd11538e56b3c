package texcache

import (
	"github.com/gogpu/gputypes"

	"github.com/pixeloid/pixeloid"
)

// Texture is a rasterized copy of one object, exclusively owned by the
// cache until evicted or replaced. Other components may sample the
// texture within the frame they obtained it but must not retain the
// reference across frames: the cache releases it on the next extraction
// for the same object id.
type Texture struct {
	pixmap   *pixeloid.Pixmap
	released bool
}

func newTexture(p *pixeloid.Pixmap) *Texture {
	return &Texture{pixmap: p}
}

// Pixmap returns the backing pixel buffer, or nil once released.
func (t *Texture) Pixmap() *pixeloid.Pixmap {
	if t.released {
		return nil
	}
	return t.pixmap
}

// Width returns the texture width in device pixels.
func (t *Texture) Width() int {
	if t.released {
		return 0
	}
	return t.pixmap.Width()
}

// Height returns the texture height in device pixels.
func (t *Texture) Height() int {
	if t.released {
		return 0
	}
	return t.pixmap.Height()
}

// Format returns the pixel format of the texture (RGBA8).
func (t *Texture) Format() gputypes.TextureFormat {
	return gputypes.TextureFormatRGBA8Unorm
}

// Released reports whether the cache has released this texture.
func (t *Texture) Released() bool {
	return t.released
}

// release drops the pixel buffer. Called by the cache on replacement
// and eviction; never by consumers.
func (t *Texture) release() {
	t.released = true
	t.pixmap = nil
}

// sizeBytes returns the memory footprint of the texture.
func (t *Texture) sizeBytes() int64 {
	if t.released {
		return 0
	}
	return int64(t.pixmap.Width()) * int64(t.pixmap.Height()) * 4
}
