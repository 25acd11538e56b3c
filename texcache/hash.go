package texcache

import (
	"math"

	"github.com/pixeloid/pixeloid"
)

// FNV-1a constants for version hashing.
const (
	fnvOffset = 14695981039346656037
	fnvPrime  = 1099511628211
)

// VersionHash computes the version fingerprint of an object over its
// visually relevant attributes: the shape kind, every shape parameter
// (position and size), the stroke width, and the stroke and fill
// colors. Any attribute that affects visual output must be folded in
// here, or stale textures would be served after an edit.
//
// Pan and zoom state is deliberately absent: camera movement alone must
// never invalidate a cached texture.
func VersionHash(obj *pixeloid.Object) uint64 {
	h := uint64(fnvOffset)
	h = foldByte(h, byte(obj.Shape.Kind()))

	switch s := obj.Shape.(type) {
	case pixeloid.PointShape:
		h = foldFloat(h, s.X)
		h = foldFloat(h, s.Y)
	case pixeloid.LineShape:
		h = foldFloat(h, s.X1)
		h = foldFloat(h, s.Y1)
		h = foldFloat(h, s.X2)
		h = foldFloat(h, s.Y2)
	case pixeloid.RectShape:
		h = foldFloat(h, s.X)
		h = foldFloat(h, s.Y)
		h = foldFloat(h, s.Width)
		h = foldFloat(h, s.Height)
	case pixeloid.CircleShape:
		h = foldFloat(h, s.CX)
		h = foldFloat(h, s.CY)
		h = foldFloat(h, s.R)
	case pixeloid.DiamondShape:
		h = foldFloat(h, s.CX)
		h = foldFloat(h, s.CY)
		h = foldFloat(h, s.RX)
		h = foldFloat(h, s.RY)
	}

	h = foldFloat(h, obj.Style.StrokeWidth)
	h = foldColor(h, obj.Style.Stroke)
	h = foldColor(h, obj.Style.Fill)
	return h
}

// foldByte folds a single byte into an FNV-1a hash.
func foldByte(h uint64, b byte) uint64 {
	h ^= uint64(b)
	h *= fnvPrime
	return h
}

// foldFloat folds the bit pattern of a float64 into an FNV-1a hash.
func foldFloat(h uint64, v float64) uint64 {
	bits := math.Float64bits(v)
	for i := 0; i < 8; i++ {
		h ^= (bits >> (i * 8)) & 0xff
		h *= fnvPrime
	}
	return h
}

// foldColor folds all four color components into an FNV-1a hash.
func foldColor(h uint64, c pixeloid.RGBA) uint64 {
	h = foldFloat(h, c.R)
	h = foldFloat(h, c.G)
	h = foldFloat(h, c.B)
	h = foldFloat(h, c.A)
	return h
}
