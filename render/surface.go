// Copyright 2026 The pixeloid Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/pixeloid/pixeloid"
	"github.com/pixeloid/pixeloid/compose"
)

// PixmapSurface is a CPU presentation surface backed by a pixmap.
// Each Present clears the pixmap to the background color and
// composites all visible layers into it.
type PixmapSurface struct {
	pixmap     *pixeloid.Pixmap
	background pixeloid.RGBA
}

// NewPixmapSurface creates a surface with the given device-pixel
// dimensions and a transparent background.
func NewPixmapSurface(width, height int) *PixmapSurface {
	return &PixmapSurface{
		pixmap:     pixeloid.NewPixmap(width, height),
		background: pixeloid.Transparent,
	}
}

// SetBackground sets the clear color used before compositing.
func (s *PixmapSurface) SetBackground(c pixeloid.RGBA) {
	s.background = c
}

// Pixmap returns the surface's backing pixel buffer.
func (s *PixmapSurface) Pixmap() *pixeloid.Pixmap {
	return s.pixmap
}

// Present clears the surface and composites the display tree into it.
func (s *PixmapSurface) Present(c *compose.Compositor) error {
	s.pixmap.Clear(s.background)
	c.Composite(s.pixmap)
	return nil
}
