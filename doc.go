// Package pixeloid implements the rendering core of an infinite-plane
// 2D editor: geometric objects on a logical "pixeloid" grid, rendered
// through composable visual layers backed by a versioned texture cache.
//
// The root package holds the shared value types (Point, Rect, RGBA,
// Pixmap), the Object model with its five shape kinds, and the metadata
// policy that derives grid-aligned bounding boxes per kind.
//
// Subpackages:
//
//   - viewport: the per-frame coordinate mapping between vertex,
//     pixeloid, and screen space
//   - texcache: the versioned texture cache keyed by object identity
//   - compose: layer compositing and per-object filter isolation
//   - filter: filter descriptors (pixelate, tint)
//   - raster: software raster sources for the shape kinds
//   - render: the frame pipeline tying the pieces together
//
// A minimal frame looks like:
//
//	store := myStore()
//	pipe := render.New(store, raster.NewSource(), render.NewPixmapSurface(800, 600))
//	view := viewport.View{Scale: 10, Origin: pixeloid.Pt(0, 0), WidthPx: 800, HeightPx: 600}
//	stats, err := pipe.RenderFrame(view)
package pixeloid
