// Copyright 2026 The pixeloid Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pixeloid/pixeloid"
	"github.com/pixeloid/pixeloid/compose"
	"github.com/pixeloid/pixeloid/filter"
	"github.com/pixeloid/pixeloid/raster"
	"github.com/pixeloid/pixeloid/texcache"
	"github.com/pixeloid/pixeloid/viewport"
)

// FrameStats summarizes one pipeline pass.
type FrameStats struct {
	// Objects is the number of objects listed by the store.
	Objects int
	// Skipped is the number skipped for invalid geometry.
	Skipped int
	// Extracted is the number of textures freshly extracted.
	Extracted int
	// Reused is the number of cache hits.
	Reused int
	// NotReady is the number of deferred extractions.
	NotReady int
	// Presented reports whether the frame reached the surface (false
	// when the early visibility check skipped the frame wholesale).
	Presented bool
}

// Pipeline executes the per-frame rendering pass. It owns the texture
// caches and the compositor; the object store, raster sources, and
// presentation surface are collaborators supplied at construction.
type Pipeline struct {
	store     ObjectStore
	geometry  texcache.RasterSource
	selection texcache.RasterSource
	surface   Surface

	cache    *texcache.Cache // base geometry textures (mirror/pixelate share them)
	selCache *texcache.Cache // selection highlight textures
	comp     *compose.Compositor
	layers   []string
}

// Option configures a Pipeline during creation.
type Option func(*pipelineOptions)

// pipelineOptions holds optional configuration for Pipeline creation.
type pipelineOptions struct {
	layers    []string
	cache     *texcache.Cache
	selection texcache.RasterSource
	pixelate  *filter.Pixelate
}

// WithLayers replaces the default layer set. Names are back to front;
// ordering is fixed for the pipeline's lifetime.
func WithLayers(names ...string) Option {
	return func(o *pipelineOptions) {
		if len(names) > 0 {
			o.layers = names
		}
	}
}

// WithCache injects a preconfigured texture cache (memory budget,
// rescale policy).
func WithCache(c *texcache.Cache) Option {
	return func(o *pipelineOptions) {
		o.cache = c
	}
}

// WithSelectionSource replaces the default selection highlight source.
func WithSelectionSource(src texcache.RasterSource) Option {
	return func(o *pipelineOptions) {
		o.selection = src
	}
}

// WithPixelate binds a pixelate descriptor to the pixelate layer at
// construction.
func WithPixelate(f filter.Pixelate) Option {
	return func(o *pipelineOptions) {
		o.pixelate = &f
	}
}

// New creates a pipeline. The store, base geometry raster source, and
// surface are required collaborators.
func New(store ObjectStore, geometry texcache.RasterSource, surface Surface, opts ...Option) *Pipeline {
	o := pipelineOptions{
		layers:    compose.DefaultLayers(),
		cache:     texcache.New(),
		selection: raster.NewSelectionSource(pixeloid.RGB(0.3, 0.6, 1)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Pipeline{
		store:     store,
		geometry:  geometry,
		selection: o.selection,
		surface:   surface,
		cache:     o.cache,
		selCache:  texcache.New(),
		comp:      compose.NewCompositor(o.layers...),
		layers:    o.layers,
	}
	if o.pixelate != nil {
		if err := p.comp.BindFilter(compose.LayerPixelate, *o.pixelate); err != nil {
			pixeloid.Logger().Warn("pixelate filter not bound",
				slog.Any("error", err))
		}
	}
	return p
}

// Compositor returns the pipeline's compositor for filter binding and
// inspection.
func (p *Pipeline) Compositor() *compose.Compositor {
	return p.comp
}

// Cache returns the base geometry texture cache.
func (p *Pipeline) Cache() *texcache.Cache {
	return p.cache
}

// SetLayerFilter binds a filter descriptor to a layer. Binding the
// descriptor already bound is a no-op.
func (p *Pipeline) SetLayerFilter(layer string, f filter.Filter) error {
	return p.comp.BindFilter(layer, f)
}

// ClearLayerFilter detaches a layer's filter without touching its
// display nodes or cached textures.
func (p *Pipeline) ClearLayerFilter(layer string) {
	p.comp.UnbindFilter(layer)
}

// RenderFrame executes one full pipeline pass under the given view:
// metadata derivation, cache sync, compositor sync, presentation.
// Errors local to a single object (invalid geometry, raster not ready)
// never abort the remaining visible set; the only frame-level failure
// is an invalid view.
func (p *Pipeline) RenderFrame(view viewport.View) (FrameStats, error) {
	var stats FrameStats

	m, err := viewport.NewMapping(view)
	if err != nil {
		return stats, err
	}

	// Early visibility check: with every layer hidden the frame is
	// skipped wholesale.
	anyVisible := false
	for _, name := range p.layers {
		visible := p.store.LayerVisible(name)
		p.comp.SetVisible(name, visible)
		anyVisible = anyVisible || visible
	}
	if !anyVisible {
		return stats, nil
	}

	objs := p.store.ListObjects()
	stats.Objects = len(objs)

	live := make(map[uuid.UUID]bool, len(objs))
	byID := make(map[uuid.UUID]*pixeloid.Object, len(objs))
	mds := make(map[uuid.UUID]pixeloid.Metadata, len(objs))
	items := make([]compose.Item, 0, len(objs))

	for _, obj := range objs {
		live[obj.ID] = true
		byID[obj.ID] = obj

		md, err := pixeloid.ComputeMetadata(obj.Shape)
		if err != nil {
			stats.Skipped++
			pixeloid.Logger().Warn("object skipped",
				slog.String("object", obj.ID.String()),
				slog.Any("error", err))
			// A previously cached texture keeps its display nodes
			// positioned at the last valid bounds.
			if bounds, ok := p.cache.BoundsOf(obj.ID); ok {
				items = append(items, compose.Item{ID: obj.ID, Bounds: bounds})
			}
			continue
		}
		mds[obj.ID] = md

		_, extracted, err := p.cache.GetOrCreate(obj, md, m.Scale, p.geometry)
		switch {
		case errors.Is(err, texcache.ErrRasterNotReady):
			stats.NotReady++
		case extracted:
			stats.Extracted++
		default:
			stats.Reused++
		}
		items = append(items, compose.Item{ID: obj.ID, Bounds: md.Bounds})
	}

	// Deletions: evict cache entries and remove display nodes across
	// every layer in this same pass.
	for _, id := range p.cache.EvictMissing(live) {
		p.comp.RemoveObject(id)
	}

	// Selection highlights are cached separately, keyed by the same
	// version hash so edits refresh them in the same frame.
	selItems, selLive := p.syncSelection(byID, mds, m.Scale)
	p.selCache.EvictMissing(selLive)

	for _, name := range p.layers {
		var syncErr error
		if name == compose.LayerSelection {
			syncErr = p.comp.Sync(name, selItems, p.selCache, m)
		} else {
			syncErr = p.comp.Sync(name, items, p.cache, m)
		}
		if syncErr != nil {
			return stats, syncErr
		}
	}

	if err := p.surface.Present(p.comp); err != nil {
		return stats, err
	}
	stats.Presented = true

	pixeloid.Logger().Debug("frame",
		slog.Int("objects", stats.Objects),
		slog.Int("extracted", stats.Extracted),
		slog.Int("reused", stats.Reused),
		slog.Int("skipped", stats.Skipped),
		slog.Int("not_ready", stats.NotReady))
	return stats, nil
}

// syncSelection extracts highlight textures for the selected ids and
// returns the selection layer's items plus the live highlight set.
func (p *Pipeline) syncSelection(byID map[uuid.UUID]*pixeloid.Object, mds map[uuid.UUID]pixeloid.Metadata, scale float64) ([]compose.Item, map[uuid.UUID]bool) {
	selected := p.store.SelectedIDs()
	selItems := make([]compose.Item, 0, len(selected))
	selLive := make(map[uuid.UUID]bool, len(selected))

	for _, id := range selected {
		obj, ok := byID[id]
		if !ok {
			continue // selection of a deleted object
		}
		md, ok := mds[id]
		if !ok {
			continue // skipped for invalid geometry this frame
		}
		selLive[id] = true
		if _, _, err := p.selCache.GetOrCreate(obj, md, scale, p.selection); err != nil {
			continue
		}
		selItems = append(selItems, compose.Item{ID: id, Bounds: md.Bounds})
	}
	return selItems, selLive
}
