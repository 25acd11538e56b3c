package compose

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/google/uuid"
	"golang.org/x/image/draw"

	"github.com/pixeloid/pixeloid"
	"github.com/pixeloid/pixeloid/filter"
	"github.com/pixeloid/pixeloid/texcache"
	"github.com/pixeloid/pixeloid/viewport"
)

// Item is one visible object handed to Sync: its identity and its
// bounding box in pixeloid space.
type Item struct {
	ID     uuid.UUID
	Bounds pixeloid.Rect
}

// Compositor owns one display container per logical layer, ordered
// back to front. Layer order is fixed at construction; there is no
// dynamic reordering within a frame.
type Compositor struct {
	layers map[string]*Layer
	order  []string
}

// NewCompositor creates a compositor with the given layer names in
// back-to-front order. With no names it uses DefaultLayers.
func NewCompositor(names ...string) *Compositor {
	if len(names) == 0 {
		names = DefaultLayers()
	}
	c := &Compositor{
		layers: make(map[string]*Layer, len(names)),
		order:  make([]string, len(names)),
	}
	copy(c.order, names)
	for z, name := range names {
		c.layers[name] = newLayer(name, z)
	}
	return c
}

// Order returns the layer names back to front.
func (c *Compositor) Order() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Layer returns the named layer, or nil.
func (c *Compositor) Layer(name string) *Layer {
	return c.layers[name]
}

// Sync reconciles one layer's display nodes against the visible object
// set. For each item it ensures exactly one node exists, bound to the
// cache's current texture and positioned from the item's bounding-box
// origin through the frame mapping. Nodes whose ids are absent from the
// item set (object deleted upstream, not merely hidden) are removed.
//
// The layer's own visibility flag plays no part here: toggling it off
// and back on reproduces the prior content with zero re-extraction.
func (c *Compositor) Sync(name string, items []Item, cache *texcache.Cache, m viewport.Mapping) error {
	layer, ok := c.layers[name]
	if !ok {
		return fmt.Errorf("compose: unknown layer %q", name)
	}

	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		tex, ok := cache.Lookup(item.ID)
		if !ok {
			// No texture yet (raster never ready) or entry evicted;
			// either way there is nothing to display.
			layer.removeNode(item.ID)
			continue
		}
		seen[item.ID] = true

		pos := m.ToScreen(item.Bounds.Min())
		w := item.Bounds.Width() * m.Scale
		h := item.Bounds.Height() * m.Scale

		node, exists := layer.nodes[item.ID]
		if !exists {
			node = &DisplayNode{ID: item.ID}
			layer.nodes[item.ID] = node
			layer.order = append(layer.order, item.ID)
		}
		node.Texture = tex
		node.Pos = pos
		node.Width = w
		node.Height = h

		if layer.filter != nil {
			c.wrapNode(layer, node)
		} else {
			node.group = nil
		}
	}

	for id := range layer.nodes {
		if !seen[id] {
			layer.removeNode(id)
		}
	}
	return nil
}

// SetVisible toggles a layer's aggregate presentation. It is a single
// show/hide: no cache entry is evicted and no display node destroyed.
func (c *Compositor) SetVisible(name string, visible bool) {
	if layer, ok := c.layers[name]; ok {
		layer.visible = visible
	}
}

// Visible reports a layer's aggregate visibility flag.
func (c *Compositor) Visible(name string) bool {
	layer, ok := c.layers[name]
	return ok && layer.visible
}

// BindFilter attaches a filter descriptor to a layer, wrapping each of
// the layer's display nodes in its own isolation group. Binding is
// idempotent: attaching a descriptor equal to the current one is a
// no-op.
func (c *Compositor) BindFilter(name string, f filter.Filter) error {
	layer, ok := c.layers[name]
	if !ok {
		return fmt.Errorf("compose: unknown layer %q", name)
	}
	if f == nil {
		c.UnbindFilter(name)
		return nil
	}
	if layer.filter == f {
		return nil
	}
	layer.filter = f
	for _, node := range layer.nodes {
		c.wrapNode(layer, node)
	}
	return nil
}

// UnbindFilter detaches the layer's filter from every isolation group
// without destroying the groups' nodes or their cached textures.
func (c *Compositor) UnbindFilter(name string) {
	layer, ok := c.layers[name]
	if !ok {
		return
	}
	layer.filter = nil
	for _, node := range layer.nodes {
		node.group = nil
	}
}

// wrapNode gives the node an isolation group sized exactly to its
// bounding box in screen units, carrying the layer's shared filter.
func (c *Compositor) wrapNode(layer *Layer, node *DisplayNode) {
	node.group = &IsolationGroup{
		Bounds: node.ScreenBounds(),
		Filter: layer.filter,
	}
}

// RemoveObject drops the object's display nodes from every layer in
// one call. Used on object deletion so removal lands in the same
// pipeline pass as the cache eviction.
func (c *Compositor) RemoveObject(id uuid.UUID) {
	for _, layer := range c.layers {
		layer.removeNode(id)
	}
}

// NodeCount returns the total number of display nodes across layers.
func (c *Compositor) NodeCount() int {
	total := 0
	for _, layer := range c.layers {
		total += len(layer.nodes)
	}
	return total
}

// Composite draws all visible layers back to front into dst. Textures
// keep their extraction resolution across zoom, so each one is sampled
// to the node's screen extent here rather than regenerated. Nodes in
// a filtered layer are rendered through their isolation groups: the
// filter samples only the node's own texture buffer, clamped to the
// group's bounds, so effects never bleed between adjacent objects.
func (c *Compositor) Composite(dst *pixeloid.Pixmap) {
	for _, name := range c.order {
		layer := c.layers[name]
		if !layer.visible {
			continue
		}
		for _, id := range layer.order {
			node, ok := layer.nodes[id]
			if !ok || node.Texture == nil || node.Texture.Released() {
				continue
			}
			if node.Texture.Format() != gputypes.TextureFormatRGBA8Unorm {
				// The CPU compositor samples RGBA8 only.
				continue
			}
			src := node.Texture.Pixmap()
			if src == nil {
				continue
			}

			w := int(math.Round(node.Width))
			h := int(math.Round(node.Height))
			if w <= 0 || h <= 0 {
				continue
			}
			if w != src.Width() || h != src.Height() {
				src = sampleTo(src, w, h)
			}

			x := int(math.Round(node.Pos.X))
			y := int(math.Round(node.Pos.Y))

			if node.group != nil {
				local := pixeloid.NewPixmap(w, h)
				bounds := pixeloid.NewRect(0, 0, float64(w), float64(h))
				node.group.Filter.Apply(src, local, bounds)
				dst.Blit(local, x, y)
				continue
			}
			dst.Blit(src, x, y)
		}
	}
}

// sampleTo resamples a texture pixmap to the given screen extent with
// nearest neighbor, keeping pixeloid cell edges hard at any zoom.
func sampleTo(src *pixeloid.Pixmap, w, h int) *pixeloid.Pixmap {
	img := src.ToImage()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(out, out.Bounds(), img, img.Bounds(), draw.Src, nil)
	p := pixeloid.NewPixmap(w, h)
	p.BlitRGBA(out, 0, 0)
	return p
}
