// Package compose owns the per-layer display node sets and their
// back-to-front compositing, including the isolation groups that scope
// one shared filter descriptor to each object's own pixels.
package compose

import (
	"github.com/google/uuid"

	"github.com/pixeloid/pixeloid"
	"github.com/pixeloid/pixeloid/filter"
	"github.com/pixeloid/pixeloid/texcache"
)

// Standard layer names, back to front.
const (
	LayerGeometry  = "geometry"
	LayerMirror    = "mirror"
	LayerPixelate  = "pixelate"
	LayerSelection = "selection"
)

// DefaultLayers is the standard layer order: base geometry beneath the
// mirror copy beneath the pixelation layer beneath selection highlights.
func DefaultLayers() []string {
	return []string{LayerGeometry, LayerMirror, LayerPixelate, LayerSelection}
}

// DisplayNode is a positioned, renderable handle bound to a cached
// texture within one layer. Its lifecycle is independent of layer
// visibility: only deletion of the source object (or eviction of its
// cache entry) removes it.
type DisplayNode struct {
	// ID is the source object's identity.
	ID uuid.UUID

	// Texture is the cache's current texture for the object. The node
	// does not own it; the cache does.
	Texture *texcache.Texture

	// Pos is the screen position of the object's bounding-box origin.
	Pos pixeloid.Point

	// Width and Height are the screen extent of the bounding box.
	Width, Height float64

	group *IsolationGroup
}

// ScreenBounds returns the node's bounding box in screen coordinates.
func (n *DisplayNode) ScreenBounds() pixeloid.Rect {
	return pixeloid.NewRect(n.Pos.X, n.Pos.Y, n.Width, n.Height)
}

// Group returns the node's isolation group, or nil when no filter is
// bound to its layer.
func (n *DisplayNode) Group() *IsolationGroup {
	return n.group
}

// IsolationGroup is the isolated sub-container wrapping one display
// node while a filter is bound to its layer. The group is sized exactly
// to the node's bounding box in screen units; the shared filter
// descriptor attaches here rather than to the aggregate layer, and its
// sampling is clamped to the group's own texture, so the filter can
// never reach pixels belonging to a neighboring object.
type IsolationGroup struct {
	// Bounds is the group's extent in screen coordinates.
	Bounds pixeloid.Rect

	// Filter is the shared descriptor bound to the layer.
	Filter filter.Filter
}

// Layer is one compositing layer: a named, independently toggleable set
// of display nodes drawn in a fixed back-to-front position of the layer
// order.
type Layer struct {
	name    string
	z       int
	visible bool
	filter  filter.Filter

	nodes map[uuid.UUID]*DisplayNode
	order []uuid.UUID // stable draw order within the layer
}

func newLayer(name string, z int) *Layer {
	return &Layer{
		name:    name,
		z:       z,
		visible: true,
		nodes:   make(map[uuid.UUID]*DisplayNode),
	}
}

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Z returns the layer's position in the back-to-front order.
func (l *Layer) Z() int { return l.z }

// Visible reports the layer's aggregate visibility flag.
func (l *Layer) Visible() bool { return l.visible }

// Filter returns the filter bound to the layer, or nil.
func (l *Layer) Filter() filter.Filter { return l.filter }

// NodeCount returns the number of display nodes in the layer.
func (l *Layer) NodeCount() int { return len(l.nodes) }

// Node returns the display node for an object id, if present.
func (l *Layer) Node(id uuid.UUID) (*DisplayNode, bool) {
	n, ok := l.nodes[id]
	return n, ok
}

// Nodes returns the layer's display nodes in draw order.
func (l *Layer) Nodes() []*DisplayNode {
	out := make([]*DisplayNode, 0, len(l.order))
	for _, id := range l.order {
		if n, ok := l.nodes[id]; ok {
			out = append(out, n)
		}
	}
	return out
}

// removeNode drops the display node for an id. The bound texture is
// untouched; the cache owns it.
func (l *Layer) removeNode(id uuid.UUID) {
	if _, ok := l.nodes[id]; !ok {
		return
	}
	delete(l.nodes, id)
	for i, oid := range l.order {
		if oid == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}
