package compose

import (
	"math"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/google/uuid"

	"github.com/pixeloid/pixeloid"
	"github.com/pixeloid/pixeloid/filter"
	"github.com/pixeloid/pixeloid/texcache"
	"github.com/pixeloid/pixeloid/viewport"
)

type solidSource struct {
	color pixeloid.RGBA
}

func (s solidSource) Rasterize(obj *pixeloid.Object, md pixeloid.Metadata, scale float64) *pixeloid.Pixmap {
	w, h := texcache.TargetSize(md.Bounds, scale)
	pm := pixeloid.NewPixmap(w, h)
	pm.Clear(s.color)
	return pm
}

func testMapping(t *testing.T, scale float64, origin pixeloid.Point) viewport.Mapping {
	t.Helper()
	m, err := viewport.NewMapping(viewport.View{
		Scale: scale, Origin: origin, WidthPx: 256, HeightPx: 256,
	})
	if err != nil {
		t.Fatalf("NewMapping() error = %v", err)
	}
	return m
}

// populate primes a cache with one rect object and returns the item
// describing it.
func populate(t *testing.T, cache *texcache.Cache, scale float64, x, y float64) Item {
	t.Helper()
	obj := pixeloid.NewObject(
		pixeloid.RectShape{X: x, Y: y, Width: 4, Height: 4},
		pixeloid.Style{Fill: pixeloid.Black},
	)
	md, err := pixeloid.ComputeMetadata(obj.Shape)
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := cache.GetOrCreate(obj, md, scale, solidSource{pixeloid.Black}); err != nil {
		t.Fatal(err)
	}
	return Item{ID: obj.ID, Bounds: md.Bounds}
}

func TestCompositor_DefaultOrder(t *testing.T) {
	c := NewCompositor()
	want := []string{LayerGeometry, LayerMirror, LayerPixelate, LayerSelection}
	got := c.Order()
	if len(got) != len(want) {
		t.Fatalf("Order() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Order()[%d] = %q, want %q", i, got[i], want[i])
		}
		if c.Layer(want[i]) == nil {
			t.Errorf("Layer(%q) = nil", want[i])
		}
		if !c.Visible(want[i]) {
			t.Errorf("layer %q not visible by default", want[i])
		}
	}
}

func TestCompositor_SyncCreatesAndPositionsNodes(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()
	m := testMapping(t, 8, pixeloid.Pt(2, 2))

	item := populate(t, cache, m.Scale, 10, 6)
	if err := c.Sync(LayerGeometry, []Item{item}, cache, m); err != nil {
		t.Fatal(err)
	}

	node, ok := c.Layer(LayerGeometry).Node(item.ID)
	if !ok {
		t.Fatal("no node after Sync")
	}
	wantPos := m.ToScreen(item.Bounds.Min())
	if node.Pos != wantPos {
		t.Errorf("Pos = %v, want %v", node.Pos, wantPos)
	}
	if w := item.Bounds.Width() * m.Scale; node.Width != w {
		t.Errorf("Width = %g, want %g", node.Width, w)
	}
	tex, _ := cache.Lookup(item.ID)
	if node.Texture != tex {
		t.Error("node not bound to the cache's texture")
	}

	// A second sync with the same set updates in place.
	if err := c.Sync(LayerGeometry, []Item{item}, cache, m); err != nil {
		t.Fatal(err)
	}
	if c.Layer(LayerGeometry).NodeCount() != 1 {
		t.Errorf("NodeCount = %d, want 1", c.Layer(LayerGeometry).NodeCount())
	}
}

func TestCompositor_SyncRemovesDeletedObjects(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()
	m := testMapping(t, 4, pixeloid.Pt(0, 0))

	a := populate(t, cache, m.Scale, 0, 0)
	b := populate(t, cache, m.Scale, 10, 10)
	if err := c.Sync(LayerGeometry, []Item{a, b}, cache, m); err != nil {
		t.Fatal(err)
	}
	if c.Layer(LayerGeometry).NodeCount() != 2 {
		t.Fatal("expected two nodes")
	}

	// b deleted upstream: next sync omits it.
	if err := c.Sync(LayerGeometry, []Item{a}, cache, m); err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Layer(LayerGeometry).Node(b.ID); ok {
		t.Error("deleted object's node survived Sync")
	}
	if _, ok := c.Layer(LayerGeometry).Node(a.ID); !ok {
		t.Error("surviving object's node was removed")
	}
}

func TestCompositor_UnknownLayer(t *testing.T) {
	c := NewCompositor()
	if err := c.Sync("nope", nil, texcache.New(), viewport.Mapping{Scale: 1}); err == nil {
		t.Error("Sync on unknown layer succeeded")
	}
	if err := c.BindFilter("nope", filter.NewPixelate(4)); err == nil {
		t.Error("BindFilter on unknown layer succeeded")
	}
}

func TestCompositor_VisibilityTogglePreservesState(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()
	m := testMapping(t, 4, pixeloid.Pt(0, 0))

	item := populate(t, cache, m.Scale, 0, 0)
	if err := c.Sync(LayerGeometry, []Item{item}, cache, m); err != nil {
		t.Fatal(err)
	}
	before := cache.Stats()

	c.SetVisible(LayerGeometry, false)
	if c.Visible(LayerGeometry) {
		t.Error("layer still visible after SetVisible(false)")
	}
	c.SetVisible(LayerGeometry, true)

	// Nothing beyond the flag moved: node intact, cache untouched.
	if _, ok := c.Layer(LayerGeometry).Node(item.ID); !ok {
		t.Error("node destroyed by visibility toggle")
	}
	after := cache.Stats()
	if after.Evictions != before.Evictions || after.Extractions != before.Extractions {
		t.Errorf("cache disturbed by visibility toggle: before %+v after %+v", before, after)
	}
}

func TestCompositor_HiddenLayerNotComposited(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()
	m := testMapping(t, 4, pixeloid.Pt(0, 0))

	item := populate(t, cache, m.Scale, 0, 0)
	if err := c.Sync(LayerGeometry, []Item{item}, cache, m); err != nil {
		t.Fatal(err)
	}
	c.SetVisible(LayerGeometry, false)

	dst := pixeloid.NewPixmap(64, 64)
	dst.Clear(pixeloid.White)
	c.Composite(dst)

	if got := dst.GetPixel(1, 1); got != pixeloid.White {
		t.Errorf("hidden layer drew: pixel = %v", got)
	}
}

func TestCompositor_BindFilterWrapsNodes(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()
	m := testMapping(t, 4, pixeloid.Pt(0, 0))

	item := populate(t, cache, m.Scale, 0, 0)
	if err := c.Sync(LayerPixelate, []Item{item}, cache, m); err != nil {
		t.Fatal(err)
	}

	f := filter.NewPixelate(4)
	if err := c.BindFilter(LayerPixelate, f); err != nil {
		t.Fatal(err)
	}

	node, _ := c.Layer(LayerPixelate).Node(item.ID)
	g := node.Group()
	if g == nil {
		t.Fatal("no isolation group after BindFilter")
	}
	if g.Filter != f {
		t.Error("group carries a different filter descriptor")
	}
	if g.Bounds != node.ScreenBounds() {
		t.Errorf("group bounds %v, want node bounds %v", g.Bounds, node.ScreenBounds())
	}

	// Rebinding an equal descriptor is a no-op: the group instance is
	// left alone.
	if err := c.BindFilter(LayerPixelate, filter.NewPixelate(4)); err != nil {
		t.Fatal(err)
	}
	node, _ = c.Layer(LayerPixelate).Node(item.ID)
	if node.Group() != g {
		t.Error("idempotent rebind replaced the isolation group")
	}
}

func TestCompositor_UnbindFilterKeepsNodes(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()
	m := testMapping(t, 4, pixeloid.Pt(0, 0))

	item := populate(t, cache, m.Scale, 0, 0)
	c.Sync(LayerPixelate, []Item{item}, cache, m)
	c.BindFilter(LayerPixelate, filter.NewPixelate(4))

	c.UnbindFilter(LayerPixelate)

	node, ok := c.Layer(LayerPixelate).Node(item.ID)
	if !ok {
		t.Fatal("node destroyed by UnbindFilter")
	}
	if node.Group() != nil {
		t.Error("group still attached after UnbindFilter")
	}
	if tex, _ := cache.Lookup(item.ID); tex == nil || tex.Released() {
		t.Error("cached texture disturbed by UnbindFilter")
	}
}

func TestCompositor_RemoveObjectAcrossLayers(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()
	m := testMapping(t, 4, pixeloid.Pt(0, 0))

	item := populate(t, cache, m.Scale, 0, 0)
	c.Sync(LayerGeometry, []Item{item}, cache, m)
	c.Sync(LayerMirror, []Item{item}, cache, m)

	c.RemoveObject(item.ID)
	if c.NodeCount() != 0 {
		t.Errorf("NodeCount = %d after RemoveObject, want 0", c.NodeCount())
	}
}

func TestCompositor_CompositeDrawsAtNodePosition(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()
	m := testMapping(t, 2, pixeloid.Pt(0, 0))

	item := populate(t, cache, m.Scale, 4, 4)
	if err := c.Sync(LayerGeometry, []Item{item}, cache, m); err != nil {
		t.Fatal(err)
	}

	dst := pixeloid.NewPixmap(64, 64)
	c.Composite(dst)

	node, _ := c.Layer(LayerGeometry).Node(item.ID)
	x := int(math.Round(node.Pos.X))
	y := int(math.Round(node.Pos.Y))
	if got := dst.GetPixel(x, y); got != pixeloid.Black {
		t.Errorf("pixel at node origin = %v, want black", got)
	}
	if got := dst.GetPixel(0, 0); got == pixeloid.Black {
		t.Error("pixel outside node bounds was drawn")
	}
}

func TestCompositor_CompositeSamplesToScreenExtent(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()

	// Extract at scale 4 (16x16 texture), then sync under scale 8
	// without re-extracting: the stale-resolution texture must be
	// sampled up to the 32x32 screen extent at present time.
	m4 := testMapping(t, 4, pixeloid.Pt(0, 0))
	item := populate(t, cache, m4.Scale, 0, 0)
	before := cache.Stats().Extractions

	m8 := testMapping(t, 8, pixeloid.Pt(0, 0))
	if err := c.Sync(LayerGeometry, []Item{item}, cache, m8); err != nil {
		t.Fatal(err)
	}
	if got := cache.Stats().Extractions; got != before {
		t.Fatalf("sync under a new scale extracted %d textures", got-before)
	}

	dst := pixeloid.NewPixmap(64, 64)
	c.Composite(dst)

	if got := dst.GetPixel(30, 30); got != pixeloid.Black {
		t.Errorf("pixel inside the 32x32 screen extent = %v, want black", got)
	}
	if got := dst.GetPixel(34, 34); got != pixeloid.Transparent {
		t.Errorf("pixel outside the screen extent = %v, want transparent", got)
	}
}

func TestCompositor_TextureFormatRGBA8(t *testing.T) {
	cache := texcache.New()
	m := testMapping(t, 4, pixeloid.Pt(0, 0))
	item := populate(t, cache, m.Scale, 0, 0)

	tex, ok := cache.Lookup(item.ID)
	if !ok {
		t.Fatal("no texture after populate")
	}
	// Composite branches on this format before sampling.
	if got := tex.Format(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format() = %v, want TextureFormatRGBA8Unorm", got)
	}
}

func TestCompositor_MissingTextureSkipsNode(t *testing.T) {
	cache := texcache.New()
	c := NewCompositor()
	m := testMapping(t, 4, pixeloid.Pt(0, 0))

	// Item with no cache entry: Sync creates nothing and does not fail.
	item := Item{ID: uuid.New(), Bounds: pixeloid.NewRect(0, 0, 2, 2)}
	if err := c.Sync(LayerGeometry, []Item{item}, cache, m); err != nil {
		t.Fatal(err)
	}
	if c.Layer(LayerGeometry).NodeCount() != 0 {
		t.Error("node created for item without a texture")
	}
}
