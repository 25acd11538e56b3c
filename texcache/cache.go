// Package texcache implements the versioned texture cache: one
// rasterized texture per object id, reused while the object's visually
// relevant attributes are unchanged and re-extracted only when they
// are. Extraction work is therefore proportional to the number of
// objects that actually changed since the previous frame, not to the
// number of visible objects.
package texcache

import (
	"container/list"
	"errors"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/pixeloid/pixeloid"
)

// ErrRasterNotReady is returned when the raster source has no pixels
// for an object yet (the upstream layer has not drawn it). It is a
// retryable condition, not an error: no cache entry is created or
// evicted, and the next frame retries extraction.
var ErrRasterNotReady = errors.New("texcache: raster not ready")

// RasterSource produces the raster of an object at a target scale.
// Rasterize returns nil when the object has not yet been drawn by the
// upstream layer; the cache treats nil as "not ready" and retries next
// frame.
type RasterSource interface {
	Rasterize(obj *pixeloid.Object, md pixeloid.Metadata, scale float64) *pixeloid.Pixmap
}

// entry is one cached texture with the version state it was extracted
// under. At most one live entry exists per object id.
type entry struct {
	id       uuid.UUID
	hash     uint64
	tex      *Texture
	bounds   pixeloid.Rect // bounds at extraction, pixeloid space
	scale    float64       // pixeloid scale at extraction
	element  *list.Element
	lastUsed time.Time
}

// Stats contains cache statistics for monitoring.
type Stats struct {
	// Entries is the number of live cache entries.
	Entries int
	// Bytes is the current texture memory usage.
	Bytes int64
	// Hits is the number of reuse decisions.
	Hits uint64
	// Misses is the number of lookups with no matching entry or a stale hash.
	Misses uint64
	// Extractions is the number of textures produced by the raster source.
	Extractions uint64
	// Evictions is the number of entries destroyed.
	Evictions uint64
	// NotReady is the number of extractions deferred by the raster source.
	NotReady uint64
}

// Cache is the versioned texture cache. Entries are keyed by object id
// and invalidated solely by attribute changes (via VersionHash), never
// by pan/zoom alone. An optional rescale policy re-extracts at a new
// target resolution when the view scale drifts far from the extraction
// scale; it is off by default.
type Cache struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*entry
	lru     *list.List // front = most recently used
	size    int64

	maxBytes         int64   // 0 = unlimited
	rescaleThreshold float64 // 0 = never rescale on zoom

	hits        atomic.Uint64
	misses      atomic.Uint64
	extractions atomic.Uint64
	evictions   atomic.Uint64
	notReady    atomic.Uint64
}

// Option configures a Cache during creation.
type Option func(*Cache)

// WithMaxBytes sets a texture memory budget. When the budget is
// exceeded, least recently used entries are trimmed. The default is
// unlimited, which preserves strict per-id ownership: entries then die
// only on object deletion or explicit eviction.
func WithMaxBytes(n int64) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxBytes = n
		}
	}
}

// WithRescaleThreshold enables re-extraction on significant view scale
// change: an entry re-extracts when the ratio between the frame scale
// and its extraction scale exceeds 1+r in either direction. This is a
// sharpness policy, not a correctness requirement; pass 0 (the
// default) to never re-extract on zoom.
func WithRescaleThreshold(r float64) Option {
	return func(c *Cache) {
		if r > 0 {
			c.rescaleThreshold = r
		}
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[uuid.UUID]*entry),
		lru:     list.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// GetOrCreate returns the texture for an object, extracting a new one
// only when the object's version hash differs from the cached one (or
// no entry exists). The returned bool reports whether an extraction
// happened this call.
//
// The texture is extracted at full target resolution: the metadata
// bounds scaled by the pixeloid scale, rounded up to whole device
// pixels. On replacement the previous texture's resources are released
// before the new entry is stored.
func (c *Cache) GetOrCreate(obj *pixeloid.Object, md pixeloid.Metadata, scale float64, src RasterSource) (*Texture, bool, error) {
	hash := VersionHash(obj)

	c.mu.Lock()
	e, ok := c.entries[obj.ID]
	if ok && e.hash == hash && !c.needsRescale(e.scale, scale) {
		c.lru.MoveToFront(e.element)
		e.lastUsed = time.Now()
		tex := e.tex
		c.mu.Unlock()
		c.hits.Add(1)
		return tex, false, nil
	}
	c.mu.Unlock()
	c.misses.Add(1)

	// Extraction happens outside the lock; the pipeline is
	// single-threaded per frame, so no competing writer exists for
	// this id.
	pixmap := src.Rasterize(obj, md, scale)
	if pixmap == nil {
		c.notReady.Add(1)
		return nil, false, ErrRasterNotReady
	}

	tex := newTexture(pixmap)

	c.mu.Lock()
	if old, exists := c.entries[obj.ID]; exists {
		c.size -= old.tex.sizeBytes()
		c.lru.Remove(old.element)
		old.tex.release()
	}
	e = &entry{
		id:       obj.ID,
		hash:     hash,
		tex:      tex,
		bounds:   md.Bounds,
		scale:    scale,
		lastUsed: time.Now(),
	}
	e.element = c.lru.PushFront(e)
	c.entries[obj.ID] = e
	c.size += tex.sizeBytes()
	if c.maxBytes > 0 {
		c.trimLocked(c.maxBytes, obj.ID)
	}
	c.mu.Unlock()

	c.extractions.Add(1)
	pixeloid.Logger().Debug("texture extracted",
		slog.String("object", obj.ID.String()),
		slog.Int("width", tex.Width()),
		slog.Int("height", tex.Height()))
	return tex, true, nil
}

// Lookup returns the cached texture for an id without triggering
// extraction. Used by the compositor to bind display nodes; a miss
// means the object has no texture yet this frame.
func (c *Cache) Lookup(id uuid.UUID) (*Texture, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[id]
	if !ok {
		return nil, false
	}
	c.lru.MoveToFront(e.element)
	e.lastUsed = time.Now()
	return e.tex, true
}

// Evict destroys the entry and its texture for an id unconditionally.
// Evicting an id with no entry is a no-op, not an error.
func (c *Cache) Evict(id uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(id)
}

// EvictMissing destroys every entry whose id is not in the live set.
// The pipeline calls this once per frame with the ids present in the
// object store, so deletions take effect in the same pipeline pass.
// It returns the evicted ids.
func (c *Cache) EvictMissing(live map[uuid.UUID]bool) []uuid.UUID {
	c.mu.Lock()
	defer c.mu.Unlock()

	var evicted []uuid.UUID
	for id := range c.entries {
		if !live[id] {
			evicted = append(evicted, id)
		}
	}
	for _, id := range evicted {
		c.evictLocked(id)
	}
	return evicted
}

// evictLocked removes one entry. Must be called with c.mu held.
func (c *Cache) evictLocked(id uuid.UUID) {
	e, ok := c.entries[id]
	if !ok {
		return
	}
	c.lru.Remove(e.element)
	c.size -= e.tex.sizeBytes()
	e.tex.release()
	delete(c.entries, id)
	c.evictions.Add(1)
}

// needsRescale reports whether the view scale has drifted far enough
// from the extraction scale to warrant re-extraction. Always false
// when the rescale policy is disabled.
func (c *Cache) needsRescale(extracted, current float64) bool {
	if c.rescaleThreshold <= 0 || extracted <= 0 {
		return false
	}
	ratio := current / extracted
	if ratio < 1 {
		ratio = 1 / ratio
	}
	return ratio > 1+c.rescaleThreshold
}

// Trim evicts least recently used entries until memory usage is at or
// below target bytes. Entries for the current frame's objects may be
// evicted too; they will re-extract on next use.
func (c *Cache) Trim(target int64) {
	if target < 0 {
		target = 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trimLocked(target, uuid.Nil)
}

// trimLocked evicts LRU entries until size <= target, sparing keep.
// Must be called with c.mu held.
func (c *Cache) trimLocked(target int64, keep uuid.UUID) {
	for c.size > target && c.lru.Len() > 0 {
		elem := c.lru.Back()
		if elem == nil {
			break
		}
		e := elem.Value.(*entry)
		if e.id == keep {
			// The entry just stored this frame is never its own victim.
			if c.lru.Len() == 1 {
				break
			}
			c.lru.MoveToFront(elem)
			continue
		}
		c.evictLocked(e.id)
	}
}

// Contains reports whether a live entry exists for the id.
func (c *Cache) Contains(id uuid.UUID) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[id]
	return ok
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// BoundsOf returns the pixeloid-space bounds a cached entry was
// extracted under. Returns false if no entry exists. The pipeline uses
// this to keep display nodes positioned for objects skipped this frame
// (invalid geometry) without recomputing metadata.
func (c *Cache) BoundsOf(id uuid.UUID) (pixeloid.Rect, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[id]; ok {
		return e.bounds, true
	}
	return pixeloid.Rect{}, false
}

// VersionOf returns the version hash a cached entry was extracted
// under. Returns false if no entry exists.
func (c *Cache) VersionOf(id uuid.UUID) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries[id]; ok {
		return e.hash, true
	}
	return 0, false
}

// Stats returns current cache statistics.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	entries := len(c.entries)
	bytes := c.size
	c.mu.Unlock()

	return Stats{
		Entries:     entries,
		Bytes:       bytes,
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Extractions: c.extractions.Load(),
		Evictions:   c.evictions.Load(),
		NotReady:    c.notReady.Load(),
	}
}

// TargetSize returns the device-pixel dimensions a texture for the
// given bounds should have at a scale: bounds extent times scale,
// rounded up to whole pixels.
func TargetSize(bounds pixeloid.Rect, scale float64) (w, h int) {
	w = int(math.Ceil(bounds.Width() * scale))
	h = int(math.Ceil(bounds.Height() * scale))
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}
