package render

import (
	"context"
	"log/slog"

	"github.com/sunjay/kale"
	"github.com/sunjay/kale/displaylist"
	"github.com/sunjay/kale/geometry"
)

// Cache holds compiled geometry per surface.
//
// A surface is recompiled only when its history is dirty or its version no
// longer matches the cached geometry; otherwise GetOrCompile returns the
// cached value.
type Cache struct {
	store    *displaylist.Store
	compiler *geometry.Compiler

	entries  map[displaylist.SurfaceID]*geometry.Geometry
	compiles map[displaylist.SurfaceID]int

	hits   uint64
	misses uint64
}

// CacheStats contains cache statistics.
type CacheStats struct {
	// Entries is the number of surfaces with cached geometry.
	Entries int
	// Hits counts lookups answered from the cache.
	Hits uint64
	// Misses counts lookups that compiled a surface.
	Misses uint64
	// HitRate is Hits / (Hits + Misses), 0 before the first lookup.
	HitRate float64
}

// NewCache creates a cache over store. A nil compiler uses
// geometry.NewCompiler().
func NewCache(store *displaylist.Store, compiler *geometry.Compiler) *Cache {
	if compiler == nil {
		compiler = geometry.NewCompiler()
	}
	return &Cache{
		store:    store,
		compiler: compiler,
		entries:  make(map[displaylist.SurfaceID]*geometry.Geometry),
		compiles: make(map[displaylist.SurfaceID]int),
	}
}

// Store returns the store the cache reads from.
func (c *Cache) Store() *displaylist.Store { return c.store }

// GetOrCompile returns the geometry of surface id, compiling it only if the
// surface changed since the last call. An unknown surface yields empty
// geometry, which is not cached. The result must be treated as read-only.
func (c *Cache) GetOrCompile(id displaylist.SurfaceID) *geometry.Geometry {
	h, ok := c.store.Lookup(id)
	if !ok {
		return geometry.Empty()
	}

	if g, ok := c.entries[id]; ok && !h.Dirty() && g.Version == h.Version() {
		c.hits++
		return g
	}

	g := c.compiler.Compile(h)
	c.entries[id] = g
	c.compiles[id]++
	c.misses++
	h.MarkClean()

	if l := kale.Logger(); l.Enabled(context.Background(), slog.LevelDebug) {
		l.Debug("render: surface compiled",
			slog.Uint64("surface", uint64(id)),
			slog.Uint64("version", g.Version),
			slog.Int("compiles", c.compiles[id]))
	}
	return g
}

// Compiles returns how many times surface id has been compiled.
func (c *Cache) Compiles(id displaylist.SurfaceID) int { return c.compiles[id] }

// Invalidate drops the cached geometry of id so the next lookup compiles it.
func (c *Cache) Invalidate(id displaylist.SurfaceID) {
	delete(c.entries, id)
}

// InvalidateAll drops every cached geometry. Counters are kept.
func (c *Cache) InvalidateAll() {
	clear(c.entries)
}

// Len returns the number of surfaces with cached geometry.
func (c *Cache) Len() int { return len(c.entries) }

// Stats returns the cache counters.
func (c *Cache) Stats() CacheStats {
	s := CacheStats{
		Entries: len(c.entries),
		Hits:    c.hits,
		Misses:  c.misses,
	}
	if total := s.Hits + s.Misses; total > 0 {
		s.HitRate = float64(s.Hits) / float64(total)
	}
	return s
}
