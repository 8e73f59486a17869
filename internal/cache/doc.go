// Package cache provides a generic LRU cache with hit and miss counters.
//
// The text layer uses it to keep shaped measurements of recently drawn
// strings, keyed by font, size and content:
//
//	c := cache.New[key, float64](512)
//	w := c.GetOrCreate(k, func() float64 { return shape(k) })
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
