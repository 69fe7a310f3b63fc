package routing

import "sync"

// CacheKey identifies one memoized search result. Two requests with equal
// keys are guaranteed to produce identical edge lists, so entries are
// never invalidated.
type CacheKey struct {
	Origin       string
	Destination  string
	Modes        string
	OnlyMarkets  bool
	FuelCapacity int
	StartRange   int
}

// NewCacheKey derives the cache key for a search request.
func NewCacheKey(request SearchRequest) CacheKey {
	return CacheKey{
		Origin:       request.Start,
		Destination:  request.End,
		Modes:        request.Modes.Key(),
		OnlyMarkets:  request.OnlyMarkets,
		FuelCapacity: request.FuelCapacity,
		StartRange:   request.StartRange,
	}
}

// RouteCache is a process-wide memoization table for search results,
// shared across all ships. Entries are immutable once stored; a cache hit
// is indistinguishable from a fresh search.
type RouteCache struct {
	mu      sync.RWMutex
	entries map[CacheKey][]*RouteConnection
}

// NewRouteCache creates an empty route cache.
func NewRouteCache() *RouteCache {
	return &RouteCache{
		entries: make(map[CacheKey][]*RouteConnection),
	}
}

// Get returns the cached edge list for the key, if present. The returned
// slice is a copy; the cached connections themselves are shared and must
// not be mutated.
func (c *RouteCache) Get(key CacheKey) ([]*RouteConnection, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	route := make([]*RouteConnection, len(entry))
	copy(route, entry)
	return route, true
}

// Put stores an edge list under the key. First write wins; a concurrent
// duplicate computation stores an identical value anyway.
func (c *RouteCache) Put(key CacheKey, route []*RouteConnection) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		return
	}
	entry := make([]*RouteConnection, len(route))
	copy(entry, route)
	c.entries[key] = entry
}

// Len reports the number of cached routes.
func (c *RouteCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
