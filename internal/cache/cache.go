package cache

import (
	"sync"

	"github.com/skylineapp/skyline/internal/weather"
)

// key pairs the location query with the wall-clock hour it was fetched in.
// Baking the hour into the key is the cache's whole expiry mechanism: once
// the hour rolls over, every lookup computes a new key, misses, and
// refetches. Old entries are never swept; a session is bounded by the number
// of distinct queries times 24.
type key struct {
	Query string
	Hour  int
}

// ResultCache is a concurrency-safe in-memory memo of successful fetch
// results, satisfying weather.Cache.
type ResultCache struct {
	mu      sync.RWMutex
	entries map[key]weather.FetchResult
}

// New creates an empty ResultCache.
func New() *ResultCache {
	return &ResultCache{
		entries: make(map[key]weather.FetchResult),
	}
}

// Get returns the result cached for (query, hour), if any. A hit must
// short-circuit the whole fetch pipeline; the caller issues no network calls.
func (c *ResultCache) Get(query string, hour int) (weather.FetchResult, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.entries[key{Query: query, Hour: hour}]
	return res, ok
}

// Put stores a successful result under (query, hour). Failures are never
// stored; callers retrying in the same hour go back to the network.
func (c *ResultCache) Put(query string, hour int, res weather.FetchResult) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key{Query: query, Hour: hour}] = res
}

// Len reports the number of cached entries.
func (c *ResultCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

var _ weather.Cache = (*ResultCache)(nil)
