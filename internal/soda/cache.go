package soda

import (
	"crypto/sha256"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

type cacheEntry struct {
	results   *ResultSet
	timestamp time.Time
}

// Cache is a thread-safe in-memory cache of query results, keyed by
// endpoint plus encoded query. Nothing is persisted: the cache lives
// and dies with the process.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	maxAge  time.Duration
}

func NewCache(maxAge time.Duration) *Cache {
	return &Cache{
		entries: make(map[string]cacheEntry),
		maxAge:  maxAge,
	}
}

func (c *Cache) Set(endpoint string, query Query, results *ResultSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cacheKey(endpoint, query)] = cacheEntry{
		results:   results,
		timestamp: time.Now(),
	}
}

func (c *Cache) Get(endpoint string, query Query) (*ResultSet, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[cacheKey(endpoint, query)]
	if !ok {
		return nil, false
	}

	if time.Since(entry.timestamp) > c.maxAge {
		slog.Info("Cache entry expired", "resource", ResourceID(endpoint))
		return nil, false
	}

	return entry.results, true
}

// Removes all cache entries
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}

// Removes all cache entries older than the given duration
func (c *Cache) InvalidateOlder(olderThan time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().Add(-olderThan)

	for key, entry := range c.entries {
		if entry.timestamp.Before(cutoff) {
			delete(c.entries, key)
		}
	}
}

// Returns the cache key hash (sha256) for the given endpoint and query
func cacheKey(endpoint string, query Query) string {
	data := fmt.Sprintf("%s?%s", endpoint, query.Encode())
	hash := sha256.Sum256([]byte(data))

	return fmt.Sprintf("%x", hash)
}
