package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/onboardify/storecrawl/models"
)

// entry holds a cached crawl result with its creation timestamp.
type entry struct {
	record    *models.StoreRecord
	createdAt time.Time
}

// Cache is an in-memory TTL cache for crawl results, keyed by normalized
// store URL. A crawl takes several seconds of real browser time, so repeat
// requests for the same store within the TTL are served from here.
// It is safe for concurrent use.
type Cache struct {
	mu         sync.RWMutex
	store      map[string]*entry
	maxEntries int
	ttl        time.Duration
}

// New creates a Cache with the given capacity and entry TTL. A TTL of zero
// disables the cache (Get always misses, Set is a no-op). A background
// goroutine sweeps expired entries every 5 minutes.
func New(maxEntries int, ttl time.Duration) *Cache {
	c := &Cache{
		store:      make(map[string]*entry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
	if ttl > 0 {
		go c.cleanupLoop()
	}
	return c
}

// Key generates a cache key from the normalized store URL.
func Key(normalizedURL string) string {
	sum := sha256.Sum256([]byte(normalizedURL))
	return hex.EncodeToString(sum[:])
}

// Get retrieves a cached record if it exists and is younger than the TTL.
func (c *Cache) Get(key string) (*models.StoreRecord, bool) {
	if c.ttl <= 0 {
		return nil, false
	}

	c.mu.RLock()
	e, ok := c.store[key]
	c.mu.RUnlock()

	if !ok || time.Since(e.createdAt) > c.ttl {
		return nil, false
	}
	return e.record, true
}

// Set stores a record. If the cache is at capacity, a random entry is
// evicted to make room.
func (c *Cache) Set(key string, rec *models.StoreRecord) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Evict one random entry if at capacity (map iteration is random in Go).
	if len(c.store) >= c.maxEntries {
		for k := range c.store {
			delete(c.store, k)
			break
		}
	}

	c.store[key] = &entry{
		record:    rec,
		createdAt: time.Now(),
	}
}

// cleanupLoop evicts expired entries every 5 minutes.
func (c *Cache) cleanupLoop() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-c.ttl)
		c.mu.Lock()
		for k, e := range c.store {
			if e.createdAt.Before(cutoff) {
				delete(c.store, k)
			}
		}
		c.mu.Unlock()
	}
}
