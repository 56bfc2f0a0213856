package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"VizChat/internal/chart"
	"VizChat/internal/dataset"
)

// CachedChart represents a rendered chart file
type CachedChart struct {
	Path      string
	Timestamp time.Time
}

// GenerateCacheKey generates a cache key from a spec and the data it is drawn from
func GenerateCacheKey(spec chart.Spec, ds *dataset.Dataset) string {
	h := sha256.New()
	enc := json.NewEncoder(h)
	// both types marshal without error; an encoding failure would only weaken the key
	_ = enc.Encode(spec)
	_ = enc.Encode(ds)
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Cache maps cache keys to rendered chart files. It is safe for concurrent use.
type Cache struct {
	entries sync.Map
}

// Load returns the cached chart for key. Entries whose file has been removed are evicted.
func (c *Cache) Load(key string) (CachedChart, bool) {
	val, ok := c.entries.Load(key)
	if !ok {
		return CachedChart{}, false
	}
	cached := val.(CachedChart)
	if _, err := os.Stat(cached.Path); err != nil {
		c.entries.Delete(key)
		return CachedChart{}, false
	}
	return cached, true
}

// Store records a rendered chart under key
func (c *Cache) Store(key, path string) {
	c.entries.Store(key, CachedChart{
		Path:      path,
		Timestamp: time.Now(),
	})
}

// Len counts cached entries
func (c *Cache) Len() int {
	n := 0
	c.entries.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Clear drops every entry
func (c *Cache) Clear() {
	c.entries.Range(func(k, _ any) bool {
		c.entries.Delete(k)
		return true
	})
}
