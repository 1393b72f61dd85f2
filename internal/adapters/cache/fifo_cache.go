// Package cache provides the bounded, content-addressed memo of
// classification results.
package cache

import (
	"sync"

	"go.uber.org/zap"

	"github.com/inboxkit/email-classifier/internal/core"
)

// FIFOCache is an in-memory implementation of the ResultCache interface with
// strict first-in-first-out eviction. FIFO rather than LRU is deliberate:
// eviction is O(1) with a predictable memory ceiling, at the accepted cost
// that an old-but-frequent key can be evicted before a recent one-off.
type FIFOCache struct {
	mu       sync.RWMutex
	entries  map[string]*core.ClassificationResult
	order    []string
	capacity int
	logger   *zap.Logger
}

// NewFIFOCache creates a cache bounded at capacity entries.
func NewFIFOCache(capacity int, logger *zap.Logger) *FIFOCache {
	if capacity < 1 {
		capacity = 1
	}
	return &FIFOCache{
		entries:  make(map[string]*core.ClassificationResult, capacity),
		order:    make([]string, 0, capacity),
		capacity: capacity,
		logger:   logger,
	}
}

// Get returns a copy of the stored result with the cache-hit flag set. The
// stored entry itself is never handed out, so callers cannot mutate it.
func (c *FIFOCache) Get(key string) (*core.ClassificationResult, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}

	result := entry.Clone()
	result.FromCache = true
	return result, true
}

// Put stores a copy of the result. Re-inserting an existing key refreshes the
// value without consuming a second queue slot; inserting a new key beyond
// capacity evicts exactly the oldest-inserted entry.
func (c *FIFOCache) Put(key string, result *core.ClassificationResult) {
	stored := result.Clone()

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = stored
		return
	}

	if len(c.order) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
		if c.logger != nil {
			c.logger.Debug("Evicted oldest cache entry", zap.String("key", oldest))
		}
	}

	c.entries[key] = stored
	c.order = append(c.order, key)
}

// Len reports the number of cached entries.
func (c *FIFOCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
