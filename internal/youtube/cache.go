package youtube

import (
	"sync"
	"time"

	"github.com/cesargomez89/praiseteam/internal/domain"
)

// Cache stores fetched metadata by video id.
type Cache interface {
	Get(videoID string) (*domain.VideoMetadata, bool)
	Set(videoID string, meta *domain.VideoMetadata)
	Clear()
}

type cacheEntry struct {
	meta     domain.VideoMetadata
	storedAt time.Time
}

// MemoryCache is a process-scoped TTL cache. Concurrent writers for the same
// id simply overwrite each other.
type MemoryCache struct {
	ttl     time.Duration
	now     func() time.Time
	entries map[string]cacheEntry
	mu      sync.RWMutex
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns a copy of the entry if it is younger than the TTL.
func (c *MemoryCache) Get(videoID string) (*domain.VideoMetadata, bool) {
	c.mu.RLock()
	entry, ok := c.entries[videoID]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.storedAt) >= c.ttl {
		return nil, false
	}
	meta := entry.meta
	return &meta, true
}

func (c *MemoryCache) Set(videoID string, meta *domain.VideoMetadata) {
	if meta == nil {
		return
	}
	c.mu.Lock()
	c.entries[videoID] = cacheEntry{meta: *meta, storedAt: c.now()}
	c.mu.Unlock()
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.mu.Unlock()
}

func (c *MemoryCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
