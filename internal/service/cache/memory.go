package cache

import (
	"sync"
	"time"
)

type memoryEntry struct {
	data      []byte
	expiresAt int64 // unix nanos, 0 means no expiry
}

// MemoryCache is an in-process BytesCache for deployments without Redis.
// Expired entries are dropped lazily on read and swept on every 256th write.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	writes  uint64
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry)}
}

func (c *MemoryCache) GetBytes(key string) ([]byte, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if e.expiresAt != 0 && time.Now().UnixNano() > e.expiresAt {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.data, true, nil
}

func (c *MemoryCache) SetBytes(key string, value []byte, ttl time.Duration) error {
	var exp int64
	if ttl > 0 {
		exp = time.Now().Add(ttl).UnixNano()
	}
	c.mu.Lock()
	c.entries[key] = memoryEntry{data: value, expiresAt: exp}
	c.writes++
	if c.writes%256 == 0 {
		c.sweepLocked()
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) sweepLocked() {
	now := time.Now().UnixNano()
	for k, e := range c.entries {
		if e.expiresAt != 0 && now > e.expiresAt {
			delete(c.entries, k)
		}
	}
}
