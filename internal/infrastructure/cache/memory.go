package cache

import (
	"context"
	"encoding/json"
	"path"
	"sync"
	"time"

	"marketplace-backend/pkg/cache"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryCache - cache.Cache trong process (CACHE_DRIVER=memory, tests).
// Cùng semantics JSON với RedisCache.
type MemoryCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]memoryEntry), now: time.Now}
}

var _ cache.Cache = (*MemoryCache)(nil)

func (c *MemoryCache) Get(_ context.Context, key string, dest interface{}) (bool, error) {
	c.mu.Lock()
	e, ok := c.entries[key]
	if ok && !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		delete(c.entries, key)
		ok = false
	}
	c.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.value, dest); err != nil {
		return false, nil
	}
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	e := memoryEntry{value: raw}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = e
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	return nil
}

// DeletePattern - glob giống Redis cho các pattern đơn giản (*, ?)
func (c *MemoryCache) DeletePattern(_ context.Context, pattern string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if ok, _ := path.Match(pattern, k); ok {
			delete(c.entries, k)
		}
	}
	return nil
}

func (c *MemoryCache) Ping(context.Context) error {
	return nil
}

// Len - số entry hiện có (kể cả đã hết hạn nhưng chưa bị đọc)
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
