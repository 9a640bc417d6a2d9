// Package tokencache remembers the confirmation code a visitor last used,
// so returning guests skip re-entering it. Entries expire after one day.
package tokencache

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL mirrors the one-day expiry of the original confirmation-code
// cache.
const DefaultTTL = 24 * time.Hour

// Cache stores confirmation codes keyed by a visitor identifier. Read
// returns an empty string, not an error, for a missing or expired entry.
type Cache interface {
	Save(ctx context.Context, key, code string) error
	Read(ctx context.Context, key string) (string, error)
	Clear(ctx context.Context, key string) error
}

type memoryEntry struct {
	code      string
	expiresAt time.Time
}

// MemoryCache is an in-process Cache. It backs deployments without Redis
// and doubles as the test implementation.
type MemoryCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
	}
}

func (c *MemoryCache) Save(_ context.Context, key, code string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = memoryEntry{code: code, expiresAt: time.Now().Add(c.ttl)}
	return nil
}

func (c *MemoryCache) Read(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return "", nil
	}
	if time.Now().After(entry.expiresAt) {
		delete(c.entries, key)
		return "", nil
	}
	return entry.code, nil
}

func (c *MemoryCache) Clear(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}
