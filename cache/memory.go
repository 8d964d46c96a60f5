// Package cache
package cache

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-process cache with time based expiry only. It has no size
// bound, the key space of the service is fixed.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time

	logger *zap.Logger
}

func NewMemory(logger *zap.Logger) *Memory {
	return &Memory{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
		logger:  logger.With(zap.String("cache", "memory")),
	}
}

// WithClock replaces the time source, for tests.
func (c *Memory) WithClock(now func() time.Time) *Memory {
	c.now = now
	return c
}

func (c *Memory) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if !c.now().Before(entry.expiresAt) {
		c.mu.Lock()
		// a concurrent Set may have refreshed the entry
		if cur, ok := c.entries[key]; ok && !c.now().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}
	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (c *Memory) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	c.mu.Lock()
	c.entries[key] = memoryEntry{
		value:     stored,
		expiresAt: c.now().Add(ttl),
	}
	c.mu.Unlock()
	c.logger.Debug("cache entry stored", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}
