package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Lists is the cache-aside contract used by services for per-store list reads.
// ListCache (Redis) and MemoryListCache satisfy it.
type Lists interface {
	Get(ctx context.Context, scope, storeID string, dest any) (bool, error)
	Set(ctx context.Context, scope, storeID string, v any) error
	Invalidate(ctx context.Context, scope, storeID string) error
}

var (
	_ Lists = (*ListCache)(nil)
	_ Lists = (*MemoryListCache)(nil)
)

// MemoryListCache is an in-process Lists implementation for tests and for
// running the API without Redis. Entries never expire.
type MemoryListCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewMemoryListCache returns an empty MemoryListCache.
func NewMemoryListCache() *MemoryListCache {
	return &MemoryListCache{entries: make(map[string][]byte)}
}

func (c *MemoryListCache) Get(_ context.Context, scope, storeID string, dest any) (bool, error) {
	c.mu.RLock()
	data, ok := c.entries[ListKey(scope, storeID)]
	c.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache decode: %w", err)
	}
	return true, nil
}

func (c *MemoryListCache) Set(_ context.Context, scope, storeID string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	c.mu.Lock()
	c.entries[ListKey(scope, storeID)] = data
	c.mu.Unlock()
	return nil
}

func (c *MemoryListCache) Invalidate(_ context.Context, scope, storeID string) error {
	c.mu.Lock()
	delete(c.entries, ListKey(scope, storeID))
	c.mu.Unlock()
	return nil
}

// Len returns the number of cached lists.
func (c *MemoryListCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
