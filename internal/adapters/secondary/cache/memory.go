// Package cache holds image cache adapters keyed by source URL. Entries
// never expire: a fetched image URL is treated as immutable.
package cache

import (
	"context"
	"sync"

	"deck-thumbnail-service/internal/core/domain"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

type memoryCache struct {
	mu      sync.RWMutex
	entries map[string]*domain.ImageBlob
}

// NewMemoryCache creates a process-local image cache.
func NewMemoryCache() ports.ImageCache {
	return &memoryCache{entries: make(map[string]*domain.ImageBlob)}
}

func (c *memoryCache) Get(_ context.Context, url string) (*domain.ImageBlob, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	blob, ok := c.entries[url]
	return blob, ok, nil
}

func (c *memoryCache) Set(_ context.Context, url string, blob *domain.ImageBlob) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[url] = blob
	return nil
}

type nullCache struct{}

// NewNullCache returns a cache that stores nothing.
func NewNullCache() ports.ImageCache {
	return nullCache{}
}

func (nullCache) Get(context.Context, string) (*domain.ImageBlob, bool, error) {
	return nil, false, nil
}
func (nullCache) Set(context.Context, string, *domain.ImageBlob) error { return nil }
