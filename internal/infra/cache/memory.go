package cache

import (
	"context"
	"sync"
	"time"

	"github.com/xavierca1/streamtv-site/internal/usecase"
)

type memoryEntry struct {
	value     []byte
	tags      []string
	expiresAt time.Time
}

// MemoryPageCache é o cache de páginas local ao processo, com índice por tag.
type MemoryPageCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	tags    map[string]map[string]struct{}
	epochs  map[string]int64
	now     func() time.Time
}

func NewMemoryPageCache() *MemoryPageCache {
	return &MemoryPageCache{
		entries: make(map[string]memoryEntry),
		tags:    make(map[string]map[string]struct{}),
		epochs:  make(map[string]int64),
		now:     time.Now,
	}
}

// Get trata entradas expiradas como miss. Quem limpa é o Sweep.
func (c *MemoryPageCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.value, true, nil
}

func (c *MemoryPageCache) Versions(_ context.Context, tags []string) (usecase.TagVersions, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(usecase.TagVersions, len(tags))
	for _, tag := range tags {
		seen[tag] = c.epochs[tag]
	}
	return seen, nil
}

// Set não grava nada se alguma tag foi invalidada depois da leitura de seen.
// Com seen nil a gravação é incondicional.
func (c *MemoryPageCache) Set(_ context.Context, key string, value []byte, tags []string, ttl time.Duration, seen usecase.TagVersions) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if seen != nil {
		for _, tag := range tags {
			if c.epochs[tag] != seen[tag] {
				return nil
			}
		}
	}

	c.removeLocked(key)
	c.entries[key] = memoryEntry{value: value, tags: tags, expiresAt: c.now().Add(ttl)}
	for _, tag := range tags {
		keys, ok := c.tags[tag]
		if !ok {
			keys = make(map[string]struct{})
			c.tags[tag] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

func (c *MemoryPageCache) InvalidateTag(_ context.Context, tag string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.epochs[tag]++
	for key := range c.tags[tag] {
		c.removeLocked(key)
	}
	delete(c.tags, tag)
	return nil
}

func (c *MemoryPageCache) InvalidatePath(ctx context.Context, path string) error {
	return c.InvalidateTag(ctx, usecase.PathTag(path))
}

// Sweep remove as entradas expiradas em now e retorna quantas saíram.
func (c *MemoryPageCache) Sweep(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			c.removeLocked(key)
			removed++
		}
	}
	return removed
}

func (c *MemoryPageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *MemoryPageCache) removeLocked(key string) {
	e, ok := c.entries[key]
	if !ok {
		return
	}
	delete(c.entries, key)
	for _, tag := range e.tags {
		if keys, ok := c.tags[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(c.tags, tag)
			}
		}
	}
}
