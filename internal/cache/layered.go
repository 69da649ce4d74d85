package cache

import (
	"errors"
	"time"
)

// LayeredCache answers from memory and falls back to disk, so repeated runs of the
// same form survive a restart without a second model call
type LayeredCache struct {
	memory *MemoryCache
	disk   *DiskCache
}

// NewLayeredCache creates a memory cache in front of a disk cache at dir
func NewLayeredCache(memoryTTL time.Duration, dir string, diskTTL time.Duration) *LayeredCache {
	return &LayeredCache{
		memory: NewMemoryCache(memoryTTL, sweepInterval(memoryTTL)),
		disk:   NewDiskCache(dir, diskTTL),
	}
}

func (c *LayeredCache) Get(key string) ([]byte, bool) {
	if v, ok := c.memory.Get(key); ok {
		return v, true
	}
	v, ok := c.disk.Get(key)
	if ok {
		_ = c.memory.Set(key, v, 0)
	}
	return v, ok
}

// Set always fills memory; a disk failure is returned but the answer stays usable
func (c *LayeredCache) Set(key string, value []byte, ttl time.Duration) error {
	_ = c.memory.Set(key, value, ttl)
	return c.disk.Set(key, value, ttl)
}

func (c *LayeredCache) Delete(key string) error {
	return errors.Join(c.memory.Delete(key), c.disk.Delete(key))
}

func (c *LayeredCache) Clear() error {
	return errors.Join(c.memory.Clear(), c.disk.Clear())
}

// Prune drops expired entries from both layers and returns how many stay on disk
func (c *LayeredCache) Prune() (int, error) {
	_, _ = c.memory.Prune()
	return c.disk.Prune()
}
