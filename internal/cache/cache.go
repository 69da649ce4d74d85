package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// keyPrefix versions the key space; bump it when the prompt format changes
const keyPrefix = "dagrapport:v1:"

// Cache stores model answers by request key
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Pruner is implemented by caches that can drop expired entries on demand
type Pruner interface {
	Prune() (int, error)
}

// CacheKey derives a cache key from the parts of a model request.
// Parts are length-prefixed so ("ab", "c") and ("a", "bc") differ.
func CacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		var n [8]byte
		for i, l := 0, uint64(len(p)); i < 8; i++ {
			n[i] = byte(l >> (8 * i))
		}
		h.Write(n[:])
		h.Write([]byte(p))
	}
	return keyPrefix + hex.EncodeToString(h.Sum(nil))
}

// New builds the cache described by the configuration.
// An empty dir keeps entries in memory only; generated reports describe children
// and are not written to disk unless asked for.
func New(ttl time.Duration, dir string) Cache {
	if dir == "" {
		return NewMemoryCache(ttl, sweepInterval(ttl))
	}
	return NewLayeredCache(ttl, dir, ttl)
}

// sweepInterval is how often expired memory entries are dropped
func sweepInterval(ttl time.Duration) time.Duration {
	if ttl > 0 && ttl < 10*time.Minute {
		return ttl
	}
	return 10 * time.Minute
}
