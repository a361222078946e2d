package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache is a byte-oriented key/value store with per-entry TTL
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// CacheKey generates a stable cache key from an arbitrary identifier
// (a URL or a registrable domain)
func CacheKey(id string) string {
	hash := sha256.Sum256([]byte(id))
	return "accord:v1:" + hex.EncodeToString(hash[:])
}
