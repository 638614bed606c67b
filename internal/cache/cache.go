package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Cache defines the interface for caching provider results
type Cache interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration) error
	Delete(key string) error
	Clear() error
}

// Key generates a cache key for one provider query
func Key(provider, query string) string {
	hash := sha256.Sum256([]byte(provider + "\x00" + query))
	return "plagiarism:v1:" + provider + ":" + hex.EncodeToString(hash[:])
}
