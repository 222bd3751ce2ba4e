package common

import "time"

// Loader produces a value on a cache miss.
type Loader func() (value []byte, cacheable bool, err error)

// CacheInterface defines the contract for cache implementations.
// Values are opaque bytes so every backend stores the same encoding.
type CacheInterface interface {
	// Set stores a value in cache with the given key and duration
	Set(key string, value []byte, duration time.Duration)

	// Get retrieves a value from cache by key
	// Returns the value and true if found, nil and false otherwise
	Get(key string) ([]byte, bool)

	// Delete removes a value from cache by key. An error means the key may
	// still be readable.
	Delete(key string) error

	// GetOrSet retrieves a value from cache, or loads it using the loader
	// function if not found. The loaded value is stored only when the loader
	// reports it as cacheable.
	GetOrSet(key string, duration time.Duration, loader Loader) ([]byte, error)

	// Close closes any underlying connections (for Redis, etc.)
	Close() error
}
