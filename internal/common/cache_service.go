package common

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// CacheService is the in-process cache used when no Redis address is configured.
type CacheService struct {
	cache *cache.Cache
}

// Ensure CacheService implements CacheInterface
var _ CacheInterface = (*CacheService)(nil)

func NewCacheService(defaultExpiration, cleanUpInterval time.Duration) *CacheService {
	return &CacheService{cache: cache.New(defaultExpiration, cleanUpInterval)}
}

func (cs *CacheService) Set(key string, value []byte, duration time.Duration) {
	cs.cache.Set(key, value, duration)
}

func (cs *CacheService) Get(key string) ([]byte, bool) {
	v, ok := cs.cache.Get(key)
	if !ok {
		return nil, false
	}
	b, ok := v.([]byte)
	return b, ok
}

func (cs *CacheService) Delete(key string) error {
	cs.cache.Delete(key)
	return nil
}

func (cs *CacheService) GetOrSet(
	key string,
	duration time.Duration,
	loader Loader) ([]byte, error) {
	if val, found := cs.Get(key); found {
		return val, nil
	}

	val, cacheable, err := loader()
	if err != nil {
		return nil, err
	}

	if cacheable {
		cs.Set(key, val, duration)
	}
	return val, nil
}

// Close closes the cache (no-op for in-memory cache)
func (cs *CacheService) Close() error {
	return nil
}
