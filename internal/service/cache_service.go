package service

import (
	"strings"
	"sync"
	"time"
)

const (
	reportsCachePrefix    = "flood_reports:"
	ActiveReportsCacheKey = reportsCachePrefix + "active"
)

// CacheService provides in-memory caching with TTL and invalidation support.
type CacheService struct {
	mu    sync.RWMutex
	cache map[string]*cacheEntry
	// gen растёт при каждой инвалидации; GetOrSet не сохраняет значение,
	// посчитанное до инвалидации.
	gen  uint64
	now  func() time.Time
	stop chan struct{}
	once sync.Once
}

type cacheEntry struct {
	data      interface{}
	expiresAt time.Time
}

// NewCacheService creates a new cache service and starts the expiry sweeper.
func NewCacheService() *CacheService {
	cs := &CacheService{
		cache: make(map[string]*cacheEntry),
		now:   time.Now,
		stop:  make(chan struct{}),
	}

	go cs.cleanup(5 * time.Minute)

	return cs
}

// Get retrieves a value from cache.
func (cs *CacheService) Get(key string) (interface{}, bool) {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	entry, exists := cs.cache[key]
	if !exists {
		return nil, false
	}

	// Don't delete here, let cleanup handle it
	if cs.now().After(entry.expiresAt) {
		return nil, false
	}

	return entry.data, true
}

// Set stores a value in cache with TTL.
func (cs *CacheService) Set(key string, value interface{}, ttl time.Duration) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.cache[key] = &cacheEntry{
		data:      value,
		expiresAt: cs.now().Add(ttl),
	}
}

// InvalidateByPrefix removes all keys with the given prefix.
func (cs *CacheService) InvalidateByPrefix(prefix string) {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	cs.gen++
	for key := range cs.cache {
		if strings.HasPrefix(key, prefix) {
			delete(cs.cache, key)
		}
	}
}

// Close stops the background sweeper.
func (cs *CacheService) Close() {
	cs.once.Do(func() { close(cs.stop) })
}

// cleanup removes expired entries periodically.
func (cs *CacheService) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-cs.stop:
			return
		case <-ticker.C:
			cs.sweep()
		}
	}
}

func (cs *CacheService) sweep() {
	cs.mu.Lock()
	defer cs.mu.Unlock()

	now := cs.now()
	for key, entry := range cs.cache {
		if now.After(entry.expiresAt) {
			delete(cs.cache, key)
		}
	}
}

// GetOrSet retrieves a value from cache or computes it if not found.
// Errors are not cached. A value computed across an invalidation is returned
// but not stored.
func (cs *CacheService) GetOrSet(key string, ttl time.Duration, fn func() (interface{}, error)) (interface{}, error) {
	if value, found := cs.Get(key); found {
		return value, nil
	}

	cs.mu.RLock()
	gen := cs.gen
	cs.mu.RUnlock()

	value, err := fn()
	if err != nil {
		return nil, err
	}

	cs.mu.Lock()
	defer cs.mu.Unlock()
	if cs.gen == gen {
		cs.cache[key] = &cacheEntry{data: value, expiresAt: cs.now().Add(ttl)}
	}
	return value, nil
}
