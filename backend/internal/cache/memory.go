package cache

import (
	"encoding/json"
	"sync"
	"time"
)

type MemoryCache struct {
	store sync.Map
	done  chan struct{}
	once  sync.Once
}

type cacheItem struct {
	payload    []byte
	expiration time.Time
}

func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{done: make(chan struct{})}

	go cache.cleanup()

	return cache
}

func (c *MemoryCache) Set(key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.store.Store(key, &cacheItem{
		payload:    payload,
		expiration: time.Now().Add(ttl),
	})
	return nil
}

func (c *MemoryCache) Get(key string, dest interface{}) error {
	item, exists := c.store.Load(key)
	if !exists {
		return ErrCacheMiss
	}

	cached := item.(*cacheItem)

	if time.Now().After(cached.expiration) {
		c.store.Delete(key)
		return ErrCacheMiss
	}

	return json.Unmarshal(cached.payload, dest)
}

func (c *MemoryCache) Exists(key string) (bool, error) {
	item, exists := c.store.Load(key)
	if !exists {
		return false, nil
	}
	if time.Now().After(item.(*cacheItem).expiration) {
		c.store.Delete(key)
		return false, nil
	}
	return true, nil
}

func (c *MemoryCache) Delete(key string) error {
	c.store.Delete(key)
	return nil
}

func (c *MemoryCache) DeletePattern(pattern string) error {
	c.store.Range(func(key, value interface{}) bool {
		if matchPattern(key.(string), pattern) {
			c.store.Delete(key)
		}
		return true
	})
	return nil
}

func (c *MemoryCache) Stats() map[string]interface{} {
	count := 0
	c.store.Range(func(_, _ interface{}) bool {
		count++
		return true
	})

	return map[string]interface{}{
		"items": count,
		"type":  "memory",
	}
}

func (c *MemoryCache) Health() error {
	return nil
}

func (c *MemoryCache) cleanup() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			now := time.Now()
			c.store.Range(func(key, value interface{}) bool {
				if now.After(value.(*cacheItem).expiration) {
					c.store.Delete(key)
				}
				return true
			})
		}
	}
}

func (c *MemoryCache) Close() error {
	c.once.Do(func() { close(c.done) })
	return nil
}

func matchPattern(text, pattern string) bool {
	if pattern == "*" {
		return true
	}

	if len(pattern) > 0 && pattern[len(pattern)-1] == '*' {
		prefix := pattern[:len(pattern)-1]
		return len(text) >= len(prefix) && text[:len(prefix)] == prefix
	}

	return text == pattern
}
