package cache

import (
	"errors"
	"time"
)

var ErrCacheMiss = errors.New("cache miss")

// Cache is the read-through cache used for the dashboard summary. Values
// are stored as JSON so memory and redis backends are interchangeable.
type Cache interface {
	Set(key string, value interface{}, ttl time.Duration) error
	Get(key string, dest interface{}) error
	Delete(key string) error
	DeletePattern(pattern string) error
	Exists(key string) (bool, error)
	Stats() map[string]interface{}
	Health() error
	Close() error
}
