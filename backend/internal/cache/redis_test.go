package cache_test

import (
	"errors"
	"testing"
	"time"

	"housing-manager/backend/internal/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupRedisCache(t *testing.T) (*cache.RedisCache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := cache.NewRedisCacheFromClient(client)
	t.Cleanup(func() { c.Close() })

	return c, mr
}

func TestRedisCache_SetAndGet(t *testing.T) {
	c, _ := setupRedisCache(t)

	type payload struct {
		OpenIssues int64 `json:"openIssues"`
	}

	if err := c.Set("dashboard:summary", payload{OpenIssues: 4}, time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	var got payload
	if err := c.Get("dashboard:summary", &got); err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.OpenIssues != 4 {
		t.Errorf("Expected 4 open issues, got %d", got.OpenIssues)
	}
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := setupRedisCache(t)

	var got string
	if err := c.Get("missing", &got); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss, got %v", err)
	}
}

func TestRedisCache_Expiration(t *testing.T) {
	c, mr := setupRedisCache(t)

	if err := c.Set("short", "value", time.Second); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	mr.FastForward(2 * time.Second)

	var got string
	if err := c.Get("short", &got); !errors.Is(err, cache.ErrCacheMiss) {
		t.Errorf("Expected ErrCacheMiss after TTL, got %v", err)
	}
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := setupRedisCache(t)

	if err := c.Set("key1", "value", time.Minute); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := c.Delete("key1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err := c.Exists("key1")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Expected key to be deleted")
	}
}

func TestRedisCache_DeletePattern(t *testing.T) {
	c, _ := setupRedisCache(t)

	for _, key := range []string{"dashboard:summary", "dashboard:other", "session:1"} {
		if err := c.Set(key, "value", time.Minute); err != nil {
			t.Fatalf("Set %s failed: %v", key, err)
		}
	}

	if err := c.DeletePattern("dashboard:*"); err != nil {
		t.Fatalf("DeletePattern failed: %v", err)
	}

	var got string
	if err := c.Get("dashboard:summary", &got); !errors.Is(err, cache.ErrCacheMiss) {
		t.Error("Expected dashboard:summary to be deleted")
	}
	if err := c.Get("session:1", &got); err != nil {
		t.Errorf("Expected session:1 to survive, got %v", err)
	}
}

func TestRedisCache_HealthAfterShutdown(t *testing.T) {
	c, mr := setupRedisCache(t)

	if err := c.Health(); err != nil {
		t.Fatalf("Expected healthy cache, got %v", err)
	}

	mr.Close()

	if err := c.Health(); err == nil {
		t.Error("Expected health check failure after server shutdown")
	}
}
