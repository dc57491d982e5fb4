package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

// RedisCache implements domain.CacheStore on a Redis client. Keys written
// with a TTL expire server-side; Get translates a missing key into
// domain.ErrCacheMiss so callers never see redis.Nil.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis-backed cache store.
func NewRedisCache(client *redis.Client) domain.CacheStore {
	return &RedisCache{client: client}
}

// Set implements domain.CacheStore. A zero ttl stores the key without expiry.
func (c *RedisCache) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Get implements domain.CacheStore
func (c *RedisCache) Get(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", domain.ErrCacheMiss
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// Del implements domain.CacheStore
func (c *RedisCache) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}

// Incr implements domain.CacheStore
func (c *RedisCache) Incr(ctx context.Context, key string) (int64, error) {
	return c.client.Incr(ctx, key).Result()
}

// Expire implements domain.CacheStore
func (c *RedisCache) Expire(ctx context.Context, key string, ttl time.Duration) error {
	return c.client.Expire(ctx, key, ttl).Err()
}

// TTL implements domain.CacheStore. Returns a negative duration when the key
// does not exist or has no expiry, mirroring the Redis convention.
func (c *RedisCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	return c.client.TTL(ctx, key).Result()
}
