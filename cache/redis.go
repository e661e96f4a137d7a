package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// =============================================================================
// REDIS CACHE - Shared cache for multi-instance deployments
// =============================================================================

// DefaultTTL bounds how long a cached plan lives. Plans are pure
// functions of their input, so the TTL only limits memory growth.
const DefaultTTL = 24 * time.Hour

type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(addr string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{Addr: addr}),
		ttl:    DefaultTTL,
	}
}

func (r *Redis) Get(key string) (string, bool) {
	val, err := r.client.Get(context.Background(), key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(key string, value string) error {
	return r.client.Set(context.Background(), key, value, r.ttl).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}
