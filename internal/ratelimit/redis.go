package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// redisStore is a fixed-window counter: INCR the key, set the expiry on the
// first hit in the window, deny once the count exceeds the limit. Shared
// across processes, so it is the store of choice when the API runs more than
// one replica.
type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis creates the Redis-backed store.
func NewRedis(addr, password string) Store {
	return &redisStore{
		client: redis.NewClient(&redis.Options{Addr: addr, Password: password}),
		prefix: "portfolio:ratelimit:",
	}
}

func (s *redisStore) Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, time.Duration, error) {
	if limit <= 0 {
		return true, 0, nil
	}
	if window <= 0 {
		window = time.Minute
	}
	fullKey := s.prefix + key

	count, err := s.client.Incr(ctx, fullKey).Result()
	if err != nil {
		return false, 0, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, fullKey, window).Err(); err != nil {
			return false, 0, err
		}
	}
	if count <= int64(limit) {
		return true, 0, nil
	}

	ttl, err := s.client.TTL(ctx, fullKey).Result()
	if err != nil || ttl < 0 {
		ttl = window
	}
	return false, ttl, nil
}
