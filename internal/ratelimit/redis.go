package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:ip:"

// RedisStore keeps windows in Redis so replicas share one counter per
// caller. INCR is atomic server-side, satisfying the no-lost-updates
// requirement without client locking.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore wraps an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

// Increment implements Store. The TTL is set only when the key has none,
// so the window is fixed from the first request rather than sliding.
func (s *RedisStore) Increment(ctx context.Context, key string, windowLen time.Duration) (int64, error) {
	redisKey := redisKeyPrefix + key

	pipe := s.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.ExpireNX(ctx, redisKey, windowLen)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, err
	}
	return incr.Val(), nil
}
