package ratelimit

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore keeps request timestamps in a Redis sorted set per key, scored
// by unix nanoseconds, so multiple API instances share one window.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: "ratelimit:"}
}

// CountSince drops expired members then counts the rest.
func (s *RedisStore) CountSince(ctx context.Context, key string, since time.Time) (int, error) {
	redisKey := s.prefix + key
	cutoff := strconv.FormatInt(since.UnixNano(), 10)
	if err := s.client.ZRemRangeByScore(ctx, redisKey, "-inf", "("+cutoff).Err(); err != nil {
		return 0, err
	}
	count, err := s.client.ZCard(ctx, redisKey).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// Record adds one member and refreshes the key TTL so idle keys expire.
func (s *RedisStore) Record(ctx context.Context, key string, at time.Time, ttl time.Duration) error {
	redisKey := s.prefix + key
	score := float64(at.UnixNano())
	member := strconv.FormatInt(at.UnixNano(), 10)
	pipe := s.client.TxPipeline()
	pipe.ZAdd(ctx, redisKey, redis.Z{Score: score, Member: member})
	pipe.Expire(ctx, redisKey, ttl+time.Second)
	_, err := pipe.Exec(ctx)
	return err
}
