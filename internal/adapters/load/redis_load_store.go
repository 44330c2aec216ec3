package load

import (
	"context"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/platform/obs"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const redisLoadKey = "delivery:load"

// RedisLoadStore shares the current service load across server instances.
type RedisLoadStore struct {
	rdb      *redis.Client
	fallback domain.Load
}

// NewRedisLoadStore returns a store that reports fallback until a level is set.
func NewRedisLoadStore(rdb *redis.Client, fallback domain.Load) (*RedisLoadStore, error) {
	if rdb == nil {
		return nil, errors.New("redis load store: client is nil")
	}
	if !fallback.Valid() {
		return nil, fmt.Errorf("redis load store: invalid default load %q", fallback)
	}
	return &RedisLoadStore{rdb: rdb, fallback: fallback}, nil
}

func (s *RedisLoadStore) Current(ctx context.Context) (_ domain.Load, err error) {
	defer obs.Time(ctx, "load.redis.Current")(&err)

	v, err := s.rdb.Get(ctx, redisLoadKey).Result()
	if errors.Is(err, redis.Nil) {
		return s.fallback, nil
	}
	if err != nil {
		return "", fmt.Errorf("redis load store: get %s: %w", redisLoadKey, err)
	}

	l, err := domain.ParseLoad(v)
	if err != nil {
		return "", fmt.Errorf("redis load store: stored value: %w", err)
	}
	return l, nil
}

func (s *RedisLoadStore) Set(ctx context.Context, l domain.Load) (err error) {
	defer obs.Time(ctx, "load.redis.Set")(&err)

	if !l.Valid() {
		return fmt.Errorf("redis load store: invalid load %q", l)
	}
	if err := s.rdb.Set(ctx, redisLoadKey, string(l), 0).Err(); err != nil {
		return fmt.Errorf("redis load store: set %s: %w", redisLoadKey, err)
	}
	return nil
}
