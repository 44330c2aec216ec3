package cache

import (
	"context"
	"delivery-cost-service/internal/platform/obs"
	"delivery-cost-service/internal/ports"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDistanceCache caches origin->destination road distances.
// Keys are expected to be normalized by the caller.
type RedisDistanceCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisDistanceCache returns a cache whose entries expire after ttl; zero keeps them forever.
func NewRedisDistanceCache(rdb *redis.Client, ttl time.Duration) *RedisDistanceCache {
	return &RedisDistanceCache{rdb: rdb, ttl: ttl}
}

func distanceKey(origin, destination string) string {
	return fmt.Sprintf("distance:%s|%s", origin, destination)
}

// Get returns the cached result and whether it was present.
func (c *RedisDistanceCache) Get(
	ctx context.Context,
	origin string,
	destination string,
) (_ ports.DistanceResult, _ bool, err error) {
	defer obs.Time(ctx, "distance.cache.Get")(&err)

	if c.rdb == nil {
		return ports.DistanceResult{}, false, errors.New("distance cache: redis client is nil")
	}
	if origin == "" || destination == "" {
		return ports.DistanceResult{}, false, errors.New("get distance cache: origin and destination must not be empty")
	}

	fields, err := c.rdb.HGetAll(ctx, distanceKey(origin, destination)).Result()
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: hgetall: %w", err)
	}
	if len(fields) == 0 {
		return ports.DistanceResult{}, false, nil
	}

	meters, err := strconv.Atoi(fields["meters"])
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: parse meters: %w", err)
	}
	seconds, err := strconv.Atoi(fields["seconds"])
	if err != nil {
		return ports.DistanceResult{}, false, fmt.Errorf("get distance cache: parse seconds: %w", err)
	}

	return ports.DistanceResult{DistanceMeters: meters, DurationSeconds: seconds}, true, nil
}

// Put stores a result for the origin->destination pair.
func (c *RedisDistanceCache) Put(
	ctx context.Context,
	origin string,
	destination string,
	r ports.DistanceResult,
) error {
	if c.rdb == nil {
		return errors.New("distance cache: redis client is nil")
	}
	if origin == "" || destination == "" {
		return errors.New("insert distance cache: origin and destination must not be empty")
	}

	key := distanceKey(origin, destination)

	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, "meters", r.DistanceMeters, "seconds", r.DurationSeconds)
		if c.ttl > 0 {
			pipe.Expire(ctx, key, c.ttl)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert distance cache %q: %w", key, err)
	}

	return nil
}
