package cache

import (
	"context"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/platform/obs"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"
)

// RedisGeocodeCache maps normalized address strings to coordinates.
// Geocodes do not expire.
type RedisGeocodeCache struct {
	rdb *redis.Client
}

func NewRedisGeocodeCache(rdb *redis.Client) *RedisGeocodeCache {
	return &RedisGeocodeCache{rdb: rdb}
}

func geocodeKey(address string) string {
	return "geocode:" + address
}

// Fetch cached coordinates for the given addresses. Misses are absent from the result.
func (c *RedisGeocodeCache) GetMany(
	ctx context.Context,
	addresses []string,
) (_ map[string]domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.cache.GetMany")(&err)

	if c.rdb == nil {
		return nil, errors.New("geocode cache: redis client is nil")
	}

	uniq := make([]string, 0, len(addresses))
	seen := make(map[string]struct{}, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
	}

	out := make(map[string]domain.Coordinates, len(uniq))
	if len(uniq) == 0 {
		return out, nil
	}

	cmds := make([]*redis.SliceCmd, len(uniq))
	_, err = c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for i, a := range uniq {
			cmds[i] = pipe.HMGet(ctx, geocodeKey(a), "lon", "lat")
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("get geocode cache: pipeline: %w", err)
	}

	for i, a := range uniq {
		vals, err := cmds[i].Result()
		if err != nil {
			return nil, fmt.Errorf("get geocode cache: hmget %q: %w", a, err)
		}
		if len(vals) != 2 || vals[0] == nil || vals[1] == nil {
			continue
		}

		lon, err := parseCoord(vals[0])
		if err != nil {
			return nil, fmt.Errorf("get geocode cache: lon for %q: %w", a, err)
		}
		lat, err := parseCoord(vals[1])
		if err != nil {
			return nil, fmt.Errorf("get geocode cache: lat for %q: %w", a, err)
		}
		out[a] = domain.Coordinates{Lon: lon, Lat: lat}
	}

	return out, nil
}

// Store coordinates for many addresses in one round trip.
func (c *RedisGeocodeCache) PutMany(ctx context.Context, coords map[string]domain.Coordinates) error {
	if c.rdb == nil {
		return errors.New("geocode cache: redis client is nil")
	}
	if len(coords) == 0 {
		return nil
	}

	_, err := c.rdb.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for a, coord := range coords {
			if strings.TrimSpace(a) == "" {
				return errors.New("insert geocode cache: empty address key")
			}
			pipe.HSet(ctx, geocodeKey(a), "lon", coord.Lon, "lat", coord.Lat)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert geocode cache: %w", err)
	}

	return nil
}

func parseCoord(v any) (float64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("unexpected type %T", v)
	}
	return strconv.ParseFloat(s, 64)
}
