package cache

import (
	"context"
	"delivery-cost-service/internal/domain"
	"delivery-cost-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisDistanceCacheRoundTrip(t *testing.T) {
	mr, rdb := newRedis(t)
	ctx := context.Background()
	c := NewRedisDistanceCache(rdb, time.Hour)

	_, ok, err := c.Get(ctx, "HUB", "A")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected miss on empty cache")
	}

	want := ports.DistanceResult{DistanceMeters: 12500, DurationSeconds: 900}
	if err := c.Put(ctx, "HUB", "A", want); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "HUB", "A")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || got != want {
		t.Fatalf("got %+v ok=%v, want %+v", got, ok, want)
	}

	// Pairs are directional.
	if _, ok, _ := c.Get(ctx, "A", "HUB"); ok {
		t.Fatal("reverse pair must not hit")
	}

	mr.FastForward(2 * time.Hour)
	if _, ok, _ := c.Get(ctx, "HUB", "A"); ok {
		t.Fatal("entry should have expired")
	}
}

func TestRedisDistanceCacheRejectsEmptyKeys(t *testing.T) {
	_, rdb := newRedis(t)
	c := NewRedisDistanceCache(rdb, 0)

	if _, _, err := c.Get(context.Background(), "", "A"); err == nil {
		t.Fatal("expected error for empty origin")
	}
	if err := c.Put(context.Background(), "HUB", "", ports.DistanceResult{}); err == nil {
		t.Fatal("expected error for empty destination")
	}
}

func TestRedisGeocodeCacheGetMany(t *testing.T) {
	_, rdb := newRedis(t)
	ctx := context.Background()
	c := NewRedisGeocodeCache(rdb)

	err := c.PutMany(ctx, map[string]domain.Coordinates{
		"1 Main St": {Lon: -112.07, Lat: 33.45},
		"2 Elm St":  {Lon: -111.9, Lat: 33.5},
	})
	if err != nil {
		t.Fatalf("put many: %v", err)
	}

	got, err := c.GetMany(ctx, []string{"1 Main St", " 1 Main St ", "3 Oak St", ""})
	if err != nil {
		t.Fatalf("get many: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d entries, want 1: %+v", len(got), got)
	}
	if c := got["1 Main St"]; c.Lon != -112.07 || c.Lat != 33.45 {
		t.Fatalf("coords = %+v", c)
	}
}
