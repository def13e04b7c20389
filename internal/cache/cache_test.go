package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func TestNoopAlwaysMisses(t *testing.T) {
	c := Noop{}
	ctx := context.Background()

	c.Set(ctx, "k", "v", time.Minute)
	if _, ok := c.Get(ctx, "k"); ok {
		t.Fatal("noop cache returned a hit")
	}
}

func TestRedisRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := NewRedis(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	ctx := context.Background()

	if _, ok := c.Get(ctx, "insight:business"); ok {
		t.Fatal("unexpected hit on empty cache")
	}

	c.Set(ctx, "insight:business", "stock up on dairy", time.Minute)
	got, ok := c.Get(ctx, "insight:business")
	if !ok || got != "stock up on dairy" {
		t.Fatalf("get = (%q, %v), want hit", got, ok)
	}

	mr.FastForward(2 * time.Minute)
	if _, ok := c.Get(ctx, "insight:business"); ok {
		t.Fatal("entry survived past its ttl")
	}
}
