package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// InsightCache holds generated advisory text keyed by topic. Implementations
// must treat the cache as best-effort: a miss or backend failure is never an
// application error.
type InsightCache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// Noop is the fallback when no redis address is configured.
type Noop struct{}

func (Noop) Get(context.Context, string) (string, bool)         { return "", false }
func (Noop) Set(context.Context, string, string, time.Duration) {}

type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool) {
	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key, value string, ttl time.Duration) {
	// Best effort; the caller regenerates on a future miss.
	_ = r.client.Set(ctx, key, value, ttl).Err()
}
