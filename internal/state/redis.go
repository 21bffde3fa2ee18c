package state

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cooldownKeyPrefix = "beacon:cooldown:"

// RedisTracker stores cooldown windows as Redis keys with a TTL, so
// suppression state is shared and survives a process restart.
type RedisTracker struct {
	client *redis.Client
}

func NewRedisTracker(addr string) *RedisTracker {
	return &RedisTracker{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

// Ping verifies connectivity at startup.
func (t *RedisTracker) Ping(ctx context.Context) error {
	return t.client.Ping(ctx).Err()
}

func (t *RedisTracker) Active(ctx context.Context, ruleID string) (bool, error) {
	n, err := t.client.Exists(ctx, cooldownKeyPrefix+ruleID).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (t *RedisTracker) Mark(ctx context.Context, ruleID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return t.client.Set(ctx, cooldownKeyPrefix+ruleID, "1", ttl).Err()
}

func (t *RedisTracker) Close() error {
	return t.client.Close()
}

var _ Tracker = (*RedisTracker)(nil)
