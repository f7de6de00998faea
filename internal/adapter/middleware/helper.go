package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

func nowUTC() time.Time { return time.Now().UTC() }

func buildKey(method, path, clientID string) string {
	return "busy:" + strings.ToLower(method) + ":" + path + ":" + clientID
}

// ---- Redis helpers ----
func acquire(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) (bool, error) {
	return rdb.SetNX(ctx, key, nowUTC().Format(time.RFC3339Nano), ttl).Result()
}

func release(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}
