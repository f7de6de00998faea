package redis

import (
	"context"
	"errors"

	"loanchain-web/internal/domain/session"

	goredis "github.com/redis/go-redis/v9"
)

// KV keeps each client's local storage in one hash: ls:<client-id>.
// Entries never expire.
type KV struct{ rdb *goredis.Client }

func NewKV(rdb *goredis.Client) *KV { return &KV{rdb: rdb} }

func hashKey(clientID string) string { return "ls:" + clientID }

func (s *KV) Get(ctx context.Context, clientID, key string) (string, error) {
	v, err := s.rdb.HGet(ctx, hashKey(clientID), key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", session.ErrNotFound
	}
	return v, err
}

func (s *KV) Set(ctx context.Context, clientID, key, value string) error {
	return s.rdb.HSet(ctx, hashKey(clientID), key, value).Err()
}

func (s *KV) Delete(ctx context.Context, clientID, key string) error {
	return s.rdb.HDel(ctx, hashKey(clientID), key).Err()
}
