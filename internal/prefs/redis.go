package prefs

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists preferences in redis. Shared front-desk terminals
// point at the same instance so a host discovered on one seat carries
// over to the others.
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore creates a redis-backed preference store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{redis: client}
}

func (s *RedisStore) key(k string) string {
	return namespace + k
}

// Get retrieves a preference, returning "" when unset.
func (s *RedisStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.redis.Get(ctx, s.key(key)).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("prefs: get %s: %w", key, err)
	}
	return val, nil
}

// Set stores a preference without expiry.
func (s *RedisStore) Set(ctx context.Context, key, value string) error {
	if err := s.redis.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return fmt.Errorf("prefs: set %s: %w", key, err)
	}
	return nil
}

// Delete removes a preference. Deleting an absent key is not an error.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.redis.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("prefs: delete %s: %w", key, err)
	}
	return nil
}
