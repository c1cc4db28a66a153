package markers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists markers in Redis, for portal shells that outlive a
// single process. Keys carry no TTL: the lifecycle contract is identical
// to the in-memory store, set on admin resolution and removed only by an
// explicit Clear.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore creates a store under the given key prefix.
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "af"
	}
	return &RedisStore{
		client: client,
		key:    prefix + ":markers:admin",
	}
}

// Put describes the put operation and its observable behavior.
//
// Put may return an error when input validation, dependency calls, or security checks fail.
// Put does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Put(ctx context.Context, m Markers) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("markers: encode: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Get describes the get operation and its observable behavior.
//
// Get may return an error when input validation, dependency calls, or security checks fail.
// Get does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Get(ctx context.Context) (Markers, bool, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Markers{}, false, nil
		}
		return Markers{}, false, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var m Markers
	if err := json.Unmarshal(data, &m); err != nil {
		// A corrupt blob is treated as absent rather than trusted.
		return Markers{}, false, nil
	}
	return m, true, nil
}

// Clear describes the clear operation and its observable behavior.
//
// Clear may return an error when input validation, dependency calls, or security checks fail.
// Clear does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}
