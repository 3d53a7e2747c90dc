package redis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"account-transfer-service/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

// inflightMarker is the value held under a key between Reserve and Set.
var inflightMarker = []byte("\x00inflight")

// releaseScript deletes a key only while it still holds the in-flight marker,
// so a late Release never drops a stored response.
var releaseScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore implements ports.IdempotencyStore using Redis.
// A key is either absent, reserved by a request in flight, or holds the
// serialized response of the request that completed under it.
type IdempotencyStore struct {
	client *goredis.Client
	prefix string
}

// NewIdempotencyStore creates a new Redis-backed idempotency store.
func NewIdempotencyStore(client *goredis.Client) *IdempotencyStore {
	return &IdempotencyStore{
		client: client,
		prefix: "idempotency:",
	}
}

// Get returns the stored response for key.
// Returns nil, nil if the key is absent or still in flight.
func (s *IdempotencyStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis idempotency get: %w", err)
	}
	if bytes.Equal(val, inflightMarker) {
		return nil, nil
	}
	return val, nil
}

// Reserve claims key for the caller with SET NX.
// Returns false if the key is already reserved or completed.
func (s *IdempotencyStore) Reserve(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	result, err := s.client.SetArgs(ctx, s.prefix+key, inflightMarker, goredis.SetArgs{
		Mode: "NX",
		TTL:  ttl,
	}).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis idempotency reserve: %w", err)
	}
	return result == "OK", nil
}

// Set stores the response under key, replacing any reservation.
func (s *IdempotencyStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.prefix+key, value, ttl).Err(); err != nil {
		return fmt.Errorf("redis idempotency set: %w", err)
	}
	return nil
}

// Release drops a reservation so the key can be retried.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{s.prefix + key}, inflightMarker).Err(); err != nil && !errors.Is(err, goredis.Nil) {
		return fmt.Errorf("redis idempotency release: %w", err)
	}
	return nil
}
