// Package redis stores roster data in Redis so several server instances share
// one roster.
package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"credkit/internal/storage"
	"credkit/pkg/platform/sentinel"
)

// Store is a Redis-backed storage.KV. Values are plain strings under the
// caller's namespaced keys.
type Store struct {
	client redis.UniversalClient
}

func New(client redis.UniversalClient) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	value, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: get %s: %w", key, err)
	}
	return value, nil
}

// Set writes without expiry: roster data is durable, not a cache.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis: set %s: %w", key, err)
	}
	return nil
}

// maxUpdateAttempts bounds optimistic retries when another writer touches the
// key between WATCH and EXEC.
const maxUpdateAttempts = 10

// Update performs an optimistic read-modify-write using WATCH/MULTI/EXEC.
// Returns sentinel.ErrConflict if every attempt lost the race.
func (s *Store) Update(ctx context.Context, key string, fn storage.MutateFunc) error {
	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, key).Bytes()
		found := true
		if errors.Is(err, redis.Nil) {
			current, found = nil, false
		} else if err != nil {
			return fmt.Errorf("redis: get %s: %w", key, err)
		}

		next, err := fn(current, found)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, next, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("redis: update %s: %w", key, sentinel.ErrConflict)
}
