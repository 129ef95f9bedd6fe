package storage

import (
	"context"
	"encoding/json"
	"fmt"
)

// LoadJSON reads key and decodes it into T.
//
// Backend errors (including sentinel.ErrNotFound and sentinel.ErrUnavailable)
// are returned unchanged. A value that does not decode into T is reported as
// ErrCorrupt.
func LoadJSON[T any](ctx context.Context, kv KV, key string) (T, error) {
	var out T
	raw, err := kv.Get(ctx, key)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %s: %v", ErrCorrupt, key, err)
	}
	return out, nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, kv KV, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, raw)
}
