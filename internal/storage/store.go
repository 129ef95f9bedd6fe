// Package storage defines the durable key-value port that backs the roster and
// the recent-search history.
//
// Values are opaque bytes (JSON documents in practice) stored under a small
// set of fixed keys. Backends are interchangeable so the same service code runs
// against memory, a local SQLite file, Redis or PostgreSQL.
package storage

//go:generate mockgen -source=store.go -destination=mocks/mocks.go -package=mocks KV,Updater

import (
	"context"
	"errors"
	"strings"

	"credkit/pkg/platform/sentinel"
)

// KV is the minimal persistence contract.
//
// Get returns sentinel.ErrNotFound when the key has never been written and
// sentinel.ErrUnavailable when no backend is reachable in this environment.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Well-known key names, joined with a namespace by Key.
const (
	ClientsKey        = "clients"
	RecentSearchesKey = "recent-searches"
)

// DefaultNamespace matches the prefix used by existing persisted data.
const DefaultNamespace = "credkit"

// Key joins a namespace and a key name with ':'.
func Key(namespace, name string) string {
	namespace = strings.TrimSpace(namespace)
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return namespace + ":" + name
}

// MutateFunc computes the next value of a key from its current value.
// found is false when the key has never been written.
type MutateFunc func(current []byte, found bool) ([]byte, error)

// Updater is implemented by backends that can run a read-modify-write cycle
// atomically with respect to other writers of the same key, including writers
// in other processes. fn may be invoked more than once if the backend retries.
type Updater interface {
	Update(ctx context.Context, key string, fn MutateFunc) error
}

// Mutate runs fn against key atomically when kv implements Updater, and as a
// plain Get-then-Set otherwise. Errors from fn are returned unchanged and
// nothing is written.
func Mutate(ctx context.Context, kv KV, key string, fn MutateFunc) error {
	if u, ok := kv.(Updater); ok {
		return u.Update(ctx, key, fn)
	}
	current, err := kv.Get(ctx, key)
	found := err == nil
	if err != nil && !errors.Is(err, sentinel.ErrNotFound) {
		return err
	}
	next, err := fn(current, found)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, next)
}
