// Package redis connects the shared go-redis client used by the Redis
// storage backend.
package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"credkit/internal/platform/config"
)

// Client embeds the go-redis client so callers use its API directly.
type Client struct {
	*redis.Client
}

// New dials cfg.URL and PINGs it. An empty URL yields (nil, nil).
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}
	opts, err := Options(cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}
	return &Client{Client: rdb}, nil
}

// Options parses cfg.URL; positive pool and timeout settings override the
// URL's defaults.
func Options(cfg config.RedisConfig) (*redis.Options, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	override(&opts.PoolSize, cfg.PoolSize)
	override(&opts.MinIdleConns, cfg.MinIdleConns)
	override(&opts.DialTimeout, cfg.DialTimeout)
	override(&opts.ReadTimeout, cfg.ReadTimeout)
	override(&opts.WriteTimeout, cfg.WriteTimeout)
	return opts, nil
}

func override[T int | ~int64](dst *T, v T) {
	if v > 0 {
		*dst = v
	}
}
