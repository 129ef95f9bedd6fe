package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"credkit/internal/platform/config"
	platformredis "credkit/internal/platform/redis"
	"credkit/internal/storage"
	"credkit/internal/storage/postgres"
	storageredis "credkit/internal/storage/redis"
	"credkit/internal/storage/sqlite"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenStorage returns the backend selected by cfg.Storage and a closer that
// releases it.
func OpenStorage(ctx context.Context, cfg config.Server, logger *slog.Logger) (storage.KV, io.Closer, error) {
	switch cfg.Storage {
	case config.StorageMemory, "":
		return storage.NewInMemory(), nopCloser{}, nil
	case config.StorageNone:
		logger.WarnContext(ctx, "persistent storage disabled, writes will not be saved")
		return storage.Unavailable{}, nopCloser{}, nil
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case config.StorageRedis:
		if cfg.Redis.URL == "" {
			return nil, nil, fmt.Errorf("storage %q requires REDIS_URL", cfg.Storage)
		}
		client, err := platformredis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		return storageredis.New(client.Client), client, nil
	case config.StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("storage %q requires DATABASE_URL", cfg.Storage)
		}
		store, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
