package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"CREDKIT_ADDR", "CREDKIT_STORAGE", "KAFKA_BROKERS", "LOG_LEVEL", "REDIS_POOL_SIZE", "CREDKIT_WRITE_RATE"} {
		t.Setenv(key, "")
	}

	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, StorageMemory, cfg.Storage)
	assert.Equal(t, "credkit", cfg.StorageNamespace)
	assert.False(t, cfg.Kafka.Enabled())
	assert.Equal(t, slog.LevelInfo, cfg.Log.Level)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5.0, cfg.WriteRate)
	assert.Equal(t, 10, cfg.WriteBurst)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("CREDKIT_ADDR", ":9090")
	t.Setenv("CREDKIT_STORAGE", "SQLite")
	t.Setenv("KAFKA_BROKERS", "localhost:9092, ,broker-2:9092")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_READ_TIMEOUT", "250ms")
	t.Setenv("REDIS_POOL_SIZE", "not-a-number")
	t.Setenv("CREDKIT_WRITE_RATE", "0")

	cfg := FromEnv()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, StorageSQLite, cfg.Storage)
	assert.Equal(t, []string{"localhost:9092", "broker-2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.Kafka.Enabled())
	assert.Equal(t, slog.LevelDebug, cfg.Log.Level)
	assert.Equal(t, 250*time.Millisecond, cfg.Redis.ReadTimeout)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Zero(t, cfg.WriteRate, "explicit zero disables the limiter")
}
