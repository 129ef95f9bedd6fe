package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Storage backends selectable with CREDKIT_STORAGE.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageNone     = "none"
)

// Server captures process level configuration.
type Server struct {
	Addr             string
	Storage          string
	StorageNamespace string
	SQLitePath       string
	DatabaseURL      string
	Redis            RedisConfig
	Kafka            KafkaConfig
	Log              LogConfig
	WriteRate        float64
	WriteBurst       int
	ShutdownTimeout  time.Duration
}

// RedisConfig configures the go-redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the roster-changed forwarder. No brokers disables it.
type KafkaConfig struct {
	Brokers     []string
	RosterTopic string
	ClientID    string
}

// Enabled reports whether any broker is configured.
func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

// LogConfig selects the slog handler. File enables rotation through lumberjack.
type LogConfig struct {
	Level      slog.Level
	Format     string
	File       string
	MaxSizeMB  int
	MaxBackups int
}

// FromEnv builds a Server config from environment variables so main stays lean.
// A .env file in the working directory is loaded first when present; real
// environment variables take precedence over it.
func FromEnv() Server {
	_ = godotenv.Load()

	return Server{
		Addr:             getString("CREDKIT_ADDR", ":8080"),
		Storage:          strings.ToLower(getString("CREDKIT_STORAGE", StorageMemory)),
		StorageNamespace: getString("CREDKIT_STORAGE_NAMESPACE", "credkit"),
		SQLitePath:       getString("CREDKIT_SQLITE_PATH", "credkit.db"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Brokers:     splitList(os.Getenv("KAFKA_BROKERS")),
			RosterTopic: getString("KAFKA_ROSTER_TOPIC", "credkit.roster.changed"),
			ClientID:    getString("KAFKA_CLIENT_ID", "credkit"),
		},
		Log: LogConfig{
			Level:      parseLevel(os.Getenv("LOG_LEVEL")),
			Format:     strings.ToLower(getString("LOG_FORMAT", "json")),
			File:       os.Getenv("LOG_FILE"),
			MaxSizeMB:  getInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getInt("LOG_MAX_BACKUPS", 3),
		},
		WriteRate:       getFloat("CREDKIT_WRITE_RATE", 5),
		WriteBurst:      getInt("CREDKIT_WRITE_BURST", 10),
		ShutdownTimeout: getDuration("CREDKIT_SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

// getFloat keeps an explicit 0, which disables the write rate limit.
func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil || v < 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(v string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
		return slog.LevelInfo
	}
	return level
}
