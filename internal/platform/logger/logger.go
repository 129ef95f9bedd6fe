package logger

import (
	"io"
	"log/slog"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"credkit/internal/platform/config"
)

// New builds the process logger. Output goes to stdout, or to a rotated file
// when cfg.File is set. The returned closer releases the file and is a no-op
// for stdout.
func New(cfg config.LogConfig) (*slog.Logger, io.Closer) {
	if cfg.File == "" {
		return NewWithWriter(cfg, os.Stdout), io.NopCloser(nil)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		Compress:   true,
	}
	return NewWithWriter(cfg, rotator), rotator
}

// NewWithWriter builds a logger writing to w in the configured format.
func NewWithWriter(cfg config.LogConfig, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
