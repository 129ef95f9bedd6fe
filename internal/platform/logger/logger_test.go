package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credkit/internal/platform/config"
)

func TestNewWithWriter(t *testing.T) {
	t.Run("json by default", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(config.LogConfig{Level: slog.LevelInfo}, &buf)
		log.Info("client added", "client_id", "abc")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "client added", entry["msg"])
		assert.Equal(t, "abc", entry["client_id"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		log := NewWithWriter(config.LogConfig{Level: slog.LevelWarn, Format: "text"}, &buf)
		log.Info("dropped")
		assert.Empty(t, buf.String())
		log.Warn("kept")
		assert.Contains(t, buf.String(), "msg=kept")
	})
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credkit.log")
	log, closer := New(config.LogConfig{File: path, MaxSizeMB: 1})
	log.Info("written to file")
	require.NoError(t, closer.Close())
	assert.FileExists(t, path)
}
