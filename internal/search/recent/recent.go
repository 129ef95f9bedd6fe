// Package recent keeps the most-recent-first history of submitted search terms.
package recent

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"

	"credkit/internal/search/engine"
	"credkit/internal/search/metrics"
	"credkit/internal/storage"
	"credkit/pkg/platform/sentinel"
	pstrings "credkit/pkg/platform/strings"
)

// MaxRecent is the history length.
const MaxRecent = 8

// History stores normalized terms under a single storage key. Reads and writes
// never fail: corrupt data reads as an empty history, and write errors are
// logged and dropped.
type History struct {
	kv      storage.KV
	key     string
	logger  *slog.Logger
	metrics *metrics.Metrics
	mu      sync.Mutex
}

type Option func(*History)

func WithLogger(logger *slog.Logger) Option {
	return func(h *History) {
		h.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(h *History) {
		h.metrics = m
	}
}

// WithStorageKey overrides the key the history is persisted under.
func WithStorageKey(key string) Option {
	return func(h *History) {
		h.key = key
	}
}

// New returns a History over kv. A nil kv behaves as storage.Unavailable.
func New(kv storage.KV, opts ...Option) *History {
	if kv == nil {
		kv = storage.Unavailable{}
	}
	h := &History{
		kv:  kv,
		key: storage.Key(storage.DefaultNamespace, storage.RecentSearchesKey),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h
}

// Add records term at the front of the history, removing any earlier
// occurrence and keeping at most MaxRecent entries. Blank terms are ignored.
func (h *History) Add(ctx context.Context, term string) {
	term = engine.Normalize(term)
	if term == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	err := storage.Mutate(ctx, h.kv, h.key, func(current []byte, found bool) ([]byte, error) {
		var existing []string
		if found {
			if err := json.Unmarshal(current, &existing); err != nil {
				h.logger.WarnContext(ctx, "failed to parse recent searches, resetting", "error", err)
				existing = nil
			}
		}
		return json.Marshal(pstrings.PrependUnique(existing, term, MaxRecent))
	})
	switch {
	case err == nil:
		if h.metrics != nil {
			h.metrics.IncrementRecentWrites()
		}
	case errors.Is(err, sentinel.ErrUnavailable):
	default:
		h.logger.WarnContext(ctx, "failed to record recent search", "error", err)
		if h.metrics != nil {
			h.metrics.IncrementRecentFailures()
		}
	}
}

// List returns the history, most recent first.
func (h *History) List(ctx context.Context) []string {
	terms, err := storage.LoadJSON[[]string](ctx, h.kv, h.key)
	switch {
	case err == nil:
	case errors.Is(err, sentinel.ErrNotFound), errors.Is(err, sentinel.ErrUnavailable):
		return []string{}
	case errors.Is(err, storage.ErrCorrupt):
		h.logger.WarnContext(ctx, "failed to parse recent searches", "error", err)
		return []string{}
	default:
		h.logger.WarnContext(ctx, "failed to read recent searches", "error", err)
		return []string{}
	}
	if terms == nil {
		return []string{}
	}
	return terms
}
