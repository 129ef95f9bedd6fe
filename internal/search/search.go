package search

import (
	"log/slog"

	"credkit/internal/search/catalog"
	"credkit/internal/search/engine"
	"credkit/internal/search/handler"
	"credkit/internal/search/metrics"
	"credkit/internal/search/recent"
	"credkit/internal/storage"
)

// Engine answers queries over the catalog.
type Engine = engine.Engine

// History is the persisted list of recent search terms.
type History = recent.History

// Handler wires HTTP endpoints to the engine and history.
type Handler = handler.Handler

// NewEngine builds an engine whose Clients category follows roster.
func NewEngine(roster catalog.RosterSource, m *metrics.Metrics) *Engine {
	return engine.New(catalog.New(roster), engine.WithMetrics(m))
}

// NewHistory constructs the recent-search history over kv.
func NewHistory(kv storage.KV, namespace string, logger *slog.Logger, m *metrics.Metrics) *History {
	return recent.New(kv,
		recent.WithStorageKey(storage.Key(namespace, storage.RecentSearchesKey)),
		recent.WithLogger(logger),
		recent.WithMetrics(m),
	)
}

// NewHandler constructs the HTTP handler for the /search routes.
func NewHandler(e *Engine, h *History, logger *slog.Logger, opts ...handler.Option) *Handler {
	return handler.New(e, h, logger, opts...)
}
