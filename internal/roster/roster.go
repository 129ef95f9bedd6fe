package roster

import (
	"log/slog"

	"credkit/internal/roster/handler"
	"credkit/internal/roster/metrics"
	"credkit/internal/roster/publisher"
	"credkit/internal/roster/service"
	"credkit/internal/storage"
)

// Service owns the client roster and its change notifications.
type Service = service.Service

// Handler wires HTTP and streaming endpoints to the roster service.
type Handler = handler.Handler

// Forwarder republishes roster changes to Kafka.
type Forwarder = publisher.Forwarder

// NewService constructs the roster service over kv. The roster is stored under
// the clients key of namespace.
func NewService(kv storage.KV, namespace string, logger *slog.Logger, m *metrics.Metrics) *Service {
	return service.New(kv,
		service.WithStorageKey(storage.Key(namespace, storage.ClientsKey)),
		service.WithLogger(logger),
		service.WithMetrics(m),
	)
}

// NewHandler constructs the HTTP handler for the /clients routes.
func NewHandler(s *Service, logger *slog.Logger, opts ...handler.Option) *Handler {
	return handler.New(s, logger, opts...)
}
