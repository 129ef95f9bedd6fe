package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"credkit/internal/platform/middleware"
	"credkit/internal/roster/events"
	"credkit/internal/roster/models"
	dErrors "credkit/pkg/domain-errors"
	"credkit/pkg/platform/httputil"
)

const (
	maxBodyBytes     = 64 << 10
	requestTimeout   = 30 * time.Second
	streamBufferSize = 4
)

// Service defines the roster operations used by the handler.
type Service interface {
	Roster(ctx context.Context) []models.ClientRecord
	AddClient(ctx context.Context, req models.AddClientRequest) (*models.ClientRecord, error)
	Subscribe(cb events.Listener) (unsubscribe func())
}

// Handler serves the roster endpoints.
type Handler struct {
	logger    *slog.Logger
	roster    Service
	validate  *validator.Validate
	heartbeat time.Duration
	throttle  func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithHeartbeat sets the keepalive interval of the event streams.
func WithHeartbeat(d time.Duration) Option {
	return func(h *Handler) {
		if d > 0 {
			h.heartbeat = d
		}
	}
}

// WithWriteThrottle guards POST /clients, typically with a rate limiter.
func WithWriteThrottle(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		if mw != nil {
			h.throttle = mw
		}
	}
}

// New creates a roster Handler.
func New(roster Service, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		logger:    logger,
		roster:    roster,
		validate:  newValidator(),
		heartbeat: 15 * time.Second,
		throttle:  passthrough,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the roster routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/clients", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.Timeout(requestTimeout))
			r.Use(middleware.ContentTypeJSON)
			r.Get("/", h.handleListClients)
			r.With(h.throttle).Post("/", h.handleAddClient)
		})
		r.Get("/events", h.handleEvents)
		r.Get("/ws", h.handleWebSocket)
	})
}

func passthrough(next http.Handler) http.Handler {
	return next
}

func (h *Handler) handleListClients(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, toRosterResponse(h.roster.Roster(r.Context())))
}

func (h *Handler) handleAddClient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var body AddClientRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "invalid add client request",
			"request_id", requestID,
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return
	}
	if err := body.Validate(h.validate); err != nil {
		h.logger.InfoContext(ctx, "add client request rejected",
			"request_id", requestID,
			"field", dErrors.FieldOf(err),
		)
		httputil.WriteError(w, err)
		return
	}

	record, err := h.roster.AddClient(ctx, body.ToModel())
	if err != nil {
		switch {
		case dErrors.HasCode(err, dErrors.CodeValidation), dErrors.HasCode(err, dErrors.CodeConflict):
			h.logger.InfoContext(ctx, "add client rejected",
				"request_id", requestID,
				"code", string(dErrors.CodeOf(err)),
				"field", dErrors.FieldOf(err),
			)
		default:
			h.logger.ErrorContext(ctx, "failed to add client",
				"request_id", requestID,
				"error", err.Error(),
			)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, toClientResponse(record))
}

// subscribe returns the current roster and a channel of later snapshots.
// The listener never blocks the writer: a slow consumer keeps only the most
// recent snapshots.
func (h *Handler) subscribe(ctx context.Context) ([]models.ClientRecord, <-chan []models.ClientRecord, func()) {
	updates := make(chan []models.ClientRecord, streamBufferSize)
	unsubscribe := h.roster.Subscribe(func(clients []models.ClientRecord) {
		for {
			select {
			case updates <- clients:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	return h.roster.Roster(ctx), updates, unsubscribe
}

func (h *Handler) handleEvents(w http.ResponseWriter, r *http.Request) {
	sse, err := newSSEWriter(w)
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeInternal, "stream unavailable"))
		return
	}
	ctx := r.Context()

	current, updates, unsubscribe := h.subscribe(ctx)
	defer unsubscribe()

	if err := sse.WriteEvent(eventRoster, toRosterResponse(current)); err != nil {
		return
	}

	heartbeat := time.NewTicker(h.heartbeat)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			if err := sse.WriteComment("keepalive"); err != nil {
				return
			}
		case clients := <-updates:
			if err := sse.WriteEvent(eventRoster, toRosterResponse(clients)); err != nil {
				h.logger.DebugContext(ctx, "roster stream closed", "error", err)
				return
			}
		}
	}
}
