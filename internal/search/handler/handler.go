// Package handler serves the global search HTTP endpoints.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"credkit/internal/platform/middleware"
	"credkit/internal/search/catalog"
	"credkit/internal/search/engine"
	dErrors "credkit/pkg/domain-errors"
	"credkit/pkg/platform/httputil"
)

const (
	maxBodyBytes   = 4 << 10
	requestTimeout = 10 * time.Second
)

// Engine answers queries.
type Engine interface {
	Search(ctx context.Context, term string) []catalog.Group
	Suggest(ctx context.Context, term string, limit int) []string
}

// History stores and lists recent search terms.
type History interface {
	Add(ctx context.Context, term string)
	List(ctx context.Context) []string
}

type Handler struct {
	logger   *slog.Logger
	engine   Engine
	history  History
	throttle func(http.Handler) http.Handler
}

type Option func(*Handler)

// WithWriteThrottle guards the endpoints that record history.
func WithWriteThrottle(mw func(http.Handler) http.Handler) Option {
	return func(h *Handler) {
		if mw != nil {
			h.throttle = mw
		}
	}
}

func New(engine Engine, history History, logger *slog.Logger, opts ...Option) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	h := &Handler{
		logger:   logger,
		engine:   engine,
		history:  history,
		throttle: func(next http.Handler) http.Handler { return next },
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the search routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/search", func(r chi.Router) {
		r.Use(middleware.Timeout(requestTimeout))
		r.Use(middleware.ContentTypeJSON)
		r.Get("/", h.handleSearch)
		r.Get("/recent", h.handleListRecent)
		r.With(h.throttle).Post("/recent", h.handleAddRecent)
		r.With(h.throttle).Post("/submit", h.handleSubmit)
	})
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query().Get("q")
	if err := (&TermRequest{Term: query}).Validate(); err != nil {
		httputil.WriteError(w, err)
		return
	}

	groups := h.engine.Search(ctx, query)
	resp := SearchResponse{Query: query, Groups: toGroupResponses(groups)}
	if len(groups) == 0 && strings.TrimSpace(query) != "" {
		resp.Suggestions = h.engine.Suggest(ctx, query, engine.DefaultSuggestions)
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListRecent(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, RecentResponse{Recent: h.history.List(r.Context())})
}

func (h *Handler) handleAddRecent(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeTerm(w, r)
	if !ok {
		return
	}
	h.history.Add(r.Context(), body.Term)
	w.WriteHeader(http.StatusNoContent)
}

// handleSubmit records the term and returns the results page to navigate to.
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, ok := h.decodeTerm(w, r)
	if !ok {
		return
	}
	clean := strings.TrimSpace(body.Term)
	if clean == "" {
		httputil.WriteError(w, dErrors.NewField(dErrors.CodeValidation, "term", "term is required"))
		return
	}
	h.history.Add(r.Context(), clean)
	httputil.WriteJSON(w, http.StatusOK, SubmitResponse{URL: engine.BuildSearchURL(clean)})
}

func (h *Handler) decodeTerm(w http.ResponseWriter, r *http.Request) (*TermRequest, bool) {
	ctx := r.Context()
	var body TermRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&body); err != nil {
		h.logger.WarnContext(ctx, "invalid search request",
			"request_id", middleware.GetRequestID(ctx),
			"error", err.Error(),
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid request body"))
		return nil, false
	}
	if err := body.Validate(); err != nil {
		httputil.WriteError(w, err)
		return nil, false
	}
	return &body, true
}
