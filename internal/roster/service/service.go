package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"credkit/internal/platform/tracing"
	"credkit/internal/roster/events"
	"credkit/internal/roster/metrics"
	"credkit/internal/roster/models"
	"credkit/internal/storage"
	dErrors "credkit/pkg/domain-errors"
	"credkit/pkg/pii"
	"credkit/pkg/platform/sentinel"
	"credkit/pkg/requestcontext"
)

// Duplicate-contact messages, shown to users verbatim.
const (
	MsgDuplicateEmail = "A client with this email already exists."
	MsgDuplicatePhone = "A client with this phone number already exists."
	MsgInvalidStage   = "Select a valid client stage."
)

// Service is the single source of truth for client records.
//
// Writes are read-modify-write cycles serialized by an in-process mutex and,
// when the backend implements storage.Updater, by the backend as well. There
// is no version field: a backend without Updater shared by several processes
// can still lose writes.
type Service struct {
	kv          storage.KV
	key         string
	broadcaster *events.Broadcaster
	logger      *slog.Logger
	metrics     *metrics.Metrics
	tracer      trace.Tracer
	newID       func() string

	mu sync.Mutex
}

type Option func(s *Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithBroadcaster shares a change channel with other components.
func WithBroadcaster(b *events.Broadcaster) Option {
	return func(s *Service) {
		s.broadcaster = b
	}
}

// WithIDGenerator overrides record ID generation.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) {
		s.newID = fn
	}
}

// WithStorageKey overrides the key the roster is persisted under.
func WithStorageKey(key string) Option {
	return func(s *Service) {
		s.key = key
	}
}

// New constructs a Service. A nil kv behaves as storage.Unavailable.
func New(kv storage.KV, opts ...Option) *Service {
	if kv == nil {
		kv = storage.Unavailable{}
	}
	s := &Service{
		kv:     kv,
		key:    storage.Key(storage.DefaultNamespace, storage.ClientsKey),
		tracer: tracing.Tracer("roster"),
		newID:  GenerateClientID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.broadcaster == nil {
		bopts := []events.Option{events.WithLogger(s.logger)}
		if s.metrics != nil {
			bopts = append(bopts, events.WithPanicObserver(s.metrics))
		}
		s.broadcaster = events.NewBroadcaster(bopts...)
	}
	return s
}

// Roster returns the persisted roster, or the seed set when nothing usable is
// persisted. It never fails: missing, empty, corrupt and unreachable storage
// all read as "no data".
func (s *Service) Roster(ctx context.Context) []models.ClientRecord {
	ctx, span := s.tracer.Start(ctx, "roster.Roster")
	defer span.End()

	raw, err := s.kv.Get(ctx, s.key)
	clients := s.decode(ctx, raw, err)
	span.SetAttributes(attribute.Int("roster.size", len(clients)))
	return clients
}

// AddClient validates req, rejects duplicate contacts, prepends the new record,
// persists the roster and notifies subscribers with the updated list.
//
// Validation failures carry dErrors.CodeValidation; duplicate contacts carry
// dErrors.CodeConflict with Field "email" or "phone". When no storage is
// available the record is returned without being persisted or broadcast.
func (s *Service) AddClient(ctx context.Context, req models.AddClientRequest) (*models.ClientRecord, error) {
	start := time.Now()
	defer s.observeAddClient(start)

	ctx, span := s.tracer.Start(ctx, "roster.AddClient")
	defer span.End()

	req.Normalize()
	if err := pii.ValidateContact(req.Contact(), requestcontext.Now(ctx)); err != nil {
		s.reject(metrics.ReasonValidation)
		return nil, err
	}
	if !req.Stage.IsValid() {
		s.reject(metrics.ReasonValidation)
		return nil, dErrors.NewField(dErrors.CodeValidation, "stage", MsgInvalidStage)
	}

	record := models.NewClientRecord(s.newID(), &req, requestcontext.Now(ctx))

	next, err := s.persist(ctx, record)
	switch {
	case err == nil:
	case errors.Is(err, sentinel.ErrUnavailable):
		if err := checkDuplicates(models.SeedClients(), &record); err != nil {
			s.reject(metrics.ReasonDuplicate)
			return nil, err
		}
		s.logger.WarnContext(ctx, "roster storage unavailable, client not persisted",
			"request_id", requestcontext.RequestID(ctx),
		)
		return &record, nil
	case dErrors.HasCode(err, dErrors.CodeConflict):
		s.reject(metrics.ReasonDuplicate)
		return nil, err
	default:
		s.reject(metrics.ReasonStorage)
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist roster")
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to save client")
	}

	if s.metrics != nil {
		s.metrics.IncrementClientsCreated()
	}
	s.logger.InfoContext(ctx, "client added",
		"client_id", record.ID,
		"roster_size", len(next),
		"request_id", requestcontext.RequestID(ctx),
	)
	span.SetAttributes(attribute.Int("roster.size", len(next)))

	s.broadcaster.Publish(ctx, next)
	return &record, nil
}

// Subscribe registers cb for roster changes and returns its deregistration.
func (s *Service) Subscribe(cb events.Listener) (unsubscribe func()) {
	return s.broadcaster.Subscribe(cb)
}

// Broadcaster exposes the change channel so other components can share it.
func (s *Service) Broadcaster() *events.Broadcaster {
	return s.broadcaster
}

func (s *Service) persist(ctx context.Context, record models.ClientRecord) ([]models.ClientRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next []models.ClientRecord
	err := storage.Mutate(ctx, s.kv, s.key, func(current []byte, found bool) ([]byte, error) {
		var readErr error
		if !found {
			readErr = sentinel.ErrNotFound
		}
		roster := s.decode(ctx, current, readErr)
		if err := checkDuplicates(roster, &record); err != nil {
			return nil, err
		}
		next = prepend(record, roster)
		return json.Marshal(next)
	})
	if err != nil {
		return nil, err
	}
	return next, nil
}

// decode turns a raw read into a roster, falling back to the seed set.
func (s *Service) decode(ctx context.Context, raw []byte, readErr error) []models.ClientRecord {
	if readErr != nil {
		switch {
		case errors.Is(readErr, sentinel.ErrNotFound):
			s.fallback(metrics.FallbackMissing)
		case errors.Is(readErr, sentinel.ErrUnavailable):
			s.fallback(metrics.FallbackUnavailable)
		default:
			s.logger.WarnContext(ctx, "failed to read roster, using seed clients", "error", readErr)
			s.fallback(metrics.FallbackError)
		}
		return models.SeedClients()
	}

	var clients []models.ClientRecord
	if err := json.Unmarshal(raw, &clients); err != nil {
		s.logger.WarnContext(ctx, "failed to parse stored clients, using seed clients", "error", err)
		s.fallback(metrics.FallbackCorrupt)
		return models.SeedClients()
	}
	if len(clients) == 0 {
		s.fallback(metrics.FallbackMissing)
		return models.SeedClients()
	}
	for i := range clients {
		clients[i].Project()
	}
	return clients
}

func (s *Service) reject(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementRejection(reason)
	}
}

func (s *Service) fallback(reason string) {
	if s.metrics != nil {
		s.metrics.IncrementFallback(reason)
	}
}

func (s *Service) observeAddClient(start time.Time) {
	if s.metrics != nil {
		s.metrics.ObserveAddClient(start)
	}
}

// checkDuplicates compares the record's normalized contact fields against
// every existing record. Email collisions are reported before phone ones.
func checkDuplicates(roster []models.ClientRecord, record *models.ClientRecord) error {
	if email := record.NormalizedEmail(); email != "" {
		for i := range roster {
			if roster[i].NormalizedEmail() == email {
				return dErrors.NewField(dErrors.CodeConflict, "email", MsgDuplicateEmail)
			}
		}
	}
	if phone := record.NormalizedPhone(); phone != "" {
		for i := range roster {
			if roster[i].NormalizedPhone() == phone {
				return dErrors.NewField(dErrors.CodeConflict, "phone", MsgDuplicatePhone)
			}
		}
	}
	return nil
}

// prepend puts record first and drops any stale entry with the same ID.
func prepend(record models.ClientRecord, roster []models.ClientRecord) []models.ClientRecord {
	next := make([]models.ClientRecord, 0, len(roster)+1)
	next = append(next, record)
	for _, c := range roster {
		if c.ID != record.ID {
			next = append(next, c)
		}
	}
	return next
}

// GenerateClientID returns a random UUID, or a timestamped random token if the
// system entropy source fails.
func GenerateClientID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		return fallbackID(time.Now())
	}
	return id.String()
}

func fallbackID(now time.Time) string {
	return fmt.Sprintf("client-%s-%d", strconv.FormatUint(rand.Uint64(), 36), now.UnixMilli())
}
