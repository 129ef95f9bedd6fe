// Package publisher forwards roster changes to Kafka.
//
// Forwarding is fire-and-forget: records are handed to the producer
// asynchronously and delivery failures are logged and counted, never returned
// to the writer that changed the roster. A circuit breaker stops producing
// while the cluster keeps failing.
package publisher

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/twmb/franz-go/pkg/kgo"

	"credkit/internal/roster/events"
	"credkit/internal/roster/metrics"
	"credkit/internal/roster/models"
	"credkit/pkg/platform/circuit"
)

// EventTypeRosterChanged is the "type" of every forwarded record.
const EventTypeRosterChanged = "roster.changed"

// Producer is the subset of *kgo.Client used here.
type Producer interface {
	Produce(ctx context.Context, r *kgo.Record, promise func(*kgo.Record, error))
}

// Subscriber is the roster change channel.
type Subscriber interface {
	Subscribe(cb events.Listener) (unsubscribe func())
}

// RosterChanged is the record value. Only masked contact fields leave the process.
type RosterChanged struct {
	Type    string          `json:"type"`
	Count   int             `json:"count"`
	Clients []ClientSummary `json:"clients"`
}

type ClientSummary struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	EmailMasked string        `json:"emailMasked,omitempty"`
	PhoneMasked string        `json:"phoneMasked,omitempty"`
	Stage       string        `json:"stage"`
	Status      models.Status `json:"status"`
	Tags        []string      `json:"tags"`
}

type Forwarder struct {
	producer Producer
	topic    string
	logger   *slog.Logger
	metrics  *metrics.Metrics
	breaker  *circuit.Breaker
}

type Option func(*Forwarder)

func WithLogger(logger *slog.Logger) Option {
	return func(f *Forwarder) {
		f.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Forwarder) {
		f.metrics = m
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(f *Forwarder) {
		f.breaker = b
	}
}

func New(producer Producer, topic string, opts ...Option) *Forwarder {
	f := &Forwarder{producer: producer, topic: topic}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.Default()
	}
	if f.breaker == nil {
		f.breaker = circuit.New("kafka-roster")
	}
	return f
}

// Attach subscribes the forwarder to sub. Records are produced under ctx;
// once it is cancelled, records still buffered fail instead of delivering.
func (f *Forwarder) Attach(ctx context.Context, sub Subscriber) (detach func()) {
	return sub.Subscribe(func(clients []models.ClientRecord) {
		f.Forward(ctx, clients)
	})
}

// Forward produces one record describing clients. The key is the newest
// client's ID so consumers can partition by the client that changed.
func (f *Forwarder) Forward(ctx context.Context, clients []models.ClientRecord) {
	if !f.breaker.Allow() {
		f.count(metrics.ForwardSkipped)
		return
	}

	value, err := json.Marshal(NewRosterChanged(clients))
	if err != nil {
		f.logger.ErrorContext(ctx, "failed to encode roster event", "error", err)
		f.count(metrics.ForwardFailed)
		return
	}
	record := &kgo.Record{Topic: f.topic, Value: value}
	if len(clients) > 0 {
		record.Key = []byte(clients[0].ID)
	}

	f.producer.Produce(ctx, record, func(r *kgo.Record, err error) {
		if err != nil {
			_, change := f.breaker.RecordFailure()
			f.logger.WarnContext(ctx, "failed to forward roster event",
				"topic", r.Topic,
				"error", err,
				"circuit_opened", change.Opened,
			)
			f.count(metrics.ForwardFailed)
			return
		}
		if _, change := f.breaker.RecordSuccess(); change.Closed {
			f.logger.InfoContext(ctx, "roster event forwarding recovered", "topic", r.Topic)
		}
		f.count(metrics.ForwardProduced)
	})
}

func (f *Forwarder) count(result string) {
	if f.metrics != nil {
		f.metrics.IncrementForwarded(result)
	}
}

// NewRosterChanged builds the event value from a roster snapshot.
func NewRosterChanged(clients []models.ClientRecord) RosterChanged {
	summaries := make([]ClientSummary, 0, len(clients))
	for _, c := range clients {
		summaries = append(summaries, ClientSummary{
			ID:          c.ID,
			Name:        c.Name,
			EmailMasked: c.EmailMasked,
			PhoneMasked: c.PhoneMasked,
			Stage:       c.Stage,
			Status:      c.Status,
			Tags:        c.Tags,
		})
	}
	return RosterChanged{Type: EventTypeRosterChanged, Count: len(clients), Clients: summaries}
}
