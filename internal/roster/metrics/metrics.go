package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Rejection reasons for ClientRejections.
const (
	ReasonValidation = "validation"
	ReasonDuplicate  = "duplicate"
	ReasonStorage    = "storage"
)

// Fallback reasons for RosterFallbacks.
const (
	FallbackMissing     = "missing"
	FallbackCorrupt     = "corrupt"
	FallbackUnavailable = "unavailable"
	FallbackError       = "error"
)

// Forwarding outcomes for EventsForwarded.
const (
	ForwardProduced = "produced"
	ForwardFailed   = "failed"
	ForwardSkipped  = "skipped"
)

// Metrics provides observability for the roster module.
type Metrics struct {
	ClientsCreated    prometheus.Counter
	ClientRejections  *prometheus.CounterVec
	ListenerPanics    prometheus.Counter
	RosterFallbacks   *prometheus.CounterVec
	AddClientDuration prometheus.Histogram
	EventsForwarded   *prometheus.CounterVec
}

// New registers the roster metrics on reg.
// Pass prometheus.NewRegistry() in tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ClientsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "credkit_clients_created_total",
			Help: "Total number of clients added to the roster",
		}),
		ClientRejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credkit_client_rejections_total",
			Help: "Client creations rejected, by reason",
		}, []string{"reason"}),
		ListenerPanics: f.NewCounter(prometheus.CounterOpts{
			Name: "credkit_roster_listener_panics_total",
			Help: "Roster change listeners that panicked during delivery",
		}),
		RosterFallbacks: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credkit_roster_fallbacks_total",
			Help: "Roster reads that fell back to the seed set, by reason",
		}, []string{"reason"}),
		AddClientDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "credkit_add_client_duration_seconds",
			Help:    "Duration of AddClient operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		EventsForwarded: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credkit_roster_events_forwarded_total",
			Help: "Roster-changed events handed to Kafka, by outcome",
		}, []string{"result"}),
	}
}

func (m *Metrics) IncrementClientsCreated() {
	m.ClientsCreated.Inc()
}

func (m *Metrics) IncrementRejection(reason string) {
	m.ClientRejections.WithLabelValues(reason).Inc()
}

// IncrementListenerPanics satisfies events.PanicObserver.
func (m *Metrics) IncrementListenerPanics() {
	m.ListenerPanics.Inc()
}

func (m *Metrics) IncrementFallback(reason string) {
	m.RosterFallbacks.WithLabelValues(reason).Inc()
}

// ObserveAddClient records the duration of an AddClient call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveAddClient(start time.Time) {
	m.AddClientDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementForwarded(result string) {
	m.EventsForwarded.WithLabelValues(result).Inc()
}
