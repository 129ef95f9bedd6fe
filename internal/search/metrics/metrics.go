package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Query kinds for Queries.
const (
	KindBrowse = "browse"
	KindTerm   = "term"
)

// Metrics provides observability for search.
type Metrics struct {
	Queries        *prometheus.CounterVec
	EmptyResults   prometheus.Counter
	QueryDuration  prometheus.Histogram
	RecentWrites   prometheus.Counter
	RecentFailures prometheus.Counter
}

// New registers the search metrics on reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Queries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "credkit_search_queries_total",
			Help: "Search queries served, by kind",
		}, []string{"kind"}),
		EmptyResults: f.NewCounter(prometheus.CounterOpts{
			Name: "credkit_search_empty_results_total",
			Help: "Term queries that matched nothing",
		}),
		QueryDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "credkit_search_query_duration_seconds",
			Help:    "Duration of search queries",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		RecentWrites: f.NewCounter(prometheus.CounterOpts{
			Name: "credkit_recent_searches_recorded_total",
			Help: "Terms recorded to the recent-search history",
		}),
		RecentFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "credkit_recent_searches_failures_total",
			Help: "Recent-search writes that failed and were dropped",
		}),
	}
}

func (m *Metrics) ObserveQuery(kind string, matched bool, start time.Time) {
	m.Queries.WithLabelValues(kind).Inc()
	if kind == KindTerm && !matched {
		m.EmptyResults.Inc()
	}
	m.QueryDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncrementRecentWrites() {
	m.RecentWrites.Inc()
}

func (m *Metrics) IncrementRecentFailures() {
	m.RecentFailures.Inc()
}
