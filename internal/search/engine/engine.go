// Package engine answers free-text queries over the search catalog.
//
// Matching is a case-insensitive substring scan over each item's title,
// description and keywords. Results keep catalog declaration order inside a
// category and the fixed category order across categories; there is no
// relevance ranking.
package engine

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"credkit/internal/platform/tracing"
	"credkit/internal/search/catalog"
	"credkit/internal/search/metrics"
)

const (
	// MaxResultsPerCategory caps every category of a term query.
	MaxResultsPerCategory = 5
	// BrowseItemsPerCategory is how many items an empty query shows per category.
	BrowseItemsPerCategory = 3
)

// Source supplies catalog snapshots.
type Source interface {
	Snapshot(ctx context.Context) []catalog.Group
}

type Engine struct {
	source  Source
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

type Option func(*Engine)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func New(source Source, opts ...Option) *Engine {
	e := &Engine{source: source, tracer: tracing.Tracer("search")}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Normalize trims and lower-cases a term.
func Normalize(term string) string {
	return strings.ToLower(strings.TrimSpace(term))
}

// Search returns the groups matching term. An empty term browses: every
// non-empty category with its first BrowseItemsPerCategory items.
func (e *Engine) Search(ctx context.Context, term string) []catalog.Group {
	start := time.Now()
	ctx, span := e.tracer.Start(ctx, "search.Search")
	defer span.End()

	term = Normalize(term)
	snapshot := e.source.Snapshot(ctx)

	var groups []catalog.Group
	kind := metrics.KindTerm
	if term == "" {
		kind = metrics.KindBrowse
		groups = browse(snapshot)
	} else {
		groups = filter(snapshot, term)
	}

	span.SetAttributes(
		attribute.String("search.kind", kind),
		attribute.Int("search.groups", len(groups)),
	)
	if e.metrics != nil {
		e.metrics.ObserveQuery(kind, len(groups) > 0, start)
	}
	return groups
}

func browse(snapshot []catalog.Group) []catalog.Group {
	groups := make([]catalog.Group, 0, len(snapshot))
	for _, g := range snapshot {
		if len(g.Items) == 0 {
			continue
		}
		groups = append(groups, catalog.Group{Category: g.Category, Items: head(g.Items, BrowseItemsPerCategory)})
	}
	return groups
}

func filter(snapshot []catalog.Group, term string) []catalog.Group {
	groups := make([]catalog.Group, 0, len(snapshot))
	for _, g := range snapshot {
		var matched []catalog.Item
		for _, item := range g.Items {
			if Matches(item, term) {
				matched = append(matched, item)
				if len(matched) == MaxResultsPerCategory {
					break
				}
			}
		}
		if len(matched) > 0 {
			groups = append(groups, catalog.Group{Category: g.Category, Items: matched})
		}
	}
	return groups
}

// Matches reports whether the normalized term is a substring of the item's
// lower-cased title, description or any keyword.
func Matches(item catalog.Item, term string) bool {
	if contains(item.Title, term) || contains(item.Description, term) {
		return true
	}
	for _, kw := range item.Keywords {
		if contains(kw, term) {
			return true
		}
	}
	return false
}

func contains(haystack, term string) bool {
	return haystack != "" && strings.Contains(Normalize(haystack), term)
}

func head(items []catalog.Item, n int) []catalog.Item {
	if len(items) > n {
		items = items[:n]
	}
	return append([]catalog.Item(nil), items...)
}

// Flatten concatenates groups into one list in display order.
func Flatten(groups []catalog.Group) []catalog.Item {
	var items []catalog.Item
	for _, g := range groups {
		items = append(items, g.Items...)
	}
	return items
}
