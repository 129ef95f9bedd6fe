package engine

import (
	"context"

	"github.com/sahilm/fuzzy"

	"credkit/internal/search/catalog"
)

// DefaultSuggestions is the number of suggestions returned when limit <= 0.
const DefaultSuggestions = 5

type titleSource []catalog.Item

func (s titleSource) String(i int) string {
	return s[i].Title
}

func (s titleSource) Len() int {
	return len(s)
}

// Suggest returns catalog titles that fuzzily match term, best first. It is
// meant for "did you mean" hints when Search finds nothing and never changes
// what Search returns.
func (e *Engine) Suggest(ctx context.Context, term string, limit int) []string {
	term = Normalize(term)
	if term == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultSuggestions
	}

	items := titleSource(Flatten(e.source.Snapshot(ctx)))
	matches := fuzzy.FindFrom(term, items)

	seen := make(map[string]struct{}, limit)
	out := make([]string, 0, limit)
	for _, m := range matches {
		title := items[m.Index].Title
		if _, dup := seen[title]; dup {
			continue
		}
		seen[title] = struct{}{}
		out = append(out, title)
		if len(out) == limit {
			break
		}
	}
	return out
}
