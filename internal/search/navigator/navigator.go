// Package navigator implements the keyboard and selection contract of the
// search box: a cursor over the flattened results, Enter to open or submit,
// Escape to close.
//
// A Navigator holds per-session UI state and is not safe for concurrent use.
package navigator

import (
	"context"
	"strings"

	"credkit/internal/search/catalog"
	"credkit/internal/search/engine"
)

// ActionKind says what the caller should do after a key press.
type ActionKind string

const (
	// ActionNone means there is nothing to navigate to.
	ActionNone ActionKind = ""
	// ActionOpen navigates to a selected result.
	ActionOpen ActionKind = "open"
	// ActionSubmit navigates to the full results page for the query.
	ActionSubmit ActionKind = "submit"
)

type Action struct {
	Kind ActionKind
	Href string
}

// Searcher runs queries.
type Searcher interface {
	Search(ctx context.Context, term string) []catalog.Group
}

// Recorder stores submitted terms.
type Recorder interface {
	Add(ctx context.Context, term string)
}

type Navigator struct {
	search  Searcher
	history Recorder

	query  string
	groups []catalog.Group
	items  []catalog.Item
	cursor int
	open   bool
}

func New(search Searcher, history Recorder) *Navigator {
	return &Navigator{search: search, history: history, cursor: -1}
}

// SetQuery recomputes the results, opens the list and clears the selection.
func (n *Navigator) SetQuery(ctx context.Context, query string) {
	n.query = query
	n.groups = n.search.Search(ctx, query)
	n.items = engine.Flatten(n.groups)
	n.cursor = -1
	n.open = true
}

func (n *Navigator) Query() string { return n.query }

func (n *Navigator) Groups() []catalog.Group { return n.groups }

func (n *Navigator) IsOpen() bool { return n.open }

func (n *Navigator) Cursor() int { return n.cursor }

// Selected returns the item under the cursor.
func (n *Navigator) Selected() (catalog.Item, bool) {
	if n.cursor < 0 || n.cursor >= len(n.items) {
		return catalog.Item{}, false
	}
	return n.items[n.cursor], true
}

// Down moves the cursor to the next result, wrapping to the first.
// From no selection it selects the first result.
func (n *Navigator) Down() {
	if len(n.items) == 0 {
		return
	}
	n.open = true
	n.cursor = (n.cursor + 1) % len(n.items)
}

// Up moves the cursor to the previous result, wrapping to the last.
// From no selection it selects the last result.
func (n *Navigator) Up() {
	if len(n.items) == 0 {
		return
	}
	n.open = true
	if n.cursor <= 0 {
		n.cursor = len(n.items) - 1
		return
	}
	n.cursor--
}

// Enter opens the selected result, or submits the query when nothing is
// selected.
func (n *Navigator) Enter(ctx context.Context) Action {
	if item, ok := n.Selected(); ok && n.open {
		return n.Click(item)
	}
	return n.Submit(ctx)
}

// Click opens item and closes the list.
func (n *Navigator) Click(item catalog.Item) Action {
	n.open = false
	return Action{Kind: ActionOpen, Href: item.Href}
}

// Submit records the query to history and targets the results page.
// A blank query does nothing.
func (n *Navigator) Submit(ctx context.Context) Action {
	clean := strings.TrimSpace(n.query)
	if clean == "" {
		return Action{Kind: ActionNone}
	}
	if n.history != nil {
		n.history.Add(ctx, clean)
	}
	n.open = false
	return Action{Kind: ActionSubmit, Href: engine.BuildSearchURL(clean)}
}

// Escape closes the list. The query and results are kept.
func (n *Navigator) Escape() {
	n.open = false
	n.cursor = -1
}
