// Package catalog exposes the searchable content, one ordered list of items per
// category. The Clients category is derived from the live roster on every
// call; every other category is static.
package catalog

import (
	"context"

	"credkit/internal/roster/models"
)

// Category is one of a fixed, closed set of result groups.
type Category string

const (
	CategoryClients   Category = "Clients"
	CategoryTasks     Category = "Tasks"
	CategoryDisputes  Category = "Disputes"
	CategoryLetters   Category = "Letters"
	CategoryTemplates Category = "Templates"
	CategoryUsers     Category = "Users"
)

var categoryOrder = []Category{
	CategoryClients,
	CategoryTasks,
	CategoryDisputes,
	CategoryLetters,
	CategoryTemplates,
	CategoryUsers,
}

// Categories returns the fixed category order results are grouped in.
func Categories() []Category {
	return append([]Category(nil), categoryOrder...)
}

// Item is one searchable entry. Keywords are matched but not displayed.
type Item struct {
	ID          string
	Title       string
	Description string
	Href        string
	Badge       string
	Keywords    []string
}

// Group pairs a category with its items in declaration order.
type Group struct {
	Category Category
	Items    []Item
}

// RosterSource supplies the current client roster.
type RosterSource interface {
	Roster(ctx context.Context) []models.ClientRecord
}

type seedRoster struct{}

func (seedRoster) Roster(context.Context) []models.ClientRecord {
	return models.SeedClients()
}

type Catalog struct {
	roster RosterSource
	static map[Category][]Item
}

// New builds a catalog over roster. A nil roster serves the seed clients.
func New(roster RosterSource) *Catalog {
	if roster == nil {
		roster = seedRoster{}
	}
	return &Catalog{roster: roster, static: staticItems()}
}

// Snapshot returns every category in fixed order. The roster is read once, so
// all groups of a snapshot see the same clients.
func (c *Catalog) Snapshot(ctx context.Context) []Group {
	groups := make([]Group, 0, len(categoryOrder))
	for _, cat := range categoryOrder {
		var items []Item
		if cat == CategoryClients {
			items = ClientItems(c.roster.Roster(ctx))
		} else {
			items = cloneItems(c.static[cat])
		}
		groups = append(groups, Group{Category: cat, Items: items})
	}
	return groups
}

// ClientItems maps roster records to search items. Only masked contact values
// are exposed; raw email and phone never enter the search surface.
func ClientItems(clients []models.ClientRecord) []Item {
	items := make([]Item, 0, len(clients))
	for i := range clients {
		items = append(items, ClientItem(&clients[i]))
	}
	return items
}

// ClientItem maps one record. The description falls back to "Contact hidden"
// when no masked email exists.
func ClientItem(c *models.ClientRecord) Item {
	contact := c.EmailMasked
	if contact == "" {
		contact = "Contact hidden"
	}
	keywords := make([]string, 0, 3+len(c.Tags))
	for _, v := range append([]string{c.EmailMasked, c.PhoneMasked, c.Stage}, c.Tags...) {
		if v != "" {
			keywords = append(keywords, v)
		}
	}
	return Item{
		ID:          c.ID,
		Title:       c.Name,
		Description: contact + " - " + c.Stage,
		Href:        "/clients/" + c.ID,
		Keywords:    keywords,
	}
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	for i, it := range items {
		it.Keywords = append([]string(nil), it.Keywords...)
		out[i] = it
	}
	return out
}
