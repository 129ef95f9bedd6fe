package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"credkit/internal/roster/models"
)

type fixedRoster []models.ClientRecord

func (f fixedRoster) Roster(context.Context) []models.ClientRecord {
	return f
}

func TestSnapshot_FixedOrder(t *testing.T) {
	groups := New(nil).Snapshot(context.Background())

	require.Len(t, groups, 6)
	got := make([]Category, len(groups))
	for i, g := range groups {
		got[i] = g.Category
	}
	assert.Equal(t, Categories(), got)

	counts := map[Category]int{}
	for _, g := range groups {
		counts[g.Category] = len(g.Items)
	}
	assert.Equal(t, map[Category]int{
		CategoryClients:   3,
		CategoryTasks:     4,
		CategoryDisputes:  3,
		CategoryLetters:   2,
		CategoryTemplates: 2,
		CategoryUsers:     2,
	}, counts)
}

func TestSnapshot_ClientsAreLive(t *testing.T) {
	roster := fixedRoster{{ID: "c-9", Name: "Jordan Lee", Stage: "Prospect"}}
	groups := New(roster).Snapshot(context.Background())

	require.Equal(t, CategoryClients, groups[0].Category)
	require.Len(t, groups[0].Items, 1)
	assert.Equal(t, "Jordan Lee", groups[0].Items[0].Title)
}

func TestSnapshot_StaticItemsAreCopies(t *testing.T) {
	c := New(nil)
	first := c.Snapshot(context.Background())
	first[1].Items[0].Title = "mutated"
	first[1].Items[0].Keywords[0] = "mutated"

	second := c.Snapshot(context.Background())
	assert.Equal(t, "Review credit report for Sarah Johnson", second[1].Items[0].Title)
	assert.Equal(t, "credit report", second[1].Items[0].Keywords[0])
}

func TestClientItem(t *testing.T) {
	t.Run("masked contact and folded keywords", func(t *testing.T) {
		seed := models.SeedClients()
		item := ClientItem(&seed[0])

		assert.Equal(t, "1", item.ID)
		assert.Equal(t, "Sarah Johnson", item.Title)
		assert.Equal(t, "s******@email.com - Active Client", item.Description)
		assert.Equal(t, "/clients/1", item.Href)
		assert.Equal(t, []string{"s******@email.com", "***-***-0123", "Active Client", "VIP", "High Priority"}, item.Keywords)
		for _, kw := range item.Keywords {
			assert.NotContains(t, kw, "sarah.j@email.com")
			assert.NotContains(t, kw, "15550123")
		}
	})

	t.Run("contact hidden without email", func(t *testing.T) {
		rec := models.ClientRecord{ID: "x", Name: "Phone Only", Phone: "5551234567", Stage: "Prospect"}
		rec.Project()
		item := ClientItem(&rec)
		assert.Equal(t, "Contact hidden - Prospect", item.Description)
		assert.Equal(t, []string{"***-***-4567", "Prospect"}, item.Keywords)
	})
}
