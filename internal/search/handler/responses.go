package handler

import (
	"credkit/internal/search/catalog"
)

// ItemResponse is one search result. Keywords are matched server-side and never
// returned.
type ItemResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Href        string `json:"href"`
	Badge       string `json:"badge,omitempty"`
}

type GroupResponse struct {
	Category string         `json:"category"`
	Items    []ItemResponse `json:"items"`
}

// SearchResponse is returned by GET /search. Suggestions are only filled when
// a non-empty query matched nothing.
type SearchResponse struct {
	Query       string          `json:"query"`
	Groups      []GroupResponse `json:"groups"`
	Suggestions []string        `json:"suggestions,omitempty"`
}

type RecentResponse struct {
	Recent []string `json:"recent"`
}

type SubmitResponse struct {
	URL string `json:"url"`
}

func toGroupResponses(groups []catalog.Group) []GroupResponse {
	out := make([]GroupResponse, 0, len(groups))
	for _, g := range groups {
		items := make([]ItemResponse, 0, len(g.Items))
		for _, item := range g.Items {
			items = append(items, ItemResponse{
				ID:          item.ID,
				Title:       item.Title,
				Description: item.Description,
				Href:        item.Href,
				Badge:       item.Badge,
			})
		}
		out = append(out, GroupResponse{Category: string(g.Category), Items: items})
	}
	return out
}
