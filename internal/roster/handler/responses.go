package handler

import "credkit/internal/roster/models"

// ClientResponse is the display projection of a ClientRecord. Raw email, phone,
// date of birth and SSN digits are never serialized over HTTP.
type ClientResponse struct {
	ID             string        `json:"id"`
	Name           string        `json:"name"`
	EmailMasked    string        `json:"emailMasked,omitempty"`
	PhoneMasked    string        `json:"phoneMasked,omitempty"`
	Last4SSNMasked string        `json:"last4SsnMasked,omitempty"`
	Stage          string        `json:"stage"`
	Status         models.Status `json:"status"`
	Tags           []string      `json:"tags"`
	Disputes       int           `json:"disputes"`
	Tasks          int           `json:"tasks"`
	Documents      int           `json:"documents"`
	Source         string        `json:"source,omitempty"`
	JoinDate       string        `json:"joinDate"`
	LastActivity   string        `json:"lastActivity"`
}

type RosterResponse struct {
	Clients []ClientResponse `json:"clients"`
}

func toClientResponse(c *models.ClientRecord) ClientResponse {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return ClientResponse{
		ID:             c.ID,
		Name:           c.Name,
		EmailMasked:    c.EmailMasked,
		PhoneMasked:    c.PhoneMasked,
		Last4SSNMasked: c.Last4SSNMasked,
		Stage:          c.Stage,
		Status:         c.Status,
		Tags:           tags,
		Disputes:       c.Disputes,
		Tasks:          c.Tasks,
		Documents:      c.Documents,
		Source:         c.Source,
		JoinDate:       c.JoinDate,
		LastActivity:   c.LastActivity,
	}
}

func toRosterResponse(clients []models.ClientRecord) RosterResponse {
	out := make([]ClientResponse, 0, len(clients))
	for i := range clients {
		out = append(out, toClientResponse(&clients[i]))
	}
	return RosterResponse{Clients: out}
}
