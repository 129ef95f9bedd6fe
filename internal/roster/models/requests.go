package models

import (
	"strings"

	"credkit/pkg/pii"
	pstrings "credkit/pkg/platform/strings"
)

// AddClientRequest is the creation payload for a roster entry.
type AddClientRequest struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	DOB       string
	Last4SSN  string
	Tags      []string
	Source    string
	Stage     Stage
}

// Normalize trims every field, reduces Phone and Last4SSN to digits and
// dedupes Tags. An empty Stage becomes prospect.
func (r *AddClientRequest) Normalize() {
	if r == nil {
		return
	}
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.TrimSpace(r.Email)
	r.Phone = pii.SanitizePhone(r.Phone)
	r.Address = strings.TrimSpace(r.Address)
	r.DOB = strings.TrimSpace(r.DOB)
	r.Last4SSN = pii.SanitizeLast4(r.Last4SSN)
	r.Tags = pstrings.DedupeAndTrim(r.Tags)
	r.Source = strings.TrimSpace(r.Source)
	if strings.TrimSpace(string(r.Stage)) == "" {
		r.Stage = StageProspect
	}
	r.Stage = Stage(strings.ToLower(strings.TrimSpace(string(r.Stage))))
}

// Contact returns the subset checked by pii.ValidateContact.
func (r *AddClientRequest) Contact() pii.ContactInput {
	return pii.ContactInput{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		DOB:       r.DOB,
		Last4SSN:  r.Last4SSN,
	}
}
