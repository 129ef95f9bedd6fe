package models

import (
	"strings"
	"time"

	"credkit/pkg/pii"
	pstrings "credkit/pkg/platform/strings"
)

// ClientRecord is one entry of the roster.
//
// Invariants:
//   - ID is unique within the roster
//   - At least one of Email or Phone was set at creation
//   - Phone is stored digits-only
//   - Last4SSN, when set, is exactly four digits
//   - Tags contains no exact duplicates
//   - Masked fields are a projection of the source fields (see Project)
//
// JSON names are camelCase to stay compatible with already-persisted rosters.
type ClientRecord struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	EmailMasked    string   `json:"emailMasked,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	PhoneMasked    string   `json:"phoneMasked,omitempty"`
	DOB            string   `json:"dob,omitempty"`
	Last4SSN       string   `json:"last4Ssn,omitempty"`
	Last4SSNMasked string   `json:"last4SsnMasked,omitempty"`
	Stage          string   `json:"stage"`
	Status         Status   `json:"status"`
	Tags           []string `json:"tags"`
	Disputes       int      `json:"disputes"`
	Tasks          int      `json:"tasks"`
	Documents      int      `json:"documents"`
	Source         string   `json:"source,omitempty"`
	Address        string   `json:"address,omitempty"`
	JoinDate       string   `json:"joinDate"`
	LastActivity   string   `json:"lastActivity"`
}

// LastActivityJustNow is the activity label of a freshly created record.
const LastActivityJustNow = "Just now"

// NewClientRecord builds a record from a request that has already been
// normalized and validated.
func NewClientRecord(id string, req *AddClientRequest, now time.Time) ClientRecord {
	meta := req.Stage.Meta()
	rec := ClientRecord{
		ID:           id,
		Name:         strings.TrimSpace(req.FirstName + " " + req.LastName),
		Email:        req.Email,
		Phone:        req.Phone,
		DOB:          req.DOB,
		Last4SSN:     req.Last4SSN,
		Stage:        meta.Label,
		Status:       meta.Status,
		Tags:         pstrings.DedupeAndTrim(append(append([]string{}, meta.Tags...), req.Tags...)),
		Source:       req.Source,
		Address:      req.Address,
		JoinDate:     now.Format(time.DateOnly),
		LastActivity: LastActivityJustNow,
	}
	rec.Project()
	return rec
}

// Project recomputes the masked display fields from the source fields.
// Stored masks are never trusted; the masking rule may change between writes.
func (c *ClientRecord) Project() {
	c.EmailMasked, _ = pii.MaskEmail(c.Email)
	c.PhoneMasked, _ = pii.MaskPhone(c.Phone)
	c.Last4SSNMasked, _ = pii.MaskLast4(c.Last4SSN)
	if c.Tags == nil {
		c.Tags = []string{}
	}
}

// NormalizedEmail is the duplicate-detection key for Email.
func (c *ClientRecord) NormalizedEmail() string {
	return pii.NormalizeEmail(c.Email)
}

// NormalizedPhone is the duplicate-detection key for Phone.
func (c *ClientRecord) NormalizedPhone() string {
	return pii.SanitizePhone(c.Phone)
}
