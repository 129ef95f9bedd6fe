// Package pii masks and validates client contact data.
//
// Everything here is pure: no storage, no clock reads. Callers pass "now"
// explicitly so age checks are deterministic in tests.
package pii

import (
	"time"

	dErrors "credkit/pkg/domain-errors"
)

// Validation messages, one per check. They are shown to users verbatim.
const (
	MsgNameRequired    = "First name and last name are required."
	MsgContactRequired = "Provide at least an email or phone number."
	MsgInvalidEmail    = "Please enter a valid email address."
	MsgUnderage        = "Client must be at least 18 years old."
	MsgInvalidLast4    = "Last 4 SSN digits must contain exactly four numbers."
)

// ContactInput is the already-trimmed subset of a new client that needs checking.
// Phone and Last4SSN are expected in sanitized (digits-only) form.
type ContactInput struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	DOB       string
	Last4SSN  string
}

// ValidateContact runs the creation checks in order and returns the first failure.
func ValidateContact(in ContactInput, now time.Time) error {
	if in.FirstName == "" || in.LastName == "" {
		return dErrors.NewField(dErrors.CodeValidation, "name", MsgNameRequired)
	}
	if in.Email == "" && in.Phone == "" {
		return dErrors.NewField(dErrors.CodeValidation, "contact", MsgContactRequired)
	}
	if in.Email != "" && !ValidEmail(in.Email) {
		return dErrors.NewField(dErrors.CodeValidation, "email", MsgInvalidEmail)
	}
	if in.DOB != "" && !IsAdult(in.DOB, now) {
		return dErrors.NewField(dErrors.CodeValidation, "dob", MsgUnderage)
	}
	if in.Last4SSN != "" && !ValidLast4(in.Last4SSN) {
		return dErrors.NewField(dErrors.CodeValidation, "last4Ssn", MsgInvalidLast4)
	}
	return nil
}
