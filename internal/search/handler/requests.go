package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"

	dErrors "credkit/pkg/domain-errors"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// TermRequest is the body of POST /search/recent and POST /search/submit, and
// carries the q parameter of GET /search through the same bound.
type TermRequest struct {
	Term string `json:"term" validate:"max=200"`
}

// Validate bounds the term length in characters. Blank terms are accepted
// and ignored by the history.
func (r *TermRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	err := validate.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	return dErrors.NewField(dErrors.CodeValidation, "term", "term must be at most 200 characters")
}
