package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"credkit/internal/roster/models"
	dErrors "credkit/pkg/domain-errors"
)

// AddClientRequest is the HTTP request body for POST /clients.
//
// Tags only bound sizes. Required fields, contact rules and age are checked by
// the service so every caller gets the same ordered messages.
type AddClientRequest struct {
	FirstName string   `json:"firstName" validate:"max=100"`
	LastName  string   `json:"lastName" validate:"max=100"`
	Email     string   `json:"email" validate:"max=254"`
	Phone     string   `json:"phone" validate:"max=32"`
	Address   string   `json:"address" validate:"max=300"`
	DOB       string   `json:"dob" validate:"max=32"`
	Last4SSN  string   `json:"last4Ssn" validate:"max=16"`
	Tags      []string `json:"tags" validate:"max=20,dive,max=40"`
	Source    string   `json:"source" validate:"max=100"`
	Stage     string   `json:"stage" validate:"max=20"`
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field sizes and reports the first offending field.
func (r *AddClientRequest) Validate(v *validator.Validate) error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	err := v.Struct(r)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	fe := verrs[0]
	field := fe.Field()
	if field == "" {
		field = strings.ToLower(fe.StructField())
	}
	if fe.Tag() == "max" && fe.Kind() == reflect.Slice {
		return dErrors.NewField(dErrors.CodeValidation, field, fmt.Sprintf("%s must have at most %s entries", field, fe.Param()))
	}
	return dErrors.NewField(dErrors.CodeValidation, field, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
}

// ToModel converts the body into the service request.
func (r *AddClientRequest) ToModel() models.AddClientRequest {
	return models.AddClientRequest{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
		Phone:     r.Phone,
		Address:   r.Address,
		DOB:       r.DOB,
		Last4SSN:  r.Last4SSN,
		Tags:      r.Tags,
		Source:    r.Source,
		Stage:     models.Stage(r.Stage),
	}
}
