package validation

import (
	"github.com/go-playground/validator/v10"

	"github.com/bookmarket/backend/internal/apperr"
)

// Validator adapts go-playground/validator to echo's Validator interface.
// Any rule violation maps to the fixed 422 ML-001 response.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) Validate(i any) error {
	if err := v.validate.Struct(i); err != nil {
		return apperr.Validation("Invalid Request")
	}
	return nil
}
