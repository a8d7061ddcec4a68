// Package validation checks normalized usecase inputs with struct tags and
// maps failures onto the domain error taxonomy.
package validation

import (
	"strings"

	domainerrors "productsmanager/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Validator implements echo.Validator as well.
type Validator struct {
	validate *validator.Validate
}

// New creates a validator with required-struct checking enabled.
func New() *Validator {
	return &Validator{
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Validate checks i's `validate` tags. Blank fields win over every other
// failure, then mismatched confirmations, then non-positive numbers.
func (v *Validator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	return translate(fieldErrs)
}

func translate(fieldErrs validator.ValidationErrors) error {
	var (
		blank, mismatch, nonPositive bool
		fields                       = make([]string, 0, len(fieldErrs))
	)

	for _, fe := range fieldErrs {
		fields = append(fields, fe.Field())
		switch fe.Tag() {
		case "required":
			blank = true
		case "eqfield":
			mismatch = true
		case "gt":
			nonPositive = true
		}
	}

	switch {
	case blank:
		return domainerrors.ErrBlankField
	case mismatch:
		return domainerrors.ErrPasswordMismatch
	case nonPositive:
		return domainerrors.ErrNonPositivePrice
	default:
		return domainerrors.ErrValidationFailed.WithDetails(strings.Join(fields, ","))
	}
}
