package shared

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/runoshun/initiative/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// fieldErrors maps input field names, optionally qualified by the failing
// tag, to the domain error reported when the field fails validation.
var fieldErrors = map[string]error{
	"Name.max": domain.ErrNameTooLong,
	"Name":     domain.ErrEmptyName,
	"Tag":      domain.ErrEmptyName,
	"HP":       domain.ErrInvalidHP,
	"MaxHP":    domain.ErrInvalidHP,
	"AC":       domain.ErrInvalidAC,
	"Amount":   domain.ErrInvalidAmount,
	"Type":     domain.ErrInvalidEffectType,
	"Duration": domain.ErrInvalidDuration,
	"Statuses": domain.ErrInvalidStatus,
}

// Validate checks the `validate` tags of a use case input.
// The first failing field is reported as its domain error.
func Validate(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("validate input: %w", err)
	}

	fe := verrs[0]
	// Elements of dived slices are reported as Field[i].
	field, _, _ := strings.Cut(fe.StructField(), "[")
	for _, key := range []string{field + "." + fe.Tag(), field} {
		if derr, ok := fieldErrors[key]; ok {
			return fmt.Errorf("%s %v: %w", fe.Field(), fe.Value(), derr)
		}
	}
	return fmt.Errorf("invalid %s: failed %q check", fe.Field(), fe.Tag())
}
