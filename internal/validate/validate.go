package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// Phone: optional leading +, then digits/spaces/hyphens, 8-18 chars total,
// first and last characters must be digits.
var phoneRe = regexp.MustCompile(`^[+]?\d[\d\s-]{6,16}\d$`)

// New builds the validator used by the service layer. Inputs are validated
// before any persistence is attempted.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phoneRe.MatchString(fl.Field().String())
	})
	return v
}
