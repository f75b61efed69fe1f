package validate

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

// v is the package-level singleton validator. It is initialised once at
// package load time. Any custom type registrations must be made during init()
// before the first call to Struct.
var v = validator.New()

// emailShape is deliberately loose: non-whitespace segments around a single
// '@' with at least one '.' in the domain part. RFC-grade parsing rejects
// addresses this API has always accepted.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func init() {
	_ = v.RegisterValidation("phone10", phone10)
	_ = v.RegisterValidation("contact_email", contactEmail)
}

// Struct validates the given struct using its validate tags. The error is the
// raw validator.ValidationErrors so callers can map individual field failures
// to endpoint-specific messages.
func Struct(s interface{}) error {
	return v.Struct(s)
}

// phone10 accepts exactly 10 ASCII digits.
func phone10(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func contactEmail(fl validator.FieldLevel) bool {
	return emailShape.MatchString(fl.Field().String())
}
