package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/otp-auth-api/internal/domain"
	"github.com/otp-auth-api/internal/pkg/validate"
)

// ValidateContact gatekeeps the public endpoints: malformed contact fields
// are rejected before any handler or store work happens. The body is restored
// afterwards so the handler can decode its own request struct; the payload
// itself is never mutated.
func ValidateContact(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		var c domain.ContactFields
		if err := json.Unmarshal(body, &c); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if c.PhoneNumber == nil && c.Email == nil {
			writeError(w, http.StatusBadRequest, "Phone number or email is required")
			return
		}
		if err := validate.Struct(c); err != nil {
			writeError(w, http.StatusBadRequest, contactMessage(err))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// contactMessage maps the first field failure onto the message the API fixes
// for that field.
func contactMessage(err error) string {
	var ve validator.ValidationErrors
	if errors.As(err, &ve) && len(ve) > 0 {
		switch ve[0].Field() {
		case "PhoneNumber":
			return "Phone number is invalid"
		case "Email":
			return "Email address is invalid"
		}
	}
	return "invalid request body"
}
