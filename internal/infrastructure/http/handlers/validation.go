package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// decodeValid decodes the JSON body into v and runs struct validation.
// Returns false after writing the error response.
func decodeValid(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid body")
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeErr(w, http.StatusBadRequest, ErrCodeInvalidRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		f := verrs[0]
		return strings.ToLower(f.Field()) + " failed validation on '" + f.Tag() + "'"
	}
	return "validation failed"
}

// SanitizeEmail trims and lowercases email.
func SanitizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
