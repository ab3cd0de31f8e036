package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/purelife/storefront/internal/domain"
)

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	writeJSON(w, status, v)
}

// DecodeJSON decodes the request body into dst. Unknown fields are
// rejected so typos in payloads surface as 400s instead of silently
// dropped data. Returns a domain error suitable for ErrorResponse.
func DecodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var syntaxErr *json.SyntaxError
		var typeErr *json.UnmarshalTypeError

		switch {
		case errors.Is(err, io.EOF):
			return domain.Invalid("", "Request body is empty")
		case errors.As(err, &syntaxErr):
			return domain.Invalid("", "Request body is not valid JSON")
		case errors.As(err, &typeErr):
			if typeErr.Field != "" {
				return domain.NewValidationError("", typeErr.Field, "has the wrong type")
			}
			return domain.Invalid("", "Request body is not valid JSON")
		case strings.HasPrefix(err.Error(), "json: unknown field"):
			field := strings.Trim(strings.TrimPrefix(err.Error(), "json: unknown field "), `"`)
			return domain.NewValidationError("", field, "is not a recognized field")
		case errors.As(err, new(*http.MaxBytesError)):
			return domain.Errorf(domain.ETOOLARGE, "", "Request body is too large")
		default:
			return domain.Invalid("", "Request body could not be parsed")
		}
	}

	// One JSON value per request body.
	if dec.More() {
		return domain.Invalid("", "Request body must contain a single JSON object")
	}
	return nil
}
