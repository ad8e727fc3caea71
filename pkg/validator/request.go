package validator

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/ziplofy/storeconfig/pkg/httpx"
)

// ValidateRequest decodes the JSON body into T and validates it. On failure
// it writes the 400 (or 413) envelope and returns false.
func ValidateRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	return decode[T](w, r, false)
}

// ValidateOptionalRequest is ValidateRequest for endpoints whose body may be
// omitted. An empty body validates the zero T.
func ValidateOptionalRequest[T any](w http.ResponseWriter, r *http.Request) (*T, bool) {
	return decode[T](w, r, true)
}

func decode[T any](w http.ResponseWriter, r *http.Request, optional bool) (*T, bool) {
	var req T
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			httpx.JSONError(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return nil, false
		case errors.Is(err, io.EOF) && optional:
		case errors.Is(err, io.EOF):
			httpx.JSONError(w, http.StatusBadRequest, "Request body is required")
			return nil, false
		default:
			httpx.JSONError(w, http.StatusBadRequest, "Invalid JSON")
			return nil, false
		}
	}
	if err := Validate(&req); err != nil {
		httpx.JSONFieldErrors(w, "Validation failed", FormatValidationErrors(err))
		return nil, false
	}
	return &req, true
}
