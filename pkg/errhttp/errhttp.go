// Package errhttp maps domain errors to HTTP status codes and the failure envelope.
// Domain errors are *apperr.Error values; their kind decides the status.
package errhttp

import (
	"errors"
	"net/http"

	"github.com/ziplofy/storeconfig/pkg/apperr"
	"github.com/ziplofy/storeconfig/pkg/httpx"
	"github.com/ziplofy/storeconfig/pkg/logger"
	"github.com/ziplofy/storeconfig/pkg/telemetry"
)

// Responder writes error responses. Unexpected (5xx) errors are logged and
// reported to Sentry, and their message is masked when production is set.
type Responder struct {
	log        logger.Logger
	production bool
}

// NewResponder returns a Responder logging unexpected errors to log.
func NewResponder(log logger.Logger, production bool) *Responder {
	return &Responder{log: log, production: production}
}

var defaultResponder = &Responder{log: logger.Discard()}

// WriteError maps err to an HTTP status code and writes a failure envelope.
// Defaults to 500 Internal Server Error for unrecognized errors.
func WriteError(w http.ResponseWriter, err error) {
	defaultResponder.write(w, nil, err)
}

// Error writes the failure envelope for err in the context of request r.
func (rs *Responder) Error(w http.ResponseWriter, r *http.Request, err error) {
	rs.write(w, r, err)
}

func (rs *Responder) write(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		if r != nil {
			rs.log.ErrorContext(r.Context(), "request failed",
				"method", r.Method, "path", r.URL.Path, "error", err)
			telemetry.CaptureError(r.Context(), err)
		} else {
			rs.log.Error("request failed", "error", err)
		}
		httpx.JSONError(w, status, httpx.SafeError(err, status, rs.production))
		return
	}

	// Client errors carry the domain message, not the wrapping chain.
	if appErr, ok := apperr.As(err); ok {
		if len(appErr.Fields) > 0 {
			httpx.JSONFieldErrors(w, appErr.Error(), appErr.Fields)
			return
		}
		httpx.JSONError(w, status, appErr.Error())
		return
	}
	httpx.JSONError(w, status, err.Error())
}

// StatusFor returns the HTTP status code for err.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusBadRequest // 400
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized // 401
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden // 403
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound // 404
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict // 409
	default:
		return http.StatusInternalServerError // 500
	}
}
