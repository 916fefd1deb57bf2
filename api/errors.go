package api

import (
	"errors"
	"net/http"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
)

// Stable error codes carried in every error body.
const (
	codeInvalidBody      = "invalid_request_body"
	codeValidation       = "validation_failed"
	codeInvalidID        = "invalid_id"
	codeEventNotFound    = "event_not_found"
	codeStoreUnavailable = "store_unavailable"
	codeInternal         = "internal_error"
	codeMethodNotAllowed = "method_not_allowed"
	codeNotFound         = "not_found"
	codeRateLimited      = "rate_limited"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
	Field string `json:"field,omitempty"`
}

func writeError(w http.ResponseWriter, status int, code, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// writeServiceError maps an error from the event service to a status and body.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *event.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: ve.Field + ": " + ve.Message,
			Code:  codeValidation,
			Field: ve.Field,
		})
	case errors.Is(err, event.ErrMalformedPayload):
		writeError(w, http.StatusBadRequest, codeInvalidBody, "invalid request body")
	case errors.Is(err, agenda.ErrEventNotFound):
		writeError(w, http.StatusNotFound, codeEventNotFound, "Event not found")
	case agenda.IsUnavailable(err):
		h.logger.Error("store unavailable", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusServiceUnavailable, codeStoreUnavailable, "store unavailable")
	default:
		h.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error())
	}
}
