package api

import (
	"errors"
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
)

// mapError converts agenda sentinel and validation errors to Forge HTTP errors.
func mapError(err error) error {
	var ve *event.ValidationError
	switch {
	case errors.As(err, &ve):
		return forge.BadRequest(ve.Field + ": " + ve.Message)
	case errors.Is(err, event.ErrMalformedPayload):
		return forge.BadRequest("invalid request body")
	case errors.Is(err, agenda.ErrEventNotFound):
		return forge.NotFound("Event not found")
	case agenda.IsUnavailable(err):
		return forge.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")
	default:
		return forge.InternalError(err)
	}
}
