package api

import (
	"bytes"
	"net/http"

	"github.com/xraph/agenda/calendar"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
)

func (h *Handler) createEvent(w http.ResponseWriter, r *http.Request) {
	in, err := decodeInput(w, r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	evt, err := h.events.Create(r.Context(), in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, evt)
}

func (h *Handler) listEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, events)
}

func (h *Handler) getEvent(w http.ResponseWriter, r *http.Request) {
	evtID, ok := pathEventID(w, r)
	if !ok {
		return
	}

	evt, err := h.events.Get(r.Context(), evtID)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, evt)
}

func (h *Handler) updateEvent(w http.ResponseWriter, r *http.Request) {
	evtID, ok := pathEventID(w, r)
	if !ok {
		return
	}

	in, err := decodeInput(w, r)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	evt, err := h.events.Update(r.Context(), evtID, in)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, evt)
}

func (h *Handler) deleteEvent(w http.ResponseWriter, r *http.Request) {
	evtID, ok := pathEventID(w, r)
	if !ok {
		return
	}

	if err := h.events.Delete(r.Context(), evtID); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) calendarFeed(w http.ResponseWriter, r *http.Request) {
	events, err := h.events.List(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := calendar.Write(&buf, events, calendar.Options{Name: "Events"}); err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", calendar.ContentType)
	w.Header().Set("Content-Disposition", `inline; filename="events.ics"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes()) //nolint:errcheck // best effort
}

// decodeInput reads and schema-checks the event payload in the request body.
func decodeInput(w http.ResponseWriter, r *http.Request) (event.Input, error) {
	defer r.Body.Close()
	return event.DecodeInput(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// pathEventID parses the {id} path segment, writing a 400 when it is malformed.
func pathEventID(w http.ResponseWriter, r *http.Request) (id.ID, bool) {
	evtID, err := id.ParseEventID(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, codeInvalidID, "invalid event ID")
		return id.Nil, false
	}
	return evtID, true
}
