package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"testing"

	"github.com/xraph/forge"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/store/memory"
)

// recordingContext is the slice of forge.Context the event handlers use.
type recordingContext struct {
	forge.Context

	status int
	body   any
}

func (c *recordingContext) Context() context.Context { return context.Background() }

func (c *recordingContext) JSON(code int, v any) error {
	c.status, c.body = code, v
	return nil
}

func (c *recordingContext) NoContent(code int) error {
	c.status = code
	return nil
}

func newForgeAPI() *ForgeAPI {
	return NewForgeAPI(event.NewService(memory.New(), nil), nil)
}

func TestMapError(t *testing.T) {
	internal := errors.New("disk on fire")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"validation", &event.ValidationError{Field: "people", Message: "must not be negative"}, forge.BadRequest("people: must not be negative")},
		{"malformed", fmt.Errorf("%w: eof", event.ErrMalformedPayload), forge.BadRequest("invalid request body")},
		{"not found", agenda.ErrEventNotFound, forge.NotFound("Event not found")},
		{"wrapped not found", fmt.Errorf("agenda/sqlite: get: %w", agenda.ErrEventNotFound), forge.NotFound("Event not found")},
		{"unavailable", fmt.Errorf("agenda/redis: ping: %w", agenda.ErrStoreUnavailable), forge.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")},
		{"closed", agenda.ErrStoreClosed, forge.NewHTTPError(http.StatusServiceUnavailable, "store unavailable")},
		{"no store", agenda.ErrNoStore, forge.InternalError(agenda.ErrNoStore)},
		{"other", internal, forge.InternalError(internal)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapError(tt.err)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("mapError(%v) = %#v, want %#v", tt.err, got, tt.want)
			}
		})
	}
}

func TestForgeHandlers_Lifecycle(t *testing.T) {
	a := newForgeAPI()

	c := &recordingContext{}
	out, err := a.createEvent(c, &CreateEventForgeRequest{Name: "Concert", Date: "2024-07-01", People: 3})
	if err != nil || out != nil {
		t.Fatalf("create: %v, %v", out, err)
	}
	if c.status != http.StatusCreated {
		t.Fatalf("expected 201, got %d", c.status)
	}
	created, ok := c.body.(*event.Event)
	if !ok {
		t.Fatalf("expected *event.Event body, got %T", c.body)
	}

	list, err := a.listEvents(&recordingContext{}, &ListEventsForgeRequest{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || list[0].ID.String() != created.ID.String() {
		t.Fatalf("unexpected list %+v", list)
	}

	updated, err := a.updateEvent(&recordingContext{}, &UpdateEventForgeRequest{
		EventID: created.ID.String(),
		Name:    "Festival",
		Date:    "2024-08-15",
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Name != "Festival" || updated.People != 0 {
		t.Fatalf("expected replaced event, got %+v", updated)
	}

	got, err := a.getEvent(&recordingContext{}, &GetEventForgeRequest{EventID: created.ID.String()})
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Festival" {
		t.Fatalf("expected Festival, got %q", got.Name)
	}

	c = &recordingContext{}
	if _, err := a.deleteEvent(c, &DeleteEventForgeRequest{EventID: created.ID.String()}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if c.status != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", c.status)
	}

	_, err = a.getEvent(&recordingContext{}, &GetEventForgeRequest{EventID: created.ID.String()})
	if !reflect.DeepEqual(err, forge.NotFound("Event not found")) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestForgeHandlers_Errors(t *testing.T) {
	a := newForgeAPI()
	badID := forge.BadRequest("invalid event ID")

	if _, err := a.getEvent(&recordingContext{}, &GetEventForgeRequest{EventID: "nope"}); !reflect.DeepEqual(err, badID) {
		t.Fatalf("get: expected invalid ID error, got %v", err)
	}
	if _, err := a.updateEvent(&recordingContext{}, &UpdateEventForgeRequest{EventID: "nope", Name: "Concert", Date: "2024-07-01"}); !reflect.DeepEqual(err, badID) {
		t.Fatalf("update: expected invalid ID error, got %v", err)
	}
	if _, err := a.deleteEvent(&recordingContext{}, &DeleteEventForgeRequest{EventID: "nope"}); !reflect.DeepEqual(err, badID) {
		t.Fatalf("delete: expected invalid ID error, got %v", err)
	}

	c := &recordingContext{}
	_, err := a.createEvent(c, &CreateEventForgeRequest{Date: "2024-07-01"})
	if !reflect.DeepEqual(err, forge.BadRequest("name: required")) {
		t.Fatalf("create: expected validation error, got %v", err)
	}
	if c.status != 0 {
		t.Fatalf("expected nothing written, got status %d", c.status)
	}
}
