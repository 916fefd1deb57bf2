package event_test

import (
	"context"
	"errors"
	"testing"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/store/memory"
)

func ctx() context.Context { return context.Background() }

func newService() *event.Service {
	s := memory.New()
	return event.NewService(s, nil)
}

func concert() event.Input {
	return event.Input{
		Name:        "Concert",
		Date:        "2024-07-01",
		Location:    "Paris",
		Description: "open air",
		People:      3,
	}
}

func TestEventServiceCreate(t *testing.T) {
	svc := newService()

	evt, err := svc.Create(ctx(), concert())
	if err != nil {
		t.Fatal(err)
	}

	if evt.ID.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if evt.ID.Prefix() != id.PrefixEvent {
		t.Fatalf("expected %q prefix, got %q", id.PrefixEvent, evt.ID.Prefix())
	}
	if evt.Name != "Concert" || evt.Date.String() != "2024-07-01" || evt.Location != "Paris" ||
		evt.Description != "open air" || evt.People != 3 {
		t.Fatalf("unexpected fields %+v", evt)
	}
	if evt.CreatedAt.IsZero() {
		t.Fatal("expected created_at to be set")
	}

	list, err := svc.List(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID.String() != evt.ID.String() {
		t.Fatalf("expected list to hold exactly the new event, got %d events", len(list))
	}
}

func TestEventServiceCreateFreshIDs(t *testing.T) {
	svc := newService()

	a, err := svc.Create(ctx(), concert())
	if err != nil {
		t.Fatal(err)
	}
	b, err := svc.Create(ctx(), concert())
	if err != nil {
		t.Fatal(err)
	}
	if a.ID.String() == b.ID.String() {
		t.Fatal("expected distinct IDs for identical payloads")
	}
}

func TestEventServiceCreateValidation(t *testing.T) {
	svc := newService()
	tooMany := event.MaxPeople
	tooMany++

	tests := []struct {
		name  string
		in    event.Input
		field string
	}{
		{"missing name", event.Input{Date: "2024-07-01"}, "name"},
		{"blank name", event.Input{Name: "   ", Date: "2024-07-01"}, "name"},
		{"missing date", event.Input{Name: "Concert"}, "date"},
		{"impossible date", event.Input{Name: "Concert", Date: "2024-02-30"}, "date"},
		{"negative people", event.Input{Name: "Concert", Date: "2024-07-01", People: -2}, "people"},
		{"too many people", event.Input{Name: "Concert", Date: "2024-07-01", People: tooMany}, "people"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx(), tt.in)

			var ve *event.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Fatalf("expected field %q, got %q", tt.field, ve.Field)
			}
		})
	}

	list, err := svc.List(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("expected nothing stored, got %d events", len(list))
	}
}

func TestEventServiceUpdateReplaces(t *testing.T) {
	svc := newService()

	evt, err := svc.Create(ctx(), concert())
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.Update(ctx(), evt.ID, event.Input{Name: "Festival", Date: "2024-07-01", People: 5})
	if err != nil {
		t.Fatal(err)
	}

	if updated.ID.String() != evt.ID.String() {
		t.Fatalf("expected id %s, got %s", evt.ID, updated.ID)
	}
	if updated.Name != "Festival" || updated.People != 5 {
		t.Fatalf("unexpected fields %+v", updated)
	}
	// Omitted fields are cleared rather than merged.
	if updated.Location != "" || updated.Description != "" {
		t.Fatalf("expected location and description cleared, got %q/%q", updated.Location, updated.Description)
	}
	if !updated.CreatedAt.Equal(evt.CreatedAt) {
		t.Fatalf("expected created_at preserved, got %s", updated.CreatedAt)
	}

	got, err := svc.Get(ctx(), evt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Festival" || got.Location != "" {
		t.Fatalf("expected stored replacement, got %+v", got)
	}
}

func TestEventServiceUpdateNotFound(t *testing.T) {
	svc := newService()

	existing, err := svc.Create(ctx(), concert())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Update(ctx(), id.NewEventID(), concert())
	if !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	list, err := svc.List(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID.String() != existing.ID.String() || list[0].Name != "Concert" {
		t.Fatal("expected store unchanged")
	}
}

func TestEventServiceUpdateValidation(t *testing.T) {
	svc := newService()

	evt, err := svc.Create(ctx(), concert())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Update(ctx(), evt.ID, event.Input{Name: "Festival"})
	var ve *event.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}

	got, err := svc.Get(ctx(), evt.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Concert" {
		t.Fatalf("expected stored event untouched, got %q", got.Name)
	}

	if _, err := svc.Update(ctx(), id.Nil, concert()); !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError for nil id, got %v", err)
	}
}

func TestEventServiceDelete(t *testing.T) {
	svc := newService()

	keep, err := svc.Create(ctx(), concert())
	if err != nil {
		t.Fatal(err)
	}
	drop, err := svc.Create(ctx(), event.Input{Name: "Wedding", Date: "2024-09-09"})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx(), drop.ID); err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID.String() != keep.ID.String() {
		t.Fatal("expected only the kept event to remain")
	}

	// A second delete of the same id reports not found and changes nothing.
	if err := svc.Delete(ctx(), drop.ID); !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	after, err := svc.List(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(after) != 1 {
		t.Fatalf("expected 1 event after repeated delete, got %d", len(after))
	}
}

func TestEventServiceDeleteNotFound(t *testing.T) {
	svc := newService()

	if err := svc.Delete(ctx(), id.NewEventID()); !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func TestEventServiceListEmptyIsNotNil(t *testing.T) {
	svc := newService()

	list, err := svc.List(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if list == nil {
		t.Fatal("expected empty, non-nil slice")
	}
}

func TestEventServiceStoreUnavailable(t *testing.T) {
	s := memory.New()
	svc := event.NewService(s, nil)
	_ = s.Close()

	if _, err := svc.Create(ctx(), concert()); !agenda.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if _, err := svc.List(ctx()); !agenda.IsUnavailable(err) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestEventLifecycleScenario(t *testing.T) {
	svc := newService()

	created, err := svc.Create(ctx(), event.Input{Name: "Concert", Date: "2024-07-01", Location: "Paris", People: 3})
	if err != nil {
		t.Fatal(err)
	}

	list, err := svc.List(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Concert" || list[0].Location != "Paris" || list[0].People != 3 {
		t.Fatalf("unexpected list after create: %+v", list)
	}

	updated, err := svc.Update(ctx(), created.ID, event.Input{Name: "Festival", Date: "2024-07-01", Location: "Paris", People: 5})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Name != "Festival" || updated.People != 5 {
		t.Fatalf("unexpected update result %+v", updated)
	}

	list, err = svc.List(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Name != "Festival" || list[0].People != 5 {
		t.Fatalf("unexpected list after update: %+v", list)
	}

	if err := svc.Delete(ctx(), created.ID); err != nil {
		t.Fatal(err)
	}

	list, err = svc.List(ctx())
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d events", len(list))
	}
}
