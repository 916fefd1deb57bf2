// Package storetest provides a conformance suite that every store.Store
// backend must pass.
package storetest

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/entity"
	"github.com/xraph/agenda/store"
)

// Factory returns a migrated store. The suite empties it before each case and
// closes it afterwards.
type Factory func(t *testing.T) store.Store

// Run executes the conformance suite against stores produced by newStore.
func Run(t *testing.T, newStore Factory) {
	t.Helper()

	cases := []struct {
		name string
		fn   func(t *testing.T, s store.Store)
	}{
		{"Lifecycle", testLifecycle},
		{"CreateAndGet", testCreateAndGet},
		{"ListEmpty", testListEmpty},
		{"ListOrder", testListOrder},
		{"Replace", testReplace},
		{"ReplaceMissing", testReplaceMissing},
		{"Delete", testDelete},
		{"DeleteMissing", testDeleteMissing},
		{"DeleteTwice", testDeleteTwice},
		{"GetMissing", testGetMissing},
		{"ReplaceAfterDelete", testReplaceAfterDelete},
		{"ReplaceDeleteRace", testReplaceDeleteRace},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newStore(t)
			t.Cleanup(func() { _ = s.Close() })
			reset(t, s)
			tc.fn(t, s)
		})
	}
}

func ctx() context.Context { return context.Background() }

func reset(t *testing.T, s store.Store) {
	t.Helper()

	events, err := s.ListEvents(ctx())
	if err != nil {
		t.Fatalf("reset: list: %v", err)
	}
	for _, evt := range events {
		if err := s.DeleteEvent(ctx(), evt.ID); err != nil {
			t.Fatalf("reset: delete %s: %v", evt.ID, err)
		}
	}
}

// NewEvent returns an unsaved event with the given name and creation time.
func NewEvent(name string, createdAt time.Time) *event.Event {
	createdAt = createdAt.UTC().Truncate(time.Millisecond)
	return &event.Event{
		Entity:      entity.Entity{CreatedAt: createdAt, UpdatedAt: createdAt},
		ID:          id.NewEventID(),
		Name:        name,
		Date:        event.MustParseDate("2024-07-01"),
		Location:    "Paris",
		Description: "open air",
		People:      3,
	}
}

func assertSameFields(t *testing.T, want, got *event.Event) {
	t.Helper()

	if got.ID.String() != want.ID.String() {
		t.Fatalf("id: want %s, got %s", want.ID, got.ID)
	}
	if got.Name != want.Name {
		t.Fatalf("name: want %q, got %q", want.Name, got.Name)
	}
	if got.Date != want.Date {
		t.Fatalf("date: want %s, got %s", want.Date, got.Date)
	}
	if got.Location != want.Location {
		t.Fatalf("location: want %q, got %q", want.Location, got.Location)
	}
	if got.Description != want.Description {
		t.Fatalf("description: want %q, got %q", want.Description, got.Description)
	}
	if got.People != want.People {
		t.Fatalf("people: want %d, got %d", want.People, got.People)
	}
}

func assertSameTime(t *testing.T, field string, want, got time.Time) {
	t.Helper()

	if d := got.Sub(want); d > time.Millisecond || d < -time.Millisecond {
		t.Fatalf("%s: want %s, got %s", field, want, got)
	}
}

func ids(events []*event.Event) []string {
	out := make([]string, len(events))
	for i, evt := range events {
		out[i] = evt.ID.String()
	}
	return out
}

func testLifecycle(t *testing.T, s store.Store) {
	if err := s.Migrate(ctx()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if err := s.Ping(ctx()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

func testCreateAndGet(t *testing.T, s store.Store) {
	evt := NewEvent("Concert", time.Now())
	if err := s.CreateEvent(ctx(), evt); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := s.GetEvent(ctx(), evt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assertSameFields(t, evt, got)
	assertSameTime(t, "created_at", evt.CreatedAt, got.CreatedAt)

	list, err := s.ListEvents(ctx())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 event, got %d", len(list))
	}
	assertSameFields(t, evt, list[0])
}

func testListEmpty(t *testing.T, s store.Store) {
	list, err := s.ListEvents(ctx())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no events, got %d", len(list))
	}
}

func testListOrder(t *testing.T, s store.Store) {
	base := time.Now().Add(-time.Hour)
	third := NewEvent("Workshop", base.Add(2*time.Minute))
	first := NewEvent("Wedding", base)
	second := NewEvent("Conference", base.Add(time.Minute))

	for _, evt := range []*event.Event{third, first, second} {
		if err := s.CreateEvent(ctx(), evt); err != nil {
			t.Fatalf("create %s: %v", evt.Name, err)
		}
	}

	list, err := s.ListEvents(ctx())
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	got := ids(list)
	want := ids([]*event.Event{first, second, third})
	if len(got) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: want %s, got %s", i, want[i], got[i])
		}
	}
}

func testReplace(t *testing.T, s store.Store) {
	created := time.Now().Add(-time.Minute)
	evt := NewEvent("Concert", created)
	other := NewEvent("Wedding", created.Add(time.Second))
	for _, e := range []*event.Event{evt, other} {
		if err := s.CreateEvent(ctx(), e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	replacement := &event.Event{
		ID:     evt.ID,
		Name:   "Festival",
		Date:   event.MustParseDate("2024-08-15"),
		People: 5,
	}
	if err := s.ReplaceEvent(ctx(), replacement); err != nil {
		t.Fatalf("replace: %v", err)
	}

	// Fields missing from the replacement are cleared, not merged.
	want := &event.Event{ID: evt.ID, Name: "Festival", Date: event.MustParseDate("2024-08-15"), People: 5}
	assertSameFields(t, want, replacement)
	assertSameTime(t, "created_at", evt.CreatedAt, replacement.CreatedAt)
	if !replacement.UpdatedAt.After(evt.UpdatedAt) {
		t.Fatalf("expected updated_at to advance past %s, got %s", evt.UpdatedAt, replacement.UpdatedAt)
	}

	got, err := s.GetEvent(ctx(), evt.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	assertSameFields(t, want, got)

	untouched, err := s.GetEvent(ctx(), other.ID)
	if err != nil {
		t.Fatalf("get other: %v", err)
	}
	assertSameFields(t, other, untouched)
}

func testReplaceMissing(t *testing.T, s store.Store) {
	evt := NewEvent("Concert", time.Now())
	if err := s.CreateEvent(ctx(), evt); err != nil {
		t.Fatalf("create: %v", err)
	}

	ghost := NewEvent("Festival", time.Now())
	err := s.ReplaceEvent(ctx(), ghost)
	if !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	list, err := s.ListEvents(ctx())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected store unchanged with 1 event, got %d", len(list))
	}
	assertSameFields(t, evt, list[0])
}

func testDelete(t *testing.T, s store.Store) {
	base := time.Now().Add(-time.Minute)
	keep := NewEvent("Wedding", base)
	drop := NewEvent("Concert", base.Add(time.Second))
	for _, e := range []*event.Event{keep, drop} {
		if err := s.CreateEvent(ctx(), e); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if err := s.DeleteEvent(ctx(), drop.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	list, err := s.ListEvents(ctx())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 event, got %d", len(list))
	}
	assertSameFields(t, keep, list[0])

	if _, err := s.GetEvent(ctx(), drop.ID); !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound after delete, got %v", err)
	}
}

func testDeleteMissing(t *testing.T, s store.Store) {
	evt := NewEvent("Concert", time.Now())
	if err := s.CreateEvent(ctx(), evt); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.DeleteEvent(ctx(), id.NewEventID()); !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	list, err := s.ListEvents(ctx())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected store unchanged with 1 event, got %d", len(list))
	}
}

func testDeleteTwice(t *testing.T, s store.Store) {
	evt := NewEvent("Concert", time.Now())
	if err := s.CreateEvent(ctx(), evt); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := s.DeleteEvent(ctx(), evt.ID); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := s.DeleteEvent(ctx(), evt.ID); !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("second delete: expected ErrEventNotFound, got %v", err)
	}

	list, err := s.ListEvents(ctx())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %d events", len(list))
	}
}

func testGetMissing(t *testing.T, s store.Store) {
	if _, err := s.GetEvent(ctx(), id.NewEventID()); !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
}

func testReplaceAfterDelete(t *testing.T, s store.Store) {
	evt := NewEvent("Concert", time.Now())
	if err := s.CreateEvent(ctx(), evt); err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.DeleteEvent(ctx(), evt.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	replacement := NewEvent("Festival", time.Now())
	replacement.ID = evt.ID
	if err := s.ReplaceEvent(ctx(), replacement); !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}
	if _, err := s.GetEvent(ctx(), evt.ID); !errors.Is(err, agenda.ErrEventNotFound) {
		t.Fatalf("expected deleted event to stay gone, got %v", err)
	}
}

// testReplaceDeleteRace runs a replace and a delete of the same event
// concurrently. Whatever the interleaving, the delete wins and no record
// is left behind.
func testReplaceDeleteRace(t *testing.T, s store.Store) {
	const rounds = 20

	for i := range rounds {
		evt := NewEvent("Concert", time.Now())
		if err := s.CreateEvent(ctx(), evt); err != nil {
			t.Fatalf("round %d: create: %v", i, err)
		}

		replacement := NewEvent("Festival", time.Now())
		replacement.ID = evt.ID

		var (
			wg         sync.WaitGroup
			replaceErr error
			deleteErr  error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			replaceErr = s.ReplaceEvent(ctx(), replacement)
		}()
		go func() {
			defer wg.Done()
			deleteErr = s.DeleteEvent(ctx(), evt.ID)
		}()
		wg.Wait()

		if deleteErr != nil {
			t.Fatalf("round %d: delete: %v", i, deleteErr)
		}
		if replaceErr != nil && !errors.Is(replaceErr, agenda.ErrEventNotFound) {
			t.Fatalf("round %d: replace: %v", i, replaceErr)
		}
		if _, err := s.GetEvent(ctx(), evt.ID); !errors.Is(err, agenda.ErrEventNotFound) {
			t.Fatalf("round %d: expected no record after delete, got %v", i, err)
		}
	}

	list, err := s.ListEvents(ctx())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty store, got %v", ids(list))
	}
}
