package event

import (
	"context"

	"github.com/xraph/agenda/id"
)

// Store defines the persistence contract for events.
type Store interface {
	// CreateEvent persists a new event. Must be durable before returning.
	CreateEvent(ctx context.Context, evt *Event) error

	// ReplaceEvent overwrites the name, date, location, description and
	// people of the stored event with evt.ID, refreshing its UpdatedAt.
	// On success evt reflects the stored record. Returns
	// agenda.ErrEventNotFound if no such event exists.
	ReplaceEvent(ctx context.Context, evt *Event) error

	// DeleteEvent removes an event. Returns agenda.ErrEventNotFound if no
	// such event exists.
	DeleteEvent(ctx context.Context, evtID id.ID) error

	// GetEvent returns an event by ID.
	GetEvent(ctx context.Context, evtID id.ID) (*Event, error)

	// ListEvents returns every event, oldest first.
	ListEvents(ctx context.Context) ([]*Event, error)
}
