package postgres

import (
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/entity"
)

// returnedColumns is the eventModel column order used with RETURNING.
var returnedColumns = []string{"id", "name", "date", "location", "description", "people", "created_at", "updated_at"}

// --- Event models ---

type eventModel struct {
	grove.BaseModel `grove:"table:agenda_events"`

	ID          id.ID     `grove:"id,pk"`
	Name        string    `grove:"name"`
	Date        time.Time `grove:"date"`
	Location    string    `grove:"location"`
	Description string    `grove:"description"`
	People      int       `grove:"people"`
	CreatedAt   time.Time `grove:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"`
}

func toEventModel(evt *event.Event) *eventModel {
	return &eventModel{
		ID:          evt.ID,
		Name:        evt.Name,
		Date:        evt.Date.Time(),
		Location:    evt.Location,
		Description: evt.Description,
		People:      evt.People,
		CreatedAt:   evt.CreatedAt,
		UpdatedAt:   evt.UpdatedAt,
	}
}

func fromEventModel(m *eventModel) (*event.Event, error) {
	if m.ID.Prefix() != id.PrefixEvent {
		return nil, fmt.Errorf("event row has invalid ID %q", m.ID)
	}

	return &event.Event{
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt.UTC(),
			UpdatedAt: m.UpdatedAt.UTC(),
		},
		ID:          m.ID,
		Name:        m.Name,
		Date:        event.DateOf(m.Date.UTC()),
		Location:    m.Location,
		Description: m.Description,
		People:      m.People,
	}, nil
}
