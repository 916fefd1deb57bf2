package sqlite

import (
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/entity"
)

// timeLayout is fixed-width UTC so TEXT ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// --- Event models ---

type eventModel struct {
	grove.BaseModel `grove:"table:agenda_events"`

	ID          id.ID  `grove:"id,pk"`
	Name        string `grove:"name"`
	Date        string `grove:"date"`
	Location    string `grove:"location"`
	Description string `grove:"description"`
	People      int    `grove:"people"`
	CreatedAt   string `grove:"created_at"`
	UpdatedAt   string `grove:"updated_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(timeLayout, s)
}

func toEventModel(evt *event.Event) *eventModel {
	return &eventModel{
		ID:          evt.ID,
		Name:        evt.Name,
		Date:        evt.Date.String(),
		Location:    evt.Location,
		Description: evt.Description,
		People:      evt.People,
		CreatedAt:   formatTime(evt.CreatedAt),
		UpdatedAt:   formatTime(evt.UpdatedAt),
	}
}

func fromEventModel(m *eventModel) (*event.Event, error) {
	if m.ID.Prefix() != id.PrefixEvent {
		return nil, fmt.Errorf("event row has invalid ID %q", m.ID)
	}

	var date event.Date
	if err := date.UnmarshalText([]byte(m.Date)); err != nil {
		return nil, fmt.Errorf("parse event %s date: %w", m.ID, err)
	}
	created, err := parseTime(m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse event %s created_at: %w", m.ID, err)
	}
	updated, err := parseTime(m.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("parse event %s updated_at: %w", m.ID, err)
	}

	return &event.Event{
		Entity: entity.Entity{
			CreatedAt: created,
			UpdatedAt: updated,
		},
		ID:          m.ID,
		Name:        m.Name,
		Date:        date,
		Location:    m.Location,
		Description: m.Description,
		People:      m.People,
	}, nil
}
