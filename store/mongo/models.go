package mongo

import (
	"fmt"
	"time"

	"github.com/xraph/grove"

	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/entity"
)

type eventModel struct {
	grove.BaseModel `grove:"table:agenda_events"`

	ID          string    `grove:"id,pk"       bson:"_id"`
	Name        string    `grove:"name"        bson:"name"`
	Date        string    `grove:"date"        bson:"date"`
	Location    string    `grove:"location"    bson:"location"`
	Description string    `grove:"description" bson:"description"`
	People      int       `grove:"people"      bson:"people"`
	CreatedAt   time.Time `grove:"created_at"  bson:"created_at"`
	UpdatedAt   time.Time `grove:"updated_at"  bson:"updated_at"`
}

func toEventModel(evt *event.Event) *eventModel {
	return &eventModel{
		ID:          evt.ID.String(),
		Name:        evt.Name,
		Date:        evt.Date.String(),
		Location:    evt.Location,
		Description: evt.Description,
		People:      evt.People,
		CreatedAt:   evt.CreatedAt,
		UpdatedAt:   evt.UpdatedAt,
	}
}

func fromEventModel(m *eventModel) (*event.Event, error) {
	evtID, err := id.ParseEventID(m.ID)
	if err != nil {
		return nil, fmt.Errorf("parse event ID %q: %w", m.ID, err)
	}

	var date event.Date
	if err := date.UnmarshalText([]byte(m.Date)); err != nil {
		return nil, fmt.Errorf("parse event %s date: %w", m.ID, err)
	}

	return &event.Event{
		Entity: entity.Entity{
			CreatedAt: m.CreatedAt.UTC(),
			UpdatedAt: m.UpdatedAt.UTC(),
		},
		ID:          evtID,
		Name:        m.Name,
		Date:        date,
		Location:    m.Location,
		Description: m.Description,
		People:      m.People,
	}, nil
}
