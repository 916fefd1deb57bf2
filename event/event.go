// Package event defines the event record, its persistence contract and the
// service that creates, replaces, deletes and lists events.
package event

import (
	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/entity"
)

// Event is a scheduled occasion: a category name, a calendar date, a place,
// a free-form description and an expected attendee count.
type Event struct {
	entity.Entity

	// ID is the unique TypeID for this event.
	ID id.ID `json:"id"`

	// Name is the event category label (e.g. "Concert").
	Name string `json:"name"`

	// Date is the calendar day the event takes place.
	Date Date `json:"date"`

	// Location is where the event takes place.
	Location string `json:"location"`

	// Description is free-form text.
	Description string `json:"description"`

	// People is the expected number of attendees.
	People int `json:"people"`
}

// Apply overwrites every user-editable field of e with the values in in.
// The caller must have validated in.
func (e *Event) Apply(in Input, date Date) {
	e.Name = in.Name
	e.Date = date
	e.Location = in.Location
	e.Description = in.Description
	e.People = in.People
}
