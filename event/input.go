package event

import "math"

// MaxPeople is the largest attendee count, the range of a 32-bit column.
const MaxPeople = math.MaxInt32

// Input is the creation/update payload for events.
type Input struct {
	// Name is the event category label. Required.
	Name string `json:"name"`

	// Date is the calendar day in YYYY-MM-DD form. Required.
	Date string `json:"date"`

	// Location is where the event takes place.
	Location string `json:"location"`

	// Description is free-form text.
	Description string `json:"description"`

	// People is the expected number of attendees, between 0 and MaxPeople.
	People int `json:"people"`
}
