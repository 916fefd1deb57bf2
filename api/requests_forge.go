package api

import "github.com/xraph/agenda/event"

// ---------------------------------------------------------------------------
// Event requests
// ---------------------------------------------------------------------------

// CreateEventForgeRequest binds the body for POST /events.
type CreateEventForgeRequest struct {
	Name        string `description:"Event category (e.g. Concert)"   json:"name"`
	Date        string `description:"Calendar day, YYYY-MM-DD"        json:"date"`
	Location    string `description:"Where the event takes place"     json:"location,omitempty"`
	Description string `description:"Free-form description"           json:"description,omitempty"`
	People      int    `description:"Expected attendees (default 0)"  json:"people,omitempty"`
}

// Input converts the request to a service payload.
func (r *CreateEventForgeRequest) Input() event.Input {
	return event.Input{
		Name:        r.Name,
		Date:        r.Date,
		Location:    r.Location,
		Description: r.Description,
		People:      r.People,
	}
}

// ListEventsForgeRequest binds GET /events, which takes no parameters.
type ListEventsForgeRequest struct{}

// GetEventForgeRequest binds the path for GET /events/:eventId.
type GetEventForgeRequest struct {
	EventID string `description:"Event identifier" path:"eventId"`
}

// UpdateEventForgeRequest binds the path and body for PUT /events/:eventId.
type UpdateEventForgeRequest struct {
	EventID     string `description:"Event identifier"                path:"eventId"`
	Name        string `description:"Event category (e.g. Festival)"  json:"name"`
	Date        string `description:"Calendar day, YYYY-MM-DD"        json:"date"`
	Location    string `description:"Where the event takes place"     json:"location,omitempty"`
	Description string `description:"Free-form description"           json:"description,omitempty"`
	People      int    `description:"Expected attendees (default 0)"  json:"people,omitempty"`
}

// Input converts the request to a service payload.
func (r *UpdateEventForgeRequest) Input() event.Input {
	return event.Input{
		Name:        r.Name,
		Date:        r.Date,
		Location:    r.Location,
		Description: r.Description,
		People:      r.People,
	}
}

// DeleteEventForgeRequest binds the path for DELETE /events/:eventId.
type DeleteEventForgeRequest struct {
	EventID string `description:"Event identifier" path:"eventId"`
}
