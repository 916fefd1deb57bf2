// Package agenda provides a small event-management service for Go.
//
// Agenda keeps "event" records (a category name, a calendar date, a location,
// a description and an attendee count) in a pluggable store and exposes them
// through a JSON API and a single-page form UI.
//
// Key features:
//   - Validated event records with a typed date and a non-negative attendee count
//   - Composable store pattern with multiple backends (MongoDB, Postgres, SQLite, Redis, Memory)
//   - Tagged errors mapped to distinct HTTP statuses (400, 404, 503)
//   - net/http handler and Forge routes over the same service
//   - iCalendar export of every stored event
//
// Quick start:
//
//	a, err := agenda.New(
//	    agenda.WithStore(memory.New()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	evt, err := a.Events().Create(ctx, event.Input{
//	    Name:     "Concert",
//	    Date:     "2024-07-01",
//	    Location: "Paris",
//	    People:   3,
//	})
package agenda
