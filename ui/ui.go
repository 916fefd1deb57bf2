// Package ui renders the single-page event management form.
//
// The page is built from templ components and talks to the JSON API with fetch.
package ui

import (
	"context"
	"io"
	"net/http"

	"github.com/a-h/templ"
)

// Names are the event categories offered by the form.
var Names = []string{
	"Wedding",
	"Birthday Party",
	"Corporate Meeting",
	"Conference",
	"Concert",
	"Workshop",
	"Festival",
	"Charity Event",
	"Exhibition",
	"Sports Event",
}

// Locations are the cities offered by the form.
var Locations = []string{"New York", "London", "Paris", "Tokyo", "Delhi"}

// Title is the page heading.
const Title = "Event Management System"

// Handler serves the page.
func Handler() http.Handler {
	return templ.Handler(Page(Title, Names, Locations))
}

// Page renders the complete HTML document.
func Page(title string, names, locations []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`+
			`<meta name="viewport" content="width=device-width, initial-scale=1"><title>`+
			templ.EscapeString(title)+`</title><style>`+pageCSS+`</style></head><body><main><h1>`+
			templ.EscapeString(title)+`</h1>`); err != nil {
			return err
		}
		if err := EventForm(names, locations).Render(ctx, w); err != nil {
			return err
		}
		if err := EventList().Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</main><script>`+pageJS+`</script></body></html>`)
		return err
	})
}

// EventForm renders the create/update form.
func EventForm(names, locations []string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<form id="event-form" autocomplete="off">`+
			`<input type="hidden" id="event-id" name="id">`+
			`<label>Name <select id="event-name" name="name" required>`+
			`<option value="">Select an event</option>`); err != nil {
			return err
		}
		if err := Options(names).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `</select></label>`+
			`<label>Date <input type="date" id="event-date" name="date" required></label>`+
			`<label>Location <select id="event-location" name="location">`+
			`<option value="">Select a location</option>`); err != nil {
			return err
		}
		if err := Options(locations).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</select></label>`+
			`<label>People <input type="number" id="event-people" name="people" min="0" max="2147483647" step="1" value="0"></label>`+
			`<label>Description <textarea id="event-description" name="description" rows="3"></textarea></label>`+
			`<p id="form-error" class="error" role="alert"></p>`+
			`<div class="actions"><button type="submit" id="submit-button">Submit Event</button>`+
			`<button type="button" id="fetch-button">Fetch Events</button></div></form>`)
		return err
	})
}

// Options renders one <option> per value.
func Options(values []string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		for _, v := range values {
			esc := templ.EscapeString(v)
			if _, err := io.WriteString(w, `<option value="`+esc+`">`+esc+`</option>`); err != nil {
				return err
			}
		}
		return nil
	})
}

// EventList renders the container the script fills with event cards.
func EventList() templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<section><h2>Events</h2><ul id="event-list" class="cards"></ul></section>`)
		return err
	})
}
