// Package calendar renders events as an iCalendar (RFC 5545) feed.
package calendar

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/emersion/go-ical"

	"github.com/xraph/agenda/event"
)

// ContentType is the media type of an encoded feed.
const ContentType = "text/calendar; charset=utf-8"

const defaultProductID = "-//xraph//agenda//EN"

// Options tunes the generated calendar.
type Options struct {
	// ProductID is the PRODID of the calendar. Defaults to "-//xraph//agenda//EN".
	ProductID string

	// Name is the calendar display name (X-WR-CALNAME). Omitted when empty.
	Name string

	// Now stamps every VEVENT (DTSTAMP). Defaults to the current UTC time.
	Now time.Time
}

// Build returns a calendar holding one all-day VEVENT per event.
func Build(events []*event.Event, opts Options) *ical.Calendar {
	if opts.ProductID == "" {
		opts.ProductID = defaultProductID
	}
	if opts.Now.IsZero() {
		opts.Now = time.Now().UTC()
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, opts.ProductID)
	if opts.Name != "" {
		cal.Props.SetText("X-WR-CALNAME", opts.Name)
	}

	for _, evt := range events {
		cal.Children = append(cal.Children, toVEvent(evt, opts.Now))
	}
	return cal
}

// Write encodes events as an iCalendar document to w.
func Write(w io.Writer, events []*event.Event, opts Options) error {
	if err := ical.NewEncoder(w).Encode(Build(events, opts)); err != nil {
		return fmt.Errorf("calendar: encode: %w", err)
	}
	return nil
}

// toVEvent converts an event to an all-day VEVENT spanning its date.
func toVEvent(evt *event.Event, now time.Time) *ical.Component {
	start := evt.Date.Time()

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, evt.ID.String())
	ve.Props.SetText(ical.PropSummary, evt.Name)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, now)
	ve.Props.SetDate(ical.PropDateTimeStart, start)
	ve.Props.SetDate(ical.PropDateTimeEnd, start.AddDate(0, 0, 1))

	if !evt.UpdatedAt.IsZero() {
		ve.Props.SetDateTime(ical.PropLastModified, evt.UpdatedAt.UTC())
	}
	if evt.Description != "" {
		ve.Props.SetText(ical.PropDescription, evt.Description)
	}
	if evt.Location != "" {
		ve.Props.SetText(ical.PropLocation, evt.Location)
	}
	if evt.People > 0 {
		ve.Props.SetText("X-AGENDA-PEOPLE", strconv.Itoa(evt.People))
	}
	return ve
}
