package api

import (
	"net/http"

	"github.com/xraph/forge"

	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
)

// ForgeAPI wires the Forge-style HTTP handlers for events.
type ForgeAPI struct {
	events *event.Service
	log    forge.Logger
}

// NewForgeAPI creates a ForgeAPI over the event service.
func NewForgeAPI(events *event.Service, log forge.Logger) *ForgeAPI {
	return &ForgeAPI{
		events: events,
		log:    log,
	}
}

// RegisterRoutes registers all Agenda event routes into the given Forge router
// with full OpenAPI metadata.
func (a *ForgeAPI) RegisterRoutes(router forge.Router) {
	a.registerEventRoutes(router)
}

// ---------------------------------------------------------------------------
// Event routes
// ---------------------------------------------------------------------------

func (a *ForgeAPI) registerEventRoutes(router forge.Router) {
	g := router.Group("", forge.WithGroupTags("events"))

	if err := g.POST("/events", a.createEvent,
		forge.WithSummary("Create event"),
		forge.WithDescription("Validates an event and stores it under a fresh ID."),
		forge.WithOperationID("createEvent"),
		forge.WithRequestSchema(CreateEventForgeRequest{}),
		forge.WithCreatedResponse(event.Event{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register createEvent route", forge.Error(err))
	}

	if err := g.GET("/events", a.listEvents,
		forge.WithSummary("List events"),
		forge.WithDescription("Returns every stored event, oldest first."),
		forge.WithOperationID("listEvents"),
		forge.WithListResponse(event.Event{}, http.StatusOK),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register listEvents route", forge.Error(err))
	}

	if err := g.GET("/events/:eventId", a.getEvent,
		forge.WithSummary("Get event"),
		forge.WithDescription("Returns details of a specific event."),
		forge.WithOperationID("getEvent"),
		forge.WithResponseSchema(http.StatusOK, "Event details", event.Event{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register getEvent route", forge.Error(err))
	}

	if err := g.PUT("/events/:eventId", a.updateEvent,
		forge.WithSummary("Replace event"),
		forge.WithDescription("Replaces every field of an event. Omitted fields are cleared."),
		forge.WithOperationID("updateEvent"),
		forge.WithRequestSchema(UpdateEventForgeRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Replaced event", event.Event{}),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register updateEvent route", forge.Error(err))
	}

	if err := g.DELETE("/events/:eventId", a.deleteEvent,
		forge.WithSummary("Delete event"),
		forge.WithDescription("Removes an event permanently."),
		forge.WithOperationID("deleteEvent"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		a.log.Error("Failed to register deleteEvent route", forge.Error(err))
	}
}

func (a *ForgeAPI) createEvent(ctx forge.Context, req *CreateEventForgeRequest) (*event.Event, error) {
	evt, err := a.events.Create(ctx.Context(), req.Input())
	if err != nil {
		return nil, mapError(err)
	}

	if err := ctx.JSON(http.StatusCreated, evt); err != nil {
		return nil, mapError(err)
	}

	//nolint:nilnil // response already written via ctx.JSON.
	return nil, nil
}

func (a *ForgeAPI) listEvents(ctx forge.Context, _ *ListEventsForgeRequest) ([]*event.Event, error) {
	events, err := a.events.List(ctx.Context())
	if err != nil {
		return nil, mapError(err)
	}

	return events, nil
}

func (a *ForgeAPI) getEvent(ctx forge.Context, req *GetEventForgeRequest) (*event.Event, error) {
	evtID, err := id.ParseEventID(req.EventID)
	if err != nil {
		return nil, forge.BadRequest("invalid event ID")
	}

	evt, err := a.events.Get(ctx.Context(), evtID)
	if err != nil {
		return nil, mapError(err)
	}

	return evt, nil
}

func (a *ForgeAPI) updateEvent(ctx forge.Context, req *UpdateEventForgeRequest) (*event.Event, error) {
	evtID, err := id.ParseEventID(req.EventID)
	if err != nil {
		return nil, forge.BadRequest("invalid event ID")
	}

	evt, err := a.events.Update(ctx.Context(), evtID, req.Input())
	if err != nil {
		return nil, mapError(err)
	}

	return evt, nil
}

func (a *ForgeAPI) deleteEvent(ctx forge.Context, req *DeleteEventForgeRequest) (*event.Event, error) {
	evtID, err := id.ParseEventID(req.EventID)
	if err != nil {
		return nil, forge.BadRequest("invalid event ID")
	}

	if err := a.events.Delete(ctx.Context(), evtID); err != nil {
		return nil, mapError(err)
	}

	if err := ctx.NoContent(http.StatusNoContent); err != nil {
		return nil, mapError(err)
	}

	//nolint:nilnil // response already written via ctx.NoContent.
	return nil, nil
}
