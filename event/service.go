package event

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xraph/agenda/id"
	"github.com/xraph/agenda/internal/entity"
	"github.com/xraph/agenda/observability"
)

// Service provides event management operations.
type Service struct {
	store   Store
	logger  *slog.Logger
	tracer  *observability.Tracer
	metrics *observability.Metrics
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithTracer sets the tracer used for operation spans.
func WithTracer(t *observability.Tracer) ServiceOption {
	return func(svc *Service) {
		if t != nil {
			svc.tracer = t
		}
	}
}

// WithMetrics sets the metric instruments. Nil disables metrics.
func WithMetrics(m *observability.Metrics) ServiceOption {
	return func(svc *Service) {
		svc.metrics = m
	}
}

// NewService creates a new event service.
func NewService(store Store, logger *slog.Logger, opts ...ServiceOption) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	svc := &Service{
		store:  store,
		logger: logger,
		tracer: observability.NewTracer(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Create validates in and stores it as a new event with a fresh ID.
func (svc *Service) Create(ctx context.Context, in Input) (evt *Event, err error) {
	ctx, done := svc.begin(ctx, "create", id.Nil)
	defer func() { done(err) }()

	date, err := Validate(in)
	if err != nil {
		return nil, err
	}

	evt = &Event{
		Entity: entity.New(),
		ID:     id.NewEventID(),
	}
	evt.Apply(in, date)

	if err := svc.store.CreateEvent(ctx, evt); err != nil {
		return nil, err
	}

	svc.metrics.RecordCreated()
	svc.logger.Debug("event created", slog.String("event_id", evt.ID.String()), slog.String("name", evt.Name))

	return evt, nil
}

// Update replaces every field of the event evtID with the values in in.
// Fields absent from in are reset to their zero values, never merged.
func (svc *Service) Update(ctx context.Context, evtID id.ID, in Input) (evt *Event, err error) {
	ctx, done := svc.begin(ctx, "update", evtID)
	defer func() { done(err) }()

	if evtID.IsNil() {
		return nil, &ValidationError{Field: "id", Message: "required"}
	}

	date, err := Validate(in)
	if err != nil {
		return nil, err
	}

	evt = &Event{ID: evtID}
	evt.Apply(in, date)

	if err := svc.store.ReplaceEvent(ctx, evt); err != nil {
		return nil, err
	}

	svc.metrics.RecordUpdated()
	svc.logger.Debug("event updated", slog.String("event_id", evtID.String()))

	return evt, nil
}

// Delete removes the event evtID.
func (svc *Service) Delete(ctx context.Context, evtID id.ID) (err error) {
	ctx, done := svc.begin(ctx, "delete", evtID)
	defer func() { done(err) }()

	if evtID.IsNil() {
		return &ValidationError{Field: "id", Message: "required"}
	}

	if err := svc.store.DeleteEvent(ctx, evtID); err != nil {
		return err
	}

	svc.metrics.RecordDeleted()
	svc.logger.Debug("event deleted", slog.String("event_id", evtID.String()))

	return nil
}

// Get returns the event evtID.
func (svc *Service) Get(ctx context.Context, evtID id.ID) (evt *Event, err error) {
	ctx, done := svc.begin(ctx, "get", evtID)
	defer func() { done(err) }()

	if evtID.IsNil() {
		return nil, &ValidationError{Field: "id", Message: "required"}
	}

	return svc.store.GetEvent(ctx, evtID)
}

// List returns every stored event, oldest first. The result is never nil.
func (svc *Service) List(ctx context.Context) (events []*Event, err error) {
	ctx, done := svc.begin(ctx, "list", id.Nil)
	defer func() { done(err) }()

	events, err = svc.store.ListEvents(ctx)
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*Event{}
	}

	svc.metrics.SetStoredEvents(len(events))

	return events, nil
}

// begin opens a span for op and returns a func that closes it and records metrics.
func (svc *Service) begin(ctx context.Context, op string, evtID id.ID) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := svc.tracer.StartEventSpan(ctx, op, evtID.String())

	return ctx, func(err error) {
		svc.tracer.EndEventSpan(span, err)
		svc.metrics.RecordOperation(outcome(err), time.Since(start).Seconds())
	}
}

func outcome(err error) string {
	var ve *ValidationError
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.As(err, &ve):
		return observability.OutcomeInvalid
	default:
		return observability.OutcomeError
	}
}

// Validate checks in and returns its parsed date.
func Validate(in Input) (Date, error) {
	if strings.TrimSpace(in.Name) == "" {
		return Date{}, &ValidationError{Field: "name", Message: "required"}
	}

	if strings.TrimSpace(in.Date) == "" {
		return Date{}, &ValidationError{Field: "date", Message: "required"}
	}

	date, err := ParseDate(in.Date)
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Message: "must be a calendar date in YYYY-MM-DD form"}
	}

	if in.People < 0 {
		return Date{}, &ValidationError{Field: "people", Message: "must not be negative"}
	}
	if in.People > MaxPeople {
		return Date{}, &ValidationError{Field: "people", Message: fmt.Sprintf("must not exceed %d", MaxPeople)}
	}

	return date, nil
}

// ValidationError indicates invalid input.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "event validation: " + e.Field + ": " + e.Message
}
