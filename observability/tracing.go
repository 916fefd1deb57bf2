package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/xraph/agenda"

// Tracer provides OpenTelemetry tracing for Agenda.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new Agenda tracer using the global tracer provider.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

// StartEventSpan starts a span for an event operation such as "create" or "delete".
// eventID may be empty for operations that address no single event.
func (t *Tracer) StartEventSpan(ctx context.Context, op, eventID string) (context.Context, trace.Span) {
	attrs := []attribute.KeyValue{attribute.String("agenda.operation", op)}
	if eventID != "" {
		attrs = append(attrs, attribute.String("agenda.event_id", eventID))
	}
	return t.tracer.Start(ctx, "agenda.event."+op, trace.WithAttributes(attrs...))
}

// EndEventSpan ends an event span, recording err when non-nil.
func (t *Tracer) EndEventSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
