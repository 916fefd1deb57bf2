package observability

import (
	gu "github.com/xraph/go-utils/metrics"
)

// Metrics holds metric instruments for Agenda, backed by any go-utils MetricFactory
// (e.g. the forge-managed metrics system via fapp.Metrics()).
type Metrics struct {
	EventsCreatedTotal gu.Counter
	EventsUpdatedTotal gu.Counter
	EventsDeletedTotal gu.Counter
	OperationsTotal    gu.Counter
	OperationsInvalid  gu.Counter
	OperationsFailed   gu.Counter
	OperationLatency   gu.Histogram
	StoredEvents       gu.Gauge
}

// NewMetrics creates Agenda metric instruments using the supplied factory.
// A nil factory yields nil Metrics, which every Record method accepts.
func NewMetrics(factory gu.MetricFactory) *Metrics {
	if factory == nil {
		return nil
	}
	return &Metrics{
		EventsCreatedTotal: factory.Counter("agenda_events_created_total"),
		EventsUpdatedTotal: factory.Counter("agenda_events_updated_total"),
		EventsDeletedTotal: factory.Counter("agenda_events_deleted_total"),
		OperationsTotal:    factory.Counter("agenda_operations_total"),
		OperationsInvalid:  factory.Counter("agenda_operations_invalid_total"),
		OperationsFailed:   factory.Counter("agenda_operations_failed_total"),
		OperationLatency:   factory.Histogram("agenda_operation_latency_seconds"),
		StoredEvents:       factory.Gauge("agenda_stored_events"),
	}
}

// Operation outcomes accepted by RecordOperation.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

// RecordOperation records one service operation with its outcome and latency.
// Outcomes use separate counters; WithLabels counters are not registered with the factory.
func (m *Metrics) RecordOperation(outcome string, latencySeconds float64) {
	if m == nil {
		return
	}
	m.OperationsTotal.Inc()
	switch outcome {
	case OutcomeInvalid:
		m.OperationsInvalid.Inc()
	case OutcomeError:
		m.OperationsFailed.Inc()
	}
	m.OperationLatency.Observe(latencySeconds)
}

// RecordCreated counts a stored event.
func (m *Metrics) RecordCreated() {
	if m == nil {
		return
	}
	m.EventsCreatedTotal.Inc()
}

// RecordUpdated counts a replaced event.
func (m *Metrics) RecordUpdated() {
	if m == nil {
		return
	}
	m.EventsUpdatedTotal.Inc()
}

// RecordDeleted counts a removed event.
func (m *Metrics) RecordDeleted() {
	if m == nil {
		return
	}
	m.EventsDeletedTotal.Inc()
}

// SetStoredEvents reports the number of events returned by the last full listing.
func (m *Metrics) SetStoredEvents(n int) {
	if m == nil {
		return
	}
	m.StoredEvents.Set(float64(n))
}

// Snapshot flattens the metrics held by repo into JSON-friendly values.
// Counters and gauges report their value; histograms report count and sum.
func Snapshot(repo gu.MetricRepository) map[string]any {
	out := make(map[string]any)
	if repo == nil {
		return out
	}
	for name, metric := range repo.ListMetrics() {
		switch v := metric.(type) {
		case gu.Counter:
			out[name] = v.Value()
		case gu.Gauge:
			out[name] = v.Value()
		case gu.Histogram:
			out[name] = map[string]any{"count": v.Count(), "sum": v.Sum()}
		}
	}
	return out
}
