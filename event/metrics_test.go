package event_test

import (
	"testing"

	gu "github.com/xraph/go-utils/metrics"

	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/observability"
	"github.com/xraph/agenda/store/memory"
)

func TestEventServiceMetrics(t *testing.T) {
	collector := gu.NewMetricsCollector("agenda-test")
	m := observability.NewMetrics(collector)
	svc := event.NewService(memory.New(), nil, event.WithMetrics(m))

	evt, err := svc.Create(ctx(), concert())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Update(ctx(), evt.ID, event.Input{Name: "Festival", Date: "2024-07-01", People: 5}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.List(ctx()); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx(), evt.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Create(ctx(), event.Input{Date: "2024-07-01"}); err == nil {
		t.Fatal("expected validation error")
	}
	if err := svc.Delete(ctx(), evt.ID); err == nil {
		t.Fatal("expected not found")
	}

	if got := m.EventsCreatedTotal.Value(); got != 1 {
		t.Fatalf("expected 1 created, got %v", got)
	}
	if got := m.EventsUpdatedTotal.Value(); got != 1 {
		t.Fatalf("expected 1 updated, got %v", got)
	}
	if got := m.EventsDeletedTotal.Value(); got != 1 {
		t.Fatalf("expected 1 deleted, got %v", got)
	}
	if got := m.StoredEvents.Value(); got != 1 {
		t.Fatalf("expected stored gauge 1 after list, got %v", got)
	}
	if got := m.OperationsTotal.Value(); got != 6 {
		t.Fatalf("expected 6 operations, got %v", got)
	}
	if got := m.OperationsInvalid.Value(); got != 1 {
		t.Fatalf("expected 1 invalid operation, got %v", got)
	}
	if got := m.OperationsFailed.Value(); got != 1 {
		t.Fatalf("expected 1 failed operation, got %v", got)
	}
	if got := m.OperationLatency.Count(); got != 6 {
		t.Fatalf("expected 6 latency observations, got %d", got)
	}
}
