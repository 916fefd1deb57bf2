// Package memory provides an in-memory Store implementation for unit testing
// and single-process use.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/event"
	"github.com/xraph/agenda/id"
	agendastore "github.com/xraph/agenda/store"
)

// compile-time interface check.
var _ agendastore.Store = (*Store)(nil)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu sync.RWMutex

	events map[string]*event.Event // keyed by ID string

	closed bool
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		events: make(map[string]*event.Event),
	}
}

// ──────────────────────────────────────────────────
// Lifecycle
// ──────────────────────────────────────────────────

// Migrate is a no-op for the in-memory store.
func (s *Store) Migrate(_ context.Context) error { return nil }

// Ping reports ErrStoreClosed once the store is closed.
func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return agenda.ErrStoreClosed
	}
	return nil
}

// Close marks the store as closed.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// ──────────────────────────────────────────────────
// event.Store
// ──────────────────────────────────────────────────

// CreateEvent persists a copy of evt.
func (s *Store) CreateEvent(_ context.Context, evt *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return agenda.ErrStoreClosed
	}

	cp := *evt
	s.events[evt.ID.String()] = &cp
	return nil
}

// ReplaceEvent overwrites the user fields of an existing event.
func (s *Store) ReplaceEvent(_ context.Context, evt *event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return agenda.ErrStoreClosed
	}

	existing, ok := s.events[evt.ID.String()]
	if !ok {
		return agenda.ErrEventNotFound
	}

	existing.Name = evt.Name
	existing.Date = evt.Date
	existing.Location = evt.Location
	existing.Description = evt.Description
	existing.People = evt.People
	existing.UpdatedAt = time.Now().UTC()

	*evt = *existing
	return nil
}

// DeleteEvent removes an event by ID.
func (s *Store) DeleteEvent(_ context.Context, evtID id.ID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return agenda.ErrStoreClosed
	}

	key := evtID.String()
	if _, ok := s.events[key]; !ok {
		return agenda.ErrEventNotFound
	}
	delete(s.events, key)
	return nil
}

// GetEvent returns a copy of the event with the given ID.
func (s *Store) GetEvent(_ context.Context, evtID id.ID) (*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, agenda.ErrStoreClosed
	}

	evt, ok := s.events[evtID.String()]
	if !ok {
		return nil, agenda.ErrEventNotFound
	}
	cp := *evt
	return &cp, nil
}

// ListEvents returns copies of every event ordered by creation time.
func (s *Store) ListEvents(_ context.Context) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, agenda.ErrStoreClosed
	}

	result := make([]*event.Event, 0, len(s.events))
	for _, evt := range s.events {
		cp := *evt
		result = append(result, &cp)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.Before(result[j].CreatedAt)
		}
		return result[i].ID.Compare(result[j].ID) < 0
	})

	return result, nil
}
