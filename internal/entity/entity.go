// Package entity defines the base entity type for all agenda domain objects.
package entity

import "time"

// Entity is the base type embedded by all agenda domain objects.
type Entity struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New returns an Entity with both timestamps set to the current UTC time.
func New() Entity {
	now := time.Now().UTC()
	return Entity{CreatedAt: now, UpdatedAt: now}
}

// Touch refreshes UpdatedAt, keeping CreatedAt.
func (e *Entity) Touch() {
	e.UpdatedAt = time.Now().UTC()
}
