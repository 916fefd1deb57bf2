package agenda

import "errors"

// Sentinel errors returned by Agenda operations.
var (
	// ErrNoStore is returned when an Agenda is created without a store.
	ErrNoStore = errors.New("agenda: store is required")

	// ErrEventNotFound is returned when no event exists for the given ID.
	ErrEventNotFound = errors.New("agenda: event not found")

	// ErrStoreUnavailable is returned when the backing store cannot be reached.
	ErrStoreUnavailable = errors.New("agenda: store unavailable")

	// ErrStoreClosed is returned when a store operation is attempted after the store is closed.
	ErrStoreClosed = errors.New("agenda: store is closed")

	// ErrMigrationFailed is returned when a database migration fails.
	ErrMigrationFailed = errors.New("agenda: migration failed")
)

// IsUnavailable reports whether err means the store could not serve the request
// because it is unreachable or already closed.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrStoreClosed)
}
