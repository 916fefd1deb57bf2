// Package storeerr wraps backend errors with the agenda error taxonomy.
package storeerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	goredis "github.com/redis/go-redis/v9"
	mongod "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/xraph/agenda"
)

// Wrap annotates err as "agenda/<backend>: <op>: ..." and tags connectivity
// failures with agenda.ErrStoreUnavailable. Sentinels already in the agenda
// taxonomy pass through unwrapped.
func Wrap(backend, op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, agenda.ErrEventNotFound),
		errors.Is(err, agenda.ErrStoreClosed),
		errors.Is(err, agenda.ErrStoreUnavailable):
		return err
	case IsUnavailable(err):
		return fmt.Errorf("agenda/%s: %s: %w: %w", backend, op, agenda.ErrStoreUnavailable, err)
	default:
		return fmt.Errorf("agenda/%s: %s: %w", backend, op, err)
	}
}

// IsUnavailable reports whether err means the backend could not be reached.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, goredis.ErrClosed) ||
		errors.Is(err, mongod.ErrClientDisconnected) {
		return true
	}

	if mongod.IsNetworkError(err) || mongod.IsTimeout(err) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
