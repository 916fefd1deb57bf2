package storeerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"
	"testing"

	"github.com/xraph/agenda"
)

func TestWrapNil(t *testing.T) {
	if Wrap("mongo", "create event", nil) != nil {
		t.Fatal("expected nil")
	}
}

func TestWrapPassesSentinelsThrough(t *testing.T) {
	for _, sentinel := range []error{agenda.ErrEventNotFound, agenda.ErrStoreClosed, agenda.ErrStoreUnavailable} {
		if got := Wrap("sqlite", "get event", sentinel); got != sentinel { //nolint:errorlint // identity expected
			t.Fatalf("expected %v to pass through, got %v", sentinel, got)
		}
	}
}

func TestWrapClassifiesConnectivity(t *testing.T) {
	cases := []error{
		context.DeadlineExceeded,
		driver.ErrBadConn,
		&net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
	}

	for _, cause := range cases {
		err := Wrap("postgres", "list events", cause)
		if !errors.Is(err, agenda.ErrStoreUnavailable) {
			t.Fatalf("%v: expected ErrStoreUnavailable, got %v", cause, err)
		}
		if !errors.Is(err, cause) {
			t.Fatalf("%v: expected cause preserved", cause)
		}
	}
}

func TestWrapOtherErrors(t *testing.T) {
	cause := errors.New("constraint violated")
	err := Wrap("postgres", "create event", cause)

	if errors.Is(err, agenda.ErrStoreUnavailable) {
		t.Fatal("did not expect ErrStoreUnavailable")
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause preserved")
	}
	if got, want := err.Error(), "agenda/postgres: create event: constraint violated"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
