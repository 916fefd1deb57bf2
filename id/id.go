// Package id defines the TypeID-based identifier of agenda records.
//
// An event ID looks like "evt_01h455vb4pex5vsknk084sn02q": a fixed prefix
// followed by a UUIDv7 suffix, so IDs sort in creation order.
package id

import (
	"database/sql/driver"
	"errors"
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the record kind encoded in an ID.
type Prefix string

// PrefixEvent is the prefix of every event ID.
const PrefixEvent Prefix = "evt"

// ErrEmpty is returned when parsing an empty string.
var ErrEmpty = errors.New("id: empty string")

// ID identifies an agenda record. The zero value is Nil.
//
//nolint:recvcheck // Value receivers for read-only methods, pointer receivers for UnmarshalText/Scan.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates an ID with the given prefix. It panics on a prefix typeid
// rejects, which only happens for a bad constant.
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}
	return ID{inner: tid, valid: true}
}

// NewEventID generates a new event ID.
func NewEventID() ID { return New(PrefixEvent) }

// Parse parses s and requires its prefix to be expected.
func Parse(s string, expected Prefix) (ID, error) {
	if s == "" {
		return Nil, ErrEmpty
	}
	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}
	if got := Prefix(tid.Prefix()); got != expected {
		return Nil, fmt.Errorf("id: expected prefix %q, got %q", expected, got)
	}
	return ID{inner: tid, valid: true}, nil
}

// ParseEventID parses an event ID.
func ParseEventID(s string) (ID, error) { return Parse(s, PrefixEvent) }

// String returns "prefix_suffix", or "" for Nil.
func (i ID) String() string {
	if !i.valid {
		return ""
	}
	return i.inner.String()
}

// Prefix returns the prefix of i, or "" for Nil.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}
	return Prefix(i.inner.Prefix())
}

// Compare orders IDs by their string form, which for one prefix is
// generation order.
func (i ID) Compare(other ID) int {
	a, b := i.String(), other.String()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// IsNil reports whether i is the zero value.
func (i ID) IsNil() bool { return !i.valid }

// MarshalText implements encoding.TextMarshaler.
func (i ID) MarshalText() ([]byte, error) {
	return []byte(i.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Only event IDs are
// accepted; empty input yields Nil.
func (i *ID) UnmarshalText(data []byte) error {
	if len(data) == 0 {
		*i = Nil
		return nil
	}
	parsed, err := ParseEventID(string(data))
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}

// Value implements driver.Valuer. Nil is stored as NULL.
func (i ID) Value() (driver.Value, error) {
	if !i.valid {
		return nil, nil //nolint:nilnil // NULL
	}
	return i.inner.String(), nil
}

// Scan implements sql.Scanner for TEXT and BYTEA-like columns.
func (i *ID) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*i = Nil
		return nil
	case string:
		return i.UnmarshalText([]byte(v))
	case []byte:
		return i.UnmarshalText(v)
	default:
		return fmt.Errorf("id: cannot scan %T into ID", src)
	}
}
