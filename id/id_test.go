package id

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEventID(t *testing.T) {
	a, b := NewEventID(), NewEventID()
	if a.IsNil() {
		t.Fatal("expected non-nil ID")
	}
	if a.Prefix() != PrefixEvent {
		t.Fatalf("expected prefix %q, got %q", PrefixEvent, a.Prefix())
	}
	if !strings.HasPrefix(a.String(), "evt_") {
		t.Fatalf("unexpected form %q", a)
	}
	if a.Compare(b) == 0 {
		t.Fatalf("expected distinct IDs, got %s twice", a)
	}
	if a.Compare(a) != 0 || a.Compare(b) != -b.Compare(a) {
		t.Fatal("compare is not antisymmetric")
	}
}

func TestParseEventID(t *testing.T) {
	want := NewEventID()
	got, err := ParseEventID(want.String())
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Compare(want) != 0 {
		t.Fatalf("want %s, got %s", want, got)
	}

	if _, err := ParseEventID(""); !errors.Is(err, ErrEmpty) {
		t.Fatalf("expected ErrEmpty, got %v", err)
	}
	other := New("usr")
	if _, err := ParseEventID(other.String()); err == nil {
		t.Fatal("expected error for foreign prefix")
	}
	for _, bad := range []string{"evt_", "evt_!!!", "not-an-id", "01h455vb4pex5vsknk084sn02q"} {
		if _, err := ParseEventID(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestNil(t *testing.T) {
	if !Nil.IsNil() {
		t.Fatal("Nil should be nil")
	}
	if Nil.String() != "" || Nil.Prefix() != "" {
		t.Fatalf("unexpected Nil form %q/%q", Nil.String(), Nil.Prefix())
	}
	v, err := Nil.Value()
	if err != nil || v != nil {
		t.Fatalf("expected NULL value, got %v, %v", v, err)
	}
}

func TestText(t *testing.T) {
	want := NewEventID()
	text, err := want.MarshalText()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got ID
	if err := got.UnmarshalText(text); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Compare(want) != 0 {
		t.Fatalf("want %s, got %s", want, got)
	}

	if err := got.UnmarshalText(nil); err != nil || !got.IsNil() {
		t.Fatalf("expected empty text to reset to Nil, got %s, %v", got, err)
	}
	if err := got.UnmarshalText([]byte(New("usr").String())); err == nil {
		t.Fatal("expected error for foreign prefix")
	}
}

func TestValueScan(t *testing.T) {
	want := NewEventID()
	v, err := want.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}
	s, ok := v.(string)
	if !ok || s != want.String() {
		t.Fatalf("expected string value %s, got %#v", want, v)
	}

	for _, src := range []any{s, []byte(s)} {
		var got ID
		if err := got.Scan(src); err != nil {
			t.Fatalf("scan %T: %v", src, err)
		}
		if got.Compare(want) != 0 {
			t.Fatalf("scan %T: want %s, got %s", src, want, got)
		}
	}

	got := want
	if err := got.Scan(nil); err != nil || !got.IsNil() {
		t.Fatalf("expected NULL to scan as Nil, got %s, %v", got, err)
	}
	if err := got.Scan(42); err == nil {
		t.Fatal("expected error scanning an int")
	}
	if err := got.Scan("evt_bogus"); err == nil {
		t.Fatal("expected error scanning a malformed ID")
	}
}
