package backend

import (
	"context"
	"testing"
)

func TestParseKind(t *testing.T) {
	for _, in := range []string{"mongo", "MONGO", " sqlite ", "postgres", "redis", "memory"} {
		if _, err := ParseKind(in); err != nil {
			t.Fatalf("%q: %v", in, err)
		}
	}

	if _, err := ParseKind("cassandra"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
}

func TestDefaultDSN(t *testing.T) {
	if got := DefaultDSN(KindMongo); got != "mongodb://localhost:27017/events" {
		t.Fatalf("unexpected mongo default %q", got)
	}
	for _, k := range []Kind{KindPostgres, KindSQLite, KindRedis} {
		if DefaultDSN(k) == "" {
			t.Fatalf("expected a default DSN for %s", k)
		}
	}
	if DefaultDSN(KindMemory) != "" {
		t.Fatal("memory store takes no DSN")
	}
}

func TestOpenMemory(t *testing.T) {
	s, err := Open(context.Background(), KindMemory, "")
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	if err := s.Ping(context.Background()); err != nil {
		t.Fatal(err)
	}
}
