package redis_test

import (
	"context"
	"os"
	"testing"

	"github.com/xraph/agenda/store"
	"github.com/xraph/agenda/store/backend"
	"github.com/xraph/agenda/store/storetest"
)

func TestConformance(t *testing.T) {
	dsn := os.Getenv("AGENDA_TEST_REDIS_DSN")
	if dsn == "" {
		t.Skip("AGENDA_TEST_REDIS_DSN not set")
	}

	storetest.Run(t, func(t *testing.T) store.Store {
		s, err := backend.Open(context.Background(), backend.KindRedis, dsn)
		if err != nil {
			t.Fatalf("open: %v", err)
		}
		if err := s.Migrate(context.Background()); err != nil {
			t.Fatalf("migrate: %v", err)
		}
		return s
	})
}
