package extension_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/xraph/agenda"
	"github.com/xraph/agenda/extension"
	"github.com/xraph/agenda/store/memory"
)

func TestExtension_Defaults(t *testing.T) {
	ext := extension.New()
	if ext.Prefix() != "/agenda" {
		t.Fatalf("expected default prefix /agenda, got %q", ext.Prefix())
	}
	if ext.Name() != "agenda" {
		t.Fatalf("unexpected name %q", ext.Name())
	}
	if _, err := ext.Handler(); !errors.Is(err, extension.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}
}

func TestExtension_InitWithoutStore(t *testing.T) {
	ext := extension.New()
	if err := ext.Init(context.Background()); !errors.Is(err, agenda.ErrNoStore) {
		t.Fatalf("expected ErrNoStore, got %v", err)
	}
}

func TestExtension_Handler(t *testing.T) {
	ext := extension.New(
		extension.WithStore(memory.New()),
		extension.WithPrefix("/events-app"),
	)
	if err := ext.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer ext.Stop(context.Background()) //nolint:errcheck // test cleanup

	h, err := ext.Handler()
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	srv := httptest.NewServer(http.StripPrefix(ext.Prefix(), h))
	defer srv.Close()

	body := strings.NewReader(`{"name":"Concert","date":"2024-06-01"}`)
	resp, err := http.Post(srv.URL+"/events-app/events", "application/json", body) //nolint:noctx // test
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	if err := ext.Health(context.Background()); err != nil {
		t.Fatalf("health: %v", err)
	}

	// The page under the prefix must reach the mounted API through its
	// relative script URLs.
	pageURL := srv.URL + "/events-app/"
	resp, err = http.Get(pageURL) //nolint:noctx // test
	if err != nil {
		t.Fatal(err)
	}
	page, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || !strings.Contains(string(page), `fetch("events")`) {
		t.Fatalf("unexpected page (status %d)", resp.StatusCode)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		t.Fatal(err)
	}
	listURL := base.ResolveReference(&url.URL{Path: "events"})
	if listURL.Path != "/events-app/events" {
		t.Fatalf("expected script to target the prefixed API, got %s", listURL.Path)
	}
	resp, err = http.Get(listURL.String()) //nolint:noctx // test
	if err != nil {
		t.Fatal(err)
	}
	var events []map[string]any
	err = json.NewDecoder(resp.Body).Decode(&events)
	resp.Body.Close()
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK || len(events) != 1 {
		t.Fatalf("expected the created event through the prefixed API, got %d (%d events)", resp.StatusCode, len(events))
	}
}

func TestExtension_ConfigOptions(t *testing.T) {
	cfg := extension.DefaultConfig()
	cfg.RateLimit = 5
	cfg.CORSOrigins = []string{"http://localhost:3000"}

	ext := extension.New(
		extension.WithConfig(cfg),
		extension.WithStore(memory.New()),
		extension.WithDisableMigrations(),
	)
	if err := ext.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}

	got := ext.Agenda().Config()
	if got.RateLimit != 5 {
		t.Fatalf("expected rate limit 5, got %d", got.RateLimit)
	}
	if len(got.CORSOrigins) != 1 || got.CORSOrigins[0] != "http://localhost:3000" {
		t.Fatalf("unexpected CORS origins %v", got.CORSOrigins)
	}
}

func TestExtension_StopClosesStore(t *testing.T) {
	s := memory.New()
	ext := extension.New(extension.WithStore(s))
	if err := ext.Init(context.Background()); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := ext.Stop(context.Background()); err != nil {
		t.Fatalf("stop: %v", err)
	}
	if err := s.Ping(context.Background()); !agenda.IsUnavailable(err) {
		t.Fatalf("expected closed store, got %v", err)
	}
}
