package ui

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestPageRendersForm(t *testing.T) {
	var buf bytes.Buffer
	if err := Page(Title, Names, Locations).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	html := buf.String()
	for _, want := range []string{
		"<h1>Event Management System</h1>",
		`<option value="Birthday Party">Birthday Party</option>`,
		`<option value="Tokyo">Tokyo</option>`,
		`type="date"`,
		"Submit Event",
		"Fetch Events",
		`id="event-list"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected page to contain %q", want)
		}
	}
}

func TestOptionsEscape(t *testing.T) {
	var buf bytes.Buffer
	if err := Options([]string{`<script>"x"</script>`}).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "<script>") {
		t.Fatalf("expected escaped option, got %s", buf.String())
	}
}

func TestHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("expected text/html, got %q", ct)
	}
}

func TestScriptUsesRelativeURLs(t *testing.T) {
	var buf bytes.Buffer
	if err := Page(Title, Names, Locations).Render(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}

	html := buf.String()
	if strings.Contains(html, `"/events`) {
		t.Fatal("expected no root-absolute API URLs in the page script")
	}
	if !strings.Contains(html, `fetch("events")`) {
		t.Fatal("expected the list call to be relative to the page")
	}
}
