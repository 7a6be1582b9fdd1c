package enrichment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

func TestLookup_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/person" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("email"); got != "sarah@acme.com" {
			t.Fatalf("email = %q", got)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Fatalf("api key = %q", got)
		}
		json.NewEncoder(w).Encode(sources.EnrichmentRecord{
			Email: "sarah@acme.com",
			Title: "Director of IT",
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-key")
	rec, err := client.Lookup(context.Background(), "sarah@acme.com")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if rec == nil || rec.Title != "Director of IT" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestLookup_NotFoundIsNotAnError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-key")
	rec, err := client.Lookup(context.Background(), "ghost@acme.com")
	if err != nil {
		t.Fatalf("404 must not be an error: %v", err)
	}
	if rec != nil {
		t.Errorf("expected nil record, got %+v", rec)
	}
}
