package chatexport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

func TestFetchMessages_Success(t *testing.T) {
	since := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/messages/search" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "Acme Corp" {
			t.Fatalf("query = %q", got)
		}
		if got := r.URL.Query().Get("since"); got != "2025-06-01T00:00:00Z" {
			t.Fatalf("since = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Fatalf("authorization = %q", got)
		}
		json.NewEncoder(w).Encode([]sources.ChatMessage{
			{ID: "msg-1", Channel: "#sales", Timestamp: since.AddDate(0, 0, 3), Text: "Acme call recap"},
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-token")
	messages, err := client.FetchMessages(context.Background(), "Acme Corp", since)
	if err != nil {
		t.Fatalf("FetchMessages failed: %v", err)
	}
	if len(messages) != 1 || messages[0].ID != "msg-1" {
		t.Errorf("unexpected messages %+v", messages)
	}
}

func TestFetchMessages_RetriesServerErrors(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode([]sources.ChatMessage{})
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "test-token")
	if _, err := client.FetchMessages(context.Background(), "Acme", time.Now()); err != nil {
		t.Fatalf("expected retry to recover: %v", err)
	}
	if calls < 2 {
		t.Errorf("expected a retry after 503, got %d calls", calls)
	}
}

func TestFetchMessages_ClientErrorIsPermanent(t *testing.T) {
	calls := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, "bad-token")
	if _, err := client.FetchMessages(context.Background(), "Acme", time.Now()); err == nil {
		t.Fatal("expected an error for 401")
	}
	if calls != 1 {
		t.Errorf("4xx must not be retried, got %d calls", calls)
	}
}
