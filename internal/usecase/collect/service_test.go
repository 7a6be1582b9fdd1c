package collect

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

type fakeCallSource struct {
	records []sources.CallRecord
	err     error
	since   time.Time
}

func (f *fakeCallSource) FetchCalls(_ context.Context, _ string, since time.Time) ([]sources.CallRecord, error) {
	f.since = since
	return f.records, f.err
}

type fakeChatSource struct {
	messages []sources.ChatMessage
	err      error
}

func (f *fakeChatSource) FetchMessages(context.Context, string, time.Time) ([]sources.ChatMessage, error) {
	return f.messages, f.err
}

type fakeCalendarSource struct {
	events []sources.CalendarEvent
	err    error
}

func (f *fakeCalendarSource) FetchEvents(context.Context, time.Time, time.Time) ([]sources.CalendarEvent, error) {
	return f.events, f.err
}

type fakeEnrichmentSource struct {
	records map[string]*sources.EnrichmentRecord
	err     error
}

func (f *fakeEnrichmentSource) Lookup(_ context.Context, email string) (*sources.EnrichmentRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.records[email], nil
}

type recordingObserver struct {
	mu      sync.Mutex
	sources []string
	errs    int
}

func (o *recordingObserver) ObserveFetch(source string, _ time.Duration, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sources = append(o.sources, source)
	if err != nil {
		o.errs++
	}
}

func TestCollect_AllSourcesSucceed(t *testing.T) {
	calls := &fakeCallSource{records: []sources.CallRecord{{ID: "call-1"}}}
	chats := &fakeChatSource{messages: []sources.ChatMessage{{ID: "msg-1"}, {ID: "msg-2"}}}
	cal := &fakeCalendarSource{events: []sources.CalendarEvent{{ID: "ev-1"}}}
	obs := &recordingObserver{}

	c := NewCollector(calls, chats, cal, nil, obs, nil)
	res := c.Collect(context.Background(), "Acme Corp", "acme.com", Options{})

	if len(res.Calls) != 1 || len(res.Chats) != 2 || len(res.Events) != 1 {
		t.Errorf("collections not populated: %+v", res)
	}
	if len(res.Failures) != 0 {
		t.Errorf("unexpected failures %v", res.Failures)
	}

	obs.mu.Lock()
	observed := append([]string(nil), obs.sources...)
	obs.mu.Unlock()
	sort.Strings(observed)
	want := []string{"calendar", "calls", "chat"}
	if len(observed) != 3 {
		t.Fatalf("observer saw %v, want %v", observed, want)
	}
	for i := range want {
		if observed[i] != want[i] {
			t.Fatalf("observer saw %v, want %v", observed, want)
		}
	}
}

func TestCollect_FailureDegradesToEmpty(t *testing.T) {
	calls := &fakeCallSource{err: errors.New("upstream 503")}
	chats := &fakeChatSource{messages: []sources.ChatMessage{{ID: "msg-1"}}}
	obs := &recordingObserver{}

	c := NewCollector(calls, chats, nil, nil, obs, nil)
	res := c.Collect(context.Background(), "Acme Corp", "acme.com", Options{})

	if len(res.Calls) != 0 {
		t.Errorf("failed source should stay empty, got %d records", len(res.Calls))
	}
	if len(res.Chats) != 1 {
		t.Errorf("healthy source should still populate, got %d", len(res.Chats))
	}
	if len(res.Failures) != 1 || res.Failures[0] != "calls" {
		t.Errorf("expected calls listed as failed, got %v", res.Failures)
	}
	if obs.errs != 1 {
		t.Errorf("observer should see 1 error, got %d", obs.errs)
	}
}

func TestCollect_NilSourcesSkipped(t *testing.T) {
	c := NewCollector(nil, nil, nil, nil, nil, nil)
	res := c.Collect(context.Background(), "Acme Corp", "acme.com", Options{})

	if len(res.Calls) != 0 || len(res.Chats) != 0 || len(res.Events) != 0 || len(res.Failures) != 0 {
		t.Errorf("nil sources should produce a clean empty result, got %+v", res)
	}
}

func TestCollect_PanickingSourceIsContained(t *testing.T) {
	calls := &panickingCallSource{}
	c := NewCollector(calls, nil, nil, nil, nil, nil)

	res := c.Collect(context.Background(), "Acme Corp", "acme.com", Options{})

	if len(res.Failures) != 1 || res.Failures[0] != "calls" {
		t.Errorf("panic should register as a fetch failure, got %v", res.Failures)
	}
}

type panickingCallSource struct{}

func (panickingCallSource) FetchCalls(context.Context, string, time.Time) ([]sources.CallRecord, error) {
	panic("provider bug")
}

func TestCollect_LookbackWindow(t *testing.T) {
	calls := &fakeCallSource{}
	c := NewCollector(calls, nil, nil, nil, nil, nil)
	fixed := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	c.Collect(context.Background(), "Acme Corp", "acme.com", Options{LookbackDays: 30})

	want := fixed.AddDate(0, 0, -30)
	if !calls.since.Equal(want) {
		t.Errorf("since = %s, want %s", calls.since, want)
	}
}

func TestEnrich(t *testing.T) {
	enrich := &fakeEnrichmentSource{records: map[string]*sources.EnrichmentRecord{
		"sarah@acme.com": {Email: "sarah@acme.com", Title: "Director of IT"},
	}}
	c := NewCollector(nil, nil, nil, enrich, nil, nil)

	out := c.Enrich(context.Background(), []string{"sarah@acme.com", "ghost@acme.com"}, time.Second)

	if len(out) != 1 {
		t.Fatalf("expected 1 enrichment, got %d", len(out))
	}
	if out["sarah@acme.com"].Title != "Director of IT" {
		t.Errorf("unexpected record %+v", out["sarah@acme.com"])
	}
}

func TestEnrich_ErrorsSkipped(t *testing.T) {
	enrich := &fakeEnrichmentSource{err: errors.New("rate limited")}
	c := NewCollector(nil, nil, nil, enrich, nil, nil)

	out := c.Enrich(context.Background(), []string{"sarah@acme.com"}, time.Second)
	if len(out) != 0 {
		t.Errorf("provider errors should leave the email out, got %v", out)
	}
}

func TestEnrich_NoSource(t *testing.T) {
	c := NewCollector(nil, nil, nil, nil, nil, nil)
	out := c.Enrich(context.Background(), []string{"sarah@acme.com"}, time.Second)
	if len(out) != 0 {
		t.Errorf("missing enrichment source should return empty map, got %v", out)
	}
}
