package jobcontext

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestFetchBegin_AttachesMetadata(t *testing.T) {
	ctx, cancel := FetchBegin(context.Background(), "calls", time.Minute)
	defer cancel()

	id, ok := GetFetchID(ctx)
	if !ok || id == uuid.Nil {
		t.Error("fetch id missing from context")
	}
	if GetSourceName(ctx) != "calls" {
		t.Errorf("source name = %q, want calls", GetSourceName(ctx))
	}
	if _, ok := GetStartTime(ctx); !ok {
		t.Error("start time missing from context")
	}

	md := GetFetchMetadata(ctx)
	if md.SourceName != "calls" || md.FetchID != id {
		t.Errorf("metadata mismatch: %+v", md)
	}
}

func TestGetSourceName_Default(t *testing.T) {
	if got := GetSourceName(context.Background()); got != "unknown" {
		t.Errorf("bare context source name = %q, want unknown", got)
	}
}

func TestFetchRun_PropagatesError(t *testing.T) {
	ctx, cancel := FetchBegin(context.Background(), "chat", time.Minute)
	defer cancel()

	want := errors.New("upstream failure")
	err := FetchRun(ctx, func(context.Context) error { return want })
	if !errors.Is(err, want) {
		t.Errorf("expected the fetch error back, got %v", err)
	}
}

func TestFetchRun_RecoversPanic(t *testing.T) {
	ctx, cancel := FetchBegin(context.Background(), "calendar", time.Minute)
	defer cancel()

	err := FetchRun(ctx, func(context.Context) error { panic("sdk bug") })
	if err == nil {
		t.Fatal("expected an error from the recovered panic")
	}
	if !strings.Contains(err.Error(), "calendar") || !strings.Contains(err.Error(), "sdk bug") {
		t.Errorf("panic error should name the source and cause: %v", err)
	}
}

func TestFetchRun_CancelledContext(t *testing.T) {
	ctx, cancel := FetchBegin(context.Background(), "calls", time.Minute)
	cancel()

	called := false
	err := FetchRun(ctx, func(context.Context) error { called = true; return nil })
	if err == nil {
		t.Fatal("expected an error for a cancelled context")
	}
	if called {
		t.Error("fetch must not run after cancellation")
	}
}

func TestIsRetryableError(t *testing.T) {
	retryable := []error{
		errors.New("context deadline exceeded"),
		errors.New("dial tcp: connection refused"),
		errors.New("HTTP 429 Too Many Requests"),
		errors.New("provider rate limit hit"),
		errors.New("read tcp: i/o timeout"),
	}
	for _, err := range retryable {
		if !IsRetryableError(err) {
			t.Errorf("%v should be retryable", err)
		}
	}

	notRetryable := []error{
		nil,
		errors.New("401 unauthorized"),
		errors.New("malformed response body"),
	}
	for _, err := range notRetryable {
		if IsRetryableError(err) {
			t.Errorf("%v should not be retryable", err)
		}
	}
}
