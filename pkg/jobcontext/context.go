package jobcontext

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type KeyContext string

var (
	keyFetchID    KeyContext = "fetch_id"
	keySourceName KeyContext = "source_name"
	keyStartTime  KeyContext = "fetch_start_time"
)

// FetchMetadata holds metadata for a single source fetch
type FetchMetadata struct {
	FetchID    uuid.UUID
	SourceName string
	StartTime  time.Time
}

// FetchBegin initializes a fetch context with metadata and a per-source
// timeout. Every outbound source call runs under one of these so a slow
// provider cannot hold the whole collection round open.
func FetchBegin(parentCtx context.Context, sourceName string, timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithTimeout(parentCtx, timeout)

	ctx = context.WithValue(ctx, keyFetchID, uuid.New())
	ctx = context.WithValue(ctx, keySourceName, sourceName)
	ctx = context.WithValue(ctx, keyStartTime, time.Now())

	return ctx, cancel
}

// FetchRun executes the fetch function with panic recovery. A panicking
// provider SDK is reported as an error, never as a crashed round.
func FetchRun(ctx context.Context, fetchFunc func(context.Context) error) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic recovered in %s fetch: %v", GetSourceName(ctx), p)
		}
	}()

	if ctx.Err() != nil {
		return fmt.Errorf("context cancelled before fetch: %w", ctx.Err())
	}

	return fetchFunc(ctx)
}

// GetFetchID extracts the fetch ID from context
func GetFetchID(ctx context.Context) (uuid.UUID, bool) {
	fetchID, ok := ctx.Value(keyFetchID).(uuid.UUID)
	return fetchID, ok
}

// GetSourceName extracts the source name from context
func GetSourceName(ctx context.Context) string {
	name, ok := ctx.Value(keySourceName).(string)
	if !ok {
		return "unknown"
	}
	return name
}

// GetStartTime extracts the fetch start time from context
func GetStartTime(ctx context.Context) (time.Time, bool) {
	startTime, ok := ctx.Value(keyStartTime).(time.Time)
	return startTime, ok
}

// GetFetchMetadata extracts all fetch metadata from context
func GetFetchMetadata(ctx context.Context) *FetchMetadata {
	fetchID, _ := GetFetchID(ctx)
	startTime, _ := GetStartTime(ctx)

	return &FetchMetadata{
		FetchID:    fetchID,
		SourceName: GetSourceName(ctx),
		StartTime:  startTime,
	}
}

// IsRetryableError checks if a fetch error should trigger a retry.
// Retryable errors include: network errors, timeouts, rate limits.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	errStr := strings.ToLower(err.Error())

	// Context errors (timeout, cancelled)
	if strings.Contains(errStr, "context deadline exceeded") ||
		strings.Contains(errStr, "context canceled") {
		return true
	}

	// Network errors
	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "network unreachable") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "i/o timeout") {
		return true
	}

	// Provider rate limits
	if strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429") {
		return true
	}

	return false
}
