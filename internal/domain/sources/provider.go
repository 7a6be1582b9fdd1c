package sources

import (
	"context"
	"time"
)

// The pipeline core never fetches data itself; it is handed already-resolved,
// possibly-empty collections. These interfaces are the narrow contracts the
// collector layer uses to resolve them. An adapter failure is surfaced to the
// caller, which treats it as an empty collection, never as a fatal error.

// CallSource supplies call/transcript records for an account
type CallSource interface {
	FetchCalls(ctx context.Context, accountDomain string, since time.Time) ([]CallRecord, error)
}

// ChatSource supplies internal chat mentions of an account
type ChatSource interface {
	FetchMessages(ctx context.Context, accountName string, since time.Time) ([]ChatMessage, error)
}

// CalendarSource supplies calendar events in a window
type CalendarSource interface {
	FetchEvents(ctx context.Context, since, until time.Time) ([]CalendarEvent, error)
}

// EnrichmentSource supplies optional external person research
type EnrichmentSource interface {
	Lookup(ctx context.Context, email string) (*EnrichmentRecord, error)
}

// Uploader stores a rendered dossier artifact; implementations live in the
// infrastructure layer and must treat the dossier as read-only.
type Uploader interface {
	Upload(ctx context.Context, name string, payload []byte) (string, error)
}
