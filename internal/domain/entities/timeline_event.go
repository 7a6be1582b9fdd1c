package entities

import (
	"strings"
	"time"
)

// EventKind represents the kind of a timeline event
type EventKind string

const (
	EventKindCall        EventKind = "call"
	EventKindMeeting     EventKind = "meeting"
	EventKindNote        EventKind = "note"
	EventKindActionItem  EventKind = "action_item"
	EventKindStageChange EventKind = "stage_change"
)

// TimelineEvent represents a single engagement event on an account timeline.
// Events are immutable once created by the merger; the timeline as a whole is
// kept sorted ascending by date.
type TimelineEvent struct {
	ID              string    `json:"id"`
	Date            time.Time `json:"date"`
	Kind            EventKind `json:"kind"`
	Title           string    `json:"title"`
	Description     string    `json:"description,omitempty"`
	Participants    []string  `json:"participants,omitempty"` // participant emails
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	TranscriptID    string    `json:"transcript_id,omitempty"`
}

// SearchText returns the lowercased text scanned by keyword extractors.
func (e *TimelineEvent) SearchText() string {
	if e.Description == "" {
		return strings.ToLower(e.Title)
	}
	return strings.ToLower(e.Title + " " + e.Description)
}
