package sources

import "time"

// CallRecord is a raw call/transcript record as returned by a call source.
// ActionItemsText is the free-text action-item block from the call notes;
// the merger parses it into structured action items.
type CallRecord struct {
	ID              string            `json:"id"`
	Title           string            `json:"title"`
	Date            time.Time         `json:"date"`
	DurationMinutes int               `json:"duration_minutes,omitempty"`
	Participants    []CallParticipant `json:"participants,omitempty"`
	Summary         string            `json:"summary,omitempty"`
	ActionItemsText string            `json:"action_items_text,omitempty"`
	TranscriptID    string            `json:"transcript_id,omitempty"`
}

// CallParticipant is a person on a recorded call
type CallParticipant struct {
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
}

// ChatMessage is a raw internal chat mention of the account
type ChatMessage struct {
	ID        string    `json:"id"`
	Channel   string    `json:"channel,omitempty"`
	Author    string    `json:"author,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// CalendarEvent is a raw calendar event that may involve the account
type CalendarEvent struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Start       time.Time          `json:"start"`
	End         time.Time          `json:"end,omitempty"`
	Attendees   []CalendarAttendee `json:"attendees,omitempty"`
	Description string             `json:"description,omitempty"`
}

// CalendarAttendee is a person invited to a calendar event
type CalendarAttendee struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// EnrichmentRecord is optional external person/company research data
type EnrichmentRecord struct {
	Email      string   `json:"email"`
	Name       string   `json:"name,omitempty"`
	Title      string   `json:"title,omitempty"`
	Company    string   `json:"company,omitempty"`
	ProfileURL string   `json:"profile_url,omitempty"`
	Background string   `json:"background,omitempty"`
	Topics     []string `json:"topics,omitempty"`
}
