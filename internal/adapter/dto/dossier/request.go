package dossier

import (
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

// AttendeeRequest is one meeting attendee
type AttendeeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name,omitempty"`
}

// MeetingRequest describes the upcoming meeting
type MeetingRequest struct {
	Title           string            `json:"title" validate:"required,min=1,max=255"`
	ScheduledAt     *time.Time        `json:"scheduled_at,omitempty"`
	DurationMinutes int               `json:"duration_minutes,omitempty" validate:"omitempty,min=1,max=1440"`
	Attendees       []AttendeeRequest `json:"attendees" validate:"required,min=1,dive"`
}

// InlineSources lets a caller hand the pipeline already-resolved record
// collections instead of fetching from the configured providers. Used by
// batch imports and replays.
type InlineSources struct {
	Calls          []sources.CallRecord    `json:"calls,omitempty"`
	ChatMessages   []sources.ChatMessage   `json:"chat_messages,omitempty"`
	CalendarEvents []sources.CalendarEvent `json:"calendar_events,omitempty"`
}

// GenerateDossierRequest represents the request to generate a dossier
type GenerateDossierRequest struct {
	AccountName    string         `json:"account_name" validate:"required,min=1,max=255"`
	AccountDomain  string         `json:"account_domain" validate:"required,account_domain"`
	DealStage      string         `json:"deal_stage,omitempty"`
	DealValue      string         `json:"deal_value,omitempty"`
	StageStartDate *time.Time     `json:"stage_start_date,omitempty"`
	Mode           string         `json:"mode,omitempty" validate:"omitempty,oneof=full quick"`
	Meeting        MeetingRequest `json:"meeting" validate:"required"`
	Sources        *InlineSources `json:"sources,omitempty"`
}

// ListDossiersRequest represents query parameters for listing dossiers
type ListDossiersRequest struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}
