package entities

import (
	"time"

	"github.com/google/uuid"
)

// GenerationMode indicates how a dossier was produced
type GenerationMode string

const (
	GenerationModeFull  GenerationMode = "full"
	GenerationModeQuick GenerationMode = "quick"
)

// Attendee is a person invited to the meeting, internal or external
type Attendee struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// Meeting describes the upcoming meeting a dossier is prepared for
type Meeting struct {
	Title           string     `json:"title"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Attendees       []Attendee `json:"attendees,omitempty"`
}

// ExecutiveSummary is the top-of-dossier account snapshot
type ExecutiveSummary struct {
	WhyThisMatters       string   `json:"why_this_matters"`
	HealthScore          int      `json:"health_score"`
	MomentumScore        int      `json:"momentum_score"`
	Momentum             Momentum `json:"momentum"`
	EngagementVelocity   string   `json:"engagement_velocity,omitempty"`
	DaysSinceLastContact int      `json:"days_since_last_contact"`
	Insights             []string `json:"insights,omitempty"`
}

// StrategicInsights groups the assembler's derived guidance
type StrategicInsights struct {
	NeedsAttention []string `json:"needs_attention,omitempty"`
	WhatsWorking   []string `json:"whats_working,omitempty"`
	QuestionsToAsk []string `json:"questions_to_ask,omitempty"`
	ThingsToAvoid  []string `json:"things_to_avoid,omitempty"`
}

// GenerationMetadata records how and when a dossier was produced
type GenerationMetadata struct {
	GenerationID    string         `json:"generation_id"`
	GeneratedAt     time.Time      `json:"generated_at"`
	Mode            GenerationMode `json:"mode"`
	PipelineVersion string         `json:"pipeline_version,omitempty"`
	SourceCounts    map[string]int `json:"source_counts,omitempty"`
}

// NewGenerationMetadata stamps metadata for a freshly assembled dossier
func NewGenerationMetadata(mode GenerationMode, now time.Time) GenerationMetadata {
	return GenerationMetadata{
		GenerationID: uuid.NewString(),
		GeneratedAt:  now,
		Mode:         mode,
	}
}

// Dossier is the final composed recommendation object for one meeting.
// It is built once per request and never mutated after assembly; renderers
// consume it read-only.
type Dossier struct {
	Meeting              Meeting            `json:"meeting"`
	Account              Account            `json:"account"`
	ExternalParticipants []*Participant     `json:"external_participants,omitempty"`
	InternalParticipants []Attendee         `json:"internal_participants,omitempty"`
	MissingStakeholders  []string           `json:"missing_stakeholders,omitempty"`
	ExecutiveSummary     ExecutiveSummary   `json:"executive_summary"`
	Goals                []Goal             `json:"goals,omitempty"`
	TalkingPoints        []TalkingPoint     `json:"talking_points,omitempty"`
	StrategicInsights    StrategicInsights  `json:"strategic_insights"`
	CompetitiveIntel     CompetitiveIntel   `json:"competitive_intel"`
	Metadata             GenerationMetadata `json:"metadata"`
}
