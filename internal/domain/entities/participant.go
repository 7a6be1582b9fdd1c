package entities

import (
	"strings"
	"time"
)

// ParticipantRole represents the classified buying role of an external contact
type ParticipantRole string

const (
	RoleEconomicBuyer      ParticipantRole = "economic_buyer"
	RoleDecisionMaker      ParticipantRole = "decision_maker"
	RoleTechnicalEvaluator ParticipantRole = "technical_evaluator"
	RoleChampion           ParticipantRole = "champion"
	RoleInfluencer         ParticipantRole = "influencer"
	RoleBlocker            ParticipantRole = "blocker"
	RoleUnknown            ParticipantRole = "unknown"
)

// InfluenceLevel represents how much sway a contact holds over the deal
type InfluenceLevel string

const (
	InfluenceHigh    InfluenceLevel = "high"
	InfluenceMedium  InfluenceLevel = "medium"
	InfluenceLow     InfluenceLevel = "low"
	InfluenceUnknown InfluenceLevel = "unknown"
)

// Interaction is one recorded touchpoint between us and a participant
type Interaction struct {
	Date    time.Time `json:"date"`
	Kind    EventKind `json:"kind"`
	Title   string    `json:"title"`
	Summary string    `json:"summary,omitempty"`
}

// Participant represents an external contact on the account, keyed by
// lowercase email in the registry. Internal-domain addresses never enter
// the registry. Interactions are kept newest-first after merge post-processing.
type Participant struct {
	Email            string          `json:"email"`
	Name             string          `json:"name,omitempty"`
	Company          string          `json:"company,omitempty"`
	Title            string          `json:"title,omitempty"`
	Role             ParticipantRole `json:"role"`
	Influence        InfluenceLevel  `json:"influence"`
	ProfileURL       string          `json:"profile_url,omitempty"`
	Background       string          `json:"background,omitempty"`
	CaresAbout       []string        `json:"cares_about,omitempty"`
	Interactions     []Interaction   `json:"interactions,omitempty"`
	LastInteraction  time.Time       `json:"last_interaction,omitempty"`
	InteractionCount int             `json:"interaction_count"`
	Confidence       float64         `json:"confidence"`
}

// NewParticipant creates a registry entry for an external contact
func NewParticipant(email string) *Participant {
	return &Participant{
		Email:     NormalizeEmail(email),
		Role:      RoleUnknown,
		Influence: InfluenceUnknown,
	}
}

// RecordInteraction appends a touchpoint and bumps the interaction count
func (p *Participant) RecordInteraction(in Interaction) {
	p.Interactions = append(p.Interactions, in)
	p.InteractionCount++
}

// DisplayName returns the best available human-readable name
func (p *Participant) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	return p.Email
}

// InteractionText concatenates interaction titles and summaries, lowercased,
// for keyword-based role scoring.
func (p *Participant) InteractionText() string {
	var b strings.Builder
	for _, in := range p.Interactions {
		b.WriteString(in.Title)
		b.WriteString(" ")
		if in.Summary != "" {
			b.WriteString(in.Summary)
			b.WriteString(" ")
		}
	}
	return strings.ToLower(b.String())
}

// NormalizeEmail lowercases and trims an email address for use as a registry key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// EmailDomain returns the domain part of an email address, lowercased,
// or "" if the address has no domain.
func EmailDomain(email string) string {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return ""
	}
	return strings.ToLower(email[at+1:])
}
