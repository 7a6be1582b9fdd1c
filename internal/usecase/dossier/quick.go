package dossier

import (
	"strings"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
)

// Quick builds a minimal templated dossier directly from the meeting and
// account identity, bypassing the pipeline entirely. It is the degraded-
// mode fallback for when no source data exists or the full pipeline fails.
func (s *Service) Quick(meeting entities.Meeting, accountName, accountDomain string) *entities.Dossier {
	account := entities.Account{
		Name:   accountName,
		Domain: strings.ToLower(accountDomain),
	}

	var external []*entities.Participant
	var internal []entities.Attendee
	for _, at := range meeting.Attendees {
		email := entities.NormalizeEmail(at.Email)
		if !strings.Contains(email, "@") {
			continue
		}
		if s.merger.IsInternal(email) {
			internal = append(internal, at)
			continue
		}
		p := entities.NewParticipant(email)
		p.Name = at.Name
		external = append(external, p)
	}

	goals := []entities.Goal{{
		ID:        "quick-context",
		Priority:  2,
		Title:     "Establish context and map the account",
		Rationale: "No engagement history is available; use the meeting to build the picture",
	}}

	points := []entities.TalkingPoint{
		{
			ID:       "quick-opener",
			Category: entities.CategoryOpener,
			Point:    "Open by asking what prompted this meeting from their side",
			Priority: 1,
		},
		{
			ID:       "quick-discovery",
			Category: entities.CategoryGoalSupport,
			Point:    "Ask what a successful outcome would look like for them",
			Priority: 2,
		},
		{
			ID:       "quick-next-step",
			Category: entities.CategoryNextSteps,
			Point:    "Propose a specific next step with a date before the meeting ends",
			Priority: 2,
		},
	}

	md := entities.NewGenerationMetadata(entities.GenerationModeQuick, s.now())
	md.PipelineVersion = PipelineVersion

	return &entities.Dossier{
		Meeting:              meeting,
		Account:              account,
		ExternalParticipants: external,
		InternalParticipants: internal,
		ExecutiveSummary: entities.ExecutiveSummary{
			WhyThisMatters:       genericWhyThisMatters,
			DaysSinceLastContact: tuning.NoContactSentinelDays,
		},
		Goals:         goals,
		TalkingPoints: points,
		StrategicInsights: entities.StrategicInsights{
			QuestionsToAsk: append([]string(nil), fallbackQuestions...),
		},
		CompetitiveIntel: entities.CompetitiveIntel{
			LandscapeSummary: "No competitor mentions detected in recent interactions.",
		},
		Metadata: md,
	}
}
