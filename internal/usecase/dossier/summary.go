package dossier

import (
	"fmt"
	"sort"
	"strings"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
	"github.com/johnquangdev/account-intel/internal/usecase/analysis"
)

// fallbackQuestions are used when no question-shaped talking point exists
var fallbackQuestions = []string{
	"What has changed on your side since we last spoke?",
	"What would make this project a clear win for you personally?",
}

const genericWhyThisMatters = "Use this meeting to build a clearer picture of the account and agree on a concrete next step."

// executiveSummary builds the "why this meeting matters" sentence by
// conditionally concatenating a stage phrase, a momentum phrase, a value
// phrase, and a staleness phrase; a generic sentence covers the case
// where no trigger holds.
func (s *Service) executiveSummary(account *entities.Account, result *analysis.Result) entities.ExecutiveSummary {
	var phrases []string

	stage := strings.ToLower(account.DealStage)
	switch {
	case containsAny(stage, "negotiation", "proposal", "contract", "legal"):
		phrases = append(phrases, "The deal is in its commercial endgame; every interaction now affects the close.")
	case containsAny(stage, "poc", "pilot", "trial", "evaluation"):
		phrases = append(phrases, "An active evaluation is underway and this meeting shapes its outcome.")
	case containsAny(stage, "discovery", "qualification"):
		phrases = append(phrases, "The opportunity is still being shaped; the quality of discovery here sets the ceiling.")
	}

	switch result.Momentum {
	case entities.MomentumAtRisk:
		phrases = append(phrases, "Engagement has dropped sharply and this meeting is a recovery point.")
	case entities.MomentumStalling:
		phrases = append(phrases, "Momentum is fading; this meeting should restart it.")
	case entities.MomentumAccelerating:
		phrases = append(phrases, "Momentum is on your side; this is the time to push.")
	}

	if account.DealValue != "" {
		phrases = append(phrases, fmt.Sprintf("There is %s on the table.", account.DealValue))
	}

	if result.DaysSinceLastContact >= tuning.NoContactSentinelDays {
		phrases = append(phrases, "There is no recorded contact history; treat this as a first meeting.")
	} else if result.DaysSinceLastContact > tuning.CadenceGapDays {
		phrases = append(phrases, fmt.Sprintf("It has been %d days since the last meaningful contact.", result.DaysSinceLastContact))
	}

	why := genericWhyThisMatters
	if len(phrases) > 0 {
		why = strings.Join(phrases, " ")
	}

	return entities.ExecutiveSummary{
		WhyThisMatters:       why,
		HealthScore:          result.HealthScore,
		MomentumScore:        result.MomentumScore,
		Momentum:             result.Momentum,
		EngagementVelocity:   result.EngagementVelocity,
		DaysSinceLastContact: result.DaysSinceLastContact,
		Insights:             result.Insights,
	}
}

func (s *Service) strategicInsights(result *analysis.Result, participants []*entities.Participant, points []entities.TalkingPoint) entities.StrategicInsights {
	return entities.StrategicInsights{
		NeedsAttention: needsAttention(result.Risks),
		WhatsWorking:   whatsWorking(result, participants),
		QuestionsToAsk: questionsToAsk(points),
		ThingsToAvoid:  thingsToAvoid(result, participants),
	}
}

// needsAttention lists the top risks, highest severity first
func needsAttention(risks []entities.Risk) []string {
	sorted := make([]entities.Risk, len(risks))
	copy(sorted, risks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return entities.SeverityRank(sorted[i].Severity) < entities.SeverityRank(sorted[j].Severity)
	})
	if len(sorted) > 3 {
		sorted = sorted[:3]
	}
	out := make([]string, 0, len(sorted))
	for _, r := range sorted {
		out = append(out, r.Description)
	}
	return out
}

func whatsWorking(result *analysis.Result, participants []*entities.Participant) []string {
	var out []string
	for _, p := range participants {
		if p.Role == entities.RoleChampion {
			out = append(out, fmt.Sprintf("A champion (%s) is actively engaged on this account.", p.DisplayName()))
			break
		}
	}
	if result.Momentum == entities.MomentumAccelerating {
		out = append(out, "Engagement momentum is building across recent interactions.")
	}
	if result.DaysSinceLastContact <= tuning.ContactRecentDays {
		out = append(out, fmt.Sprintf("Contact is fresh: the last touchpoint was %d day(s) ago.", result.DaysSinceLastContact))
	}
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// questionsToAsk collects up to three question-shaped talking points and
// falls back to the two fixed questions when none exist.
func questionsToAsk(points []entities.TalkingPoint) []string {
	var out []string
	for _, tp := range points {
		q := ""
		if strings.HasSuffix(tp.Point, "?") {
			q = tp.Point
		} else if strings.HasSuffix(tp.SuggestedPhrasing, "?") {
			q = tp.SuggestedPhrasing
		}
		if q == "" {
			continue
		}
		out = append(out, q)
		if len(out) == 3 {
			return out
		}
	}
	if len(out) == 0 {
		return append([]string(nil), fallbackQuestions...)
	}
	return out
}

func thingsToAvoid(result *analysis.Result, participants []*entities.Participant) []string {
	var out []string
	for _, p := range participants {
		if p.Role == entities.RoleBlocker {
			out = append(out, fmt.Sprintf("Don't corner %s; address concerns without making them defend past choices.", p.DisplayName()))
			break
		}
	}
	if result.Momentum == entities.MomentumAtRisk {
		out = append(out, "Avoid a feature pitch; lead with listening and diagnosis.")
	}
	for _, r := range result.Risks {
		if r.Type == entities.RiskTypeOverdueOurs {
			out = append(out, "Don't gloss over our own overdue commitments; name them first.")
			break
		}
	}
	return out
}

func containsAny(s string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
