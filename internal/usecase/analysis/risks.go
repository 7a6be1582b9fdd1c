package analysis

import (
	"fmt"
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
	"github.com/johnquangdev/account-intel/internal/usecase/merge"
)

// riskContext carries the inputs the rule table evaluates against
type riskContext struct {
	bundle        *merge.Bundle
	daysSince     int
	daysInStage   int
	stageKnown    bool
	overdueOurs   int
	overdueTheirs int
	now           time.Time
}

// riskRules is the ordered rule table. Every rule is independent, every
// rule is evaluated, and any number of them may fire together.
var riskRules = []func(*riskContext) *entities.Risk{
	staleCommunicationRule,
	stuckInStageRule,
	limitedMultithreadingRule,
	overdueOursRule,
	overdueTheirsRule,
	noChampionRule,
	noEconomicBuyerRule,
}

func (a *Analyzer) evaluateRisks(b *merge.Bundle, res *Result, now time.Time) []entities.Risk {
	ours, theirs := overdueCounts(b)
	ctx := &riskContext{
		bundle:        b,
		daysSince:     res.DaysSinceLastContact,
		daysInStage:   res.DaysInStage,
		stageKnown:    res.DaysInStage > 0,
		overdueOurs:   ours,
		overdueTheirs: theirs,
		now:           now,
	}

	var risks []entities.Risk
	for _, rule := range riskRules {
		if r := rule(ctx); r != nil {
			risks = append(risks, *r)
		}
	}
	return risks
}

func staleCommunicationRule(ctx *riskContext) *entities.Risk {
	if ctx.daysSince <= tuning.StaleContactMediumDays {
		return nil
	}
	severity := entities.RiskSeverityMedium
	if ctx.daysSince > tuning.StaleContactHighDays {
		severity = entities.RiskSeverityHigh
	}
	return &entities.Risk{
		ID:          entities.RiskTypeStaleCommunication,
		Type:        entities.RiskTypeStaleCommunication,
		Severity:    severity,
		Description: fmt.Sprintf("Stale communication: no contact in %d days", ctx.daysSince),
		DetectedAt:  ctx.now,
		Mitigation:  "Re-engage with a short, specific outreach that references the last conversation",
	}
}

func stuckInStageRule(ctx *riskContext) *entities.Risk {
	if !ctx.stageKnown || ctx.daysInStage <= tuning.StuckInStageMediumDays {
		return nil
	}
	severity := entities.RiskSeverityMedium
	if ctx.daysInStage > tuning.StuckInStageHighDays {
		severity = entities.RiskSeverityHigh
	}
	return &entities.Risk{
		ID:          entities.RiskTypeStuckInStage,
		Type:        entities.RiskTypeStuckInStage,
		Severity:    severity,
		Description: fmt.Sprintf("Deal has been in the current stage for %d days", ctx.daysInStage),
		DetectedAt:  ctx.now,
		Mitigation:  "Agree on concrete exit criteria for this stage and a date to review them",
	}
}

func limitedMultithreadingRule(ctx *riskContext) *entities.Risk {
	count := len(ctx.bundle.Participants)
	if count >= tuning.MultithreadingMinimum {
		return nil
	}
	return &entities.Risk{
		ID:          entities.RiskTypeLimitedMultithreading,
		Type:        entities.RiskTypeLimitedMultithreading,
		Severity:    entities.RiskSeverityMedium,
		Description: fmt.Sprintf("Limited stakeholder engagement: %d known contacts", count),
		DetectedAt:  ctx.now,
		Mitigation:  "Ask your contacts for introductions to adjacent stakeholders",
	}
}

func overdueOursRule(ctx *riskContext) *entities.Risk {
	if ctx.overdueOurs == 0 {
		return nil
	}
	severity := entities.RiskSeverityMedium
	if ctx.overdueOurs > tuning.OverdueHighCount {
		severity = entities.RiskSeverityHigh
	}
	return &entities.Risk{
		ID:          entities.RiskTypeOverdueOurs,
		Type:        entities.RiskTypeOverdueOurs,
		Severity:    severity,
		Description: fmt.Sprintf("We have %d overdue commitments to the customer", ctx.overdueOurs),
		DetectedAt:  ctx.now,
		Mitigation:  "Close out or renegotiate our overdue commitments before the meeting",
	}
}

func overdueTheirsRule(ctx *riskContext) *entities.Risk {
	if ctx.overdueTheirs == 0 {
		return nil
	}
	severity := entities.RiskSeverityMedium
	if ctx.overdueTheirs > tuning.OverdueHighCount {
		severity = entities.RiskSeverityHigh
	}
	return &entities.Risk{
		ID:          entities.RiskTypeOverdueTheirs,
		Type:        entities.RiskTypeOverdueTheirs,
		Severity:    severity,
		Description: fmt.Sprintf("The customer has %d overdue commitments", ctx.overdueTheirs),
		DetectedAt:  ctx.now,
		Mitigation:  "Gently surface the customer's stalled commitments and offer to help unblock them",
	}
}

func noChampionRule(ctx *riskContext) *entities.Risk {
	if len(ctx.bundle.Participants) < 1 || hasRole(ctx.bundle, entities.RoleChampion) {
		return nil
	}
	return &entities.Risk{
		ID:          entities.RiskTypeNoChampion,
		Type:        entities.RiskTypeNoChampion,
		Severity:    entities.RiskSeverityMedium,
		Description: "No champion identified among known contacts",
		DetectedAt:  ctx.now,
		Mitigation:  "Identify who internally benefits most from the deal and invest in them",
	}
}

func noEconomicBuyerRule(ctx *riskContext) *entities.Risk {
	if len(ctx.bundle.Participants) < tuning.EconomicBuyerCheckMin || hasRole(ctx.bundle, entities.RoleEconomicBuyer) {
		return nil
	}
	return &entities.Risk{
		ID:          entities.RiskTypeNoEconomicBuyer,
		Type:        entities.RiskTypeNoEconomicBuyer,
		Severity:    entities.RiskSeverityHigh,
		Description: "No economic buyer engaged despite a multithreaded account",
		DetectedAt:  ctx.now,
		Mitigation:  "Request an executive briefing to bring the budget holder into the conversation",
	}
}

func hasRole(b *merge.Bundle, role entities.ParticipantRole) bool {
	for _, p := range b.Participants {
		if p.Role == role {
			return true
		}
	}
	return false
}
