package talking

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
	"github.com/johnquangdev/account-intel/internal/usecase/analysis"
)

// Input is everything the talking-point generator considers
type Input struct {
	Account      *entities.Account
	Analysis     *analysis.Result
	Participants []*entities.Participant
	ActionItems  []entities.ActionItem
	Goals        []entities.Goal
}

// Generator produces categorized, prioritized conversation points. Each
// category is an independent deterministic sub-rule; results are
// concatenated in fixed category order and then stably sorted ascending
// by priority.
type Generator struct {
	logger *zap.Logger
}

// NewGenerator creates a Generator
func NewGenerator(logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{logger: logger}
}

// Generate runs the seven category sub-rules and sorts the combined list
func (g *Generator) Generate(in Input) []entities.TalkingPoint {
	var out []entities.TalkingPoint
	out = append(out, g.openers(in)...)
	out = append(out, g.goalSupport(in)...)
	out = append(out, g.riskMitigation(in)...)
	out = append(out, g.stakeholderSpecific(in)...)
	out = append(out, g.actionFollowUp(in)...)
	out = append(out, g.valueProposition(in)...)
	out = append(out, g.nextSteps(in)...)

	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })

	g.logger.Debug("talking points generated",
		zap.String("account", in.Account.Name),
		zap.Int("count", len(out)),
	)
	return out
}

// momentumReframes are the opener reframing lines per momentum category;
// stable momentum needs no reframe.
var momentumReframes = map[entities.Momentum]string{
	entities.MomentumAccelerating: "Things have been moving quickly on our side too; let's use that momentum today.",
	entities.MomentumStalling:     "It has been a little while since we made real progress; I'd like to change that today.",
	entities.MomentumAtRisk:       "I want to be direct: we've lost some momentum, and today I'd like to understand why.",
}

func (g *Generator) openers(in Input) []entities.TalkingPoint {
	var out []entities.TalkingPoint

	if latest := in.Account.LatestEvent(); latest != nil && in.Analysis.DaysSinceLastContact <= tuning.OpenerRecentContactDays {
		out = append(out, entities.TalkingPoint{
			ID:       "opener-last-touch",
			Category: entities.CategoryOpener,
			Point:    fmt.Sprintf("Open by referencing %q from %s", latest.Title, latest.Date.Format("Jan 2")),
			Context:  "Recency signals you were paying attention",
			Priority: 1,
		})
	}
	if reframe, ok := momentumReframes[in.Analysis.Momentum]; ok {
		out = append(out, entities.TalkingPoint{
			ID:                "opener-momentum",
			Category:          entities.CategoryOpener,
			Point:             "Set the tone for where the deal actually is",
			SuggestedPhrasing: reframe,
			Priority:          2,
		})
	}
	if stageMatches(in.Account.DealStage, "poc", "pilot") {
		out = append(out, entities.TalkingPoint{
			ID:       "opener-poc-checkin",
			Category: entities.CategoryOpener,
			Point:    "Check in on how the evaluation is going before anything else",
			Context:  "POC-stage meetings should start with the evaluation, not the roadmap",
			Priority: 2,
		})
	}
	return out
}

// goalSupport emits a point for each priority-1 goal among the top three,
// plus an approach point when the goal carries a suggested approach.
func (g *Generator) goalSupport(in Input) []entities.TalkingPoint {
	var out []entities.TalkingPoint
	top := in.Goals
	if len(top) > tuning.GoalSupportTopN {
		top = top[:tuning.GoalSupportTopN]
	}
	for i, goal := range top {
		if goal.Priority == 1 {
			out = append(out, entities.TalkingPoint{
				ID:            fmt.Sprintf("goal-support-%d", i),
				Category:      entities.CategoryGoalSupport,
				Point:         goal.Title,
				Context:       goal.Rationale,
				RelatedGoalID: goal.ID,
				Priority:      1,
			})
		}
		if goal.SuggestedApproach != "" {
			priority := 3
			if goal.Priority <= 2 {
				priority = 2
			}
			out = append(out, entities.TalkingPoint{
				ID:            fmt.Sprintf("goal-approach-%d", i),
				Category:      entities.CategoryGoalSupport,
				Point:         goal.SuggestedApproach,
				Context:       "Approach for: " + goal.Title,
				RelatedGoalID: goal.ID,
				Priority:      priority,
			})
		}
	}
	return out
}

// riskPhrasings is the fixed risk-type to canned-phrasing table
var riskPhrasings = map[string]string{
	entities.RiskTypeStaleCommunication:    "I know it's been a while since we last spoke; I wanted to make sure we're still aligned on what matters to you.",
	entities.RiskTypeStuckInStage:          "We've been at this stage for a while now; what would need to be true for us to move forward?",
	entities.RiskTypeLimitedMultithreading: "Who else on your side should be part of these conversations?",
	entities.RiskTypeOverdueOurs:           "Before we go further: here's where we stand on what we owed you.",
	entities.RiskTypeOverdueTheirs:         "How are things going with the items on your side? Anything we can help unblock?",
	entities.RiskTypeNoChampion:            "Who on your team is most excited about this? I'd love to work with them more closely.",
	entities.RiskTypeNoEconomicBuyer:       "Who ultimately signs off on initiatives like this one?",
}

func (g *Generator) riskMitigation(in Input) []entities.TalkingPoint {
	var out []entities.TalkingPoint
	for _, r := range in.Analysis.Risks {
		var priority int
		switch r.Severity {
		case entities.RiskSeverityHigh:
			priority = 1
		case entities.RiskSeverityMedium:
			priority = 2
		default:
			continue
		}
		out = append(out, entities.TalkingPoint{
			ID:                "risk-" + r.Type,
			Category:          entities.CategoryRiskMitigation,
			Point:             r.Description,
			Context:           r.Mitigation,
			SuggestedPhrasing: riskPhrasings[r.Type],
			Priority:          priority,
		})
	}
	return out
}

func (g *Generator) stakeholderSpecific(in Input) []entities.TalkingPoint {
	var out []entities.TalkingPoint
	for _, p := range in.Participants {
		switch p.Role {
		case entities.RoleChampion:
			out = append(out, stakeholderPoint(p, fmt.Sprintf("Give %s something concrete to share internally", p.DisplayName()), 2))
		case entities.RoleBlocker:
			out = append(out, stakeholderPoint(p, fmt.Sprintf("Address %s's concerns head-on rather than around them", p.DisplayName()), 1))
		case entities.RoleEconomicBuyer:
			out = append(out, stakeholderPoint(p, fmt.Sprintf("Frame outcomes in business terms for %s", p.DisplayName()), 1))
		case entities.RoleTechnicalEvaluator:
			out = append(out, stakeholderPoint(p, fmt.Sprintf("Have integration and security answers ready for %s", p.DisplayName()), 2))
		}
		if len(p.CaresAbout) > 0 {
			topics := p.CaresAbout
			if len(topics) > tuning.CaresAboutTopN {
				topics = topics[:tuning.CaresAboutTopN]
			}
			out = append(out, entities.TalkingPoint{
				ID:                 "stakeholder-topics-" + p.Email,
				Category:           entities.CategoryStakeholderSpecific,
				Point:              fmt.Sprintf("%s cares about: %s", p.DisplayName(), strings.Join(topics, ", ")),
				RelatedParticipant: p.Email,
				Priority:           2,
			})
		}
	}
	return out
}

func stakeholderPoint(p *entities.Participant, point string, priority int) entities.TalkingPoint {
	return entities.TalkingPoint{
		ID:                 "stakeholder-" + string(p.Role) + "-" + p.Email,
		Category:           entities.CategoryStakeholderSpecific,
		Point:              point,
		RelatedParticipant: p.Email,
		Priority:           priority,
	}
}

// actionFollowUp leads with the first overdue customer item, then the
// first overdue item of ours, and otherwise mentions pending customer
// items by count only.
func (g *Generator) actionFollowUp(in Input) []entities.TalkingPoint {
	var firstOverdueTheirs, firstOverdueOurs *entities.ActionItem
	pendingTheirs := 0
	for i := range in.ActionItems {
		item := &in.ActionItems[i]
		switch {
		case item.Owner == entities.OwnerTheirs && item.Status == entities.ActionStatusOverdue:
			if firstOverdueTheirs == nil {
				firstOverdueTheirs = item
			}
		case item.Owner == entities.OwnerOurs && item.Status == entities.ActionStatusOverdue:
			if firstOverdueOurs == nil {
				firstOverdueOurs = item
			}
		case item.Owner == entities.OwnerTheirs && item.Status == entities.ActionStatusPending:
			pendingTheirs++
		}
	}

	switch {
	case firstOverdueTheirs != nil:
		return []entities.TalkingPoint{{
			ID:       "action-overdue-theirs",
			Category: entities.CategoryActionFollowUp,
			Point:    "Follow up on: " + firstOverdueTheirs.Description,
			Context:  fmt.Sprintf("Overdue by %d days on the customer side", firstOverdueTheirs.DaysOverdue),
			Priority: 1,
		}}
	case firstOverdueOurs != nil:
		return []entities.TalkingPoint{{
			ID:       "action-overdue-ours",
			Category: entities.CategoryActionFollowUp,
			Point:    "Own up to the overdue item on our side: " + firstOverdueOurs.Description,
			Context:  "Proactively addressing our own slippage builds trust",
			Priority: 1,
		}}
	case pendingTheirs > 0:
		return []entities.TalkingPoint{{
			ID:       "action-pending-theirs",
			Category: entities.CategoryActionFollowUp,
			Point:    fmt.Sprintf("Check progress on the %d pending items on their side", pendingTheirs),
			Priority: 3,
		}}
	}
	return nil
}

func (g *Generator) valueProposition(in Input) []entities.TalkingPoint {
	var out []entities.TalkingPoint
	if stageMatches(in.Account.DealStage, "poc", "pilot", "trial") {
		out = append(out, entities.TalkingPoint{
			ID:       "value-evaluation",
			Category: entities.CategoryValueProposition,
			Point:    "Tie evaluation results back to the business outcomes they originally asked for",
			Priority: 2,
		})
	}
	if in.Analysis.Momentum == entities.MomentumAtRisk || in.Analysis.Momentum == entities.MomentumStalling {
		out = append(out, entities.TalkingPoint{
			ID:       "value-reanchor",
			Category: entities.CategoryValueProposition,
			Point:    "Re-anchor on the original problem and the cost of leaving it unsolved",
			Context:  "Stalled deals usually lost sight of the pain, not the product",
			Priority: 1,
		})
	}
	if stageMatches(in.Account.DealStage, "negotiation", "proposal", "contract") {
		out = append(out, entities.TalkingPoint{
			ID:       "value-late-stage",
			Category: entities.CategoryValueProposition,
			Point:    "Restate the value case before discussing price",
			Priority: 2,
		})
	}
	return out
}

func (g *Generator) nextSteps(in Input) []entities.TalkingPoint {
	out := []entities.TalkingPoint{{
		ID:       "next-dated-step",
		Category: entities.CategoryNextSteps,
		Point:    "Propose a specific next step with a date before the meeting ends",
		Context:  "Meetings without a dated next step default to no next step",
		Priority: 2,
	}}

	if stageMatches(in.Account.DealStage, "discovery", "qualification") {
		out = append(out, entities.TalkingPoint{
			ID:       "next-demo",
			Category: entities.CategoryNextSteps,
			Point:    "Offer a tailored demo or technical deep dive as the natural next step",
			Priority: 2,
		})
	} else if stageMatches(in.Account.DealStage, "negotiation", "proposal", "contract") {
		out = append(out, entities.TalkingPoint{
			ID:       "next-kickoff-date",
			Category: entities.CategoryNextSteps,
			Point:    "Propose a tentative kickoff date to make signing feel concrete",
			Priority: 2,
		})
	}
	if stageMatches(in.Account.DealStage, "poc", "pilot") && !hasRole(in.Participants, entities.RoleEconomicBuyer) {
		out = append(out, entities.TalkingPoint{
			ID:       "next-exec-briefing",
			Category: entities.CategoryNextSteps,
			Point:    "Request an executive briefing to share evaluation results with the budget holder",
			Priority: 1,
		})
	}
	if in.Analysis.DaysSinceLastContact > tuning.CadenceGapDays {
		out = append(out, entities.TalkingPoint{
			ID:       "next-cadence",
			Category: entities.CategoryNextSteps,
			Point:    "Establish a recurring check-in cadence so contact doesn't lapse again",
			Priority: 2,
		})
	}
	return out
}

func stageMatches(stage string, keywords ...string) bool {
	stage = strings.ToLower(stage)
	if stage == "" {
		return false
	}
	for _, kw := range keywords {
		if strings.Contains(stage, kw) {
			return true
		}
	}
	return false
}

func hasRole(parts []*entities.Participant, role entities.ParticipantRole) bool {
	for _, p := range parts {
		if p.Role == role {
			return true
		}
	}
	return false
}
