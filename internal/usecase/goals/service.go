package goals

import (
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
	"github.com/johnquangdev/account-intel/internal/usecase/analysis"
)

// Input is everything the goal generator considers
type Input struct {
	Account      *entities.Account
	Analysis     *analysis.Result
	Participants []*entities.Participant
	ActionItems  []entities.ActionItem
	MeetingTitle string
}

// Generator produces at most five prioritized meeting goals from deal
// stage, detected risks, open action items, and stakeholder gaps.
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

// Generate runs the goal sub-rules in fixed order, deduplicates by title
// prefix, sorts ascending by priority, and truncates to the maximum.
func (g *Generator) Generate(in Input) []entities.Goal {
	var out []entities.Goal
	out = append(out, g.stageGoals(in)...)
	out = append(out, g.riskGoals(in)...)
	out = append(out, g.actionItemGoals(in)...)
	out = append(out, g.stakeholderGoals(in)...)

	out = dedupeByTitlePrefix(out)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Priority < out[j].Priority })
	if len(out) > tuning.MaxGoals {
		out = out[:tuning.MaxGoals]
	}

	g.logger.Debug("goals generated",
		zap.String("account", in.Account.Name),
		zap.Int("count", len(out)),
	)
	return out
}

// riskGoals emits one goal per detected risk: priority 1 for high severity,
// 3 for medium, none for low.
func (g *Generator) riskGoals(in Input) []entities.Goal {
	var out []entities.Goal
	for _, r := range in.Analysis.Risks {
		var priority int
		switch r.Severity {
		case entities.RiskSeverityHigh:
			priority = 1
		case entities.RiskSeverityMedium:
			priority = 3
		default:
			continue
		}
		out = append(out, entities.Goal{
			ID:                fmt.Sprintf("risk-%s", r.Type),
			Priority:          priority,
			Title:             "Address: " + r.Description,
			Rationale:         "Detected risk on this account",
			SuggestedApproach: r.Mitigation,
			RelatedRiskIDs:    []string{r.ID},
		})
	}
	return out
}

func (g *Generator) actionItemGoals(in Input) []entities.Goal {
	var overdueTheirs, pendingTheirs, overdueOurs []entities.ActionItem
	for _, item := range in.ActionItems {
		switch {
		case item.Owner == entities.OwnerTheirs && item.Status == entities.ActionStatusOverdue:
			overdueTheirs = append(overdueTheirs, item)
		case item.Owner == entities.OwnerTheirs && item.Status == entities.ActionStatusPending:
			pendingTheirs = append(pendingTheirs, item)
		case item.Owner == entities.OwnerOurs && item.Status == entities.ActionStatusOverdue:
			overdueOurs = append(overdueOurs, item)
		}
	}

	var out []entities.Goal
	if len(overdueTheirs) > 0 {
		out = append(out, entities.Goal{
			ID:                   "action-overdue-theirs",
			Priority:             1,
			Title:                "Follow up on overdue customer commitments",
			Rationale:            "Overdue on their side: " + sampleDescriptions(overdueTheirs),
			SuggestedApproach:    "Raise each item without blame and offer help unblocking it",
			RelatedActionItemIDs: itemIDs(overdueTheirs),
		})
	} else if len(pendingTheirs) > 0 {
		out = append(out, entities.Goal{
			ID:                   "action-pending-theirs",
			Priority:             3,
			Title:                "Check in on outstanding customer commitments",
			Rationale:            "Pending on their side: " + sampleDescriptions(pendingTheirs),
			RelatedActionItemIDs: itemIDs(pendingTheirs),
		})
	}
	if len(overdueOurs) > 0 {
		out = append(out, entities.Goal{
			ID:                   "action-overdue-ours",
			Priority:             2,
			Title:                "Close out our overdue commitments",
			Rationale:            "Overdue on our side: " + sampleDescriptions(overdueOurs),
			SuggestedApproach:    "Come to the meeting with each item done or with a new committed date",
			RelatedActionItemIDs: itemIDs(overdueOurs),
		})
	}
	return out
}

func (g *Generator) stakeholderGoals(in Input) []entities.Goal {
	var out []entities.Goal

	if len(in.Participants) >= tuning.EconomicBuyerCheckMin && !hasRole(in.Participants, entities.RoleEconomicBuyer) {
		out = append(out, entities.Goal{
			ID:                "stakeholder-economic-buyer",
			Priority:          2,
			Title:             "Identify and engage the economic buyer",
			Rationale:         "Several contacts are engaged but the budget holder is not among them",
			SuggestedApproach: "Ask who owns the budget for this initiative and how they evaluate it",
		})
	}
	if blocker := firstWithRole(in.Participants, entities.RoleBlocker); blocker != nil {
		out = append(out, entities.Goal{
			ID:                "stakeholder-blocker",
			Priority:          2,
			Title:             fmt.Sprintf("Address %s's concerns directly", blocker.DisplayName()),
			Rationale:         "An identified blocker can quietly stall the deal",
			SuggestedApproach: "Acknowledge the concerns explicitly and agree on what would resolve them",
		})
	}
	if champion := firstWithRole(in.Participants, entities.RoleChampion); champion != nil {
		out = append(out, entities.Goal{
			ID:                "stakeholder-champion",
			Priority:          4,
			Title:             fmt.Sprintf("Equip %s to sell internally", champion.DisplayName()),
			Rationale:         "Your champion carries the deal when you are not in the room",
			SuggestedApproach: "Hand over a one-page business case they can forward",
		})
	}
	return out
}

// dedupeByTitlePrefix drops goals sharing the same lowercase title prefix,
// keeping the first occurrence.
func dedupeByTitlePrefix(goals []entities.Goal) []entities.Goal {
	seen := make(map[string]struct{}, len(goals))
	out := goals[:0]
	for _, g := range goals {
		key := strings.ToLower(g.Title)
		if len(key) > tuning.GoalTitleDedupePrefix {
			key = key[:tuning.GoalTitleDedupePrefix]
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, g)
	}
	return out
}

func sampleDescriptions(items []entities.ActionItem) string {
	n := len(items)
	if n > tuning.GoalActionItemSamples {
		n = tuning.GoalActionItemSamples
	}
	descs := make([]string, 0, n)
	for _, item := range items[:n] {
		descs = append(descs, item.Description)
	}
	return strings.Join(descs, "; ")
}

func itemIDs(items []entities.ActionItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}

func hasRole(parts []*entities.Participant, role entities.ParticipantRole) bool {
	return firstWithRole(parts, role) != nil
}

func firstWithRole(parts []*entities.Participant, role entities.ParticipantRole) *entities.Participant {
	for _, p := range parts {
		if p.Role == role {
			return p
		}
	}
	return nil
}
