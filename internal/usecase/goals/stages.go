package goals

import (
	"strings"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
)

// stageTemplate is one candidate goal for a deal-stage group. A template
// with a skip condition is dropped when the condition holds.
type stageTemplate struct {
	id        string
	priority  int
	title     string
	rationale string
	approach  string
	skip      func(Input) bool
}

// stageGroup maps deal-stage keywords to template goals. The list is
// ordered and the first group whose keyword matches the account's stage
// string (case-insensitive substring) wins.
type stageGroup struct {
	keywords  []string
	templates []stageTemplate
}

var stageGroups = []stageGroup{
	{
		keywords: []string{"discovery", "qualification"},
		templates: []stageTemplate{
			{
				id:        "stage-pain",
				priority:  2,
				title:     "Map the customer's core pain points",
				rationale: "Early-stage deals live or die on problem clarity",
				approach:  "Lead with open questions about what breaks today and what it costs",
			},
			{
				id:        "stage-qualify",
				priority:  2,
				title:     "Qualify budget, authority, need, and timeline",
				rationale: "Unqualified discovery deals consume the most pipeline time",
			},
			{
				id:        "stage-committee",
				priority:  3,
				title:     "Identify the full buying committee",
				rationale: "Single-threaded deals stall when the one contact goes quiet",
				skip: func(in Input) bool {
					return len(in.Participants) >= 3
				},
			},
		},
	},
	{
		keywords: []string{"poc", "pilot", "trial", "evaluation"},
		templates: []stageTemplate{
			{
				id:        "stage-success-criteria",
				priority:  1,
				title:     "Confirm success criteria for the evaluation",
				rationale: "A POC without agreed criteria cannot be won, only prolonged",
				approach:  "Write the criteria down in the meeting and get explicit agreement",
			},
			{
				id:        "stage-exec-briefing",
				priority:  2,
				title:     "Request an executive briefing",
				rationale: "Evaluations convert faster when the budget holder sees the results",
				skip: func(in Input) bool {
					return hasRole(in.Participants, entities.RoleEconomicBuyer)
				},
			},
			{
				id:        "stage-technical-deep-dive",
				priority:  3,
				title:     "Schedule a technical deep dive",
				rationale: "Unanswered technical questions accumulate into evaluation risk",
			},
		},
	},
	{
		keywords: []string{"negotiation", "proposal", "contract", "legal"},
		templates: []stageTemplate{
			{
				id:        "stage-commercials",
				priority:  1,
				title:     "Close remaining commercial questions",
				rationale: "Open commercial points are where late-stage deals slip quarters",
			},
			{
				id:        "stage-signature-path",
				priority:  2,
				title:     "Confirm the signature path and paperwork owners",
				rationale: "Every unnamed approver is an unplanned delay",
				approach:  "Name each remaining approver and the date their step completes",
			},
		},
	},
	{
		keywords: []string{"closed", "won", "implementation"},
		templates: []stageTemplate{
			{
				id:        "stage-kickoff",
				priority:  2,
				title:     "Kick off implementation planning",
				rationale: "Time-to-first-value decides whether the account renews",
			},
			{
				id:        "stage-success-plan",
				priority:  3,
				title:     "Define the success plan and first-value milestone",
				rationale: "Accounts without a success plan churn silently",
			},
		},
	},
}

// stageGoals matches the account's deal stage against the ordered group
// list; the first match wins and yields that group's template goals.
// No match produces one generic goal.
func (g *Generator) stageGoals(in Input) []entities.Goal {
	stage := strings.ToLower(in.Account.DealStage)

	for _, group := range stageGroups {
		if !matchesAnyKeyword(stage, group.keywords) {
			continue
		}
		var out []entities.Goal
		for _, t := range group.templates {
			if t.skip != nil && t.skip(in) {
				continue
			}
			out = append(out, entities.Goal{
				ID:                t.id,
				Priority:          t.priority,
				Title:             t.title,
				Rationale:         t.rationale,
				SuggestedApproach: t.approach,
			})
		}
		return out
	}

	return []entities.Goal{{
		ID:        "stage-generic",
		Priority:  3,
		Title:     "Advance the opportunity to a concrete next step",
		Rationale: "No stage-specific play matched; default to forward motion",
	}}
}

func matchesAnyKeyword(stage string, keywords []string) bool {
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
