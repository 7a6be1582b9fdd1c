package entities

// Goal represents a prioritized objective for the upcoming meeting.
// Priority 1 is highest; the generated list is at most five goals,
// sorted ascending by priority.
type Goal struct {
	ID                   string   `json:"id"`
	Priority             int      `json:"priority"` // 1 (highest) to 5
	Title                string   `json:"title"`
	Rationale            string   `json:"rationale,omitempty"`
	SuggestedApproach    string   `json:"suggested_approach,omitempty"`
	RelatedRiskIDs       []string `json:"related_risk_ids,omitempty"`
	RelatedActionItemIDs []string `json:"related_action_item_ids,omitempty"`
}
