package entities

// TalkingPointCategory represents one of the seven fixed categories
type TalkingPointCategory string

const (
	CategoryOpener              TalkingPointCategory = "opener"
	CategoryGoalSupport         TalkingPointCategory = "goal_support"
	CategoryRiskMitigation      TalkingPointCategory = "risk_mitigation"
	CategoryStakeholderSpecific TalkingPointCategory = "stakeholder_specific"
	CategoryActionFollowUp      TalkingPointCategory = "action_follow_up"
	CategoryValueProposition    TalkingPointCategory = "value_proposition"
	CategoryNextSteps           TalkingPointCategory = "next_steps"
)

// TalkingPoint is a categorized, prioritized suggested conversation item.
// Priority runs 1 (lead with this) to 3 (if time allows).
type TalkingPoint struct {
	ID                 string               `json:"id"`
	Category           TalkingPointCategory `json:"category"`
	Point              string               `json:"point"`
	Context            string               `json:"context,omitempty"`
	SuggestedPhrasing  string               `json:"suggested_phrasing,omitempty"`
	RelatedGoalID      string               `json:"related_goal_id,omitempty"`
	RelatedParticipant string               `json:"related_participant,omitempty"`
	Priority           int                  `json:"priority"` // 1 to 3
}
