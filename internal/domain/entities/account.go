package entities

import "time"

// Momentum represents the heuristic engagement-trend category for an account
type Momentum string

const (
	MomentumAccelerating Momentum = "accelerating"
	MomentumStable       Momentum = "stable"
	MomentumStalling     Momentum = "stalling"
	MomentumAtRisk       Momentum = "at-risk"
)

// Account is the merged aggregate view of one customer account
type Account struct {
	Name            string          `json:"name"`
	Domain          string          `json:"domain"`
	DealStage       string          `json:"deal_stage,omitempty"`
	DealValue       string          `json:"deal_value,omitempty"`
	Contacts        []*Participant  `json:"contacts,omitempty"`
	Timeline        []TimelineEvent `json:"timeline,omitempty"`
	OpenActionItems []ActionItem    `json:"open_action_items,omitempty"`
	Risks           []Risk          `json:"risks,omitempty"`
	Momentum        Momentum        `json:"momentum,omitempty"`
	DaysInStage     int             `json:"days_in_stage,omitempty"`
	LastContactDate time.Time       `json:"last_contact_date,omitempty"`
}

// LatestEvent returns the most recent timeline event, or nil if the
// timeline is empty. Assumes the timeline is sorted ascending by date.
func (a *Account) LatestEvent() *TimelineEvent {
	if len(a.Timeline) == 0 {
		return nil
	}
	return &a.Timeline[len(a.Timeline)-1]
}
