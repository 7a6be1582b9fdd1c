package entities

import "time"

// ActionOwner indicates which side of the table owns an action item
type ActionOwner string

const (
	OwnerOurs   ActionOwner = "ours"
	OwnerTheirs ActionOwner = "theirs"
)

// ActionStatus constants
type ActionStatus string

const (
	ActionStatusPending   ActionStatus = "pending"
	ActionStatusCompleted ActionStatus = "completed"
	ActionStatusOverdue   ActionStatus = "overdue"
)

// ActionItem represents a commitment extracted from a source record.
// Overdue status is not set at creation; it is computed against "now"
// by a separate pass over the merged set.
type ActionItem struct {
	ID          string       `json:"id"`
	Description string       `json:"description"`
	Assignee    string       `json:"assignee,omitempty"`
	Owner       ActionOwner  `json:"owner"`
	Status      ActionStatus `json:"status"`
	DueDate     *time.Time   `json:"due_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	Source      string       `json:"source,omitempty"`
	DaysOverdue int          `json:"days_overdue,omitempty"`
}

// NewActionItem creates a pending action item with a deterministic id
func NewActionItem(id, description string) *ActionItem {
	return &ActionItem{
		ID:          id,
		Description: description,
		Owner:       OwnerOurs,
		Status:      ActionStatusPending,
	}
}

// MarkOverdue flips a pending item to overdue as of now
func (a *ActionItem) MarkOverdue(now time.Time) {
	if a.Status != ActionStatusPending || a.DueDate == nil {
		return
	}
	if a.DueDate.Before(now) {
		a.Status = ActionStatusOverdue
		a.DaysOverdue = int(now.Sub(*a.DueDate).Hours() / 24)
	}
}

// IsOpen reports whether the item still needs attention
func (a *ActionItem) IsOpen() bool {
	return a.Status == ActionStatusPending || a.Status == ActionStatusOverdue
}
