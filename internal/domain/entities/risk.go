package entities

import "time"

// RiskSeverity constants
type RiskSeverity string

const (
	RiskSeverityHigh   RiskSeverity = "high"
	RiskSeverityMedium RiskSeverity = "medium"
	RiskSeverityLow    RiskSeverity = "low"
)

// Risk types produced by the analyzer's rule table
const (
	RiskTypeStaleCommunication    = "stale_communication"
	RiskTypeStuckInStage          = "stuck_in_stage"
	RiskTypeLimitedMultithreading = "limited_multithreading"
	RiskTypeOverdueOurs           = "overdue_commitments_ours"
	RiskTypeOverdueTheirs         = "overdue_commitments_theirs"
	RiskTypeNoChampion            = "no_champion"
	RiskTypeNoEconomicBuyer       = "no_economic_buyer"
)

// Risk represents a detected, severity-ranked condition threatening deal
// progress. Risks are produced only by deterministic rule evaluation in
// the account analyzer.
type Risk struct {
	ID          string       `json:"id"`
	Type        string       `json:"type"`
	Severity    RiskSeverity `json:"severity"`
	Description string       `json:"description"`
	DetectedAt  time.Time    `json:"detected_at"`
	Mitigation  string       `json:"mitigation,omitempty"`
}

// SeverityRank maps a severity to a sortable rank, high first
func SeverityRank(s RiskSeverity) int {
	switch s {
	case RiskSeverityHigh:
		return 0
	case RiskSeverityMedium:
		return 1
	default:
		return 2
	}
}
