package dossier

import "github.com/johnquangdev/account-intel/internal/domain/entities"

// ValidationResult lists every minimum-content violation found in a
// dossier. Violations are warnings for logging surfaces; they never
// abort generation.
type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Issues  []string `json:"issues,omitempty"`
}

// Validate checks the non-fatal minimum-content invariants and returns
// the full list of violations rather than stopping at the first.
func Validate(d *entities.Dossier) ValidationResult {
	var issues []string

	if d.Meeting.Title == "" {
		issues = append(issues, "meeting title is empty")
	}
	if d.Account.Name == "" {
		issues = append(issues, "account name is empty")
	}
	if len(d.ExternalParticipants) == 0 {
		issues = append(issues, "no external participants identified")
	}
	if len(d.Goals) == 0 {
		issues = append(issues, "no meeting goals generated")
	}
	if len(d.TalkingPoints) == 0 {
		issues = append(issues, "no talking points generated")
	}

	return ValidationResult{IsValid: len(issues) == 0, Issues: issues}
}
