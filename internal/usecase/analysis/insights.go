package analysis

import (
	"fmt"
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
	"github.com/johnquangdev/account-intel/internal/usecase/merge"
)

// momentumInsights are the fixed sentence templates per momentum category
var momentumInsights = map[entities.Momentum]string{
	entities.MomentumAccelerating: "Engagement is accelerating; this is the moment to push for the next commitment.",
	entities.MomentumStable:       "Engagement is steady; keep the current cadence and look for ways to expand it.",
	entities.MomentumStalling:     "Engagement is stalling; the meeting should re-establish urgency and a concrete next step.",
	entities.MomentumAtRisk:       "This account is at risk; treat the meeting as a re-engagement, not a routine check-in.",
}

func (a *Analyzer) insights(b *merge.Bundle, res *Result, now time.Time) []string {
	var out []string

	if s, ok := momentumInsights[res.Momentum]; ok {
		out = append(out, s)
	}
	if len(b.Participants) >= tuning.StakeholderStrongCount {
		out = append(out, fmt.Sprintf("Strong multithreading: %d stakeholders are engaged on this account.", len(b.Participants)))
	}
	for _, r := range res.Risks {
		if r.Severity == entities.RiskSeverityHigh && r.Mitigation != "" {
			out = append(out, r.Mitigation)
		}
	}

	cutoff := now.AddDate(0, 0, -tuning.RecentActivityWindow)
	recent := 0
	for _, ev := range b.Timeline {
		if ev.Date.After(cutoff) {
			recent++
		}
	}
	if recent >= tuning.RecentActivityMinCount {
		out = append(out, fmt.Sprintf("High recent activity: %d touchpoints in the last %d days.", recent, tuning.RecentActivityWindow))
	}

	return out
}
