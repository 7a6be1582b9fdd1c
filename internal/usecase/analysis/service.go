package analysis

import (
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
	"github.com/johnquangdev/account-intel/internal/usecase/merge"
)

// Result is the full analyzer output for one account
type Result struct {
	Momentum             entities.Momentum `json:"momentum"`
	MomentumScore        int               `json:"momentum_score"`
	EngagementVelocity   string            `json:"engagement_velocity"`
	DaysInStage          int               `json:"days_in_stage"`
	DaysSinceLastContact int               `json:"days_since_last_contact"`
	Risks                []entities.Risk   `json:"risks,omitempty"`
	HealthScore          int               `json:"health_score"`
	Insights             []string          `json:"insights,omitempty"`
}

// Options are the optional analyzer inputs
type Options struct {
	// StageStartDate enables the stuck-in-stage rule when known.
	StageStartDate *time.Time
}

// Analyzer scores account momentum and health and evaluates the risk rule
// table. It is pure: same bundle and clock, same result.
type Analyzer struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewAnalyzer creates an Analyzer
func NewAnalyzer(logger *zap.Logger) *Analyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Analyzer{logger: logger, now: time.Now}
}

// Analyze computes momentum, engagement velocity, risks, health score and
// insight sentences for a merged bundle. Empty bundles are a legitimate
// zero-data case and yield sentinel values, never an error.
func (a *Analyzer) Analyze(b *merge.Bundle, opts Options) *Result {
	now := a.now()

	res := &Result{
		DaysSinceLastContact: daysSinceLastContact(b, now),
		EngagementVelocity:   engagementVelocity(b, now),
	}
	if opts.StageStartDate != nil {
		res.DaysInStage = daysBetween(*opts.StageStartDate, now)
	}

	res.MomentumScore = a.momentumScore(b, res.DaysSinceLastContact, now)
	res.Momentum = momentumCategory(res.MomentumScore)
	res.Risks = a.evaluateRisks(b, res, now)
	res.HealthScore = healthScore(res.MomentumScore, res.Risks, b)
	res.Insights = a.insights(b, res, now)

	a.logger.Debug("account analyzed",
		zap.String("account", b.Account.Name),
		zap.Int("momentum_score", res.MomentumScore),
		zap.String("momentum", string(res.Momentum)),
		zap.Int("health_score", res.HealthScore),
		zap.Int("risks", len(res.Risks)),
	)
	return res
}

func daysSinceLastContact(b *merge.Bundle, now time.Time) int {
	if len(b.Timeline) == 0 {
		return tuning.NoContactSentinelDays
	}
	latest := b.Timeline[len(b.Timeline)-1].Date
	return daysBetween(latest, now)
}

// engagementVelocity buckets events-per-week over the trailing window
func engagementVelocity(b *merge.Bundle, now time.Time) string {
	cutoff := now.AddDate(0, 0, -tuning.VelocityWindowDays)
	count := 0
	for _, ev := range b.Timeline {
		if ev.Date.After(cutoff) {
			count++
		}
	}
	perWeek := float64(count) / (float64(tuning.VelocityWindowDays) / 7.0)
	switch {
	case perWeek >= tuning.VelocityHighPerWeek:
		return "high"
	case perWeek >= tuning.VelocityMediumPerWeek:
		return "medium"
	default:
		return "low"
	}
}

// momentumScore starts at the base and applies the fixed deltas, clamped
// to [0,100].
func (a *Analyzer) momentumScore(b *merge.Bundle, daysSinceContact int, now time.Time) int {
	score := tuning.MomentumBaseScore

	switch {
	case daysSinceContact <= tuning.ContactVeryRecentDays:
		score += tuning.ContactVeryRecentDelta
	case daysSinceContact <= tuning.ContactRecentDays:
		score += tuning.ContactRecentDelta
	case daysSinceContact > tuning.ContactVeryStaleDays:
		score += tuning.ContactVeryStaleDelta
	case daysSinceContact > tuning.ContactStaleDays:
		score += tuning.ContactStaleDelta
	}

	stakeholders := len(b.Participants)
	switch {
	case stakeholders >= tuning.StakeholderStrongCount:
		score += tuning.StakeholderStrongDelta
	case stakeholders >= tuning.StakeholderHealthyCount:
		score += tuning.StakeholderHealthyDelta
	case stakeholders < tuning.StakeholderMinimumCount:
		score += tuning.StakeholderThinDelta
	}

	recentCalls := 0
	callCutoff := now.AddDate(0, 0, -tuning.RecentCallWindowDays)
	for _, ev := range b.Timeline {
		if ev.Kind == entities.EventKindCall && ev.Date.After(callCutoff) {
			recentCalls++
		}
	}
	switch {
	case recentCalls >= tuning.RecentCallsStrongCount:
		score += tuning.RecentCallsStrongDelta
	case recentCalls >= 1:
		score += tuning.RecentCallsPresentDelta
	}

	ours, theirs := overdueCounts(b)
	score -= ours * tuning.OverdueOursPenalty
	score -= theirs * tuning.OverdueTheirsPenalty

	return clamp(score, 0, 100)
}

func momentumCategory(score int) entities.Momentum {
	switch {
	case score >= tuning.MomentumAcceleratingMin:
		return entities.MomentumAccelerating
	case score >= tuning.MomentumStableMin:
		return entities.MomentumStable
	case score >= tuning.MomentumStallingMin:
		return entities.MomentumStalling
	default:
		return entities.MomentumAtRisk
	}
}

func healthScore(momentumScore int, risks []entities.Risk, b *merge.Bundle) int {
	score := momentumScore
	for _, r := range risks {
		switch r.Severity {
		case entities.RiskSeverityHigh:
			score -= tuning.HealthHighRiskPenalty
		case entities.RiskSeverityMedium:
			score -= tuning.HealthMediumRiskPenalty
		}
	}
	ours, theirs := overdueCounts(b)
	score -= (ours + theirs) * tuning.HealthOverdueItemPenalty
	return clamp(score, 0, 100)
}

func overdueCounts(b *merge.Bundle) (ours, theirs int) {
	for _, item := range b.ActionItems {
		if item.Status != entities.ActionStatusOverdue {
			continue
		}
		if item.Owner == entities.OwnerOurs {
			ours++
		} else {
			theirs++
		}
	}
	return ours, theirs
}

func daysBetween(from, to time.Time) int {
	d := int(to.Sub(from).Hours() / 24)
	if d < 0 {
		return 0
	}
	return d
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
