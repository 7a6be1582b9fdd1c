// Package tuning centralizes every numeric threshold used by the account
// intelligence pipeline so the heuristics stay tunable and unit-testable.
package tuning

// Merger
const (
	// ChatSignificantActivityThreshold is the minimum number of chat messages
	// on one calendar day for that day to contribute a timeline note.
	ChatSignificantActivityThreshold = 3
)

// Analyzer: contact recency deltas applied to the base momentum score
const (
	MomentumBaseScore = 50

	ContactVeryRecentDays  = 3
	ContactRecentDays      = 7
	ContactStaleDays       = 14
	ContactVeryStaleDays   = 30
	ContactVeryRecentDelta = 20
	ContactRecentDelta     = 10
	ContactStaleDelta      = -20
	ContactVeryStaleDelta  = -40

	// NoContactSentinelDays is reported as days-since-last-contact when the
	// timeline is empty.
	NoContactSentinelDays = 999
)

// Analyzer: stakeholder-count deltas
const (
	StakeholderStrongCount  = 5
	StakeholderHealthyCount = 3
	StakeholderMinimumCount = 2
	StakeholderStrongDelta  = 15
	StakeholderHealthyDelta = 10
	StakeholderThinDelta    = -10
)

// Analyzer: recent-call deltas
const (
	RecentCallWindowDays    = 14
	RecentCallsStrongCount  = 2
	RecentCallsStrongDelta  = 15
	RecentCallsPresentDelta = 5
)

// Analyzer: overdue action-item penalties per item
const (
	OverdueOursPenalty   = 5
	OverdueTheirsPenalty = 3
)

// Analyzer: momentum category thresholds on the clamped score
const (
	MomentumAcceleratingMin = 70
	MomentumStableMin       = 50
	MomentumStallingMin     = 30
)

// Analyzer: engagement velocity (events per week over the trailing window)
const (
	VelocityWindowDays    = 30
	VelocityHighPerWeek   = 2.0
	VelocityMediumPerWeek = 0.5
)

// Analyzer: health score penalties
const (
	HealthHighRiskPenalty    = 15
	HealthMediumRiskPenalty  = 5
	HealthOverdueItemPenalty = 3
)

// Analyzer: risk rule cutoffs
const (
	StaleContactMediumDays = 7
	StaleContactHighDays   = 14
	StuckInStageMediumDays = 30
	StuckInStageHighDays   = 60
	MultithreadingMinimum  = 3
	OverdueHighCount       = 2 // more than this many overdue items is high severity
	EconomicBuyerCheckMin  = 3 // participants needed before no-economic-buyer fires
	RecentActivityWindow   = 7
	RecentActivityMinCount = 3
)

// Profiler
const (
	InfluenceHighInteractions   = 5
	InfluenceMediumInteractions = 2
	// RolePartialCredit is added to the confidence numerator when a role
	// other than unknown was classified.
	RolePartialCredit = 0.5
)

// Goal generator
const (
	MaxGoals              = 5
	GoalTitleDedupePrefix = 30 // bytes of the lowercased title compared for dedup
	GoalActionItemSamples = 3  // overdue descriptions listed in a goal rationale
)

// Talking-point generator
const (
	OpenerRecentContactDays = 14
	GoalSupportTopN         = 3
	CaresAboutTopN          = 2
	CadenceGapDays          = 14
)

// Competitive intelligence
const (
	SentimentWindowRadius     = 100 // characters inspected around an alias match
	ThemeSnippetLength        = 50  // bytes of context kept as a theme
	MaxThemesPerCompetitor    = 4
	PreferenceRiskMinMentions = 2
	PreferenceRiskRatio       = 0.5 // positive-sentiment share above which risk is high
	FrequencyRiskWindowDays   = 30
	FrequencyRiskMinMentions  = 3
	LandscapeTopCompetitors   = 3
)
