package profile

import (
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/sources"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
)

// rolePattern maps job-title keywords to a role; the table is ordered and
// evaluated first-match-wins.
type rolePattern struct {
	keywords []string
	role     entities.ParticipantRole
}

var titleRolePatterns = []rolePattern{
	{[]string{"chief", "ceo", "cto", "cfo", "cio", "ciso", "coo", "vp", "vice president"}, entities.RoleEconomicBuyer},
	{[]string{"director", "head of"}, entities.RoleDecisionMaker},
	{[]string{"engineer", "architect", "security"}, entities.RoleTechnicalEvaluator},
	{[]string{"procurement", "purchasing", "sourcing"}, entities.RoleEconomicBuyer},
	{[]string{"manager"}, entities.RoleInfluencer},
	{[]string{"analyst"}, entities.RoleInfluencer},
}

// roleKeywords scores interaction text when the title is inconclusive.
// Table order breaks ties.
type roleKeywords struct {
	role     entities.ParticipantRole
	keywords []string
}

var interactionRoleKeywords = []roleKeywords{
	{entities.RoleEconomicBuyer, []string{"budget", "pricing", "contract", "roi", "cost", "procurement"}},
	{entities.RoleDecisionMaker, []string{"decision", "approve", "sign off", "sign-off", "timeline", "rollout"}},
	{entities.RoleTechnicalEvaluator, []string{"integration", "api", "architecture", "security", "poc", "sandbox"}},
	{entities.RoleChampion, []string{"champion", "advocate", "excited", "pushing for", "loves"}},
	{entities.RoleBlocker, []string{"concern", "pushback", "skeptical", "objection", "hesitant"}},
	{entities.RoleInfluencer, []string{"team", "users", "workflow", "adoption"}},
}

// influencePattern maps title keywords to an influence level, ordered,
// first-match-wins.
type influencePattern struct {
	keywords  []string
	influence entities.InfluenceLevel
}

var titleInfluencePatterns = []influencePattern{
	{[]string{"chief", "ceo", "cto", "cfo", "cio", "ciso", "coo", "vp", "vice president", "director"}, entities.InfluenceHigh},
	{[]string{"senior", "principal", "staff", "manager", "lead"}, entities.InfluenceMedium},
	{[]string{"junior", "associate", "intern"}, entities.InfluenceLow},
}

// requiredRoles are the stakeholder roles a healthy deal needs covered
var requiredRoles = []struct {
	role    entities.ParticipantRole
	message string
}{
	{entities.RoleEconomicBuyer, "No economic buyer identified: the budget holder is not in the conversation"},
	{entities.RoleTechnicalEvaluator, "No technical evaluator identified: nobody is validating the solution hands-on"},
	{entities.RoleChampion, "No champion identified: nobody is selling internally when you are not in the room"},
}

// Profiler classifies a participant's role and influence and computes a
// data-completeness confidence score.
type Profiler struct {
	logger *zap.Logger
}

// NewProfiler creates a Profiler
func NewProfiler(logger *zap.Logger) *Profiler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Profiler{logger: logger}
}

// Profile enriches a participant in place using the optional external
// enrichment record, then classifies role and influence and scores
// confidence. A nil enrichment is a legitimate zero-data case.
func (pr *Profiler) Profile(p *entities.Participant, enrich *sources.EnrichmentRecord) {
	if enrich != nil {
		if p.Name == "" {
			p.Name = enrich.Name
		}
		if p.Title == "" {
			p.Title = enrich.Title
		}
		if p.Company == "" {
			p.Company = enrich.Company
		}
		if p.ProfileURL == "" {
			p.ProfileURL = enrich.ProfileURL
		}
		if p.Background == "" {
			p.Background = enrich.Background
		}
		if len(p.CaresAbout) == 0 {
			p.CaresAbout = enrich.Topics
		}
	}

	p.Role = pr.classifyRole(p)
	p.Influence = classifyInfluence(p)
	p.Confidence = confidence(p)
}

// classifyRole consults the title table first; when no title pattern
// matches, each role's keyword list is scored against the participant's
// interaction text and the highest-scoring role wins, ties resolved by
// table order.
func (pr *Profiler) classifyRole(p *entities.Participant) entities.ParticipantRole {
	title := strings.ToLower(p.Title)
	if title != "" {
		for _, pat := range titleRolePatterns {
			if containsAny(title, pat.keywords) {
				return pat.role
			}
		}
	}

	text := p.InteractionText()
	if text == "" {
		return entities.RoleUnknown
	}
	best := entities.RoleUnknown
	bestScore := 0
	for _, rk := range interactionRoleKeywords {
		score := 0
		for _, kw := range rk.keywords {
			score += strings.Count(text, kw)
		}
		if score > bestScore {
			best = rk.role
			bestScore = score
		}
	}
	return best
}

func classifyInfluence(p *entities.Participant) entities.InfluenceLevel {
	title := strings.ToLower(p.Title)
	if title != "" {
		for _, pat := range titleInfluencePatterns {
			if containsAny(title, pat.keywords) {
				return pat.influence
			}
		}
	}
	switch {
	case p.InteractionCount >= tuning.InfluenceHighInteractions:
		return entities.InfluenceHigh
	case p.InteractionCount >= tuning.InfluenceMediumInteractions:
		return entities.InfluenceMedium
	default:
		return entities.InfluenceLow
	}
}

// confidence is the fraction of present data signals, with partial credit
// for a classified role, over the number of signals evaluated.
func confidence(p *entities.Participant) float64 {
	signals := []bool{
		p.Name != "",
		p.Title != "",
		p.Company != "",
		p.ProfileURL != "",
		p.Background != "",
		len(p.Interactions) > 0,
	}
	score := 0.0
	for _, present := range signals {
		if present {
			score++
		}
	}
	if p.Role != entities.RoleUnknown {
		score += tuning.RolePartialCredit
	}
	return score / float64(len(signals)+1)
}

// MissingStakeholders scans a profiled set for each required role and
// returns one message per absent role.
func (pr *Profiler) MissingStakeholders(participants []*entities.Participant) []string {
	var missing []string
	for _, req := range requiredRoles {
		found := false
		for _, p := range participants {
			if p.Role == req.role {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, req.message)
		}
	}
	return missing
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
