package competitive

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
)

// Extractor detects competitor signal in the merged timeline text
type Extractor struct {
	logger *zap.Logger
	now    func() time.Time
}

// NewExtractor creates an Extractor
func NewExtractor(logger *zap.Logger) *Extractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{logger: logger, now: time.Now}
}

// Extract scans every timeline event for competitor mentions and builds
// the aggregated competitive-intelligence view. Zero mentions is a
// legitimate result, never an error.
func (e *Extractor) Extract(timeline []entities.TimelineEvent, accountName string) *entities.CompetitiveIntel {
	var mentions []entities.CompetitorMention
	for i := range timeline {
		if m := detectMention(&timeline[i]); m != nil {
			mentions = append(mentions, *m)
		}
	}

	profiles := buildProfiles(mentions)
	intel := &entities.CompetitiveIntel{
		Competitors:      profiles,
		Mentions:         mentions,
		LandscapeSummary: landscapeSummary(profiles),
		Differentiators:  differentiators(mentions),
		Risks:            e.competitiveRisks(profiles, mentions),
	}

	e.logger.Debug("competitive intel extracted",
		zap.String("account", accountName),
		zap.Int("mentions", len(mentions)),
		zap.Int("competitors", len(profiles)),
	)
	return intel
}

// detectMention scans one event's lowercased text. The first alias match
// in dictionary order wins; a generic competitive-signal phrase with no
// dictionary match yields a synthetic unknown-competitor mention.
func detectMention(ev *entities.TimelineEvent) *entities.CompetitorMention {
	text := ev.SearchText()
	if text == "" {
		return nil
	}

	for _, entry := range competitorDictionary {
		for _, alias := range entry.aliases {
			idx := strings.Index(text, alias)
			if idx < 0 {
				continue
			}
			window := contextWindow(text, idx, len(alias))
			return &entities.CompetitorMention{
				Competitor: entry.name,
				EventID:    ev.ID,
				Date:       ev.Date,
				Context:    window,
				Sentiment:  classifySentiment(window),
			}
		}
	}

	for _, signal := range genericCompetitiveSignals {
		idx := strings.Index(text, signal)
		if idx < 0 {
			continue
		}
		window := contextWindow(text, idx, len(signal))
		return &entities.CompetitorMention{
			Competitor: unknownCompetitor,
			EventID:    ev.ID,
			Date:       ev.Date,
			Context:    window,
			Sentiment:  entities.SentimentNeutral,
		}
	}
	return nil
}

// contextWindow returns the text surrounding a match, clipped to the
// sentiment inspection radius on each side.
func contextWindow(text string, idx, matchLen int) string {
	start := idx - tuning.SentimentWindowRadius
	if start < 0 {
		start = 0
	}
	end := idx + matchLen + tuning.SentimentWindowRadius
	if end > len(text) {
		end = len(text)
	}
	return strings.TrimSpace(text[start:end])
}

// classifySentiment inspects the context window: competitor-positive
// phrases mean risk to us, competitor-negative phrases mean opportunity;
// both or neither is neutral.
func classifySentiment(window string) entities.Sentiment {
	positive := containsAnyPhrase(window, competitorPositivePhrases)
	negative := containsAnyPhrase(window, competitorNegativePhrases)
	switch {
	case positive && !negative:
		return entities.SentimentPositive
	case negative && !positive:
		return entities.SentimentNegative
	default:
		return entities.SentimentNeutral
	}
}

// buildProfiles aggregates mentions per competitor, keyed by normalized
// name, sorted by mention count descending.
func buildProfiles(mentions []entities.CompetitorMention) []entities.CompetitorProfile {
	byName := make(map[string]*entities.CompetitorProfile)
	var order []string

	for _, m := range mentions {
		key := strings.ToLower(m.Competitor)
		p := byName[key]
		if p == nil {
			p = &entities.CompetitorProfile{Name: m.Competitor}
			byName[key] = p
			order = append(order, key)
		}
		p.MentionCount++
		switch m.Sentiment {
		case entities.SentimentPositive:
			p.PositiveMentions++
		case entities.SentimentNegative:
			p.NegativeMentions++
		default:
			p.NeutralMentions++
		}
		if m.Date.After(p.LastMentioned) {
			p.LastMentioned = m.Date
		}
		addTheme(p, m.Context)
	}

	out := make([]entities.CompetitorProfile, 0, len(order))
	for _, key := range order {
		out = append(out, *byName[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].MentionCount > out[j].MentionCount })
	return out
}

// addTheme keeps up to a handful of deduplicated fixed-length context
// snippets per competitor.
func addTheme(p *entities.CompetitorProfile, context string) {
	if context == "" || len(p.Themes) >= tuning.MaxThemesPerCompetitor {
		return
	}
	snippet := context
	if len(snippet) > tuning.ThemeSnippetLength {
		snippet = snippet[:tuning.ThemeSnippetLength]
	}
	key := strings.ToLower(snippet)
	for _, existing := range p.Themes {
		existingKey := strings.ToLower(existing)
		if len(existingKey) > tuning.ThemeSnippetLength {
			existingKey = existingKey[:tuning.ThemeSnippetLength]
		}
		if existingKey == key {
			return
		}
	}
	p.Themes = append(p.Themes, snippet)
}

func (e *Extractor) competitiveRisks(profiles []entities.CompetitorProfile, mentions []entities.CompetitorMention) []entities.CompetitiveRisk {
	now := e.now()
	var risks []entities.CompetitiveRisk

	for i := range profiles {
		p := &profiles[i]
		if p.MentionCount >= tuning.PreferenceRiskMinMentions {
			ratio := float64(p.PositiveMentions) / float64(p.MentionCount)
			if ratio > tuning.PreferenceRiskRatio {
				risks = append(risks, entities.CompetitiveRisk{
					Competitor:  p.Name,
					Severity:    entities.RiskSeverityHigh,
					Description: fmt.Sprintf("Strong preference signals for %s across recent interactions", p.Name),
				})
			}
		}

		recentCutoff := now.AddDate(0, 0, -tuning.FrequencyRiskWindowDays)
		recent := 0
		for _, m := range mentions {
			if strings.EqualFold(m.Competitor, p.Name) && m.Date.After(recentCutoff) {
				recent++
			}
		}
		if recent >= tuning.FrequencyRiskMinMentions {
			risks = append(risks, entities.CompetitiveRisk{
				Competitor:  p.Name,
				Severity:    entities.RiskSeverityMedium,
				Description: fmt.Sprintf("%s mentioned %d times in the last %d days", p.Name, recent, tuning.FrequencyRiskWindowDays),
			})
		}

		for _, m := range mentions {
			if !strings.EqualFold(m.Competitor, p.Name) {
				continue
			}
			if containsAnyPhrase(m.Context, usageIndicatorPhrases) {
				risks = append(risks, entities.CompetitiveRisk{
					Competitor:  p.Name,
					Severity:    entities.RiskSeverityHigh,
					Description: fmt.Sprintf("Account may be currently using %s", p.Name),
				})
				break
			}
		}
	}

	sort.SliceStable(risks, func(i, j int) bool {
		return entities.SeverityRank(risks[i].Severity) < entities.SeverityRank(risks[j].Severity)
	})
	return risks
}

func landscapeSummary(profiles []entities.CompetitorProfile) string {
	switch len(profiles) {
	case 0:
		return "No competitor mentions detected in recent interactions."
	case 1:
		p := profiles[0]
		return fmt.Sprintf("%s mentioned %d time(s), predominantly %s sentiment.", p.Name, p.MentionCount, p.DominantSentiment())
	default:
		top := profiles
		if len(top) > tuning.LandscapeTopCompetitors {
			top = top[:tuning.LandscapeTopCompetitors]
		}
		names := make([]string, 0, len(top))
		for _, p := range top {
			names = append(names, p.Name)
		}
		leader := profiles[0]
		return fmt.Sprintf("Competitive landscape includes %s; %s leads with %d mention(s).",
			strings.Join(names, ", "), leader.Name, leader.MentionCount)
	}
}

// differentiators scans negative-sentiment mention contexts for the fixed
// keyword groups and returns the mapped differentiators, deduplicated.
func differentiators(mentions []entities.CompetitorMention) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, m := range mentions {
		if m.Sentiment != entities.SentimentNegative {
			continue
		}
		for _, group := range differentiatorGroups {
			if !containsAnyPhrase(m.Context, group.keywords) {
				continue
			}
			if _, dup := seen[group.differentiator]; dup {
				continue
			}
			seen[group.differentiator] = struct{}{}
			out = append(out, group.differentiator)
		}
	}
	return out
}

func containsAnyPhrase(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}
