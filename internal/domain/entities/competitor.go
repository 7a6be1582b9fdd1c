package entities

import "time"

// Sentiment of a competitor mention, from our point of view:
// "positive" means positive toward the competitor, i.e. a risk to us.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// CompetitorMention is a single detected reference to a competitor in
// one timeline event. At most one mention is counted per event.
type CompetitorMention struct {
	Competitor string    `json:"competitor"`
	EventID    string    `json:"event_id"`
	Date       time.Time `json:"date"`
	Context    string    `json:"context,omitempty"`
	Sentiment  Sentiment `json:"sentiment"`
}

// CompetitorProfile is the aggregated view of one competitor across the
// timeline, keyed by normalized (lowercased) competitor name.
type CompetitorProfile struct {
	Name             string    `json:"name"`
	MentionCount     int       `json:"mention_count"`
	PositiveMentions int       `json:"positive_mentions"`
	NegativeMentions int       `json:"negative_mentions"`
	NeutralMentions  int       `json:"neutral_mentions"`
	LastMentioned    time.Time `json:"last_mentioned"`
	Themes           []string  `json:"themes,omitempty"`
}

// DominantSentiment returns the sentiment label with the highest count,
// neutral on ties.
func (p *CompetitorProfile) DominantSentiment() Sentiment {
	if p.PositiveMentions > p.NegativeMentions && p.PositiveMentions > p.NeutralMentions {
		return SentimentPositive
	}
	if p.NegativeMentions > p.PositiveMentions && p.NegativeMentions > p.NeutralMentions {
		return SentimentNegative
	}
	return SentimentNeutral
}

// CompetitiveRisk is a competitor-derived threat to the deal
type CompetitiveRisk struct {
	Competitor  string       `json:"competitor"`
	Severity    RiskSeverity `json:"severity"`
	Description string       `json:"description"`
}

// CompetitiveIntel is the full competitive-intelligence section of a dossier
type CompetitiveIntel struct {
	Competitors      []CompetitorProfile `json:"competitors,omitempty"`
	Mentions         []CompetitorMention `json:"mentions,omitempty"`
	LandscapeSummary string              `json:"landscape_summary"`
	Differentiators  []string            `json:"differentiators,omitempty"`
	Risks            []CompetitiveRisk   `json:"risks,omitempty"`
}
