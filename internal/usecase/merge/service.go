package merge

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/sources"
	"github.com/johnquangdev/account-intel/internal/domain/tuning"
)

// Target identifies the account being merged
type Target struct {
	AccountName   string
	AccountDomain string
}

// Bundle is the merged view of all source records for one account.
// The participant map is a bounded local registry keyed by normalized
// email; it is passed explicitly through the pipeline stages and is
// never shared between invocations.
type Bundle struct {
	Account      *entities.Account
	Participants map[string]*entities.Participant
	Timeline     []entities.TimelineEvent
	ActionItems  []entities.ActionItem
}

// ParticipantList returns registry entries sorted by email for
// deterministic iteration.
func (b *Bundle) ParticipantList() []*entities.Participant {
	out := make([]*entities.Participant, 0, len(b.Participants))
	for _, p := range b.Participants {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out
}

// Merger folds call, chat, and calendar records into one Bundle.
// A malformed individual record is dropped with a logged warning;
// the merge itself never aborts.
type Merger struct {
	internalDomains map[string]struct{}
	logger          *zap.Logger
	now             func() time.Time
}

// NewMerger creates a Merger. internalDomains are the seller's own email
// domains; addresses on them never enter the participant registry.
func NewMerger(internalDomains []string, logger *zap.Logger) *Merger {
	if logger == nil {
		logger = zap.NewNop()
	}
	set := make(map[string]struct{}, len(internalDomains))
	for _, d := range internalDomains {
		set[strings.ToLower(strings.TrimSpace(d))] = struct{}{}
	}
	return &Merger{
		internalDomains: set,
		logger:          logger,
		now:             time.Now,
	}
}

// IsInternal reports whether an email address belongs to the seller's org
func (m *Merger) IsInternal(email string) bool {
	_, ok := m.internalDomains[entities.EmailDomain(email)]
	return ok
}

// Merge folds the three raw record collections in fixed order: transcripts,
// then chat, then calendar. Empty collections are a legitimate zero-data
// case and produce a valid, empty-ish bundle.
func (m *Merger) Merge(target Target, calls []sources.CallRecord, chats []sources.ChatMessage, events []sources.CalendarEvent) *Bundle {
	b := &Bundle{
		Account: &entities.Account{
			Name:   target.AccountName,
			Domain: strings.ToLower(target.AccountDomain),
		},
		Participants: make(map[string]*entities.Participant),
	}

	for i := range calls {
		m.foldCall(b, &calls[i])
	}
	m.foldChat(b, chats)
	for i := range events {
		m.foldCalendarEvent(b, target, &events[i])
	}

	m.markOverdue(b)
	m.finalize(b)
	return b
}

func (m *Merger) foldCall(b *Bundle, rec *sources.CallRecord) {
	if rec.ID == "" || rec.Date.IsZero() {
		m.logger.Warn("dropping malformed call record",
			zap.String("id", rec.ID),
			zap.String("title", rec.Title),
		)
		return
	}

	b.Timeline = append(b.Timeline, entities.TimelineEvent{
		ID:              rec.ID,
		Date:            rec.Date,
		Kind:            entities.EventKindCall,
		Title:           rec.Title,
		Description:     rec.Summary,
		Participants:    externalEmails(rec.Participants, m.IsInternal),
		DurationMinutes: rec.DurationMinutes,
		TranscriptID:    rec.TranscriptID,
	})

	for _, cp := range rec.Participants {
		email := entities.NormalizeEmail(cp.Email)
		if !strings.Contains(email, "@") || m.IsInternal(email) {
			continue
		}
		p := b.Participants[email]
		if p == nil {
			p = entities.NewParticipant(email)
			b.Participants[email] = p
		}
		if p.Name == "" {
			p.Name = cp.Name
		}
		if p.Title == "" {
			p.Title = cp.Title
		}
		if p.Company == "" {
			p.Company = cp.Company
		}
		p.RecordInteraction(entities.Interaction{
			Date:    rec.Date,
			Kind:    entities.EventKindCall,
			Title:   rec.Title,
			Summary: rec.Summary,
		})
	}

	b.ActionItems = append(b.ActionItems, m.parseActionItems(rec)...)
}

// foldChat groups messages by calendar day; a day contributes one synthetic
// note event only when it clears the significant-activity threshold. Chat
// messages never create or update participant identities.
func (m *Merger) foldChat(b *Bundle, chats []sources.ChatMessage) {
	type dayActivity struct {
		first    time.Time
		count    int
		channels []string
	}
	days := make(map[string]*dayActivity)
	var order []string

	for i := range chats {
		msg := &chats[i]
		if msg.Timestamp.IsZero() || msg.Text == "" {
			m.logger.Warn("dropping malformed chat message", zap.String("id", msg.ID))
			continue
		}
		day := msg.Timestamp.Format("2006-01-02")
		act := days[day]
		if act == nil {
			act = &dayActivity{first: msg.Timestamp}
			days[day] = act
			order = append(order, day)
		}
		act.count++
		if msg.Timestamp.Before(act.first) {
			act.first = msg.Timestamp
		}
		if msg.Channel != "" && !containsString(act.channels, msg.Channel) {
			act.channels = append(act.channels, msg.Channel)
		}
	}

	sort.Strings(order)
	for _, day := range order {
		act := days[day]
		if act.count < tuning.ChatSignificantActivityThreshold {
			continue
		}
		desc := ""
		if len(act.channels) > 0 {
			desc = "Channels: " + strings.Join(act.channels, ", ")
		}
		b.Timeline = append(b.Timeline, entities.TimelineEvent{
			ID:          "chat-" + day,
			Date:        act.first,
			Kind:        entities.EventKindNote,
			Title:       fmt.Sprintf("Internal chat activity (%d mentions)", act.count),
			Description: desc,
		})
	}
}

// foldCalendarEvent includes an event only when at least one attendee's
// address domain matches the target account domain. Attendee display names
// never overwrite a non-empty registry name.
func (m *Merger) foldCalendarEvent(b *Bundle, target Target, ev *sources.CalendarEvent) {
	if ev.ID == "" || ev.Start.IsZero() {
		m.logger.Warn("dropping malformed calendar event",
			zap.String("id", ev.ID),
			zap.String("title", ev.Title),
		)
		return
	}

	accountDomain := strings.ToLower(target.AccountDomain)
	matched := false
	for _, at := range ev.Attendees {
		if entities.EmailDomain(at.Email) == accountDomain {
			matched = true
			break
		}
	}
	if !matched {
		return
	}

	duration := 0
	if !ev.End.IsZero() && ev.End.After(ev.Start) {
		duration = int(ev.End.Sub(ev.Start).Minutes())
	}
	var emails []string
	for _, at := range ev.Attendees {
		email := entities.NormalizeEmail(at.Email)
		if !strings.Contains(email, "@") || m.IsInternal(email) {
			continue
		}
		emails = append(emails, email)
		p := b.Participants[email]
		if p == nil {
			p = entities.NewParticipant(email)
			b.Participants[email] = p
		}
		if p.Name == "" {
			p.Name = at.Name
		}
		p.RecordInteraction(entities.Interaction{
			Date:  ev.Start,
			Kind:  entities.EventKindMeeting,
			Title: ev.Title,
		})
	}

	b.Timeline = append(b.Timeline, entities.TimelineEvent{
		ID:              ev.ID,
		Date:            ev.Start,
		Kind:            entities.EventKindMeeting,
		Title:           ev.Title,
		Description:     ev.Description,
		Participants:    emails,
		DurationMinutes: duration,
	})
}

// markOverdue is the separate pass that computes overdue status against "now"
func (m *Merger) markOverdue(b *Bundle) {
	now := m.now()
	for i := range b.ActionItems {
		b.ActionItems[i].MarkOverdue(now)
	}
}

func (m *Merger) finalize(b *Bundle) {
	for _, p := range b.Participants {
		sort.SliceStable(p.Interactions, func(i, j int) bool {
			return p.Interactions[i].Date.After(p.Interactions[j].Date)
		})
		if len(p.Interactions) > 0 {
			p.LastInteraction = p.Interactions[0].Date
		}
	}

	sort.SliceStable(b.Timeline, func(i, j int) bool {
		return b.Timeline[i].Date.Before(b.Timeline[j].Date)
	})
	if len(b.Timeline) > 0 {
		b.Account.LastContactDate = b.Timeline[len(b.Timeline)-1].Date
	}

	for _, item := range b.ActionItems {
		if item.IsOpen() {
			b.Account.OpenActionItems = append(b.Account.OpenActionItems, item)
		}
	}
	b.Account.Timeline = b.Timeline
	b.Account.Contacts = b.ParticipantList()
}

func externalEmails(parts []sources.CallParticipant, isInternal func(string) bool) []string {
	var out []string
	for _, cp := range parts {
		email := entities.NormalizeEmail(cp.Email)
		if strings.Contains(email, "@") && !isInternal(email) {
			out = append(out, email)
		}
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
