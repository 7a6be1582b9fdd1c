package merge

import (
	"reflect"
	"testing"
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestMerger() *Merger {
	m := NewMerger([]string{"ourcompany.com"}, nil)
	m.now = func() time.Time { return testNow }
	return m
}

func acmeTarget() Target {
	return Target{AccountName: "Acme Corp", AccountDomain: "acme.com"}
}

func TestMerge_SingleCallWithActionItem(t *testing.T) {
	m := newTestMerger()
	calls := []sources.CallRecord{{
		ID:    "call-1",
		Title: "Discovery call",
		Date:  testNow.AddDate(0, 0, -2),
		Participants: []sources.CallParticipant{
			{Email: "sarah@acme.com", Name: "Sarah Chen", Title: "Director of IT"},
			{Email: "rep@ourcompany.com", Name: "Our Rep"},
		},
		Summary:         "Discussed current ticketing pain",
		ActionItemsText: "Sarah Chen:\n- Send the current workflow docs",
	}}

	b := m.Merge(acmeTarget(), calls, nil, nil)

	if len(b.Timeline) != 1 {
		t.Fatalf("expected 1 timeline event, got %d", len(b.Timeline))
	}
	if b.Timeline[0].Kind != entities.EventKindCall {
		t.Errorf("expected call event, got %s", b.Timeline[0].Kind)
	}
	if len(b.Participants) != 1 {
		t.Fatalf("expected registry size 1, got %d", len(b.Participants))
	}
	p := b.Participants["sarah@acme.com"]
	if p == nil {
		t.Fatal("sarah@acme.com missing from registry")
	}
	if p.Name != "Sarah Chen" || p.Title != "Director of IT" {
		t.Errorf("participant identity not captured: %+v", p)
	}
	if p.InteractionCount != 1 {
		t.Errorf("expected 1 interaction, got %d", p.InteractionCount)
	}
	if len(b.ActionItems) != 1 {
		t.Fatalf("expected 1 action item, got %d", len(b.ActionItems))
	}
	if b.ActionItems[0].Owner != entities.OwnerTheirs {
		t.Errorf("expected owner theirs, got %s", b.ActionItems[0].Owner)
	}
	if b.ActionItems[0].ID != "call-1-item-0" {
		t.Errorf("unexpected item id %s", b.ActionItems[0].ID)
	}
}

func TestMerge_DropsMalformedRecords(t *testing.T) {
	m := newTestMerger()
	calls := []sources.CallRecord{
		{ID: "", Title: "no id", Date: testNow},
		{ID: "call-2", Title: "no date"},
	}
	chats := []sources.ChatMessage{
		{ID: "msg-1", Timestamp: testNow, Text: ""},
		{ID: "msg-2", Text: "has text but no timestamp"},
	}
	events := []sources.CalendarEvent{
		{ID: "", Title: "no id", Start: testNow},
	}

	b := m.Merge(acmeTarget(), calls, chats, events)
	if len(b.Timeline) != 0 {
		t.Fatalf("malformed records should be dropped, got %d events", len(b.Timeline))
	}
}

func TestFoldChat_SignificantActivityThreshold(t *testing.T) {
	m := newTestMerger()
	busy := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	quiet := time.Date(2025, 6, 11, 9, 0, 0, 0, time.UTC)
	chats := []sources.ChatMessage{
		{ID: "a", Channel: "#sales", Timestamp: busy.Add(2 * time.Hour), Text: "acme asked about pricing"},
		{ID: "b", Channel: "#sales", Timestamp: busy, Text: "acme call recap"},
		{ID: "c", Channel: "#support", Timestamp: busy.Add(time.Hour), Text: "acme ticket escalated"},
		{ID: "d", Channel: "#sales", Timestamp: quiet, Text: "acme mention one"},
		{ID: "e", Channel: "#sales", Timestamp: quiet.Add(time.Minute), Text: "acme mention two"},
	}

	b := m.Merge(acmeTarget(), nil, chats, nil)

	if len(b.Timeline) != 1 {
		t.Fatalf("expected only the busy day to produce an event, got %d", len(b.Timeline))
	}
	ev := b.Timeline[0]
	if ev.ID != "chat-2025-06-10" {
		t.Errorf("unexpected event id %s", ev.ID)
	}
	if ev.Kind != entities.EventKindNote {
		t.Errorf("expected note event, got %s", ev.Kind)
	}
	if !ev.Date.Equal(busy) {
		t.Errorf("event date should be the earliest message of the day, got %s", ev.Date)
	}
	if ev.Title != "Internal chat activity (3 mentions)" {
		t.Errorf("unexpected title %q", ev.Title)
	}
	if ev.Description != "Channels: #sales, #support" {
		t.Errorf("unexpected description %q", ev.Description)
	}
	if len(b.Participants) != 0 {
		t.Errorf("chat must never create participants, got %d", len(b.Participants))
	}
}

func TestFoldCalendarEvent_DomainFilter(t *testing.T) {
	m := newTestMerger()
	events := []sources.CalendarEvent{
		{
			ID:    "ev-other",
			Title: "Unrelated sync",
			Start: testNow.AddDate(0, 0, -5),
			Attendees: []sources.CalendarAttendee{
				{Email: "someone@other.com"},
				{Email: "rep@ourcompany.com"},
			},
		},
		{
			ID:    "ev-acme",
			Title: "Acme working session",
			Start: testNow.AddDate(0, 0, -3),
			End:   testNow.AddDate(0, 0, -3).Add(45 * time.Minute),
			Attendees: []sources.CalendarAttendee{
				{Email: "James@Acme.com", Name: "James Wu"},
				{Email: "rep@ourcompany.com", Name: "Our Rep"},
			},
		},
	}

	b := m.Merge(acmeTarget(), nil, nil, events)

	if len(b.Timeline) != 1 {
		t.Fatalf("expected 1 event after domain filtering, got %d", len(b.Timeline))
	}
	ev := b.Timeline[0]
	if ev.ID != "ev-acme" {
		t.Errorf("wrong event survived: %s", ev.ID)
	}
	if ev.DurationMinutes != 45 {
		t.Errorf("expected 45 minute duration, got %d", ev.DurationMinutes)
	}
	if len(ev.Participants) != 1 || ev.Participants[0] != "james@acme.com" {
		t.Errorf("expected normalized external attendee only, got %v", ev.Participants)
	}
	if _, ok := b.Participants["james@acme.com"]; !ok {
		t.Error("calendar attendee should enter the registry")
	}
	if _, ok := b.Participants["rep@ourcompany.com"]; ok {
		t.Error("internal attendee must not enter the registry")
	}
}

func TestFoldCalendarEvent_NameNeverOverwrites(t *testing.T) {
	m := newTestMerger()
	calls := []sources.CallRecord{{
		ID:    "call-1",
		Title: "Intro call",
		Date:  testNow.AddDate(0, 0, -10),
		Participants: []sources.CallParticipant{
			{Email: "sarah@acme.com", Name: "Sarah Chen"},
		},
	}}
	events := []sources.CalendarEvent{{
		ID:    "ev-1",
		Title: "Follow-up",
		Start: testNow.AddDate(0, 0, -4),
		Attendees: []sources.CalendarAttendee{
			{Email: "sarah@acme.com", Name: "S. Chen (guest)"},
		},
	}}

	b := m.Merge(acmeTarget(), calls, nil, events)

	p := b.Participants["sarah@acme.com"]
	if p == nil {
		t.Fatal("participant missing")
	}
	if p.Name != "Sarah Chen" {
		t.Errorf("attendee display name overwrote registry name: %q", p.Name)
	}
	if p.InteractionCount != 2 {
		t.Errorf("expected 2 interactions, got %d", p.InteractionCount)
	}
}

func TestMerge_TimelineSortedAndAccountFinalized(t *testing.T) {
	m := newTestMerger()
	calls := []sources.CallRecord{
		{ID: "call-new", Title: "Later call", Date: testNow.AddDate(0, 0, -1)},
		{ID: "call-old", Title: "Earlier call", Date: testNow.AddDate(0, 0, -20)},
	}

	b := m.Merge(acmeTarget(), calls, nil, nil)

	if b.Timeline[0].ID != "call-old" || b.Timeline[1].ID != "call-new" {
		t.Fatalf("timeline not sorted ascending: %s, %s", b.Timeline[0].ID, b.Timeline[1].ID)
	}
	if !b.Account.LastContactDate.Equal(testNow.AddDate(0, 0, -1)) {
		t.Errorf("last contact date should be the newest event, got %s", b.Account.LastContactDate)
	}
	if b.Account.Domain != "acme.com" {
		t.Errorf("account domain should be lowercased, got %s", b.Account.Domain)
	}
	if len(b.Account.Timeline) != 2 {
		t.Errorf("account timeline not attached")
	}
}

func TestMerge_Deterministic(t *testing.T) {
	calls := []sources.CallRecord{{
		ID:    "call-1",
		Title: "Discovery",
		Date:  testNow.AddDate(0, 0, -2),
		Participants: []sources.CallParticipant{
			{Email: "b@acme.com", Name: "B"},
			{Email: "a@acme.com", Name: "A"},
		},
		ActionItemsText: "a@acme.com:\n- Item one\n- Item two (due: 2025-06-01)",
	}}
	events := []sources.CalendarEvent{{
		ID:    "ev-1",
		Title: "Planning",
		Start: testNow.AddDate(0, 0, -4),
		Attendees: []sources.CalendarAttendee{
			{Email: "a@acme.com"},
		},
	}}

	first := newTestMerger().Merge(acmeTarget(), calls, nil, events)
	second := newTestMerger().Merge(acmeTarget(), calls, nil, events)

	if !reflect.DeepEqual(first.Timeline, second.Timeline) {
		t.Error("timeline differs between identical runs")
	}
	if !reflect.DeepEqual(first.ActionItems, second.ActionItems) {
		t.Error("action items differ between identical runs")
	}
	if !reflect.DeepEqual(first.ParticipantList(), second.ParticipantList()) {
		t.Error("participant list differs between identical runs")
	}
}

func TestParticipantList_SortedByEmail(t *testing.T) {
	b := &Bundle{Participants: map[string]*entities.Participant{
		"z@acme.com": entities.NewParticipant("z@acme.com"),
		"a@acme.com": entities.NewParticipant("a@acme.com"),
		"m@acme.com": entities.NewParticipant("m@acme.com"),
	}}
	list := b.ParticipantList()
	if list[0].Email != "a@acme.com" || list[1].Email != "m@acme.com" || list[2].Email != "z@acme.com" {
		t.Errorf("not sorted by email: %v", []string{list[0].Email, list[1].Email, list[2].Email})
	}
}

func TestIsInternal(t *testing.T) {
	m := NewMerger([]string{"OurCompany.com", " other.io "}, nil)
	if !m.IsInternal("rep@ourcompany.com") {
		t.Error("expected ourcompany.com to be internal")
	}
	if !m.IsInternal("dev@other.io") {
		t.Error("expected other.io to be internal after trimming")
	}
	if m.IsInternal("sarah@acme.com") {
		t.Error("acme.com must not be internal")
	}
}
