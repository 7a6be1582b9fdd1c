package profile

import (
	"math"
	"testing"
	"time"

	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/sources"
)

func TestClassifyRole_TitlePatternsFirstMatchWins(t *testing.T) {
	pr := NewProfiler(nil)

	tests := []struct {
		title string
		want  entities.ParticipantRole
	}{
		{"Chief Information Officer", entities.RoleEconomicBuyer},
		{"VP of Engineering", entities.RoleEconomicBuyer},
		{"Director of IT", entities.RoleDecisionMaker},
		{"Head of Support", entities.RoleDecisionMaker},
		{"Staff Software Engineer", entities.RoleTechnicalEvaluator},
		{"Security Architect", entities.RoleTechnicalEvaluator},
		{"Procurement Lead", entities.RoleEconomicBuyer},
		{"Engineering Manager", entities.RoleTechnicalEvaluator}, // engineer matches before manager
		{"Product Manager", entities.RoleInfluencer},
		{"Business Analyst", entities.RoleInfluencer},
	}
	for _, tt := range tests {
		p := entities.NewParticipant("x@acme.com")
		p.Title = tt.title
		pr.Profile(p, nil)
		if p.Role != tt.want {
			t.Errorf("title %q: role = %s, want %s", tt.title, p.Role, tt.want)
		}
	}
}

func TestClassifyRole_InteractionKeywordFallback(t *testing.T) {
	pr := NewProfiler(nil)

	p := entities.NewParticipant("sam@acme.com")
	p.RecordInteraction(entities.Interaction{
		Title:   "Budget review",
		Summary: "Discussed budget and pricing for the contract renewal",
	})
	pr.Profile(p, nil)
	if p.Role != entities.RoleEconomicBuyer {
		t.Errorf("budget-heavy text should classify economic buyer, got %s", p.Role)
	}

	p = entities.NewParticipant("dev@acme.com")
	p.RecordInteraction(entities.Interaction{
		Title:   "Integration workshop",
		Summary: "Walked through the api and security architecture for the poc",
	})
	pr.Profile(p, nil)
	if p.Role != entities.RoleTechnicalEvaluator {
		t.Errorf("technical text should classify technical evaluator, got %s", p.Role)
	}

	p = entities.NewParticipant("quiet@acme.com")
	pr.Profile(p, nil)
	if p.Role != entities.RoleUnknown {
		t.Errorf("no title and no text should stay unknown, got %s", p.Role)
	}
}

func TestClassifyInfluence(t *testing.T) {
	pr := NewProfiler(nil)

	p := entities.NewParticipant("vp@acme.com")
	p.Title = "VP of Operations"
	pr.Profile(p, nil)
	if p.Influence != entities.InfluenceHigh {
		t.Errorf("VP title should be high influence, got %s", p.Influence)
	}

	p = entities.NewParticipant("sr@acme.com")
	p.Title = "Senior Consultant"
	pr.Profile(p, nil)
	if p.Influence != entities.InfluenceMedium {
		t.Errorf("senior title should be medium influence, got %s", p.Influence)
	}

	// no title: interaction count decides
	p = entities.NewParticipant("busy@acme.com")
	for i := 0; i < 5; i++ {
		p.RecordInteraction(entities.Interaction{Date: time.Now(), Title: "sync"})
	}
	pr.Profile(p, nil)
	if p.Influence != entities.InfluenceHigh {
		t.Errorf("5 interactions without title should be high influence, got %s", p.Influence)
	}

	p = entities.NewParticipant("new@acme.com")
	pr.Profile(p, nil)
	if p.Influence != entities.InfluenceLow {
		t.Errorf("no signals should be low influence, got %s", p.Influence)
	}
}

func TestProfile_EnrichmentFillsOnlyGaps(t *testing.T) {
	pr := NewProfiler(nil)

	p := entities.NewParticipant("sarah@acme.com")
	p.Name = "Sarah Chen"
	pr.Profile(p, &sources.EnrichmentRecord{
		Name:       "S. Chen",
		Title:      "Director of IT",
		Company:    "Acme Corp",
		ProfileURL: "https://example.com/sarah",
		Background: "15 years in IT operations",
		Topics:     []string{"automation", "cost reduction"},
	})

	if p.Name != "Sarah Chen" {
		t.Errorf("enrichment must not overwrite existing name, got %q", p.Name)
	}
	if p.Title != "Director of IT" || p.Company != "Acme Corp" {
		t.Errorf("enrichment should fill empty fields: %+v", p)
	}
	if len(p.CaresAbout) != 2 {
		t.Errorf("topics should be adopted, got %v", p.CaresAbout)
	}
	if p.Role != entities.RoleDecisionMaker {
		t.Errorf("enriched title should drive classification, got %s", p.Role)
	}
}

func TestConfidence(t *testing.T) {
	pr := NewProfiler(nil)

	p := entities.NewParticipant("ghost@acme.com")
	pr.Profile(p, nil)
	if p.Confidence != 0 {
		t.Errorf("empty participant confidence = %f, want 0", p.Confidence)
	}

	p = entities.NewParticipant("sarah@acme.com")
	p.Name = "Sarah Chen"
	p.Title = "Director of IT"
	p.RecordInteraction(entities.Interaction{Title: "Discovery call"})
	pr.Profile(p, nil)
	// name, title, interactions present plus role credit: (3 + 0.5) / 7
	want := 3.5 / 7.0
	if math.Abs(p.Confidence-want) > 1e-9 {
		t.Errorf("confidence = %f, want %f", p.Confidence, want)
	}
}

func TestMissingStakeholders(t *testing.T) {
	pr := NewProfiler(nil)

	eb := entities.NewParticipant("cfo@acme.com")
	eb.Role = entities.RoleEconomicBuyer

	missing := pr.MissingStakeholders([]*entities.Participant{eb})
	if len(missing) != 2 {
		t.Fatalf("expected 2 missing roles, got %d: %v", len(missing), missing)
	}
	if missing[0] != "No technical evaluator identified: nobody is validating the solution hands-on" {
		t.Errorf("unexpected first message %q", missing[0])
	}
	if missing[1] != "No champion identified: nobody is selling internally when you are not in the room" {
		t.Errorf("unexpected second message %q", missing[1])
	}

	all := []*entities.Participant{eb}
	te := entities.NewParticipant("dev@acme.com")
	te.Role = entities.RoleTechnicalEvaluator
	ch := entities.NewParticipant("fan@acme.com")
	ch.Role = entities.RoleChampion
	all = append(all, te, ch)
	if got := pr.MissingStakeholders(all); len(got) != 0 {
		t.Errorf("all roles covered should yield no messages, got %v", got)
	}
}
