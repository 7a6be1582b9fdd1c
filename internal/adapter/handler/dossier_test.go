package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"gorm.io/datatypes"

	dossierdto "github.com/johnquangdev/account-intel/internal/adapter/dto/dossier"
	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/infrastructure/cache"
	"github.com/johnquangdev/account-intel/internal/usecase/analysis"
	"github.com/johnquangdev/account-intel/internal/usecase/competitive"
	dossierUsecase "github.com/johnquangdev/account-intel/internal/usecase/dossier"
	"github.com/johnquangdev/account-intel/internal/usecase/goals"
	"github.com/johnquangdev/account-intel/internal/usecase/merge"
	"github.com/johnquangdev/account-intel/internal/usecase/profile"
	"github.com/johnquangdev/account-intel/internal/usecase/talking"
	"github.com/johnquangdev/account-intel/pkg/config"
	pkgvalidator "github.com/johnquangdev/account-intel/pkg/validator"
)

type fakeDossierRepo struct {
	records []*entities.DossierRecord
	saveErr error
}

func (f *fakeDossierRepo) Save(_ context.Context, record *entities.DossierRecord) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeDossierRepo) FindLatestByAccount(_ context.Context, accountDomain string) (*entities.DossierRecord, error) {
	var latest *entities.DossierRecord
	for _, r := range f.records {
		if r.AccountDomain != accountDomain {
			continue
		}
		if latest == nil || r.GeneratedAt.After(latest.GeneratedAt) {
			latest = r
		}
	}
	if latest == nil {
		return nil, entities.ErrDossierRecordNotFound
	}
	return latest, nil
}

func (f *fakeDossierRepo) ListByAccount(_ context.Context, accountDomain string, limit int) ([]*entities.DossierRecord, error) {
	var out []*entities.DossierRecord
	for _, r := range f.records {
		if r.AccountDomain == accountDomain {
			out = append(out, r)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeDossierRepo) DeleteOlderThan(_ context.Context, before time.Time) error {
	kept := f.records[:0]
	for _, r := range f.records {
		if !r.GeneratedAt.Before(before) {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Pipeline: config.PipelineConfig{InternalDomains: []string{"ourcompany.com"}},
		Redis:    config.RedisConfig{TTL: time.Minute},
	}
}

func newTestHandler(repo *fakeDossierRepo, store cache.Store) (*echo.Echo, *Dossier) {
	e := echo.New()
	e.Validator = pkgvalidator.New()

	merger := merge.NewMerger([]string{"ourcompany.com"}, nil)
	service := dossierUsecase.NewService(
		merger,
		analysis.NewAnalyzer(nil),
		profile.NewProfiler(nil),
		goals.NewGenerator(nil),
		talking.NewGenerator(nil),
		competitive.NewExtractor(nil),
		nil,
	)

	h := NewDossierHandler(service, nil, repo, store, nil, nil, testConfig(), nil)
	return e, h
}

func generateBody(mode string) string {
	return `{
		"account_name": "Acme Corp",
		"account_domain": "acme.com",
		"deal_stage": "discovery",
		"mode": "` + mode + `",
		"meeting": {
			"title": "Quarterly review",
			"attendees": [
				{"email": "sarah@acme.com", "name": "Sarah Chen"},
				{"email": "rep@ourcompany.com", "name": "Our Rep"}
			]
		},
		"sources": {
			"calls": [{
				"id": "call-1",
				"title": "Discovery call",
				"date": "` + time.Now().AddDate(0, 0, -2).Format(time.RFC3339) + `",
				"participants": [{"email": "sarah@acme.com", "name": "Sarah Chen"}],
				"summary": "Discussed ticketing pain points"
			}]
		}
	}`
}

func TestGenerate_FullMode(t *testing.T) {
	repo := &fakeDossierRepo{}
	e, h := newTestHandler(repo, cache.NewMemoryStore())

	req := httptest.NewRequest(http.MethodPost, "/v1/dossiers", strings.NewReader(generateBody("full")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Generate(c); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Code string                             `json:"code"`
		Data dossierdto.GenerateDossierResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Code != "OK" {
		t.Errorf("envelope code = %q", envelope.Code)
	}
	d := envelope.Data.Dossier
	if d == nil {
		t.Fatal("response carries no dossier")
	}
	if d.Account.Domain != "acme.com" || d.Metadata.Mode != entities.GenerationModeFull {
		t.Errorf("unexpected dossier identity: %+v", d.Account)
	}
	if len(d.ExternalParticipants) != 1 {
		t.Errorf("expected 1 external participant, got %d", len(d.ExternalParticipants))
	}

	if len(repo.records) != 1 {
		t.Fatalf("expected the dossier to be persisted, got %d records", len(repo.records))
	}
	if repo.records[0].AccountDomain != "acme.com" || repo.records[0].Mode != "full" {
		t.Errorf("unexpected stored record %+v", repo.records[0])
	}
}

func TestGenerate_QuickMode(t *testing.T) {
	repo := &fakeDossierRepo{}
	e, h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodPost, "/v1/dossiers", strings.NewReader(generateBody("quick")))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Generate(c); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data dossierdto.GenerateDossierResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.Dossier.Metadata.Mode != entities.GenerationModeQuick {
		t.Errorf("expected quick mode, got %s", envelope.Data.Dossier.Metadata.Mode)
	}
	if len(envelope.Data.Dossier.TalkingPoints) != 3 {
		t.Errorf("quick dossier has %d talking points", len(envelope.Data.Dossier.TalkingPoints))
	}
}

func TestGenerate_NoSourceDataFallsBackToQuick(t *testing.T) {
	repo := &fakeDossierRepo{}
	e, h := newTestHandler(repo, nil)

	// full mode, no inline sources, and no collector wired
	body := `{
		"account_name": "Acme Corp",
		"account_domain": "acme.com",
		"mode": "full",
		"meeting": {
			"title": "Quarterly review",
			"attendees": [
				{"email": "sarah@acme.com", "name": "Sarah Chen"},
				{"email": "rep@ourcompany.com", "name": "Our Rep"}
			]
		}
	}`
	req := httptest.NewRequest(http.MethodPost, "/v1/dossiers", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Generate(c); err != nil {
		t.Fatalf("Generate returned error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data dossierdto.GenerateDossierResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	d := envelope.Data.Dossier
	if d == nil {
		t.Fatal("response carries no dossier")
	}
	if d.Metadata.Mode != entities.GenerationModeQuick {
		t.Errorf("all-empty collections should degrade to quick mode, got %s", d.Metadata.Mode)
	}
	if len(d.TalkingPoints) != 3 {
		t.Errorf("quick dossier has %d talking points", len(d.TalkingPoints))
	}
	if len(repo.records) != 1 || repo.records[0].Mode != "quick" {
		t.Errorf("degraded dossier should be persisted as quick, got %+v", repo.records)
	}
}

func TestGenerate_RejectsInvalidPayload(t *testing.T) {
	e, h := newTestHandler(&fakeDossierRepo{}, nil)

	body := `{"account_name": "Acme", "account_domain": "not-a-domain", "meeting": {"title": "x", "attendees": [{"email": "a@b.com"}]}}`
	req := httptest.NewRequest(http.MethodPost, "/v1/dossiers", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Generate(c); err != nil {
		t.Fatalf("handler should write the error itself: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400; body = %s", rec.Code, rec.Body.String())
	}
}

func storedRecord(domain string, generatedAt time.Time) *entities.DossierRecord {
	payload, _ := json.Marshal(&entities.Dossier{
		Account: entities.Account{Name: "Acme Corp", Domain: domain},
	})
	return &entities.DossierRecord{
		ID:              uuid.New(),
		AccountName:     "Acme Corp",
		AccountDomain:   domain,
		Mode:            "full",
		PipelineVersion: "v1",
		Payload:         datatypes.JSON(payload),
		GeneratedAt:     generatedAt,
	}
}

func TestGetLatest(t *testing.T) {
	repo := &fakeDossierRepo{records: []*entities.DossierRecord{
		storedRecord("acme.com", time.Now().Add(-2*time.Hour)),
		storedRecord("acme.com", time.Now().Add(-time.Hour)),
	}}
	store := cache.NewMemoryStore()
	e, h := newTestHandler(repo, store)

	req := httptest.NewRequest(http.MethodGet, "/v1/dossiers/acme.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("account")
	c.SetParamValues("acme.com")

	if err := h.GetLatest(c); err != nil {
		t.Fatalf("GetLatest returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data dossierdto.StoredDossierResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.AccountDomain != "acme.com" || envelope.Data.FromCache {
		t.Errorf("unexpected first response %+v", envelope.Data)
	}
	if envelope.Data.Dossier == nil || envelope.Data.Dossier.Account.Name != "Acme Corp" {
		t.Error("stored payload not decoded into the response")
	}

	// the second read is served from cache
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(httptest.NewRequest(http.MethodGet, "/v1/dossiers/acme.com", nil), rec2)
	c2.SetParamNames("account")
	c2.SetParamValues("acme.com")
	if err := h.GetLatest(c2); err != nil {
		t.Fatalf("second GetLatest returned error: %v", err)
	}
	var cached struct {
		Data dossierdto.StoredDossierResponse `json:"data"`
	}
	if err := json.Unmarshal(rec2.Body.Bytes(), &cached); err != nil {
		t.Fatalf("decode cached response: %v", err)
	}
	if !cached.Data.FromCache {
		t.Error("second read should be served from cache")
	}
}

func TestGetLatest_CorruptStoredPayload(t *testing.T) {
	record := storedRecord("acme.com", time.Now())
	record.Payload = datatypes.JSON([]byte(`{"account":`))
	repo := &fakeDossierRepo{records: []*entities.DossierRecord{record}}
	e, h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/dossiers/acme.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("account")
	c.SetParamValues("acme.com")

	if err := h.GetLatest(c); err != nil {
		t.Fatalf("handler should write the error itself: %v", err)
	}
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500; body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "INTERNAL") {
		t.Errorf("expected an internal error body, got %s", rec.Body.String())
	}
}

func TestGetLatest_NotFound(t *testing.T) {
	e, h := newTestHandler(&fakeDossierRepo{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/dossiers/ghost.com", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("account")
	c.SetParamValues("ghost.com")

	if err := h.GetLatest(c); err != nil {
		t.Fatalf("GetLatest returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404; body = %s", rec.Code, rec.Body.String())
	}
}

func TestHistory(t *testing.T) {
	repo := &fakeDossierRepo{records: []*entities.DossierRecord{
		storedRecord("acme.com", time.Now().Add(-time.Hour)),
		storedRecord("acme.com", time.Now().Add(-2*time.Hour)),
		storedRecord("other.com", time.Now()),
	}}
	e, h := newTestHandler(repo, nil)

	req := httptest.NewRequest(http.MethodGet, "/v1/dossiers/acme.com/history?limit=10", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("account")
	c.SetParamValues("acme.com")

	if err := h.History(c); err != nil {
		t.Fatalf("History returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var envelope struct {
		Data []dossierdto.DossierSummaryResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(envelope.Data) != 2 {
		t.Errorf("expected 2 summaries for acme.com, got %d", len(envelope.Data))
	}
}
