package handler

import (
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	apperrors "github.com/johnquangdev/account-intel/errors"
	dossierdto "github.com/johnquangdev/account-intel/internal/adapter/dto/dossier"
	"github.com/johnquangdev/account-intel/internal/adapter/presenter"
	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/repositories"
	"github.com/johnquangdev/account-intel/internal/domain/sources"
	"github.com/johnquangdev/account-intel/internal/infrastructure/cache"
	"github.com/johnquangdev/account-intel/internal/infrastructure/metrics"
	"github.com/johnquangdev/account-intel/internal/usecase/collect"
	dossierUsecase "github.com/johnquangdev/account-intel/internal/usecase/dossier"
	"github.com/johnquangdev/account-intel/pkg/config"
)

// Dossier handles dossier-related HTTP requests
type Dossier struct {
	service   *dossierUsecase.Service
	collector *collect.Collector
	repo      repositories.DossierRepository
	cache     cache.Store
	uploader  sources.Uploader
	metrics   *metrics.Manager
	cfg       *config.Config
	logger    *zap.Logger
}

// NewDossierHandler creates a new dossier handler. Cache, uploader, and
// metrics may be nil; the handler degrades to direct repository access.
func NewDossierHandler(
	service *dossierUsecase.Service,
	collector *collect.Collector,
	repo repositories.DossierRepository,
	cacheStore cache.Store,
	uploader sources.Uploader,
	metricsManager *metrics.Manager,
	cfg *config.Config,
	logger *zap.Logger,
) *Dossier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dossier{
		service:   service,
		collector: collector,
		repo:      repo,
		cache:     cacheStore,
		uploader:  uploader,
		metrics:   metricsManager,
		cfg:       cfg,
		logger:    logger,
	}
}

// Generate handles POST /dossiers
func (h *Dossier) Generate(c echo.Context) error {
	var req dossierdto.GenerateDossierRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument(err.Error()))
	}

	ctx := c.Request().Context()
	meeting := toMeeting(req.Meeting)
	started := time.Now()

	var (
		d   *entities.Dossier
		err error
	)
	if req.Mode == string(entities.GenerationModeQuick) {
		d = h.service.Quick(meeting, req.AccountName, req.AccountDomain)
	} else {
		in := dossierUsecase.GenerateInput{
			Meeting:        meeting,
			AccountName:    req.AccountName,
			AccountDomain:  req.AccountDomain,
			DealStage:      req.DealStage,
			DealValue:      req.DealValue,
			StageStartDate: req.StageStartDate,
		}

		if req.Sources != nil {
			in.Calls = req.Sources.Calls
			in.Chats = req.Sources.ChatMessages
			in.CalendarEvents = req.Sources.CalendarEvents
		} else if h.collector != nil {
			collected := h.collector.Collect(ctx, req.AccountName, req.AccountDomain, collect.Options{
				LookbackDays:  h.cfg.Pipeline.LookbackDays,
				SourceTimeout: h.cfg.Pipeline.SourceTimeout,
			})
			in.Calls = collected.Calls
			in.Chats = collected.Chats
			in.CalendarEvents = collected.Events
			in.Enrichments = h.collector.Enrich(ctx, externalEmails(meeting, h.cfg.Pipeline.InternalDomains), h.cfg.Pipeline.EnrichTimeout)
		}

		if len(in.Calls)+len(in.Chats)+len(in.CalendarEvents) == 0 {
			h.logger.Warn("no source data available, degrading to quick dossier",
				zap.String("account", req.AccountDomain))
			if h.metrics != nil {
				h.metrics.RecordDegradedFallback()
			}
			d = h.service.Quick(meeting, req.AccountName, req.AccountDomain)
		} else if d, err = h.service.Generate(in); err != nil {
			var appErr apperrors.AppError
			if stdErrors.As(err, &appErr) && appErr.Code == apperrors.ErrorCode_PIPELINE_INVALID_INPUT {
				if h.metrics != nil {
					h.metrics.RecordGenerationError()
				}
				return HandleError(h.logger, c, err)
			}
			h.logger.Warn("pipeline failed, degrading to quick dossier",
				zap.String("account", req.AccountDomain),
				zap.Error(err))
			if h.metrics != nil {
				h.metrics.RecordGenerationError()
				h.metrics.RecordDegradedFallback()
			}
			d = h.service.Quick(meeting, req.AccountName, req.AccountDomain)
		}
	}

	if h.metrics != nil {
		h.metrics.RecordGeneration(string(d.Metadata.Mode), time.Since(started))
	}

	resp := &dossierdto.GenerateDossierResponse{Dossier: d}
	if result := dossierUsecase.Validate(d); !result.IsValid {
		resp.Warnings = result.Issues
	}

	if archiveURL, saveErr := h.persist(c, d, req.AccountName, req.AccountDomain); saveErr != nil {
		h.logger.Warn("failed to persist dossier record",
			zap.String("account", req.AccountDomain),
			zap.Error(saveErr))
	} else {
		resp.ArchiveURL = archiveURL
	}

	return HandleSuccess(h.logger, c, http.StatusCreated, resp)
}

// GetLatest handles GET /dossiers/:account
func (h *Dossier) GetLatest(c echo.Context) error {
	account := strings.ToLower(c.Param("account"))
	if account == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("account domain is required"))
	}

	ctx := c.Request().Context()

	if h.cache != nil {
		if payload, ok, err := h.cache.Get(ctx, cacheKey(account)); err == nil && ok {
			var record entities.DossierRecord
			if json.Unmarshal(payload, &record) == nil {
				// a cache entry that no longer decodes falls through to the store
				if resp, decodeErr := presenter.ToStoredDossierResponse(&record, true); decodeErr == nil {
					if h.metrics != nil {
						h.metrics.RecordCacheHit()
					}
					return HandleSuccess(h.logger, c, http.StatusOK, resp)
				}
			}
		}
		if h.metrics != nil {
			h.metrics.RecordCacheMiss()
		}
	}

	record, err := h.repo.FindLatestByAccount(ctx, account)
	if err != nil {
		if err == entities.ErrDossierRecordNotFound {
			return HandleError(h.logger, c, apperrors.ErrDossierNotFound(account))
		}
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("find latest dossier", err))
	}

	if h.cache != nil {
		if payload, err := json.Marshal(record); err == nil {
			if err := h.cache.Set(ctx, cacheKey(account), payload, h.cfg.Redis.TTL); err != nil {
				h.logger.Warn("failed to cache dossier", zap.String("account", account), zap.Error(err))
			}
		}
	}

	resp, err := presenter.ToStoredDossierResponse(record, false)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, http.StatusOK, resp)
}

// History handles GET /dossiers/:account/history
func (h *Dossier) History(c echo.Context) error {
	account := strings.ToLower(c.Param("account"))
	if account == "" {
		return HandleError(h.logger, c, apperrors.ErrInvalidArgument("account domain is required"))
	}

	var req dossierdto.ListDossiersRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, apperrors.ErrInvalidPayload())
	}

	records, err := h.repo.ListByAccount(c.Request().Context(), account, req.Limit)
	if err != nil {
		return HandleError(h.logger, c, apperrors.ErrDBQueryFailed("list dossiers", err))
	}

	return HandleSuccess(h.logger, c, http.StatusOK, presenter.ToDossierListResponse(records))
}

// persist stores the record, refreshes the cache, and archives the payload
func (h *Dossier) persist(c echo.Context, d *entities.Dossier, accountName, accountDomain string) (string, error) {
	if h.repo == nil {
		return "", nil
	}
	ctx := c.Request().Context()

	payload, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("failed to marshal dossier: %w", err)
	}

	record := &entities.DossierRecord{
		ID:              uuid.New(),
		AccountName:     accountName,
		AccountDomain:   strings.ToLower(accountDomain),
		Mode:            string(d.Metadata.Mode),
		PipelineVersion: d.Metadata.PipelineVersion,
		Payload:         datatypes.JSON(payload),
		GeneratedAt:     d.Metadata.GeneratedAt,
	}

	if h.uploader != nil {
		name := fmt.Sprintf("dossiers/%s/%s.json", record.AccountDomain, d.Metadata.GenerationID)
		url, upErr := h.uploader.Upload(ctx, name, payload)
		if upErr != nil {
			h.logger.Warn("failed to archive dossier", zap.String("object", name), zap.Error(upErr))
		} else {
			record.ArchiveURL = url
		}
	}

	if err := h.repo.Save(ctx, record); err != nil {
		return "", err
	}

	if h.cache != nil {
		if cached, err := json.Marshal(record); err == nil {
			if err := h.cache.Set(ctx, cacheKey(record.AccountDomain), cached, h.cfg.Redis.TTL); err != nil {
				h.logger.Warn("failed to cache dossier", zap.String("account", record.AccountDomain), zap.Error(err))
			}
		}
	}

	return record.ArchiveURL, nil
}

func cacheKey(accountDomain string) string {
	return "dossier:latest:" + accountDomain
}

func toMeeting(req dossierdto.MeetingRequest) entities.Meeting {
	meeting := entities.Meeting{
		Title:           req.Title,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
	}
	for _, a := range req.Attendees {
		meeting.Attendees = append(meeting.Attendees, entities.Attendee{Email: a.Email, Name: a.Name})
	}
	return meeting
}

// externalEmails picks the attendee emails outside the seller's domains
// for enrichment lookups
func externalEmails(meeting entities.Meeting, internalDomains []string) []string {
	internal := make(map[string]struct{}, len(internalDomains))
	for _, d := range internalDomains {
		internal[strings.ToLower(d)] = struct{}{}
	}

	var out []string
	for _, a := range meeting.Attendees {
		email := entities.NormalizeEmail(a.Email)
		if !strings.Contains(email, "@") {
			continue
		}
		if _, ok := internal[entities.EmailDomain(email)]; ok {
			continue
		}
		out = append(out, email)
	}
	return out
}
