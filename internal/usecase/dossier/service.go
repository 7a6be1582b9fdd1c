package dossier

import (
	"strings"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/account-intel/errors"
	"github.com/johnquangdev/account-intel/internal/domain/entities"
	"github.com/johnquangdev/account-intel/internal/domain/sources"
	"github.com/johnquangdev/account-intel/internal/usecase/analysis"
	"github.com/johnquangdev/account-intel/internal/usecase/competitive"
	"github.com/johnquangdev/account-intel/internal/usecase/goals"
	"github.com/johnquangdev/account-intel/internal/usecase/merge"
	"github.com/johnquangdev/account-intel/internal/usecase/profile"
	"github.com/johnquangdev/account-intel/internal/usecase/talking"
)

// PipelineVersion tags generated dossiers with the heuristic revision
const PipelineVersion = "v1"

// GenerateInput carries everything the assembler needs: the meeting, the
// account identity, and the already-resolved (possibly empty) source
// record collections. The assembler never fetches data itself.
type GenerateInput struct {
	Meeting        entities.Meeting
	AccountName    string
	AccountDomain  string
	DealStage      string
	DealValue      string
	StageStartDate *time.Time
	Calls          []sources.CallRecord
	Chats          []sources.ChatMessage
	CalendarEvents []sources.CalendarEvent
	Enrichments    map[string]*sources.EnrichmentRecord
}

// Service sequences the pipeline stages in fixed order and maps their
// results into the externally visible dossier.
type Service struct {
	merger      *merge.Merger
	analyzer    *analysis.Analyzer
	profiler    *profile.Profiler
	goalGen     *goals.Generator
	talkingGen  *talking.Generator
	competitive *competitive.Extractor
	logger      *zap.Logger
	now         func() time.Time
}

// NewService wires the pipeline stages together
func NewService(
	merger *merge.Merger,
	analyzer *analysis.Analyzer,
	profiler *profile.Profiler,
	goalGen *goals.Generator,
	talkingGen *talking.Generator,
	extractor *competitive.Extractor,
	logger *zap.Logger,
) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		merger:      merger,
		analyzer:    analyzer,
		profiler:    profiler,
		goalGen:     goalGen,
		talkingGen:  talkingGen,
		competitive: extractor,
		logger:      logger,
		now:         time.Now,
	}
}

// Generate runs merger, analyzer, profiler, goal generator, talking-point
// generator, and competitive extractor strictly in that order, threading
// each stage's output into the next. Empty source collections degrade the
// result; only structurally invalid explicit input fails.
func (s *Service) Generate(in GenerateInput) (*entities.Dossier, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	target := merge.Target{AccountName: in.AccountName, AccountDomain: in.AccountDomain}
	bundle := s.merger.Merge(target, in.Calls, in.Chats, in.CalendarEvents)
	bundle.Account.DealStage = in.DealStage
	bundle.Account.DealValue = in.DealValue

	result := s.analyzer.Analyze(bundle, analysis.Options{StageStartDate: in.StageStartDate})
	bundle.Account.Momentum = result.Momentum
	bundle.Account.DaysInStage = result.DaysInStage
	bundle.Account.Risks = result.Risks

	participants := bundle.ParticipantList()
	for _, p := range participants {
		s.profiler.Profile(p, in.Enrichments[p.Email])
	}
	missing := s.profiler.MissingStakeholders(participants)

	goalList := s.goalGen.Generate(goals.Input{
		Account:      bundle.Account,
		Analysis:     result,
		Participants: participants,
		ActionItems:  bundle.ActionItems,
		MeetingTitle: in.Meeting.Title,
	})

	points := s.talkingGen.Generate(talking.Input{
		Account:      bundle.Account,
		Analysis:     result,
		Participants: participants,
		ActionItems:  bundle.ActionItems,
		Goals:        goalList,
	})

	intel := s.competitive.Extract(bundle.Timeline, in.AccountName)

	d := &entities.Dossier{
		Meeting:              in.Meeting,
		Account:              *bundle.Account,
		ExternalParticipants: s.externalParticipants(participants, in.Meeting.Attendees),
		InternalParticipants: s.internalAttendees(in.Meeting.Attendees),
		MissingStakeholders:  missing,
		ExecutiveSummary:     s.executiveSummary(bundle.Account, result),
		Goals:                goalList,
		TalkingPoints:        points,
		StrategicInsights:    s.strategicInsights(result, participants, points),
		CompetitiveIntel:     *intel,
		Metadata:             s.metadata(entities.GenerationModeFull, in),
	}

	s.logger.Info("dossier generated",
		zap.String("account", in.AccountName),
		zap.String("momentum", string(result.Momentum)),
		zap.Int("health_score", result.HealthScore),
		zap.Int("goals", len(goalList)),
		zap.Int("talking_points", len(points)),
	)
	return d, nil
}

// validateInput rejects structurally invalid explicit arguments with a
// stage-identified error; everything softer is a validator warning.
func validateInput(in GenerateInput) error {
	switch {
	case strings.TrimSpace(in.AccountName) == "":
		return apperrors.ErrInvalidPipelineInput("assembler", "account_name", "account name is required")
	case strings.TrimSpace(in.AccountDomain) == "":
		return apperrors.ErrInvalidPipelineInput("assembler", "account_domain", "account domain is required")
	case !strings.Contains(in.AccountDomain, "."):
		return apperrors.ErrInvalidPipelineInput("assembler", "account_domain", "account domain is not a valid domain")
	}
	return nil
}

// externalParticipants returns the profiled registry, plus minimal entries
// for external meeting attendees the sources never saw.
func (s *Service) externalParticipants(registry []*entities.Participant, attendees []entities.Attendee) []*entities.Participant {
	known := make(map[string]struct{}, len(registry))
	out := make([]*entities.Participant, 0, len(registry))
	for _, p := range registry {
		known[p.Email] = struct{}{}
		out = append(out, p)
	}
	for _, at := range attendees {
		email := entities.NormalizeEmail(at.Email)
		if !strings.Contains(email, "@") || s.merger.IsInternal(email) {
			continue
		}
		if _, ok := known[email]; ok {
			continue
		}
		p := entities.NewParticipant(email)
		p.Name = at.Name
		out = append(out, p)
	}
	return out
}

func (s *Service) internalAttendees(attendees []entities.Attendee) []entities.Attendee {
	var out []entities.Attendee
	for _, at := range attendees {
		if s.merger.IsInternal(at.Email) {
			out = append(out, at)
		}
	}
	return out
}

func (s *Service) metadata(mode entities.GenerationMode, in GenerateInput) entities.GenerationMetadata {
	md := entities.NewGenerationMetadata(mode, s.now())
	md.PipelineVersion = PipelineVersion
	md.SourceCounts = map[string]int{
		"calls":    len(in.Calls),
		"chats":    len(in.Chats),
		"calendar": len(in.CalendarEvents),
	}
	return md
}
