package service

import (
	"context"
	"time"

	"marinaops_backend/internal/events"
	"marinaops_backend/internal/leaderboard/cache"
	"marinaops_backend/internal/leaderboard/repository"
	"marinaops_backend/internal/leaderboard/transport"
	"marinaops_backend/platform/apperr"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
)

// ScoreSource supplies the closure scores for a month. Implemented by an
// adapter over the closure module.
type ScoreSource interface {
	ScoresForMonth(ctx context.Context, tenantID uuid.UUID, year, month int) ([]ScoreInput, error)
}

// Service provides monthly performance aggregation: evaluation intake,
// leaderboard publication, and cached reads.
type Service struct {
	repo   repository.Repository
	scores ScoreSource
	cache  *cache.Cache
	bus    events.Bus
	log    *logger.Logger
}

// New creates a new leaderboard service. cache may be nil when Redis is
// not configured; reads then always hit the database.
func New(repo repository.Repository, scores ScoreSource, boardCache *cache.Cache, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:   repo,
		scores: scores,
		cache:  boardCache,
		bus:    bus,
		log:    log,
	}
}

// SubmitEvaluation upserts the monthly human assessments for a member.
func (s *Service) SubmitEvaluation(ctx context.Context, tenantID, actorID uuid.UUID, req transport.SubmitEvaluationRequest) (transport.EvaluationResponse, error) {
	eval, err := s.repo.SaveEvaluation(ctx, repository.SaveEvaluationParams{
		TenantID:        tenantID,
		PersonnelID:     req.PersonnelID,
		Year:            req.Year,
		Month:           req.Month,
		SupervisorScore: req.SupervisorScore,
		ForemanRating:   req.ForemanRating,
		EvaluatedByID:   actorID,
	})
	if err != nil {
		return transport.EvaluationResponse{}, err
	}

	// The period may already be published; invalidate so stale composites
	// are not served between now and the next aggregation run.
	if s.cache != nil {
		s.cache.InvalidateMonth(ctx, tenantID, req.Year, req.Month)
	}

	return transport.EvaluationResponse{
		ID:              eval.ID,
		PersonnelID:     eval.PersonnelID,
		Year:            eval.Year,
		Month:           eval.Month,
		SupervisorScore: eval.SupervisorScore,
		ForemanRating:   eval.ForemanRating,
	}, nil
}

// PublishMonth aggregates the month's closure scores and evaluations into
// a ranked leaderboard and persists it, replacing any earlier publication
// for the same period.
func (s *Service) PublishMonth(ctx context.Context, tenantID uuid.UUID, year, month int) (transport.PublishResponse, error) {
	scores, err := s.scores.ScoresForMonth(ctx, tenantID, year, month)
	if err != nil {
		return transport.PublishResponse{}, err
	}

	evaluations, err := s.repo.ListEvaluations(ctx, tenantID, year, month)
	if err != nil {
		return transport.PublishResponse{}, err
	}
	evalInputs := make([]EvaluationInput, 0, len(evaluations))
	for _, e := range evaluations {
		evalInputs = append(evalInputs, EvaluationInput{
			PersonnelID:     e.PersonnelID,
			SupervisorScore: e.SupervisorScore,
			ForemanRating:   e.ForemanRating,
		})
	}

	ranked := Aggregate(scores, evalInputs)
	entries := make([]repository.Entry, 0, len(ranked))
	for _, r := range ranked {
		entries = append(entries, repository.Entry{
			TenantID:      tenantID,
			PersonnelID:   r.PersonnelID,
			Year:          year,
			Month:         month,
			IndividualAvg: r.IndividualAvg,
			SupervisorAvg: r.SupervisorAvg,
			ForemanRating: r.ForemanRating,
			Composite:     r.Composite,
			Rank:          r.Rank,
			Badge:         r.Badge,
			JobsClosed:    r.JobsClosed,
		})
	}
	if err := s.repo.ReplaceEntries(ctx, tenantID, year, month, entries); err != nil {
		return transport.PublishResponse{}, err
	}

	if s.cache != nil {
		s.cache.InvalidateMonth(ctx, tenantID, year, month)
	}

	s.log.LeaderboardPublished(year, month, len(ranked))
	s.bus.Publish(ctx, events.LeaderboardPublished{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  tenantID,
		Year:      year,
		Month:     month,
		Ranked:    len(ranked),
	})

	return transport.PublishResponse{Year: year, Month: month, Ranked: len(ranked)}, nil
}

// GetMonth returns the published leaderboard for a month.
func (s *Service) GetMonth(ctx context.Context, tenantID uuid.UUID, year, month int) (transport.MonthResponse, error) {
	if s.cache != nil {
		var cached transport.MonthResponse
		if s.cache.GetMonth(ctx, tenantID, year, month, &cached) {
			return cached, nil
		}
	}

	entries, err := s.repo.ListEntries(ctx, tenantID, year, month)
	if err != nil {
		return transport.MonthResponse{}, err
	}
	if len(entries) == 0 {
		return transport.MonthResponse{}, apperr.NotFound("no leaderboard published for this period")
	}

	resp := transport.MonthResponse{
		Year:        year,
		Month:       month,
		PublishedAt: entries[0].PublishedAt,
		Entries:     make([]transport.EntryResponse, 0, len(entries)),
	}
	for _, e := range entries {
		resp.Entries = append(resp.Entries, transport.EntryResponse{
			PersonnelID:   e.PersonnelID,
			Rank:          e.Rank,
			Badge:         e.Badge,
			Composite:     e.Composite,
			IndividualAvg: e.IndividualAvg,
			SupervisorAvg: e.SupervisorAvg,
			ForemanRating: e.ForemanRating,
			JobsClosed:    e.JobsClosed,
		})
	}

	if s.cache != nil {
		s.cache.SetMonth(ctx, tenantID, year, month, resp)
	}
	return resp, nil
}

// GetYear rolls all published months of a year into a yearly standing.
func (s *Service) GetYear(ctx context.Context, tenantID uuid.UUID, year int) (transport.YearResponse, error) {
	if s.cache != nil {
		var cached transport.YearResponse
		if s.cache.GetYear(ctx, tenantID, year, &cached) {
			return cached, nil
		}
	}

	entries, err := s.repo.ListEntriesForYear(ctx, tenantID, year)
	if err != nil {
		return transport.YearResponse{}, err
	}
	if len(entries) == 0 {
		return transport.YearResponse{}, apperr.NotFound("no leaderboard published for this year")
	}

	months := make([]YearInput, 0, len(entries))
	for _, e := range entries {
		months = append(months, YearInput{
			PersonnelID: e.PersonnelID,
			Composite:   e.Composite,
			Badge:       e.Badge,
			JobsClosed:  e.JobsClosed,
		})
	}

	ranked := AggregateYear(months)
	resp := transport.YearResponse{
		Year:    year,
		Entries: make([]transport.YearEntryResponse, 0, len(ranked)),
	}
	for _, r := range ranked {
		resp.Entries = append(resp.Entries, transport.YearEntryResponse{
			PersonnelID:    r.PersonnelID,
			Rank:           r.Rank,
			TotalComposite: r.TotalComposite,
			MonthsRanked:   r.MonthsRanked,
			Gold:           r.Gold,
			Silver:         r.Silver,
			Bronze:         r.Bronze,
			JobsClosed:     r.JobsClosed,
		})
	}

	if s.cache != nil {
		s.cache.SetYear(ctx, tenantID, year, resp)
	}
	return resp, nil
}

// PublishPreviousMonth aggregates the month before now. Used by the
// scheduled monthly job.
func (s *Service) PublishPreviousMonth(ctx context.Context, tenantID uuid.UUID, now time.Time) (transport.PublishResponse, error) {
	// Normalize through the first of the month: AddDate(0, -1, 0) on
	// January 31st would land in the same month again.
	previous := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)
	return s.PublishMonth(ctx, tenantID, previous.Year(), int(previous.Month()))
}
