package service

import (
	"context"
	"sort"
	"time"

	"marinaops_backend/internal/audit"
	"marinaops_backend/internal/catalog/repository"
	closurerepo "marinaops_backend/internal/closure/repository"
	"marinaops_backend/internal/closure/transport"
	"marinaops_backend/internal/events"
	"marinaops_backend/platform/apperr"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Assignment roles recognized when scoring.
const (
	RoleResponsible = "responsible"
	RoleSupport     = "support"
)

// recomputeConcurrency bounds parallel work-order recomputation in a batch.
const recomputeConcurrency = 4

// TeamMember is one assignee of a work order as seen by the closer.
type TeamMember struct {
	PersonnelID uuid.UUID
	Role        string
	Bonus       bool
}

// WorkOrderInfo is the slice of a work order the closer needs.
type WorkOrderInfo struct {
	ID         uuid.UUID
	JobTypeKey string
	Team       []TeamMember
}

// WorkOrderSource supplies work order data and marks orders completed.
// Implemented by an adapter over the workorders module.
type WorkOrderSource interface {
	InfoForClosure(ctx context.Context, tenantID, workOrderID uuid.UUID) (WorkOrderInfo, error)
	MarkCompleted(ctx context.Context, tenantID, workOrderID uuid.UUID) error
}

// JobTypeInfo carries the scoring parameters of a job type.
type JobTypeInfo struct {
	Key            string
	Multiplier     float64
	RequiredFields []string
}

// JobTypeSource resolves a job type key into scoring parameters.
// Implemented by an adapter over the catalog module; an unconfigured key
// must surface as a configuration error, never a default.
type JobTypeSource interface {
	ResolveForScoring(ctx context.Context, tenantID uuid.UUID, key string) (JobTypeInfo, error)
}

// Service orchestrates work order closure: it evaluates the closure
// report against the job type's required fields, computes a score for
// every assignee, and persists both atomically enough to recompute later.
type Service struct {
	repo       closurerepo.Repository
	workOrders WorkOrderSource
	jobTypes   JobTypeSource
	auditor    *audit.Recorder
	bus        events.Bus
	log        *logger.Logger
}

// New creates a new closure service.
func New(repo closurerepo.Repository, workOrders WorkOrderSource, jobTypes JobTypeSource, auditor *audit.Recorder, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:       repo,
		workOrders: workOrders,
		jobTypes:   jobTypes,
		auditor:    auditor,
		bus:        bus,
		log:        log,
	}
}

// Close accepts a closure report for a work order, computes scores for the
// assigned team, and marks the order completed. The team is validated
// before any scoring: closing an unstaffed order is a caller mistake that
// must not produce an empty score run.
func (s *Service) Close(ctx context.Context, tenantID, actorID, workOrderID uuid.UUID, req transport.CloseWorkOrderRequest) (transport.ClosureResponse, error) {
	wo, err := s.workOrders.InfoForClosure(ctx, tenantID, workOrderID)
	if err != nil {
		return transport.ClosureResponse{}, err
	}
	if len(wo.Team) == 0 {
		return transport.ClosureResponse{}, apperr.Validation("work order has no assigned team")
	}

	jt, err := s.jobTypes.ResolveForScoring(ctx, tenantID, wo.JobTypeKey)
	if err != nil {
		return transport.ClosureResponse{}, err
	}

	fields := checklistFields(req)
	report, err := s.repo.SaveReport(ctx, closurerepo.Report{
		TenantID:    tenantID,
		WorkOrderID: workOrderID,
		Fields:      fields,
		Note:        req.Note,
		ClosedByID:  actorID,
	})
	if err != nil {
		return transport.ClosureResponse{}, err
	}

	ratio := Completeness(fields, jt.RequiredFields)
	records := s.scoreTeam(tenantID, workOrderID, wo.Team, ratio, jt.Multiplier)
	if err := s.repo.UpsertScores(ctx, records); err != nil {
		return transport.ClosureResponse{}, err
	}

	if err := s.workOrders.MarkCompleted(ctx, tenantID, workOrderID); err != nil {
		return transport.ClosureResponse{}, err
	}

	for _, rec := range records {
		s.log.ScoreComputed(rec.WorkOrderID.String(), rec.PersonnelID.String(), rec.FinalScore)
	}

	s.bus.Publish(ctx, events.WorkOrderClosed{
		BaseEvent:   events.NewBaseEvent(),
		WorkOrderID: workOrderID,
		TenantID:    tenantID,
		ClosedByID:  actorID,
		JobTypeKey:  jt.Key,
		TeamSize:    len(wo.Team),
		ClosedAt:    report.ClosedAt,
	})

	return toClosureResponse(workOrderID, ratio, report.ClosedAt, records), nil
}

// Recompute re-runs scoring for an already closed work order using the
// stored closure report and the current team and job type configuration.
// Previous final scores are preserved in the audit trail.
func (s *Service) Recompute(ctx context.Context, tenantID, actorID, workOrderID uuid.UUID) (transport.ClosureResponse, error) {
	report, err := s.repo.GetReport(ctx, tenantID, workOrderID)
	if err != nil {
		return transport.ClosureResponse{}, err
	}

	wo, err := s.workOrders.InfoForClosure(ctx, tenantID, workOrderID)
	if err != nil {
		return transport.ClosureResponse{}, err
	}
	if len(wo.Team) == 0 {
		return transport.ClosureResponse{}, apperr.Validation("work order has no assigned team")
	}

	jt, err := s.jobTypes.ResolveForScoring(ctx, tenantID, wo.JobTypeKey)
	if err != nil {
		return transport.ClosureResponse{}, err
	}

	previous, err := s.repo.ListScoresByWorkOrder(ctx, tenantID, workOrderID)
	if err != nil {
		return transport.ClosureResponse{}, err
	}

	ratio := Completeness(report.Fields, jt.RequiredFields)
	records := s.scoreTeam(tenantID, workOrderID, wo.Team, ratio, jt.Multiplier)
	if err := s.repo.UpsertScores(ctx, records); err != nil {
		return transport.ClosureResponse{}, err
	}

	s.auditor.ScoresRecomputed(ctx, tenantID, actorID, workOrderID, audit.ScoreRecompute{
		Previous: scoreMap(previous),
		Current:  scoreMap(records),
	})

	s.bus.Publish(ctx, events.ScoresRecomputed{
		BaseEvent:     events.NewBaseEvent(),
		WorkOrderID:   workOrderID,
		TenantID:      tenantID,
		TriggeredByID: actorID,
	})

	return toClosureResponse(workOrderID, ratio, report.ClosedAt, records), nil
}

// RecomputeBatch recomputes several work orders concurrently. Failures are
// collected rather than aborting the batch.
func (s *Service) RecomputeBatch(ctx context.Context, tenantID, actorID uuid.UUID, workOrderIDs []uuid.UUID) (transport.RecomputeBatchResponse, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(recomputeConcurrency)

	results := make([]error, len(workOrderIDs))
	for i, id := range workOrderIDs {
		g.Go(func() error {
			_, err := s.Recompute(gctx, tenantID, actorID, id)
			results[i] = err
			return nil
		})
	}
	// Goroutines never return errors, so Wait only observes ctx cancellation.
	if err := g.Wait(); err != nil {
		return transport.RecomputeBatchResponse{}, err
	}

	resp := transport.RecomputeBatchResponse{}
	for i, err := range results {
		if err != nil {
			s.log.Error("batch recompute failed for work order", "work_order", workOrderIDs[i], "error", err)
			resp.Failed = append(resp.Failed, workOrderIDs[i])
			continue
		}
		resp.Recomputed++
	}
	return resp, nil
}

// GetReport returns the stored closure report for a work order.
func (s *Service) GetReport(ctx context.Context, tenantID, workOrderID uuid.UUID) (transport.ReportResponse, error) {
	report, err := s.repo.GetReport(ctx, tenantID, workOrderID)
	if err != nil {
		return transport.ReportResponse{}, err
	}
	return transport.ReportResponse{
		WorkOrderID: report.WorkOrderID,
		Fields:      report.Fields,
		Note:        report.Note,
		ClosedByID:  report.ClosedByID,
		ClosedAt:    report.ClosedAt,
	}, nil
}

// GetScores returns the score records for a closed work order.
func (s *Service) GetScores(ctx context.Context, tenantID, workOrderID uuid.UUID) ([]transport.PersonnelScoreResponse, error) {
	records, err := s.repo.ListScoresByWorkOrder(ctx, tenantID, workOrderID)
	if err != nil {
		return nil, err
	}
	return toScoreResponses(records), nil
}

func (s *Service) scoreTeam(tenantID, workOrderID uuid.UUID, team []TeamMember, ratio, multiplier float64) []closurerepo.ScoreRecord {
	records := make([]closurerepo.ScoreRecord, 0, len(team))
	for _, member := range team {
		raw := SupportRaw()
		if member.Role == RoleResponsible {
			raw = ResponsibleRaw(ratio)
		}
		records = append(records, closurerepo.ScoreRecord{
			TenantID:     tenantID,
			WorkOrderID:  workOrderID,
			PersonnelID:  member.PersonnelID,
			Role:         member.Role,
			Bonus:        member.Bonus,
			Completeness: ratio,
			Multiplier:   multiplier,
			FinalScore:   FinalScore(raw, multiplier, member.Bonus),
		})
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].PersonnelID.String() < records[j].PersonnelID.String()
	})
	return records
}

func checklistFields(req transport.CloseWorkOrderRequest) map[string]bool {
	return map[string]bool{
		repository.FieldUnitIdentification:   req.UnitIdentification,
		repository.FieldPhotoEvidence:        req.PhotoEvidence,
		repository.FieldLocationConfirmation: req.LocationConfirmation,
		repository.FieldConsumablesLogged:    req.ConsumablesLogged,
		repository.FieldLaborHoursLogged:     req.LaborHoursLogged,
		repository.FieldSubcontractorInfo:    req.SubcontractorInfo,
		repository.FieldStockMaterialsLogged: req.StockMaterialsLogged,
	}
}

func scoreMap(records []closurerepo.ScoreRecord) map[string]int {
	out := make(map[string]int, len(records))
	for _, rec := range records {
		out[rec.PersonnelID.String()] = rec.FinalScore
	}
	return out
}

func toScoreResponses(records []closurerepo.ScoreRecord) []transport.PersonnelScoreResponse {
	out := make([]transport.PersonnelScoreResponse, 0, len(records))
	for _, rec := range records {
		out = append(out, transport.PersonnelScoreResponse{
			PersonnelID: rec.PersonnelID,
			Role:        rec.Role,
			Bonus:       rec.Bonus,
			Multiplier:  rec.Multiplier,
			FinalScore:  rec.FinalScore,
		})
	}
	return out
}

func toClosureResponse(workOrderID uuid.UUID, ratio float64, closedAt time.Time, records []closurerepo.ScoreRecord) transport.ClosureResponse {
	return transport.ClosureResponse{
		WorkOrderID:  workOrderID,
		Completeness: ratio,
		ClosedAt:     closedAt,
		Scores:       toScoreResponses(records),
	}
}
