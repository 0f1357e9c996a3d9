package service

import (
	"context"
	"testing"
	"time"

	"marinaops_backend/internal/audit"
	catalogrepo "marinaops_backend/internal/catalog/repository"
	closurerepo "marinaops_backend/internal/closure/repository"
	"marinaops_backend/internal/closure/transport"
	"marinaops_backend/internal/events"
	"marinaops_backend/platform/apperr"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	reports map[uuid.UUID]closurerepo.Report
	scores  map[uuid.UUID]map[uuid.UUID]closurerepo.ScoreRecord
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reports: make(map[uuid.UUID]closurerepo.Report),
		scores:  make(map[uuid.UUID]map[uuid.UUID]closurerepo.ScoreRecord),
	}
}

func (f *fakeRepo) SaveReport(_ context.Context, report closurerepo.Report) (closurerepo.Report, error) {
	existing, ok := f.reports[report.WorkOrderID]
	if ok {
		report.ID = existing.ID
		report.ClosedAt = existing.ClosedAt
	} else {
		report.ID = uuid.New()
		report.ClosedAt = time.Now()
	}
	report.UpdatedAt = time.Now()
	f.reports[report.WorkOrderID] = report
	return report, nil
}

func (f *fakeRepo) GetReport(_ context.Context, _, workOrderID uuid.UUID) (closurerepo.Report, error) {
	report, ok := f.reports[workOrderID]
	if !ok {
		return closurerepo.Report{}, apperr.NotFound("closure report not found")
	}
	return report, nil
}

func (f *fakeRepo) UpsertScores(_ context.Context, records []closurerepo.ScoreRecord) error {
	for _, rec := range records {
		if f.scores[rec.WorkOrderID] == nil {
			f.scores[rec.WorkOrderID] = make(map[uuid.UUID]closurerepo.ScoreRecord)
		}
		f.scores[rec.WorkOrderID][rec.PersonnelID] = rec
	}
	return nil
}

func (f *fakeRepo) ListScoresByWorkOrder(_ context.Context, _, workOrderID uuid.UUID) ([]closurerepo.ScoreRecord, error) {
	out := make([]closurerepo.ScoreRecord, 0)
	for _, rec := range f.scores[workOrderID] {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakeRepo) ListScoresForMonth(_ context.Context, _ uuid.UUID, _ int, _ time.Month) ([]closurerepo.ScoreRecord, error) {
	return nil, nil
}

type fakeWorkOrders struct {
	orders    map[uuid.UUID]WorkOrderInfo
	completed map[uuid.UUID]bool
}

func (f *fakeWorkOrders) InfoForClosure(_ context.Context, _, workOrderID uuid.UUID) (WorkOrderInfo, error) {
	wo, ok := f.orders[workOrderID]
	if !ok {
		return WorkOrderInfo{}, apperr.NotFound("work order not found")
	}
	return wo, nil
}

func (f *fakeWorkOrders) MarkCompleted(_ context.Context, _, workOrderID uuid.UUID) error {
	f.completed[workOrderID] = true
	return nil
}

type fakeJobTypes struct {
	types map[string]JobTypeInfo
}

func (f *fakeJobTypes) ResolveForScoring(_ context.Context, _ uuid.UUID, key string) (JobTypeInfo, error) {
	jt, ok := f.types[key]
	if !ok {
		return JobTypeInfo{}, apperr.Configuration("job type is not configured for this tenant", key)
	}
	return jt, nil
}

type fakeAuditStore struct {
	entries []audit.Entry
}

func (f *fakeAuditStore) Append(_ context.Context, entry audit.Entry) error {
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeAuditStore) ListByWorkOrder(_ context.Context, _, _ uuid.UUID) ([]audit.Entry, error) {
	return f.entries, nil
}

type fixture struct {
	svc        *Service
	repo       *fakeRepo
	workOrders *fakeWorkOrders
	auditStore *fakeAuditStore
}

func newFixture(orders map[uuid.UUID]WorkOrderInfo, types map[string]JobTypeInfo) *fixture {
	log := logger.New("test")
	repo := newFakeRepo()
	workOrders := &fakeWorkOrders{orders: orders, completed: make(map[uuid.UUID]bool)}
	auditStore := &fakeAuditStore{}
	svc := New(
		repo,
		workOrders,
		&fakeJobTypes{types: types},
		audit.NewRecorder(auditStore, log),
		events.NewInMemoryBus(log),
		log,
	)
	return &fixture{svc: svc, repo: repo, workOrders: workOrders, auditStore: auditStore}
}

func TestClosePackageJobScoresTeam(t *testing.T) {
	tenantID := uuid.New()
	actorID := uuid.New()
	workOrderID := uuid.New()
	responsible := uuid.New()
	support := uuid.New()

	f := newFixture(
		map[uuid.UUID]WorkOrderInfo{
			workOrderID: {
				ID:         workOrderID,
				JobTypeKey: "paket",
				Team: []TeamMember{
					{PersonnelID: responsible, Role: RoleResponsible},
					{PersonnelID: support, Role: RoleSupport},
				},
			},
		},
		map[string]JobTypeInfo{
			"paket": {
				Key:        "paket",
				Multiplier: 1.0,
				RequiredFields: []string{
					catalogrepo.FieldUnitIdentification,
					catalogrepo.FieldPhotoEvidence,
					catalogrepo.FieldLocationConfirmation,
				},
			},
		},
	)

	// Two of the three required fields completed.
	resp, err := f.svc.Close(context.Background(), tenantID, actorID, workOrderID, transport.CloseWorkOrderRequest{
		UnitIdentification: true,
		PhotoEvidence:      true,
	})
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if got := resp.Completeness; got < 0.666 || got > 0.667 {
		t.Fatalf("completeness = %v, want 2/3", got)
	}
	if len(resp.Scores) != 2 {
		t.Fatalf("got %d score records, want 2", len(resp.Scores))
	}

	byPerson := make(map[uuid.UUID]transport.PersonnelScoreResponse)
	for _, score := range resp.Scores {
		byPerson[score.PersonnelID] = score
	}
	// Responsible: 40 + 60*(2/3) = 80. Support: flat 80.
	if got := byPerson[responsible].FinalScore; got != 80 {
		t.Fatalf("responsible score = %d, want 80", got)
	}
	if got := byPerson[support].FinalScore; got != 80 {
		t.Fatalf("support score = %d, want 80", got)
	}
	if !f.workOrders.completed[workOrderID] {
		t.Fatal("work order was not marked completed")
	}
}

func TestCloseAppliesMultiplierAndBonus(t *testing.T) {
	tenantID := uuid.New()
	workOrderID := uuid.New()
	responsible := uuid.New()

	f := newFixture(
		map[uuid.UUID]WorkOrderInfo{
			workOrderID: {
				ID:         workOrderID,
				JobTypeKey: "motor-revizyon",
				Team: []TeamMember{
					{PersonnelID: responsible, Role: RoleResponsible, Bonus: true},
				},
			},
		},
		map[string]JobTypeInfo{
			"motor-revizyon": {Key: "motor-revizyon", Multiplier: 1.5},
		},
	)

	// No required fields: completeness is 1.0, raw 100, final 100*1.5+15.
	resp, err := f.svc.Close(context.Background(), tenantID, uuid.New(), workOrderID, transport.CloseWorkOrderRequest{})
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if got := resp.Scores[0].FinalScore; got != 165 {
		t.Fatalf("final score = %d, want 165", got)
	}
}

func TestCloseRejectsEmptyTeamBeforeScoring(t *testing.T) {
	tenantID := uuid.New()
	workOrderID := uuid.New()

	f := newFixture(
		map[uuid.UUID]WorkOrderInfo{
			workOrderID: {ID: workOrderID, JobTypeKey: "paket"},
		},
		map[string]JobTypeInfo{
			"paket": {Key: "paket", Multiplier: 1.0},
		},
	)

	_, err := f.svc.Close(context.Background(), tenantID, uuid.New(), workOrderID, transport.CloseWorkOrderRequest{})
	if apperr.GetKind(err) != apperr.KindValidation {
		t.Fatalf("Close() error kind = %v, want validation", apperr.GetKind(err))
	}
	if len(f.repo.scores) != 0 {
		t.Fatal("scores were written for an unstaffed work order")
	}
	if len(f.repo.reports) != 0 {
		t.Fatal("report was saved for an unstaffed work order")
	}
}

func TestCloseUnknownJobTypeIsConfigurationError(t *testing.T) {
	tenantID := uuid.New()
	workOrderID := uuid.New()

	f := newFixture(
		map[uuid.UUID]WorkOrderInfo{
			workOrderID: {
				ID:         workOrderID,
				JobTypeKey: "ghost-type",
				Team:       []TeamMember{{PersonnelID: uuid.New(), Role: RoleResponsible}},
			},
		},
		map[string]JobTypeInfo{},
	)

	_, err := f.svc.Close(context.Background(), tenantID, uuid.New(), workOrderID, transport.CloseWorkOrderRequest{})
	if apperr.GetKind(err) != apperr.KindConfiguration {
		t.Fatalf("Close() error kind = %v, want configuration", apperr.GetKind(err))
	}
}

func TestRecomputeOverwritesScoresAndAudits(t *testing.T) {
	tenantID := uuid.New()
	actorID := uuid.New()
	workOrderID := uuid.New()
	responsible := uuid.New()

	orders := map[uuid.UUID]WorkOrderInfo{
		workOrderID: {
			ID:         workOrderID,
			JobTypeKey: "paket",
			Team:       []TeamMember{{PersonnelID: responsible, Role: RoleResponsible}},
		},
	}
	types := map[string]JobTypeInfo{
		"paket": {
			Key:            "paket",
			Multiplier:     1.0,
			RequiredFields: []string{catalogrepo.FieldUnitIdentification, catalogrepo.FieldPhotoEvidence},
		},
	}
	f := newFixture(orders, types)

	_, err := f.svc.Close(context.Background(), tenantID, actorID, workOrderID, transport.CloseWorkOrderRequest{
		UnitIdentification: true,
	})
	if err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	// 1 of 2 required: raw 70, final 70.
	if got := f.repo.scores[workOrderID][responsible].FinalScore; got != 70 {
		t.Fatalf("initial score = %d, want 70", got)
	}

	// Catalog correction: the job type no longer requires photo evidence.
	types["paket"] = JobTypeInfo{
		Key:            "paket",
		Multiplier:     1.0,
		RequiredFields: []string{catalogrepo.FieldUnitIdentification},
	}

	resp, err := f.svc.Recompute(context.Background(), tenantID, actorID, workOrderID)
	if err != nil {
		t.Fatalf("Recompute() error = %v", err)
	}
	if got := resp.Scores[0].FinalScore; got != 100 {
		t.Fatalf("recomputed score = %d, want 100", got)
	}
	if got := len(f.repo.scores[workOrderID]); got != 1 {
		t.Fatalf("score records after recompute = %d, want 1 (upsert, not append)", got)
	}

	found := false
	for _, entry := range f.auditStore.entries {
		if entry.Action == audit.ActionScoreRecompute {
			found = true
		}
	}
	if !found {
		t.Fatal("recompute did not write a score_recompute audit entry")
	}
}

func TestRecomputeWithoutReportIsNotFound(t *testing.T) {
	f := newFixture(map[uuid.UUID]WorkOrderInfo{}, map[string]JobTypeInfo{})

	_, err := f.svc.Recompute(context.Background(), uuid.New(), uuid.New(), uuid.New())
	if apperr.GetKind(err) != apperr.KindNotFound {
		t.Fatalf("Recompute() error kind = %v, want not found", apperr.GetKind(err))
	}
}
