package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"marinaops_backend/internal/events"
	"marinaops_backend/internal/leaderboard/repository"
	"marinaops_backend/internal/leaderboard/transport"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
)

type fakeRepo struct {
	evaluations map[string][]repository.Evaluation
	entries     map[string][]repository.Entry
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		evaluations: make(map[string][]repository.Evaluation),
		entries:     make(map[string][]repository.Entry),
	}
}

func periodKey(tenantID uuid.UUID, year, month int) string {
	return fmt.Sprintf("%s/%d-%d", tenantID, year, month)
}

func (f *fakeRepo) SaveEvaluation(_ context.Context, params repository.SaveEvaluationParams) (repository.Evaluation, error) {
	key := periodKey(params.TenantID, params.Year, params.Month)
	eval := repository.Evaluation{
		ID:              uuid.New(),
		TenantID:        params.TenantID,
		PersonnelID:     params.PersonnelID,
		Year:            params.Year,
		Month:           params.Month,
		SupervisorScore: params.SupervisorScore,
		ForemanRating:   params.ForemanRating,
		EvaluatedByID:   params.EvaluatedByID,
	}
	existing := f.evaluations[key]
	for i, e := range existing {
		if e.PersonnelID == params.PersonnelID {
			eval.ID = e.ID
			existing[i] = eval
			return eval, nil
		}
	}
	f.evaluations[key] = append(existing, eval)
	return eval, nil
}

func (f *fakeRepo) ListEvaluations(_ context.Context, tenantID uuid.UUID, year, month int) ([]repository.Evaluation, error) {
	return f.evaluations[periodKey(tenantID, year, month)], nil
}

func (f *fakeRepo) ReplaceEntries(_ context.Context, tenantID uuid.UUID, year, month int, entries []repository.Entry) error {
	key := periodKey(tenantID, year, month)
	replaced := make([]repository.Entry, 0, len(entries))
	for _, e := range entries {
		e.ID = uuid.New()
		e.PublishedAt = time.Now()
		replaced = append(replaced, e)
	}
	f.entries[key] = replaced
	return nil
}

func (f *fakeRepo) ListEntries(_ context.Context, tenantID uuid.UUID, year, month int) ([]repository.Entry, error) {
	return f.entries[periodKey(tenantID, year, month)], nil
}

func (f *fakeRepo) ListEntriesForYear(_ context.Context, tenantID uuid.UUID, year int) ([]repository.Entry, error) {
	out := make([]repository.Entry, 0)
	for month := 1; month <= 12; month++ {
		out = append(out, f.entries[periodKey(tenantID, year, month)]...)
	}
	return out, nil
}

type fakeScores struct {
	scores []ScoreInput
}

func (f *fakeScores) ScoresForMonth(_ context.Context, _ uuid.UUID, _, _ int) ([]ScoreInput, error) {
	return f.scores, nil
}

func newTestService(repo repository.Repository, scores ScoreSource) *Service {
	log := logger.New("test")
	return New(repo, scores, nil, events.NewInMemoryBus(log), log)
}

func TestPublishMonthReplacesEarlierPublication(t *testing.T) {
	ctx := context.Background()
	tenantID := uuid.New()
	keeper := uuid.New()
	dropped := uuid.New()

	repo := newFakeRepo()
	scores := &fakeScores{scores: []ScoreInput{
		{PersonnelID: keeper, FinalScore: 95},
		{PersonnelID: dropped, FinalScore: 90},
	}}
	svc := newTestService(repo, scores)

	for _, p := range []uuid.UUID{keeper, dropped} {
		req := transport.SubmitEvaluationRequest{
			PersonnelID:     p,
			Year:            2026,
			Month:           7,
			SupervisorScore: 80,
			ForemanRating:   4,
		}
		if _, err := svc.SubmitEvaluation(ctx, tenantID, uuid.New(), req); err != nil {
			t.Fatalf("SubmitEvaluation: %v", err)
		}
	}

	first, err := svc.PublishMonth(ctx, tenantID, 2026, 7)
	if err != nil {
		t.Fatalf("first publish: %v", err)
	}
	if first.Ranked != 2 {
		t.Fatalf("first publish ranked %d, want 2", first.Ranked)
	}

	// A correction removes the second member's closed work; the republished
	// board must not keep their old row, rank, or badge.
	scores.scores = []ScoreInput{{PersonnelID: keeper, FinalScore: 95}}

	second, err := svc.PublishMonth(ctx, tenantID, 2026, 7)
	if err != nil {
		t.Fatalf("republish: %v", err)
	}
	if second.Ranked != 1 {
		t.Fatalf("republish ranked %d, want 1", second.Ranked)
	}

	board, err := svc.GetMonth(ctx, tenantID, 2026, 7)
	if err != nil {
		t.Fatalf("GetMonth: %v", err)
	}
	if len(board.Entries) != 1 {
		t.Fatalf("board has %d entries after republish, want 1", len(board.Entries))
	}
	if board.Entries[0].PersonnelID != dropped {
		// keeper remains on the board with the top badge.
		if board.Entries[0].Badge != BadgeGold {
			t.Fatalf("remaining entry badge = %q, want gold", board.Entries[0].Badge)
		}
	} else {
		t.Fatal("dropped member still on the board after republish")
	}

	gold := 0
	for _, e := range board.Entries {
		if e.Badge == BadgeGold {
			gold++
		}
	}
	if gold != 1 {
		t.Fatalf("board holds %d gold badges, want exactly 1", gold)
	}
}
