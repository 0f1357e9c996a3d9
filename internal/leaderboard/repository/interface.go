package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Evaluation holds the monthly human assessments for one personnel member:
// the supervisor's average score (0-100) and the foreman's rating (1-5).
type Evaluation struct {
	ID              uuid.UUID
	TenantID        uuid.UUID
	PersonnelID     uuid.UUID
	Year            int
	Month           int
	SupervisorScore float64
	ForemanRating   float64
	EvaluatedByID   uuid.UUID
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Entry is one persisted row of a published monthly leaderboard.
type Entry struct {
	ID            uuid.UUID
	TenantID      uuid.UUID
	PersonnelID   uuid.UUID
	Year          int
	Month         int
	IndividualAvg float64
	SupervisorAvg float64
	ForemanRating float64
	Composite     float64
	Rank          int
	Badge         string
	JobsClosed    int
	PublishedAt   time.Time
}

// SaveEvaluationParams contains the upsert parameters for an evaluation.
type SaveEvaluationParams struct {
	TenantID        uuid.UUID
	PersonnelID     uuid.UUID
	Year            int
	Month           int
	SupervisorScore float64
	ForemanRating   float64
	EvaluatedByID   uuid.UUID
}

// Repository persists evaluations and published leaderboard entries.
// Evaluations are idempotent upserts keyed on (personnel, year, month);
// a publication replaces the whole period so re-runs never leave stale
// rows behind.
type Repository interface {
	SaveEvaluation(ctx context.Context, params SaveEvaluationParams) (Evaluation, error)
	ListEvaluations(ctx context.Context, tenantID uuid.UUID, year, month int) ([]Evaluation, error)
	ReplaceEntries(ctx context.Context, tenantID uuid.UUID, year, month int, entries []Entry) error
	ListEntries(ctx context.Context, tenantID uuid.UUID, year, month int) ([]Entry, error)
	ListEntriesForYear(ctx context.Context, tenantID uuid.UUID, year int) ([]Entry, error)
}
