package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Report is a persisted closure report: the checklist state submitted when
// a work order was closed, kept for recomputation and review.
type Report struct {
	ID          uuid.UUID
	TenantID    uuid.UUID
	WorkOrderID uuid.UUID
	Fields      map[string]bool
	Note        string
	ClosedByID  uuid.UUID
	ClosedAt    time.Time
	UpdatedAt   time.Time
}

// ScoreRecord is one personnel member's score for one closed work order.
// The multiplier and completeness ratio in effect at computation time are
// stored alongside the result so history survives catalog changes.
type ScoreRecord struct {
	ID           uuid.UUID
	TenantID     uuid.UUID
	WorkOrderID  uuid.UUID
	PersonnelID  uuid.UUID
	Role         string
	Bonus        bool
	Completeness float64
	Multiplier   float64
	FinalScore   int
	ComputedAt   time.Time
}

// Repository persists closure reports and score records. Both writes are
// idempotent upserts: closing the same work order twice, or recomputing,
// overwrites rather than duplicates.
type Repository interface {
	SaveReport(ctx context.Context, report Report) (Report, error)
	GetReport(ctx context.Context, tenantID, workOrderID uuid.UUID) (Report, error)
	UpsertScores(ctx context.Context, records []ScoreRecord) error
	ListScoresByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) ([]ScoreRecord, error)
	ListScoresForMonth(ctx context.Context, tenantID uuid.UUID, year int, month time.Month) ([]ScoreRecord, error)
}
