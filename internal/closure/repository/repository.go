package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"marinaops_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const reportNotFoundMessage = "closure report not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new closure repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// SaveReport upserts the closure report for a work order. Re-closing a
// work order replaces the previous checklist state.
func (r *Repo) SaveReport(ctx context.Context, report Report) (Report, error) {
	query := `
		INSERT INTO closure_reports (tenant_id, work_order_id, fields, note, closed_by_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (work_order_id) DO UPDATE
		SET fields = $3, note = $4, closed_by_id = $5, updated_at = now()
		RETURNING id, tenant_id, work_order_id, fields, note, closed_by_id, closed_at, updated_at`

	var out Report
	err := r.pool.QueryRow(ctx, query,
		report.TenantID, report.WorkOrderID, report.Fields, report.Note, report.ClosedByID,
	).Scan(
		&out.ID, &out.TenantID, &out.WorkOrderID, &out.Fields, &out.Note,
		&out.ClosedByID, &out.ClosedAt, &out.UpdatedAt,
	)
	if err != nil {
		return Report{}, fmt.Errorf("save closure report: %w", err)
	}
	return out, nil
}

// GetReport retrieves the closure report for a work order.
func (r *Repo) GetReport(ctx context.Context, tenantID, workOrderID uuid.UUID) (Report, error) {
	query := `
		SELECT id, tenant_id, work_order_id, fields, note, closed_by_id, closed_at, updated_at
		FROM closure_reports
		WHERE tenant_id = $1 AND work_order_id = $2`

	var out Report
	err := r.pool.QueryRow(ctx, query, tenantID, workOrderID).Scan(
		&out.ID, &out.TenantID, &out.WorkOrderID, &out.Fields, &out.Note,
		&out.ClosedByID, &out.ClosedAt, &out.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Report{}, apperr.NotFound(reportNotFoundMessage)
		}
		return Report{}, fmt.Errorf("get closure report: %w", err)
	}
	return out, nil
}

// UpsertScores writes score records in one transaction, keyed on
// (work_order_id, personnel_id). Recomputation overwrites in place.
func (r *Repo) UpsertScores(ctx context.Context, records []ScoreRecord) error {
	if len(records) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin upsert scores: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO score_records (tenant_id, work_order_id, personnel_id, role, bonus, completeness, multiplier, final_score)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (work_order_id, personnel_id) DO UPDATE
		SET role = $4, bonus = $5, completeness = $6, multiplier = $7, final_score = $8, computed_at = now()`

	for _, rec := range records {
		_, err := tx.Exec(ctx, query,
			rec.TenantID, rec.WorkOrderID, rec.PersonnelID, rec.Role,
			rec.Bonus, rec.Completeness, rec.Multiplier, rec.FinalScore,
		)
		if err != nil {
			return fmt.Errorf("upsert score record: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit upsert scores: %w", err)
	}
	return nil
}

// ListScoresByWorkOrder returns the score records for one work order.
func (r *Repo) ListScoresByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) ([]ScoreRecord, error) {
	query := `
		SELECT id, tenant_id, work_order_id, personnel_id, role, bonus, completeness, multiplier, final_score, computed_at
		FROM score_records
		WHERE tenant_id = $1 AND work_order_id = $2
		ORDER BY personnel_id ASC`

	return r.queryScores(ctx, query, tenantID, workOrderID)
}

// ListScoresForMonth returns every score record computed in the given
// month, joined against the closure timestamp of the owning report.
func (r *Repo) ListScoresForMonth(ctx context.Context, tenantID uuid.UUID, year int, month time.Month) ([]ScoreRecord, error) {
	query := `
		SELECT s.id, s.tenant_id, s.work_order_id, s.personnel_id, s.role, s.bonus, s.completeness, s.multiplier, s.final_score, s.computed_at
		FROM score_records s
		JOIN closure_reports c ON c.work_order_id = s.work_order_id
		WHERE s.tenant_id = $1
		  AND EXTRACT(YEAR FROM c.closed_at) = $2
		  AND EXTRACT(MONTH FROM c.closed_at) = $3
		ORDER BY s.personnel_id ASC`

	return r.queryScores(ctx, query, tenantID, year, int(month))
}

func (r *Repo) queryScores(ctx context.Context, query string, args ...any) ([]ScoreRecord, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list score records: %w", err)
	}
	defer rows.Close()

	records := make([]ScoreRecord, 0)
	for rows.Next() {
		var rec ScoreRecord
		if err := rows.Scan(
			&rec.ID, &rec.TenantID, &rec.WorkOrderID, &rec.PersonnelID, &rec.Role,
			&rec.Bonus, &rec.Completeness, &rec.Multiplier, &rec.FinalScore, &rec.ComputedAt,
		); err != nil {
			return nil, fmt.Errorf("scan score record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate score records: %w", err)
	}
	return records, nil
}
