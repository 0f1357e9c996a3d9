package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new leaderboard repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

// SaveEvaluation upserts the monthly evaluation for a personnel member.
func (r *Repo) SaveEvaluation(ctx context.Context, params SaveEvaluationParams) (Evaluation, error) {
	query := `
		INSERT INTO monthly_evaluations (tenant_id, personnel_id, year, month, supervisor_score, foreman_rating, evaluated_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (personnel_id, year, month) DO UPDATE
		SET supervisor_score = $5, foreman_rating = $6, evaluated_by_id = $7, updated_at = now()
		RETURNING id, tenant_id, personnel_id, year, month, supervisor_score, foreman_rating, evaluated_by_id, created_at, updated_at`

	var e Evaluation
	err := r.pool.QueryRow(ctx, query,
		params.TenantID, params.PersonnelID, params.Year, params.Month,
		params.SupervisorScore, params.ForemanRating, params.EvaluatedByID,
	).Scan(
		&e.ID, &e.TenantID, &e.PersonnelID, &e.Year, &e.Month,
		&e.SupervisorScore, &e.ForemanRating, &e.EvaluatedByID, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return Evaluation{}, fmt.Errorf("save evaluation: %w", err)
	}
	return e, nil
}

// ListEvaluations returns all evaluations for a tenant month.
func (r *Repo) ListEvaluations(ctx context.Context, tenantID uuid.UUID, year, month int) ([]Evaluation, error) {
	query := `
		SELECT id, tenant_id, personnel_id, year, month, supervisor_score, foreman_rating, evaluated_by_id, created_at, updated_at
		FROM monthly_evaluations
		WHERE tenant_id = $1 AND year = $2 AND month = $3
		ORDER BY personnel_id ASC`

	rows, err := r.pool.Query(ctx, query, tenantID, year, month)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	out := make([]Evaluation, 0)
	for rows.Next() {
		var e Evaluation
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.PersonnelID, &e.Year, &e.Month,
			&e.SupervisorScore, &e.ForemanRating, &e.EvaluatedByID, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate evaluations: %w", err)
	}
	return out, nil
}

// ReplaceEntries writes a published leaderboard in one transaction,
// clearing the period first so a republish after a data correction never
// leaves stale ranks or badges behind for personnel no longer ranked.
func (r *Repo) ReplaceEntries(ctx context.Context, tenantID uuid.UUID, year, month int, entries []Entry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace leaderboard: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx,
		`DELETE FROM monthly_performance_entries WHERE tenant_id = $1 AND year = $2 AND month = $3`,
		tenantID, year, month,
	)
	if err != nil {
		return fmt.Errorf("clear leaderboard period: %w", err)
	}

	query := `
		INSERT INTO monthly_performance_entries
			(tenant_id, personnel_id, year, month, individual_avg, supervisor_avg, foreman_rating, composite, rank, badge, jobs_closed)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	for _, e := range entries {
		_, err := tx.Exec(ctx, query,
			e.TenantID, e.PersonnelID, e.Year, e.Month,
			e.IndividualAvg, e.SupervisorAvg, e.ForemanRating,
			e.Composite, e.Rank, e.Badge, e.JobsClosed,
		)
		if err != nil {
			return fmt.Errorf("insert leaderboard entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace leaderboard: %w", err)
	}
	return nil
}

// ListEntries returns the published leaderboard for a month, best first.
func (r *Repo) ListEntries(ctx context.Context, tenantID uuid.UUID, year, month int) ([]Entry, error) {
	query := entryQuery + `
		WHERE tenant_id = $1 AND year = $2 AND month = $3
		ORDER BY rank ASC`

	return r.queryEntries(ctx, query, tenantID, year, month)
}

// ListEntriesForYear returns every published monthly entry in a year.
func (r *Repo) ListEntriesForYear(ctx context.Context, tenantID uuid.UUID, year int) ([]Entry, error) {
	query := entryQuery + `
		WHERE tenant_id = $1 AND year = $2
		ORDER BY month ASC, rank ASC`

	return r.queryEntries(ctx, query, tenantID, year)
}

const entryQuery = `
	SELECT id, tenant_id, personnel_id, year, month, individual_avg, supervisor_avg, foreman_rating, composite, rank, badge, jobs_closed, published_at
	FROM monthly_performance_entries`

func (r *Repo) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list leaderboard entries: %w", err)
	}
	defer rows.Close()

	out := make([]Entry, 0)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.PersonnelID, &e.Year, &e.Month,
			&e.IndividualAvg, &e.SupervisorAvg, &e.ForemanRating,
			&e.Composite, &e.Rank, &e.Badge, &e.JobsClosed, &e.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan leaderboard entry: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate leaderboard entries: %w", err)
	}
	return out, nil
}
