package repository

import (
	"context"
	"errors"
	"fmt"

	"marinaops_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const jobTypeNotFoundMessage = "job type not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new job type repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const jobTypeColumns = `id, tenant_id, key, label, multiplier, required_fields, is_active, display_order, created_at, updated_at`

// GetByID retrieves a job type by ID.
func (r *Repo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (JobType, error) {
	query := `
		SELECT ` + jobTypeColumns + `
		FROM job_types
		WHERE id = $1 AND tenant_id = $2`

	return r.scanOne(r.pool.QueryRow(ctx, query, id, tenantID), "get job type by id")
}

// GetByKey retrieves a job type by its key.
func (r *Repo) GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (JobType, error) {
	query := `
		SELECT ` + jobTypeColumns + `
		FROM job_types
		WHERE tenant_id = $1 AND key = $2`

	return r.scanOne(r.pool.QueryRow(ctx, query, tenantID, key), "get job type by key")
}

// List retrieves all job types for a tenant.
func (r *Repo) List(ctx context.Context, tenantID uuid.UUID) ([]JobType, error) {
	query := `
		SELECT ` + jobTypeColumns + `
		FROM job_types
		WHERE tenant_id = $1
		ORDER BY display_order ASC, key ASC`

	return r.queryMany(ctx, query, tenantID)
}

// ListActive retrieves only active job types for a tenant.
func (r *Repo) ListActive(ctx context.Context, tenantID uuid.UUID) ([]JobType, error) {
	query := `
		SELECT ` + jobTypeColumns + `
		FROM job_types
		WHERE tenant_id = $1 AND is_active = true
		ORDER BY display_order ASC, key ASC`

	return r.queryMany(ctx, query, tenantID)
}

// Count returns the number of job types configured for a tenant.
func (r *Repo) Count(ctx context.Context, tenantID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM job_types WHERE tenant_id = $1`, tenantID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count job types: %w", err)
	}
	return count, nil
}

// Create inserts a new job type.
func (r *Repo) Create(ctx context.Context, params CreateParams) (JobType, error) {
	query := `
		INSERT INTO job_types (tenant_id, key, label, multiplier, required_fields, display_order)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + jobTypeColumns

	return r.scanOne(r.pool.QueryRow(ctx, query,
		params.TenantID, params.Key, params.Label, params.Multiplier,
		params.RequiredFields, params.DisplayOrder,
	), "insert job type")
}

// Update applies non-nil fields to an existing job type.
func (r *Repo) Update(ctx context.Context, params UpdateParams) (JobType, error) {
	query := `
		UPDATE job_types
		SET label = COALESCE($3, label),
			multiplier = COALESCE($4, multiplier),
			required_fields = COALESCE($5, required_fields),
			display_order = COALESCE($6, display_order),
			updated_at = now()
		WHERE id = $1 AND tenant_id = $2
		RETURNING ` + jobTypeColumns

	var fields any
	if params.RequiredFields != nil {
		fields = params.RequiredFields
	}
	return r.scanOne(r.pool.QueryRow(ctx, query,
		params.ID, params.TenantID, params.Label, params.Multiplier, fields, params.DisplayOrder,
	), "update job type")
}

// SetActive toggles a job type's active flag.
func (r *Repo) SetActive(ctx context.Context, tenantID, id uuid.UUID, isActive bool) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE job_types SET is_active = $1, updated_at = now()
		WHERE id = $2 AND tenant_id = $3`,
		isActive, id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("set job type active: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(jobTypeNotFoundMessage)
	}
	return nil
}

// Delete removes a job type.
func (r *Repo) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM job_types WHERE id = $1 AND tenant_id = $2`, id, tenantID)
	if err != nil {
		return fmt.Errorf("delete job type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(jobTypeNotFoundMessage)
	}
	return nil
}

func (r *Repo) scanOne(row pgx.Row, op string) (JobType, error) {
	var jt JobType
	err := row.Scan(
		&jt.ID, &jt.TenantID, &jt.Key, &jt.Label, &jt.Multiplier,
		&jt.RequiredFields, &jt.IsActive, &jt.DisplayOrder, &jt.CreatedAt, &jt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return JobType{}, apperr.NotFound(jobTypeNotFoundMessage)
		}
		return JobType{}, fmt.Errorf("%s: %w", op, err)
	}
	return jt, nil
}

func (r *Repo) queryMany(ctx context.Context, query string, tenantID uuid.UUID) ([]JobType, error) {
	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list job types: %w", err)
	}
	defer rows.Close()

	items := make([]JobType, 0)
	for rows.Next() {
		var jt JobType
		if err := rows.Scan(
			&jt.ID, &jt.TenantID, &jt.Key, &jt.Label, &jt.Multiplier,
			&jt.RequiredFields, &jt.IsActive, &jt.DisplayOrder, &jt.CreatedAt, &jt.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan job type: %w", err)
		}
		items = append(items, jt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job types: %w", err)
	}
	return items, nil
}
