package repository

import (
	"context"
	"errors"
	"fmt"

	"marinaops_backend/internal/status"
	"marinaops_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const workOrderNotFoundMessage = "work order not found"

// Repo implements the Repository interface with PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new work order repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Compile-time check that Repo implements Repository.
var _ Repository = (*Repo)(nil)

const workOrderColumns = `id, tenant_id, reference, address, berth, status, scheduled_date, job_type_key, notes, created_at, updated_at`

// GetByID retrieves a work order with its assignments.
func (r *Repo) GetByID(ctx context.Context, tenantID, id uuid.UUID) (WorkOrder, error) {
	query := `
		SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE id = $1 AND tenant_id = $2`

	var wo WorkOrder
	err := r.pool.QueryRow(ctx, query, id, tenantID).Scan(
		&wo.ID, &wo.TenantID, &wo.Reference, &wo.Address, &wo.Berth, &wo.Status,
		&wo.ScheduledDate, &wo.JobTypeKey, &wo.Notes, &wo.CreatedAt, &wo.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return WorkOrder{}, apperr.NotFound(workOrderNotFoundMessage)
		}
		return WorkOrder{}, fmt.Errorf("get work order by id: %w", err)
	}

	assignments, err := r.assignmentsFor(ctx, []uuid.UUID{wo.ID})
	if err != nil {
		return WorkOrder{}, err
	}
	wo.Assignments = assignments[wo.ID]

	return wo, nil
}

// List retrieves all work orders for a tenant, assignments included.
func (r *Repo) List(ctx context.Context, tenantID uuid.UUID) ([]WorkOrder, error) {
	query := `
		SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE tenant_id = $1
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list work orders: %w", err)
	}
	defer rows.Close()

	return r.collectWithAssignments(ctx, rows)
}

// ListByStatuses retrieves work orders whose canonical status is in the set.
func (r *Repo) ListByStatuses(ctx context.Context, tenantID uuid.UUID, statuses []status.Code) ([]WorkOrder, error) {
	values := make([]string, len(statuses))
	for i, s := range statuses {
		values[i] = string(s)
	}

	query := `
		SELECT ` + workOrderColumns + `
		FROM work_orders
		WHERE tenant_id = $1 AND status = ANY($2)
		ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, tenantID, values)
	if err != nil {
		return nil, fmt.Errorf("list work orders by status: %w", err)
	}
	defer rows.Close()

	return r.collectWithAssignments(ctx, rows)
}

// Create inserts a work order and its assignments in one transaction.
func (r *Repo) Create(ctx context.Context, params CreateParams) (WorkOrder, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return WorkOrder{}, fmt.Errorf("begin create work order: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	query := `
		INSERT INTO work_orders (tenant_id, reference, address, berth, status, scheduled_date, job_type_key, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + workOrderColumns

	var wo WorkOrder
	err = tx.QueryRow(ctx, query,
		params.TenantID, params.Reference, params.Address, params.Berth,
		params.Status, params.ScheduledDate, params.JobTypeKey, params.Notes,
	).Scan(
		&wo.ID, &wo.TenantID, &wo.Reference, &wo.Address, &wo.Berth, &wo.Status,
		&wo.ScheduledDate, &wo.JobTypeKey, &wo.Notes, &wo.CreatedAt, &wo.UpdatedAt,
	)
	if err != nil {
		return WorkOrder{}, fmt.Errorf("insert work order: %w", err)
	}

	for _, a := range params.Assignments {
		if err := insertAssignment(ctx, tx, wo.ID, a); err != nil {
			return WorkOrder{}, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return WorkOrder{}, fmt.Errorf("commit create work order: %w", err)
	}

	wo.Assignments = params.Assignments
	return wo, nil
}

// UpdateStatus sets the canonical status of a work order.
func (r *Repo) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, newStatus status.Code) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE work_orders
		SET status = $1, updated_at = now()
		WHERE id = $2 AND tenant_id = $3`,
		string(newStatus), id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("update work order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(workOrderNotFoundMessage)
	}
	return nil
}

// UpdateDetails applies partial field edits. Nil params keep the stored
// value.
func (r *Repo) UpdateDetails(ctx context.Context, tenantID, id uuid.UUID, params UpdateDetailsParams) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE work_orders
		SET reference = COALESCE($1, reference),
		    address = COALESCE($2, address),
		    berth = COALESCE($3, berth),
		    scheduled_date = COALESCE($4, scheduled_date),
		    notes = COALESCE($5, notes),
		    updated_at = now()
		WHERE id = $6 AND tenant_id = $7`,
		params.Reference, params.Address, params.Berth,
		params.ScheduledDate, params.Notes, id, tenantID,
	)
	if err != nil {
		return fmt.Errorf("update work order details: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(workOrderNotFoundMessage)
	}
	return nil
}

// ReplaceAssignments swaps the full assignment set of a work order.
func (r *Repo) ReplaceAssignments(ctx context.Context, tenantID, id uuid.UUID, assignments []Assignment) error {
	exists, err := r.Exists(ctx, tenantID, id)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound(workOrderNotFoundMessage)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin replace assignments: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM work_order_assignments WHERE work_order_id = $1`, id); err != nil {
		return fmt.Errorf("clear assignments: %w", err)
	}

	for _, a := range assignments {
		if err := insertAssignment(ctx, tx, id, a); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit replace assignments: %w", err)
	}
	return nil
}

// Exists checks if a work order exists for the tenant.
func (r *Repo) Exists(ctx context.Context, tenantID, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM work_orders WHERE id = $1 AND tenant_id = $2)`,
		id, tenantID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("work order exists: %w", err)
	}
	return exists, nil
}

func insertAssignment(ctx context.Context, tx pgx.Tx, workOrderID uuid.UUID, a Assignment) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO work_order_assignments (work_order_id, personnel_id, role, bonus)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (work_order_id, personnel_id) DO UPDATE SET role = $3, bonus = $4`,
		workOrderID, a.PersonnelID, string(a.Role), a.Bonus,
	)
	if err != nil {
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

func (r *Repo) collectWithAssignments(ctx context.Context, rows pgx.Rows) ([]WorkOrder, error) {
	orders := make([]WorkOrder, 0)
	ids := make([]uuid.UUID, 0)

	for rows.Next() {
		var wo WorkOrder
		if err := rows.Scan(
			&wo.ID, &wo.TenantID, &wo.Reference, &wo.Address, &wo.Berth, &wo.Status,
			&wo.ScheduledDate, &wo.JobTypeKey, &wo.Notes, &wo.CreatedAt, &wo.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan work order: %w", err)
		}
		orders = append(orders, wo)
		ids = append(ids, wo.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate work orders: %w", err)
	}

	if len(ids) == 0 {
		return orders, nil
	}

	assignments, err := r.assignmentsFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Assignments = assignments[orders[i].ID]
	}
	return orders, nil
}

func (r *Repo) assignmentsFor(ctx context.Context, workOrderIDs []uuid.UUID) (map[uuid.UUID][]Assignment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT work_order_id, personnel_id, role, bonus
		FROM work_order_assignments
		WHERE work_order_id = ANY($1)`,
		workOrderIDs,
	)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]Assignment)
	for rows.Next() {
		var workOrderID uuid.UUID
		var a Assignment
		if err := rows.Scan(&workOrderID, &a.PersonnelID, &a.Role, &a.Bonus); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out[workOrderID] = append(out[workOrderID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate assignments: %w", err)
	}
	return out, nil
}
