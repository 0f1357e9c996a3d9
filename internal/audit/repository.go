package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists audit entries in the audit_log table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates an audit store backed by PostgreSQL.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

var _ Store = (*PostgresStore)(nil)

// Append inserts a new audit entry. Entries are never updated or deleted.
func (s *PostgresStore) Append(ctx context.Context, entry Entry) error {
	query := `
		INSERT INTO audit_log (tenant_id, actor_id, work_order_id, action, payload)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := s.pool.Exec(ctx, query,
		entry.TenantID, entry.ActorID, entry.WorkOrderID, entry.Action, entry.Payload)
	if err != nil {
		return fmt.Errorf("append audit entry: %w", err)
	}
	return nil
}

// ListByWorkOrder returns the audit trail for a work order, oldest first.
func (s *PostgresStore) ListByWorkOrder(ctx context.Context, tenantID, workOrderID uuid.UUID) ([]Entry, error) {
	query := `
		SELECT id, tenant_id, actor_id, work_order_id, action, payload, created_at
		FROM audit_log
		WHERE tenant_id = $1 AND work_order_id = $2
		ORDER BY created_at ASC, id ASC`

	rows, err := s.pool.Query(ctx, query, tenantID, workOrderID)
	if err != nil {
		return nil, fmt.Errorf("list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.TenantID, &e.ActorID, &e.WorkOrderID, &e.Action, &e.Payload, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit entries: %w", err)
	}
	return entries, nil
}
