package repository

import (
	"context"
	"time"

	"marinaops_backend/internal/status"

	"github.com/google/uuid"
)

// Role is an assignment role on a work order.
type Role string

const (
	// RoleResponsible is accountable for the closure report quality.
	RoleResponsible Role = "responsible"
	// RoleSupport assists on site; scored for presence, not authorship.
	RoleSupport Role = "support"
)

// Assignment links a personnel member to a work order.
type Assignment struct {
	PersonnelID uuid.UUID
	Role        Role
	// Bonus is independent of the role and persists across role toggles.
	Bonus bool
}

// WorkOrder is a marina service record.
type WorkOrder struct {
	ID       uuid.UUID
	TenantID uuid.UUID
	// Reference is the human-readable FT work-order number, when known.
	Reference   string
	Address     string
	Berth       string
	Status      status.Code
	// ScheduledDate keeps the raw imported value: either dd.mm.yyyy text
	// or an RFC3339 timestamp. Unparsable values sort as missing.
	ScheduledDate string
	JobTypeKey    string
	Notes         string
	Assignments   []Assignment
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// CreateParams contains the fields needed to create a work order.
type CreateParams struct {
	TenantID      uuid.UUID
	Reference     string
	Address       string
	Berth         string
	Status        status.Code
	ScheduledDate string
	JobTypeKey    string
	Notes         string
	Assignments   []Assignment
}

// UpdateDetailsParams carries partial field edits. Nil fields are left as
// they are.
type UpdateDetailsParams struct {
	Reference     *string
	Address       *string
	Berth         *string
	ScheduledDate *string
	Notes         *string
}

// Repository defines persistence operations for work orders.
type Repository interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (WorkOrder, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]WorkOrder, error)
	ListByStatuses(ctx context.Context, tenantID uuid.UUID, statuses []status.Code) ([]WorkOrder, error)
	Create(ctx context.Context, params CreateParams) (WorkOrder, error)
	UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, newStatus status.Code) error
	UpdateDetails(ctx context.Context, tenantID, id uuid.UUID, params UpdateDetailsParams) error
	ReplaceAssignments(ctx context.Context, tenantID, id uuid.UUID, assignments []Assignment) error
	Exists(ctx context.Context, tenantID, id uuid.UUID) (bool, error)
}
