package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JobType is a configured job category with its scoring parameters:
// a difficulty multiplier applied to raw closure scores and the checklist
// fields the closure report must complete.
type JobType struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Key            string
	Label          string
	Multiplier     float64
	RequiredFields []string
	IsActive       bool
	DisplayOrder   int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CreateParams contains parameters for creating a job type.
type CreateParams struct {
	TenantID       uuid.UUID
	Key            string
	Label          string
	Multiplier     float64
	RequiredFields []string
	DisplayOrder   int
}

// UpdateParams contains parameters for updating a job type.
// Nil fields are left unchanged.
type UpdateParams struct {
	ID             uuid.UUID
	TenantID       uuid.UUID
	Label          *string
	Multiplier     *float64
	RequiredFields []string
	DisplayOrder   *int
}

// JobTypeReader provides read operations for job types.
type JobTypeReader interface {
	GetByID(ctx context.Context, tenantID, id uuid.UUID) (JobType, error)
	GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (JobType, error)
	List(ctx context.Context, tenantID uuid.UUID) ([]JobType, error)
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]JobType, error)
	Count(ctx context.Context, tenantID uuid.UUID) (int, error)
}

// JobTypeWriter provides write operations for job types.
type JobTypeWriter interface {
	Create(ctx context.Context, params CreateParams) (JobType, error)
	Update(ctx context.Context, params UpdateParams) (JobType, error)
	SetActive(ctx context.Context, tenantID, id uuid.UUID, isActive bool) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
}

// Repository combines all job type repository operations.
type Repository interface {
	JobTypeReader
	JobTypeWriter
}
