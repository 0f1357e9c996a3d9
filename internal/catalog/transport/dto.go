package transport

import (
	"time"

	"github.com/google/uuid"
)

// CreateJobTypeRequest contains data for creating a job type.
type CreateJobTypeRequest struct {
	Key            string   `json:"key" validate:"required,max=50"`
	Label          string   `json:"label" validate:"required,max=100"`
	Multiplier     float64  `json:"multiplier" validate:"required,gt=0,lte=10"`
	RequiredFields []string `json:"requiredFields" validate:"omitempty,dive,max=50"`
	DisplayOrder   int      `json:"displayOrder" validate:"omitempty,min=0"`
}

// UpdateJobTypeRequest contains partial updates for a job type.
type UpdateJobTypeRequest struct {
	Label          *string  `json:"label" validate:"omitempty,max=100"`
	Multiplier     *float64 `json:"multiplier" validate:"omitempty,gt=0,lte=10"`
	RequiredFields []string `json:"requiredFields" validate:"omitempty,dive,max=50"`
	DisplayOrder   *int     `json:"displayOrder" validate:"omitempty,min=0"`
}

// JobTypeResponse represents a job type in API responses.
type JobTypeResponse struct {
	ID             uuid.UUID `json:"id"`
	Key            string    `json:"key"`
	Label          string    `json:"label"`
	Multiplier     float64   `json:"multiplier"`
	RequiredFields []string  `json:"requiredFields"`
	IsActive       bool      `json:"isActive"`
	DisplayOrder   int       `json:"displayOrder"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// JobTypeListResponse wraps a list of job types.
type JobTypeListResponse struct {
	Items []JobTypeResponse `json:"items"`
	Total int               `json:"total"`
}

// ProvisionResponse acknowledges a tenant provisioning run together with
// the catalog it left the tenant with.
type ProvisionResponse struct {
	TenantID uuid.UUID           `json:"tenantId"`
	Catalog  JobTypeListResponse `json:"catalog"`
}
