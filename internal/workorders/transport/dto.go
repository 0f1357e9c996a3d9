package transport

import "github.com/google/uuid"

// AssignmentRequest assigns a personnel member to a work order.
type AssignmentRequest struct {
	PersonnelID uuid.UUID `json:"personnelId" validate:"required"`
	Role        string    `json:"role" validate:"required,oneof=responsible support"`
	Bonus       bool      `json:"bonus"`
}

// CreateWorkOrderRequest contains data for creating a new work order.
// StatusText is free-form; it is normalized to a canonical status code.
type CreateWorkOrderRequest struct {
	Reference     string              `json:"reference" validate:"omitempty,max=50"`
	Address       string              `json:"address" validate:"required,max=200"`
	Berth         string              `json:"berth" validate:"omitempty,max=100"`
	StatusText    string              `json:"statusText" validate:"omitempty,max=200"`
	ScheduledDate string              `json:"scheduledDate" validate:"omitempty,max=50"`
	JobTypeKey    string              `json:"jobTypeKey" validate:"required,max=50"`
	Notes         string              `json:"notes" validate:"omitempty,max=2000"`
	Assignments   []AssignmentRequest `json:"assignments" validate:"omitempty,dive"`
}

// UpdateWorkOrderRequest contains partial edits to a work order's fields.
// Status and team have their own endpoints; absent fields stay untouched.
type UpdateWorkOrderRequest struct {
	Reference     *string `json:"reference" validate:"omitempty,max=50"`
	Address       *string `json:"address" validate:"omitempty,min=1,max=200"`
	Berth         *string `json:"berth" validate:"omitempty,max=100"`
	ScheduledDate *string `json:"scheduledDate" validate:"omitempty,max=50"`
	Notes         *string `json:"notes" validate:"omitempty,max=2000"`
}

// UpdateStatusRequest submits free-form status text for normalization.
type UpdateStatusRequest struct {
	StatusText string `json:"statusText" validate:"required,max=200"`
}

// UpdateTeamRequest replaces the assignment set of a work order.
type UpdateTeamRequest struct {
	Assignments []AssignmentRequest `json:"assignments" validate:"required,dive"`
}

// AssignmentResponse represents an assignment in API responses.
type AssignmentResponse struct {
	PersonnelID uuid.UUID `json:"personnelId"`
	Role        string    `json:"role"`
	Bonus       bool      `json:"bonus"`
}

// WorkOrderResponse represents a work order in API responses.
type WorkOrderResponse struct {
	ID               uuid.UUID            `json:"id"`
	Reference        string               `json:"reference,omitempty"`
	Address          string               `json:"address"`
	Berth            string               `json:"berth,omitempty"`
	Status           string               `json:"status"`
	StatusLabel      string               `json:"statusLabel"`
	PriorityLocation bool                 `json:"priorityLocation"`
	ScheduledDate    string               `json:"scheduledDate,omitempty"`
	JobTypeKey       string               `json:"jobTypeKey"`
	Notes            string               `json:"notes,omitempty"`
	Assignments      []AssignmentResponse `json:"assignments"`
}

// WorkOrderListResponse wraps an ordered list of work orders.
type WorkOrderListResponse struct {
	Items []WorkOrderResponse `json:"items"`
	Total int                 `json:"total"`
}
