// Package adapters provides anti-corruption layer adapters for
// cross-module communication. Each adapter translates one module's
// consumer interface onto another module's implementation, keeping the
// bounded contexts decoupled from each other's types.
package adapters

import (
	"context"

	closure "marinaops_backend/internal/closure/service"
	"marinaops_backend/internal/status"
	"marinaops_backend/internal/workorders/repository"

	"github.com/google/uuid"
)

// ClosureWorkOrderAdapter adapts the workorders repository to the closure
// module's WorkOrderSource interface.
type ClosureWorkOrderAdapter struct {
	repo repository.Repository
}

// NewClosureWorkOrderAdapter creates the adapter.
func NewClosureWorkOrderAdapter(repo repository.Repository) *ClosureWorkOrderAdapter {
	return &ClosureWorkOrderAdapter{repo: repo}
}

var _ closure.WorkOrderSource = (*ClosureWorkOrderAdapter)(nil)

// InfoForClosure returns the slice of a work order the closer needs.
func (a *ClosureWorkOrderAdapter) InfoForClosure(ctx context.Context, tenantID, workOrderID uuid.UUID) (closure.WorkOrderInfo, error) {
	wo, err := a.repo.GetByID(ctx, tenantID, workOrderID)
	if err != nil {
		return closure.WorkOrderInfo{}, err
	}

	team := make([]closure.TeamMember, 0, len(wo.Assignments))
	for _, assignment := range wo.Assignments {
		team = append(team, closure.TeamMember{
			PersonnelID: assignment.PersonnelID,
			Role:        string(assignment.Role),
			Bonus:       assignment.Bonus,
		})
	}

	return closure.WorkOrderInfo{
		ID:         wo.ID,
		JobTypeKey: wo.JobTypeKey,
		Team:       team,
	}, nil
}

// MarkCompleted sets the work order's canonical status to completed.
func (a *ClosureWorkOrderAdapter) MarkCompleted(ctx context.Context, tenantID, workOrderID uuid.UUID) error {
	return a.repo.UpdateStatus(ctx, tenantID, workOrderID, status.Completed)
}
