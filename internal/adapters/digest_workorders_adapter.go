package adapters

import (
	"context"

	"marinaops_backend/internal/digest"
	"marinaops_backend/internal/status"
	"marinaops_backend/internal/workorders/service"

	"github.com/google/uuid"
)

// DigestWorkOrderAdapter adapts the workorders service to the digest
// module's WorkOrderSource interface, flattening work orders into the
// display lines the digest renders.
type DigestWorkOrderAdapter struct {
	workOrders *service.Service
	registry   *status.Registry
}

// NewDigestWorkOrderAdapter creates the adapter.
func NewDigestWorkOrderAdapter(workOrders *service.Service, registry *status.Registry) *DigestWorkOrderAdapter {
	return &DigestWorkOrderAdapter{workOrders: workOrders, registry: registry}
}

var _ digest.WorkOrderSource = (*DigestWorkOrderAdapter)(nil)

// ActiveOrdered returns the active work orders in operational display order.
func (a *DigestWorkOrderAdapter) ActiveOrdered(ctx context.Context, tenantID uuid.UUID) ([]digest.Item, error) {
	orders, err := a.workOrders.ActiveOrdered(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	ordering := a.workOrders.Ordering()
	items := make([]digest.Item, 0, len(orders))
	for _, wo := range orders {
		items = append(items, digest.Item{
			Reference:        wo.Reference,
			Address:          wo.Address,
			Berth:            wo.Berth,
			StatusLabel:      a.registry.Label(wo.Status),
			ScheduledDate:    wo.ScheduledDate,
			PriorityLocation: ordering.IsPriorityLocation(wo.Address, wo.Berth),
		})
	}
	return items, nil
}
