package adapters

import (
	"context"

	catalog "marinaops_backend/internal/catalog/service"
	closure "marinaops_backend/internal/closure/service"

	"github.com/google/uuid"
)

// ClosureJobTypeAdapter adapts the catalog service to the closure module's
// JobTypeSource interface.
type ClosureJobTypeAdapter struct {
	catalog *catalog.Service
}

// NewClosureJobTypeAdapter creates the adapter.
func NewClosureJobTypeAdapter(svc *catalog.Service) *ClosureJobTypeAdapter {
	return &ClosureJobTypeAdapter{catalog: svc}
}

var _ closure.JobTypeSource = (*ClosureJobTypeAdapter)(nil)

// ResolveForScoring returns the scoring parameters for a job type key.
// Unknown keys surface as configuration errors from the catalog, never a
// silent default multiplier.
func (a *ClosureJobTypeAdapter) ResolveForScoring(ctx context.Context, tenantID uuid.UUID, key string) (closure.JobTypeInfo, error) {
	jt, err := a.catalog.ResolveForScoring(ctx, tenantID, key)
	if err != nil {
		return closure.JobTypeInfo{}, err
	}
	return closure.JobTypeInfo{
		Key:            jt.Key,
		Multiplier:     jt.Multiplier,
		RequiredFields: jt.RequiredFields,
	}, nil
}
