package service

import (
	"context"
	"strings"

	"marinaops_backend/internal/catalog/repository"
	"marinaops_backend/internal/catalog/transport"
	"marinaops_backend/platform/apperr"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
)

// Service provides business logic for the job type catalog.
type Service struct {
	repo     repository.Repository
	seedPath string
	log      *logger.Logger
}

// New creates a new catalog service. seedPath points to the YAML file with
// the default job types installed for new tenants.
func New(repo repository.Repository, seedPath string, log *logger.Logger) *Service {
	return &Service{repo: repo, seedPath: seedPath, log: log}
}

// GetByID retrieves a job type by ID.
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (transport.JobTypeResponse, error) {
	jt, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return transport.JobTypeResponse{}, err
	}
	return toResponse(jt), nil
}

// GetByKey retrieves a job type by key.
func (s *Service) GetByKey(ctx context.Context, tenantID uuid.UUID, key string) (transport.JobTypeResponse, error) {
	jt, err := s.repo.GetByKey(ctx, tenantID, normalizeKey(key))
	if err != nil {
		return transport.JobTypeResponse{}, err
	}
	return toResponse(jt), nil
}

// List retrieves all job types for a tenant.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) (transport.JobTypeListResponse, error) {
	items, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return transport.JobTypeListResponse{}, err
	}
	return toListResponse(items), nil
}

// ListActive retrieves only active job types.
func (s *Service) ListActive(ctx context.Context, tenantID uuid.UUID) (transport.JobTypeListResponse, error) {
	items, err := s.repo.ListActive(ctx, tenantID)
	if err != nil {
		return transport.JobTypeListResponse{}, err
	}
	return toListResponse(items), nil
}

// Create registers a new job type after validating its required fields.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, req transport.CreateJobTypeRequest) (transport.JobTypeResponse, error) {
	fields, err := validateFields(req.RequiredFields)
	if err != nil {
		return transport.JobTypeResponse{}, err
	}

	jt, err := s.repo.Create(ctx, repository.CreateParams{
		TenantID:       tenantID,
		Key:            normalizeKey(req.Key),
		Label:          req.Label,
		Multiplier:     req.Multiplier,
		RequiredFields: fields,
		DisplayOrder:   req.DisplayOrder,
	})
	if err != nil {
		return transport.JobTypeResponse{}, err
	}

	s.log.Info("job type created", "tenant", tenantID, "key", jt.Key, "multiplier", jt.Multiplier)
	return toResponse(jt), nil
}

// Update applies partial changes to a job type.
func (s *Service) Update(ctx context.Context, tenantID, id uuid.UUID, req transport.UpdateJobTypeRequest) (transport.JobTypeResponse, error) {
	var fields []string
	if req.RequiredFields != nil {
		validated, err := validateFields(req.RequiredFields)
		if err != nil {
			return transport.JobTypeResponse{}, err
		}
		fields = validated
	}

	jt, err := s.repo.Update(ctx, repository.UpdateParams{
		ID:             id,
		TenantID:       tenantID,
		Label:          req.Label,
		Multiplier:     req.Multiplier,
		RequiredFields: fields,
		DisplayOrder:   req.DisplayOrder,
	})
	if err != nil {
		return transport.JobTypeResponse{}, err
	}
	return toResponse(jt), nil
}

// SetActive toggles whether a job type can be assigned to new work orders.
func (s *Service) SetActive(ctx context.Context, tenantID, id uuid.UUID, isActive bool) error {
	return s.repo.SetActive(ctx, tenantID, id, isActive)
}

// Delete removes a job type.
func (s *Service) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.repo.Delete(ctx, tenantID, id)
}

// ResolveForScoring returns the scoring parameters for a job type key.
// An unknown key is a configuration error, never silently defaulted:
// scoring with a wrong multiplier would corrupt the performance history.
func (s *Service) ResolveForScoring(ctx context.Context, tenantID uuid.UUID, key string) (repository.JobType, error) {
	jt, err := s.repo.GetByKey(ctx, tenantID, normalizeKey(key))
	if err != nil {
		if apperr.GetKind(err) == apperr.KindNotFound {
			return repository.JobType{}, apperr.Configuration("job type is not configured for this tenant", key)
		}
		return repository.JobType{}, err
	}
	return jt, nil
}

func validateFields(fields []string) ([]string, error) {
	out := make([]string, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		key := normalizeKey(f)
		if !repository.IsKnownField(key) {
			return nil, apperr.Validation("unknown checklist field").WithDetails(map[string]any{
				"field": f,
				"known": repository.KnownFields(),
			})
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}
	return out, nil
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

func toResponse(jt repository.JobType) transport.JobTypeResponse {
	fields := jt.RequiredFields
	if fields == nil {
		fields = []string{}
	}
	return transport.JobTypeResponse{
		ID:             jt.ID,
		Key:            jt.Key,
		Label:          jt.Label,
		Multiplier:     jt.Multiplier,
		RequiredFields: fields,
		IsActive:       jt.IsActive,
		DisplayOrder:   jt.DisplayOrder,
		CreatedAt:      jt.CreatedAt,
		UpdatedAt:      jt.UpdatedAt,
	}
}

func toListResponse(items []repository.JobType) transport.JobTypeListResponse {
	out := make([]transport.JobTypeResponse, 0, len(items))
	for _, jt := range items {
		out = append(out, toResponse(jt))
	}
	return transport.JobTypeListResponse{Items: out, Total: len(out)}
}
