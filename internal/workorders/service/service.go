package service

import (
	"context"

	"marinaops_backend/internal/audit"
	"marinaops_backend/internal/events"
	"marinaops_backend/internal/status"
	"marinaops_backend/internal/workorders/repository"
	"marinaops_backend/internal/workorders/transport"
	"marinaops_backend/platform/apperr"
	"marinaops_backend/platform/logger"

	"github.com/google/uuid"
)

// Service provides business logic for work orders: creation with status
// normalization, operational list ordering, and status updates.
type Service struct {
	repo     repository.Repository
	registry *status.Registry
	ordering *Ordering
	auditor  *audit.Recorder
	bus      events.Bus
	log      *logger.Logger
}

// New creates a new work order service.
func New(repo repository.Repository, registry *status.Registry, ordering *Ordering, auditor *audit.Recorder, bus events.Bus, log *logger.Logger) *Service {
	return &Service{
		repo:     repo,
		registry: registry,
		ordering: ordering,
		auditor:  auditor,
		bus:      bus,
		log:      log,
	}
}

// Ordering exposes the ordering engine for collaborating modules (digest).
func (s *Service) Ordering() *Ordering {
	return s.ordering
}

// Registry exposes the status registry for collaborating modules.
func (s *Service) Registry() *status.Registry {
	return s.registry
}

// GetByID retrieves a single work order.
func (s *Service) GetByID(ctx context.Context, tenantID, id uuid.UUID) (transport.WorkOrderResponse, error) {
	wo, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return transport.WorkOrderResponse{}, err
	}
	return s.toResponse(wo), nil
}

// List returns all work orders in operational display order.
func (s *Service) List(ctx context.Context, tenantID uuid.UUID) (transport.WorkOrderListResponse, error) {
	orders, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return transport.WorkOrderListResponse{}, err
	}
	return s.toListResponse(s.ordering.Sort(orders)), nil
}

// ListActive returns only active work orders, ordered for display.
func (s *Service) ListActive(ctx context.Context, tenantID uuid.UUID) (transport.WorkOrderListResponse, error) {
	orders, err := s.repo.List(ctx, tenantID)
	if err != nil {
		return transport.WorkOrderListResponse{}, err
	}
	return s.toListResponse(s.ordering.FilterActive(s.ordering.Sort(orders))), nil
}

// ActiveOrdered returns the ordered active work orders as domain records,
// for non-HTTP consumers such as the digest renderer. Only the active
// statuses are fetched; archived work never leaves the database.
func (s *Service) ActiveOrdered(ctx context.Context, tenantID uuid.UUID) ([]repository.WorkOrder, error) {
	orders, err := s.repo.ListByStatuses(ctx, tenantID, s.activeCodes())
	if err != nil {
		return nil, err
	}
	return s.ordering.Sort(orders), nil
}

func (s *Service) activeCodes() []status.Code {
	codes := make([]status.Code, 0)
	for _, code := range s.registry.Codes() {
		if s.registry.IsActive(code) {
			codes = append(codes, code)
		}
	}
	return codes
}

// Create registers a new work order. The raw status text is normalized to
// a canonical code; empty or unrecognized text lands on Scheduled.
func (s *Service) Create(ctx context.Context, tenantID, actorID uuid.UUID, req transport.CreateWorkOrderRequest) (transport.WorkOrderResponse, error) {
	assignments, err := toAssignments(req.Assignments)
	if err != nil {
		return transport.WorkOrderResponse{}, err
	}

	wo, err := s.repo.Create(ctx, repository.CreateParams{
		TenantID:      tenantID,
		Reference:     req.Reference,
		Address:       req.Address,
		Berth:         req.Berth,
		Status:        s.registry.Normalize(req.StatusText),
		ScheduledDate: req.ScheduledDate,
		JobTypeKey:    req.JobTypeKey,
		Notes:         req.Notes,
		Assignments:   assignments,
	})
	if err != nil {
		return transport.WorkOrderResponse{}, err
	}

	s.log.Info("work order created", "id", wo.ID, "tenant", tenantID, "status", wo.Status)
	return s.toResponse(wo), nil
}

// UpdateStatus normalizes the submitted status text and persists the
// resulting canonical code, recording the transition in the audit log.
func (s *Service) UpdateStatus(ctx context.Context, tenantID, actorID, id uuid.UUID, statusText string) (transport.WorkOrderResponse, error) {
	wo, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return transport.WorkOrderResponse{}, err
	}

	newStatus := s.registry.Normalize(statusText)
	if newStatus == wo.Status {
		return s.toResponse(wo), nil
	}

	if err := s.repo.UpdateStatus(ctx, tenantID, id, newStatus); err != nil {
		return transport.WorkOrderResponse{}, err
	}

	s.auditor.StatusChanged(ctx, tenantID, actorID, id, audit.StatusChange{
		From:    string(wo.Status),
		To:      string(newStatus),
		RawText: statusText,
	})

	s.bus.Publish(ctx, events.WorkOrderStatusChanged{
		BaseEvent:   events.NewBaseEvent(),
		WorkOrderID: id,
		TenantID:    tenantID,
		OldStatus:   string(wo.Status),
		NewStatus:   string(newStatus),
		ChangedByID: actorID,
	})

	wo.Status = newStatus
	return s.toResponse(wo), nil
}

// UpdateDetails applies partial field edits to a work order, recording one
// audit entry per field that actually changed.
func (s *Service) UpdateDetails(ctx context.Context, tenantID, actorID, id uuid.UUID, req transport.UpdateWorkOrderRequest) (transport.WorkOrderResponse, error) {
	wo, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return transport.WorkOrderResponse{}, err
	}

	var changes []audit.FieldChange
	edit := func(field string, current *string, submitted *string) {
		if submitted == nil || *submitted == *current {
			return
		}
		changes = append(changes, audit.FieldChange{Field: field, Before: *current, After: *submitted})
		*current = *submitted
	}
	edit("reference", &wo.Reference, req.Reference)
	edit("address", &wo.Address, req.Address)
	edit("berth", &wo.Berth, req.Berth)
	edit("scheduled_date", &wo.ScheduledDate, req.ScheduledDate)
	edit("notes", &wo.Notes, req.Notes)

	if len(changes) == 0 {
		return s.toResponse(wo), nil
	}

	if err := s.repo.UpdateDetails(ctx, tenantID, id, repository.UpdateDetailsParams{
		Reference:     req.Reference,
		Address:       req.Address,
		Berth:         req.Berth,
		ScheduledDate: req.ScheduledDate,
		Notes:         req.Notes,
	}); err != nil {
		return transport.WorkOrderResponse{}, err
	}

	for _, change := range changes {
		s.auditor.FieldChanged(ctx, tenantID, actorID, id, change)
	}

	return s.toResponse(wo), nil
}

// UpdateTeam replaces the assignment set of a work order.
func (s *Service) UpdateTeam(ctx context.Context, tenantID, actorID, id uuid.UUID, reqAssignments []transport.AssignmentRequest) (transport.WorkOrderResponse, error) {
	wo, err := s.repo.GetByID(ctx, tenantID, id)
	if err != nil {
		return transport.WorkOrderResponse{}, err
	}

	assignments, err := toAssignments(reqAssignments)
	if err != nil {
		return transport.WorkOrderResponse{}, err
	}

	if err := s.repo.ReplaceAssignments(ctx, tenantID, id, assignments); err != nil {
		return transport.WorkOrderResponse{}, err
	}

	s.auditor.TeamChanged(ctx, tenantID, actorID, id, audit.TeamChange{
		Before: auditAssignments(wo.Assignments),
		After:  auditAssignments(assignments),
	})

	wo.Assignments = assignments
	return s.toResponse(wo), nil
}

func toAssignments(reqs []transport.AssignmentRequest) ([]repository.Assignment, error) {
	out := make([]repository.Assignment, 0, len(reqs))
	for _, req := range reqs {
		role := repository.Role(req.Role)
		if role != repository.RoleResponsible && role != repository.RoleSupport {
			return nil, apperr.Validation("unknown assignment role").WithDetails(map[string]string{"role": req.Role})
		}
		out = append(out, repository.Assignment{
			PersonnelID: req.PersonnelID,
			Role:        role,
			Bonus:       req.Bonus,
		})
	}
	return out, nil
}

func auditAssignments(assignments []repository.Assignment) []audit.TeamMember {
	out := make([]audit.TeamMember, 0, len(assignments))
	for _, a := range assignments {
		out = append(out, audit.TeamMember{
			PersonnelID: a.PersonnelID,
			Role:        string(a.Role),
			Bonus:       a.Bonus,
		})
	}
	return out
}

func (s *Service) toResponse(wo repository.WorkOrder) transport.WorkOrderResponse {
	assignments := make([]transport.AssignmentResponse, 0, len(wo.Assignments))
	for _, a := range wo.Assignments {
		assignments = append(assignments, transport.AssignmentResponse{
			PersonnelID: a.PersonnelID,
			Role:        string(a.Role),
			Bonus:       a.Bonus,
		})
	}

	return transport.WorkOrderResponse{
		ID:               wo.ID,
		Reference:        wo.Reference,
		Address:          wo.Address,
		Berth:            wo.Berth,
		Status:           string(wo.Status),
		StatusLabel:      s.registry.Label(wo.Status),
		PriorityLocation: s.ordering.IsPriorityLocation(wo.Address, wo.Berth),
		ScheduledDate:    wo.ScheduledDate,
		JobTypeKey:       wo.JobTypeKey,
		Notes:            wo.Notes,
		Assignments:      assignments,
	}
}

func (s *Service) toListResponse(orders []repository.WorkOrder) transport.WorkOrderListResponse {
	items := make([]transport.WorkOrderResponse, 0, len(orders))
	for _, wo := range orders {
		items = append(items, s.toResponse(wo))
	}
	return transport.WorkOrderListResponse{Items: items, Total: len(items)}
}
