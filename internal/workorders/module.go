// Package workorders provides the work-order bounded context module.
// This module owns the service lifecycle: canonical status, operational
// list ordering, and team assignments.
package workorders

import (
	"marinaops_backend/internal/audit"
	"marinaops_backend/internal/events"
	apphttp "marinaops_backend/internal/http"
	"marinaops_backend/internal/status"
	"marinaops_backend/internal/workorders/handler"
	"marinaops_backend/internal/workorders/repository"
	"marinaops_backend/internal/workorders/service"
	"marinaops_backend/platform/logger"
	"marinaops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the work-orders bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the work-orders module.
func NewModule(pool *pgxpool.Pool, registry *status.Registry, flagshipMarker string, auditor *audit.Recorder, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	ordering := service.NewOrdering(registry, flagshipMarker)
	svc := service.New(repo, registry, ordering, auditor, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "workorders"
}

// Service returns the service layer for external use (closure, digest).
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts work-order routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/work-orders")
	group.GET("", m.handler.List)
	group.GET("/active", m.handler.ListActive)
	group.GET("/:id", m.handler.GetByID)
	group.POST("", m.handler.Create)
	group.PATCH("/:id", m.handler.Update)
	group.PATCH("/:id/status", m.handler.UpdateStatus)
	group.PUT("/:id/team", m.handler.UpdateTeam)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
