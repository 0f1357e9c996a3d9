// Package catalog provides the job type catalog bounded context module.
// Job types carry the scoring configuration: difficulty multipliers and
// the checklist fields a closure report must complete.
package catalog

import (
	"context"

	"marinaops_backend/internal/catalog/handler"
	"marinaops_backend/internal/catalog/repository"
	"marinaops_backend/internal/catalog/service"
	"marinaops_backend/internal/events"
	apphttp "marinaops_backend/internal/http"
	"marinaops_backend/platform/logger"
	"marinaops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the catalog bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
	log     *logger.Logger
}

// NewModule creates and initializes the catalog module.
func NewModule(pool *pgxpool.Pool, seedPath string, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, seedPath, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
		log:     log,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "catalog"
}

// Service returns the service layer for external use (closure scoring).
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access if needed.
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts catalog routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Protected read-only endpoints (tenant-scoped)
	ctx.Protected.GET("/job-types", m.handler.ListActive)
	ctx.Protected.GET("/job-types/:key", m.handler.GetByKey)

	// Admin-only CRUD endpoints
	adminGroup := ctx.Admin.Group("/job-types")
	adminGroup.GET("", m.handler.List)
	adminGroup.POST("", m.handler.Create)
	adminGroup.PUT("/:id", m.handler.Update)
	adminGroup.PATCH("/:id/toggle-active", m.handler.ToggleActive)
	adminGroup.DELETE("/:id", m.handler.Delete)

	// Tenant onboarding entry point; publishes the provisioning event that
	// the seeding subscription below reacts to.
	ctx.Admin.POST("/tenants/provision", m.handler.Provision)
}

// RegisterHandlers subscribes to domain events for seeding tenant defaults
// and hands the bus to the handler so provisioning can publish them.
func (m *Module) RegisterHandlers(bus *events.InMemoryBus) {
	m.handler.SetEventBus(bus)
	bus.Subscribe(events.TenantProvisioned{}.EventName(), m)
}

// Handle routes events to the appropriate handler method.
func (m *Module) Handle(ctx context.Context, event events.Event) error {
	switch e := event.(type) {
	case events.TenantProvisioned:
		return m.service.SeedDefaults(ctx, e.TenantID)
	}
	return nil
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
