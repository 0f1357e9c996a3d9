// Package closure provides the work order closure bounded context module:
// closure report intake, completeness evaluation, and per-assignee scoring.
package closure

import (
	"marinaops_backend/internal/audit"
	"marinaops_backend/internal/closure/handler"
	"marinaops_backend/internal/closure/repository"
	"marinaops_backend/internal/closure/service"
	"marinaops_backend/internal/events"
	apphttp "marinaops_backend/internal/http"
	"marinaops_backend/platform/logger"
	"marinaops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the closure bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the closure module. The work order and
// job type sources are adapters over their owning modules.
func NewModule(pool *pgxpool.Pool, workOrders service.WorkOrderSource, jobTypes service.JobTypeSource, auditor *audit.Recorder, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, workOrders, jobTypes, auditor, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "closure"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// Repository returns the repository for direct access (leaderboard reads
// monthly score records from it).
func (m *Module) Repository() repository.Repository {
	return m.repo
}

// RegisterRoutes mounts closure routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/work-orders/:id")
	group.POST("/close", m.handler.Close)
	group.POST("/recompute-scores", m.handler.Recompute)
	group.GET("/closure-report", m.handler.GetReport)
	group.GET("/scores", m.handler.GetScores)

	ctx.Admin.POST("/recompute-scores", m.handler.RecomputeBatch)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
