// Package leaderboard provides the monthly performance bounded context
// module: evaluation intake, composite aggregation, and ranked boards.
package leaderboard

import (
	"marinaops_backend/internal/events"
	apphttp "marinaops_backend/internal/http"
	"marinaops_backend/internal/leaderboard/cache"
	"marinaops_backend/internal/leaderboard/handler"
	"marinaops_backend/internal/leaderboard/repository"
	"marinaops_backend/internal/leaderboard/service"
	"marinaops_backend/platform/logger"
	"marinaops_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leaderboard bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
	repo    repository.Repository
}

// NewModule creates and initializes the leaderboard module. boardCache may
// be nil when Redis is not configured.
func NewModule(pool *pgxpool.Pool, scores service.ScoreSource, boardCache *cache.Cache, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, scores, boardCache, bus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
		repo:    repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leaderboard"
}

// Service returns the service layer for external use (scheduled publication).
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts leaderboard routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/leaderboard/:year", m.handler.GetYear)
	ctx.Protected.GET("/leaderboard/:year/:month", m.handler.GetMonth)
	ctx.Protected.POST("/evaluations", m.handler.SubmitEvaluation)

	ctx.Admin.POST("/leaderboard/:year/:month/publish", m.handler.PublishMonth)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
