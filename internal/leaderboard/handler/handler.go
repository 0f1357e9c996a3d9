package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marinaops_backend/internal/leaderboard/service"
	"marinaops_backend/internal/leaderboard/transport"
	"marinaops_backend/platform/httpkit"
	"marinaops_backend/platform/validator"
)

// Handler handles HTTP requests for leaderboards and evaluations.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidPeriod    = "invalid year or month"
)

// New creates a new leaderboard handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// GetMonth returns the published leaderboard for a month.
// GET /api/v1/leaderboard/:year/:month
func (h *Handler) GetMonth(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	year, month, ok := parsePeriod(c)
	if !ok {
		return
	}

	result, err := h.svc.GetMonth(c.Request.Context(), tenantID, year, month)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetYear returns the rolled-up yearly standing.
// GET /api/v1/leaderboard/:year
func (h *Handler) GetYear(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	year, ok := parseYear(c)
	if !ok {
		return
	}

	result, err := h.svc.GetYear(c.Request.Context(), tenantID, year)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SubmitEvaluation records the monthly assessments for a member.
// POST /api/v1/evaluations
func (h *Handler) SubmitEvaluation(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var req transport.SubmitEvaluationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.SubmitEvaluation(c.Request.Context(), tenantID, identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// PublishMonth triggers aggregation for a month on demand.
// POST /api/v1/admin/leaderboard/:year/:month/publish
func (h *Handler) PublishMonth(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	year, month, ok := parsePeriod(c)
	if !ok {
		return
	}

	result, err := h.svc.PublishMonth(c.Request.Context(), tenantID, year, month)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func parsePeriod(c *gin.Context) (year, month int, ok bool) {
	year, ok = parseYear(c)
	if !ok {
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPeriod, nil)
		return 0, 0, false
	}
	return year, month, true
}

func parseYear(c *gin.Context) (int, bool) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil || year < 2000 || year > 2100 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPeriod, nil)
		return 0, false
	}
	return year, true
}

func requireTenant(c *gin.Context) (uuid.UUID, bool) {
	if identity := httpkit.MustGetIdentity(c); identity == nil {
		return uuid.Nil, false
	}
	return httpkit.MustGetTenantID(c)
}
