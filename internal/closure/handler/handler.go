package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marinaops_backend/internal/closure/service"
	"marinaops_backend/internal/closure/transport"
	"marinaops_backend/platform/httpkit"
	"marinaops_backend/platform/validator"
)

// Handler handles HTTP requests for work order closure and scoring.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid work order ID"
)

// New creates a new closure handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Close submits a closure report and computes scores.
// POST /api/v1/work-orders/:id/close
func (h *Handler) Close(c *gin.Context) {
	actorID, tenantID, workOrderID, ok := h.requireContext(c)
	if !ok {
		return
	}

	var req transport.CloseWorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Close(c.Request.Context(), tenantID, actorID, workOrderID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Recompute re-runs scoring for a closed work order.
// POST /api/v1/work-orders/:id/recompute-scores
func (h *Handler) Recompute(c *gin.Context) {
	actorID, tenantID, workOrderID, ok := h.requireContext(c)
	if !ok {
		return
	}

	result, err := h.svc.Recompute(c.Request.Context(), tenantID, actorID, workOrderID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// RecomputeBatch recomputes scores for multiple work orders.
// POST /api/v1/admin/recompute-scores
func (h *Handler) RecomputeBatch(c *gin.Context) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	var req transport.RecomputeBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.RecomputeBatch(c.Request.Context(), tenantID, identity.UserID(), req.WorkOrderIDs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetReport returns the stored closure report.
// GET /api/v1/work-orders/:id/closure-report
func (h *Handler) GetReport(c *gin.Context) {
	_, tenantID, workOrderID, ok := h.requireContext(c)
	if !ok {
		return
	}

	result, err := h.svc.GetReport(c.Request.Context(), tenantID, workOrderID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetScores returns the computed scores for a closed work order.
// GET /api/v1/work-orders/:id/scores
func (h *Handler) GetScores(c *gin.Context) {
	_, tenantID, workOrderID, ok := h.requireContext(c)
	if !ok {
		return
	}

	result, err := h.svc.GetScores(c.Request.Context(), tenantID, workOrderID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"items": result, "total": len(result)})
}

func (h *Handler) requireContext(c *gin.Context) (actorID, tenantID, workOrderID uuid.UUID, ok bool) {
	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	tenantID, tenantOK := httpkit.MustGetTenantID(c)
	if !tenantOK {
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	workOrderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, uuid.Nil, uuid.Nil, false
	}
	return identity.UserID(), tenantID, workOrderID, true
}
