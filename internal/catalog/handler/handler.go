package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"marinaops_backend/internal/catalog/service"
	"marinaops_backend/internal/catalog/transport"
	"marinaops_backend/internal/events"
	"marinaops_backend/platform/httpkit"
	"marinaops_backend/platform/validator"
)

// Handler handles HTTP requests for the job type catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
	bus events.Bus
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid job type ID"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// SetEventBus wires the event bus. Set during module registration, before
// routes are served.
func (h *Handler) SetEventBus(bus events.Bus) {
	h.bus = bus
}

// Provision announces a newly onboarded tenant so every subscribed module
// installs its defaults, and returns the catalog the tenant ends up with.
// Publishing is synchronous: a failed seed surfaces to the caller instead
// of leaving the tenant half-provisioned in silence.
// POST /api/v1/admin/tenants/provision
func (h *Handler) Provision(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	if h.bus == nil {
		httpkit.Error(c, http.StatusServiceUnavailable, "provisioning is not available", nil)
		return
	}

	event := events.TenantProvisioned{
		BaseEvent: events.NewBaseEvent(),
		TenantID:  tenantID,
	}
	if err := h.bus.PublishSync(c.Request.Context(), event); httpkit.HandleError(c, err) {
		return
	}

	catalog, err := h.svc.ListActive(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ProvisionResponse{TenantID: tenantID, Catalog: catalog})
}

// ListActive returns active job types for assignment.
// GET /api/v1/job-types
func (h *Handler) ListActive(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.ListActive(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetByKey retrieves a job type by its key.
// GET /api/v1/job-types/:key
func (h *Handler) GetByKey(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.GetByKey(c.Request.Context(), tenantID, c.Param("key"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// List returns all job types including inactive ones.
// GET /api/v1/admin/job-types
func (h *Handler) List(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	result, err := h.svc.List(c.Request.Context(), tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Create registers a new job type.
// POST /api/v1/admin/job-types
func (h *Handler) Create(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}

	var req transport.CreateJobTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Create(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// Update applies partial changes to a job type.
// PUT /api/v1/admin/job-types/:id
func (h *Handler) Update(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateJobTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Update(c.Request.Context(), tenantID, id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// ToggleActive flips a job type's active flag.
// PATCH /api/v1/admin/job-types/:id/toggle-active
func (h *Handler) ToggleActive(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	jt, err := h.svc.GetByID(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	if err := h.svc.SetActive(c.Request.Context(), tenantID, id, !jt.IsActive); httpkit.HandleError(c, err) {
		return
	}

	result, err := h.svc.GetByID(c.Request.Context(), tenantID, id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Delete removes a job type.
// DELETE /api/v1/admin/job-types/:id
func (h *Handler) Delete(c *gin.Context) {
	tenantID, ok := requireTenant(c)
	if !ok {
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), tenantID, id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

func requireTenant(c *gin.Context) (uuid.UUID, bool) {
	if identity := httpkit.MustGetIdentity(c); identity == nil {
		return uuid.Nil, false
	}
	return httpkit.MustGetTenantID(c)
}
