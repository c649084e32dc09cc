// Package handler exposes the leads bounded context over HTTP.
package handler

import (
	"net/http"

	"crm_intel_backend/internal/leads/intelligence"
	"crm_intel_backend/internal/leads/management"
	"crm_intel_backend/internal/leads/transport"
	"crm_intel_backend/platform/httpkit"
	"crm_intel_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid lead id"
)

// Handler handles HTTP requests for leads.
type Handler struct {
	intel *intelligence.Service
	mgmt  *management.Service
	val   *validator.Validator
}

// New creates a new leads handler.
func New(intel *intelligence.Service, mgmt *management.Service, val *validator.Validator) *Handler {
	return &Handler{intel: intel, mgmt: mgmt, val: val}
}

// ListIntelligent returns the filtered listing with derived signals.
// GET /api/v1/leads/intelligent
func (h *Handler) ListIntelligent(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	result := h.intel.ListIntelligent(c.Request.Context(), req.ToListParams(tenantID))
	httpkit.OK(c, transport.ToIntelligentListResponse(result))
}

// GetSignals returns the signal bundle for one lead.
// GET /api/v1/leads/:id/signals
func (h *Handler) GetSignals(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	enriched, err := h.intel.GetSignals(c.Request.Context(), id, tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToEnrichedLeadResponse(enriched))
}

// GetAnalytics lists, enriches and aggregates server-side.
// GET /api/v1/leads/analytics
func (h *Handler) GetAnalytics(c *gin.Context) {
	var req transport.ListLeadsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	summary, success := h.intel.Analytics(c.Request.Context(), req.ToListParams(tenantID))
	if !success {
		httpkit.Error(c, http.StatusServiceUnavailable, "lead store unavailable", nil)
		return
	}
	httpkit.OK(c, summary)
}

// PostAnalytics aggregates over an explicit set of lead IDs.
// POST /api/v1/leads/analytics
func (h *Handler) PostAnalytics(c *gin.Context) {
	var req transport.AnalyticsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	summary, err := h.intel.AnalyticsFor(c.Request.Context(), tenantID, req.LeadIDs)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, summary)
}

// CreateLead creates a new lead.
// POST /api/v1/leads
func (h *Handler) CreateLead(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.mgmt.Create(c.Request.Context(), tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// GetLead retrieves a single lead without signals.
// GET /api/v1/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.mgmt.GetByID(c.Request.Context(), id, tenantID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateLead updates a lead's fields.
// PUT /api/v1/leads/:id
func (h *Handler) UpdateLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	var req transport.UpdateLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	result, err := h.mgmt.Update(c.Request.Context(), id, tenantID, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteLead removes a lead.
// DELETE /api/v1/leads/:id
func (h *Handler) DeleteLead(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}
	tenantID, ok := httpkit.MustGetTenantID(c)
	if !ok {
		return
	}

	if err := h.mgmt.Delete(c.Request.Context(), id, tenantID); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
