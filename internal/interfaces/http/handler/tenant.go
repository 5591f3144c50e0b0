package handler

import (
	"github.com/gestock/backend/internal/application/identity"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// TenantHandler exposes the caller's own tenant. These routes stay reachable
// for expired tenants so the client can show the account state and offer the
// renewal flow.
type TenantHandler struct {
	BaseHandler
	tenantService *identity.TenantService
}

// NewTenantHandler creates a new tenant handler
func NewTenantHandler(tenantService *identity.TenantService) *TenantHandler {
	return &TenantHandler{tenantService: tenantService}
}

// RegisterRoutes registers the tenant routes
func (h *TenantHandler) RegisterRoutes(rg *gin.RouterGroup) {
	tenant := rg.Group("/tenant", middleware.RequireAuthenticated())
	{
		tenant.GET("/info", h.Info)
		tenant.PUT("/info", middleware.RequireAdmin(), h.Rename)
	}
}

// Info returns the caller's tenant
func (h *TenantHandler) Info(c *gin.Context) {
	info, err := h.tenantService.CurrentTenant(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}

// renameRequest carries the new tenant name
type renameRequest struct {
	Name string `json:"name" binding:"required"`
}

// Rename updates the tenant's display name
func (h *TenantHandler) Rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	info, err := h.tenantService.RenameTenant(c.Request.Context(), req.Name)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}
