package handler

import (
	"net/http"

	"github.com/gestock/backend/internal/application/entitlement"
	"github.com/gestock/backend/internal/application/shop"
	"github.com/gestock/backend/internal/domain/identity"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PurchaseHandler handles purchase (achat) HTTP requests. The CSV export is
// plan-gated: only PREMIUM and ENTERPRISE tenants may use it.
type PurchaseHandler struct {
	BaseHandler
	purchaseService *shop.PurchaseService
	enforcer        *entitlement.Enforcer
}

// NewPurchaseHandler creates a new purchase handler
func NewPurchaseHandler(purchaseService *shop.PurchaseService, enforcer *entitlement.Enforcer) *PurchaseHandler {
	return &PurchaseHandler{purchaseService: purchaseService, enforcer: enforcer}
}

// RegisterRoutes registers the purchase routes. Route paths keep the French
// business terms (achats, ventes, depenses); client apps depend on them.
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	purchases := rg.Group("/achats", middleware.RequireAuthenticated())
	{
		purchases.GET("", h.List)
		purchases.POST("", h.Create)
		purchases.GET("/export",
			middleware.RequirePlans(h.enforcer, identity.PlanPremium, identity.PlanEnterprise),
			h.Export)
	}
}

// List returns one page of the tenant's purchases
func (h *PurchaseHandler) List(c *gin.Context) {
	var input shop.ListInput
	if err := c.ShouldBindQuery(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	infos, meta, err := h.purchaseService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, infos, meta.Total, meta.Page, meta.PageSize)
}

// Create records a purchase
func (h *PurchaseHandler) Create(c *gin.Context) {
	var input shop.CreatePurchaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	info, err := h.purchaseService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}

// Export streams the tenant's purchases as CSV
func (h *PurchaseHandler) Export(c *gin.Context) {
	data, err := h.purchaseService.ExportCSV(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="achats.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}
