package handler

import (
	"github.com/gestock/backend/internal/application/shop"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale (vente) HTTP requests
type SaleHandler struct {
	BaseHandler
	saleService *shop.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(saleService *shop.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// RegisterRoutes registers the sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	sales := rg.Group("/ventes", middleware.RequireAuthenticated())
	{
		sales.GET("", h.List)
		sales.POST("", h.Create)
	}
}

// List returns one page of the tenant's sales
func (h *SaleHandler) List(c *gin.Context) {
	var input shop.ListInput
	if err := c.ShouldBindQuery(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	infos, meta, err := h.saleService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, infos, meta.Total, meta.Page, meta.PageSize)
}

// Create records a sale
func (h *SaleHandler) Create(c *gin.Context) {
	var input shop.CreateSaleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	info, err := h.saleService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}
