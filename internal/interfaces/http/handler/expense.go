package handler

import (
	"github.com/gestock/backend/internal/application/shop"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// ExpenseHandler handles expense HTTP requests
type ExpenseHandler struct {
	BaseHandler
	expenseService *shop.ExpenseService
}

// NewExpenseHandler creates a new expense handler
func NewExpenseHandler(expenseService *shop.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// RegisterRoutes registers the expense routes
func (h *ExpenseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	expenses := rg.Group("/depenses", middleware.RequireAuthenticated())
	{
		expenses.GET("", h.List)
		expenses.POST("", h.Create)
	}
}

// List returns one page of the tenant's expenses
func (h *ExpenseHandler) List(c *gin.Context) {
	var input shop.ListInput
	if err := c.ShouldBindQuery(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	infos, meta, err := h.expenseService.List(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, infos, meta.Total, meta.Page, meta.PageSize)
}

// Create records an expense
func (h *ExpenseHandler) Create(c *gin.Context) {
	var input shop.CreateExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	info, err := h.expenseService.Create(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, info)
}
