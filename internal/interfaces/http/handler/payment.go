package handler

import (
	"github.com/gestock/backend/internal/application/billing"
	"github.com/gestock/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// PaymentHandler handles subscription renewal. Exempt from the subscription
// gate: an expired tenant must be able to pay.
type PaymentHandler struct {
	BaseHandler
	paymentService *billing.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *billing.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// RegisterRoutes registers the payment routes
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	payment := rg.Group("/payment", middleware.RequireAuthenticated())
	{
		payment.POST("/confirm", h.Confirm)
	}
}

// Confirm records a confirmed payment and extends the subscription
func (h *PaymentHandler) Confirm(c *gin.Context) {
	var input billing.ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	info, err := h.paymentService.Confirm(c.Request.Context(), input)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, info)
}
