package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	financeapp "github.com/logistics/backend/internal/application/finance"
)

// FinanceHandler handles customer payment and settings API endpoints
type FinanceHandler struct {
	BaseHandler
	paymentService  *financeapp.PaymentService
	settingsService *financeapp.SettingsService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(paymentService *financeapp.PaymentService, settingsService *financeapp.SettingsService) *FinanceHandler {
	return &FinanceHandler{paymentService: paymentService, settingsService: settingsService}
}

// UpdateDownPayment handles PUT /customers/:id/down-payment
func (h *FinanceHandler) UpdateDownPayment(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req financeapp.UpdateDownPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	result, err := h.paymentService.UpdateDownPayment(c.Request.Context(), customerID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// GetCustomerSummary handles GET /customers/:id/financial-summary
func (h *FinanceHandler) GetCustomerSummary(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	summary, err := h.paymentService.GetCustomerSummary(c.Request.Context(), customerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// GetExchangeRate handles GET /settings/exchange-rate
func (h *FinanceHandler) GetExchangeRate(c *gin.Context) {
	rate, err := h.settingsService.GetExchangeRate(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rate)
}

// UpdateExchangeRate handles PUT /settings/exchange-rate
func (h *FinanceHandler) UpdateExchangeRate(c *gin.Context) {
	var req financeapp.UpdateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	rate, err := h.settingsService.UpdateExchangeRate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rate)
}
