package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	invoiceapp "github.com/logistics/backend/internal/application/invoice"
	"github.com/logistics/backend/internal/domain/invoice"
)

// InvoiceHandler handles invoice API endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *invoiceapp.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler
func NewInvoiceHandler(invoiceService *invoiceapp.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// GetInvoice handles GET /orders/:id/invoice
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid order ID format")
		return
	}

	lang := invoice.Language(c.DefaultQuery("lang", string(invoice.LanguageEnglish)))
	if !lang.IsValid() {
		h.BadRequest(c, "Unsupported invoice language, expected 'en' or 'ar'")
		return
	}

	inv, err := h.invoiceService.GetInvoice(c.Request.Context(), orderID, lang)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, inv)
}
