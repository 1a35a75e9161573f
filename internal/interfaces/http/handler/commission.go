package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	pricingapp "github.com/logistics/backend/internal/application/pricing"
)

// CommissionRuleHandler handles commission rule API endpoints
type CommissionRuleHandler struct {
	BaseHandler
	ruleService *pricingapp.RuleService
}

// NewCommissionRuleHandler creates a new CommissionRuleHandler
func NewCommissionRuleHandler(ruleService *pricingapp.RuleService) *CommissionRuleHandler {
	return &CommissionRuleHandler{ruleService: ruleService}
}

// Create handles POST /commission-rules
func (h *CommissionRuleHandler) Create(c *gin.Context) {
	var req pricingapp.CreateCommissionRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	rule, err := h.ruleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, rule)
}

// GetByID handles GET /commission-rules/:id
func (h *CommissionRuleHandler) GetByID(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	rule, err := h.ruleService.GetByID(c.Request.Context(), ruleID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rule)
}

// List handles GET /commission-rules
func (h *CommissionRuleHandler) List(c *gin.Context) {
	var filter pricingapp.RuleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.ValidationError(c, err)
		return
	}

	rules, total, err := h.ruleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize == 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, rules, total, page, pageSize)
}

// Update handles PUT /commission-rules/:id
func (h *CommissionRuleHandler) Update(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	var req pricingapp.UpdateCommissionRuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	rule, err := h.ruleService.Update(c.Request.Context(), ruleID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rule)
}

// Activate handles POST /commission-rules/:id/activate
func (h *CommissionRuleHandler) Activate(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	if err := h.ruleService.Activate(c.Request.Context(), ruleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Deactivate handles POST /commission-rules/:id/deactivate
func (h *CommissionRuleHandler) Deactivate(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	if err := h.ruleService.Deactivate(c.Request.Context(), ruleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete handles DELETE /commission-rules/:id
func (h *CommissionRuleHandler) Delete(c *gin.Context) {
	ruleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid rule ID format")
		return
	}

	if err := h.ruleService.Delete(c.Request.Context(), ruleID); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
