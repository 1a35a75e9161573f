package pricing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logistics/backend/internal/domain/pricing"
)

// CreateCommissionRuleRequest represents a request to create a commission bracket
type CreateCommissionRuleRequest struct {
	Country    string           `json:"country" binding:"required,min=2,max=100"`
	MinValue   decimal.Decimal  `json:"min_value"`
	MaxValue   *decimal.Decimal `json:"max_value"`
	Percentage decimal.Decimal  `json:"percentage" binding:"required"`
	FixedFee   decimal.Decimal  `json:"fixed_fee"`
}

// UpdateCommissionRuleRequest represents a request to update a commission bracket.
// The rule is rebuilt and revalidated from the merged values.
type UpdateCommissionRuleRequest struct {
	Country    *string          `json:"country" binding:"omitempty,min=2,max=100"`
	MinValue   *decimal.Decimal `json:"min_value"`
	MaxValue   *decimal.Decimal `json:"max_value"`
	Percentage *decimal.Decimal `json:"percentage"`
	FixedFee   *decimal.Decimal `json:"fixed_fee"`
}

// RuleListFilter represents filter options for the commission rule list
type RuleListFilter struct {
	Search   string  `form:"search"`
	Country  *string `form:"country"`
	Active   *bool   `form:"active"`
	Page     int     `form:"page" binding:"omitempty,min=1"`
	PageSize int     `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// CommissionRuleResponse represents a commission bracket in API responses
type CommissionRuleResponse struct {
	ID         uuid.UUID        `json:"id"`
	Country    string           `json:"country"`
	MinValue   decimal.Decimal  `json:"min_value"`
	MaxValue   *decimal.Decimal `json:"max_value,omitempty"`
	Percentage decimal.Decimal  `json:"percentage"`
	FixedFee   decimal.Decimal  `json:"fixed_fee"`
	Active     bool             `json:"active"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// ToCommissionRuleResponse converts a commission rule to a response DTO
func ToCommissionRuleResponse(r *pricing.CommissionRule) CommissionRuleResponse {
	return CommissionRuleResponse{
		ID:         r.ID,
		Country:    r.Country,
		MinValue:   r.MinValue,
		MaxValue:   r.MaxValue,
		Percentage: r.Percentage,
		FixedFee:   r.FixedFee,
		Active:     r.Active,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
