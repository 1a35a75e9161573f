package models

import (
	"github.com/shopspring/decimal"

	"github.com/logistics/backend/internal/domain/pricing"
)

// CommissionRuleModel is the persistence model for a commission bracket.
type CommissionRuleModel struct {
	BaseModel
	Country    string           `gorm:"type:varchar(100);not null;index"`
	MinValue   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	MaxValue   *decimal.Decimal `gorm:"type:decimal(18,4)"`
	Percentage decimal.Decimal  `gorm:"type:decimal(9,6);not null;default:0"`
	FixedFee   decimal.Decimal  `gorm:"type:decimal(18,4);not null;default:0"`
	Active     bool             `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CommissionRuleModel) TableName() string {
	return "commission_rules"
}

// ToDomain converts the persistence model to a domain CommissionRule.
func (m *CommissionRuleModel) ToDomain() *pricing.CommissionRule {
	return &pricing.CommissionRule{
		BaseEntity: m.BaseModel.ToDomain(),
		Country:    m.Country,
		MinValue:   m.MinValue,
		MaxValue:   m.MaxValue,
		Percentage: m.Percentage,
		FixedFee:   m.FixedFee,
		Active:     m.Active,
	}
}

// FromDomain populates the persistence model from a domain CommissionRule.
func (m *CommissionRuleModel) FromDomain(r *pricing.CommissionRule) {
	m.FromDomainBaseEntity(r.BaseEntity)
	m.Country = r.Country
	m.MinValue = r.MinValue
	m.MaxValue = r.MaxValue
	m.Percentage = r.Percentage
	m.FixedFee = r.FixedFee
	m.Active = r.Active
}

// CommissionRuleModelFromDomain creates a new persistence model from a domain CommissionRule.
func CommissionRuleModelFromDomain(r *pricing.CommissionRule) *CommissionRuleModel {
	m := &CommissionRuleModel{}
	m.FromDomain(r)
	return m
}
