package pricing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CommissionRule is one tier of the per-country commission table. A rule
// matches an order when the country equals the rule country and the order's
// pre-commission value falls in [MinValue, MaxValue). A nil MaxValue means
// the tier is open-ended. Percentage is a fraction, 0.15 for 15%.
type CommissionRule struct {
	shared.BaseEntity
	Country    string
	MinValue   decimal.Decimal
	MaxValue   *decimal.Decimal
	Percentage decimal.Decimal
	FixedFee   decimal.Decimal
	Active     bool
}

// NewCommissionRule creates a commission tier
func NewCommissionRule(country string, minValue decimal.Decimal, maxValue *decimal.Decimal, percentage, fixedFee decimal.Decimal) (*CommissionRule, error) {
	country = strings.TrimSpace(country)
	if country == "" {
		return nil, shared.NewDomainError("INVALID_COUNTRY", "Rule country cannot be empty")
	}
	if minValue.IsNegative() {
		return nil, shared.ErrInvalidAmount
	}
	if maxValue != nil && !maxValue.GreaterThan(minValue) {
		return nil, shared.NewDomainError("INVALID_RANGE", "Rule upper bound must exceed the lower bound")
	}
	if percentage.IsNegative() || percentage.GreaterThan(decimal.NewFromInt(1)) {
		return nil, shared.NewDomainError("INVALID_PERCENTAGE", "Percentage must be a fraction between 0 and 1")
	}
	if fixedFee.IsNegative() {
		return nil, shared.ErrInvalidAmount
	}

	return &CommissionRule{
		BaseEntity: shared.NewBaseEntity(),
		Country:    country,
		MinValue:   minValue,
		MaxValue:   maxValue,
		Percentage: percentage,
		FixedFee:   fixedFee,
		Active:     true,
	}, nil
}

// Matches reports whether this rule applies to the given country and
// pre-commission order value. The upper bound is exclusive so adjacent
// tiers never overlap on the boundary.
func (r *CommissionRule) Matches(country string, value decimal.Decimal) bool {
	if !r.Active {
		return false
	}
	if !strings.EqualFold(r.Country, strings.TrimSpace(country)) {
		return false
	}
	if value.LessThan(r.MinValue) {
		return false
	}
	if r.MaxValue != nil && value.GreaterThanOrEqual(*r.MaxValue) {
		return false
	}
	return true
}

// Apply computes the commission for the given order value:
// value * percentage + fixed fee, rounded to cents once at the end.
func (r *CommissionRule) Apply(value decimal.Decimal) decimal.Decimal {
	return value.Mul(r.Percentage).Add(r.FixedFee).Round(2)
}

// Deactivate takes the rule out of resolution without deleting it
func (r *CommissionRule) Deactivate() {
	r.Active = false
	r.UpdatedAt = time.Now()
}

// Activate puts the rule back into resolution
func (r *CommissionRule) Activate() {
	r.Active = true
	r.UpdatedAt = time.Now()
}

// CommissionRuleRepository defines persistence for the commission table
type CommissionRuleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*CommissionRule, error)
	FindByCountry(ctx context.Context, country string) ([]*CommissionRule, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]*CommissionRule, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Save(ctx context.Context, rule *CommissionRule) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CommissionResolver picks the commission tier for an order.
type CommissionResolver struct {
	rules CommissionRuleRepository
}

// NewCommissionResolver creates a commission resolver
func NewCommissionResolver(rules CommissionRuleRepository) *CommissionResolver {
	return &CommissionResolver{rules: rules}
}

// Resolve finds the matching tier for the country and pre-commission value
// and returns the computed commission. When several tiers match, the one
// with the largest lower bound wins, so the tightest bracket takes
// precedence over a catch-all. Returns ErrNoRuleFound when nothing matches.
func (s *CommissionResolver) Resolve(ctx context.Context, country string, value decimal.Decimal) (decimal.Decimal, *CommissionRule, error) {
	if value.IsNegative() {
		return decimal.Zero, nil, shared.ErrInvalidAmount
	}

	candidates, err := s.rules.FindByCountry(ctx, strings.TrimSpace(country))
	if err != nil {
		return decimal.Zero, nil, err
	}

	var best *CommissionRule
	for _, rule := range candidates {
		if !rule.Matches(country, value) {
			continue
		}
		if best == nil || rule.MinValue.GreaterThan(best.MinValue) {
			best = rule
		}
	}
	if best == nil {
		return decimal.Zero, nil, shared.ErrNoRuleFound
	}

	return best.Apply(value), best, nil
}
