package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/logistics/backend/internal/domain/pricing"
	"github.com/logistics/backend/internal/domain/shared"
)

// RuleService manages the commission bracket table
type RuleService struct {
	ruleRepo pricing.CommissionRuleRepository
}

// NewRuleService creates a new RuleService
func NewRuleService(ruleRepo pricing.CommissionRuleRepository) *RuleService {
	return &RuleService{ruleRepo: ruleRepo}
}

// Create creates a new commission rule
func (s *RuleService) Create(ctx context.Context, req CreateCommissionRuleRequest) (*CommissionRuleResponse, error) {
	rule, err := pricing.NewCommissionRule(req.Country, req.MinValue, req.MaxValue, req.Percentage, req.FixedFee)
	if err != nil {
		return nil, err
	}

	if err := s.ruleRepo.Save(ctx, rule); err != nil {
		return nil, err
	}

	response := ToCommissionRuleResponse(rule)
	return &response, nil
}

// GetByID retrieves a commission rule by ID
func (s *RuleService) GetByID(ctx context.Context, id uuid.UUID) (*CommissionRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCommissionRuleResponse(rule)
	return &response, nil
}

// List retrieves commission rules matching the filter
func (s *RuleService) List(ctx context.Context, filter RuleListFilter) ([]CommissionRuleResponse, int64, error) {
	repoFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		repoFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		repoFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		repoFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		repoFilter.OrderDir = filter.OrderDir
	}
	repoFilter.Search = filter.Search
	if filter.Country != nil {
		repoFilter.Filters["country"] = *filter.Country
	}
	if filter.Active != nil {
		repoFilter.Filters["active"] = *filter.Active
	}

	rules, err := s.ruleRepo.FindAll(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.ruleRepo.Count(ctx, repoFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]CommissionRuleResponse, len(rules))
	for i, rule := range rules {
		responses[i] = ToCommissionRuleResponse(rule)
	}
	return responses, total, nil
}

// Update rebuilds a commission rule from the merged values and revalidates it
func (s *RuleService) Update(ctx context.Context, id uuid.UUID, req UpdateCommissionRuleRequest) (*CommissionRuleResponse, error) {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	country := rule.Country
	if req.Country != nil {
		country = *req.Country
	}
	minValue := rule.MinValue
	if req.MinValue != nil {
		minValue = *req.MinValue
	}
	maxValue := rule.MaxValue
	if req.MaxValue != nil {
		maxValue = req.MaxValue
	}
	percentage := rule.Percentage
	if req.Percentage != nil {
		percentage = *req.Percentage
	}
	fixedFee := rule.FixedFee
	if req.FixedFee != nil {
		fixedFee = *req.FixedFee
	}

	updated, err := pricing.NewCommissionRule(country, minValue, maxValue, percentage, fixedFee)
	if err != nil {
		return nil, err
	}

	// Keep the original identity; only the bracket values change
	updated.BaseEntity = rule.BaseEntity
	updated.UpdatedAt = time.Now()
	updated.Active = rule.Active

	if err := s.ruleRepo.Save(ctx, updated); err != nil {
		return nil, err
	}

	response := ToCommissionRuleResponse(updated)
	return &response, nil
}

// Activate makes a rule eligible for matching again
func (s *RuleService) Activate(ctx context.Context, id uuid.UUID) error {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	rule.Activate()
	return s.ruleRepo.Save(ctx, rule)
}

// Deactivate excludes a rule from matching without deleting it
func (s *RuleService) Deactivate(ctx context.Context, id uuid.UUID) error {
	rule, err := s.ruleRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	rule.Deactivate()
	return s.ruleRepo.Save(ctx, rule)
}

// Delete removes a commission rule
func (s *RuleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.ruleRepo.Delete(ctx, id)
}
