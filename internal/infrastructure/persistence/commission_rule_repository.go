package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/logistics/backend/internal/domain/pricing"
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/logistics/backend/internal/infrastructure/persistence/models"
)

// GormCommissionRuleRepository implements pricing.CommissionRuleRepository using GORM
type GormCommissionRuleRepository struct {
	db *gorm.DB
}

// NewGormCommissionRuleRepository creates a new GormCommissionRuleRepository
func NewGormCommissionRuleRepository(db *gorm.DB) *GormCommissionRuleRepository {
	return &GormCommissionRuleRepository{db: db}
}

// FindByID finds a commission rule by its ID
func (r *GormCommissionRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*pricing.CommissionRule, error) {
	var model models.CommissionRuleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCountry finds all commission rules for a country, tightest bracket first
func (r *GormCommissionRuleRepository) FindByCountry(ctx context.Context, country string) ([]*pricing.CommissionRule, error) {
	var ruleModels []models.CommissionRuleModel
	if err := r.db.WithContext(ctx).
		Where("LOWER(country) = ?", strings.ToLower(strings.TrimSpace(country))).
		Order("min_value DESC").
		Find(&ruleModels).Error; err != nil {
		return nil, err
	}
	return toDomainRules(ruleModels), nil
}

// FindAll finds all commission rules matching the filter
func (r *GormCommissionRuleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*pricing.CommissionRule, error) {
	var ruleModels []models.CommissionRuleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CommissionRuleModel{}), filter)

	if err := query.Find(&ruleModels).Error; err != nil {
		return nil, err
	}
	return toDomainRules(ruleModels), nil
}

// Count counts commission rules matching the filter
func (r *GormCommissionRuleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&models.CommissionRuleModel{}), filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a commission rule
func (r *GormCommissionRuleRepository) Save(ctx context.Context, rule *pricing.CommissionRule) error {
	model := models.CommissionRuleModelFromDomain(rule)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a commission rule
func (r *GormCommissionRuleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CommissionRuleModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// applyFilter applies filter options to the query
func (r *GormCommissionRuleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, ruleSortFields, "country")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	if orderBy == "country" {
		query = query.Order("min_value ASC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormCommissionRuleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("country ILIKE ?", "%"+filter.Search+"%")
	}

	for key, value := range filter.Filters {
		switch key {
		case "country":
			query = query.Where("LOWER(country) = ?", strings.ToLower(value.(string)))
		case "active":
			query = query.Where("active = ?", value)
		}
	}

	return query
}

func toDomainRules(ruleModels []models.CommissionRuleModel) []*pricing.CommissionRule {
	rules := make([]*pricing.CommissionRule, len(ruleModels))
	for i := range ruleModels {
		rules[i] = ruleModels[i].ToDomain()
	}
	return rules
}

var ruleSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"country":    true,
	"min_value":  true,
}
