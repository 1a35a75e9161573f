package persistence

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/report"
)

// GormReportRepository implements report.Repository using GORM
type GormReportRepository struct {
	db *gorm.DB
}

// NewGormReportRepository creates a new GormReportRepository
func NewGormReportRepository(db *gorm.DB) *GormReportRepository {
	return &GormReportRepository{db: db}
}

// ProfitSummary returns aggregated financial figures for the period,
// excluding cancelled orders
func (r *GormReportRepository) ProfitSummary(ctx context.Context, filter report.Filter) (*report.ProfitSummary, error) {
	type summaryResult struct {
		OrderCount      int64
		TotalRevenue    decimal.Decimal
		TotalCommission decimal.Decimal
		ItemsProfit     decimal.Decimal
		ShippingProfit  decimal.Decimal
		TotalProfit     decimal.Decimal
	}

	var result summaryResult

	query := r.db.WithContext(ctx).Table("orders o").
		Select(`
			COUNT(o.id) as order_count,
			COALESCE(SUM(o.total_amount), 0) as total_revenue,
			COALESCE(SUM(o.commission), 0) as total_commission,
			COALESCE(SUM(o.items_profit), 0) as items_profit,
			COALESCE(SUM(o.shipping_profit), 0) as shipping_profit,
			COALESCE(SUM(o.total_profit), 0) as total_profit
		`).
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status <> ?", order.StatusCancelled)

	if filter.CustomerID != nil {
		query = query.Where("o.customer_id = ?", *filter.CustomerID)
	}

	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	return &report.ProfitSummary{
		OrderCount:      result.OrderCount,
		TotalRevenue:    result.TotalRevenue,
		TotalCommission: result.TotalCommission,
		ItemsProfit:     result.ItemsProfit,
		ShippingProfit:  result.ShippingProfit,
		TotalProfit:     result.TotalProfit,
	}, nil
}

// CommissionByCountry returns commission totals grouped by customer country,
// largest total first
func (r *GormReportRepository) CommissionByCountry(ctx context.Context, filter report.Filter) ([]report.CountryCommission, error) {
	var rows []report.CountryCommission

	query := r.db.WithContext(ctx).Table("orders o").
		Select(`
			c.country as country,
			COUNT(o.id) as order_count,
			COALESCE(SUM(o.total_amount), 0) as total_value,
			COALESCE(SUM(o.commission), 0) as total_commission
		`).
		Joins("JOIN customers c ON c.id = o.customer_id").
		Where("o.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate).
		Where("o.status <> ?", order.StatusCancelled).
		Group("c.country").
		Order("total_commission DESC")

	if filter.CustomerID != nil {
		query = query.Where("o.customer_id = ?", *filter.CustomerID)
	}

	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
