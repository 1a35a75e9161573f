package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	appfinance "github.com/logistics/backend/internal/application/finance"
	"github.com/logistics/backend/internal/domain/finance"
	"github.com/logistics/backend/internal/domain/report"
	"github.com/logistics/backend/internal/domain/shared/valueobject"
)

// ReportService provides the financial reports. Stored figures are base
// currency; the display conversion uses one rate snapshot per report so
// every figure on the same report is consistent.
type ReportService struct {
	reportRepo report.Repository
	settings   *appfinance.SettingsService
	converter  *finance.CurrencyConverter
}

// NewReportService creates a new ReportService
func NewReportService(
	reportRepo report.Repository,
	settings *appfinance.SettingsService,
	converter *finance.CurrencyConverter,
) *ReportService {
	return &ReportService{
		reportRepo: reportRepo,
		settings:   settings,
		converter:  converter,
	}
}

// ReportFilter defines the request filter for reports
type ReportFilter struct {
	StartDate  time.Time  `form:"start_date" binding:"required"`
	EndDate    time.Time  `form:"end_date" binding:"required,gtfield=StartDate"`
	CustomerID *uuid.UUID `form:"customer_id"`
}

// ProfitSummaryResponse is the aggregated profit report
type ProfitSummaryResponse struct {
	PeriodStart     time.Time       `json:"period_start"`
	PeriodEnd       time.Time       `json:"period_end"`
	Currency        string          `json:"currency"`
	OrderCount      int64           `json:"order_count"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalCommission decimal.Decimal `json:"total_commission"`
	ItemsProfit     decimal.Decimal `json:"items_profit"`
	ShippingProfit  decimal.Decimal `json:"shipping_profit"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
}

// CountryCommissionResponse is one country's commission aggregate
type CountryCommissionResponse struct {
	Country         string          `json:"country"`
	OrderCount      int64           `json:"order_count"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalCommission decimal.Decimal `json:"total_commission"`
}

// CommissionByCountryResponse is the per-country commission report
type CommissionByCountryResponse struct {
	PeriodStart time.Time                   `json:"period_start"`
	PeriodEnd   time.Time                   `json:"period_end"`
	Currency    string                      `json:"currency"`
	Countries   []CountryCommissionResponse `json:"countries"`
}

// GetProfitSummary returns the profit aggregates for the period
func (s *ReportService) GetProfitSummary(ctx context.Context, filter ReportFilter) (*ProfitSummaryResponse, error) {
	summary, err := s.reportRepo.ProfitSummary(ctx, report.Filter{
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		CustomerID: filter.CustomerID,
	})
	if err != nil {
		return nil, err
	}

	rate, err := s.settings.ReadRateSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	display := func(d decimal.Decimal) decimal.Decimal {
		return s.converter.ToDisplay(valueobject.NewMoneyUSD(d), rate).Amount()
	}
	currency := valueobject.BaseCurrency
	if rate.IsPositive() {
		currency = s.converter.DisplayCurrency()
	}

	return &ProfitSummaryResponse{
		PeriodStart:     filter.StartDate,
		PeriodEnd:       filter.EndDate,
		Currency:        string(currency),
		OrderCount:      summary.OrderCount,
		TotalRevenue:    display(summary.TotalRevenue),
		TotalCommission: display(summary.TotalCommission),
		ItemsProfit:     display(summary.ItemsProfit),
		ShippingProfit:  display(summary.ShippingProfit),
		TotalProfit:     display(summary.TotalProfit),
	}, nil
}

// GetCommissionByCountry returns the commission aggregates grouped by
// customer country
func (s *ReportService) GetCommissionByCountry(ctx context.Context, filter ReportFilter) (*CommissionByCountryResponse, error) {
	rows, err := s.reportRepo.CommissionByCountry(ctx, report.Filter{
		StartDate:  filter.StartDate,
		EndDate:    filter.EndDate,
		CustomerID: filter.CustomerID,
	})
	if err != nil {
		return nil, err
	}

	rate, err := s.settings.ReadRateSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	display := func(d decimal.Decimal) decimal.Decimal {
		return s.converter.ToDisplay(valueobject.NewMoneyUSD(d), rate).Amount()
	}
	currency := valueobject.BaseCurrency
	if rate.IsPositive() {
		currency = s.converter.DisplayCurrency()
	}

	countries := make([]CountryCommissionResponse, len(rows))
	for i, row := range rows {
		countries[i] = CountryCommissionResponse{
			Country:         row.Country,
			OrderCount:      row.OrderCount,
			TotalValue:      display(row.TotalValue),
			TotalCommission: display(row.TotalCommission),
		}
	}

	return &CommissionByCountryResponse{
		PeriodStart: filter.StartDate,
		PeriodEnd:   filter.EndDate,
		Currency:    string(currency),
		Countries:   countries,
	}, nil
}
