package report

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Filter bounds a report query to a period and optionally one customer
type Filter struct {
	StartDate  time.Time
	EndDate    time.Time
	CustomerID *uuid.UUID
}

// ProfitSummary is the aggregated financial result over a period.
// Figures are in the base currency; cancelled orders are excluded.
type ProfitSummary struct {
	OrderCount      int64
	TotalRevenue    decimal.Decimal
	TotalCommission decimal.Decimal
	ItemsProfit     decimal.Decimal
	ShippingProfit  decimal.Decimal
	TotalProfit     decimal.Decimal
}

// CountryCommission is the commission aggregate for one customer country
type CountryCommission struct {
	Country         string
	OrderCount      int64
	TotalValue      decimal.Decimal
	TotalCommission decimal.Decimal
}

// Repository runs the aggregation queries behind the reports
type Repository interface {
	ProfitSummary(ctx context.Context, filter Filter) (*ProfitSummary, error)
	CommissionByCountry(ctx context.Context, filter Filter) ([]CountryCommission, error)
}
