package pricing

import (
	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProfitBreakdown is the result of a profit computation over one order
type ProfitBreakdown struct {
	ItemsProfit    decimal.Decimal
	ShippingProfit decimal.Decimal
	TotalProfit    decimal.Decimal
}

// ProfitCalculator derives an order's profit from its line margins and
// shipping costs. Commission is a pass-through cost and never enters
// profit.
type ProfitCalculator struct{}

// NewProfitCalculator creates a profit calculator
func NewProfitCalculator() *ProfitCalculator {
	return &ProfitCalculator{}
}

// Calculate computes the profit breakdown for an order.
//
// Items profit is the sum of per-line markup margins; if any line is
// missing its margin the computation fails with ErrIncompleteItemData
// rather than silently understating profit. Shipping profit is the fee
// charged minus the actual carrier cost, reported as zero while the
// actual cost is still unknown.
func (c *ProfitCalculator) Calculate(o *order.Order) (ProfitBreakdown, error) {
	itemsProfit := decimal.Zero
	for _, item := range o.Items {
		if !item.MarkupProfit.Valid {
			return ProfitBreakdown{}, shared.ErrIncompleteItemData
		}
		itemsProfit = itemsProfit.Add(item.MarkupProfit.Decimal)
	}

	shippingProfit := decimal.Zero
	if o.ShippingCostActual.Valid {
		shippingProfit = o.ShippingCost.Sub(o.ShippingCostActual.Decimal)
	}

	itemsProfit = itemsProfit.Round(2)
	shippingProfit = shippingProfit.Round(2)

	return ProfitBreakdown{
		ItemsProfit:    itemsProfit,
		ShippingProfit: shippingProfit,
		TotalProfit:    itemsProfit.Add(shippingProfit).Round(2),
	}, nil
}
