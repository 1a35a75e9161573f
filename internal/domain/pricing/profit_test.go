package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/shared"
)

func buildOrder(t *testing.T, shipping float64) *order.Order {
	t.Helper()
	o, err := order.NewOrder("ORD-2026-00001", uuid.New(), decimal.NewFromFloat(shipping))
	require.NoError(t, err)
	return o
}

func addItemWithMarkup(t *testing.T, o *order.Order, price float64, markup *float64) {
	t.Helper()
	item, err := o.AddItem("Freight line", 1, decimal.NewFromFloat(price))
	require.NoError(t, err)
	if markup != nil {
		o.GetItem(item.ID).SetMarkupProfit(decimal.NewFromFloat(*markup))
	}
}

func TestProfitCalculator_Calculate(t *testing.T) {
	calc := NewProfitCalculator()

	t.Run("sums line margins and shipping margin", func(t *testing.T) {
		o := buildOrder(t, 20)
		addItemWithMarkup(t, o, 100, floatPtr(10))
		addItemWithMarkup(t, o, 80, floatPtr(15))
		require.NoError(t, o.SetShippingCostActual(decimal.NewFromInt(18)))

		breakdown, err := calc.Calculate(o)
		require.NoError(t, err)
		assert.Equal(t, "25.00", breakdown.ItemsProfit.StringFixed(2))
		assert.Equal(t, "2.00", breakdown.ShippingProfit.StringFixed(2))
		assert.Equal(t, "27.00", breakdown.TotalProfit.StringFixed(2))
	})

	t.Run("shipping profit is zero while actual cost is unknown", func(t *testing.T) {
		o := buildOrder(t, 20)
		addItemWithMarkup(t, o, 100, floatPtr(10))

		breakdown, err := calc.Calculate(o)
		require.NoError(t, err)
		assert.Equal(t, "0.00", breakdown.ShippingProfit.StringFixed(2))
		assert.Equal(t, "10.00", breakdown.TotalProfit.StringFixed(2))
	})

	t.Run("shipping margin can be negative", func(t *testing.T) {
		o := buildOrder(t, 20)
		addItemWithMarkup(t, o, 100, floatPtr(10))
		require.NoError(t, o.SetShippingCostActual(decimal.NewFromInt(25)))

		breakdown, err := calc.Calculate(o)
		require.NoError(t, err)
		assert.Equal(t, "-5.00", breakdown.ShippingProfit.StringFixed(2))
		assert.Equal(t, "5.00", breakdown.TotalProfit.StringFixed(2))
	})

	t.Run("fails when a line is missing its margin", func(t *testing.T) {
		o := buildOrder(t, 20)
		addItemWithMarkup(t, o, 100, floatPtr(10))
		addItemWithMarkup(t, o, 80, nil)

		_, err := calc.Calculate(o)
		assert.ErrorIs(t, err, shared.ErrIncompleteItemData)
	})

	t.Run("empty order has zero profit", func(t *testing.T) {
		o := buildOrder(t, 0)

		breakdown, err := calc.Calculate(o)
		require.NoError(t, err)
		assert.True(t, breakdown.TotalProfit.IsZero())
	})

	t.Run("full financial round trip", func(t *testing.T) {
		// UK order: items 100 + 80, shipping charged 20 vs actual 18,
		// 15% commission on the 200 pre-commission value.
		o := buildOrder(t, 20)
		addItemWithMarkup(t, o, 100, floatPtr(10))
		addItemWithMarkup(t, o, 80, floatPtr(15))
		require.NoError(t, o.SetShippingCostActual(decimal.NewFromInt(18)))

		rule := mustRule(t, "UK", 0, nil, 0.15, 0)
		commission := rule.Apply(o.PreCommissionValue())
		breakdown, err := calc.Calculate(o)
		require.NoError(t, err)
		require.NoError(t, o.ApplyFinancials(commission, breakdown.ItemsProfit, breakdown.ShippingProfit))

		assert.Equal(t, "30.00", o.Commission.StringFixed(2))
		assert.Equal(t, "230.00", o.TotalAmount.StringFixed(2))
		assert.Equal(t, "27.00", o.TotalProfit.StringFixed(2))
		assert.Equal(t, "230.00", o.RemainingBalance.StringFixed(2))
	})
}
