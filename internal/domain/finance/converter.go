package finance

import (
	"github.com/logistics/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// CurrencyConverter turns base-currency amounts into the display currency
// for rendering. Stored amounts are never converted; the rate is applied
// only at the presentation boundary.
type CurrencyConverter struct {
	displayCurrency valueobject.Currency
}

// NewCurrencyConverter creates a converter targeting the given display
// currency
func NewCurrencyConverter(displayCurrency valueobject.Currency) *CurrencyConverter {
	if !displayCurrency.IsValid() {
		displayCurrency = valueobject.LYD
	}
	return &CurrencyConverter{displayCurrency: displayCurrency}
}

// DisplayCurrency returns the configured display currency
func (c *CurrencyConverter) DisplayCurrency() valueobject.Currency {
	return c.displayCurrency
}

// ToDisplay converts a base-currency amount using the given exchange rate
// and rounds to cents. A zero or negative rate means no rate has been
// configured; the amount passes through unchanged in the base currency so
// invoices stay usable before the rate is set up.
func (c *CurrencyConverter) ToDisplay(amount valueobject.Money, rate decimal.Decimal) valueobject.Money {
	if !rate.IsPositive() {
		return amount
	}
	converted, _ := valueobject.NewMoney(amount.Amount().Mul(rate).Round(2), c.displayCurrency)
	return converted
}
