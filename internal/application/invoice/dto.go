package invoice

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLineResponse is one item line on the invoice, in the display
// currency
type InvoiceLineResponse struct {
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// InvoiceResponse is the assembled invoice view. All monetary figures are
// converted to the display currency with a single rate snapshot.
type InvoiceResponse struct {
	OrderID          uuid.UUID             `json:"order_id"`
	OrderNumber      string                `json:"order_number"`
	IssuedAt         time.Time             `json:"issued_at"`
	Language         string                `json:"language"`
	CustomerName     string                `json:"customer_name"`
	CustomerCountry  string                `json:"customer_country"`
	CustomerAddress  string                `json:"customer_address,omitempty"`
	Currency         string                `json:"currency"`
	Lines            []InvoiceLineResponse `json:"lines"`
	ItemsSubtotal    decimal.Decimal       `json:"items_subtotal"`
	ShippingCost     decimal.Decimal       `json:"shipping_cost"`
	Commission       decimal.Decimal       `json:"commission"`
	TotalAmount      decimal.Decimal       `json:"total_amount"`
	DownPayment      decimal.Decimal       `json:"down_payment"`
	RemainingBalance decimal.Decimal       `json:"remaining_balance"`
	TotalInWords     string                `json:"total_in_words"`
	RemainingInWords string                `json:"remaining_in_words"`
}
