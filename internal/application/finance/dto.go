package finance

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UpdateDownPaymentRequest sets a customer's total down payment.
// Zero clears every open order's down payment.
type UpdateDownPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// AllocationResponse is one order's share after a payment update
type AllocationResponse struct {
	OrderID          uuid.UUID       `json:"order_id"`
	OrderNumber      string          `json:"order_number"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// PaymentUpdateResponse is the outcome of a customer payment update
type PaymentUpdateResponse struct {
	CustomerID   uuid.UUID            `json:"customer_id"`
	TotalPayment decimal.Decimal      `json:"total_payment"`
	Allocations  []AllocationResponse `json:"allocations"`
}

// CustomerFinancialSummary is the live financial position of a customer,
// derived from the customer's non-cancelled orders at read time
type CustomerFinancialSummary struct {
	CustomerID       uuid.UUID       `json:"customer_id"`
	OrderCount       int             `json:"order_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
}

// UpdateExchangeRateRequest sets the global USD to LYD exchange rate.
// Zero clears the rate back to the unconfigured state.
type UpdateExchangeRateRequest struct {
	Rate decimal.Decimal `json:"rate"`
}

// ExchangeRateResponse reports the configured exchange rate.
// Configured is false when no positive rate is stored and display amounts
// pass through in the base currency.
type ExchangeRateResponse struct {
	Rate       decimal.Decimal `json:"rate"`
	Configured bool            `json:"configured"`
}
