package finance

import (
	"sort"

	"github.com/google/uuid"
	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Allocation is one order's share of a customer-level payment
type Allocation struct {
	OrderID     uuid.UUID
	OrderNumber string
	Total       decimal.Decimal
	DownPayment decimal.Decimal
}

// AllocationResult is the outcome of fanning a customer payment out over
// the customer's open orders
type AllocationResult struct {
	// TotalPayment is the amount actually distributed after clamping to
	// the combined order total.
	TotalPayment decimal.Decimal
	Allocations  []Allocation
}

// PaymentAllocator distributes a customer-level down payment across the
// customer's open orders in proportion to each order's total.
type PaymentAllocator struct{}

// NewPaymentAllocator creates a payment allocator
func NewPaymentAllocator() *PaymentAllocator {
	return &PaymentAllocator{}
}

// Allocate splits newTotalPayment over the given open orders.
//
// Each order receives its proportional share of the payment, rounded to
// cents. Rounding leftovers are corrected a cent at a time starting from
// the order with the largest total so the shares always sum to the
// payment exactly while every share stays inside [0, total]; ties on
// total break toward the oldest order. The payment is clamped into
// [0, sum of totals], and orders with a zero total receive nothing. An
// empty order set, or one whose totals sum to zero, fails with
// ErrNothingToAllocate since a proportional split is undefined.
func (a *PaymentAllocator) Allocate(orders []*order.Order, newTotalPayment decimal.Decimal) (AllocationResult, error) {
	grandTotal := decimal.Zero
	for _, o := range orders {
		grandTotal = grandTotal.Add(o.TotalAmount)
	}
	if !grandTotal.IsPositive() {
		return AllocationResult{}, shared.ErrNothingToAllocate
	}

	payment := newTotalPayment.Round(2)
	if payment.IsNegative() {
		payment = decimal.Zero
	}
	if payment.GreaterThan(grandTotal) {
		payment = grandTotal
	}

	allocations := make([]Allocation, len(orders))
	allocated := decimal.Zero
	for i, o := range orders {
		share := payment.Mul(o.TotalAmount).Div(grandTotal).Round(2)
		allocations[i] = Allocation{
			OrderID:     o.ID,
			OrderNumber: o.OrderNumber,
			Total:       o.TotalAmount,
			DownPayment: share,
		}
		allocated = allocated.Add(share)
	}

	// Correct the rounding drift one cent at a time, largest orders
	// first, skipping any order whose share would leave [0, total]. The
	// clamp above guarantees the remaining orders can absorb whatever a
	// saturated one cannot.
	remainder := payment.Sub(allocated)
	if !remainder.IsZero() {
		cent := decimal.New(1, -2)
		if remainder.IsNegative() {
			cent = cent.Neg()
		}
		for _, i := range orderIndexesByTotalDesc(orders) {
			for !remainder.IsZero() {
				adjusted := allocations[i].DownPayment.Add(cent)
				if adjusted.IsNegative() || adjusted.GreaterThan(allocations[i].Total) {
					break
				}
				allocations[i].DownPayment = adjusted
				remainder = remainder.Sub(cent)
			}
			if remainder.IsZero() {
				break
			}
		}
	}

	return AllocationResult{
		TotalPayment: payment,
		Allocations:  allocations,
	}, nil
}

// orderIndexesByTotalDesc returns the order indexes sorted by descending
// total, preferring the earliest created on ties.
func orderIndexesByTotalDesc(orders []*order.Order) []int {
	idx := make([]int, len(orders))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		oa, ob := orders[idx[a]], orders[idx[b]]
		if !oa.TotalAmount.Equal(ob.TotalAmount) {
			return oa.TotalAmount.GreaterThan(ob.TotalAmount)
		}
		return oa.CreatedAt.Before(ob.CreatedAt)
	})
	return idx
}
