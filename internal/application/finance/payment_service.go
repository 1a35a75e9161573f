package finance

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/logistics/backend/internal/domain/finance"
	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/partner"
	"github.com/shopspring/decimal"
)

// PaymentService fans a customer-level down payment out over the
// customer's open orders and persists the recomputed shares atomically.
type PaymentService struct {
	orderRepo    order.Repository
	customerRepo partner.CustomerRepository
	allocator    *finance.PaymentAllocator
	logger       *zap.Logger
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	orderRepo order.Repository,
	customerRepo partner.CustomerRepository,
	allocator *finance.PaymentAllocator,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		allocator:    allocator,
		logger:       logger,
	}
}

// UpdateDownPayment sets the customer's total down payment and reallocates
// it proportionally across the customer's open orders. The entire order
// snapshot is loaded, recomputed and written back in one transaction.
func (s *PaymentService) UpdateDownPayment(ctx context.Context, customerID uuid.UUID, req UpdateDownPaymentRequest) (*PaymentUpdateResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindOpenByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	result, err := s.allocator.Allocate(orderPtrs(orders), req.Amount)
	if err != nil {
		return nil, err
	}

	// Allocations come back in input order; apply each share through the
	// aggregate so balances and events stay consistent.
	for i := range orders {
		if err := orders[i].ApplyDownPayment(result.Allocations[i].DownPayment); err != nil {
			return nil, err
		}
	}

	if err := s.orderRepo.SaveAllocations(ctx, orders); err != nil {
		return nil, err
	}

	s.logger.Info("customer down payment reallocated",
		zap.String("customer_id", customer.ID.String()),
		zap.String("total_payment", result.TotalPayment.StringFixed(2)),
		zap.Int("orders", len(orders)),
	)

	return toPaymentUpdateResponse(customer.ID, result, orders), nil
}

// GetCustomerSummary derives the customer's live financial position from
// the current order set. Nothing here is stored; sums are recomputed on
// every read so they can never drift from the orders.
func (s *PaymentService) GetCustomerSummary(ctx context.Context, customerID uuid.UUID) (*CustomerFinancialSummary, error) {
	customer, err := s.customerRepo.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orders, err := s.orderRepo.FindOpenByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, err
	}

	summary := &CustomerFinancialSummary{
		CustomerID:       customer.ID,
		OrderCount:       len(orders),
		TotalAmount:      decimal.Zero,
		DownPayment:      decimal.Zero,
		RemainingBalance: decimal.Zero,
		TotalProfit:      decimal.Zero,
	}
	for i := range orders {
		o := &orders[i]
		summary.TotalAmount = summary.TotalAmount.Add(o.TotalAmount)
		summary.DownPayment = summary.DownPayment.Add(o.DownPayment)
		summary.RemainingBalance = summary.RemainingBalance.Add(o.RemainingBalance)
		summary.TotalProfit = summary.TotalProfit.Add(o.TotalProfit)
	}

	return summary, nil
}

func orderPtrs(orders []order.Order) []*order.Order {
	ptrs := make([]*order.Order, len(orders))
	for i := range orders {
		ptrs[i] = &orders[i]
	}
	return ptrs
}

func toPaymentUpdateResponse(customerID uuid.UUID, result finance.AllocationResult, orders []order.Order) *PaymentUpdateResponse {
	allocations := make([]AllocationResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		allocations[i] = AllocationResponse{
			OrderID:          o.ID,
			OrderNumber:      o.OrderNumber,
			TotalAmount:      o.TotalAmount,
			DownPayment:      o.DownPayment,
			RemainingBalance: o.RemainingBalance,
		}
	}
	return &PaymentUpdateResponse{
		CustomerID:   customerID,
		TotalPayment: result.TotalPayment,
		Allocations:  allocations,
	}
}
