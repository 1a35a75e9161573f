package trade

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/logistics/backend/internal/domain/finance"
	"github.com/logistics/backend/internal/domain/order"
	"github.com/logistics/backend/internal/domain/partner"
	"github.com/logistics/backend/internal/domain/pricing"
	"github.com/logistics/backend/internal/domain/shared"
)

// OrderService handles order business operations. Every mutation that can
// change an order's value runs the financial recomputation before the save;
// an order is never persisted with stale commission or profit figures.
type OrderService struct {
	orderRepo    order.Repository
	customerRepo partner.CustomerRepository
	resolver     *pricing.CommissionResolver
	profitCalc   *pricing.ProfitCalculator
	settingRepo  finance.SettingRepository
	logger       *zap.Logger
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo order.Repository,
	customerRepo partner.CustomerRepository,
	resolver *pricing.CommissionResolver,
	profitCalc *pricing.ProfitCalculator,
	settingRepo finance.SettingRepository,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		resolver:     resolver,
		profitCalc:   profitCalc,
		settingRepo:  settingRepo,
		logger:       logger,
	}
}

// Create creates a new order with its items and computes its financials
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if !customer.IsActive() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot create an order for an inactive customer")
	}

	orderNumber, err := s.orderRepo.NextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(orderNumber, customer.ID, req.ShippingCost)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		item, err := o.AddItem(input.Description, input.Quantity, input.UnitPrice)
		if err != nil {
			return nil, err
		}
		if input.MarkupProfit != nil {
			item.SetMarkupProfit(*input.MarkupProfit)
		}
	}

	if req.Notes != "" {
		o.SetNotes(req.Notes)
	}

	if err := s.recomputeFinancials(ctx, o, customer.Country); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, o); err != nil {
		return nil, err
	}

	response := ToOrderResponse(o)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// GetByOrderNumber retrieves an order by its order number
func (s *OrderService) GetByOrderNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderListItemResponse, int64, error) {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = filter.Status.String()
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = *filter.EndDate
	}

	orders, err := s.orderRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.orderRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToOrderListItemResponses(orders), total, nil
}

// Update updates a pending order and recomputes its financials
func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req UpdateOrderRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ShippingCost != nil {
		if err := o.SetShippingCost(*req.ShippingCost); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		o.SetNotes(*req.Notes)
	}

	return s.recomputeAndSave(ctx, o)
}

// AddItem adds an item to a pending order and recomputes its financials
func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req AddOrderItemRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item, err := o.AddItem(req.Description, req.Quantity, req.UnitPrice)
	if err != nil {
		return nil, err
	}
	if req.MarkupProfit != nil {
		item.SetMarkupProfit(*req.MarkupProfit)
	}

	return s.recomputeAndSave(ctx, o)
}

// UpdateItem updates an order item and recomputes the order's financials
func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req UpdateOrderItemRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	item := o.GetItem(itemID)
	if item == nil {
		return nil, shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
	}

	if req.Quantity != nil {
		if err := item.UpdateQuantity(*req.Quantity); err != nil {
			return nil, err
		}
	}
	if req.MarkupProfit != nil {
		item.SetMarkupProfit(*req.MarkupProfit)
	}
	if req.OriginalPrice != nil && req.DiscountedPrice != nil {
		if err := item.SetDiscount(*req.OriginalPrice, *req.DiscountedPrice); err != nil {
			return nil, err
		}
	}

	return s.recomputeAndSave(ctx, o)
}

// RemoveItem removes an item from a pending order and recomputes its
// financials
func (s *OrderService) RemoveItem(ctx context.Context, orderID, itemID uuid.UUID) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.RemoveItem(itemID); err != nil {
		return nil, err
	}

	return s.recomputeAndSave(ctx, o)
}

// SetShippingActual records the real carrier cost and recomputes profit
func (s *OrderService) SetShippingActual(ctx context.Context, orderID uuid.UUID, req SetShippingActualRequest) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := o.SetShippingCostActual(req.ShippingCostActual); err != nil {
		return nil, err
	}

	return s.recomputeAndSave(ctx, o)
}

// MarkProcessing transitions an order to PROCESSING
func (s *OrderService) MarkProcessing(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*order.Order).MarkProcessing)
}

// MarkShipped transitions an order to SHIPPED
func (s *OrderService) MarkShipped(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*order.Order).MarkShipped)
}

// MarkDelivered transitions an order to DELIVERED
func (s *OrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	return s.transition(ctx, id, (*order.Order).MarkDelivered)
}

// Cancel cancels an order
func (s *OrderService) Cancel(ctx context.Context, id uuid.UUID, req CancelOrderRequest) (*OrderResponse, error) {
	return s.transition(ctx, id, func(o *order.Order) error {
		return o.Cancel(req.Reason)
	})
}

func (s *OrderService) transition(ctx context.Context, id uuid.UUID, apply func(*order.Order) error) (*OrderResponse, error) {
	o, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(o); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// recomputeAndSave reruns the financial computation for an already-loaded
// order and persists it with an optimistic lock
func (s *OrderService) recomputeAndSave(ctx context.Context, o *order.Order) (*OrderResponse, error) {
	customer, err := s.customerRepo.FindByID(ctx, o.CustomerID)
	if err != nil {
		return nil, err
	}
	if err := s.recomputeFinancials(ctx, o, customer.Country); err != nil {
		return nil, err
	}
	if err := s.orderRepo.SaveWithLock(ctx, o); err != nil {
		return nil, err
	}
	response := ToOrderResponse(o)
	return &response, nil
}

// recomputeFinancials resolves commission and profit for the order from a
// snapshot of its current items and the commission table. When no rule
// matches the customer's country, the configured default percentage is
// applied instead and the fallback is logged. A profit failure rejects the
// whole save.
func (s *OrderService) recomputeFinancials(ctx context.Context, o *order.Order, country string) error {
	value := o.PreCommissionValue()

	commission, _, err := s.resolver.Resolve(ctx, country, value)
	if err != nil {
		if !errors.Is(err, shared.ErrNoRuleFound) {
			return err
		}
		commission, err = s.defaultCommission(ctx, value)
		if err != nil {
			return err
		}
		s.logger.Warn("no commission rule matched, applied default percentage",
			zap.String("order_number", o.OrderNumber),
			zap.String("country", country),
			zap.String("value", value.StringFixed(2)),
			zap.String("commission", commission.StringFixed(2)),
		)
	}

	breakdown, err := s.profitCalc.Calculate(o)
	if err != nil {
		return err
	}

	return o.ApplyFinancials(commission, breakdown.ItemsProfit, breakdown.ShippingProfit)
}

// defaultCommission computes the fallback commission from the configured
// default percentage. A missing or unparsable setting means no fallback
// policy is configured and zero commission applies.
func (s *OrderService) defaultCommission(ctx context.Context, value decimal.Decimal) (decimal.Decimal, error) {
	setting, err := s.settingRepo.FindByKey(ctx, finance.SettingKeyDefaultCommissionPct)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}

	pct, err := setting.DecimalValue()
	if err != nil || pct.IsNegative() {
		return decimal.Zero, nil
	}

	return value.Mul(pct).Round(2), nil
}
