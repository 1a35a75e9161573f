package order

import (
	"github.com/google/uuid"
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeOrder = "Order"

// Event type constants
const (
	EventTypeOrderCreated                = "OrderCreated"
	EventTypeOrderFinancialsRecalculated = "OrderFinancialsRecalculated"
	EventTypeOrderDownPaymentChanged     = "OrderDownPaymentChanged"
	EventTypeOrderStatusChanged          = "OrderStatusChanged"
)

// OrderCreatedEvent is raised when a new order is created
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	CustomerID  uuid.UUID `json:"customer_id"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(o *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderCreated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		CustomerID:      o.CustomerID,
	}
}

// EventType returns the event type name
func (e *OrderCreatedEvent) EventType() string {
	return EventTypeOrderCreated
}

// OrderFinancialsRecalculatedEvent is raised when commission and profit
// figures are recomputed for an order
type OrderFinancialsRecalculatedEvent struct {
	shared.BaseDomainEvent
	OrderID        uuid.UUID       `json:"order_id"`
	OrderNumber    string          `json:"order_number"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Commission     decimal.Decimal `json:"commission"`
	ItemsProfit    decimal.Decimal `json:"items_profit"`
	ShippingProfit decimal.Decimal `json:"shipping_profit"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
}

// NewOrderFinancialsRecalculatedEvent creates a new OrderFinancialsRecalculatedEvent
func NewOrderFinancialsRecalculatedEvent(o *Order) *OrderFinancialsRecalculatedEvent {
	return &OrderFinancialsRecalculatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderFinancialsRecalculated, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		TotalAmount:     o.TotalAmount,
		Commission:      o.Commission,
		ItemsProfit:     o.ItemsProfit,
		ShippingProfit:  o.ShippingProfit,
		TotalProfit:     o.TotalProfit,
	}
}

// EventType returns the event type name
func (e *OrderFinancialsRecalculatedEvent) EventType() string {
	return EventTypeOrderFinancialsRecalculated
}

// OrderDownPaymentChangedEvent is raised when an order's share of the
// customer-level down payment changes
type OrderDownPaymentChangedEvent struct {
	shared.BaseDomainEvent
	OrderID          uuid.UUID       `json:"order_id"`
	OrderNumber      string          `json:"order_number"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
}

// NewOrderDownPaymentChangedEvent creates a new OrderDownPaymentChangedEvent
func NewOrderDownPaymentChangedEvent(o *Order) *OrderDownPaymentChangedEvent {
	return &OrderDownPaymentChangedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventTypeOrderDownPaymentChanged, AggregateTypeOrder, o.ID),
		OrderID:          o.ID,
		OrderNumber:      o.OrderNumber,
		DownPayment:      o.DownPayment,
		RemainingBalance: o.RemainingBalance,
	}
}

// EventType returns the event type name
func (e *OrderDownPaymentChangedEvent) EventType() string {
	return EventTypeOrderDownPaymentChanged
}

// OrderStatusChangedEvent is raised on any lifecycle transition
type OrderStatusChangedEvent struct {
	shared.BaseDomainEvent
	OrderID     uuid.UUID `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	FromStatus  Status    `json:"from_status"`
	ToStatus    Status    `json:"to_status"`
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(o *Order, from Status) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeOrderStatusChanged, AggregateTypeOrder, o.ID),
		OrderID:         o.ID,
		OrderNumber:     o.OrderNumber,
		FromStatus:      from,
		ToStatus:        o.Status,
	}
}

// EventType returns the event type name
func (e *OrderStatusChangedEvent) EventType() string {
	return EventTypeOrderStatusChanged
}
