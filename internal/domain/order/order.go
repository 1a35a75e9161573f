package order

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/logistics/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle status of an order
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusShipped    Status = "SHIPPED"
	StatusDelivered  Status = "DELIVERED"
	StatusCancelled  Status = "CANCELLED"
)

// IsValid checks if the status is a valid order Status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusProcessing || target == StatusCancelled
	case StatusProcessing:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // terminal states
	}
	return false
}

// Item represents a line item in an order.
// An item belongs to exactly one order and is cascade-deleted with it.
type Item struct {
	ID          uuid.UUID
	OrderID     uuid.UUID
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	// OriginalPrice and DiscountedPrice are the optional pre/post discount
	// unit prices shown on the invoice; UnitPrice is the effective price.
	OriginalPrice   decimal.NullDecimal
	DiscountedPrice decimal.NullDecimal
	// MarkupProfit is the per-line profit margin established at item entry
	// time (selling price minus cost, scaled by quantity). Invalid means the
	// margin has not been entered yet; profit computation must reject the
	// order rather than treat it as zero.
	MarkupProfit decimal.NullDecimal
	TotalPrice   decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewItem creates a new order item
func NewItem(orderID uuid.UUID, description string, quantity int64, unitPrice decimal.Decimal) (*Item, error) {
	if description == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Item description cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.ErrInvalidAmount
	}

	now := time.Now()
	return &Item{
		ID:          uuid.New(),
		OrderID:     orderID,
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// SetMarkupProfit records the per-line profit margin
func (i *Item) SetMarkupProfit(markup decimal.Decimal) {
	i.MarkupProfit = decimal.NewNullDecimal(markup)
	i.UpdatedAt = time.Now()
}

// SetDiscount records the original and discounted unit prices and makes the
// discounted price the effective unit price
func (i *Item) SetDiscount(original, discounted decimal.Decimal) error {
	if original.IsNegative() || discounted.IsNegative() {
		return shared.ErrInvalidAmount
	}
	if discounted.GreaterThan(original) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discounted price cannot exceed original price")
	}
	i.OriginalPrice = decimal.NewNullDecimal(original)
	i.DiscountedPrice = decimal.NewNullDecimal(discounted)
	i.UnitPrice = discounted
	i.TotalPrice = discounted.Mul(decimal.NewFromInt(i.Quantity))
	i.UpdatedAt = time.Now()
	return nil
}

// UpdateQuantity updates the quantity and recalculates the line total
func (i *Item) UpdateQuantity(quantity int64) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	i.Quantity = quantity
	i.TotalPrice = i.UnitPrice.Mul(decimal.NewFromInt(quantity))
	i.UpdatedAt = time.Now()
	return nil
}

// Order represents an order aggregate root.
// All monetary fields are fixed-point decimals in the base currency (USD);
// conversion to a display currency happens only at render time.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber string
	CustomerID  uuid.UUID
	Status      Status
	Items       []Item

	// ShippingCost is the shipping fee charged to the customer.
	// ShippingCostActual is the real carrier cost, unknown until the
	// carrier bills it; while unknown, shipping profit is reported as zero.
	ShippingCost       decimal.Decimal
	ShippingCostActual decimal.NullDecimal

	// Commission is a pass-through cost charged on top of items + shipping.
	// It is part of TotalAmount but never part of profit.
	Commission  decimal.Decimal
	TotalAmount decimal.Decimal

	// DownPayment is this order's share of the customer-level payment;
	// RemainingBalance = TotalAmount - DownPayment, never negative.
	DownPayment      decimal.Decimal
	RemainingBalance decimal.Decimal

	ItemsProfit    decimal.Decimal
	ShippingProfit decimal.Decimal
	TotalProfit    decimal.Decimal

	Notes        string
	ShippedAt    *time.Time
	DeliveredAt  *time.Time
	CancelledAt  *time.Time
	CancelReason string
}

// NewOrder creates a new order in PENDING status
func NewOrder(orderNumber string, customerID uuid.UUID, shippingCost decimal.Decimal) (*Order, error) {
	if orderNumber == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if len(orderNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if shippingCost.IsNegative() {
		return nil, shared.ErrInvalidAmount
	}

	o := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CustomerID:        customerID,
		Status:            StatusPending,
		Items:             make([]Item, 0),
		ShippingCost:      shippingCost,
		Commission:        decimal.Zero,
		TotalAmount:       decimal.Zero,
		DownPayment:       decimal.Zero,
		RemainingBalance:  decimal.Zero,
		ItemsProfit:       decimal.Zero,
		ShippingProfit:    decimal.Zero,
		TotalProfit:       decimal.Zero,
	}

	o.AddDomainEvent(NewOrderCreatedEvent(o))

	return o, nil
}

// AddItem adds a new item to the order.
// Only allowed while the order is still PENDING.
func (o *Order) AddItem(description string, quantity int64, unitPrice decimal.Decimal) (*Item, error) {
	if o.Status != StatusPending {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-pending order")
	}

	item, err := NewItem(o.ID, description, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.UpdatedAt = time.Now()

	return &o.Items[len(o.Items)-1], nil
}

// RemoveItem removes an item from the order.
// Only allowed while the order is still PENDING.
func (o *Order) RemoveItem(itemID uuid.UUID) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot remove items from a non-pending order")
	}

	for idx, item := range o.Items {
		if item.ID == itemID {
			o.Items = append(o.Items[:idx], o.Items[idx+1:]...)
			o.UpdatedAt = time.Now()
			return nil
		}
	}

	return shared.NewDomainError("ITEM_NOT_FOUND", "Order item not found")
}

// GetItem returns an item by its ID
func (o *Order) GetItem(itemID uuid.UUID) *Item {
	for idx := range o.Items {
		if o.Items[idx].ID == itemID {
			return &o.Items[idx]
		}
	}
	return nil
}

// ItemsSubtotal returns the sum of all line totals
func (o *Order) ItemsSubtotal() decimal.Decimal {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.TotalPrice)
	}
	return subtotal
}

// PreCommissionValue is the order value commission tiers are matched
// against: items subtotal plus the shipping fee charged to the customer.
func (o *Order) PreCommissionValue() decimal.Decimal {
	return o.ItemsSubtotal().Add(o.ShippingCost)
}

// SetShippingCost updates the shipping fee charged to the customer.
// Only allowed while the order is still PENDING.
func (o *Order) SetShippingCost(cost decimal.Decimal) error {
	if o.Status != StatusPending {
		return shared.NewDomainError("INVALID_STATE", "Cannot change shipping cost of a non-pending order")
	}
	if cost.IsNegative() {
		return shared.ErrInvalidAmount
	}
	o.ShippingCost = cost
	o.UpdatedAt = time.Now()
	return nil
}

// SetShippingCostActual records the real carrier cost once known
func (o *Order) SetShippingCostActual(actual decimal.Decimal) error {
	if actual.IsNegative() {
		return shared.ErrInvalidAmount
	}
	o.ShippingCostActual = decimal.NewNullDecimal(actual)
	o.UpdatedAt = time.Now()
	return nil
}

// ApplyFinancials stores the recomputed commission and profit figures and
// rebuilds the dependent totals. The arguments come from the pricing engine;
// the aggregate only enforces its own invariants:
//
//	TotalAmount      = items + shipping + commission
//	RemainingBalance = TotalAmount - DownPayment (never negative)
//	TotalProfit      = ItemsProfit + ShippingProfit
func (o *Order) ApplyFinancials(commission, itemsProfit, shippingProfit decimal.Decimal) error {
	if commission.IsNegative() {
		return shared.ErrInvalidAmount
	}

	o.Commission = commission
	o.TotalAmount = o.PreCommissionValue().Add(commission).Round(2)
	o.ItemsProfit = itemsProfit
	o.ShippingProfit = shippingProfit
	o.TotalProfit = itemsProfit.Add(shippingProfit).Round(2)

	// A shrunk total can leave the recorded down payment above the new
	// total; clamp so the remaining balance never goes negative.
	if o.DownPayment.GreaterThan(o.TotalAmount) {
		o.DownPayment = o.TotalAmount
	}
	o.RemainingBalance = o.TotalAmount.Sub(o.DownPayment)
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderFinancialsRecalculatedEvent(o))

	return nil
}

// ApplyDownPayment sets this order's share of the customer-level payment and
// recomputes the remaining balance. Used by payment allocation fan-out.
func (o *Order) ApplyDownPayment(downPayment decimal.Decimal) error {
	if downPayment.IsNegative() {
		return shared.ErrInvalidAmount
	}
	if downPayment.GreaterThan(o.TotalAmount) {
		return shared.NewDomainError("INVALID_AMOUNT", fmt.Sprintf(
			"Down payment %s exceeds order total %s",
			downPayment.StringFixed(2), o.TotalAmount.StringFixed(2)))
	}

	o.DownPayment = downPayment
	o.RemainingBalance = o.TotalAmount.Sub(downPayment)
	o.UpdatedAt = time.Now()

	o.AddDomainEvent(NewOrderDownPaymentChangedEvent(o))

	return nil
}

// SetNotes sets free-form notes on the order
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// IsOpen reports whether the order still participates in payment
// allocation. Cancelled orders are excluded; everything else carries a
// balance until delivered and fully paid.
func (o *Order) IsOpen() bool {
	return o.Status != StatusCancelled
}

// MarkProcessing transitions the order from PENDING to PROCESSING.
// Requires at least one item.
func (o *Order) MarkProcessing() error {
	if !o.Status.CanTransitionTo(StatusProcessing) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot start processing an order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot process an order without items")
	}

	o.changeStatus(StatusProcessing)
	return nil
}

// MarkShipped marks the order as handed to the carrier
func (o *Order) MarkShipped() error {
	if !o.Status.CanTransitionTo(StatusShipped) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot ship an order in %s status", o.Status))
	}

	now := time.Now()
	o.ShippedAt = &now
	o.changeStatus(StatusShipped)
	return nil
}

// MarkDelivered marks the order as delivered to the customer
func (o *Order) MarkDelivered() error {
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot deliver an order in %s status", o.Status))
	}

	now := time.Now()
	o.DeliveredAt = &now
	o.changeStatus(StatusDelivered)
	return nil
}

// Cancel cancels the order. Allowed only before shipment.
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot cancel an order in %s status", o.Status))
	}
	if reason == "" {
		return shared.NewDomainError("INVALID_REASON", "Cancel reason is required")
	}

	now := time.Now()
	o.CancelledAt = &now
	o.CancelReason = reason
	o.changeStatus(StatusCancelled)
	return nil
}

func (o *Order) changeStatus(target Status) {
	from := o.Status
	o.Status = target
	o.UpdatedAt = time.Now()
	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from))
}
