package trade

import (
	"time"

	"github.com/google/uuid"
	"github.com/logistics/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CreateOrderItemInput represents an item in the create order request
type CreateOrderItemInput struct {
	Description  string           `json:"description" binding:"required,min=1,max=200"`
	Quantity     int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice    decimal.Decimal  `json:"unit_price" binding:"required"`
	MarkupProfit *decimal.Decimal `json:"markup_profit"`
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	CustomerID   uuid.UUID              `json:"customer_id" binding:"required"`
	ShippingCost decimal.Decimal        `json:"shipping_cost"`
	Items        []CreateOrderItemInput `json:"items" binding:"required,min=1,dive"`
	Notes        string                 `json:"notes" binding:"omitempty,max=1000"`
}

// UpdateOrderRequest represents a request to update a pending order
type UpdateOrderRequest struct {
	ShippingCost *decimal.Decimal `json:"shipping_cost"`
	Notes        *string          `json:"notes" binding:"omitempty,max=1000"`
}

// AddOrderItemRequest represents a request to add an item to a pending order
type AddOrderItemRequest struct {
	Description  string           `json:"description" binding:"required,min=1,max=200"`
	Quantity     int64            `json:"quantity" binding:"required,min=1"`
	UnitPrice    decimal.Decimal  `json:"unit_price" binding:"required"`
	MarkupProfit *decimal.Decimal `json:"markup_profit"`
}

// UpdateOrderItemRequest represents a request to update an order item
type UpdateOrderItemRequest struct {
	Quantity        *int64           `json:"quantity" binding:"omitempty,min=1"`
	MarkupProfit    *decimal.Decimal `json:"markup_profit"`
	OriginalPrice   *decimal.Decimal `json:"original_price"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price"`
}

// SetShippingActualRequest records the real carrier cost for an order
type SetShippingActualRequest struct {
	ShippingCostActual decimal.Decimal `json:"shipping_cost_actual" binding:"required"`
}

// CancelOrderRequest represents a request to cancel an order
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// OrderListFilter represents filter options for order list
type OrderListFilter struct {
	Search     string        `form:"search"`
	CustomerID *uuid.UUID    `form:"customer_id"`
	Status     *order.Status `form:"status"`
	StartDate  *time.Time    `form:"start_date"`
	EndDate    *time.Time    `form:"end_date"`
	Page       int           `form:"page" binding:"omitempty,min=1"`
	PageSize   int           `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy    string        `form:"order_by"`
	OrderDir   string        `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// OrderItemResponse represents an order item in API responses
type OrderItemResponse struct {
	ID              uuid.UUID        `json:"id"`
	Description     string           `json:"description"`
	Quantity        int64            `json:"quantity"`
	UnitPrice       decimal.Decimal  `json:"unit_price"`
	OriginalPrice   *decimal.Decimal `json:"original_price,omitempty"`
	DiscountedPrice *decimal.Decimal `json:"discounted_price,omitempty"`
	MarkupProfit    *decimal.Decimal `json:"markup_profit,omitempty"`
	TotalPrice      decimal.Decimal  `json:"total_price"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID                 uuid.UUID           `json:"id"`
	OrderNumber        string              `json:"order_number"`
	CustomerID         uuid.UUID           `json:"customer_id"`
	Status             string              `json:"status"`
	Items              []OrderItemResponse `json:"items"`
	ItemsSubtotal      decimal.Decimal     `json:"items_subtotal"`
	ShippingCost       decimal.Decimal     `json:"shipping_cost"`
	ShippingCostActual *decimal.Decimal    `json:"shipping_cost_actual,omitempty"`
	Commission         decimal.Decimal     `json:"commission"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	DownPayment        decimal.Decimal     `json:"down_payment"`
	RemainingBalance   decimal.Decimal     `json:"remaining_balance"`
	ItemsProfit        decimal.Decimal     `json:"items_profit"`
	ShippingProfit     decimal.Decimal     `json:"shipping_profit"`
	TotalProfit        decimal.Decimal     `json:"total_profit"`
	Notes              string              `json:"notes,omitempty"`
	ShippedAt          *time.Time          `json:"shipped_at,omitempty"`
	DeliveredAt        *time.Time          `json:"delivered_at,omitempty"`
	CancelledAt        *time.Time          `json:"cancelled_at,omitempty"`
	CancelReason       string              `json:"cancel_reason,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Version            int                 `json:"version"`
}

// OrderListItemResponse represents an order in list responses
type OrderListItemResponse struct {
	ID               uuid.UUID       `json:"id"`
	OrderNumber      string          `json:"order_number"`
	CustomerID       uuid.UUID       `json:"customer_id"`
	Status           string          `json:"status"`
	ItemCount        int             `json:"item_count"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	DownPayment      decimal.Decimal `json:"down_payment"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	TotalProfit      decimal.Decimal `json:"total_profit"`
	CreatedAt        time.Time       `json:"created_at"`
}

// ToOrderItemResponse converts an order item to a response DTO
func ToOrderItemResponse(item *order.Item) OrderItemResponse {
	resp := OrderItemResponse{
		ID:          item.ID,
		Description: item.Description,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		TotalPrice:  item.TotalPrice,
	}
	if item.OriginalPrice.Valid {
		resp.OriginalPrice = &item.OriginalPrice.Decimal
	}
	if item.DiscountedPrice.Valid {
		resp.DiscountedPrice = &item.DiscountedPrice.Decimal
	}
	if item.MarkupProfit.Valid {
		resp.MarkupProfit = &item.MarkupProfit.Decimal
	}
	return resp
}

// ToOrderResponse converts an order aggregate to a response DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i := range o.Items {
		items[i] = ToOrderItemResponse(&o.Items[i])
	}

	resp := OrderResponse{
		ID:               o.ID,
		OrderNumber:      o.OrderNumber,
		CustomerID:       o.CustomerID,
		Status:           o.Status.String(),
		Items:            items,
		ItemsSubtotal:    o.ItemsSubtotal(),
		ShippingCost:     o.ShippingCost,
		Commission:       o.Commission,
		TotalAmount:      o.TotalAmount,
		DownPayment:      o.DownPayment,
		RemainingBalance: o.RemainingBalance,
		ItemsProfit:      o.ItemsProfit,
		ShippingProfit:   o.ShippingProfit,
		TotalProfit:      o.TotalProfit,
		Notes:            o.Notes,
		ShippedAt:        o.ShippedAt,
		DeliveredAt:      o.DeliveredAt,
		CancelledAt:      o.CancelledAt,
		CancelReason:     o.CancelReason,
		CreatedAt:        o.CreatedAt,
		UpdatedAt:        o.UpdatedAt,
		Version:          o.Version,
	}
	if o.ShippingCostActual.Valid {
		resp.ShippingCostActual = &o.ShippingCostActual.Decimal
	}
	return resp
}

// ToOrderListItemResponses converts orders to list response DTOs
func ToOrderListItemResponses(orders []order.Order) []OrderListItemResponse {
	responses := make([]OrderListItemResponse, len(orders))
	for i := range orders {
		o := &orders[i]
		responses[i] = OrderListItemResponse{
			ID:               o.ID,
			OrderNumber:      o.OrderNumber,
			CustomerID:       o.CustomerID,
			Status:           o.Status.String(),
			ItemCount:        len(o.Items),
			TotalAmount:      o.TotalAmount,
			DownPayment:      o.DownPayment,
			RemainingBalance: o.RemainingBalance,
			TotalProfit:      o.TotalProfit,
			CreatedAt:        o.CreatedAt,
		}
	}
	return responses
}
