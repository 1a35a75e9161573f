package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/logistics/backend/internal/domain/order"
)

// OrderItemModel is the persistence model for an order line.
type OrderItemModel struct {
	ID              uuid.UUID           `gorm:"type:uuid;primary_key"`
	OrderID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	Description     string              `gorm:"type:varchar(500);not null"`
	Quantity        int64               `gorm:"not null"`
	UnitPrice       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	OriginalPrice   decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	DiscountedPrice decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	MarkupProfit    decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	TotalPrice      decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt       time.Time           `gorm:"not null"`
	UpdatedAt       time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderItemModel) TableName() string {
	return "order_items"
}

// ToDomain converts the persistence model to a domain Item.
func (m *OrderItemModel) ToDomain() order.Item {
	return order.Item{
		ID:              m.ID,
		OrderID:         m.OrderID,
		Description:     m.Description,
		Quantity:        m.Quantity,
		UnitPrice:       m.UnitPrice,
		OriginalPrice:   m.OriginalPrice,
		DiscountedPrice: m.DiscountedPrice,
		MarkupProfit:    m.MarkupProfit,
		TotalPrice:      m.TotalPrice,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain Item.
func (m *OrderItemModel) FromDomain(i order.Item) {
	m.ID = i.ID
	m.OrderID = i.OrderID
	m.Description = i.Description
	m.Quantity = i.Quantity
	m.UnitPrice = i.UnitPrice
	m.OriginalPrice = i.OriginalPrice
	m.DiscountedPrice = i.DiscountedPrice
	m.MarkupProfit = i.MarkupProfit
	m.TotalPrice = i.TotalPrice
	m.CreatedAt = i.CreatedAt
	m.UpdatedAt = i.UpdatedAt
}

// OrderModel is the persistence model for the Order aggregate.
type OrderModel struct {
	AggregateModel
	OrderNumber        string              `gorm:"type:varchar(50);not null;uniqueIndex:idx_order_number"`
	CustomerID         uuid.UUID           `gorm:"type:uuid;not null;index"`
	Status             order.Status        `gorm:"type:varchar(20);not null;default:'pending';index"`
	ShippingCost       decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingCostActual decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	Commission         decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TotalAmount        decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	DownPayment        decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	RemainingBalance   decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ItemsProfit        decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	ShippingProfit     decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	TotalProfit        decimal.Decimal     `gorm:"type:decimal(18,4);not null;default:0"`
	Notes              string              `gorm:"type:text"`
	ShippedAt          *time.Time
	DeliveredAt        *time.Time
	CancelledAt        *time.Time
	CancelReason       string           `gorm:"type:text"`
	Items              []OrderItemModel `gorm:"foreignKey:OrderID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order aggregate.
func (m *OrderModel) ToDomain() *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, item := range m.Items {
		items[i] = item.ToDomain()
	}
	return &order.Order{
		BaseAggregateRoot:  m.ToDomainAggregateRoot(),
		OrderNumber:        m.OrderNumber,
		CustomerID:         m.CustomerID,
		Status:             m.Status,
		Items:              items,
		ShippingCost:       m.ShippingCost,
		ShippingCostActual: m.ShippingCostActual,
		Commission:         m.Commission,
		TotalAmount:        m.TotalAmount,
		DownPayment:        m.DownPayment,
		RemainingBalance:   m.RemainingBalance,
		ItemsProfit:        m.ItemsProfit,
		ShippingProfit:     m.ShippingProfit,
		TotalProfit:        m.TotalProfit,
		Notes:              m.Notes,
		ShippedAt:          m.ShippedAt,
		DeliveredAt:        m.DeliveredAt,
		CancelledAt:        m.CancelledAt,
		CancelReason:       m.CancelReason,
	}
}

// FromDomain populates the persistence model from a domain Order aggregate.
func (m *OrderModel) FromDomain(o *order.Order) {
	m.FromDomainAggregateRoot(o.BaseAggregateRoot)
	m.OrderNumber = o.OrderNumber
	m.CustomerID = o.CustomerID
	m.Status = o.Status
	m.ShippingCost = o.ShippingCost
	m.ShippingCostActual = o.ShippingCostActual
	m.Commission = o.Commission
	m.TotalAmount = o.TotalAmount
	m.DownPayment = o.DownPayment
	m.RemainingBalance = o.RemainingBalance
	m.ItemsProfit = o.ItemsProfit
	m.ShippingProfit = o.ShippingProfit
	m.TotalProfit = o.TotalProfit
	m.Notes = o.Notes
	m.ShippedAt = o.ShippedAt
	m.DeliveredAt = o.DeliveredAt
	m.CancelledAt = o.CancelledAt
	m.CancelReason = o.CancelReason

	m.Items = make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		m.Items[i].FromDomain(item)
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order aggregate.
func OrderModelFromDomain(o *order.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}
