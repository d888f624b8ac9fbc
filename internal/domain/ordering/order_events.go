package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wholesale/backend/internal/domain/shared"
)

// OrderCreatedEvent fires when a new order is created in DRAFT status
type OrderCreatedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string    `json:"order_number"`
	CatalogID   uuid.UUID `json:"catalog_id"`
	RetailerID  uuid.UUID `json:"retailer_id"`
	Phone       string    `json:"phone"`
}

// NewOrderCreatedEvent creates a new OrderCreatedEvent
func NewOrderCreatedEvent(order *Order) *OrderCreatedEvent {
	return &OrderCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.created", "Order", order.ID),
		OrderNumber:     order.OrderNumber,
		CatalogID:       order.CatalogID,
		RetailerID:      order.Retailer.RetailerID,
		Phone:           order.Retailer.Phone,
	}
}

// OrderSubmittedEvent fires when a draft order is submitted for review
type OrderSubmittedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	RetailerID  uuid.UUID       `json:"retailer_id"`
	ItemCount   int             `json:"item_count"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// NewOrderSubmittedEvent creates a new OrderSubmittedEvent
func NewOrderSubmittedEvent(order *Order) *OrderSubmittedEvent {
	return &OrderSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.submitted", "Order", order.ID),
		OrderNumber:     order.OrderNumber,
		RetailerID:      order.Retailer.RetailerID,
		ItemCount:       len(order.Items),
		GrandTotal:      order.Summary.GrandTotal,
	}
}

// OrderApprovedEvent fires when a reviewer approves an order
type OrderApprovedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string          `json:"order_number"`
	RetailerID  uuid.UUID       `json:"retailer_id"`
	TotalPieces int             `json:"total_pieces"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// NewOrderApprovedEvent creates a new OrderApprovedEvent
func NewOrderApprovedEvent(order *Order) *OrderApprovedEvent {
	return &OrderApprovedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.approved", "Order", order.ID),
		OrderNumber:     order.OrderNumber,
		RetailerID:      order.Retailer.RetailerID,
		TotalPieces:     order.Summary.TotalPieces,
		GrandTotal:      order.Summary.GrandTotal,
	}
}

// OrderPOGeneratedEvent fires when the order reaches its terminal state
type OrderPOGeneratedEvent struct {
	shared.BaseDomainEvent
	OrderNumber string `json:"order_number"`
}

// NewOrderPOGeneratedEvent creates a new OrderPOGeneratedEvent
func NewOrderPOGeneratedEvent(order *Order) *OrderPOGeneratedEvent {
	return &OrderPOGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("order.po_generated", "Order", order.ID),
		OrderNumber:     order.OrderNumber,
	}
}
