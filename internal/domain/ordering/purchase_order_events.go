package ordering

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wholesale/backend/internal/domain/shared"
)

// PurchaseOrderGeneratedEvent fires when a PO snapshot is created
type PurchaseOrderGeneratedEvent struct {
	shared.BaseDomainEvent
	PONumber    string          `json:"po_number"`
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	RetailerID  uuid.UUID       `json:"retailer_id"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// NewPurchaseOrderGeneratedEvent creates a new PurchaseOrderGeneratedEvent
func NewPurchaseOrderGeneratedEvent(po *PurchaseOrder) *PurchaseOrderGeneratedEvent {
	return &PurchaseOrderGeneratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("purchase_order.generated", "PurchaseOrder", po.ID),
		PONumber:        po.PONumber,
		OrderID:         po.OrderID,
		OrderNumber:     po.OrderNumber,
		RetailerID:      po.Retailer.RetailerID,
		GrandTotal:      po.Summary.GrandTotal,
	}
}

// PurchaseOrderSentEvent fires when a PO is dispatched to the supplier
type PurchaseOrderSentEvent struct {
	shared.BaseDomainEvent
	PONumber string `json:"po_number"`
}

// NewPurchaseOrderSentEvent creates a new PurchaseOrderSentEvent
func NewPurchaseOrderSentEvent(po *PurchaseOrder) *PurchaseOrderSentEvent {
	return &PurchaseOrderSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("purchase_order.sent", "PurchaseOrder", po.ID),
		PONumber:        po.PONumber,
	}
}

// PurchaseOrderAcknowledgedEvent fires when the supplier confirms receipt
type PurchaseOrderAcknowledgedEvent struct {
	shared.BaseDomainEvent
	PONumber string `json:"po_number"`
}

// NewPurchaseOrderAcknowledgedEvent creates a new PurchaseOrderAcknowledgedEvent
func NewPurchaseOrderAcknowledgedEvent(po *PurchaseOrder) *PurchaseOrderAcknowledgedEvent {
	return &PurchaseOrderAcknowledgedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("purchase_order.acknowledged", "PurchaseOrder", po.ID),
		PONumber:        po.PONumber,
	}
}
