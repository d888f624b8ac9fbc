package ordering

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/domain/shared/valueobject"
)

// POStatus represents the delivery status of a purchase order
type POStatus string

const (
	POStatusGenerated    POStatus = "GENERATED"
	POStatusSent         POStatus = "SENT"
	POStatusAcknowledged POStatus = "ACKNOWLEDGED"
)

// IsValid checks if the status is a valid POStatus
func (s POStatus) IsValid() bool {
	switch s {
	case POStatusGenerated, POStatusSent, POStatusAcknowledged:
		return true
	}
	return false
}

// String returns the string representation of POStatus
func (s POStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target
// status. Transitions are strictly forward; a PO never moves back.
func (s POStatus) CanTransitionTo(target POStatus) bool {
	switch s {
	case POStatusGenerated:
		return target == POStatusSent
	case POStatusSent:
		return target == POStatusAcknowledged
	case POStatusAcknowledged:
		return false // Terminal state
	}
	return false
}

// POItem is a frozen copy of an order line item
type POItem struct {
	ProductID     uuid.UUID       `json:"product_id"`
	ItemIndex     int             `json:"item_index"`
	ItemCode      string          `json:"item_code"`
	ProductName   string          `json:"product_name"`
	Color         string          `json:"color,omitempty"`
	Fabric        string          `json:"fabric,omitempty"`
	QuantitySets  int             `json:"quantity_sets"`
	PricePerPiece decimal.Decimal `json:"price_per_piece"`
	PricePerSet   decimal.Decimal `json:"price_per_set"`
	Amount        decimal.Decimal `json:"amount"`
}

// POItems is a JSON column of frozen line items
type POItems []POItem

// Value implements driver.Valuer
func (i POItems) Value() (driver.Value, error) {
	if i == nil {
		return json.Marshal([]POItem{})
	}
	return json.Marshal(i)
}

// Scan implements sql.Scanner
func (i *POItems) Scan(value any) error {
	if value == nil {
		*i = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into POItems", value)
	}
	return json.Unmarshal(data, i)
}

// POSummary holds the frozen totals carried over from the order
type POSummary struct {
	TotalSets   int             `gorm:"not null;default:0" json:"total_sets"`
	TotalPieces int             `gorm:"not null;default:0" json:"total_pieces"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"subtotal"`
	GSTAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"gst_amount"`
	GrandTotal  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"grand_total"`
}

// POTerms captures the commercial terms printed on the document
type POTerms struct {
	Payment  string `json:"payment,omitempty"`
	Delivery string `json:"delivery,omitempty"`
	Remarks  string `json:"remarks,omitempty"`
}

// Value implements driver.Valuer
func (t POTerms) Value() (driver.Value, error) {
	return json.Marshal(t)
}

// Scan implements sql.Scanner
func (t *POTerms) Scan(value any) error {
	if value == nil {
		*t = POTerms{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into POTerms", value)
	}
	return json.Unmarshal(data, t)
}

// PurchaseOrder is an immutable snapshot of an approved order. The
// unique index on OrderID enforces at most one PO per order; only the
// delivery status advances after creation.
type PurchaseOrder struct {
	shared.BaseAggregateRoot
	PONumber         string                       `gorm:"type:varchar(30);not null;uniqueIndex"`
	OrderID          uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex"`
	OrderNumber      string                       `gorm:"type:varchar(30);not null;index"`
	Retailer         RetailerInfo                 `gorm:"type:jsonb"`
	Items            POItems                      `gorm:"type:jsonb"`
	SizeDistribution valueobject.SizeDistribution `gorm:"type:jsonb"`
	Summary          POSummary                    `gorm:"embedded;embeddedPrefix:summary_"`
	IsGSTApplicable  bool                         `gorm:"not null;default:false"`
	GSTRate          decimal.Decimal              `gorm:"type:decimal(5,2);not null;default:0"`
	Terms            POTerms                      `gorm:"type:jsonb"`
	Status           POStatus                     `gorm:"type:varchar(20);not null;default:'GENERATED';index"`
	GeneratedBy      string                       `gorm:"type:varchar(100)"`
	SentAt           *time.Time
	AcknowledgedAt   *time.Time
}

// TableName returns the table name for GORM
func (PurchaseOrder) TableName() string {
	return "purchase_orders"
}

// NewPurchaseOrderFromOrder builds a PO by deep-copying an approved
// order. Later edits to the order or the retailer record never reach
// the snapshot.
func NewPurchaseOrderFromOrder(poNumber string, order *Order, generatedBy string, terms POTerms) (*PurchaseOrder, error) {
	if strings.TrimSpace(poNumber) == "" {
		return nil, shared.NewDomainError("INVALID_PO_NUMBER", "PO number cannot be empty")
	}
	if order == nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Order cannot be nil")
	}
	if order.Status != OrderStatusApproved {
		return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot generate PO for order in %s status", order.Status))
	}
	if len(order.Items) == 0 {
		return nil, shared.NewDomainError("NO_ITEMS", "Cannot generate PO for an order without items")
	}

	items := make(POItems, 0, len(order.Items))
	for idx := range order.Items {
		src := &order.Items[idx]
		items = append(items, POItem{
			ProductID:     src.ProductID,
			ItemIndex:     src.ItemIndex,
			ItemCode:      src.ItemCode,
			ProductName:   src.ProductName,
			Color:         src.Color,
			Fabric:        src.Fabric,
			QuantitySets:  src.QuantitySets,
			PricePerPiece: src.PricePerPiece,
			PricePerSet:   src.PricePerSet,
			Amount:        src.Amount,
		})
	}

	po := &PurchaseOrder{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		PONumber:          poNumber,
		OrderID:           order.ID,
		OrderNumber:       order.OrderNumber,
		Retailer:          order.Retailer,
		Items:             items,
		SizeDistribution:  order.SizeDistribution.Clone(),
		Summary: POSummary{
			TotalSets:   order.Summary.TotalSets,
			TotalPieces: order.Summary.TotalPieces,
			Subtotal:    order.Summary.Subtotal,
			GSTAmount:   order.Summary.GSTAmount,
			GrandTotal:  order.Summary.GrandTotal,
		},
		IsGSTApplicable: order.IsGSTApplicable,
		GSTRate:         order.GSTRate,
		Terms:           terms,
		Status:          POStatusGenerated,
		GeneratedBy:     generatedBy,
	}

	po.AddDomainEvent(NewPurchaseOrderGeneratedEvent(po))

	return po, nil
}

// MarkSent transitions the PO from GENERATED to SENT
func (p *PurchaseOrder) MarkSent() error {
	if !p.Status.CanTransitionTo(POStatusSent) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot mark PO in %s status as sent", p.Status))
	}

	now := time.Now()
	p.Status = POStatusSent
	p.SentAt = &now
	p.UpdatedAt = now

	p.AddDomainEvent(NewPurchaseOrderSentEvent(p))

	return nil
}

// MarkAcknowledged transitions the PO from SENT to ACKNOWLEDGED
func (p *PurchaseOrder) MarkAcknowledged() error {
	if !p.Status.CanTransitionTo(POStatusAcknowledged) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot acknowledge PO in %s status", p.Status))
	}

	now := time.Now()
	p.Status = POStatusAcknowledged
	p.AcknowledgedAt = &now
	p.UpdatedAt = now

	p.AddDomainEvent(NewPurchaseOrderAcknowledgedEvent(p))

	return nil
}
