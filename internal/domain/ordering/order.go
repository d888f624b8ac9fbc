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

// OrderStatus represents the status of a wholesale order
type OrderStatus string

const (
	OrderStatusDraft       OrderStatus = "DRAFT"
	OrderStatusSubmitted   OrderStatus = "SUBMITTED"
	OrderStatusUnderReview OrderStatus = "UNDER_REVIEW"
	OrderStatusApproved    OrderStatus = "APPROVED"
	OrderStatusPOGenerated OrderStatus = "PO_GENERATED"
)

// IsValid checks if the status is a valid OrderStatus
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusDraft, OrderStatusSubmitted, OrderStatusUnderReview, OrderStatusApproved, OrderStatusPOGenerated:
		return true
	}
	return false
}

// String returns the string representation of OrderStatus
func (s OrderStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// Rejection and change requests are review actions recorded in history,
// not statuses: an order under review stays UNDER_REVIEW for both.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	switch s {
	case OrderStatusDraft:
		return target == OrderStatusSubmitted
	case OrderStatusSubmitted:
		return target == OrderStatusUnderReview
	case OrderStatusUnderReview:
		return target == OrderStatusUnderReview || target == OrderStatusApproved
	case OrderStatusApproved:
		return target == OrderStatusPOGenerated
	case OrderStatusPOGenerated:
		return false // Terminal state
	}
	return false
}

// ReviewAction represents an admin decision taken during review
type ReviewAction string

const (
	ReviewActionApprove        ReviewAction = "approve"
	ReviewActionRequestChanges ReviewAction = "request_changes"
	ReviewActionReject         ReviewAction = "reject"
)

// IsValid checks if the action is a known review action
func (a ReviewAction) IsValid() bool {
	switch a {
	case ReviewActionApprove, ReviewActionRequestChanges, ReviewActionReject:
		return true
	}
	return false
}

// ReviewEntry is one immutable record in the order's review audit log
type ReviewEntry struct {
	Action       ReviewAction                 `json:"action"`
	Notes        string                       `json:"notes,omitempty"`
	FromStatus   OrderStatus                  `json:"from_status"`
	ToStatus     OrderStatus                  `json:"to_status"`
	SizeSnapshot valueobject.SizeDistribution `json:"size_snapshot"`
	ReviewedBy   string                       `json:"reviewed_by,omitempty"`
	ReviewedAt   time.Time                    `json:"reviewed_at"`
}

// ReviewHistory is the append-only review audit log, stored as a JSON
// column. Entries are never mutated or removed.
type ReviewHistory []ReviewEntry

// Value implements driver.Valuer
func (h ReviewHistory) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal([]ReviewEntry{})
	}
	return json.Marshal(h)
}

// Scan implements sql.Scanner
func (h *ReviewHistory) Scan(value any) error {
	if value == nil {
		*h = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ReviewHistory", value)
	}
	return json.Unmarshal(data, h)
}

// RetailerInfo is the retailer snapshot frozen onto an order at
// creation time; later retailer edits never alter it
type RetailerInfo struct {
	RetailerID    uuid.UUID           `json:"retailer_id"`
	Phone         string              `json:"phone"`
	BusinessName  string              `json:"business_name"`
	ContactPerson string              `json:"contact_person,omitempty"`
	Email         string              `json:"email,omitempty"`
	Address       valueobject.Address `json:"address"`
	GSTNumber     string              `json:"gst_number,omitempty"`
}

// Value implements driver.Valuer
func (r RetailerInfo) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner
func (r *RetailerInfo) Scan(value any) error {
	if value == nil {
		*r = RetailerInfo{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into RetailerInfo", value)
	}
	return json.Unmarshal(data, r)
}

// OrderItem is a line item carrying a product snapshot taken at order
// time, not a live product reference
type OrderItem struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;index"`
	ItemIndex     int             `gorm:"not null"`
	ProductID     uuid.UUID       `gorm:"type:uuid;not null"`
	ItemCode      string          `gorm:"type:varchar(50);not null"`
	ProductName   string          `gorm:"type:varchar(200);not null"`
	Color         string          `gorm:"type:varchar(50)"`
	Fabric        string          `gorm:"type:varchar(100)"`
	QuantitySets  int             `gorm:"not null"`
	PricePerPiece decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PricePerSet   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Amount        decimal.Decimal `gorm:"type:decimal(14,2);not null"`
	// Legacy per-item distribution kept as a compatibility read path;
	// the order-level SizeDistribution is authoritative
	SizeQuantities valueobject.SizeQuantities `gorm:"type:jsonb"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName returns the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// MinimumPieces returns the committed piece floor for this item
func (i *OrderItem) MinimumPieces() int {
	return i.QuantitySets * valueobject.PiecesPerSet
}

// OrderSummary holds the aggregate figures recomputed on every mutation
type OrderSummary struct {
	TotalSets   int             `gorm:"not null;default:0" json:"total_sets"`
	TotalPieces int             `gorm:"not null;default:0" json:"total_pieces"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"subtotal"`
	GSTAmount   decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"gst_amount"`
	GrandTotal  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0" json:"grand_total"`
}

// Order represents a wholesale order aggregate root. It owns the
// DRAFT -> SUBMITTED -> UNDER_REVIEW -> APPROVED -> PO_GENERATED
// lifecycle and the authoritative per-item size distribution.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber string    `gorm:"type:varchar(30);not null;uniqueIndex"`
	CatalogID   uuid.UUID `gorm:"type:uuid;not null;index"`
	// RetailerID duplicates Retailer.RetailerID as a queryable column
	RetailerID uuid.UUID    `gorm:"type:uuid;not null;index"`
	Retailer   RetailerInfo `gorm:"type:jsonb"`
	Items           []OrderItem
	// Authoritative record of piece distribution across sizes, keyed
	// "<productID>-<itemIndex>"
	SizeDistribution valueobject.SizeDistribution `gorm:"type:jsonb"`
	Summary          OrderSummary                 `gorm:"embedded;embeddedPrefix:summary_"`
	IsGSTApplicable  bool                         `gorm:"not null;default:false"`
	GSTRate          decimal.Decimal              `gorm:"type:decimal(5,2);not null;default:5"`
	Status           OrderStatus                  `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	ReviewHistory    ReviewHistory                `gorm:"type:jsonb"`
	Notes            string                       `gorm:"type:text"`
	SubmittedAt      *time.Time
	ReviewedAt       *time.Time
	ApprovedAt       *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// ItemKey returns the size-distribution key for an item
func ItemKey(productID uuid.UUID, itemIndex int) string {
	return fmt.Sprintf("%s-%d", productID, itemIndex)
}

// NewOrder creates a new order in DRAFT status from a retailer snapshot
func NewOrder(orderNumber string, catalogID uuid.UUID, retailer RetailerInfo, isGSTApplicable bool, gstRate decimal.Decimal) (*Order, error) {
	if strings.TrimSpace(orderNumber) == "" {
		return nil, shared.NewDomainError("INVALID_ORDER_NUMBER", "Order number cannot be empty")
	}
	if catalogID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATALOG", "Catalog ID cannot be empty")
	}
	if retailer.RetailerID == uuid.Nil || retailer.Phone == "" {
		return nil, shared.NewDomainError("INVALID_RETAILER", "Retailer snapshot is incomplete")
	}
	if gstRate.IsNegative() || gstRate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_GST_RATE", "GST rate must be between 0 and 100")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       orderNumber,
		CatalogID:         catalogID,
		RetailerID:        retailer.RetailerID,
		Retailer:          retailer,
		Items:             make([]OrderItem, 0),
		SizeDistribution:  valueobject.SizeDistribution{},
		IsGSTApplicable:   isGSTApplicable,
		GSTRate:           gstRate,
		Status:            OrderStatusDraft,
		ReviewHistory:     ReviewHistory{},
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem appends a line item with a product snapshot. When
// sizeQuantities is nil the sets are split equally across the standard
// size run, one piece per size per set. Only allowed in DRAFT status.
func (o *Order) AddItem(productID uuid.UUID, itemCode, productName, color, fabric string, quantitySets int, pricePerPiece, pricePerSet decimal.Decimal, sizeQuantities valueobject.SizeQuantities) (*OrderItem, error) {
	if o.Status != OrderStatusDraft {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to a non-draft order")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantitySets <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity sets must be positive")
	}
	if pricePerSet.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per set must be positive")
	}

	if sizeQuantities == nil {
		sizeQuantities = valueobject.NewEqualSplit(quantitySets)
	}
	if err := sizeQuantities.Validate(); err != nil {
		return nil, shared.NewDomainError("INVALID_SIZE_QUANTITIES", err.Error())
	}

	itemIndex := len(o.Items)
	minimum := quantitySets * valueobject.PiecesPerSet
	if got := sizeQuantities.TotalPieces(); got < minimum {
		return nil, newPieceFloorError(itemCode, minimum, got)
	}

	now := time.Now()
	item := OrderItem{
		ID:             uuid.New(),
		OrderID:        o.ID,
		ItemIndex:      itemIndex,
		ProductID:      productID,
		ItemCode:       itemCode,
		ProductName:    productName,
		Color:          color,
		Fabric:         fabric,
		QuantitySets:   quantitySets,
		PricePerPiece:  pricePerPiece,
		PricePerSet:    pricePerSet,
		Amount:         pricePerSet.Mul(decimal.NewFromInt(int64(quantitySets))),
		SizeQuantities: sizeQuantities.Clone(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	o.Items = append(o.Items, item)
	o.SizeDistribution[ItemKey(productID, itemIndex)] = sizeQuantities.Clone()
	o.recalculateSummary()
	o.UpdatedAt = now

	return &o.Items[itemIndex], nil
}

// EffectiveSizeQuantities returns the distribution for an item: the
// order-level map when present, falling back to the legacy per-item
// copy for historic data
func (o *Order) EffectiveSizeQuantities(itemIndex int) valueobject.SizeQuantities {
	if itemIndex < 0 || itemIndex >= len(o.Items) {
		return nil
	}
	item := &o.Items[itemIndex]
	if sq, ok := o.SizeDistribution[ItemKey(item.ProductID, item.ItemIndex)]; ok {
		return sq
	}
	return item.SizeQuantities
}

// Submit transitions the order from DRAFT to SUBMITTED
func (o *Order) Submit() error {
	if !o.Status.CanTransitionTo(OrderStatusSubmitted) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot submit order in %s status", o.Status))
	}
	if len(o.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "Cannot submit order without items")
	}

	now := time.Now()
	o.Status = OrderStatusSubmitted
	o.SubmittedAt = &now
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderSubmittedEvent(o))

	return nil
}

// StartReview transitions the order into UNDER_REVIEW; calling it on an
// order already under review is a no-op
func (o *Order) StartReview() error {
	if o.Status == OrderStatusUnderReview {
		return nil
	}
	if !o.Status.CanTransitionTo(OrderStatusUnderReview) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot review order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusUnderReview
	o.ReviewedAt = &now
	o.UpdatedAt = now

	return nil
}

// ValidatePieceFloor checks every item's distributed pieces against its
// committed minimum (quantitySets * PiecesPerSet). The given
// distribution overrides the stored one per item key; items absent from
// it are checked against their current effective distribution.
func (o *Order) ValidatePieceFloor(distribution valueobject.SizeDistribution) error {
	for idx := range o.Items {
		item := &o.Items[idx]
		key := ItemKey(item.ProductID, item.ItemIndex)

		sq, ok := distribution[key]
		if !ok {
			sq = o.EffectiveSizeQuantities(idx)
		}
		if err := sq.Validate(); err != nil {
			return shared.NewDomainError("INVALID_SIZE_QUANTITIES", err.Error())
		}

		minimum := item.MinimumPieces()
		if got := sq.TotalPieces(); got < minimum {
			return newPieceFloorError(item.ItemCode, minimum, got)
		}
	}
	return nil
}

// ApplyReview records an admin review decision. All three actions are
// gated by the piece-floor invariant (the observed product behavior;
// see DESIGN notes). The distribution, when given, is committed
// atomically with the decision: staged edits are never half-saved.
func (o *Order) ApplyReview(action ReviewAction, notes, reviewedBy string, distribution valueobject.SizeDistribution) error {
	if !action.IsValid() {
		return shared.NewDomainError("INVALID_ACTION", fmt.Sprintf("Unknown review action %q", action))
	}
	if o.Status != OrderStatusSubmitted && o.Status != OrderStatusUnderReview {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot review order in %s status", o.Status))
	}

	if err := o.ValidatePieceFloor(distribution); err != nil {
		return err
	}

	// The recorded FromStatus is the status the reviewer acted on, not
	// the UNDER_REVIEW step StartReview moves through
	fromStatus := o.Status

	if err := o.StartReview(); err != nil {
		return err
	}

	// Merge the submitted edits into the authoritative map
	if o.SizeDistribution == nil {
		o.SizeDistribution = valueobject.SizeDistribution{}
	}
	for key, sq := range distribution {
		o.SizeDistribution[key] = sq.Clone()
	}
	// Keep the legacy per-item copies in line with the authoritative map
	for idx := range o.Items {
		item := &o.Items[idx]
		if sq, ok := o.SizeDistribution[ItemKey(item.ProductID, item.ItemIndex)]; ok {
			item.SizeQuantities = sq.Clone()
		}
	}

	now := time.Now()
	toStatus := o.Status
	if action == ReviewActionApprove {
		toStatus = OrderStatusApproved
	}

	o.ReviewHistory = append(o.ReviewHistory, ReviewEntry{
		Action:       action,
		Notes:        notes,
		FromStatus:   fromStatus,
		ToStatus:     toStatus,
		SizeSnapshot: o.SizeDistribution.Clone(),
		ReviewedBy:   reviewedBy,
		ReviewedAt:   now,
	})

	if action == ReviewActionApprove {
		o.Status = OrderStatusApproved
		o.ApprovedAt = &now
		o.AddDomainEvent(NewOrderApprovedEvent(o))
	}

	o.recalculateSummary()
	o.UpdatedAt = now

	return nil
}

// MarkPOGenerated transitions the order from APPROVED to PO_GENERATED
func (o *Order) MarkPOGenerated() error {
	if !o.Status.CanTransitionTo(OrderStatusPOGenerated) {
		return shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Cannot generate PO for order in %s status", o.Status))
	}

	now := time.Now()
	o.Status = OrderStatusPOGenerated
	o.UpdatedAt = now

	o.AddDomainEvent(NewOrderPOGeneratedEvent(o))

	return nil
}

// SetNotes sets free-form order notes
func (o *Order) SetNotes(notes string) {
	o.Notes = notes
	o.UpdatedAt = time.Now()
}

// IsApproved returns true if the order is approved
func (o *Order) IsApproved() bool {
	return o.Status == OrderStatusApproved
}

// IsTerminal returns true if the order reached its terminal state
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusPOGenerated
}

// ItemCount returns the number of line items
func (o *Order) ItemCount() int {
	return len(o.Items)
}

// recalculateSummary recomputes the aggregate totals. Piece counts come
// from the authoritative size distribution; amounts from the item
// snapshots.
func (o *Order) recalculateSummary() {
	totalSets := 0
	totalPieces := 0
	subtotal := decimal.Zero

	for idx := range o.Items {
		item := &o.Items[idx]
		totalSets += item.QuantitySets
		totalPieces += o.EffectiveSizeQuantities(idx).TotalPieces()
		subtotal = subtotal.Add(item.Amount)
	}

	gst := decimal.Zero
	if o.IsGSTApplicable {
		gst = subtotal.Mul(o.GSTRate).Div(decimal.NewFromInt(100)).Round(2)
	}

	o.Summary = OrderSummary{
		TotalSets:   totalSets,
		TotalPieces: totalPieces,
		Subtotal:    subtotal,
		GSTAmount:   gst,
		GrandTotal:  subtotal.Add(gst),
	}
}

func newPieceFloorError(itemCode string, minimum, got int) *shared.DomainError {
	return shared.NewDomainError("VALIDATION_FAILED",
		fmt.Sprintf("Item %s has %d pieces distributed, minimum is %d (%d short)", itemCode, got, minimum, minimum-got))
}
