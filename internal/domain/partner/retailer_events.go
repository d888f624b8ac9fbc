package partner

import (
	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRetailer = "Retailer"

// Event type constants
const (
	EventTypeRetailerCreated     = "RetailerCreated"
	EventTypeRetailerSynced      = "RetailerSynced"
	EventTypeRetailerDeactivated = "RetailerDeactivated"
)

// RetailerCreatedEvent is published when a new retailer is created
type RetailerCreatedEvent struct {
	shared.BaseDomainEvent
	RetailerID   uuid.UUID `json:"retailer_id"`
	Phone        string    `json:"phone"`
	BusinessName string    `json:"business_name"`
}

// NewRetailerCreatedEvent creates a new RetailerCreatedEvent
func NewRetailerCreatedEvent(retailer *Retailer) *RetailerCreatedEvent {
	return &RetailerCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRetailerCreated, AggregateTypeRetailer, retailer.ID),
		RetailerID:      retailer.ID,
		Phone:           retailer.Phone,
		BusinessName:    retailer.BusinessName,
	}
}

// RetailerSyncedEvent is published when a retailer is updated from the
// external directory
type RetailerSyncedEvent struct {
	shared.BaseDomainEvent
	RetailerID    uuid.UUID `json:"retailer_id"`
	Phone         string    `json:"phone"`
	PriorityCodes []string  `json:"priority_codes"`
	SheetRowID    string    `json:"sheet_row_id"`
}

// NewRetailerSyncedEvent creates a new RetailerSyncedEvent
func NewRetailerSyncedEvent(retailer *Retailer) *RetailerSyncedEvent {
	return &RetailerSyncedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRetailerSynced, AggregateTypeRetailer, retailer.ID),
		RetailerID:      retailer.ID,
		Phone:           retailer.Phone,
		PriorityCodes:   retailer.PriorityCodes,
		SheetRowID:      retailer.SheetRowID,
	}
}

// RetailerDeactivatedEvent is published when a retailer is deactivated
type RetailerDeactivatedEvent struct {
	shared.BaseDomainEvent
	RetailerID uuid.UUID `json:"retailer_id"`
	Phone      string    `json:"phone"`
}

// NewRetailerDeactivatedEvent creates a new RetailerDeactivatedEvent
func NewRetailerDeactivatedEvent(retailer *Retailer) *RetailerDeactivatedEvent {
	return &RetailerDeactivatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRetailerDeactivated, AggregateTypeRetailer, retailer.ID),
		RetailerID:      retailer.ID,
		Phone:           retailer.Phone,
	}
}
