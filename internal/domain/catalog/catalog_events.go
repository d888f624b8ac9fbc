package catalog

import (
	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/shared"
)

// Aggregate type constants
const (
	AggregateTypeCatalog = "Catalog"
	AggregateTypeProduct = "Product"
)

// Event type constants
const (
	EventTypeCatalogCreated            = "CatalogCreated"
	EventTypeCatalogAccessLevelChanged = "CatalogAccessLevelChanged"
	EventTypeProductCreated            = "ProductCreated"
)

// CatalogCreatedEvent is published when a new catalog is created
type CatalogCreatedEvent struct {
	shared.BaseDomainEvent
	CatalogID   uuid.UUID `json:"catalog_id"`
	Name        string    `json:"name"`
	AccessLevel string    `json:"access_level"`
}

// NewCatalogCreatedEvent creates a new CatalogCreatedEvent
func NewCatalogCreatedEvent(catalog *Catalog) *CatalogCreatedEvent {
	return &CatalogCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogCreated, AggregateTypeCatalog, catalog.ID),
		CatalogID:       catalog.ID,
		Name:            catalog.Name,
		AccessLevel:     catalog.AccessLevel,
	}
}

// CatalogAccessLevelChangedEvent is published when a catalog's access
// level changes; listeners recompute retailer access sets
type CatalogAccessLevelChangedEvent struct {
	shared.BaseDomainEvent
	CatalogID      uuid.UUID `json:"catalog_id"`
	OldAccessLevel string    `json:"old_access_level"`
	NewAccessLevel string    `json:"new_access_level"`
}

// NewCatalogAccessLevelChangedEvent creates a new CatalogAccessLevelChangedEvent
func NewCatalogAccessLevelChangedEvent(catalog *Catalog, oldLevel string) *CatalogAccessLevelChangedEvent {
	return &CatalogAccessLevelChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeCatalogAccessLevelChanged, AggregateTypeCatalog, catalog.ID),
		CatalogID:       catalog.ID,
		OldAccessLevel:  oldLevel,
		NewAccessLevel:  catalog.AccessLevel,
	}
}

// ProductCreatedEvent is published when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	ItemCode  string    `json:"item_code"`
	CatalogID uuid.UUID `json:"catalog_id"`
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(product *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeProductCreated, AggregateTypeProduct, product.ID),
		ProductID:       product.ID,
		ItemCode:        product.ItemCode,
		CatalogID:       product.CatalogID,
	}
}
