package catalog

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

// ProductImage is a single image reference on a product
type ProductImage struct {
	URL       string `json:"url"`
	Alt       string `json:"alt,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

// ProductImages is the ordered image list, stored as a JSON column.
// At most one image is primary; when none is marked, the first is
// promoted on normalization.
type ProductImages []ProductImage

// Primary returns the primary image, or nil when the list is empty
func (imgs ProductImages) Primary() *ProductImage {
	for i := range imgs {
		if imgs[i].IsPrimary {
			return &imgs[i]
		}
	}
	if len(imgs) > 0 {
		return &imgs[0]
	}
	return nil
}

// normalize enforces the single-primary invariant: the first marked
// image wins, and when none is marked the first image is promoted
func (imgs ProductImages) normalize() ProductImages {
	if len(imgs) == 0 {
		return imgs
	}
	primaryIdx := -1
	for i := range imgs {
		if imgs[i].IsPrimary {
			if primaryIdx == -1 {
				primaryIdx = i
			} else {
				imgs[i].IsPrimary = false
			}
		}
	}
	if primaryIdx == -1 {
		imgs[0].IsPrimary = true
	}
	return imgs
}

// Value implements driver.Valuer
func (imgs ProductImages) Value() (driver.Value, error) {
	if imgs == nil {
		return json.Marshal([]ProductImage{})
	}
	return json.Marshal(imgs)
}

// Scan implements sql.Scanner
func (imgs *ProductImages) Scan(value any) error {
	if value == nil {
		*imgs = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into ProductImages", value)
	}
	return json.Unmarshal(data, imgs)
}

// SizeList is the set of garment sizes a product is offered in,
// stored as a JSON column
type SizeList []valueobject.Size

// Contains reports whether the list includes the given size
func (l SizeList) Contains(size valueobject.Size) bool {
	for _, s := range l {
		if s == size {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer
func (l SizeList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]valueobject.Size{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner
func (l *SizeList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SizeList", value)
	}
	return json.Unmarshal(data, l)
}

// Product represents a garment style offered for wholesale ordering.
// It is the aggregate root for product-related operations.
type Product struct {
	shared.BaseAggregateRoot
	ItemCode      string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Color         string          `gorm:"type:varchar(50)"`
	Fabric        string          `gorm:"type:varchar(100)"`
	PricePerPiece decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PricePerSet   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Images        ProductImages   `gorm:"type:jsonb"`
	Sizes         SizeList        `gorm:"type:jsonb"`
	CatalogID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	IsActive      bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product in the given catalog.
// pricePerSet defaults to pricePerPiece * PiecesPerSet when zero.
func NewProduct(catalogID uuid.UUID, itemCode, name string, pricePerPiece, pricePerSet decimal.Decimal) (*Product, error) {
	if catalogID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CATALOG", "Catalog ID cannot be empty")
	}
	itemCode = strings.ToUpper(strings.TrimSpace(itemCode))
	if itemCode == "" {
		return nil, shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot be empty")
	}
	if len(itemCode) > 50 {
		return nil, shared.NewDomainError("INVALID_ITEM_CODE", "Item code cannot exceed 50 characters")
	}
	if strings.TrimSpace(name) == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if pricePerPiece.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per piece must be positive")
	}
	if pricePerSet.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price per set cannot be negative")
	}
	if pricePerSet.IsZero() {
		pricePerSet = pricePerPiece.Mul(decimal.NewFromInt(valueobject.PiecesPerSet))
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ItemCode:          itemCode,
		Name:              name,
		PricePerPiece:     pricePerPiece,
		PricePerSet:       pricePerSet,
		Images:            ProductImages{},
		Sizes:             SizeList(valueobject.StandardSizes()),
		CatalogID:         catalogID,
		IsActive:          true,
	}

	product.AddDomainEvent(NewProductCreatedEvent(product))

	return product, nil
}

// UpdateDetails updates descriptive attributes
func (p *Product) UpdateDetails(name, color, fabric string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	p.Name = name
	p.Color = color
	p.Fabric = fabric
	p.UpdatedAt = time.Now()
	return nil
}

// UpdatePricing updates prices; a zero pricePerSet again defaults to
// pricePerPiece * PiecesPerSet
func (p *Product) UpdatePricing(pricePerPiece, pricePerSet decimal.Decimal) error {
	if pricePerPiece.LessThanOrEqual(decimal.Zero) {
		return shared.NewDomainError("INVALID_PRICE", "Price per piece must be positive")
	}
	if pricePerSet.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Price per set cannot be negative")
	}
	if pricePerSet.IsZero() {
		pricePerSet = pricePerPiece.Mul(decimal.NewFromInt(valueobject.PiecesPerSet))
	}
	p.PricePerPiece = pricePerPiece
	p.PricePerSet = pricePerSet
	p.UpdatedAt = time.Now()
	return nil
}

// SetImages replaces the image list, enforcing the single-primary invariant
func (p *Product) SetImages(images []ProductImage) {
	p.Images = ProductImages(images).normalize()
	p.UpdatedAt = time.Now()
}

// SetSizes replaces the allowed size run; empty resets to the standard run
func (p *Product) SetSizes(sizes []valueobject.Size) error {
	if len(sizes) == 0 {
		p.Sizes = SizeList(valueobject.StandardSizes())
		p.UpdatedAt = time.Now()
		return nil
	}
	seen := make(map[valueobject.Size]bool, len(sizes))
	out := make(SizeList, 0, len(sizes))
	for _, size := range sizes {
		if !size.IsValid() {
			return shared.NewDomainError("INVALID_SIZE", fmt.Sprintf("Unknown size %q", size))
		}
		if !seen[size] {
			seen[size] = true
			out = append(out, size)
		}
	}
	p.Sizes = out
	p.UpdatedAt = time.Now()
	return nil
}

// MoveToCatalog reassigns the product to another catalog
func (p *Product) MoveToCatalog(catalogID uuid.UUID) error {
	if catalogID == uuid.Nil {
		return shared.NewDomainError("INVALID_CATALOG", "Catalog ID cannot be empty")
	}
	p.CatalogID = catalogID
	p.UpdatedAt = time.Now()
	return nil
}

// Activate marks the product as active
func (p *Product) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// Deactivate marks the product as inactive
func (p *Product) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}
