package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wholesale/backend/internal/domain/catalog"
	"github.com/wholesale/backend/internal/domain/shared/valueobject"
)

// ==================== Catalog DTOs ====================

// CreateCatalogRequest represents a request to create a catalog
type CreateCatalogRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description"`
	AccessLevel string `json:"access_level" binding:"max=20"`
	Season      string `json:"season" binding:"max=50"`
}

// UpdateCatalogRequest represents a request to update a catalog
type UpdateCatalogRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Season      *string `json:"season"`
	AccessLevel *string `json:"access_level"`
}

// CatalogResponse represents a catalog in API responses
type CatalogResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	AccessLevel string    `json:"access_level"`
	Season      string    `json:"season,omitempty"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToCatalogResponse converts a Catalog aggregate to a response DTO
func ToCatalogResponse(c *catalog.Catalog) CatalogResponse {
	return CatalogResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		AccessLevel: c.AccessLevel,
		Season:      c.Season,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ==================== Product DTOs ====================

// ProductImageInput represents a product image in requests
type ProductImageInput struct {
	URL       string `json:"url" binding:"required,url"`
	IsPrimary bool   `json:"is_primary"`
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	CatalogID     uuid.UUID           `json:"catalog_id" binding:"required"`
	ItemCode      string              `json:"item_code" binding:"required,min=1,max=50"`
	Name          string              `json:"name" binding:"required,min=1,max=200"`
	Color         string              `json:"color" binding:"max=50"`
	Fabric        string              `json:"fabric" binding:"max=100"`
	PricePerPiece decimal.Decimal     `json:"price_per_piece" binding:"required"`
	PricePerSet   decimal.Decimal     `json:"price_per_set"`
	Images        []ProductImageInput `json:"images"`
	Sizes         []string            `json:"sizes"`
}

// UpdateProductRequest represents a request to update a product
type UpdateProductRequest struct {
	Name          *string             `json:"name"`
	Color         *string             `json:"color"`
	Fabric        *string             `json:"fabric"`
	PricePerPiece *decimal.Decimal    `json:"price_per_piece"`
	PricePerSet   *decimal.Decimal    `json:"price_per_set"`
	Images        []ProductImageInput `json:"images"`
	Sizes         []string            `json:"sizes"`
	CatalogID     *uuid.UUID          `json:"catalog_id"`
}

// ProductListFilter represents filtering options for listing products
type ProductListFilter struct {
	Page       int       `form:"page"`
	PageSize   int       `form:"page_size"`
	Keyword    string    `form:"keyword"`
	CatalogID  uuid.UUID `form:"catalog_id"`
	ActiveOnly bool      `form:"active_only"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID            uuid.UUID       `json:"id"`
	CatalogID     uuid.UUID       `json:"catalog_id"`
	ItemCode      string          `json:"item_code"`
	Name          string          `json:"name"`
	Color         string          `json:"color,omitempty"`
	Fabric        string          `json:"fabric,omitempty"`
	PricePerPiece decimal.Decimal `json:"price_per_piece"`
	PricePerSet   decimal.Decimal `json:"price_per_set"`
	PrimaryImage  string          `json:"primary_image,omitempty"`
	Images        []ProductImageOutput `json:"images,omitempty"`
	Sizes         []string        `json:"sizes"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductImageOutput represents a product image in responses
type ProductImageOutput struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

// ToProductResponse converts a Product aggregate to a response DTO
func ToProductResponse(p *catalog.Product) ProductResponse {
	images := make([]ProductImageOutput, 0, len(p.Images))
	for _, img := range p.Images {
		images = append(images, ProductImageOutput{URL: img.URL, IsPrimary: img.IsPrimary})
	}
	sizes := make([]string, 0, len(p.Sizes))
	for _, s := range p.Sizes {
		sizes = append(sizes, s.String())
	}
	primary := ""
	if img := p.Images.Primary(); img != nil {
		primary = img.URL
	}

	return ProductResponse{
		ID:            p.ID,
		CatalogID:     p.CatalogID,
		ItemCode:      p.ItemCode,
		Name:          p.Name,
		Color:         p.Color,
		Fabric:        p.Fabric,
		PricePerPiece: p.PricePerPiece,
		PricePerSet:   p.PricePerSet,
		PrimaryImage:  primary,
		Images:        images,
		Sizes:         sizes,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func parseSizes(raw []string) []valueobject.Size {
	sizes := make([]valueobject.Size, 0, len(raw))
	for _, s := range raw {
		sizes = append(sizes, valueobject.Size(s))
	}
	return sizes
}
