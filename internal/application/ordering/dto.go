package ordering

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wholesale/backend/internal/domain/ordering"
	"github.com/wholesale/backend/internal/domain/shared/valueobject"
)

// ==================== Order DTOs ====================

// CreateOrderItemInput represents one cart line in the create request.
// SizeQuantities is optional; when absent the sets split equally across
// the standard size run.
type CreateOrderItemInput struct {
	ProductID      uuid.UUID      `json:"product_id" binding:"required"`
	QuantitySets   int            `json:"quantity_sets" binding:"required,min=1"`
	SizeQuantities map[string]int `json:"size_quantities"`
}

// CreateOrderRequest represents a request to create an order
type CreateOrderRequest struct {
	RetailerID uuid.UUID              `json:"retailer_id" binding:"required"`
	CatalogID  uuid.UUID              `json:"catalog_id" binding:"required"`
	Items      []CreateOrderItemInput `json:"items" binding:"required,min=1"`
	Notes      string                 `json:"notes"`
}

// ReviewOrderRequest represents an admin review decision. The size
// distribution carries any review-time edits, keyed like the order's
// own distribution map.
type ReviewOrderRequest struct {
	Action           string                    `json:"action" binding:"required,oneof=approve request_changes reject"`
	Notes            string                    `json:"notes" binding:"max=2000"`
	ReviewedBy       string                    `json:"reviewed_by" binding:"max=100"`
	SizeDistribution map[string]map[string]int `json:"size_distribution"`
}

// OrderListFilter represents filtering options for listing orders
type OrderListFilter struct {
	Page       int       `form:"page"`
	PageSize   int       `form:"page_size"`
	Status     string    `form:"status"`
	RetailerID uuid.UUID `form:"retailer_id"`
}

// OrderItemResponse represents an order line item in API responses
type OrderItemResponse struct {
	ID             uuid.UUID       `json:"id"`
	ItemIndex      int             `json:"item_index"`
	ProductID      uuid.UUID       `json:"product_id"`
	ItemCode       string          `json:"item_code"`
	ProductName    string          `json:"product_name"`
	Color          string          `json:"color,omitempty"`
	Fabric         string          `json:"fabric,omitempty"`
	QuantitySets   int             `json:"quantity_sets"`
	MinimumPieces  int             `json:"minimum_pieces"`
	PricePerPiece  decimal.Decimal `json:"price_per_piece"`
	PricePerSet    decimal.Decimal `json:"price_per_set"`
	Amount         decimal.Decimal `json:"amount"`
	SizeQuantities map[string]int  `json:"size_quantities"`
}

// OrderSummaryResponse represents the aggregate order figures
type OrderSummaryResponse struct {
	TotalSets   int             `json:"total_sets"`
	TotalPieces int             `json:"total_pieces"`
	Subtotal    decimal.Decimal `json:"subtotal"`
	GSTAmount   decimal.Decimal `json:"gst_amount"`
	GrandTotal  decimal.Decimal `json:"grand_total"`
}

// ReviewEntryResponse represents one review history record
type ReviewEntryResponse struct {
	Action     string    `json:"action"`
	Notes      string    `json:"notes,omitempty"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ReviewedBy string    `json:"reviewed_by,omitempty"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID              uuid.UUID             `json:"id"`
	OrderNumber     string                `json:"order_number"`
	CatalogID       uuid.UUID             `json:"catalog_id"`
	RetailerID      uuid.UUID             `json:"retailer_id"`
	RetailerPhone   string                `json:"retailer_phone"`
	BusinessName    string                `json:"business_name"`
	Status          string                `json:"status"`
	Items           []OrderItemResponse   `json:"items"`
	Summary         OrderSummaryResponse  `json:"summary"`
	IsGSTApplicable bool                  `json:"is_gst_applicable"`
	GSTRate         decimal.Decimal       `json:"gst_rate"`
	ReviewHistory   []ReviewEntryResponse `json:"review_history,omitempty"`
	Notes           string                `json:"notes,omitempty"`
	SubmittedAt     *time.Time            `json:"submitted_at,omitempty"`
	ApprovedAt      *time.Time            `json:"approved_at,omitempty"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

// ToOrderResponse converts an Order aggregate to a response DTO
func ToOrderResponse(o *ordering.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for idx := range o.Items {
		item := &o.Items[idx]
		items = append(items, OrderItemResponse{
			ID:             item.ID,
			ItemIndex:      item.ItemIndex,
			ProductID:      item.ProductID,
			ItemCode:       item.ItemCode,
			ProductName:    item.ProductName,
			Color:          item.Color,
			Fabric:         item.Fabric,
			QuantitySets:   item.QuantitySets,
			MinimumPieces:  item.MinimumPieces(),
			PricePerPiece:  item.PricePerPiece,
			PricePerSet:    item.PricePerSet,
			Amount:         item.Amount,
			SizeQuantities: sizeQuantitiesToMap(o.EffectiveSizeQuantities(idx)),
		})
	}

	history := make([]ReviewEntryResponse, 0, len(o.ReviewHistory))
	for _, entry := range o.ReviewHistory {
		history = append(history, ReviewEntryResponse{
			Action:     string(entry.Action),
			Notes:      entry.Notes,
			FromStatus: entry.FromStatus.String(),
			ToStatus:   entry.ToStatus.String(),
			ReviewedBy: entry.ReviewedBy,
			ReviewedAt: entry.ReviewedAt,
		})
	}

	return OrderResponse{
		ID:              o.ID,
		OrderNumber:     o.OrderNumber,
		CatalogID:       o.CatalogID,
		RetailerID:      o.Retailer.RetailerID,
		RetailerPhone:   o.Retailer.Phone,
		BusinessName:    o.Retailer.BusinessName,
		Status:          o.Status.String(),
		Items:           items,
		Summary: OrderSummaryResponse{
			TotalSets:   o.Summary.TotalSets,
			TotalPieces: o.Summary.TotalPieces,
			Subtotal:    o.Summary.Subtotal,
			GSTAmount:   o.Summary.GSTAmount,
			GrandTotal:  o.Summary.GrandTotal,
		},
		IsGSTApplicable: o.IsGSTApplicable,
		GSTRate:         o.GSTRate,
		ReviewHistory:   history,
		Notes:           o.Notes,
		SubmittedAt:     o.SubmittedAt,
		ApprovedAt:      o.ApprovedAt,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// ==================== Purchase Order DTOs ====================

// GeneratePORequest represents a request to generate a purchase order
type GeneratePORequest struct {
	GeneratedBy string `json:"generated_by" binding:"max=100"`
	Payment     string `json:"payment_terms" binding:"max=500"`
	Delivery    string `json:"delivery_terms" binding:"max=500"`
	Remarks     string `json:"remarks" binding:"max=2000"`
}

// POListFilter represents filtering options for listing purchase orders
type POListFilter struct {
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
	Status   string `form:"status"`
}

// POItemResponse represents a frozen PO line item
type POItemResponse struct {
	ProductID      uuid.UUID       `json:"product_id"`
	ItemCode       string          `json:"item_code"`
	ProductName    string          `json:"product_name"`
	Color          string          `json:"color,omitempty"`
	Fabric         string          `json:"fabric,omitempty"`
	QuantitySets   int             `json:"quantity_sets"`
	PricePerPiece  decimal.Decimal `json:"price_per_piece"`
	PricePerSet    decimal.Decimal `json:"price_per_set"`
	Amount         decimal.Decimal `json:"amount"`
	SizeQuantities map[string]int  `json:"size_quantities"`
}

// POResponse represents a purchase order in API responses
type POResponse struct {
	ID             uuid.UUID            `json:"id"`
	PONumber       string               `json:"po_number"`
	OrderID        uuid.UUID            `json:"order_id"`
	OrderNumber    string               `json:"order_number"`
	RetailerPhone  string               `json:"retailer_phone"`
	BusinessName   string               `json:"business_name"`
	Status         string               `json:"status"`
	Items          []POItemResponse     `json:"items"`
	Summary        OrderSummaryResponse `json:"summary"`
	PaymentTerms   string               `json:"payment_terms,omitempty"`
	DeliveryTerms  string               `json:"delivery_terms,omitempty"`
	Remarks        string               `json:"remarks,omitempty"`
	GeneratedBy    string               `json:"generated_by,omitempty"`
	SentAt         *time.Time           `json:"sent_at,omitempty"`
	AcknowledgedAt *time.Time           `json:"acknowledged_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at"`
}

// ToPOResponse converts a PurchaseOrder aggregate to a response DTO
func ToPOResponse(po *ordering.PurchaseOrder) POResponse {
	items := make([]POItemResponse, 0, len(po.Items))
	for _, item := range po.Items {
		items = append(items, POItemResponse{
			ProductID:      item.ProductID,
			ItemCode:       item.ItemCode,
			ProductName:    item.ProductName,
			Color:          item.Color,
			Fabric:         item.Fabric,
			QuantitySets:   item.QuantitySets,
			PricePerPiece:  item.PricePerPiece,
			PricePerSet:    item.PricePerSet,
			Amount:         item.Amount,
			SizeQuantities: sizeQuantitiesToMap(po.SizeDistribution[ordering.ItemKey(item.ProductID, item.ItemIndex)]),
		})
	}

	return POResponse{
		ID:             po.ID,
		PONumber:       po.PONumber,
		OrderID:        po.OrderID,
		OrderNumber:    po.OrderNumber,
		RetailerPhone:  po.Retailer.Phone,
		BusinessName:   po.Retailer.BusinessName,
		Status:         po.Status.String(),
		Items:          items,
		Summary: OrderSummaryResponse{
			TotalSets:   po.Summary.TotalSets,
			TotalPieces: po.Summary.TotalPieces,
			Subtotal:    po.Summary.Subtotal,
			GSTAmount:   po.Summary.GSTAmount,
			GrandTotal:  po.Summary.GrandTotal,
		},
		PaymentTerms:   po.Terms.Payment,
		DeliveryTerms:  po.Terms.Delivery,
		Remarks:        po.Terms.Remarks,
		GeneratedBy:    po.GeneratedBy,
		SentAt:         po.SentAt,
		AcknowledgedAt: po.AcknowledgedAt,
		CreatedAt:      po.CreatedAt,
		UpdatedAt:      po.UpdatedAt,
	}
}

// ==================== Document DTOs ====================

// SellerInfo is the wholesaler's own letterhead data printed on
// purchase order documents
type SellerInfo struct {
	BusinessName string `json:"business_name"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	GSTNumber    string `json:"gst_number,omitempty"`
}

// DocumentDataResponse is the complete payload handed to the external
// document renderer
type DocumentDataResponse struct {
	Seller      SellerInfo `json:"seller"`
	PO          POResponse `json:"purchase_order"`
	GeneratedAt time.Time  `json:"generated_at"`
}

func sizeQuantitiesToMap(sq valueobject.SizeQuantities) map[string]int {
	out := make(map[string]int, len(sq))
	for size, qty := range sq {
		out[size.String()] = qty
	}
	return out
}

func sizeQuantitiesFromMap(m map[string]int) valueobject.SizeQuantities {
	if m == nil {
		return nil
	}
	sq := make(valueobject.SizeQuantities, len(m))
	for size, qty := range m {
		sq[valueobject.Size(size)] = qty
	}
	return sq
}

func distributionFromMap(m map[string]map[string]int) valueobject.SizeDistribution {
	if m == nil {
		return nil
	}
	dist := make(valueobject.SizeDistribution, len(m))
	for key, sq := range m {
		dist[key] = sizeQuantitiesFromMap(sq)
	}
	return dist
}
