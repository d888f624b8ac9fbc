package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/infrastructure/sheet"
)

// ==================== Priority DTOs ====================

// CreatePriorityRequest represents a request to create a priority tier
type CreatePriorityRequest struct {
	Code            string          `json:"code" binding:"required,min=1,max=10"`
	Name            string          `json:"name" binding:"required,min=1,max=100"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	SortOrder       int             `json:"sort_order"`
	Description     string          `json:"description"`
}

// UpdatePriorityRequest represents a request to update a priority tier
type UpdatePriorityRequest struct {
	Name            *string          `json:"name"`
	DiscountPercent *decimal.Decimal `json:"discount_percent"`
	SortOrder       *int             `json:"sort_order"`
	Description     *string          `json:"description"`
}

// RemovePriorityRequest controls what happens to retailers still
// holding the tier. With ReassignTo empty, the tier is deactivated when
// it is still referenced and removed from every retailer either way.
type RemovePriorityRequest struct {
	ReassignTo string `json:"reassign_to"`
}

// RemovePriorityResult reports what the removal actually did
type RemovePriorityResult struct {
	Deleted           bool   `json:"deleted"`
	Deactivated       bool   `json:"deactivated"`
	RetailersAffected int    `json:"retailers_affected"`
	ReassignedTo      string `json:"reassigned_to,omitempty"`
}

// PriorityResponse represents a priority tier in API responses
type PriorityResponse struct {
	ID              uuid.UUID       `json:"id"`
	Code            string          `json:"code"`
	Name            string          `json:"name"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	IsActive        bool            `json:"is_active"`
	SortOrder       int             `json:"sort_order"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ToPriorityResponse converts a Priority aggregate to a response DTO
func ToPriorityResponse(p *partner.Priority) PriorityResponse {
	return PriorityResponse{
		ID:              p.ID,
		Code:            p.Code,
		Name:            p.Name,
		DiscountPercent: p.DiscountPercent,
		IsActive:        p.IsActive,
		SortOrder:       p.SortOrder,
		Description:     p.Description,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ==================== Retailer DTOs ====================

// AddressInput represents an address in requests
type AddressInput struct {
	Street  string `json:"street" binding:"max=200"`
	City    string `json:"city" binding:"max=100"`
	State   string `json:"state" binding:"max=100"`
	Pincode string `json:"pincode" binding:"max=6"`
}

// CreateRetailerRequest represents a request to register a retailer
type CreateRetailerRequest struct {
	Phone         string        `json:"phone" binding:"required,min=10,max=15"`
	BusinessName  string        `json:"business_name" binding:"required,min=1,max=200"`
	ContactPerson string        `json:"contact_person" binding:"max=100"`
	Email         string        `json:"email" binding:"omitempty,email"`
	GSTNumber     string        `json:"gst_number" binding:"max=15"`
	Address       *AddressInput `json:"address"`
}

// UpdateRetailerRequest represents a profile update request
type UpdateRetailerRequest struct {
	BusinessName  *string       `json:"business_name"`
	ContactPerson *string       `json:"contact_person"`
	Email         *string       `json:"email"`
	GSTNumber     *string       `json:"gst_number"`
	Address       *AddressInput `json:"address"`
}

// SetPrioritiesRequest replaces a retailer's full tier membership
type SetPrioritiesRequest struct {
	PriorityCodes []string `json:"priority_codes" binding:"required"`
}

// RetailerListFilter represents filtering options for listing retailers
type RetailerListFilter struct {
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
	Keyword      string `form:"keyword"`
	PriorityCode string `form:"priority_code"`
	ActiveOnly   bool   `form:"active_only"`
}

// RetailerResponse represents a retailer in API responses
type RetailerResponse struct {
	ID                   uuid.UUID   `json:"id"`
	Phone                string      `json:"phone"`
	BusinessName         string      `json:"business_name"`
	ContactPerson        string      `json:"contact_person,omitempty"`
	Email                string      `json:"email,omitempty"`
	GSTNumber            string      `json:"gst_number,omitempty"`
	Street               string      `json:"street,omitempty"`
	City                 string      `json:"city,omitempty"`
	State                string      `json:"state,omitempty"`
	Pincode              string      `json:"pincode,omitempty"`
	PriorityCodes        []string    `json:"priority_codes"`
	AccessibleCatalogIDs []uuid.UUID `json:"accessible_catalog_ids"`
	IsActive             bool        `json:"is_active"`
	LastSyncedAt         *time.Time  `json:"last_synced_at,omitempty"`
	CreatedAt            time.Time   `json:"created_at"`
	UpdatedAt            time.Time   `json:"updated_at"`
}

// ToRetailerResponse converts a Retailer aggregate to a response DTO
func ToRetailerResponse(r *partner.Retailer) RetailerResponse {
	return RetailerResponse{
		ID:                   r.ID,
		Phone:                r.Phone,
		BusinessName:         r.BusinessName,
		ContactPerson:        r.ContactPerson,
		Email:                r.Email,
		GSTNumber:            r.GSTNumber,
		Street:               r.Address.Street(),
		City:                 r.Address.City(),
		State:                r.Address.State(),
		Pincode:              r.Address.Pincode(),
		PriorityCodes:        r.PriorityCodes,
		AccessibleCatalogIDs: r.AccessibleCatalogIDs,
		IsActive:             r.IsActive,
		LastSyncedAt:         r.LastSyncedAt,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

// ==================== Sync DTOs ====================

// TierSyncReport summarizes the sync outcome for one priority tier
type TierSyncReport struct {
	PriorityCode string           `json:"priority_code"`
	RowsSeen     int              `json:"rows_seen"`
	Created      int              `json:"created"`
	Updated      int              `json:"updated"`
	Removed      int              `json:"removed"`
	RowErrors    []sheet.RowError `json:"row_errors,omitempty"`
}

// SyncReport summarizes one full directory sync run
type SyncReport struct {
	StartedAt     time.Time           `json:"started_at"`
	FinishedAt    time.Time           `json:"finished_at"`
	Tiers         []TierSyncReport    `json:"tiers"`
	SourceErrors  []sheet.SourceError `json:"source_errors,omitempty"`
	TotalCreated  int                 `json:"total_created"`
	TotalUpdated  int                 `json:"total_updated"`
	TotalRemoved  int                 `json:"total_removed"`
	TotalRowsSeen int                 `json:"total_rows_seen"`
}
