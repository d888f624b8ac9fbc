package partner

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/domain/shared/valueobject"
)

var (
	phonePattern = regexp.MustCompile(`^[6-9][0-9]{9}$`)
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][A-Z0-9]Z[A-Z0-9]$`)
)

// PriorityCodes is the set of tier codes a retailer belongs to,
// stored as a JSON column
type PriorityCodes []string

// Contains reports whether the given code is in the set
func (c PriorityCodes) Contains(code string) bool {
	for _, pc := range c {
		if pc == code {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer
func (c PriorityCodes) Value() (driver.Value, error) {
	if c == nil {
		return json.Marshal([]string{})
	}
	return json.Marshal(c)
}

// Scan implements sql.Scanner
func (c *PriorityCodes) Scan(value any) error {
	if value == nil {
		*c = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into PriorityCodes", value)
	}
	return json.Unmarshal(data, c)
}

// CatalogIDSet is the derived set of catalog IDs a retailer may view,
// stored as a JSON column. It is recomputed, never edited directly.
type CatalogIDSet []uuid.UUID

// Contains reports whether the given catalog ID is in the set
func (s CatalogIDSet) Contains(id uuid.UUID) bool {
	for _, cid := range s {
		if cid == id {
			return true
		}
	}
	return false
}

// Value implements driver.Valuer
func (s CatalogIDSet) Value() (driver.Value, error) {
	if s == nil {
		return json.Marshal([]uuid.UUID{})
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner
func (s *CatalogIDSet) Scan(value any) error {
	if value == nil {
		*s = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into CatalogIDSet", value)
	}
	return json.Unmarshal(data, s)
}

// Retailer represents a wholesale buyer identified by phone number.
// It is the aggregate root for retailer-related operations.
// PriorityCodes membership is owned by the external directory sheets;
// AccessibleCatalogIDs is derived from it and never a source of truth.
type Retailer struct {
	shared.BaseAggregateRoot
	Phone                string              `gorm:"type:varchar(10);not null;uniqueIndex"`
	BusinessName         string              `gorm:"type:varchar(200);not null"`
	ContactPerson        string              `gorm:"type:varchar(100)"`
	Email                string              `gorm:"type:varchar(200)"`
	Address              valueobject.Address `gorm:"type:jsonb"`
	GSTNumber            string              `gorm:"type:varchar(15)"`
	PriorityCodes        PriorityCodes       `gorm:"type:jsonb"`
	AccessibleCatalogIDs CatalogIDSet        `gorm:"type:jsonb"`
	IsActive             bool                `gorm:"not null;default:true"`
	SheetRowID           string              `gorm:"type:varchar(100);index"`
	LastSyncedAt         *time.Time
}

// TableName returns the table name for GORM
func (Retailer) TableName() string {
	return "retailers"
}

// NewRetailer creates a new retailer, active by default
func NewRetailer(phone, businessName string) (*Retailer, error) {
	normalized, err := NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	if err := validateBusinessName(businessName); err != nil {
		return nil, err
	}

	retailer := &Retailer{
		BaseAggregateRoot:    shared.NewBaseAggregateRoot(),
		Phone:                normalized,
		BusinessName:         businessName,
		PriorityCodes:        PriorityCodes{},
		AccessibleCatalogIDs: CatalogIDSet{},
		IsActive:             true,
	}

	retailer.AddDomainEvent(NewRetailerCreatedEvent(retailer))

	return retailer, nil
}

// UpdateProfile updates the business name and contact details
func (r *Retailer) UpdateProfile(businessName, contactPerson, email string) error {
	if err := validateBusinessName(businessName); err != nil {
		return err
	}
	if len(contactPerson) > 100 {
		return shared.NewDomainError("INVALID_CONTACT", "Contact person cannot exceed 100 characters")
	}
	if email != "" && (len(email) > 200 || !strings.Contains(email, "@")) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email address")
	}

	r.BusinessName = businessName
	r.ContactPerson = contactPerson
	r.Email = email
	r.UpdatedAt = time.Now()
	return nil
}

// SetAddress sets the retailer address
func (r *Retailer) SetAddress(address valueobject.Address) {
	r.Address = address
	r.UpdatedAt = time.Now()
}

// SetGSTNumber sets the GST registration number; empty clears it
func (r *Retailer) SetGSTNumber(gstNumber string) error {
	gstNumber = strings.ToUpper(strings.TrimSpace(gstNumber))
	if gstNumber != "" && !gstinPattern.MatchString(gstNumber) {
		return shared.NewDomainError("INVALID_GST_NUMBER", "GST number is not a valid GSTIN")
	}
	r.GSTNumber = gstNumber
	r.UpdatedAt = time.Now()
	return nil
}

// ReplacePriorities overwrites the priority membership with the given codes.
// Each directory sheet is the sole source of truth for its tier, so a sync
// run replaces membership rather than merging it.
func (r *Retailer) ReplacePriorities(codes ...string) {
	replaced := make(PriorityCodes, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code != "" && !replaced.Contains(code) {
			replaced = append(replaced, code)
		}
	}
	r.PriorityCodes = replaced
	r.UpdatedAt = time.Now()
}

// HasPriority reports whether the retailer belongs to the given tier
func (r *Retailer) HasPriority(code string) bool {
	return r.PriorityCodes.Contains(code)
}

// SetAccessibleCatalogs persists the recomputed accessible catalog set
func (r *Retailer) SetAccessibleCatalogs(ids []uuid.UUID) {
	set := make(CatalogIDSet, len(ids))
	copy(set, ids)
	r.AccessibleCatalogIDs = set
	r.UpdatedAt = time.Now()
}

// CanViewCatalog reports whether the catalog is in the accessible set
func (r *Retailer) CanViewCatalog(catalogID uuid.UUID) bool {
	return r.IsActive && r.AccessibleCatalogIDs.Contains(catalogID)
}

// MarkSynced records directory provenance after a successful sheet sync
func (r *Retailer) MarkSynced(sheetRowID string, at time.Time) {
	r.SheetRowID = sheetRowID
	r.LastSyncedAt = &at
	r.UpdatedAt = time.Now()
}

// Activate marks the retailer as active
func (r *Retailer) Activate() {
	r.IsActive = true
	r.UpdatedAt = time.Now()
}

// Deactivate marks the retailer as inactive; inactive retailers cannot
// browse catalogs or place orders
func (r *Retailer) Deactivate() {
	r.IsActive = false
	r.UpdatedAt = time.Now()
	r.AddDomainEvent(NewRetailerDeactivatedEvent(r))
}

// NormalizePhone strips whitespace, dashes and a leading country code,
// and validates the result as a 10-digit Indian mobile number
func NormalizePhone(phone string) (string, error) {
	cleaned := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '(', ')':
			return -1
		}
		return r
	}, strings.TrimSpace(phone))

	cleaned = strings.TrimPrefix(cleaned, "+91")
	if len(cleaned) == 12 && strings.HasPrefix(cleaned, "91") {
		cleaned = cleaned[2:]
	}
	cleaned = strings.TrimPrefix(cleaned, "0")

	if !phonePattern.MatchString(cleaned) {
		return "", shared.NewDomainError("INVALID_PHONE", "Phone must be a valid 10-digit mobile number")
	}
	return cleaned, nil
}

func validateBusinessName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_BUSINESS_NAME", "Business name cannot exceed 200 characters")
	}
	return nil
}
