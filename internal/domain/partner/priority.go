package partner

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wholesale/backend/internal/domain/shared"
)

var priorityCodePattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{0,9}$`)

// Priority represents a retailer priority tier controlling catalog
// visibility and wholesale discount. It is the aggregate root for
// tier-related operations.
type Priority struct {
	shared.BaseAggregateRoot
	Code            string          `gorm:"type:varchar(10);not null;uniqueIndex"`
	Name            string          `gorm:"type:varchar(100);not null"`
	DiscountPercent decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	IsActive        bool            `gorm:"not null;default:true"`
	SortOrder       int             `gorm:"not null;default:0"`
	Description     string          `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Priority) TableName() string {
	return "priorities"
}

// NewPriority creates a new priority tier
func NewPriority(code, name string, discountPercent decimal.Decimal) (*Priority, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if err := validatePriorityCode(code); err != nil {
		return nil, err
	}
	if err := validatePriorityName(name); err != nil {
		return nil, err
	}
	if err := validateDiscountPercent(discountPercent); err != nil {
		return nil, err
	}

	return &Priority{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              code,
		Name:              name,
		DiscountPercent:   discountPercent,
		IsActive:          true,
	}, nil
}

// Update updates the display name and discount percentage
func (p *Priority) Update(name string, discountPercent decimal.Decimal) error {
	if err := validatePriorityName(name); err != nil {
		return err
	}
	if err := validateDiscountPercent(discountPercent); err != nil {
		return err
	}

	p.Name = name
	p.DiscountPercent = discountPercent
	p.UpdatedAt = time.Now()
	return nil
}

// SetDescription sets the free-form description
func (p *Priority) SetDescription(description string) {
	p.Description = description
	p.UpdatedAt = time.Now()
}

// SetSortOrder sets the display order
func (p *Priority) SetSortOrder(order int) {
	p.SortOrder = order
	p.UpdatedAt = time.Now()
}

// Activate marks the priority as active
func (p *Priority) Activate() {
	p.IsActive = true
	p.UpdatedAt = time.Now()
}

// Deactivate marks the priority as inactive; inactive tiers are skipped
// by the directory sync and resolve to no catalogs
func (p *Priority) Deactivate() {
	p.IsActive = false
	p.UpdatedAt = time.Now()
}

// ApplyDiscount applies the tier discount to a price
func (p *Priority) ApplyDiscount(price decimal.Decimal) decimal.Decimal {
	if p.DiscountPercent.IsZero() {
		return price
	}
	factor := decimal.NewFromInt(100).Sub(p.DiscountPercent).Div(decimal.NewFromInt(100))
	return price.Mul(factor).Round(2)
}

func validatePriorityCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_PRIORITY_CODE", "Priority code cannot be empty")
	}
	if !priorityCodePattern.MatchString(code) {
		return shared.NewDomainError("INVALID_PRIORITY_CODE", "Priority code must be uppercase alphanumeric starting with a letter")
	}
	return nil
}

func validatePriorityName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_PRIORITY_NAME", "Priority name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_PRIORITY_NAME", "Priority name cannot exceed 100 characters")
	}
	return nil
}

func validateDiscountPercent(percent decimal.Decimal) error {
	if percent.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percent cannot be negative")
	}
	if percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percent cannot exceed 100")
	}
	return nil
}
