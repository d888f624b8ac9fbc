package catalog

import (
	"strings"
	"time"

	"github.com/wholesale/backend/internal/domain/shared"
)

// GeneralAccessLevel is the sentinel access level making a catalog
// visible to every active retailer regardless of tier
const GeneralAccessLevel = "GENERAL"

// Catalog represents a named collection of products gated by a
// priority-tier access level. It is the aggregate root for
// catalog-related operations.
type Catalog struct {
	shared.BaseAggregateRoot
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	AccessLevel string `gorm:"type:varchar(20);not null;default:'GENERAL';index"`
	Season      string `gorm:"type:varchar(50)"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Catalog) TableName() string {
	return "catalogs"
}

// NewCatalog creates a new catalog. accessLevel is a priority code or
// GeneralAccessLevel; an unknown code is tolerated and simply resolves
// to no tier match.
func NewCatalog(name, accessLevel string) (*Catalog, error) {
	if err := validateCatalogName(name); err != nil {
		return nil, err
	}
	accessLevel = normalizeAccessLevel(accessLevel)

	catalog := &Catalog{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		AccessLevel:       accessLevel,
		IsActive:          true,
	}

	catalog.AddDomainEvent(NewCatalogCreatedEvent(catalog))

	return catalog, nil
}

// Update updates the display attributes
func (c *Catalog) Update(name, description, season string) error {
	if err := validateCatalogName(name); err != nil {
		return err
	}
	c.Name = name
	c.Description = description
	c.Season = season
	c.UpdatedAt = time.Now()
	return nil
}

// SetAccessLevel changes the access level; visibility changes take
// effect on the next access recomputation
func (c *Catalog) SetAccessLevel(accessLevel string) {
	old := c.AccessLevel
	c.AccessLevel = normalizeAccessLevel(accessLevel)
	c.UpdatedAt = time.Now()
	if old != c.AccessLevel {
		c.AddDomainEvent(NewCatalogAccessLevelChangedEvent(c, old))
	}
}

// IsGeneral reports whether the catalog is visible to all active retailers
func (c *Catalog) IsGeneral() bool {
	return c.AccessLevel == GeneralAccessLevel
}

// Activate marks the catalog as active
func (c *Catalog) Activate() {
	c.IsActive = true
	c.UpdatedAt = time.Now()
}

// Deactivate marks the catalog as inactive; inactive catalogs are
// excluded from access resolution
func (c *Catalog) Deactivate() {
	c.IsActive = false
	c.UpdatedAt = time.Now()
}

func normalizeAccessLevel(level string) string {
	level = strings.ToUpper(strings.TrimSpace(level))
	if level == "" {
		return GeneralAccessLevel
	}
	return level
}

func validateCatalogName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_CATALOG_NAME", "Catalog name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_CATALOG_NAME", "Catalog name cannot exceed 200 characters")
	}
	return nil
}
