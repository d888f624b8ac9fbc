package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/catalog"
	"github.com/wholesale/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormCatalogRepository implements CatalogRepository using GORM
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewGormCatalogRepository creates a new GormCatalogRepository
func NewGormCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// FindByID finds a catalog by its ID
func (r *GormCatalogRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Catalog, error) {
	var cat catalog.Catalog
	if err := r.db.WithContext(ctx).First(&cat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &cat, nil
}

// FindAll finds all catalogs matching the filter
func (r *GormCatalogRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Catalog, error) {
	var catalogs []catalog.Catalog
	query := r.applyFilter(r.db.WithContext(ctx).Model(&catalog.Catalog{}), filter)
	if err := query.Find(&catalogs).Error; err != nil {
		return nil, err
	}
	return catalogs, nil
}

// FindActive finds all active catalogs
func (r *GormCatalogRepository) FindActive(ctx context.Context) ([]catalog.Catalog, error) {
	var catalogs []catalog.Catalog
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&catalogs).Error; err != nil {
		return nil, err
	}
	return catalogs, nil
}

// FindByAccessLevel finds catalogs gated by the given access level
func (r *GormCatalogRepository) FindByAccessLevel(ctx context.Context, accessLevel string) ([]catalog.Catalog, error) {
	var catalogs []catalog.Catalog
	if err := r.db.WithContext(ctx).
		Where("access_level = ?", strings.ToUpper(strings.TrimSpace(accessLevel))).
		Order("name ASC").
		Find(&catalogs).Error; err != nil {
		return nil, err
	}
	return catalogs, nil
}

// Save creates or updates a catalog
func (r *GormCatalogRepository) Save(ctx context.Context, cat *catalog.Catalog) error {
	return r.db.WithContext(ctx).Save(cat).Error
}

// Delete deletes a catalog
func (r *GormCatalogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Catalog{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts catalogs matching the filter
func (r *GormCatalogRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&catalog.Catalog{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormCatalogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("name ASC")
	}

	return query
}

func (r *GormCatalogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "access_level":
			query = query.Where("access_level = ?", value)
		case "season":
			query = query.Where("season = ?", value)
		}
	}

	return query
}

// Ensure GormCatalogRepository implements CatalogRepository
var _ catalog.CatalogRepository = (*GormCatalogRepository)(nil)
