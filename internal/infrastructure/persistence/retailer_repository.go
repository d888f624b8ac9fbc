package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormRetailerRepository implements RetailerRepository using GORM
type GormRetailerRepository struct {
	db *gorm.DB
}

// NewGormRetailerRepository creates a new GormRetailerRepository
func NewGormRetailerRepository(db *gorm.DB) *GormRetailerRepository {
	return &GormRetailerRepository{db: db}
}

// FindByID finds a retailer by its ID
func (r *GormRetailerRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Retailer, error) {
	var retailer partner.Retailer
	if err := r.db.WithContext(ctx).First(&retailer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &retailer, nil
}

// FindByPhone finds a retailer by normalized phone number
func (r *GormRetailerRepository) FindByPhone(ctx context.Context, phone string) (*partner.Retailer, error) {
	normalized, err := partner.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	var retailer partner.Retailer
	if err := r.db.WithContext(ctx).
		Where("phone = ?", normalized).
		First(&retailer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &retailer, nil
}

// FindAll finds all retailers matching the filter
func (r *GormRetailerRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Retailer, error) {
	var retailers []partner.Retailer
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Retailer{}), filter)
	if err := query.Find(&retailers).Error; err != nil {
		return nil, err
	}
	return retailers, nil
}

// FindActive finds all active retailers
func (r *GormRetailerRepository) FindActive(ctx context.Context) ([]partner.Retailer, error) {
	var retailers []partner.Retailer
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("business_name ASC").
		Find(&retailers).Error; err != nil {
		return nil, err
	}
	return retailers, nil
}

// FindByPriorityCode finds retailers belonging to the given tier.
// Membership lives in a JSON column, so rows with any membership are
// scanned and matched in memory; the directory cardinality is small.
func (r *GormRetailerRepository) FindByPriorityCode(ctx context.Context, code string) ([]partner.Retailer, error) {
	code = strings.ToUpper(strings.TrimSpace(code))

	var candidates []partner.Retailer
	if err := r.db.WithContext(ctx).
		Where("priority_codes IS NOT NULL").
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	retailers := make([]partner.Retailer, 0)
	for _, retailer := range candidates {
		if retailer.HasPriority(code) {
			retailers = append(retailers, retailer)
		}
	}
	return retailers, nil
}

// Save creates or updates a retailer
func (r *GormRetailerRepository) Save(ctx context.Context, retailer *partner.Retailer) error {
	return r.db.WithContext(ctx).Save(retailer).Error
}

// Delete deletes a retailer
func (r *GormRetailerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Retailer{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByPhone checks if a retailer with the given phone exists
func (r *GormRetailerRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	normalized, err := partner.NormalizePhone(phone)
	if err != nil {
		return false, err
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Retailer{}).
		Where("phone = ?", normalized).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts retailers matching the filter
func (r *GormRetailerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.Retailer{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormRetailerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("business_name ASC")
	}

	return query
}

func (r *GormRetailerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("business_name LIKE ? OR phone LIKE ? OR contact_person LIKE ?",
			searchPattern, searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		case "city":
			query = query.Where("address ->> 'city' = ?", value)
		}
	}

	return query
}

// Ensure GormRetailerRepository implements RetailerRepository
var _ partner.RetailerRepository = (*GormRetailerRepository)(nil)
