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

// GormPriorityRepository implements PriorityRepository using GORM
type GormPriorityRepository struct {
	db *gorm.DB
}

// NewGormPriorityRepository creates a new GormPriorityRepository
func NewGormPriorityRepository(db *gorm.DB) *GormPriorityRepository {
	return &GormPriorityRepository{db: db}
}

// FindByID finds a priority tier by its ID
func (r *GormPriorityRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Priority, error) {
	var priority partner.Priority
	if err := r.db.WithContext(ctx).First(&priority, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &priority, nil
}

// FindByCode finds a priority tier by its code
func (r *GormPriorityRepository) FindByCode(ctx context.Context, code string) (*partner.Priority, error) {
	var priority partner.Priority
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		First(&priority).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &priority, nil
}

// FindAll finds all priority tiers matching the filter
func (r *GormPriorityRepository) FindAll(ctx context.Context, filter shared.Filter) ([]partner.Priority, error) {
	var priorities []partner.Priority
	query := r.applyFilter(r.db.WithContext(ctx).Model(&partner.Priority{}), filter)
	if err := query.Find(&priorities).Error; err != nil {
		return nil, err
	}
	return priorities, nil
}

// FindActive finds all active priority tiers ordered for display
func (r *GormPriorityRepository) FindActive(ctx context.Context) ([]partner.Priority, error) {
	var priorities []partner.Priority
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_order ASC, code ASC").
		Find(&priorities).Error; err != nil {
		return nil, err
	}
	return priorities, nil
}

// Save creates or updates a priority tier
func (r *GormPriorityRepository) Save(ctx context.Context, priority *partner.Priority) error {
	return r.db.WithContext(ctx).Save(priority).Error
}

// Delete deletes a priority tier
func (r *GormPriorityRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&partner.Priority{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if a priority tier with the given code exists
func (r *GormPriorityRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&partner.Priority{}).
		Where("code = ?", strings.ToUpper(strings.TrimSpace(code))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts priority tiers matching the filter
func (r *GormPriorityRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&partner.Priority{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPriorityRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("sort_order ASC, code ASC")
	}

	return query
}

func (r *GormPriorityRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("code LIKE ? OR name LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "is_active":
			query = query.Where("is_active = ?", value)
		}
	}

	return query
}

// Ensure GormPriorityRepository implements PriorityRepository
var _ partner.PriorityRepository = (*GormPriorityRepository)(nil)
