package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/wholesale/backend/internal/domain/ordering"
	"github.com/wholesale/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormPurchaseOrderRepository implements PurchaseOrderRepository using GORM
type GormPurchaseOrderRepository struct {
	db *gorm.DB
}

// NewGormPurchaseOrderRepository creates a new GormPurchaseOrderRepository
func NewGormPurchaseOrderRepository(db *gorm.DB) *GormPurchaseOrderRepository {
	return &GormPurchaseOrderRepository{db: db}
}

// FindByID finds a purchase order by its ID
func (r *GormPurchaseOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*ordering.PurchaseOrder, error) {
	var po ordering.PurchaseOrder
	if err := r.db.WithContext(ctx).First(&po, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindByNumber finds a purchase order by its PO number
func (r *GormPurchaseOrderRepository) FindByNumber(ctx context.Context, poNumber string) (*ordering.PurchaseOrder, error) {
	var po ordering.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Where("po_number = ?", strings.ToUpper(strings.TrimSpace(poNumber))).
		First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindByOrderID finds the purchase order generated for the given order
func (r *GormPurchaseOrderRepository) FindByOrderID(ctx context.Context, orderID uuid.UUID) (*ordering.PurchaseOrder, error) {
	var po ordering.PurchaseOrder
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		First(&po).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &po, nil
}

// FindAll finds all purchase orders matching the filter
func (r *GormPurchaseOrderRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[ordering.PurchaseOrder], error) {
	countQuery := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.PurchaseOrder{}), filter)
	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, err
	}

	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&ordering.PurchaseOrder{}), filter)
	query = r.applyPagination(query, filter)

	var pos []ordering.PurchaseOrder
	if err := query.Find(&pos).Error; err != nil {
		return nil, err
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	result := shared.NewPaginated(pos, total, page, pageSize)
	return &result, nil
}

// Create inserts a new purchase order. A unique-constraint violation on
// order_id surfaces as shared.ErrAlreadyExists so the caller can fall
// back to the snapshot that won the race.
func (r *GormPurchaseOrderRepository) Create(ctx context.Context, po *ordering.PurchaseOrder) error {
	if err := r.db.WithContext(ctx).Create(po).Error; err != nil {
		if isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Save updates an existing purchase order
func (r *GormPurchaseOrderRepository) Save(ctx context.Context, po *ordering.PurchaseOrder) error {
	return r.db.WithContext(ctx).Save(po).Error
}

// ExistsByNumber checks if a purchase order with the given number exists
func (r *GormPurchaseOrderRepository) ExistsByNumber(ctx context.Context, poNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.PurchaseOrder{}).
		Where("po_number = ?", strings.ToUpper(strings.TrimSpace(poNumber))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Count counts all purchase orders
func (r *GormPurchaseOrderRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&ordering.PurchaseOrder{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormPurchaseOrderRepository) applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
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
		query = query.Order("created_at DESC")
	}

	return query
}

func (r *GormPurchaseOrderRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("po_number LIKE ? OR order_number LIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		}
	}

	return query
}

// isUniqueViolation reports whether the error is a unique-constraint
// violation from postgres (SQLSTATE 23505), the GORM translated error,
// or sqlite's constraint message used in tests.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLSTATE 23505") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// Ensure GormPurchaseOrderRepository implements PurchaseOrderRepository
var _ ordering.PurchaseOrderRepository = (*GormPurchaseOrderRepository)(nil)
