package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/shared"
)

// OrderRepository defines the repository interface for order aggregates
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByNumber(ctx context.Context, orderNumber string) (*Order, error)
	FindByRetailerID(ctx context.Context, retailerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Order], error)
	FindByStatus(ctx context.Context, status OrderStatus, filter shared.Filter) (*shared.Paginated[Order], error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Order], error)
	Save(ctx context.Context, order *Order) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByNumber(ctx context.Context, orderNumber string) (bool, error)
	CountByStatus(ctx context.Context, status OrderStatus) (int64, error)
}

// PurchaseOrderRepository defines the repository interface for PO
// snapshots. Create must surface a unique-constraint violation on
// OrderID as shared.ErrAlreadyExists so callers can fall back to the
// existing snapshot.
type PurchaseOrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*PurchaseOrder, error)
	FindByNumber(ctx context.Context, poNumber string) (*PurchaseOrder, error)
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*PurchaseOrder, error)
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[PurchaseOrder], error)
	Create(ctx context.Context, po *PurchaseOrder) error
	Save(ctx context.Context, po *PurchaseOrder) error
	ExistsByNumber(ctx context.Context, poNumber string) (bool, error)
	Count(ctx context.Context) (int64, error)
}
