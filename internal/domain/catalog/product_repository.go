package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/shared"
)

// ProductRepository defines the persistence interface for Product
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByItemCode(ctx context.Context, itemCode string) (*Product, error)
	FindByCatalog(ctx context.Context, catalogID uuid.UUID, filter shared.Filter) ([]Product, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)
	Save(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByItemCode(ctx context.Context, itemCode string) (bool, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
