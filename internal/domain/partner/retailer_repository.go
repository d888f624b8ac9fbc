package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/shared"
)

// RetailerRepository defines the persistence interface for Retailer
type RetailerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Retailer, error)
	FindByPhone(ctx context.Context, phone string) (*Retailer, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Retailer, error)
	FindActive(ctx context.Context) ([]Retailer, error)
	FindByPriorityCode(ctx context.Context, code string) ([]Retailer, error)
	Save(ctx context.Context, retailer *Retailer) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
