package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/shared"
)

// PriorityRepository defines the persistence interface for Priority
type PriorityRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Priority, error)
	FindByCode(ctx context.Context, code string) (*Priority, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Priority, error)
	FindActive(ctx context.Context) ([]Priority, error)
	Save(ctx context.Context, priority *Priority) error
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
