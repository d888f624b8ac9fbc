package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/shared"
)

// CatalogRepository defines the persistence interface for Catalog
type CatalogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Catalog, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Catalog, error)
	FindActive(ctx context.Context) ([]Catalog, error)
	FindByAccessLevel(ctx context.Context, accessLevel string) ([]Catalog, error)
	Save(ctx context.Context, catalog *Catalog) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context, filter shared.Filter) (int64, error)
}
