package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/catalog"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
)

// AccessCache caches the resolved catalog set per retailer. A miss is
// never an error; resolution falls through to the database.
type AccessCache interface {
	GetRetailerCatalogs(ctx context.Context, retailerID uuid.UUID) ([]uuid.UUID, bool)
	SetRetailerCatalogs(ctx context.Context, retailerID uuid.UUID, catalogIDs []uuid.UUID)
	InvalidateRetailer(ctx context.Context, retailerID uuid.UUID)
	InvalidateAll(ctx context.Context)
}

// AccessService resolves which catalogs a tier membership or a
// retailer can see. It is the only place access decisions are made;
// handlers and other services go through it.
type AccessService struct {
	catalogRepo  catalog.CatalogRepository
	retailerRepo partner.RetailerRepository
	cache        AccessCache
}

// NewAccessService creates a new AccessService
func NewAccessService(catalogRepo catalog.CatalogRepository, retailerRepo partner.RetailerRepository, cache AccessCache) *AccessService {
	return &AccessService{
		catalogRepo:  catalogRepo,
		retailerRepo: retailerRepo,
		cache:        cache,
	}
}

// ResolveForPriorities computes the catalog IDs visible to a tier
// membership: general catalogs plus catalogs whose access level
// matches one of the codes. Active catalogs only.
func (s *AccessService) ResolveForPriorities(ctx context.Context, priorityCodes []string) ([]uuid.UUID, error) {
	catalogs, err := s.catalogRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.ResolveAccessibleCatalogs(priorityCodes, catalogs), nil
}

// InvalidateRetailer drops a retailer's cached catalog set
func (s *AccessService) InvalidateRetailer(ctx context.Context, retailerID uuid.UUID) {
	s.cache.InvalidateRetailer(ctx, retailerID)
}

// InvalidateAll drops every cached catalog set. Called when a catalog
// changes access level or active state.
func (s *AccessService) InvalidateAll(ctx context.Context) {
	s.cache.InvalidateAll(ctx)
}

// ResolveForRetailer returns the catalog IDs a retailer can currently
// see, resolving fresh on cache miss. Inactive retailers see nothing.
func (s *AccessService) ResolveForRetailer(ctx context.Context, retailerID uuid.UUID) ([]uuid.UUID, error) {
	retailer, err := s.retailerRepo.FindByID(ctx, retailerID)
	if err != nil {
		return nil, err
	}
	if !retailer.IsActive {
		return []uuid.UUID{}, nil
	}

	if ids, ok := s.cache.GetRetailerCatalogs(ctx, retailerID); ok {
		return ids, nil
	}

	ids, err := s.ResolveForPriorities(ctx, retailer.PriorityCodes)
	if err != nil {
		return nil, err
	}
	s.cache.SetRetailerCatalogs(ctx, retailerID, ids)
	return ids, nil
}

// CanView reports whether a retailer may open a specific catalog
func (s *AccessService) CanView(ctx context.Context, retailerID, catalogID uuid.UUID) (bool, error) {
	ids, err := s.ResolveForRetailer(ctx, retailerID)
	if err != nil {
		return false, err
	}
	for _, id := range ids {
		if id == catalogID {
			return true, nil
		}
	}
	return false, nil
}

// AuthorizeView is CanView folded into the error domain for handlers
func (s *AccessService) AuthorizeView(ctx context.Context, retailerID, catalogID uuid.UUID) error {
	ok, err := s.CanView(ctx, retailerID, catalogID)
	if err != nil {
		return err
	}
	if !ok {
		return shared.ErrForbidden
	}
	return nil
}
