package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/catalog"
	"github.com/wholesale/backend/internal/domain/shared"
)

// CatalogService handles catalog business operations
type CatalogService struct {
	catalogRepo catalog.CatalogRepository
	productRepo catalog.ProductRepository
	access      *AccessService
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(catalogRepo catalog.CatalogRepository, productRepo catalog.ProductRepository, access *AccessService) *CatalogService {
	return &CatalogService{
		catalogRepo: catalogRepo,
		productRepo: productRepo,
		access:      access,
	}
}

// Create creates a new catalog
func (s *CatalogService) Create(ctx context.Context, req CreateCatalogRequest) (*CatalogResponse, error) {
	c, err := catalog.NewCatalog(req.Name, req.AccessLevel)
	if err != nil {
		return nil, err
	}
	if req.Description != "" || req.Season != "" {
		if err := c.Update(req.Name, req.Description, req.Season); err != nil {
			return nil, err
		}
	}

	if err := s.catalogRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	// A new non-general catalog changes what tier holders can see
	s.access.InvalidateAll(ctx)

	response := ToCatalogResponse(c)
	return &response, nil
}

// GetByID retrieves a catalog by ID
func (s *CatalogService) GetByID(ctx context.Context, id uuid.UUID) (*CatalogResponse, error) {
	c, err := s.catalogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToCatalogResponse(c)
	return &response, nil
}

// List retrieves all catalogs (admin view, no access filtering)
func (s *CatalogService) List(ctx context.Context, activeOnly bool) ([]CatalogResponse, error) {
	var catalogs []catalog.Catalog
	var err error
	if activeOnly {
		catalogs, err = s.catalogRepo.FindActive(ctx)
	} else {
		catalogs, err = s.catalogRepo.FindAll(ctx, shared.DefaultFilter())
	}
	if err != nil {
		return nil, err
	}

	responses := make([]CatalogResponse, 0, len(catalogs))
	for i := range catalogs {
		responses = append(responses, ToCatalogResponse(&catalogs[i]))
	}
	return responses, nil
}

// ListForRetailer retrieves the catalogs a retailer is allowed to see
func (s *CatalogService) ListForRetailer(ctx context.Context, retailerID uuid.UUID) ([]CatalogResponse, error) {
	ids, err := s.access.ResolveForRetailer(ctx, retailerID)
	if err != nil {
		return nil, err
	}

	responses := make([]CatalogResponse, 0, len(ids))
	for _, id := range ids {
		c, err := s.catalogRepo.FindByID(ctx, id)
		if err != nil {
			if err == shared.ErrNotFound {
				continue
			}
			return nil, err
		}
		responses = append(responses, ToCatalogResponse(c))
	}
	return responses, nil
}

// Update updates a catalog. An access level change invalidates every
// cached per-retailer catalog set.
func (s *CatalogService) Update(ctx context.Context, id uuid.UUID, req UpdateCatalogRequest) (*CatalogResponse, error) {
	c, err := s.catalogRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := c.Name
	if req.Name != nil {
		name = *req.Name
	}
	description := c.Description
	if req.Description != nil {
		description = *req.Description
	}
	season := c.Season
	if req.Season != nil {
		season = *req.Season
	}
	if err := c.Update(name, description, season); err != nil {
		return nil, err
	}

	accessChanged := false
	if req.AccessLevel != nil {
		before := c.AccessLevel
		c.SetAccessLevel(*req.AccessLevel)
		accessChanged = before != c.AccessLevel
	}

	if err := s.catalogRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	if accessChanged {
		s.access.InvalidateAll(ctx)
	}

	response := ToCatalogResponse(c)
	return &response, nil
}

// Activate reactivates a catalog
func (s *CatalogService) Activate(ctx context.Context, id uuid.UUID) error {
	c, err := s.catalogRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	c.Activate()
	if err := s.catalogRepo.Save(ctx, c); err != nil {
		return err
	}
	s.access.InvalidateAll(ctx)
	return nil
}

// Deactivate hides a catalog from every retailer
func (s *CatalogService) Deactivate(ctx context.Context, id uuid.UUID) error {
	c, err := s.catalogRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	c.Deactivate()
	if err := s.catalogRepo.Save(ctx, c); err != nil {
		return err
	}
	s.access.InvalidateAll(ctx)
	return nil
}
