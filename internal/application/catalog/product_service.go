package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/catalog"
	"github.com/wholesale/backend/internal/domain/shared"
)

// ProductService handles product business operations
type ProductService struct {
	productRepo catalog.ProductRepository
	catalogRepo catalog.CatalogRepository
	access      *AccessService
}

// NewProductService creates a new ProductService
func NewProductService(productRepo catalog.ProductRepository, catalogRepo catalog.CatalogRepository, access *AccessService) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		catalogRepo: catalogRepo,
		access:      access,
	}
}

// Create creates a new product inside a catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	if _, err := s.catalogRepo.FindByID(ctx, req.CatalogID); err != nil {
		return nil, err
	}

	p, err := catalog.NewProduct(req.CatalogID, req.ItemCode, req.Name, req.PricePerPiece, req.PricePerSet)
	if err != nil {
		return nil, err
	}

	exists, err := s.productRepo.ExistsByItemCode(ctx, p.ItemCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("PRODUCT_EXISTS", "A product with this item code already exists")
	}

	if req.Color != "" || req.Fabric != "" {
		if err := p.UpdateDetails(req.Name, req.Color, req.Fabric); err != nil {
			return nil, err
		}
	}
	if len(req.Images) > 0 {
		p.SetImages(toProductImages(req.Images))
	}
	if len(req.Sizes) > 0 {
		if err := p.SetSizes(parseSizes(req.Sizes)); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToProductResponse(p)
	return &response, nil
}

// GetByID retrieves a product by ID
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(p)
	return &response, nil
}

// GetByIDForRetailer retrieves a product only if its catalog is
// visible to the retailer. Hidden products read as not found, not
// forbidden, so unauthorized callers learn nothing.
func (s *ProductService) GetByIDForRetailer(ctx context.Context, retailerID, productID uuid.UUID) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	ok, err := s.access.CanView(ctx, retailerID, p.CatalogID)
	if err != nil {
		return nil, err
	}
	if !ok || !p.IsActive {
		return nil, shared.ErrNotFound
	}

	response := ToProductResponse(p)
	return &response, nil
}

// List retrieves products with filtering and pagination (admin view)
func (s *ProductService) List(ctx context.Context, filter ProductListFilter) ([]ProductResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Keyword
	if filter.ActiveOnly {
		domainFilter.Filters["is_active"] = true
	}

	var products []catalog.Product
	var err error
	if filter.CatalogID != uuid.Nil {
		products, err = s.productRepo.FindByCatalog(ctx, filter.CatalogID, domainFilter)
	} else {
		products, err = s.productRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.productRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, total, nil
}

// ListForRetailer retrieves the products of one catalog, gated by the
// retailer's access
func (s *ProductService) ListForRetailer(ctx context.Context, retailerID, catalogID uuid.UUID, filter ProductListFilter) ([]ProductResponse, error) {
	if err := s.access.AuthorizeView(ctx, retailerID, catalogID); err != nil {
		return nil, err
	}

	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Keyword
	domainFilter.Filters["is_active"] = true

	products, err := s.productRepo.FindByCatalog(ctx, catalogID, domainFilter)
	if err != nil {
		return nil, err
	}

	responses := make([]ProductResponse, 0, len(products))
	for i := range products {
		responses = append(responses, ToProductResponse(&products[i]))
	}
	return responses, nil
}

// Update updates a product
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := p.Name
	if req.Name != nil {
		name = *req.Name
	}
	color := p.Color
	if req.Color != nil {
		color = *req.Color
	}
	fabric := p.Fabric
	if req.Fabric != nil {
		fabric = *req.Fabric
	}
	if err := p.UpdateDetails(name, color, fabric); err != nil {
		return nil, err
	}

	if req.PricePerPiece != nil || req.PricePerSet != nil {
		pricePerPiece := p.PricePerPiece
		if req.PricePerPiece != nil {
			pricePerPiece = *req.PricePerPiece
		}
		pricePerSet := p.PricePerSet
		if req.PricePerSet != nil {
			pricePerSet = *req.PricePerSet
		}
		if err := p.UpdatePricing(pricePerPiece, pricePerSet); err != nil {
			return nil, err
		}
	}

	if req.Images != nil {
		p.SetImages(toProductImages(req.Images))
	}
	if req.Sizes != nil {
		if err := p.SetSizes(parseSizes(req.Sizes)); err != nil {
			return nil, err
		}
	}
	if req.CatalogID != nil {
		if _, err := s.catalogRepo.FindByID(ctx, *req.CatalogID); err != nil {
			return nil, err
		}
		if err := p.MoveToCatalog(*req.CatalogID); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToProductResponse(p)
	return &response, nil
}

// Activate reactivates a product
func (s *ProductService) Activate(ctx context.Context, id uuid.UUID) error {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Activate()
	return s.productRepo.Save(ctx, p)
}

// Deactivate hides a product from retailers
func (s *ProductService) Deactivate(ctx context.Context, id uuid.UUID) error {
	p, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Deactivate()
	return s.productRepo.Save(ctx, p)
}

func toProductImages(inputs []ProductImageInput) []catalog.ProductImage {
	images := make([]catalog.ProductImage, 0, len(inputs))
	for _, in := range inputs {
		images = append(images, catalog.ProductImage{URL: in.URL, IsPrimary: in.IsPrimary})
	}
	return images
}
