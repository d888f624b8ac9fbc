package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wholesale/backend/internal/domain/catalog"
	"github.com/wholesale/backend/internal/domain/ordering"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
)

const numberRetries = 5

// CatalogAccess gates order creation on catalog visibility. Implemented
// by the catalog context's access service.
type CatalogAccess interface {
	CanView(ctx context.Context, retailerID, catalogID uuid.UUID) (bool, error)
}

// OrderService handles order business operations
type OrderService struct {
	orderRepo    ordering.OrderRepository
	retailerRepo partner.RetailerRepository
	productRepo  catalog.ProductRepository
	access       CatalogAccess
	events       shared.EventPublisher
	gstRate      decimal.Decimal
	gstByDefault bool
}

// NewOrderService creates a new OrderService. gstRate is the percent
// applied to orders where GST is applicable. events may be nil.
func NewOrderService(
	orderRepo ordering.OrderRepository,
	retailerRepo partner.RetailerRepository,
	productRepo catalog.ProductRepository,
	access CatalogAccess,
	events shared.EventPublisher,
	gstRate decimal.Decimal,
	gstByDefault bool,
) *OrderService {
	return &OrderService{
		orderRepo:    orderRepo,
		retailerRepo: retailerRepo,
		productRepo:  productRepo,
		access:       access,
		events:       events,
		gstRate:      gstRate,
		gstByDefault: gstByDefault,
	}
}

// publishEvents drains the aggregate's recorded events after a successful
// save. Event delivery is best effort and never fails the operation.
func publishEvents(ctx context.Context, pub shared.EventPublisher, agg shared.AggregateRoot) {
	if pub == nil {
		return
	}
	events := agg.GetDomainEvents()
	if len(events) == 0 {
		return
	}
	_ = pub.Publish(ctx, events...)
	agg.ClearDomainEvents()
}

// Create creates a new draft order from a retailer's cart
func (s *OrderService) Create(ctx context.Context, req CreateOrderRequest) (*OrderResponse, error) {
	retailer, err := s.retailerRepo.FindByID(ctx, req.RetailerID)
	if err != nil {
		return nil, err
	}
	if !retailer.IsActive {
		return nil, shared.NewDomainError("RETAILER_INACTIVE", "Inactive retailers cannot place orders")
	}

	ok, err := s.access.CanView(ctx, req.RetailerID, req.CatalogID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.ErrForbidden
	}

	orderNumber, err := s.nextOrderNumber(ctx)
	if err != nil {
		return nil, err
	}

	// GST applies when the retailer has a GSTIN on file, or always
	// when the platform is configured that way
	gstApplicable := s.gstByDefault || retailer.GSTNumber != ""

	order, err := ordering.NewOrder(orderNumber, req.CatalogID, snapshotRetailer(retailer), gstApplicable, s.gstRate)
	if err != nil {
		return nil, err
	}

	for _, input := range req.Items {
		product, err := s.productRepo.FindByID(ctx, input.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, shared.NewDomainError("PRODUCT_INACTIVE", "Product "+product.ItemCode+" is no longer available")
		}
		if product.CatalogID != req.CatalogID {
			return nil, shared.NewDomainError("PRODUCT_NOT_IN_CATALOG", "Product "+product.ItemCode+" does not belong to the ordered catalog")
		}

		if _, err := order.AddItem(
			product.ID,
			product.ItemCode,
			product.Name,
			product.Color,
			product.Fabric,
			input.QuantitySets,
			product.PricePerPiece,
			product.PricePerSet,
			sizeQuantitiesFromMap(input.SizeQuantities),
		); err != nil {
			return nil, err
		}
	}

	if req.Notes != "" {
		order.SetNotes(req.Notes)
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, order)

	response := ToOrderResponse(order)
	return &response, nil
}

// GetByID retrieves an order by ID
func (s *OrderService) GetByID(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// GetByNumber retrieves an order by its order number
func (s *OrderService) GetByNumber(ctx context.Context, orderNumber string) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// List retrieves orders with filtering and pagination
func (s *OrderService) List(ctx context.Context, filter OrderListFilter) ([]OrderResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize

	var page *shared.Paginated[ordering.Order]
	var err error
	switch {
	case filter.RetailerID != uuid.Nil:
		page, err = s.orderRepo.FindByRetailerID(ctx, filter.RetailerID, domainFilter)
	case filter.Status != "":
		status := ordering.OrderStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown order status "+filter.Status)
		}
		page, err = s.orderRepo.FindByStatus(ctx, status, domainFilter)
	default:
		page, err = s.orderRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	responses := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, ToOrderResponse(&page.Items[i]))
	}
	return responses, page.Total, nil
}

// Submit submits a draft order for review
func (s *OrderService) Submit(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.Submit(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, order)
	response := ToOrderResponse(order)
	return &response, nil
}

// StartReview moves a submitted order into review
func (s *OrderService) StartReview(ctx context.Context, id uuid.UUID) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := order.StartReview(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	response := ToOrderResponse(order)
	return &response, nil
}

// Review applies an admin review decision, committing any size edits
// atomically with the decision
func (s *OrderService) Review(ctx context.Context, id uuid.UUID, req ReviewOrderRequest) (*OrderResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	err = order.ApplyReview(
		ordering.ReviewAction(req.Action),
		req.Notes,
		req.ReviewedBy,
		distributionFromMap(req.SizeDistribution),
	)
	if err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, order)
	response := ToOrderResponse(order)
	return &response, nil
}

// Delete removes an order regardless of its status. A purchase order
// already generated from it is kept; the snapshot stands on its own.
func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.orderRepo.Delete(ctx, id)
}

func (s *OrderService) nextOrderNumber(ctx context.Context) (string, error) {
	for i := 0; i < numberRetries; i++ {
		number := ordering.NewOrderNumber(time.Now())
		exists, err := s.orderRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", errors.New("could not allocate a unique order number")
}

func snapshotRetailer(r *partner.Retailer) ordering.RetailerInfo {
	return ordering.RetailerInfo{
		RetailerID:    r.ID,
		Phone:         r.Phone,
		BusinessName:  r.BusinessName,
		ContactPerson: r.ContactPerson,
		Email:         r.Email,
		Address:       r.Address,
		GSTNumber:     r.GSTNumber,
	}
}
