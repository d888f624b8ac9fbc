package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/ordering"
	"github.com/wholesale/backend/internal/domain/shared"
)

// PurchaseOrderService handles purchase order generation and delivery
// tracking. Generation is idempotent per order: repeated calls return
// the snapshot created by the first one.
type PurchaseOrderService struct {
	poRepo    ordering.PurchaseOrderRepository
	orderRepo ordering.OrderRepository
	events    shared.EventPublisher
	seller    SellerInfo
}

// NewPurchaseOrderService creates a new PurchaseOrderService. events may
// be nil.
func NewPurchaseOrderService(poRepo ordering.PurchaseOrderRepository, orderRepo ordering.OrderRepository, events shared.EventPublisher, seller SellerInfo) *PurchaseOrderService {
	return &PurchaseOrderService{
		poRepo:    poRepo,
		orderRepo: orderRepo,
		events:    events,
		seller:    seller,
	}
}

// Generate creates the purchase order snapshot for an approved order.
// If one already exists it is returned as-is; the request's terms are
// ignored in that case.
func (s *PurchaseOrderService) Generate(ctx context.Context, orderID uuid.UUID, req GeneratePORequest) (*POResponse, error) {
	if existing, err := s.poRepo.FindByOrderID(ctx, orderID); err == nil {
		return s.returnExisting(ctx, existing)
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	order, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var po *ordering.PurchaseOrder
	for attempt := 0; attempt < numberRetries; attempt++ {
		poNumber, err := s.nextPONumber(ctx)
		if err != nil {
			return nil, err
		}

		po, err = ordering.NewPurchaseOrderFromOrder(poNumber, order, req.GeneratedBy, ordering.POTerms{
			Payment:  req.Payment,
			Delivery: req.Delivery,
			Remarks:  req.Remarks,
		})
		if err != nil {
			return nil, err
		}

		err = s.poRepo.Create(ctx, po)
		if err == nil {
			break
		}
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}

		// The unique violation is either a concurrent generation
		// winning the order_id constraint, or a po_number collision.
		// A hit on order_id means the winner's snapshot exists; a
		// miss means the number clashed and a fresh one must be drawn.
		existing, findErr := s.poRepo.FindByOrderID(ctx, orderID)
		if findErr == nil {
			return s.returnExisting(ctx, existing)
		}
		if !errors.Is(findErr, shared.ErrNotFound) {
			return nil, findErr
		}
		po = nil
	}
	if po == nil {
		return nil, errors.New("could not allocate a unique purchase order number")
	}

	if err := order.MarkPOGenerated(); err != nil {
		return nil, err
	}
	if err := s.orderRepo.Save(ctx, order); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, po)
	publishEvents(ctx, s.events, order)

	response := ToPOResponse(po)
	return &response, nil
}

// returnExisting hands back an already-generated snapshot, first moving
// the source order to PO_GENERATED if an earlier run failed between the
// two writes and left it APPROVED.
func (s *PurchaseOrderService) returnExisting(ctx context.Context, po *ordering.PurchaseOrder) (*POResponse, error) {
	order, err := s.orderRepo.FindByID(ctx, po.OrderID)
	if err != nil {
		return nil, err
	}
	if order.Status == ordering.OrderStatusApproved {
		if err := order.MarkPOGenerated(); err != nil {
			return nil, err
		}
		if err := s.orderRepo.Save(ctx, order); err != nil {
			return nil, err
		}
		publishEvents(ctx, s.events, order)
	}
	response := ToPOResponse(po)
	return &response, nil
}

// GetByID retrieves a purchase order by ID
func (s *PurchaseOrderService) GetByID(ctx context.Context, id uuid.UUID) (*POResponse, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToPOResponse(po)
	return &response, nil
}

// GetByOrderID retrieves the purchase order generated for an order
func (s *PurchaseOrderService) GetByOrderID(ctx context.Context, orderID uuid.UUID) (*POResponse, error) {
	po, err := s.poRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	response := ToPOResponse(po)
	return &response, nil
}

// List retrieves purchase orders with pagination
func (s *PurchaseOrderService) List(ctx context.Context, filter POListFilter) ([]POResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	if filter.Status != "" {
		status := ordering.POStatus(filter.Status)
		if !status.IsValid() {
			return nil, 0, shared.NewDomainError("INVALID_STATUS", "Unknown purchase order status "+filter.Status)
		}
		domainFilter.Filters["status"] = status.String()
	}

	page, err := s.poRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]POResponse, 0, len(page.Items))
	for i := range page.Items {
		responses = append(responses, ToPOResponse(&page.Items[i]))
	}
	return responses, page.Total, nil
}

// MarkSent records dispatch of the PO to the supplier
func (s *PurchaseOrderService) MarkSent(ctx context.Context, id uuid.UUID) (*POResponse, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := po.MarkSent(); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, po)
	response := ToPOResponse(po)
	return &response, nil
}

// MarkAcknowledged records the supplier's confirmation
func (s *PurchaseOrderService) MarkAcknowledged(ctx context.Context, id uuid.UUID) (*POResponse, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := po.MarkAcknowledged(); err != nil {
		return nil, err
	}
	if err := s.poRepo.Save(ctx, po); err != nil {
		return nil, err
	}
	publishEvents(ctx, s.events, po)
	response := ToPOResponse(po)
	return &response, nil
}

// DocumentData assembles the payload for the external document
// renderer: the frozen snapshot plus the seller letterhead
func (s *PurchaseOrderService) DocumentData(ctx context.Context, id uuid.UUID) (*DocumentDataResponse, error) {
	po, err := s.poRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &DocumentDataResponse{
		Seller:      s.seller,
		PO:          ToPOResponse(po),
		GeneratedAt: time.Now(),
	}, nil
}

func (s *PurchaseOrderService) nextPONumber(ctx context.Context) (string, error) {
	for i := 0; i < numberRetries; i++ {
		number := ordering.NewPONumber(time.Now())
		exists, err := s.poRepo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", errors.New("could not allocate a unique purchase order number")
}
