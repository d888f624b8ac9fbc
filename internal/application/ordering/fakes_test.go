package ordering

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/catalog"
	"github.com/wholesale/backend/internal/domain/ordering"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
)

type fakeOrderRepo struct {
	byID map[uuid.UUID]*ordering.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{byID: make(map[uuid.UUID]*ordering.Order)}
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.Order, error) {
	if o, ok := r.byID[id]; ok {
		return o, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByNumber(_ context.Context, number string) (*ordering.Order, error) {
	for _, o := range r.byID {
		if o.OrderNumber == number {
			return o, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeOrderRepo) FindByRetailerID(_ context.Context, retailerID uuid.UUID, filter shared.Filter) (*shared.Paginated[ordering.Order], error) {
	var items []ordering.Order
	for _, o := range r.byID {
		if o.Retailer.RetailerID == retailerID {
			items = append(items, *o)
		}
	}
	page := shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *fakeOrderRepo) FindByStatus(_ context.Context, status ordering.OrderStatus, filter shared.Filter) (*shared.Paginated[ordering.Order], error) {
	var items []ordering.Order
	for _, o := range r.byID {
		if o.Status == status {
			items = append(items, *o)
		}
	}
	page := shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *fakeOrderRepo) FindAll(_ context.Context, filter shared.Filter) (*shared.Paginated[ordering.Order], error) {
	items := make([]ordering.Order, 0, len(r.byID))
	for _, o := range r.byID {
		items = append(items, *o)
	}
	page := shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *fakeOrderRepo) Save(_ context.Context, order *ordering.Order) error {
	r.byID[order.ID] = order
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeOrderRepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	for _, o := range r.byID {
		if o.OrderNumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeOrderRepo) CountByStatus(_ context.Context, status ordering.OrderStatus) (int64, error) {
	var n int64
	for _, o := range r.byID {
		if o.Status == status {
			n++
		}
	}
	return n, nil
}

type fakePORepo struct {
	byID      map[uuid.UUID]*ordering.PurchaseOrder
	byOrderID map[uuid.UUID]*ordering.PurchaseOrder
}

func newFakePORepo() *fakePORepo {
	return &fakePORepo{
		byID:      make(map[uuid.UUID]*ordering.PurchaseOrder),
		byOrderID: make(map[uuid.UUID]*ordering.PurchaseOrder),
	}
}

func (r *fakePORepo) FindByID(_ context.Context, id uuid.UUID) (*ordering.PurchaseOrder, error) {
	if po, ok := r.byID[id]; ok {
		return po, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePORepo) FindByNumber(_ context.Context, number string) (*ordering.PurchaseOrder, error) {
	for _, po := range r.byID {
		if po.PONumber == number {
			return po, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePORepo) FindByOrderID(_ context.Context, orderID uuid.UUID) (*ordering.PurchaseOrder, error) {
	if po, ok := r.byOrderID[orderID]; ok {
		return po, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePORepo) FindAll(_ context.Context, filter shared.Filter) (*shared.Paginated[ordering.PurchaseOrder], error) {
	items := make([]ordering.PurchaseOrder, 0, len(r.byID))
	for _, po := range r.byID {
		if status, ok := filter.Filters["status"].(string); ok && po.Status.String() != status {
			continue
		}
		items = append(items, *po)
	}
	page := shared.NewPaginated(items, int64(len(items)), filter.Page, filter.PageSize)
	return &page, nil
}

func (r *fakePORepo) Create(_ context.Context, po *ordering.PurchaseOrder) error {
	if _, ok := r.byOrderID[po.OrderID]; ok {
		return shared.ErrAlreadyExists
	}
	r.byID[po.ID] = po
	r.byOrderID[po.OrderID] = po
	return nil
}

func (r *fakePORepo) Save(_ context.Context, po *ordering.PurchaseOrder) error {
	r.byID[po.ID] = po
	r.byOrderID[po.OrderID] = po
	return nil
}

func (r *fakePORepo) ExistsByNumber(_ context.Context, number string) (bool, error) {
	for _, po := range r.byID {
		if po.PONumber == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePORepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.byID)), nil
}

type fakeRetailerRepo struct {
	byID map[uuid.UUID]*partner.Retailer
}

func newFakeRetailerRepo() *fakeRetailerRepo {
	return &fakeRetailerRepo{byID: make(map[uuid.UUID]*partner.Retailer)}
}

func (r *fakeRetailerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Retailer, error) {
	if ret, ok := r.byID[id]; ok {
		return ret, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeRetailerRepo) FindByPhone(_ context.Context, phone string) (*partner.Retailer, error) {
	for _, ret := range r.byID {
		if ret.Phone == phone {
			return ret, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeRetailerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Retailer, error) {
	return nil, nil
}

func (r *fakeRetailerRepo) FindActive(_ context.Context) ([]partner.Retailer, error) {
	return nil, nil
}

func (r *fakeRetailerRepo) FindByPriorityCode(_ context.Context, _ string) ([]partner.Retailer, error) {
	return nil, nil
}

func (r *fakeRetailerRepo) Save(_ context.Context, ret *partner.Retailer) error {
	r.byID[ret.ID] = ret
	return nil
}

func (r *fakeRetailerRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeRetailerRepo) ExistsByPhone(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeRetailerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

type fakeProductRepo struct {
	byID map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{byID: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.byID[id]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByItemCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range r.byID {
		if p.ItemCode == code {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByCatalog(_ context.Context, _ uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	return nil, nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) ExistsByItemCode(_ context.Context, _ string) (bool, error) {
	return false, nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

type fakeAccess struct {
	allow map[uuid.UUID]bool
}

func (a *fakeAccess) CanView(_ context.Context, _, catalogID uuid.UUID) (bool, error) {
	return a.allow[catalogID], nil
}
