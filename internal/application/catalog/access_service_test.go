package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wholesale/backend/internal/domain/catalog"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/infrastructure/cache"
)

type fakeCatalogRepo struct {
	byID      map[uuid.UUID]*catalog.Catalog
	findCalls int
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{byID: make(map[uuid.UUID]*catalog.Catalog)}
}

func (r *fakeCatalogRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Catalog, error) {
	if c, ok := r.byID[id]; ok {
		return c, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeCatalogRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Catalog, error) {
	out := make([]catalog.Catalog, 0, len(r.byID))
	for _, c := range r.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (r *fakeCatalogRepo) FindActive(_ context.Context) ([]catalog.Catalog, error) {
	r.findCalls++
	var out []catalog.Catalog
	for _, c := range r.byID {
		if c.IsActive {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) FindByAccessLevel(_ context.Context, level string) ([]catalog.Catalog, error) {
	var out []catalog.Catalog
	for _, c := range r.byID {
		if c.AccessLevel == level {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCatalogRepo) Save(_ context.Context, c *catalog.Catalog) error {
	r.byID[c.ID] = c
	return nil
}

func (r *fakeCatalogRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeCatalogRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
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

func seedCatalog(t *testing.T, repo *fakeCatalogRepo, name, level string) *catalog.Catalog {
	t.Helper()
	c, err := catalog.NewCatalog(name, level)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), c))
	return c
}

func seedRetailer(t *testing.T, repo *fakeRetailerRepo, codes ...string) *partner.Retailer {
	t.Helper()
	r, err := partner.NewRetailer("9876543210", "Sharma Garments")
	require.NoError(t, err)
	r.ReplacePriorities(codes...)
	require.NoError(t, repo.Save(context.Background(), r))
	return r
}

func newAccessService(catalogRepo *fakeCatalogRepo, retailerRepo *fakeRetailerRepo) *AccessService {
	return NewAccessService(catalogRepo, retailerRepo, cache.NewMemoryAccessCache(0))
}

func TestAccessService_ResolveForPriorities(t *testing.T) {
	ctx := context.Background()
	catalogRepo := newFakeCatalogRepo()
	general := seedCatalog(t, catalogRepo, "General Collection", "")
	tierR1 := seedCatalog(t, catalogRepo, "Premium Collection", "R1")
	seedCatalog(t, catalogRepo, "Elite Collection", "R2")

	svc := newAccessService(catalogRepo, newFakeRetailerRepo())

	ids, err := svc.ResolveForPriorities(ctx, []string{"R1"})
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{general.ID, tierR1.ID}, ids)

	ids, err = svc.ResolveForPriorities(ctx, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{general.ID}, ids, "no tiers means general access only")
}

func TestAccessService_ResolveForRetailer(t *testing.T) {
	ctx := context.Background()
	catalogRepo := newFakeCatalogRepo()
	retailerRepo := newFakeRetailerRepo()
	general := seedCatalog(t, catalogRepo, "General Collection", "")
	tierR1 := seedCatalog(t, catalogRepo, "Premium Collection", "R1")
	retailer := seedRetailer(t, retailerRepo, "R1")

	svc := newAccessService(catalogRepo, retailerRepo)

	ids, err := svc.ResolveForRetailer(ctx, retailer.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uuid.UUID{general.ID, tierR1.ID}, ids)

	// Second read comes from the cache
	calls := catalogRepo.findCalls
	_, err = svc.ResolveForRetailer(ctx, retailer.ID)
	require.NoError(t, err)
	assert.Equal(t, calls, catalogRepo.findCalls)

	// Invalidation forces a fresh resolve
	svc.InvalidateRetailer(ctx, retailer.ID)
	_, err = svc.ResolveForRetailer(ctx, retailer.ID)
	require.NoError(t, err)
	assert.Equal(t, calls+1, catalogRepo.findCalls)
}

func TestAccessService_InactiveRetailerSeesNothing(t *testing.T) {
	ctx := context.Background()
	catalogRepo := newFakeCatalogRepo()
	retailerRepo := newFakeRetailerRepo()
	seedCatalog(t, catalogRepo, "General Collection", "")
	retailer := seedRetailer(t, retailerRepo, "R1")
	retailer.Deactivate()

	svc := newAccessService(catalogRepo, retailerRepo)

	ids, err := svc.ResolveForRetailer(ctx, retailer.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestAccessService_CanView(t *testing.T) {
	ctx := context.Background()
	catalogRepo := newFakeCatalogRepo()
	retailerRepo := newFakeRetailerRepo()
	seedCatalog(t, catalogRepo, "General Collection", "")
	restricted := seedCatalog(t, catalogRepo, "Elite Collection", "R2")
	retailer := seedRetailer(t, retailerRepo, "R1")

	svc := newAccessService(catalogRepo, retailerRepo)

	ok, err := svc.CanView(ctx, retailer.ID, restricted.ID)
	require.NoError(t, err)
	assert.False(t, ok)

	err = svc.AuthorizeView(ctx, retailer.ID, restricted.ID)
	assert.ErrorIs(t, err, shared.ErrForbidden)
}

func TestCatalogService_AccessLevelChangeInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	catalogRepo := newFakeCatalogRepo()
	retailerRepo := newFakeRetailerRepo()
	seedCatalog(t, catalogRepo, "General Collection", "")
	hidden := seedCatalog(t, catalogRepo, "Upcoming Collection", "R9")
	retailer := seedRetailer(t, retailerRepo, "R1")

	access := newAccessService(catalogRepo, retailerRepo)
	svc := NewCatalogService(catalogRepo, nil, access)

	ids, err := access.ResolveForRetailer(ctx, retailer.ID)
	require.NoError(t, err)
	assert.NotContains(t, ids, hidden.ID)

	// Reassigning the catalog to the retailer's tier must show up
	// without waiting for a cache TTL
	level := "R1"
	_, err = svc.Update(ctx, hidden.ID, UpdateCatalogRequest{AccessLevel: &level})
	require.NoError(t, err)

	ids, err = access.ResolveForRetailer(ctx, retailer.ID)
	require.NoError(t, err)
	assert.Contains(t, ids, hidden.ID)
}

func TestProductService_RetailerVisibility(t *testing.T) {
	ctx := context.Background()
	catalogRepo := newFakeCatalogRepo()
	retailerRepo := newFakeRetailerRepo()
	productRepo := newFakeProductRepo()
	restricted := seedCatalog(t, catalogRepo, "Elite Collection", "R2")
	retailer := seedRetailer(t, retailerRepo, "R1")

	p, err := catalog.NewProduct(restricted.ID, "KRT-201", "Silk Kurti", decimal.NewFromInt(900), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(ctx, p))

	access := newAccessService(catalogRepo, retailerRepo)
	svc := NewProductService(productRepo, catalogRepo, access)

	// Hidden catalogs read as not found, not forbidden
	_, err = svc.GetByIDForRetailer(ctx, retailer.ID, p.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = svc.ListForRetailer(ctx, retailer.ID, restricted.ID, ProductListFilter{})
	assert.ErrorIs(t, err, shared.ErrForbidden)
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

func (r *fakeProductRepo) FindByCatalog(_ context.Context, catalogID uuid.UUID, _ shared.Filter) ([]catalog.Product, error) {
	var out []catalog.Product
	for _, p := range r.byID {
		if p.CatalogID == catalogID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	r.byID[p.ID] = p
	return nil
}

func (r *fakeProductRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.byID, id)
	return nil
}

func (r *fakeProductRepo) ExistsByItemCode(_ context.Context, code string) (bool, error) {
	for _, p := range r.byID {
		if p.ItemCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}
