package persistence

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPartnerTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&partner.Priority{}, &partner.Retailer{}))

	return db
}

func newTestRetailer(t *testing.T, phone, name string, codes ...string) *partner.Retailer {
	t.Helper()
	retailer, err := partner.NewRetailer(phone, name)
	require.NoError(t, err)
	if len(codes) > 0 {
		retailer.ReplacePriorities(codes...)
	}
	return retailer
}

func TestGormRetailerRepository_SaveAndFind(t *testing.T) {
	db := setupPartnerTestDB(t)
	repo := NewGormRetailerRepository(db)
	ctx := context.Background()

	retailer := newTestRetailer(t, "9876543210", "Sharma Garments", "R1")
	retailer.SetAccessibleCatalogs([]uuid.UUID{uuid.New()})
	require.NoError(t, repo.Save(ctx, retailer))

	retrieved, err := repo.FindByID(ctx, retailer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Sharma Garments", retrieved.BusinessName)
	assert.Equal(t, partner.PriorityCodes{"R1"}, retrieved.PriorityCodes)
	assert.Len(t, retrieved.AccessibleCatalogIDs, 1)

	// Phone lookup normalizes before querying
	byPhone, err := repo.FindByPhone(ctx, "+91 98765 43210")
	require.NoError(t, err)
	assert.Equal(t, retailer.ID, byPhone.ID)

	exists, err := repo.ExistsByPhone(ctx, "9876543210")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByPhone(ctx, "9000000000")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormRetailerRepository_FindByPriorityCode(t *testing.T) {
	db := setupPartnerTestDB(t)
	repo := NewGormRetailerRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, newTestRetailer(t, "9876543210", "Sharma Garments", "R1")))
	require.NoError(t, repo.Save(ctx, newTestRetailer(t, "9876543211", "Verma Textiles", "R1", "R2")))
	require.NoError(t, repo.Save(ctx, newTestRetailer(t, "9876543212", "Gupta Fashions", "R2")))
	require.NoError(t, repo.Save(ctx, newTestRetailer(t, "9876543213", "Mehta Traders")))

	holders, err := repo.FindByPriorityCode(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, holders, 2)
	names := []string{holders[0].BusinessName, holders[1].BusinessName}
	assert.ElementsMatch(t, []string{"Sharma Garments", "Verma Textiles"}, names)

	holders, err = repo.FindByPriorityCode(ctx, "R3")
	require.NoError(t, err)
	assert.Empty(t, holders)
}

func TestGormRetailerRepository_FindActiveAndFilter(t *testing.T) {
	db := setupPartnerTestDB(t)
	repo := NewGormRetailerRepository(db)
	ctx := context.Background()

	active := newTestRetailer(t, "9876543210", "Sharma Garments")
	require.NoError(t, repo.Save(ctx, active))

	inactive := newTestRetailer(t, "9876543211", "Verma Textiles")
	inactive.Deactivate()
	require.NoError(t, repo.Save(ctx, inactive))

	retailers, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, retailers, 1)
	assert.Equal(t, "Sharma Garments", retailers[0].BusinessName)

	filter := shared.DefaultFilter()
	filter.Filters["is_active"] = false
	all, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "Verma Textiles", all[0].BusinessName)

	filter = shared.DefaultFilter()
	filter.Search = "Sharma"
	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGormPriorityRepository_CodeLookup(t *testing.T) {
	db := setupPartnerTestDB(t)
	repo := NewGormPriorityRepository(db)
	ctx := context.Background()

	priority, err := partner.NewPriority("R1", "Premium Retailers", decimal.NewFromInt(10))
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, priority))

	retrieved, err := repo.FindByCode(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, priority.ID, retrieved.ID)
	assert.True(t, retrieved.DiscountPercent.Equal(decimal.NewFromInt(10)))

	exists, err := repo.ExistsByCode(ctx, "R1")
	require.NoError(t, err)
	assert.True(t, exists)

	_, err = repo.FindByCode(ctx, "R9")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormPriorityRepository_FindActiveOrdering(t *testing.T) {
	db := setupPartnerTestDB(t)
	repo := NewGormPriorityRepository(db)
	ctx := context.Background()

	r2, err := partner.NewPriority("R2", "Standard", decimal.NewFromInt(5))
	require.NoError(t, err)
	r2.SetSortOrder(2)
	require.NoError(t, repo.Save(ctx, r2))

	r1, err := partner.NewPriority("R1", "Premium", decimal.NewFromInt(10))
	require.NoError(t, err)
	r1.SetSortOrder(1)
	require.NoError(t, repo.Save(ctx, r1))

	r3, err := partner.NewPriority("R3", "Retired", decimal.Zero)
	require.NoError(t, err)
	r3.Deactivate()
	require.NoError(t, repo.Save(ctx, r3))

	priorities, err := repo.FindActive(ctx)
	require.NoError(t, err)
	require.Len(t, priorities, 2)
	assert.Equal(t, "R1", priorities[0].Code)
	assert.Equal(t, "R2", priorities[1].Code)
}
