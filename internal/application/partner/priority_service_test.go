package partner

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wholesale/backend/internal/domain/shared"
)

func TestPriorityService_Create(t *testing.T) {
	ctx := context.Background()
	priorityRepo := newFakePriorityRepo()
	retailerRepo := newFakeRetailerRepo()
	svc := NewPriorityService(priorityRepo, retailerRepo, newFakeAccess())

	resp, err := svc.Create(ctx, CreatePriorityRequest{
		Code:            "r1",
		Name:            "Premium",
		DiscountPercent: decimal.NewFromInt(10),
		SortOrder:       1,
	})
	require.NoError(t, err)
	assert.Equal(t, "R1", resp.Code, "codes are stored uppercase")
	assert.True(t, resp.IsActive)

	_, err = svc.Create(ctx, CreatePriorityRequest{Code: "R1", Name: "Duplicate"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "PRIORITY_EXISTS", domainErr.Code)
}

func TestPriorityService_Update(t *testing.T) {
	ctx := context.Background()
	priorityRepo := newFakePriorityRepo()
	svc := NewPriorityService(priorityRepo, newFakeRetailerRepo(), newFakeAccess())
	seedPriority(t, priorityRepo, "R1")

	name := "Gold"
	discount := decimal.NewFromInt(15)
	resp, err := svc.Update(ctx, "R1", UpdatePriorityRequest{Name: &name, DiscountPercent: &discount})
	require.NoError(t, err)
	assert.Equal(t, "Gold", resp.Name)
	assert.True(t, discount.Equal(resp.DiscountPercent))

	_, err = svc.Update(ctx, "NOPE", UpdatePriorityRequest{Name: &name})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestPriorityService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("unreferenced tier is deleted outright", func(t *testing.T) {
		priorityRepo := newFakePriorityRepo()
		retailerRepo := newFakeRetailerRepo()
		svc := NewPriorityService(priorityRepo, retailerRepo, newFakeAccess())
		seedPriority(t, priorityRepo, "R1")

		result, err := svc.Remove(ctx, "R1", RemovePriorityRequest{})
		require.NoError(t, err)
		assert.True(t, result.Deleted)
		assert.False(t, result.Deactivated)
		assert.Zero(t, result.RetailersAffected)

		_, err = priorityRepo.FindByCode(ctx, "R1")
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("referenced tier without reassignment is deactivated", func(t *testing.T) {
		priorityRepo := newFakePriorityRepo()
		retailerRepo := newFakeRetailerRepo()
		svc := NewPriorityService(priorityRepo, retailerRepo, newFakeAccess())
		seedPriority(t, priorityRepo, "R1")
		seedRetailer(t, retailerRepo, "9876543210", "Sharma Garments", "R1")

		result, err := svc.Remove(ctx, "R1", RemovePriorityRequest{})
		require.NoError(t, err)
		assert.False(t, result.Deleted)
		assert.True(t, result.Deactivated)
		assert.Equal(t, 1, result.RetailersAffected)

		priority, err := priorityRepo.FindByCode(ctx, "R1")
		require.NoError(t, err)
		assert.False(t, priority.IsActive)

		retailer, err := retailerRepo.FindByPhone(ctx, "9876543210")
		require.NoError(t, err)
		assert.Empty(t, retailer.PriorityCodes)
		assert.False(t, retailer.IsActive, "a retailer stripped of their only tier must be deactivated")
	})

	t.Run("holders of another tier stay active after removal", func(t *testing.T) {
		priorityRepo := newFakePriorityRepo()
		retailerRepo := newFakeRetailerRepo()
		svc := NewPriorityService(priorityRepo, retailerRepo, newFakeAccess())
		seedPriority(t, priorityRepo, "R1")
		seedPriority(t, priorityRepo, "R2")
		seedRetailer(t, retailerRepo, "9876543210", "Sharma Garments", "R1", "R2")

		_, err := svc.Remove(ctx, "R1", RemovePriorityRequest{})
		require.NoError(t, err)

		retailer, err := retailerRepo.FindByPhone(ctx, "9876543210")
		require.NoError(t, err)
		assert.Equal(t, []string{"R2"}, []string(retailer.PriorityCodes))
		assert.True(t, retailer.IsActive)
	})

	t.Run("reassignment moves holders and deletes the tier", func(t *testing.T) {
		priorityRepo := newFakePriorityRepo()
		retailerRepo := newFakeRetailerRepo()
		svc := NewPriorityService(priorityRepo, retailerRepo, newFakeAccess())
		seedPriority(t, priorityRepo, "R1")
		seedPriority(t, priorityRepo, "R2")
		seedRetailer(t, retailerRepo, "9876543210", "Sharma Garments", "R1")

		result, err := svc.Remove(ctx, "R1", RemovePriorityRequest{ReassignTo: "R2"})
		require.NoError(t, err)
		assert.True(t, result.Deleted)
		assert.Equal(t, "R2", result.ReassignedTo)

		retailer, err := retailerRepo.FindByPhone(ctx, "9876543210")
		require.NoError(t, err)
		assert.Equal(t, []string{"R2"}, []string(retailer.PriorityCodes))
	})

	t.Run("reassignment to an inactive tier is rejected", func(t *testing.T) {
		priorityRepo := newFakePriorityRepo()
		retailerRepo := newFakeRetailerRepo()
		svc := NewPriorityService(priorityRepo, retailerRepo, newFakeAccess())
		seedPriority(t, priorityRepo, "R1")
		target := seedPriority(t, priorityRepo, "R2")
		target.Deactivate()

		_, err := svc.Remove(ctx, "R1", RemovePriorityRequest{ReassignTo: "R2"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "PRIORITY_INACTIVE", domainErr.Code)
	})

	t.Run("self reassignment is rejected", func(t *testing.T) {
		priorityRepo := newFakePriorityRepo()
		svc := NewPriorityService(priorityRepo, newFakeRetailerRepo(), newFakeAccess())
		seedPriority(t, priorityRepo, "R1")

		_, err := svc.Remove(ctx, "R1", RemovePriorityRequest{ReassignTo: "R1"})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_REASSIGNMENT", domainErr.Code)
	})
}

func TestRetailerService_CreateAndPriorities(t *testing.T) {
	ctx := context.Background()
	priorityRepo := newFakePriorityRepo()
	retailerRepo := newFakeRetailerRepo()
	access := newFakeAccess()
	svc := NewRetailerService(retailerRepo, priorityRepo, access)
	seedPriority(t, priorityRepo, "R1")

	resp, err := svc.Create(ctx, CreateRetailerRequest{
		Phone:        "+91 98765 43210",
		BusinessName: "Sharma Garments",
		Address:      &AddressInput{City: "Surat", State: "Gujarat", Pincode: "395003"},
	})
	require.NoError(t, err)
	assert.Equal(t, "9876543210", resp.Phone)
	assert.NotEmpty(t, resp.AccessibleCatalogIDs, "new retailers get general access")

	// Same phone in a different spelling collides
	_, err = svc.Create(ctx, CreateRetailerRequest{Phone: "098765 43210", BusinessName: "Other"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "RETAILER_EXISTS", domainErr.Code)

	updated, err := svc.SetPriorities(ctx, resp.ID, SetPrioritiesRequest{PriorityCodes: []string{"R1"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"R1"}, updated.PriorityCodes)

	_, err = svc.SetPriorities(ctx, resp.ID, SetPrioritiesRequest{PriorityCodes: []string{"MISSING"}})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
