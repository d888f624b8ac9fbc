package ordering

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/domain/shared/valueobject"
)

func approvedOrder(t *testing.T) *Order {
	t.Helper()
	order := newDraftOrder(t)
	addItemSets(t, order, 2)
	require.NoError(t, order.Submit())
	require.NoError(t, order.ApplyReview(ReviewActionApprove, "", "admin", nil))
	return order
}

func TestNewPurchaseOrderFromOrder(t *testing.T) {
	t.Run("snapshots an approved order", func(t *testing.T) {
		order := approvedOrder(t)
		terms := POTerms{Payment: "30 days net", Delivery: "Ex-works Surat"}

		po, err := NewPurchaseOrderFromOrder("PO-260115-X9Y8", order, "admin", terms)
		require.NoError(t, err)

		assert.Equal(t, POStatusGenerated, po.Status)
		assert.Equal(t, order.ID, po.OrderID)
		assert.Equal(t, order.OrderNumber, po.OrderNumber)
		assert.Equal(t, order.Retailer.Phone, po.Retailer.Phone)
		require.Len(t, po.Items, 1)
		assert.Equal(t, "KRT-101", po.Items[0].ItemCode)
		assert.Equal(t, order.Summary.TotalPieces, po.Summary.TotalPieces)
		assert.True(t, order.Summary.GrandTotal.Equal(po.Summary.GrandTotal))
		assert.Equal(t, "30 days net", po.Terms.Payment)
		assert.NotEmpty(t, po.GetDomainEvents())
	})

	t.Run("snapshot survives later order edits", func(t *testing.T) {
		order := approvedOrder(t)
		po, err := NewPurchaseOrderFromOrder("PO-260115-X9Y9", order, "admin", POTerms{})
		require.NoError(t, err)

		key := ItemKey(order.Items[0].ProductID, 0)
		frozen := po.SizeDistribution[key].TotalPieces()

		// Mutate the source order after generation
		order.SizeDistribution[key][valueobject.SizeM] = 99
		order.Retailer.BusinessName = "Renamed Traders"

		assert.Equal(t, frozen, po.SizeDistribution[key].TotalPieces())
		assert.Equal(t, "Sharma Garments", po.Retailer.BusinessName)
	})

	t.Run("rejected for non-approved orders", func(t *testing.T) {
		order := newDraftOrder(t)
		addItemSets(t, order, 1)

		_, err := NewPurchaseOrderFromOrder("PO-260115-AAAA", order, "admin", POTerms{})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)

		require.NoError(t, order.Submit())
		_, err = NewPurchaseOrderFromOrder("PO-260115-AAAA", order, "admin", POTerms{})
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})

	t.Run("empty po number rejected", func(t *testing.T) {
		order := approvedOrder(t)
		_, err := NewPurchaseOrderFromOrder("", order, "admin", POTerms{})
		assert.Error(t, err)
	})
}

func TestPOStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from POStatus
		to   POStatus
		want bool
	}{
		{POStatusGenerated, POStatusSent, true},
		{POStatusGenerated, POStatusAcknowledged, false},
		{POStatusSent, POStatusAcknowledged, true},
		{POStatusSent, POStatusGenerated, false},
		{POStatusAcknowledged, POStatusSent, false},
		{POStatusAcknowledged, POStatusGenerated, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestPurchaseOrder_Lifecycle(t *testing.T) {
	order := approvedOrder(t)
	po, err := NewPurchaseOrderFromOrder("PO-260115-B2C3", order, "admin", POTerms{})
	require.NoError(t, err)

	require.NoError(t, po.MarkSent())
	assert.Equal(t, POStatusSent, po.Status)
	assert.NotNil(t, po.SentAt)

	// Sent is not repeatable
	assert.Error(t, po.MarkSent())

	require.NoError(t, po.MarkAcknowledged())
	assert.Equal(t, POStatusAcknowledged, po.Status)
	assert.NotNil(t, po.AcknowledgedAt)

	// Acknowledged is terminal
	assert.Error(t, po.MarkAcknowledged())
	assert.Error(t, po.MarkSent())
}

func TestPurchaseOrder_AcknowledgeBeforeSent(t *testing.T) {
	order := approvedOrder(t)
	po, err := NewPurchaseOrderFromOrder("PO-260115-D4E5", order, "admin", POTerms{})
	require.NoError(t, err)

	err = po.MarkAcknowledged()
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	assert.Equal(t, POStatusGenerated, po.Status)
}

func TestPurchaseOrder_GSTCarriedOver(t *testing.T) {
	order, err := NewOrder("ORD-260115-F6G7", uuid.New(), testRetailerInfo(), true, decimal.NewFromFloat(12))
	require.NoError(t, err)
	_, err = order.AddItem(uuid.New(), "KRT-110", "Festive Kurti", "", "",
		2, decimal.NewFromInt(500), decimal.NewFromInt(2500), nil)
	require.NoError(t, err)
	require.NoError(t, order.Submit())
	require.NoError(t, order.ApplyReview(ReviewActionApprove, "", "admin", nil))

	po, err := NewPurchaseOrderFromOrder("PO-260115-H8I9", order, "admin", POTerms{})
	require.NoError(t, err)

	assert.True(t, po.IsGSTApplicable)
	assert.True(t, decimal.NewFromInt(12).Equal(po.GSTRate))
	assert.True(t, decimal.NewFromInt(600).Equal(po.Summary.GSTAmount))
	assert.True(t, decimal.NewFromInt(5600).Equal(po.Summary.GrandTotal))
}
