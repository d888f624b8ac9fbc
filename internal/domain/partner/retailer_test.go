package partner

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wholesale/backend/internal/domain/shared/valueobject"
)

func createTestRetailer(t *testing.T) *Retailer {
	retailer, err := NewRetailer("9990001111", "Sharma Garments")
	require.NoError(t, err)
	return retailer
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"plain", "9990001111", "9990001111", false},
		{"with spaces", " 99900 01111 ", "9990001111", false},
		{"with dashes", "99900-01111", "9990001111", false},
		{"country code plus", "+919990001111", "9990001111", false},
		{"country code bare", "919990001111", "9990001111", false},
		{"leading zero", "09990001111", "9990001111", false},
		{"too short", "12345", "", true},
		{"not a mobile prefix", "1234567890", "", true},
		{"empty", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizePhone(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewRetailer(t *testing.T) {
	retailer := createTestRetailer(t)

	assert.Equal(t, "9990001111", retailer.Phone)
	assert.Equal(t, "Sharma Garments", retailer.BusinessName)
	assert.True(t, retailer.IsActive)
	assert.Empty(t, retailer.PriorityCodes)
	assert.Empty(t, retailer.AccessibleCatalogIDs)
	assert.Len(t, retailer.GetDomainEvents(), 1)
}

func TestNewRetailer_Invalid(t *testing.T) {
	_, err := NewRetailer("bad", "Sharma Garments")
	assert.Error(t, err)

	_, err = NewRetailer("9990001111", "")
	assert.Error(t, err)
}

func TestRetailer_ReplacePriorities(t *testing.T) {
	retailer := createTestRetailer(t)

	retailer.ReplacePriorities("R1")
	assert.Equal(t, PriorityCodes{"R1"}, retailer.PriorityCodes)

	// Replacement, not a union: a later sync for another tier owns membership
	retailer.ReplacePriorities("R2")
	assert.Equal(t, PriorityCodes{"R2"}, retailer.PriorityCodes)
	assert.False(t, retailer.HasPriority("R1"))
	assert.True(t, retailer.HasPriority("R2"))
}

func TestRetailer_ReplacePriorities_Normalizes(t *testing.T) {
	retailer := createTestRetailer(t)

	retailer.ReplacePriorities(" r1 ", "R1", "", "r2")
	assert.Equal(t, PriorityCodes{"R1", "R2"}, retailer.PriorityCodes)
}

func TestRetailer_SetGSTNumber(t *testing.T) {
	retailer := createTestRetailer(t)

	require.NoError(t, retailer.SetGSTNumber("27AAPFU0939F1ZV"))
	assert.Equal(t, "27AAPFU0939F1ZV", retailer.GSTNumber)

	require.NoError(t, retailer.SetGSTNumber(""))
	assert.Equal(t, "", retailer.GSTNumber)

	assert.Error(t, retailer.SetGSTNumber("INVALID"))
}

func TestRetailer_AccessibleCatalogs(t *testing.T) {
	retailer := createTestRetailer(t)
	id1, id2 := uuid.New(), uuid.New()

	retailer.SetAccessibleCatalogs([]uuid.UUID{id1})
	assert.True(t, retailer.CanViewCatalog(id1))
	assert.False(t, retailer.CanViewCatalog(id2))

	retailer.Deactivate()
	assert.False(t, retailer.CanViewCatalog(id1), "inactive retailer sees nothing")
}

func TestRetailer_MarkSynced(t *testing.T) {
	retailer := createTestRetailer(t)
	now := time.Now()

	retailer.MarkSynced("row-42", now)
	assert.Equal(t, "row-42", retailer.SheetRowID)
	require.NotNil(t, retailer.LastSyncedAt)
	assert.Equal(t, now, *retailer.LastSyncedAt)
}

func TestRetailer_UpdateProfile(t *testing.T) {
	retailer := createTestRetailer(t)

	require.NoError(t, retailer.UpdateProfile("Sharma Textiles", "Anil Sharma", "anil@example.com"))
	assert.Equal(t, "Sharma Textiles", retailer.BusinessName)

	assert.Error(t, retailer.UpdateProfile("", "", ""))
	assert.Error(t, retailer.UpdateProfile("Sharma Textiles", "", "not-an-email"))
}

func TestRetailer_SetAddress(t *testing.T) {
	retailer := createTestRetailer(t)
	addr := valueobject.MustNewAddress("12 MG Road", "Surat", "Gujarat", "395003")

	retailer.SetAddress(addr)
	assert.Equal(t, "Surat", retailer.Address.City())
}
