package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSize_IsValid(t *testing.T) {
	tests := []struct {
		size    Size
		isValid bool
	}{
		{SizeS, true},
		{SizeM, true},
		{SizeL, true},
		{SizeXL, true},
		{SizeXXL, true},
		{Size("XS"), false},
		{Size(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.size.IsValid())
		})
	}
}

func TestNewEqualSplit(t *testing.T) {
	sq := NewEqualSplit(3)

	assert.Len(t, sq, 5)
	for _, size := range StandardSizes() {
		assert.Equal(t, 3, sq[size])
	}
	assert.Equal(t, 15, sq.TotalPieces())
}

func TestSizeQuantities_TotalPieces(t *testing.T) {
	sq := SizeQuantities{SizeS: 2, SizeM: 4, SizeXXL: 1}
	assert.Equal(t, 7, sq.TotalPieces())

	assert.Equal(t, 0, SizeQuantities{}.TotalPieces())
	assert.Equal(t, 0, SizeQuantities(nil).TotalPieces())
}

func TestSizeQuantities_Validate(t *testing.T) {
	assert.NoError(t, SizeQuantities{SizeS: 1, SizeL: 0}.Validate())
	assert.Error(t, SizeQuantities{Size("XS"): 1}.Validate())
	assert.Error(t, SizeQuantities{SizeM: -1}.Validate())
}

func TestSizeQuantities_Clone(t *testing.T) {
	sq := SizeQuantities{SizeS: 2, SizeM: 3}
	clone := sq.Clone()

	clone[SizeS] = 99
	assert.Equal(t, 2, sq[SizeS])
}

func TestSizeDistribution_Clone(t *testing.T) {
	d := SizeDistribution{
		"p1-0": {SizeS: 2, SizeM: 2},
	}
	clone := d.Clone()

	clone["p1-0"][SizeS] = 99
	assert.Equal(t, 2, d["p1-0"][SizeS])
}

func TestSizeDistribution_ValueScan(t *testing.T) {
	d := SizeDistribution{
		"p1-0": {SizeS: 2, SizeM: 2, SizeL: 2, SizeXL: 2, SizeXXL: 2},
	}

	v, err := d.Value()
	require.NoError(t, err)

	var out SizeDistribution
	require.NoError(t, out.Scan(v))
	assert.Equal(t, d, out)

	var empty SizeDistribution
	require.NoError(t, empty.Scan(nil))
	assert.Nil(t, empty)
}
