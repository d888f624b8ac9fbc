package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Size represents a standard garment size
type Size string

const (
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

// PiecesPerSet is the number of pieces in one wholesale set,
// one piece per size across the standard size run
const PiecesPerSet = 5

// StandardSizes returns the standard size run in display order
func StandardSizes() []Size {
	return []Size{SizeS, SizeM, SizeL, SizeXL, SizeXXL}
}

// IsValid checks if the size is one of the standard sizes
func (s Size) IsValid() bool {
	switch s {
	case SizeS, SizeM, SizeL, SizeXL, SizeXXL:
		return true
	}
	return false
}

// String returns the string representation of Size
func (s Size) String() string {
	return string(s)
}

// SizeQuantities maps a garment size to a piece count for one order item
type SizeQuantities map[Size]int

// NewEqualSplit distributes sets across the standard size run,
// one piece per size per set, so the total equals sets * PiecesPerSet
func NewEqualSplit(sets int) SizeQuantities {
	sq := make(SizeQuantities, PiecesPerSet)
	for _, size := range StandardSizes() {
		sq[size] = sets
	}
	return sq
}

// TotalPieces returns the sum of pieces across all sizes
func (sq SizeQuantities) TotalPieces() int {
	total := 0
	for _, count := range sq {
		total += count
	}
	return total
}

// Validate checks that all sizes are standard and counts are non-negative
func (sq SizeQuantities) Validate() error {
	for size, count := range sq {
		if !size.IsValid() {
			return fmt.Errorf("unknown size %q", size)
		}
		if count < 0 {
			return fmt.Errorf("size %s has negative piece count %d", size, count)
		}
	}
	return nil
}

// Clone returns a deep copy
func (sq SizeQuantities) Clone() SizeQuantities {
	if sq == nil {
		return nil
	}
	out := make(SizeQuantities, len(sq))
	for size, count := range sq {
		out[size] = count
	}
	return out
}

// SizeDistribution is the per-order map of item key to size quantities.
// Keys follow the "<productID>-<itemIndex>" convention.
type SizeDistribution map[string]SizeQuantities

// Clone returns a deep copy
func (d SizeDistribution) Clone() SizeDistribution {
	if d == nil {
		return nil
	}
	out := make(SizeDistribution, len(d))
	for key, sq := range d {
		out[key] = sq.Clone()
	}
	return out
}

// TotalPieces returns the sum of pieces across all items
func (d SizeDistribution) TotalPieces() int {
	total := 0
	for _, sq := range d {
		total += sq.TotalPieces()
	}
	return total
}

// Value implements driver.Valuer; the distribution is stored as a JSON column
func (d SizeDistribution) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	return json.Marshal(d)
}

// Scan implements sql.Scanner
func (d *SizeDistribution) Scan(value any) error {
	if value == nil {
		*d = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SizeDistribution", value)
	}
	return json.Unmarshal(data, d)
}

// Value implements driver.Valuer for a single item's size quantities
func (sq SizeQuantities) Value() (driver.Value, error) {
	if sq == nil {
		return nil, nil
	}
	return json.Marshal(sq)
}

// Scan implements sql.Scanner
func (sq *SizeQuantities) Scan(value any) error {
	if value == nil {
		*sq = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into SizeQuantities", value)
	}
	return json.Unmarshal(data, sq)
}
