package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// Address is a value object representing an Indian postal address
// It is immutable - all operations return new Address instances
type Address struct {
	street  string
	city    string
	state   string
	pincode string
}

// NewAddress creates a new Address; street and city are required,
// state and pincode are optional but validated when present
func NewAddress(street, city, state, pincode string) (Address, error) {
	street = strings.TrimSpace(street)
	city = strings.TrimSpace(city)
	state = strings.TrimSpace(state)
	pincode = strings.TrimSpace(pincode)

	if len(street) > 500 {
		return Address{}, fmt.Errorf("street cannot exceed 500 characters")
	}
	if len(city) > 100 {
		return Address{}, fmt.Errorf("city cannot exceed 100 characters")
	}
	if len(state) > 100 {
		return Address{}, fmt.Errorf("state cannot exceed 100 characters")
	}
	if pincode != "" && !pincodePattern.MatchString(pincode) {
		return Address{}, fmt.Errorf("pincode must be a 6-digit number")
	}

	return Address{
		street:  street,
		city:    city,
		state:   state,
		pincode: pincode,
	}, nil
}

// MustNewAddress creates a new Address, panics on error
func MustNewAddress(street, city, state, pincode string) Address {
	addr, err := NewAddress(street, city, state, pincode)
	if err != nil {
		panic(err)
	}
	return addr
}

// Street returns the street line
func (a Address) Street() string { return a.street }

// City returns the city
func (a Address) City() string { return a.city }

// State returns the state
func (a Address) State() string { return a.state }

// Pincode returns the postal pincode
func (a Address) Pincode() string { return a.pincode }

// IsEmpty returns true if all fields are empty
func (a Address) IsEmpty() bool {
	return a.street == "" && a.city == "" && a.state == "" && a.pincode == ""
}

// Equals returns true if both addresses are identical
func (a Address) Equals(other Address) bool {
	return a == other
}

// String returns a single-line rendering of the address
func (a Address) String() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.street, a.city, a.state, a.pincode} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// addressJSON is the JSON representation of Address
type addressJSON struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Pincode string `json:"pincode"`
}

// MarshalJSON implements json.Marshaler
func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addressJSON{
		Street:  a.street,
		City:    a.city,
		State:   a.state,
		Pincode: a.pincode,
	})
}

// UnmarshalJSON implements json.Unmarshaler
func (a *Address) UnmarshalJSON(data []byte) error {
	var v addressJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	a.street = v.Street
	a.city = v.City
	a.state = v.State
	a.pincode = v.Pincode
	return nil
}

// Value implements driver.Valuer; the address is stored as a JSON column
func (a Address) Value() (driver.Value, error) {
	if a.IsEmpty() {
		return nil, nil
	}
	return json.Marshal(a)
}

// Scan implements sql.Scanner
func (a *Address) Scan(value any) error {
	if value == nil {
		*a = Address{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Address", value)
	}
	return json.Unmarshal(data, a)
}
