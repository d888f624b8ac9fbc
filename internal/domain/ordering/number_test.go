package ordering

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewOrderNumber(t *testing.T) {
	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	got := NewOrderNumber(at)
	assert.Regexp(t, regexp.MustCompile(`^ORD-260115-[0-9A-Z]{4}$`), got)
}

func TestNewPONumber(t *testing.T) {
	at := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	got := NewPONumber(at)
	assert.Regexp(t, regexp.MustCompile(`^PO-260115-[0-9A-Z]{4}$`), got)
}

func TestNumberSuffixVaries(t *testing.T) {
	at := time.Now()
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		seen[NewOrderNumber(at)] = true
	}
	// 50 draws from a 36^4 space colliding down to 1 value is effectively impossible
	assert.Greater(t, len(seen), 1)
}
