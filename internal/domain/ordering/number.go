package ordering

import (
	"crypto/rand"
	"fmt"
	"time"
)

const numberSuffixAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
const numberSuffixLength = 4

// NewOrderNumber returns a human-readable order number of the form
// ORD-yymmdd-XXXX. The suffix is random, so callers must retry on a
// unique-constraint collision.
func NewOrderNumber(t time.Time) string {
	return fmt.Sprintf("ORD-%s-%s", t.Format("060102"), randomSuffix())
}

// NewPONumber returns a purchase order number of the form
// PO-yymmdd-XXXX with the same collision-retry contract as
// NewOrderNumber.
func NewPONumber(t time.Time) string {
	return fmt.Sprintf("PO-%s-%s", t.Format("060102"), randomSuffix())
}

func randomSuffix() string {
	buf := make([]byte, numberSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the OS entropy source is broken
		panic(fmt.Sprintf("read random bytes: %v", err))
	}
	for i, b := range buf {
		buf[i] = numberSuffixAlphabet[int(b)%len(numberSuffixAlphabet)]
	}
	return string(buf)
}
