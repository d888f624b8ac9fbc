package sheet

import (
	"errors"
	"fmt"
)

// Sheet error codes surfaced in sync reports
const (
	ErrCodeSheetUnavailable  = "ERR_SHEET_UNAVAILABLE"
	ErrCodeSheetEmpty        = "ERR_SHEET_EMPTY"
	ErrCodeSheetBadEncoding  = "ERR_SHEET_BAD_ENCODING"
	ErrCodeSheetMissingField = "ERR_SHEET_MISSING_FIELD"
	ErrCodeSheetBadPhone     = "ERR_SHEET_BAD_PHONE"
	ErrCodeSheetMalformedRow = "ERR_SHEET_MALFORMED_ROW"
	ErrCodeSheetDuplicateRow = "ERR_SHEET_DUPLICATE_ROW"
)

var (
	// ErrEmptySheet is returned when a sheet has no content at all
	ErrEmptySheet = errors.New("sheet is empty")

	// ErrMissingHeader is returned when a sheet has no header row
	ErrMissingHeader = errors.New("sheet missing header row")

	// ErrMissingPhoneColumn is returned when no phone column can be found
	ErrMissingPhoneColumn = errors.New("sheet missing phone column")
)

// RowError describes a single row that could not be processed. Rows
// with errors are skipped; the sync continues with the rest.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e RowError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("row %d, field %s: %s", e.Row, e.Field, e.Message)
	}
	return fmt.Sprintf("row %d: %s", e.Row, e.Message)
}

// NewRowError creates a RowError for a specific field
func NewRowError(row int, field, code, message string) RowError {
	return RowError{Row: row, Field: field, Code: code, Message: message}
}
