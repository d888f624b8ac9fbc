package dto

import (
	"net/http"
	"strings"
)

// Error codes produced by the interface layer itself. Domain and
// application services attach their own codes via shared.DomainError.
const (
	ErrCodeValidation   = "VALIDATION_FAILED"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeConflict     = "ALREADY_EXISTS"
	ErrCodeInternal     = "INTERNAL_ERROR"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes. Codes
// missing here fall through to the prefix rules in GetHTTPStatus.
var errorCodeHTTPStatus = map[string]int{
	// Input and validation
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	// Authentication and authorization
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,

	// Resource state
	ErrCodeNotFound:        http.StatusNotFound,
	ErrCodeConflict:        http.StatusConflict,
	"CONCURRENCY_CONFLICT": http.StatusConflict,

	// Business rules rejected a well-formed request
	"INVALID_STATE":          http.StatusUnprocessableEntity,
	"INVALID_STATUS":         http.StatusUnprocessableEntity,
	"INVALID_ACTION":         http.StatusUnprocessableEntity,
	"NO_ITEMS":               http.StatusUnprocessableEntity,
	"RETAILER_INACTIVE":      http.StatusUnprocessableEntity,
	"PRODUCT_INACTIVE":       http.StatusUnprocessableEntity,
	"PRIORITY_INACTIVE":      http.StatusUnprocessableEntity,
	"PRODUCT_NOT_IN_CATALOG": http.StatusUnprocessableEntity,
	"INVALID_REASSIGNMENT":   http.StatusUnprocessableEntity,

	// Upstream directory sheet failures
	"EXTERNAL_SOURCE_ERROR": http.StatusBadGateway,

	// Infrastructure
	ErrCodeInternal: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code. Unknown
// INVALID_* codes are treated as bad input and unknown *_EXISTS codes
// as conflicts; anything else is an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	if strings.HasSuffix(code, "_EXISTS") {
		return http.StatusConflict
	}
	if strings.HasSuffix(code, "_NOT_FOUND") {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
