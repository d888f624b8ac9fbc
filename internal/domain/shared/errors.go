package shared

// DomainError is the error type domain and application code return. Code is
// a stable machine-readable identifier; the HTTP layer maps it to a status.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches by code, so errors.Is works against the sentinels below even
// for errors created with a more specific message.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Sentinels for the error classes shared across bounded contexts. Contexts
// define their own codes (PRIORITY_EXISTS, NO_ITEMS, ...) for conditions
// specific to them.
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrForbidden           = NewDomainError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
	ErrValidationFailed    = NewDomainError("VALIDATION_FAILED", "Validation failed")
	ErrExternalSource      = NewDomainError("EXTERNAL_SOURCE_ERROR", "External data source unavailable")
)
