package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Error codes used across the billing domain. Handlers map these to HTTP
// status codes; nothing below the interface layer knows about transport.
const (
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
	CodeAlreadyExists       = "ALREADY_EXISTS"
	CodeReferencedEntity    = "REFERENCED_ENTITY"
	CodeQuotaExceeded       = "QUOTA_EXCEEDED"
	CodeSubscriptionExpired = "SUBSCRIPTION_EXPIRED"
	CodeConsistency         = "CONSISTENCY_ERROR"
	CodeConcurrencyConflict = "CONCURRENCY_CONFLICT"
	CodeForbidden           = "FORBIDDEN"
	CodeInvalidState        = "INVALID_STATE"
)

// Common domain errors
var (
	ErrNotFound            = NewDomainError(CodeNotFound, "Resource not found")
	ErrAlreadyExists       = NewDomainError(CodeAlreadyExists, "Resource already exists")
	ErrConcurrencyConflict = NewDomainError(CodeConcurrencyConflict, "Resource was modified by another process")
	ErrForbidden           = NewDomainError(CodeForbidden, "Access to this resource is forbidden")
)

// NewValidationError reports malformed input, rejected before any mutation.
func NewValidationError(message string) *DomainError {
	return NewDomainError(CodeValidation, message)
}

// NewReferencedEntityError reports a delete blocked by the referential
// integrity guard. kind names the entity so the caller can surface the
// message verbatim.
func NewReferencedEntityError(kind string) *DomainError {
	return NewDomainError(CodeReferencedEntity, fmt.Sprintf("Cannot delete %s that is used in invoices", kind))
}

// NewQuotaExceededError reports a creation denied by the usage ledger.
func NewQuotaExceededError(reason string) *DomainError {
	return NewDomainError(CodeQuotaExceeded, reason)
}

// NewSubscriptionExpiredError reports a creation denied because a
// time-boxed plan has lapsed.
func NewSubscriptionExpiredError(reason string) *DomainError {
	return NewDomainError(CodeSubscriptionExpired, reason)
}

// NewConsistencyError reports a programming-logic fault: an invariant the
// storage layer itself maintains turned out broken after a mutation. The
// whole operation must fail rather than leave partial state.
func NewConsistencyError(message string) *DomainError {
	return NewDomainError(CodeConsistency, message)
}

// IsCode reports whether err is a DomainError carrying the given code.
func IsCode(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
