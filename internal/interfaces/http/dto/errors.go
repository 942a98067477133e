package dto

import (
	"net/http"

	"github.com/billing/backend/internal/domain/shared"
)

// Error code constants returned by the API. Domain errors carry their own
// codes; handler-level failures use the codes below.
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "INTERNAL_ERROR"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "BAD_REQUEST"
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "UNAUTHORIZED"
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = shared.CodeValidation
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = shared.CodeNotFound
	// ErrCodeForbidden is used when the user lacks permission
	ErrCodeForbidden = shared.CodeForbidden
	// ErrCodeRateLimited is used when rate limit is exceeded
	ErrCodeRateLimited = "RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	// Rejected input -> 400 Bad Request
	shared.CodeValidation: http.StatusBadRequest,

	shared.CodeNotFound:  http.StatusNotFound,
	shared.CodeForbidden: http.StatusForbidden,

	// Conflicting state -> 409 Conflict
	shared.CodeAlreadyExists:       http.StatusConflict,
	shared.CodeReferencedEntity:    http.StatusConflict,
	shared.CodeConcurrencyConflict: http.StatusConflict,

	// Plan limits -> 402 Payment Required; the client distinguishes the
	// two cases by code
	shared.CodeQuotaExceeded:       http.StatusPaymentRequired,
	shared.CodeSubscriptionExpired: http.StatusPaymentRequired,

	// State machine rejections -> 422 Unprocessable Entity
	shared.CodeInvalidState: http.StatusUnprocessableEntity,

	// A broken storage invariant is a server fault, never the caller's
	shared.CodeConsistency: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Returns 500 Internal Server Error if the error code is not found.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
