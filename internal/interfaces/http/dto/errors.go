package dto

import "net/http"

// Error codes shared between domain errors and their HTTP rendering
const (
	ErrCodeInternal   = "INTERNAL_ERROR"
	ErrCodeBadRequest = "BAD_REQUEST"

	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeAccessDenied = "ACCESS_DENIED"
	ErrCodeTokenExpired = "TOKEN_EXPIRED"
	ErrCodeTokenInvalid = "TOKEN_INVALID"

	ErrCodeNotFound               = "NOT_FOUND"
	ErrCodeAlreadyExists          = "ALREADY_EXISTS"
	ErrCodeConcurrentModification = "CONCURRENT_MODIFICATION"

	ErrCodeValidationFailed        = "VALIDATION_FAILED"
	ErrCodeInvalidTransition       = "INVALID_TRANSITION"
	ErrCodeIncompleteScope         = "INCOMPLETE_SCOPE"
	ErrCodeCollaboratorUnavailable = "COLLABORATOR_UNAVAILABLE"
)

// errorCodeHTTPStatus maps error codes to HTTP status codes
var errorCodeHTTPStatus = map[string]int{
	ErrCodeInternal:   http.StatusInternalServerError,
	ErrCodeBadRequest: http.StatusBadRequest,

	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeAccessDenied: http.StatusForbidden,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	ErrCodeNotFound:               http.StatusNotFound,
	ErrCodeAlreadyExists:          http.StatusConflict,
	ErrCodeConcurrentModification: http.StatusConflict,

	ErrCodeValidationFailed:        http.StatusUnprocessableEntity,
	ErrCodeInvalidTransition:       http.StatusConflict,
	ErrCodeIncompleteScope:         http.StatusUnprocessableEntity,
	ErrCodeCollaboratorUnavailable: http.StatusServiceUnavailable,
}

// GetHTTPStatus returns the HTTP status for an error code. Unmapped codes
// default to 422 since domain errors are business rule violations, not
// server faults.
func GetHTTPStatus(code string) int {
	if status, ok := errorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusUnprocessableEntity
}
