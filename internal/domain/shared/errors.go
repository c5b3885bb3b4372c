package shared

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

// Common domain errors
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrUnauthorized        = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrAccessDenied        = NewDomainError("ACCESS_DENIED", "Access to this resource is denied for the current actor")
	ErrInvalidTransition   = NewDomainError("INVALID_TRANSITION", "Operation not allowed in current status")
)

// NewCollaboratorUnavailable wraps a failed call to an external collaborator
// (stock ledger, persistence). The caller's in-memory draft stays intact;
// retry policy belongs to the transport layer.
func NewCollaboratorUnavailable(collaborator string, cause error) *DomainError {
	msg := collaborator + " is unavailable"
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return NewDomainError("COLLABORATOR_UNAVAILABLE", msg)
}
