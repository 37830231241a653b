package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error kinds
const (
	// Resource errors
	KindNotFound = "NOT_FOUND"

	// Malformed input
	KindValidation = "VALIDATION"

	// Business-rule violations (duplicate active generation, illegal
	// state transition, membership prerequisite not met, ...)
	KindConflict = "CONFLICT"

	// Uniqueness violations surfaced from the storage layer
	KindDuplicate = "DUPLICATE"

	// Service errors
	KindInternal = "INTERNAL_ERROR"
)

// DomainError is a typed error returned by the service layer. Handlers map
// the kind to an HTTP status; the services themselves never log or format
// user-facing text.
type DomainError struct {
	Kind    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NotFound creates a not-found DomainError
func NotFound(message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: message}
}

// Validation creates a validation DomainError
func Validation(message string) *DomainError {
	return &DomainError{Kind: KindValidation, Message: message}
}

// Conflict creates a conflict DomainError
func Conflict(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// Duplicate creates a duplicate DomainError
func Duplicate(message string) *DomainError {
	return &DomainError{Kind: KindDuplicate, Message: message}
}

// KindOf returns the kind of a DomainError, or KindInternal for anything else.
func KindOf(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// IsNotFound reports whether err is a not-found DomainError.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// statusForKind maps error kinds to HTTP status codes
func statusForKind(kind string) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict, KindDuplicate:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Respond sends the appropriate error response for a service error.
func Respond(c *gin.Context, err error) {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		c.JSON(statusForKind(domainErr.Kind), domainErr)
		return
	}
	c.JSON(http.StatusInternalServerError, &DomainError{
		Kind:    KindInternal,
		Message: "Internal server error",
	})
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "Authentication required"
	}
	c.JSON(http.StatusUnauthorized, &DomainError{Kind: "UNAUTHORIZED", Message: message})
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	if message == "" {
		message = "Access denied"
	}
	c.JSON(http.StatusForbidden, &DomainError{Kind: "FORBIDDEN", Message: message})
}

// NotFoundResponse sends a 404 response
func NotFoundResponse(c *gin.Context, message string) {
	if message == "" {
		message = "Resource not found"
	}
	c.JSON(http.StatusNotFound, NotFound(message))
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	if message == "" {
		message = "Invalid request"
	}
	c.JSON(http.StatusBadRequest, Validation(message))
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	if message == "" {
		message = "Internal server error"
	}
	c.JSON(http.StatusInternalServerError, &DomainError{Kind: KindInternal, Message: message})
}
