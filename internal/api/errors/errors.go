package errors

import (
	"fmt"
	"net/http"

	apperrors "video2broll/internal/app/errors"
)

// ErrorKind represents different types of API errors
type ErrorKind string

const (
	KindValidation          ErrorKind = "validation"
	KindBadRequest          ErrorKind = "bad_request"
	KindNotFound            ErrorKind = "not_found"
	KindPreconditionFailed  ErrorKind = "precondition_failed"
	KindInvalidMedia        ErrorKind = "invalid_media"
	KindUpstreamRejected    ErrorKind = "upstream_rejected"
	KindUpstreamUnavailable ErrorKind = "upstream_unavailable"
	KindInternal            ErrorKind = "internal"
)

// APIError represents a structured API error response
type APIError struct {
	Kind      ErrorKind         `json:"kind"`
	Message   string            `json:"message"`
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
	// Upstream carries the collaborator's rejection body verbatim.
	Upstream string `json:"upstream,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error kind
func (e *APIError) HTTPStatus() int {
	switch e.Kind {
	case KindValidation, KindInvalidMedia:
		return http.StatusUnprocessableEntity
	case KindBadRequest:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindPreconditionFailed:
		return http.StatusPreconditionFailed
	case KindUpstreamRejected:
		return http.StatusBadGateway
	case KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError creates a validation error with field details
func NewValidationError(message string, fields map[string]string) *APIError {
	return &APIError{
		Kind:    KindValidation,
		Message: message,
		Details: fields,
	}
}

// NewBadRequestError creates a bad request error
func NewBadRequestError(message string) *APIError {
	return &APIError{
		Kind:    KindBadRequest,
		Message: message,
	}
}

// NewNotFoundError creates a not found error
func NewNotFoundError(resource string) *APIError {
	return &APIError{
		Kind:    KindNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewInternalError creates an internal server error
func NewInternalError(message string) *APIError {
	return &APIError{
		Kind:    KindInternal,
		Message: message,
	}
}

// FromDomain maps a pipeline error to its API representation. Unknown
// errors become opaque internal errors so storage details never leak
// to clients.
func FromDomain(err error) *APIError {
	if err == nil {
		return nil
	}
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}

	apiErr := &APIError{Message: err.Error()}
	switch apperrors.KindOf(err) {
	case apperrors.KindNotFound:
		apiErr.Kind = KindNotFound
	case apperrors.KindPreconditionFailed:
		apiErr.Kind = KindPreconditionFailed
	case apperrors.KindInvalidArgument:
		apiErr.Kind = KindBadRequest
	case apperrors.KindInvalidMedia:
		apiErr.Kind = KindInvalidMedia
	case apperrors.KindUpstreamRejected:
		apiErr.Kind = KindUpstreamRejected
		apiErr.Upstream = apperrors.UpstreamBody(err)
	case apperrors.KindUpstreamUnavailable:
		apiErr.Kind = KindUpstreamUnavailable
	default:
		apiErr.Kind = KindInternal
		apiErr.Message = "Internal server error"
	}
	return apiErr
}
