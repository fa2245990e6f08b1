package errors

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures so callers can translate them into
// transport-level responses without string matching.
type Kind string

const (
	// KindNotFound means a referenced record or job does not exist.
	KindNotFound Kind = "not_found"
	// KindPreconditionFailed means a stage ran before its required
	// predecessor output existed.
	KindPreconditionFailed Kind = "precondition_failed"
	// KindInvalidArgument means the caller input is malformed.
	KindInvalidArgument Kind = "invalid_argument"
	// KindInvalidMedia means resolved content is not a playable media
	// payload.
	KindInvalidMedia Kind = "invalid_media"
	// KindUpstreamRejected means a collaborator returned a definitive
	// error response.
	KindUpstreamRejected Kind = "upstream_rejected"
	// KindUpstreamUnavailable means a collaborator could not be reached
	// at the transport level.
	KindUpstreamUnavailable Kind = "upstream_unavailable"
)

// Error is the standardized pipeline error. Upstream carries the raw
// collaborator status/body where one exists, so failures can be
// diagnosed without leaking credentials into the message itself.
type Error struct {
	kind     Kind
	message  string
	upstream string
	cause    error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	if e.upstream != "" {
		return fmt.Sprintf("%s: %s", e.message, e.upstream)
	}
	return e.message
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Kind returns the error classification.
func (e *Error) Kind() Kind {
	return e.kind
}

// Upstream returns the verbatim collaborator response body, if any.
func (e *Error) Upstream() string {
	return e.upstream
}

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Newf creates a classified formatted error.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a classification and context to an underlying error.
func Wrap(err error, kind Kind, message string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: kind, message: message, cause: err}
}

// NotFound reports a missing record or job.
func NotFound(itemType, identifier string) *Error {
	return Newf(KindNotFound, "%s not found: %s", itemType, identifier)
}

// PreconditionFailed reports a stage invoked out of order.
func PreconditionFailed(message string) *Error {
	return New(KindPreconditionFailed, message)
}

// InvalidArgument reports malformed caller input.
func InvalidArgument(message string) *Error {
	return New(KindInvalidArgument, message)
}

// InvalidMedia reports content that is not playable media.
func InvalidMedia(message string) *Error {
	return New(KindInvalidMedia, message)
}

// UpstreamRejected reports a definitive collaborator error. The body is
// preserved verbatim for the caller.
func UpstreamRejected(collaborator string, status int, body string) *Error {
	return &Error{
		kind:     KindUpstreamRejected,
		message:  fmt.Sprintf("%s rejected request with status %d", collaborator, status),
		upstream: body,
	}
}

// UpstreamUnavailable reports a transport-level collaborator failure.
func UpstreamUnavailable(collaborator string, err error) *Error {
	return &Error{
		kind:    KindUpstreamUnavailable,
		message: fmt.Sprintf("%s unreachable", collaborator),
		cause:   err,
	}
}

// KindOf extracts the classification from an error chain. Unclassified
// errors report an empty Kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return ""
}

// IsKind reports whether err carries the given classification.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// UpstreamBody extracts the verbatim collaborator response body from an
// error chain, or "" when none was captured.
func UpstreamBody(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.upstream
	}
	return ""
}
