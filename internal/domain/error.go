package domain

import (
	"errors"
	"fmt"
)

// Error codes used across the service layer. The handler layer owns the
// mapping to HTTP status codes; services only pick the code that matches
// what went wrong.
const (
	ECONFLICT     = "conflict"         // 409 - duplicate email, duplicate review
	EINTERNAL     = "internal"         // 500 - details hidden from clients
	EINVALID      = "invalid"          // 400 - bad input
	ENOTFOUND     = "not_found"        // 404
	EUNAUTHORIZED = "unauthorized"     // 401 - no valid session
	EFORBIDDEN    = "forbidden"        // 403 - session present, not permitted
	ENOTIMPL      = "not_implemented"  // 501
	ERATELIMIT    = "rate_limit"       // 429
	EPAYMENT      = "payment_required" // 402 - payment failed or outstanding
	EGONE         = "gone"             // 410 - deactivated product
	ETOOLARGE     = "too_large"        // 413 - request body over the limit
)

// Error is the application error type: a code, a message safe to show the
// client, the operation for logs, and an optional wrapped cause.
type Error struct {
	Code    string
	Message string

	// Op names the failing operation, e.g. "order.create". Logged, never
	// sent to clients.
	Op string

	// Err is the wrapped cause, when there is one.
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Op != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Op != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	default:
		return e.Message
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode returns the code of err. Non-domain errors count as EINTERNAL
// so unexpected failures never leak as something more specific.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

const internalErrorMessage = "An internal error occurred. Please try again later."

// ErrorMessage returns the message to show the client. Internal and
// unrecognized errors get a generic message; their detail belongs in logs.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) && e.Code != EINTERNAL {
		return e.Message
	}
	return internalErrorMessage
}

// ErrorOp returns the operation recorded on err, for logging.
func ErrorOp(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Op
	}
	return ""
}

// Errorf builds a domain error with a formatted message.
// Example: domain.Errorf(domain.EINVALID, "review.create", "invalid rating: %d", rating)
func Errorf(code, op, format string, args ...interface{}) error {
	return &Error{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError attaches a code, op, and client-safe message to an underlying
// error, keeping the cause for logs. Nil in, nil out.
func WrapError(err error, code, op, message string) error {
	if err == nil {
		return nil
	}
	return &Error{
		Code:    code,
		Op:      op,
		Message: message,
		Err:     err,
	}
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}

// ValidationError collects per-field failures for a request payload, so
// the client can annotate its form in one round trip.
type ValidationError struct {
	// Fields maps field name to what is wrong with it
	Fields map[string]string

	Op string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		for field, msg := range e.Fields {
			if e.Op != "" {
				return fmt.Sprintf("%s: %s: %s", e.Op, field, msg)
			}
			return fmt.Sprintf("%s: %s", field, msg)
		}
	}
	if e.Op != "" {
		return fmt.Sprintf("%s: validation failed for %d fields", e.Op, len(e.Fields))
	}
	return fmt.Sprintf("validation failed for %d fields", len(e.Fields))
}

// NewValidationError starts a validation error with one failing field.
func NewValidationError(op, field, message string) error {
	return &ValidationError{
		Op:     op,
		Fields: map[string]string{field: message},
	}
}

// AddFieldError records another failing field on err. When err is nil or
// not a ValidationError, a fresh one is returned.
func AddFieldError(err error, field, message string) error {
	var ve *ValidationError
	if err != nil && errors.As(err, &ve) {
		ve.Fields[field] = message
		return ve
	}
	return &ValidationError{
		Fields: map[string]string{field: message},
	}
}

// IsValidationError reports whether err is a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// GetValidationFields returns the field map of a ValidationError, or nil
// for any other error.
func GetValidationFields(err error) map[string]string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}

// Constructors for the common cases. Services use these instead of
// building Error literals.

// NotFound reports a missing resource by name and identifier.
// Example: domain.NotFound("order.get", "order", orderID.String())
func NotFound(op, resource, identifier string) error {
	return &Error{
		Code:    ENOTFOUND,
		Op:      op,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
	}
}

// Unauthorized means no valid session.
func Unauthorized(op, message string) error {
	return &Error{Code: EUNAUTHORIZED, Op: op, Message: message}
}

// Forbidden means the session exists but may not do this.
// Example: domain.Forbidden("review.create", "only verified buyers can review")
func Forbidden(op, message string) error {
	return &Error{Code: EFORBIDDEN, Op: op, Message: message}
}

// Invalid reports a single validation problem without field detail.
func Invalid(op, message string) error {
	return &Error{Code: EINVALID, Op: op, Message: message}
}

// Conflict reports a uniqueness or state conflict.
// Example: domain.Conflict("user.register", "email already registered")
func Conflict(op, message string) error {
	return &Error{Code: ECONFLICT, Op: op, Message: message}
}

// Internal wraps an unexpected failure. The client sees a generic message;
// message and err go to the logs.
func Internal(err error, op, message string) error {
	return &Error{
		Code:    EINTERNAL,
		Op:      op,
		Message: message,
		Err:     err,
	}
}
