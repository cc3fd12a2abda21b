// Package apperr defines the tagged error variant every failing request is
// reduced to, plus the pure classification from raw faults to that variant.
package apperr

import "fmt"

// Status is the client-facing status discriminator: "fail" for 4xx class
// errors, "error" for 5xx class and for the unmatched-route fallback.
const (
	StatusFail  = "fail"
	StatusError = "error"
)

// FieldError points at a single offending input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the normalized error shape. Operational marks anticipated,
// user-facing failures; unclassified programming faults stay non-operational
// and have their detail suppressed in production.
type Error struct {
	Code        int
	Status      string
	Message     string
	Fields      []FieldError
	Operational bool
	Err         error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// WithCause attaches the underlying fault for logging and dev rendering.
func (e *Error) WithCause(err error) *Error {
	e.Err = err
	return e
}

func statusFor(code int) string {
	if code >= 400 && code < 500 {
		return StatusFail
	}
	return StatusError
}

// New builds an operational error with the status derived from the code.
func New(code int, message string) *Error {
	return &Error{
		Code:        code,
		Status:      statusFor(code),
		Message:     message,
		Operational: true,
	}
}

// Validation builds the 400 "Validation error" shape carrying per-field
// violations.
func Validation(fields []FieldError) *Error {
	e := New(400, "Validation error")
	e.Fields = fields
	return e
}

// Duplicate builds the 400 uniqueness-conflict shape naming the offending
// field and the conflicting value.
func Duplicate(field, value string) *Error {
	e := New(400, fmt.Sprintf("Duplicate field value: %s already exists with value %s", field, value))
	e.Fields = []FieldError{{Field: field, Message: "must be unique"}}
	return e
}

// InvalidParam builds the 400 malformed-identifier shape naming the invalid
// field and the value supplied.
func InvalidParam(field, value string) *Error {
	return New(400, fmt.Sprintf("Invalid %s: %s", field, value))
}

// NotFound builds the 404 shape for a named resource.
func NotFound(resource string) *Error {
	return New(404, resource+" not found")
}

// Unauthorized builds the 401 shape.
func Unauthorized(message string) *Error {
	return New(401, message)
}

// RouteNotFound is the fallback for unmatched paths. The contract pins its
// status discriminator to "error" rather than the usual 4xx "fail".
func RouteNotFound() *Error {
	return &Error{
		Code:        404,
		Status:      StatusError,
		Message:     "Route not found",
		Operational: true,
	}
}
