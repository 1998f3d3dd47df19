package errors

import (
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"strings"
)

// DefaultMessage is returned when a failure carries no usable message.
const DefaultMessage = "Something went wrong!"

// ApiError is a domain error carrying the HTTP status to answer with.
// Its message is always surfaced to the client verbatim.
type ApiError struct {
	StatusCode int
	Message    string
	Stack      string
	Err        error
}

// Error implements the error interface.
func (e *ApiError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *ApiError) Unwrap() error {
	return e.Err
}

// New creates an ApiError and records the caller's stack.
func New(statusCode int, message string) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		Stack:      callers(3),
	}
}

// Wrap creates an ApiError around an underlying cause.
func Wrap(statusCode int, message string, err error) *ApiError {
	return &ApiError{
		StatusCode: statusCode,
		Message:    message,
		Stack:      callers(3),
		Err:        err,
	}
}

// BadRequest creates a 400 error.
func BadRequest(message string) *ApiError {
	return &ApiError{StatusCode: http.StatusBadRequest, Message: message, Stack: callers(3)}
}

// Unauthorized creates a 401 error.
func Unauthorized(message string) *ApiError {
	if message == "" {
		message = "Unauthorized"
	}
	return &ApiError{StatusCode: http.StatusUnauthorized, Message: message, Stack: callers(3)}
}

// Forbidden creates a 403 error.
func Forbidden(message string) *ApiError {
	if message == "" {
		message = "Forbidden"
	}
	return &ApiError{StatusCode: http.StatusForbidden, Message: message, Stack: callers(3)}
}

// NotFound creates a 404 error.
func NotFound(message string) *ApiError {
	if message == "" {
		message = "Not Found"
	}
	return &ApiError{StatusCode: http.StatusNotFound, Message: message, Stack: callers(3)}
}

// Conflict creates a 409 error.
func Conflict(message string) *ApiError {
	return &ApiError{StatusCode: http.StatusConflict, Message: message, Stack: callers(3)}
}

// Internal creates a 500 error around err.
func Internal(message string, err error) *ApiError {
	return &ApiError{StatusCode: http.StatusInternalServerError, Message: message, Stack: callers(3), Err: err}
}

// Recovered wraps a value recovered from a panic together with the stack at the panic site.
type Recovered struct {
	Value any
	Stack string
}

// Error implements the error interface.
func (r *Recovered) Error() string {
	if err, ok := r.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprintf("panic: %v", r.Value)
}

// Unwrap exposes the panic value when it is an error.
func (r *Recovered) Unwrap() error {
	if err, ok := r.Value.(error); ok {
		return err
	}
	return nil
}

// Traced is a plain error together with the stack of the point where it
// entered request handling.
type Traced struct {
	Err   error
	Stack string
}

// Error implements the error interface.
func (t *Traced) Error() string {
	return t.Err.Error()
}

// Unwrap returns the traced error.
func (t *Traced) Unwrap() error {
	return t.Err
}

// WithStack records the caller's stack on err unless err already carries one.
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	var (
		apiErr *ApiError
		rec    *Recovered
		traced *Traced
	)
	if errors.As(err, &apiErr) || errors.As(err, &rec) || errors.As(err, &traced) {
		return err
	}
	return &Traced{Err: err, Stack: callers(3)}
}

// Kind discriminates the closed set of failures the error handler knows about.
type Kind int

const (
	// KindUnknown is a failure that is not an error value at all.
	KindUnknown Kind = iota
	// KindGeneric is a plain runtime error.
	KindGeneric
	// KindAPI is an *ApiError.
	KindAPI
)

func (k Kind) String() string {
	switch k {
	case KindAPI:
		return "api"
	case KindGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Classified is the outcome of Classify.
type Classified struct {
	Kind       Kind
	StatusCode int
	Message    string
	Stack      string
}

// Classify maps any failure value to a status code and client message.
func Classify(v any) Classified {
	err, ok := v.(error)
	if !ok || err == nil {
		return Classified{
			Kind:       KindUnknown,
			StatusCode: http.StatusInternalServerError,
			Message:    DefaultMessage,
		}
	}

	var apiErr *ApiError
	var rec *Recovered

	switch {
	case errors.As(err, &apiErr):
		return Classified{
			Kind:       KindAPI,
			StatusCode: apiErr.StatusCode,
			Message:    apiErr.Message,
			Stack:      apiErr.Stack,
		}
	case errors.As(err, &rec) && rec.Unwrap() == nil:
		return Classified{
			Kind:       KindUnknown,
			StatusCode: http.StatusInternalServerError,
			Message:    DefaultMessage,
			Stack:      rec.Stack,
		}
	default:
		msg := err.Error()
		if msg == "" {
			msg = DefaultMessage
		}
		// An error that never passed WithStack has no stack to report.
		var stack string
		var traced *Traced
		if errors.As(err, &rec) {
			stack = rec.Stack
		} else if errors.As(err, &traced) {
			stack = traced.Stack
		}
		return Classified{
			Kind:       KindGeneric,
			StatusCode: http.StatusInternalServerError,
			Message:    msg,
			Stack:      stack,
		}
	}
}

// StatusCode returns the HTTP status code Classify would assign to err.
func StatusCode(err error) int {
	return Classify(err).StatusCode
}

// GenericErrorMessage is a single explanatory entry of an error response.
// Path is a string or a number.
type GenericErrorMessage struct {
	Path    any    `json:"path"`
	Message string `json:"message"`
}

// Messages returns the single-entry detail list for message, or an empty list.
func Messages(message string) []GenericErrorMessage {
	if message == "" {
		return []GenericErrorMessage{}
	}
	return []GenericErrorMessage{{Path: "", Message: message}}
}

func callers(skip int) string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip, pcs)
	frames := runtime.CallersFrames(pcs[:n])

	var b strings.Builder
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}
