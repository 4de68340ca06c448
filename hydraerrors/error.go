package hydraerrors

import (
	"encoding/json"
	"errors"
	"reflect"
	"time"
)

// Classified is implemented by every member of the taxonomy. The unexported
// method keeps the set closed: only types defined in this package qualify.
//
// Contract:
// - Concurrency: reads are safe; WithContext mutation is not synchronized
//   and must happen before an error is shared across goroutines.
// - Errors: implementations must be valid errors and must not panic.
type Classified interface {
	error
	ErrorCode() Code
	IsRetryable() bool
	IsRecoverable() bool

	base() *Error
}

// Error is the base classified error. Variant types embed it and fix the
// Code and default classification; extra typed fields are mirrored into
// Context under snake_case keys so serialized errors stay self-describing.
//
// An Error is immutable after construction except for Context, which grows
// via WithContext.
type Error struct {
	// Name is the taxonomy label, e.g. "TimeoutError".
	Name string

	// Message is the human-readable description.
	Message string

	// Code is the stable machine-readable code.
	Code Code

	// Recoverable reports whether the process can continue after this
	// error (as opposed to a fatal misconfiguration).
	Recoverable bool

	// Retryable reports whether the failed operation may be attempted
	// again with a reasonable chance of success.
	Retryable bool

	// Context carries structured metadata about the failure site.
	Context map[string]any

	// Cause is the underlying error, if any.
	Cause error

	// Timestamp is when the error was created.
	Timestamp time.Time
}

// New creates a base classified error. The default classification is
// recoverable but not retryable; variant constructors override it.
func New(message string, code Code) *Error {
	return &Error{
		Name:        "HydraError",
		Message:     message,
		Code:        code,
		Recoverable: true,
		Timestamp:   time.Now(),
	}
}

// Wrap creates a classified error with an underlying cause.
func Wrap(cause error, message string, code Code) *Error {
	e := New(message, code)
	e.Cause = cause
	return e
}

func (e *Error) Error() string {
	if e.Cause != nil && e.Cause.Error() != e.Message {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/errors.As traversal.
func (e *Error) Unwrap() error { return e.Cause }

// ErrorCode returns the stable code.
func (e *Error) ErrorCode() Code { return e.Code }

// IsRetryable returns the explicit retryable classification.
func (e *Error) IsRetryable() bool { return e.Retryable }

// IsRecoverable returns the explicit recoverable classification.
func (e *Error) IsRecoverable() bool { return e.Recoverable }

func (e *Error) base() *Error { return e }

// WithContext adds a key to the error's context and returns the receiver
// for chaining. The context map is the only mutable part of an Error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// errorJSON is the wire shape of a serialized taxonomy error. Go errors
// carry no portable stack trace, so the cause chain stands in for one.
type errorJSON struct {
	Name        string         `json:"name"`
	Message     string         `json:"message"`
	Code        Code           `json:"code"`
	Recoverable bool           `json:"recoverable"`
	Retryable   bool           `json:"retryable"`
	Context     map[string]any `json:"context,omitempty"`
	Timestamp   time.Time      `json:"timestamp"`
	Cause       string         `json:"cause,omitempty"`
}

// MarshalJSON serializes the error for logging and telemetry.
func (e *Error) MarshalJSON() ([]byte, error) {
	payload := errorJSON{
		Name:        e.Name,
		Message:     e.Message,
		Code:        e.Code,
		Recoverable: e.Recoverable,
		Retryable:   e.Retryable,
		Context:     e.Context,
		Timestamp:   e.Timestamp,
	}
	if e.Cause != nil {
		payload.Cause = e.Cause.Error()
	}
	return json.Marshal(payload)
}

// Normalize coerces an arbitrary failure value into the taxonomy.
//
// A value that already belongs to the taxonomy passes through as the same
// instance. A plain error is wrapped with the given code and kept as the
// cause. A string becomes the message of a new error. Anything else yields
// a generic error with the value preserved under context key
// "original_error". Nil stays nil.
func Normalize(v any, code Code) error {
	switch x := v.(type) {
	case nil:
		return nil
	case Classified:
		return x
	case error:
		return Wrap(x, x.Error(), code)
	case string:
		return New(x, code)
	default:
		return New("Unknown error", code).WithContext("original_error", x)
	}
}

// IsRetryable reports whether err carries an explicit retryable
// classification. It trusts only the taxonomy: any unclassified error is
// not retryable here, even if its message looks transient. Heuristic triage
// of raw errors belongs to the retry package.
func IsRetryable(err error) bool {
	var c Classified
	if errors.As(err, &c) {
		return c.IsRetryable()
	}
	return false
}

// IsRecoverable reports whether err carries an explicit recoverable
// classification; unclassified errors are not recoverable.
func IsRecoverable(err error) bool {
	var c Classified
	if errors.As(err, &c) {
		return c.IsRecoverable()
	}
	return false
}

// CodeOf returns the stable code of a classified error. A plain error
// falls back to its dynamic type name; nil and typeless values map to
// CodeUnknown.
func CodeOf(err error) Code {
	if err == nil {
		return CodeUnknown
	}
	var c Classified
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if name := t.Name(); name != "" {
		return Code(name)
	}
	return CodeUnknown
}

// WithRetryContext records retry bookkeeping on a classified error's
// context, in place, and returns err. Unclassified errors pass through
// untouched.
func WithRetryContext(err error, attempt, maxAttempts int) error {
	var c Classified
	if !errors.As(err, &c) {
		return err
	}
	b := c.base()
	b.WithContext("attempt", attempt)
	b.WithContext("max_attempts", maxAttempts)
	b.WithContext("remaining_attempts", maxAttempts-attempt)
	return err
}
