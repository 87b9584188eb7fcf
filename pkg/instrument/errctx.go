package instrument

import "errors"

// UnknownCode is the sentinel error code used when a failed operation's
// error does not carry a machine-readable code.
const UnknownCode = "unknown_code"

// Coder is implemented by errors that carry a machine-readable code, such
// as "permission-denied" or "not_found".
type Coder interface {
	ErrorCode() string
}

// StackTracer is implemented by errors that carry a captured stack trace.
type StackTracer interface {
	StackTrace() string
}

// Fielder is implemented by errors that expose additional structured
// context. Each field is logged with an "error_" prefix on the failure log.
type Fielder interface {
	ErrorFields() map[string]any
}

// ErrorContext is the typed failure context extracted from an error for the
// "failed" log entry. Optional parts stay zero when the error does not
// provide them.
type ErrorContext struct {
	Code    string
	Message string
	Stack   string
	Fields  map[string]any
}

// ContextFromError extracts an ErrorContext from err using the optional
// Coder, StackTracer and Fielder interfaces anywhere in the unwrap chain.
// The code defaults to UnknownCode. A nil error yields a zero context with
// the default code.
func ContextFromError(err error) ErrorContext {
	ec := ErrorContext{Code: UnknownCode}
	if err == nil {
		return ec
	}
	ec.Message = err.Error()

	var coder Coder
	if errors.As(err, &coder) {
		if code := coder.ErrorCode(); code != "" {
			ec.Code = code
		}
	}

	var tracer StackTracer
	if errors.As(err, &tracer) {
		ec.Stack = tracer.StackTrace()
	}

	var fielder Fielder
	if errors.As(err, &fielder) {
		ec.Fields = fielder.ErrorFields()
	}

	return ec
}

// codedError attaches a machine-readable code to an error without changing
// its message or identity under errors.Is.
type codedError struct {
	err  error
	code string
}

// WithCode wraps err with a machine-readable code surfaced through the
// Coder interface. Returns nil when err is nil.
func WithCode(err error, code string) error {
	if err == nil {
		return nil
	}
	return &codedError{err: err, code: code}
}

func (e *codedError) Error() string     { return e.err.Error() }
func (e *codedError) Unwrap() error     { return e.err }
func (e *codedError) ErrorCode() string { return e.code }
