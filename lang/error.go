package lang

import (
	"errors"
	"log/slog"
	"strings"
)

// Predefined errors (sentinel values).
//
// These describe failures of the machinery around binding: reading and
// decoding call documents, loading signature libraries, compiling
// expressions. Problems with the calls themselves are reported as
// [Diagnostic] values, never as errors.
var (
	ErrReadInput     = NewError("failed to read input")
	ErrDecode        = NewError("failed to decode call document")
	ErrInvalidSpan   = NewError("invalid span")
	ErrInvalidValue  = NewError("invalid argument value")
	ErrLibrary       = NewError("failed to load signature library")
	ErrUnknownKind   = NewError("unknown constraint kind")
	ErrExprCompile   = NewError("expression compilation failed")
	ErrExprEvaluate  = NewError("expression evaluation failed")
	ErrInvalidFormat = NewError("invalid output format")
	ErrDiagnostics   = NewError("call diagnostics reported")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error.
// If err already is (or wraps) an *Error, that value is returned.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the same sentinel as e.
// Errors derived from a sentinel through With or Wrap match it.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.msg != "" && e.msg == t.msg && t.err == nil && len(t.attrs) == 0
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// WithSpan attaches a source span attribute to the error.
func (e *Error) WithSpan(span Span) *Error {
	return e.With(slog.Any("span", span))
}
