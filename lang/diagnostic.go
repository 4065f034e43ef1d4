package lang

//go:generate go tool stringer --linecomment --type Kind --output kind_string.go

import (
	"log/slog"
	"strconv"
	"strings"
)

// Kind classifies a diagnostic.
type Kind int

const (
	KindUnknownFunction     Kind = iota // unknown-function
	KindMissingArgument                 // missing-argument
	KindUnexpectedArgument              // unexpected-argument
	KindDuplicateArgument               // duplicate-argument
	KindConstraintViolation             // constraint-violation
	KindEvaluationFailed                // evaluation-failed
)

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Diagnostic messages shared by the binder.
const (
	msgUnknownFunction    = "unknown function"
	msgMissingArgument    = "missing argument: "
	msgUnexpectedArgument = "unexpected argument"
	msgDuplicateArgument  = "duplicate argument"
)

// Diagnostic is a problem found in a call, with the exact span of source
// text it refers to.
type Diagnostic struct {
	Span    Span
	Message string
	Kind    Kind
	// Hint is optional advice shown alongside the message, such as a
	// "did you mean" suggestion. It is never part of Message.
	Hint string
}

// String formats the diagnostic as "line:col-line:col message".
func (d Diagnostic) String() string {
	return d.Span.String() + " " + d.Message
}

// LogValue implements slog.LogValuer.
func (d Diagnostic) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("span", d.Span.String()),
		slog.String("kind", d.Kind.String()),
		slog.String("message", d.Message),
	}

	if d.Hint != "" {
		attrs = append(attrs, slog.String("hint", d.Hint))
	}

	return slog.GroupValue(attrs...)
}

// Diagnostics is an ordered list of diagnostics in discovery order.
type Diagnostics []Diagnostic

// add appends a diagnostic of the given kind.
func (ds *Diagnostics) add(kind Kind, span Span, msg string) *Diagnostic {
	*ds = append(*ds, Diagnostic{Span: span, Message: msg, Kind: kind})

	return &(*ds)[len(*ds)-1]
}

// OK reports whether the list is empty.
func (ds Diagnostics) OK() bool { return len(ds) == 0 }

// Count returns the number of diagnostics of the given kind.
func (ds Diagnostics) Count(kind Kind) int {
	n := 0

	for _, d := range ds {
		if d.Kind == kind {
			n++
		}
	}

	return n
}

// String formats one diagnostic per line.
func (ds Diagnostics) String() string {
	var b strings.Builder

	for i, d := range ds {
		if i > 0 {
			b.WriteByte('\n')
		}

		b.WriteString(d.String())
	}

	return b.String()
}

// Err returns nil for an empty list, or an error wrapping [ErrDiagnostics]
// that carries every diagnostic as a structured attribute.
func (ds Diagnostics) Err() error {
	if len(ds) == 0 {
		return nil
	}

	attrs := make([]slog.Attr, 0, len(ds)+1)
	attrs = append(attrs, slog.Int("count", len(ds)))

	for i, d := range ds {
		attrs = append(attrs, slog.Any(strconv.Itoa(i), d))
	}

	return ErrDiagnostics.With(attrs...)
}
