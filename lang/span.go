package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// Position is a 1-indexed line and column in source text.
// The zero Position is invalid and used to mean "unknown".
type Position struct {
	Line   int
	Column int
}

// IsZero reports whether p is the zero (unknown) position.
func (p Position) IsZero() bool { return p.Line == 0 && p.Column == 0 }

// Before reports whether p sorts strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}

	return p.Column < q.Column
}

// String returns the position formatted as "line:col".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Span is a half-open range of source text: End is the position one past
// the last character covered. A zero-width span (Start == End) marks a point
// between two characters, such as the place a missing argument belongs.
//
// Spans are produced by the markup parser and are only ever copied or
// synthesized by this package, never modified in place.
type Span struct {
	Start Position
	End   Position
}

// MakeSpan returns the span from (l0, c0) up to (l1, c1).
func MakeSpan(l0, c0, l1, c1 int) Span {
	return Span{
		Start: Position{Line: l0, Column: c0},
		End:   Position{Line: l1, Column: c1},
	}
}

// PointSpan returns the zero-width span at p.
func PointSpan(p Position) Span { return Span{Start: p, End: p} }

// IsZero reports whether s is the zero (unknown) span.
func (s Span) IsZero() bool { return s.Start.IsZero() && s.End.IsZero() }

// IsEmpty reports whether s is zero-width.
func (s Span) IsEmpty() bool { return s.Start == s.End }

// After returns the zero-width span immediately following s.
func (s Span) After() Span { return PointSpan(s.End) }

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return !other.Start.Before(s.Start) && !s.End.Before(other.End)
}

// String formats the span as "line:col-line:col".
// Zero-width spans repeat the same position on both sides.
func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

// MarshalText implements encoding.TextMarshaler.
func (s Span) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Span) UnmarshalText(text []byte) error {
	span, err := ParseSpan(string(text))
	if err != nil {
		return err
	}

	*s = span

	return nil
}

// LogValue implements slog.LogValuer.
func (s Span) LogValue() slog.Value {
	return slog.StringValue(s.String())
}

// ParseSpan parses the "line:col-line:col" form produced by [Span.String].
// The shorthand "line:col" denotes a zero-width span.
func ParseSpan(text string) (Span, error) {
	text = strings.TrimSpace(text)

	lhs, rhs, ranged := strings.Cut(text, "-")

	start, err := parsePosition(lhs)
	if err != nil {
		return Span{}, ErrInvalidSpan.Wrap(err).
			With(slog.String("span", text))
	}

	if !ranged {
		return PointSpan(start), nil
	}

	end, err := parsePosition(rhs)
	if err != nil {
		return Span{}, ErrInvalidSpan.Wrap(err).
			With(slog.String("span", text))
	}

	if end.Before(start) {
		return Span{}, ErrInvalidSpan.
			With(slog.String("span", text), slog.String("issue", "end before start"))
	}

	return Span{Start: start, End: end}, nil
}

func parsePosition(text string) (Position, error) {
	line, col, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return Position{}, NewError("expected line:col")
	}

	l, err := strconv.Atoi(line)
	if err != nil {
		return Position{}, err
	}

	c, err := strconv.Atoi(col)
	if err != nil {
		return Position{}, err
	}

	if l < 1 || c < 1 {
		return Position{}, NewError("positions are 1-indexed")
	}

	return Position{Line: l, Column: c}, nil
}
