package lang

import (
	"strconv"
	"strings"
	"testing"
	"unicode"
)

// callAt builds the CallExpr a markup parser would produce for the
// single-line bracket notation src, with its opening bracket at line:col.
// Arguments are separated by ", " and may be named ("dir: rtl").
func callAt(tb testing.TB, line, col int, src string) *CallExpr {
	tb.Helper()

	if !strings.HasPrefix(src, "[") || !strings.HasSuffix(src, "]") {
		tb.Fatalf("call %q is not bracketed", src)
	}

	at := func(off int) Position { return Position{Line: line, Column: col + off} }

	body := src[1 : len(src)-1]
	name, rest, _ := strings.Cut(body, " ")

	call := &CallExpr{
		Name:     name,
		NameSpan: Span{Start: at(1), End: at(1 + len(name))},
		Span:     Span{Start: at(0), End: at(len(src))},
	}

	if rest == "" {
		return call
	}

	off := 1 + len(name) + 1

	for part := range strings.SplitSeq(rest, ", ") {
		arg := ArgExpr{Span: Span{Start: at(off), End: at(off + len(part))}}

		text := part
		if n, v, ok := strings.Cut(part, ": "); ok && isIdent(n) {
			arg.Name, text = n, v
		}

		arg.Value = literal(tb, text)
		call.Args = append(call.Args, arg)

		off += len(part) + len(", ")
	}

	return call
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsLetter(r) && r != '_' && r != '-' {
			return false
		}
	}

	return true
}

func literal(tb testing.TB, text string) Value {
	tb.Helper()

	switch {
	case text == "true" || text == "false":
		return Bool(text == "true")

	case strings.HasPrefix(text, `"`):
		s, err := strconv.Unquote(text)
		if err != nil {
			tb.Fatalf("bad string literal %s: %v", text, err)
		}

		return Str(s)
	}

	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i)
	}

	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Float(f)
	}

	return Str(text)
}

func spans(ds Diagnostics) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Span.String()
	}

	return out
}

func messages(ds Diagnostics) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Message
	}

	return out
}
