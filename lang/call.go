package lang

import (
	"log/slog"
	"strings"
)

// ArgExpr is one parsed argument of a call.
type ArgExpr struct {
	// Name is set for named arguments ("name: value") and empty for
	// positional ones.
	Name  string
	Value Value
	Span  Span
}

// IsNamed reports whether the argument was given by name.
func (a ArgExpr) IsNamed() bool { return a.Name != "" }

// String renders the argument in call notation.
func (a ArgExpr) String() string {
	if a.IsNamed() {
		return a.Name + ": " + a.Value.String()
	}

	return a.Value.String()
}

// CallExpr is a parsed bracketed function call such as "[rgb 0, 1, 0.5]".
// Call expressions are produced by the markup parser; binding only reads
// them.
type CallExpr struct {
	Name string
	// NameSpan covers the function name token.
	NameSpan Span
	// Span covers the whole call including its brackets.
	Span Span
	// Args are the arguments in source order.
	Args []ArgExpr
}

// String renders the call in bracket notation.
func (c *CallExpr) String() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(c.Name)

	for i, a := range c.Args {
		if i == 0 {
			b.WriteByte(' ')
		} else {
			b.WriteString(", ")
		}

		b.WriteString(a.String())
	}

	b.WriteByte(']')

	return b.String()
}

// LogValue implements slog.LogValuer.
func (c *CallExpr) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", c.Name),
		slog.String("span", c.Span.String()),
		slog.Int("args", len(c.Args)),
	)
}

// nameSpan returns the span reported for an unknown function name.
func (c *CallExpr) nameSpan() Span {
	if c.NameSpan.IsZero() {
		return c.Span
	}

	return c.NameSpan
}

// nextSpan returns the zero-width span right after the last token of the
// call that was consumed: the last argument or, without arguments, the
// function name.
func (c *CallExpr) nextSpan() Span {
	if n := len(c.Args); n > 0 {
		return c.Args[n-1].Span.After()
	}

	return c.nameSpan().After()
}

// BoundArg is an argument bound to a parameter after validation.
type BoundArg struct {
	Param *ParameterSpec
	// Value is the checked value, possibly normalized by the constraint.
	Value Value
	Span  Span
}

// BoundCall is a call whose arguments were all bound and validated.
type BoundCall struct {
	Signature *FunctionSignature
	Call      *CallExpr
	// Args holds one entry per bound parameter in declaration order.
	// Optional parameters without an argument have no entry.
	Args []BoundArg
}

// Get returns the value bound to the named parameter.
func (b *BoundCall) Get(name string) (Value, bool) {
	for _, a := range b.Args {
		if a.Param.Name == name {
			return a.Value, true
		}
	}

	return nil, false
}

// Float returns the bound value of the named parameter as a float64, or def
// when the parameter is unbound or not numeric.
func (b *BoundCall) Float(name string, def float64) float64 {
	v, ok := b.Get(name)
	if !ok {
		return def
	}

	switch x := v.(type) {
	case Float:
		return float64(x)
	case Int:
		return float64(x)
	default:
		return def
	}
}

// Native returns the bound values as a map keyed by parameter name.
// Unbound parameters map to nil.
func (b *BoundCall) Native() map[string]any {
	env := make(map[string]any, len(b.Signature.Params))
	for _, p := range b.Signature.Params {
		env[p.Name] = nil
	}

	for _, a := range b.Args {
		env[a.Param.Name] = a.Value.Native()
	}

	return env
}
