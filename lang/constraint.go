package lang

import (
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Constraint is a rule an argument value must satisfy.
//
// The set of constraints is closed: [FloatRange], [AnyNumeric],
// [ColorLiteral], [Text], [OneOf] and [*Predicate]. New kinds are added here
// rather than implemented elsewhere.
type Constraint interface {
	// Validate checks v and returns the value to bind, which may be a
	// normalized form of v (for example an Int widened to Float).
	// A failed check returns a *Violation.
	Validate(v Value) (Value, error)
	// Describe returns a short description of the accepted values.
	Describe() string

	constraint()
}

// Violation is the error returned by [Constraint.Validate]. Its message
// becomes the diagnostic message verbatim.
type Violation struct {
	Message string
}

// Error implements the error interface.
func (v *Violation) Error() string { return v.Message }

func violationf(format string, args ...any) *Violation {
	return &Violation{Message: fmt.Sprintf(format, args...)}
}

func mismatch(want string, got Value) *Violation {
	return violationf("expected %s, found %s", want, got.Type())
}

// FloatRange accepts integers and floats within [Min, Max], inclusive.
// The bound value is always a Float.
type FloatRange struct {
	Min, Max float64
}

// AnyNumeric accepts any integer or float unchanged.
type AnyNumeric struct{}

// ColorLiteral accepts colors and hex color strings. The bound value is
// always a Color.
type ColorLiteral struct{}

// Text accepts strings.
type Text struct{}

// OneOf accepts strings equal to one of Options.
type OneOf struct {
	Options []string
}

// Predicate accepts values for which an expr-lang expression over the
// identifier "value" evaluates to true.
type Predicate struct {
	Source  string
	Message string
	program *vm.Program
}

func (FloatRange) constraint()   {}
func (AnyNumeric) constraint()   {}
func (ColorLiteral) constraint() {}
func (Text) constraint()         {}
func (OneOf) constraint()        {}
func (*Predicate) constraint()   {}

// Validate implements [Constraint].
func (c FloatRange) Validate(v Value) (Value, error) {
	var f float64

	switch x := v.(type) {
	case Int:
		f = float64(x)
	case Float:
		f = float64(x)
	default:
		return nil, mismatch("float", v)
	}

	if f < c.Min || f > c.Max {
		return nil, violationf(
			"should be between %s and %s", formatFloat(c.Min), formatFloat(c.Max),
		)
	}

	return Float(f), nil
}

// Describe implements [Constraint].
func (c FloatRange) Describe() string {
	return "float in [" + formatFloat(c.Min) + ", " + formatFloat(c.Max) + "]"
}

// Validate implements [Constraint].
func (AnyNumeric) Validate(v Value) (Value, error) {
	switch v.(type) {
	case Int, Float:
		return v, nil
	default:
		return nil, mismatch("number", v)
	}
}

// Describe implements [Constraint].
func (AnyNumeric) Describe() string { return "number" }

// Validate implements [Constraint].
func (ColorLiteral) Validate(v Value) (Value, error) {
	switch x := v.(type) {
	case Color:
		return x, nil
	case Str:
		c, ok := ParseColor(string(x))
		if !ok {
			return nil, violationf("invalid color")
		}

		return c, nil
	default:
		return nil, mismatch("color", v)
	}
}

// Describe implements [Constraint].
func (ColorLiteral) Describe() string { return "color" }

// Validate implements [Constraint].
func (Text) Validate(v Value) (Value, error) {
	if _, ok := v.(Str); !ok {
		return nil, mismatch("string", v)
	}

	return v, nil
}

// Describe implements [Constraint].
func (Text) Describe() string { return "string" }

// Validate implements [Constraint].
func (c OneOf) Validate(v Value) (Value, error) {
	s, ok := v.(Str)
	if ok && slices.Contains(c.Options, string(s)) {
		return v, nil
	}

	return nil, violationf("expected %s", c.Describe())
}

// Describe implements [Constraint].
func (c OneOf) Describe() string {
	quoted := make([]string, len(c.Options))
	for i, o := range c.Options {
		quoted[i] = strconv.Quote(o)
	}

	return "one of " + strings.Join(quoted, ", ")
}

// NewPredicate compiles source into a Predicate. The expression must yield
// a boolean; message is reported when it yields false.
func NewPredicate(source, message string) (*Predicate, error) {
	program, err := expr.Compile(source,
		expr.AllowUndefinedVariables(),
		expr.AsBool(),
	)
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("expr", source))
	}

	if message == "" {
		message = "must satisfy " + source
	}

	return &Predicate{Source: source, Message: message, program: program}, nil
}

// Validate implements [Constraint].
func (c *Predicate) Validate(v Value) (Value, error) {
	out, err := expr.Run(c.program, map[string]any{"value": v.Native()})
	if err != nil {
		return nil, &Violation{Message: err.Error()}
	}

	if ok, _ := out.(bool); !ok {
		return nil, &Violation{Message: c.Message}
	}

	return v, nil
}

// Describe implements [Constraint].
func (c *Predicate) Describe() string { return "value where " + c.Source }
