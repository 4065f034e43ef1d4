package lang

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Value is a literal argument value or a function result.
//
// The set of implementations is closed: [Int], [Float], [Str], [Bool],
// [Color] and [Dict].
type Value interface {
	// Type returns the name of the value's type as used in diagnostics.
	Type() string
	// String returns the value in source-like notation.
	String() string
	// Native returns the value as a plain Go value for expression
	// evaluation and serialization.
	Native() any

	value()
}

// Int is an integer literal.
type Int int64

// Float is a floating-point literal.
type Float float64

// Str is a string literal.
type Str string

// Bool is a boolean literal.
type Bool bool

func (Int) value()   {}
func (Float) value() {}
func (Str) value()   {}
func (Bool) value()  {}
func (Color) value() {}
func (*Dict) value() {}

func (Int) Type() string   { return "integer" }
func (Float) Type() string { return "float" }
func (Str) Type() string   { return "string" }
func (Bool) Type() string  { return "boolean" }
func (Color) Type() string { return "color" }
func (*Dict) Type() string { return "dictionary" }

func (v Int) String() string   { return strconv.FormatInt(int64(v), 10) }
func (v Float) String() string { return formatFloat(float64(v)) }
func (v Str) String() string   { return strconv.Quote(string(v)) }
func (v Bool) String() string  { return strconv.FormatBool(bool(v)) }

func (v Int) Native() any   { return int64(v) }
func (v Float) Native() any { return float64(v) }
func (v Str) Native() any   { return string(v) }
func (v Bool) Native() any  { return bool(v) }
func (v Color) Native() any { return v.String() }

// formatFloat renders f with the shortest exact representation, always
// keeping a fractional part so that 1 prints as "1.0".
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") && !math.IsInf(f, 0) && !math.IsNaN(f) {
		s += ".0"
	}

	return s
}

// Color is an 8-bit-per-channel RGBA color.
type Color struct {
	R, G, B, A uint8
}

// String formats the color as "#rrggbbaa".
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor parses a hex color of the form "#rgb", "#rgba", "#rrggbb" or
// "#rrggbbaa". The leading '#' is optional.
func ParseColor(s string) (Color, bool) {
	hex := strings.TrimPrefix(s, "#")

	var digits []uint8

	for _, r := range hex {
		d, ok := hexDigit(r)
		if !ok {
			return Color{}, false
		}

		digits = append(digits, d)
	}

	var ch []uint8

	switch len(digits) {
	case 3, 4:
		for _, d := range digits {
			ch = append(ch, d<<4|d)
		}
	case 6, 8:
		for i := 0; i < len(digits); i += 2 {
			ch = append(ch, digits[i]<<4|digits[i+1])
		}
	default:
		return Color{}, false
	}

	c := Color{R: ch[0], G: ch[1], B: ch[2], A: math.MaxUint8}
	if len(ch) == 4 {
		c.A = ch[3]
	}

	return c, true
}

func hexDigit(r rune) (uint8, bool) {
	switch {
	case r >= '0' && r <= '9':
		return uint8(r - '0'), true
	case r >= 'a' && r <= 'f':
		return uint8(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return uint8(r-'A') + 10, true
	default:
		return 0, false
	}
}

// Dict is an insertion-ordered record of named values. Builtin style
// functions return their resolved settings as a Dict.
type Dict struct {
	keys []string
	vals map[string]Value
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{vals: map[string]Value{}}
}

// Set stores v under key, keeping the position of an existing key.
func (d *Dict) Set(key string, v Value) *Dict {
	if _, ok := d.vals[key]; !ok {
		d.keys = append(d.keys, key)
	}

	d.vals[key] = v

	return d
}

// Get returns the value stored under key.
func (d *Dict) Get(key string) (Value, bool) {
	v, ok := d.vals[key]

	return v, ok
}

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string { return d.keys }

// Len returns the number of entries.
func (d *Dict) Len() int { return len(d.keys) }

// String formats the dict as "(key: value, ...)".
func (d *Dict) String() string {
	var b strings.Builder

	b.WriteByte('(')

	for i, k := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}

		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(d.vals[k].String())
	}

	if len(d.keys) == 0 {
		b.WriteByte(':')
	}

	b.WriteByte(')')

	return b.String()
}

// Native returns the dict as map[string]any.
func (d *Dict) Native() any {
	m := make(map[string]any, len(d.keys))
	for _, k := range d.keys {
		m[k] = d.vals[k].Native()
	}

	return m
}

// LogValue implements slog.LogValuer.
func (d *Dict) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(d.keys))
	for _, k := range d.keys {
		attrs = append(attrs, slog.String(k, d.vals[k].String()))
	}

	return slog.GroupValue(attrs...)
}

// FromNative converts a plain Go value, as produced by a YAML, TOML or JSON
// decoder or by an expression, into a Value.
func FromNative(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case string:
		return Str(x), nil
	case bool:
		return Bool(x), nil
	case float32:
		return Float(x), nil
	case float64:
		return Float(x), nil
	case map[string]any:
		d := NewDict()
		for _, k := range sortedKeys(x) {
			val, err := FromNative(x[k])
			if err != nil {
				return nil, err
			}

			d.Set(k, val)
		}

		return d, nil
	}

	rv := reflect.ValueOf(v)

	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, ErrInvalidValue.
				With(slog.String("value", strconv.FormatUint(u, 10)), slog.String("issue", "integer overflow"))
		}

		return Int(int64(u)), nil

	default:
		return nil, ErrInvalidValue.
			With(slog.String("type", resultTypeName(v)))
	}
}

// ParseValue converts a decoded value to a Value of the named kind.
// An empty kind infers the Value from the decoded type.
func ParseValue(kind string, v any) (Value, error) {
	val, err := FromNative(v)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(kind) {
	case "":
		return val, nil

	case "int", "integer":
		switch x := val.(type) {
		case Int:
			return x, nil
		case Float:
			if float64(x) == math.Trunc(float64(x)) {
				return Int(int64(x)), nil
			}
		}

	case "float":
		switch x := val.(type) {
		case Int:
			return Float(float64(x)), nil
		case Float:
			return x, nil
		}

	case "string", "str":
		return Str(nativeText(val)), nil

	case "bool", "boolean":
		if b, ok := val.(Bool); ok {
			return b, nil
		}

		if s, ok := val.(Str); ok {
			if b, err := strconv.ParseBool(string(s)); err == nil {
				return Bool(b), nil
			}
		}

	case "color":
		if s, ok := val.(Str); ok {
			if c, ok := ParseColor(string(s)); ok {
				return c, nil
			}
		}

	default:
		return nil, ErrInvalidValue.
			With(slog.String("kind", kind))
	}

	return nil, ErrInvalidValue.
		With(slog.String("kind", kind), slog.String("value", val.String()))
}

// nativeText returns the text of a Str, or the source notation otherwise.
func nativeText(v Value) string {
	if s, ok := v.(Str); ok {
		return string(s)
	}

	return v.String()
}
