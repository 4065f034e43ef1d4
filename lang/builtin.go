package lang

import (
	"math"
	"strings"
)

// unitRange is the accepted range of color components.
var unitRange = FloatRange{Min: 0, Max: 1}

// Builtins returns a new Registry holding the builtin functions. Each call
// returns a fresh Registry that the caller may extend.
func Builtins() *Registry {
	return NewRegistry(
		rgbSignature(),
		fontSignature(),
		parSignature(),
		langSignature(),
		lineSignature("underline", "Underline text."),
		lineSignature("strike", "Strike through text."),
		lineSignature("overline", "Draw a line over text."),
	)
}

func rgbSignature() FunctionSignature {
	component := func(name string, required bool) ParameterSpec {
		return ParameterSpec{
			Name:       name,
			What:       name + " component",
			Constraint: unitRange,
			Required:   required,
		}
	}

	return FunctionSignature{
		Name: "rgb",
		Doc:  "Create a color from red, green, blue and optional alpha components between 0.0 and 1.0.",
		Params: []ParameterSpec{
			component("red", true),
			component("green", true),
			component("blue", true),
			component("alpha", false),
		},
		Eval: evalRGB,
	}
}

func evalRGB(call *BoundCall) (Value, error) {
	channel := func(name string, def float64) uint8 {
		return uint8(math.Round(unit(call.Float(name, def)) * math.MaxUint8))
	}

	return Color{
		R: channel("red", 0),
		G: channel("green", 0),
		B: channel("blue", 0),
		A: channel("alpha", 1),
	}, nil
}

// unit clamps v into [0, 1]. NaN clamps to 0.
func unit(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}

	return min(max(v, 0), 1)
}

func fontSignature() FunctionSignature {
	named := func(name, what string, c Constraint) ParameterSpec {
		return ParameterSpec{Name: name, What: what, Constraint: c, Named: true}
	}

	return FunctionSignature{
		Name: "font",
		Doc:  "Set the font size, families, variant, vertical metrics and fill.",
		Params: []ParameterSpec{
			{Name: "size", What: "font size", Constraint: AnyNumeric{}},
			named("family", "font family", Text{}),
			named("style", "font style", OneOf{Options: []string{"normal", "italic", "oblique"}}),
			named("weight", "font weight", FloatRange{Min: 100, Max: 900}),
			named("stretch", "font stretch", FloatRange{Min: 0.5, Max: 2}),
			named("top-edge", "top edge", OneOf{Options: []string{"ascender", "cap-height", "x-height", "baseline"}}),
			named("bottom-edge", "bottom edge", OneOf{Options: []string{"baseline", "descender"}}),
			named("fill", "fill color", ColorLiteral{}),
			named("serif", "serif family", Text{}),
			named("sans-serif", "sans-serif family", Text{}),
			named("monospace", "monospace family", Text{}),
		},
		Eval: evalSettings,
	}
}

func parSignature() FunctionSignature {
	spacing := func(name, what string) ParameterSpec {
		return ParameterSpec{Name: name, What: what, Constraint: AnyNumeric{}, Named: true}
	}

	return FunctionSignature{
		Name: "par",
		Doc:  "Set paragraph spacing, leading and word spacing.",
		Params: []ParameterSpec{
			spacing("spacing", "paragraph spacing"),
			spacing("leading", "line leading"),
			spacing("word-spacing", "word spacing"),
		},
		Eval: evalSettings,
	}
}

// evalSettings returns the bound arguments as a dictionary keyed by
// parameter name, in declaration order.
func evalSettings(call *BoundCall) (Value, error) {
	d := NewDict()

	for _, a := range call.Args {
		d.Set(a.Param.Name, a.Value)
	}

	return d, nil
}

func langSignature() FunctionSignature {
	return FunctionSignature{
		Name: "lang",
		Doc:  "Set the text language by ISO 639-1 code, and optionally its direction.",
		Params: []ParameterSpec{
			{Name: "iso", What: "language code", Constraint: Text{}},
			{Name: "dir", What: "text direction", Constraint: OneOf{Options: []string{"ltr", "rtl"}}, Named: true},
		},
		Eval: evalLang,
	}
}

func evalLang(call *BoundCall) (Value, error) {
	d := NewDict()

	iso, hasISO := call.Get("iso")
	if hasISO {
		d.Set("lang", iso)
	}

	if dir, ok := call.Get("dir"); ok {
		d.Set("dir", dir)
	} else if hasISO {
		d.Set("dir", Str(langDir(nativeText(iso))))
	}

	return d, nil
}

// langDir returns the default text direction for a language code.
func langDir(iso string) string {
	switch strings.ToLower(iso) {
	case "ar", "he", "fa", "ur", "ps", "yi":
		return "rtl"
	default:
		return "ltr"
	}
}

func lineSignature(name, doc string) FunctionSignature {
	return FunctionSignature{
		Name: name,
		Doc:  doc,
		Params: []ParameterSpec{
			{Name: "stroke", What: "stroke color", Constraint: ColorLiteral{}},
			{Name: "thickness", Constraint: AnyNumeric{}},
			{Name: "offset", Constraint: AnyNumeric{}, Named: true},
			{Name: "extent", Constraint: AnyNumeric{}, Named: true},
		},
		Eval: func(call *BoundCall) (Value, error) {
			d := NewDict().Set("line", Str(name))

			for _, a := range call.Args {
				d.Set(a.Param.Name, a.Value)
			}

			// An explicit zero thickness switches the line off.
			d.Set("enabled", Bool(call.Float("thickness", 1) != 0))

			return d, nil
		},
	}
}
