package lang

import (
	"strings"
)

// ParameterSpec declares one parameter of a function.
type ParameterSpec struct {
	// Name identifies the parameter. Named arguments refer to it.
	Name string
	// What is the noun used in "missing argument: <What>" diagnostics.
	// Defaults to Name.
	What string
	// Constraint validates bound values. Nil accepts any value.
	Constraint Constraint
	// Required parameters produce a diagnostic when no argument binds.
	Required bool
	// Named parameters bind only by name, never positionally.
	Named bool
	// Position is the declaration index, assigned on registration.
	Position int
}

// Noun returns the text used to refer to the parameter in diagnostics.
func (p ParameterSpec) Noun() string {
	if p.What != "" {
		return p.What
	}

	return p.Name
}

// EvalFunc computes the result of a successfully bound call.
type EvalFunc func(call *BoundCall) (Value, error)

// FunctionSignature declares a callable function.
// Parameter order fixes positional binding order.
type FunctionSignature struct {
	Name   string
	Doc    string
	Params []ParameterSpec
	Eval   EvalFunc
}

// Param returns the parameter with the given name.
func (s *FunctionSignature) Param(name string) (*ParameterSpec, bool) {
	for i := range s.Params {
		if s.Params[i].Name == name {
			return &s.Params[i], true
		}
	}

	return nil, false
}

// String renders the signature, e.g.
//
//	rgb(red: float in [0.0, 1.0], ..., alpha?: float in [0.0, 1.0])
//
// Named-only parameters follow a semicolon.
func (s *FunctionSignature) String() string {
	var pos, named []string

	for _, p := range s.Params {
		var b strings.Builder

		b.WriteString(p.Name)

		if !p.Required {
			b.WriteByte('?')
		}

		if p.Constraint != nil {
			b.WriteString(": ")
			b.WriteString(p.Constraint.Describe())
		}

		if p.Named {
			named = append(named, b.String())
		} else {
			pos = append(pos, b.String())
		}
	}

	params := strings.Join(pos, ", ")
	if len(named) > 0 {
		if params != "" {
			params += "; "
		} else {
			params = "; "
		}

		params += strings.Join(named, ", ")
	}

	return s.Name + "(" + params + ")"
}
