package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/callcheck/cli/cmd/browse"
	"github.com/ardnew/callcheck/lang"
)

// Funcs lists the registered function signatures.
type Funcs struct {
	Format      string `default:"text" enum:"text,yaml,json" help:"Listing format (${enum})"                  short:"o"`
	Interactive bool   `                                       help:"Browse signatures interactively"          short:"i"`
	Pattern     string `arg:""         help:"Fuzzy filter on function names" optional:""`
}

// funcRecord is the serialized form of a function signature.
type funcRecord struct {
	Name      string        `json:"name"          yaml:"name"`
	Signature string        `json:"signature"     yaml:"signature"`
	Doc       string        `json:"doc,omitempty" yaml:"doc,omitempty"`
	Params    []paramRecord `json:"params"        yaml:"params"`
}

type paramRecord struct {
	Name       string `json:"name"                 yaml:"name"`
	What       string `json:"what"                 yaml:"what"`
	Required   bool   `json:"required"             yaml:"required"`
	Named      bool   `json:"named"                yaml:"named"`
	Constraint string `json:"constraint,omitempty" yaml:"constraint,omitempty"`
}

func makeFuncRecord(sig *lang.FunctionSignature) funcRecord {
	rec := funcRecord{
		Name:      sig.Name,
		Signature: sig.String(),
		Doc:       sig.Doc,
		Params:    make([]paramRecord, len(sig.Params)),
	}

	for i, p := range sig.Params {
		rec.Params[i] = paramRecord{
			Name:     p.Name,
			What:     p.Noun(),
			Required: p.Required,
			Named:    p.Named,
		}

		if p.Constraint != nil {
			rec.Params[i].Constraint = p.Constraint.Describe()
		}
	}

	return rec
}

// Run executes the funcs command.
func (f *Funcs) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	reg, err := registryFrom(ctx)
	if err != nil {
		return err
	}

	sigs := slices.Collect(reg.All())
	out := outputFrom(ctx)

	if f.Interactive {
		chosen, err := browse.Run(ctx, sigs, f.Pattern)
		if err != nil {
			return err
		}

		if chosen != nil {
			_, err = fmt.Fprintln(out, chosen.String())
		}

		return err
	}

	matches, _ := browse.Filter(sigs, f.Pattern)
	if len(matches) == 0 {
		return ErrNoMatch.With(slog.String("pattern", f.Pattern))
	}

	return writeFuncs(ctx, out, f.Format, matches)
}

func writeFuncs(
	ctx context.Context,
	w io.Writer,
	format string,
	sigs []*lang.FunctionSignature,
) error {
	recs := make([]funcRecord, len(sigs))
	for i, sig := range sigs {
		recs[i] = makeFuncRecord(sig)
	}

	switch format {
	case "json":
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err

	case "yaml":
		data, err := yaml.MarshalContext(ctx, recs, yaml.Indent(2))
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err

	default:
		for _, sig := range sigs {
			if _, err := fmt.Fprintln(w, sig.String()); err != nil {
				return err
			}

			if sig.Doc != "" {
				if _, err := fmt.Fprintln(w, "    "+sig.Doc); err != nil {
					return err
				}
			}
		}

		return nil
	}
}
