package lang

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
)

// Binder resolves call expressions against a [Registry], binds their
// arguments to parameters and validates every bound value.
//
// A Binder holds no mutable state; one Binder may bind calls from many
// goroutines as long as its Registry is no longer being populated.
type Binder struct {
	registry *Registry
	config
}

// NewBinder returns a Binder resolving names in registry.
func NewBinder(registry *Registry, opts ...Option) *Binder {
	b := &Binder{registry: registry}

	applyDefaults(&b.config)
	applyOptions(&b.config, opts...)

	return b
}

// Registry returns the registry the binder resolves names in.
func (b *Binder) Registry() *Registry { return b.registry }

// unbound marks a parameter slot with no argument.
const unbound = -1

// Bind resolves, binds and validates a single call.
//
// The returned BoundCall is non-nil only when no diagnostics were produced.
// Otherwise every diagnostic found is returned, in this order: missing
// arguments in parameter order, then unexpected or duplicate arguments in
// source order, then constraint violations in parameter order. An unknown
// function name yields exactly one diagnostic and nothing else is checked.
func (b *Binder) Bind(ctx context.Context, call *CallExpr) (*BoundCall, Diagnostics) {
	sig, ok := b.registry.Resolve(call.Name)
	if !ok {
		var diags Diagnostics

		d := diags.add(KindUnknownFunction, call.nameSpan(), msgUnknownFunction)
		d.Hint = didYouMean(b.registry.Suggest(call.Name))

		b.logger.TraceContext(ctx, "unknown function",
			slog.String("name", call.Name),
			slog.String("span", d.Span.String()),
		)

		return nil, diags
	}

	slot, diags := bindArgs(sig, call)

	args := make([]BoundArg, 0, len(sig.Params))

	for i := range sig.Params {
		if slot[i] == unbound {
			continue
		}

		param := &sig.Params[i]
		arg := call.Args[slot[i]]

		value, err := validate(param, arg.Value)
		if err != nil {
			diags.add(KindConstraintViolation, arg.Span, err.Error())

			continue
		}

		args = append(args, BoundArg{Param: param, Value: value, Span: arg.Span})
	}

	b.logger.TraceContext(ctx, "bind",
		slog.String("name", call.Name),
		slog.Int("args", len(call.Args)),
		slog.Int("bound", len(args)),
		slog.Int("diagnostics", len(diags)),
	)

	if len(diags) > 0 {
		return nil, diags
	}

	return &BoundCall{Signature: sig, Call: call, Args: args}, nil
}

// bindArgs pairs arguments with parameters. It returns, for each parameter,
// the index of its argument in call.Args (or unbound), along with the
// missing, unexpected and duplicate argument diagnostics.
func bindArgs(sig *FunctionSignature, call *CallExpr) ([]int, Diagnostics) {
	slot := make([]int, len(sig.Params))
	for i := range slot {
		slot[i] = unbound
	}

	var (
		positional []int
		named      []int
	)

	for i, arg := range call.Args {
		if arg.IsNamed() {
			named = append(named, i)
		} else {
			positional = append(positional, i)
		}
	}

	// Positional arguments fill positional parameters in declaration order,
	// one argument per parameter, until either list runs out.
	next := 0

	for i, p := range sig.Params {
		if p.Named {
			continue
		}

		if next >= len(positional) {
			break
		}

		slot[i] = positional[next]
		next++
	}

	type extra struct {
		index int
		kind  Kind
		msg   string
	}

	extras := make([]extra, 0, len(positional)-next)

	for _, ai := range positional[next:] {
		extras = append(extras, extra{ai, KindUnexpectedArgument, msgUnexpectedArgument})
	}

	for _, ai := range named {
		pi := slices.IndexFunc(sig.Params, func(p ParameterSpec) bool {
			return p.Name == call.Args[ai].Name
		})

		switch {
		case pi < 0:
			extras = append(extras, extra{ai, KindUnexpectedArgument, msgUnexpectedArgument})
		case slot[pi] != unbound:
			extras = append(extras, extra{ai, KindDuplicateArgument, msgDuplicateArgument})
		default:
			slot[pi] = ai
		}
	}

	var diags Diagnostics

	missing := call.nextSpan()

	for i, p := range sig.Params {
		if slot[i] == unbound && p.Required {
			diags.add(KindMissingArgument, missing, msgMissingArgument+p.Noun())
		}
	}

	slices.SortStableFunc(extras, func(a, b extra) int { return a.index - b.index })

	for _, e := range extras {
		diags.add(e.kind, call.Args[e.index].Span, e.msg)
	}

	return slot, diags
}

// validate checks v against the parameter's constraint.
func validate(p *ParameterSpec, v Value) (Value, error) {
	if p.Constraint == nil {
		return v, nil
	}

	return p.Constraint.Validate(v)
}

// didYouMean formats name suggestions as a hint, or "" without any.
func didYouMean(names []string) string {
	if len(names) == 0 {
		return ""
	}

	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = strconv.Quote(n)
	}

	return "did you mean " + strings.Join(quoted, " or ") + "?"
}

// Evaluate binds call and, when binding succeeds, runs the signature's
// evaluation function. A signature without one evaluates to nil. A failing
// evaluation is reported as a single diagnostic spanning the whole call.
func (b *Binder) Evaluate(
	ctx context.Context,
	call *CallExpr,
) (*BoundCall, Value, Diagnostics) {
	bound, diags := b.Bind(ctx, call)
	if bound == nil {
		return nil, nil, diags
	}

	if bound.Signature.Eval == nil {
		return bound, nil, nil
	}

	value, err := bound.Signature.Eval(bound)
	if err != nil {
		diags.add(KindEvaluationFailed, call.Span, err.Error())

		b.logger.TraceContext(ctx, "evaluate failed",
			slog.String("name", call.Name),
			slog.Any("error", err),
		)

		return bound, nil, diags
	}

	return bound, value, nil
}
