package lang

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Document is a sequence of call expressions taken from one source file, in
// source order.
type Document struct {
	// File names the source the calls were parsed from. It may be empty.
	File string
	// Source optionally holds the source text, for diagnostic snippets.
	Source string
	Calls  []CallExpr
}

// CallResult is the outcome of checking one call.
type CallResult struct {
	Call        *CallExpr
	Bound       *BoundCall
	Value       Value
	Diagnostics Diagnostics
}

// Report is the outcome of checking a whole document: one result per call
// in source order.
type Report struct {
	Document *Document
	Results  []CallResult
}

// Diagnostics returns the diagnostics of all calls, in source order of the
// calls and discovery order within each call.
func (r *Report) Diagnostics() Diagnostics {
	var all Diagnostics

	for _, res := range r.Results {
		all = append(all, res.Diagnostics...)
	}

	return all
}

// OK reports whether no call produced a diagnostic.
func (r *Report) OK() bool {
	for _, res := range r.Results {
		if len(res.Diagnostics) > 0 {
			return false
		}
	}

	return true
}

// Values returns the results of the calls that evaluated successfully.
func (r *Report) Values() []Value {
	var out []Value

	for _, res := range r.Results {
		if res.Value != nil {
			out = append(out, res.Value)
		}
	}

	return out
}

// Check binds and evaluates every call in doc. Calls are independent: a
// failing call never prevents the others from being checked, and the
// report carries the successful results alongside all diagnostics.
//
// Calls are processed concurrently, bounded by [WithJobs]; a zero Binder
// checks one call at a time. The only error
// returned is the context's, when ctx is done before all calls were
// checked.
func (b *Binder) Check(ctx context.Context, doc *Document) (*Report, error) {
	report := &Report{
		Document: doc,
		Results:  make([]CallResult, len(doc.Calls)),
	}

	b.logger.TraceContext(ctx, "check start",
		slog.String("file", doc.File),
		slog.Int("calls", len(doc.Calls)),
		slog.Int("jobs", b.jobs),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(b.jobs, 1))

	for i := range doc.Calls {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			call := &doc.Calls[i]
			bound, value, diags := b.Evaluate(gctx, call)

			report.Results[i] = CallResult{
				Call:        call,
				Bound:       bound,
				Value:       value,
				Diagnostics: diags,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.logger.TraceContext(ctx, "check complete",
		slog.String("file", doc.File),
		slog.Int("diagnostics", len(report.Diagnostics())),
	)

	return report, nil
}
