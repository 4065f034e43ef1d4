package cmd

import (
	"context"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ardnew/callcheck/lang"
	"github.com/ardnew/callcheck/log"
)

// Check binds the calls of one or more call documents against the
// registered signatures and reports their diagnostics.
type Check struct {
	Format string   `default:"text" enum:"${diagFormatEnum}" help:"Diagnostic output format (${enum})" short:"o"`
	Jobs   int      `default:"0"                             help:"Maximum documents and calls checked concurrently (0 uses GOMAXPROCS)" short:"j"`
	Files  []string `arg:"" help:"Call documents or '-' for stdin" name:"file" optional:""`
}

// Run executes the check command. It returns an error wrapping
// [lang.ErrDiagnostics] when any diagnostic was reported.
func (c *Check) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	format, err := lang.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	reg, err := registryFrom(ctx)
	if err != nil {
		return err
	}

	srcs, closeAll, err := openSources(c.Files, inputFrom(ctx))
	if err != nil {
		return err
	}
	defer closeAll()

	jobs := c.Jobs
	if jobs < 1 {
		jobs = runtime.GOMAXPROCS(0)
	}

	logger := log.Default()
	binder := lang.NewBinder(reg, lang.WithLogger(logger), lang.WithJobs(jobs))
	reports := make([]*lang.Report, len(srcs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, src := range srcs {
		g.Go(func() error {
			doc, err := lang.DecodeDocument(gctx, src.r, src.name, lang.WithLogger(logger))
			if err != nil {
				return err
			}

			reports[i], err = binder.Check(gctx, doc)

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	var all lang.Diagnostics

	for _, r := range reports {
		all = append(all, r.Diagnostics()...)
	}

	log.DebugContext(ctx, "check complete",
		slog.Int("documents", len(reports)),
		slog.Int("diagnostics", len(all)),
		slog.String("format", string(format)),
	)

	if err := lang.WriteDiagnostics(ctx, outputFrom(ctx), format, reports...); err != nil {
		return err
	}

	return all.Err()
}
