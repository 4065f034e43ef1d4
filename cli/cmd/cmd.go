package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/callcheck/lang"
)

type (
	kongContextKey struct{}
	registryKey    struct{}
	inputKey       struct{}
	outputKey      struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongContextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(kongContextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// WithRegistry returns a new context.Context carrying the signature registry
// that commands check calls against.
func WithRegistry(ctx context.Context, reg *lang.Registry) context.Context {
	return context.WithValue(ctx, registryKey{}, reg)
}

func registryFrom(ctx context.Context) (*lang.Registry, error) {
	reg, ok := ctx.Value(registryKey{}).(*lang.Registry)
	if !ok || reg == nil {
		return nil, ErrNoRegistry
	}

	return reg, nil
}

// WithInput returns a new context.Context whose commands read "-" from r
// instead of [os.Stdin].
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithOutput returns a new context.Context whose commands write their
// results to w instead of [os.Stdout].
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	return os.Stdout
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// source is one call document to check.
type source struct {
	// name is reported with diagnostics; empty for stdin.
	name string
	r    io.Reader
}

// openSources opens the call documents named by paths, in order.
// An empty list or "-" reads stdin; stdin is read at most once. Paths that
// refer to an already opened file (through symlinks or relative paths) are
// skipped.
//
// The returned close function closes every opened file.
func openSources(
	paths []string,
	stdin io.Reader,
) (srcs []source, closeAll func(), err error) {
	var (
		files    []*os.File
		seen     []os.FileInfo
		hasStdin bool
	)

	closeAll = func() {
		for _, f := range files {
			_ = f.Close()
		}
	}

	if len(paths) == 0 {
		paths = []string{stdinSource}
	}

	for _, path := range paths {
		if path == stdinSource {
			if !hasStdin {
				hasStdin = true

				srcs = append(srcs, source{r: stdin})
			}

			continue
		}

		info, err := os.Stat(path)
		if err != nil {
			closeAll()

			return nil, nil, ErrOpenSource.With(slog.String("file", path)).Wrap(err)
		}

		if isSeen(seen, info) {
			continue
		}

		f, err := os.Open(path)
		if err != nil {
			closeAll()

			return nil, nil, ErrOpenSource.With(slog.String("file", path)).Wrap(err)
		}

		seen = append(seen, info)
		files = append(files, f)
		srcs = append(srcs, source{name: path, r: f})
	}

	return srcs, closeAll, nil
}

func isSeen(seen []os.FileInfo, info os.FileInfo) bool {
	for _, s := range seen {
		if os.SameFile(s, info) {
			return true
		}
	}

	return false
}
