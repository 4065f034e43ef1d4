package lang

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ardnew/mung"
	"github.com/expr-lang/expr"
	"github.com/goccy/go-yaml"
)

// PathEnv names the environment variable holding extra library directories,
// separated by os.PathListSeparator.
const PathEnv = "CALLCHECK_PATH"

// libraryExts are the recognized library file extensions.
var libraryExts = []string{".yaml", ".yml", ".toml", ".json"}

// Library is a declarative set of function signatures loaded from a YAML,
// TOML or JSON file.
//
//	functions:
//	  - name: gray
//	    doc: Create a gray color.
//	    params:
//	      - name: level
//	        what: gray level
//	        required: true
//	        constraint: {kind: range, min: 0, max: 1}
//	    result: '{"r": level, "g": level, "b": level}'
type Library struct {
	Functions []FunctionDecl `yaml:"functions" toml:"functions"`
}

// FunctionDecl declares one function of a [Library].
type FunctionDecl struct {
	Name   string      `yaml:"name"             toml:"name"`
	Doc    string      `yaml:"doc,omitempty"    toml:"doc"`
	Params []ParamDecl `yaml:"params,omitempty" toml:"params"`
	// Result is an expression over the parameter names computing the call's
	// value. Unbound optional parameters are nil.
	Result string `yaml:"result,omitempty" toml:"result"`
}

// ParamDecl declares one parameter of a [FunctionDecl].
type ParamDecl struct {
	Name       string          `yaml:"name"                 toml:"name"`
	What       string          `yaml:"what,omitempty"       toml:"what"`
	Required   bool            `yaml:"required,omitempty"   toml:"required"`
	Named      bool            `yaml:"named,omitempty"      toml:"named"`
	Constraint *ConstraintDecl `yaml:"constraint,omitempty" toml:"constraint"`
}

// ConstraintDecl declares a [Constraint]. Kind selects which of the other
// fields apply:
//
//	range    Min, Max
//	numeric
//	color
//	string
//	oneof    Options
//	expr     Expr, Message
type ConstraintDecl struct {
	Kind    string   `yaml:"kind"              toml:"kind"`
	Min     *float64 `yaml:"min,omitempty"     toml:"min"`
	Max     *float64 `yaml:"max,omitempty"     toml:"max"`
	Options []string `yaml:"options,omitempty" toml:"options"`
	Expr    string   `yaml:"expr,omitempty"    toml:"expr"`
	Message string   `yaml:"message,omitempty" toml:"message"`
}

// DecodeLibrary reads a library from r. The ext selects the syntax by file
// extension; ".json" is decoded as YAML, of which JSON is a subset.
func DecodeLibrary(r io.Reader, ext string) (*Library, error) {
	var lib Library

	switch strings.ToLower(ext) {
	case ".yaml", ".yml", ".json":
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, ErrReadInput.Wrap(err)
		}

		if err := yaml.Unmarshal(data, &lib); err != nil {
			return nil, ErrLibrary.Wrap(err)
		}

	case ".toml":
		if _, err := toml.NewDecoder(r).Decode(&lib); err != nil {
			return nil, ErrLibrary.Wrap(err)
		}

	default:
		return nil, ErrLibrary.With(slog.String("ext", ext))
	}

	return &lib, nil
}

// Registry compiles every declaration into a new Registry.
func (l *Library) Registry() (*Registry, error) {
	r := NewRegistry()

	for i := range l.Functions {
		sig, err := l.Functions[i].signature()
		if err != nil {
			return nil, WrapError(err).With(slog.Int("function", i))
		}

		r.Register(sig)
	}

	return r, nil
}

func (d *FunctionDecl) signature() (FunctionSignature, error) {
	if d.Name == "" {
		return FunctionSignature{}, ErrLibrary.
			With(slog.String("issue", "function without name"))
	}

	sig := FunctionSignature{
		Name:   d.Name,
		Doc:    d.Doc,
		Params: make([]ParameterSpec, 0, len(d.Params)),
	}

	for _, p := range d.Params {
		if p.Name == "" {
			return FunctionSignature{}, ErrLibrary.
				With(slog.String("name", d.Name), slog.String("issue", "parameter without name"))
		}

		if _, dup := sig.Param(p.Name); dup {
			return FunctionSignature{}, ErrLibrary.
				With(slog.String("name", d.Name), slog.String("param", p.Name), slog.String("issue", "duplicate parameter"))
		}

		c, err := p.Constraint.constraint()
		if err != nil {
			return FunctionSignature{}, WrapError(err).
				With(slog.String("name", d.Name), slog.String("param", p.Name))
		}

		sig.Params = append(sig.Params, ParameterSpec{
			Name:       p.Name,
			What:       p.What,
			Constraint: c,
			Required:   p.Required,
			Named:      p.Named,
		})
	}

	if d.Result != "" {
		eval, err := resultFunc(d.Result)
		if err != nil {
			return FunctionSignature{}, WrapError(err).
				With(slog.String("name", d.Name))
		}

		sig.Eval = eval
	}

	return sig, nil
}

// constraint builds the declared Constraint. A nil declaration accepts any
// value.
func (d *ConstraintDecl) constraint() (Constraint, error) {
	if d == nil {
		return nil, nil //nolint:nilnil
	}

	switch strings.ToLower(d.Kind) {
	case "range":
		if d.Min == nil || d.Max == nil || *d.Max < *d.Min {
			return nil, ErrLibrary.
				With(slog.String("kind", d.Kind), slog.String("issue", "range requires min <= max"))
		}

		return FloatRange{Min: *d.Min, Max: *d.Max}, nil

	case "numeric", "number":
		return AnyNumeric{}, nil

	case "color":
		return ColorLiteral{}, nil

	case "string", "text":
		return Text{}, nil

	case "oneof":
		if len(d.Options) == 0 {
			return nil, ErrLibrary.
				With(slog.String("kind", d.Kind), slog.String("issue", "oneof requires options"))
		}

		return OneOf{Options: slices.Clone(d.Options)}, nil

	case "expr":
		return NewPredicate(d.Expr, d.Message)

	default:
		return nil, ErrUnknownKind.With(slog.String("kind", d.Kind))
	}
}

// resultFunc compiles source into an evaluation function whose environment
// holds the bound arguments by parameter name.
func resultFunc(source string) (EvalFunc, error) {
	program, err := expr.Compile(source, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, ErrExprCompile.Wrap(err).
			With(slog.String("expr", source))
	}

	return func(call *BoundCall) (Value, error) {
		out, err := expr.Run(program, call.Native())
		if err != nil {
			return nil, ErrExprEvaluate.Wrap(err)
		}

		if out == nil {
			return nil, ErrExprEvaluate.
				With(slog.String("issue", "expression yielded nil"))
		}

		return FromNative(out)
	}, nil
}

// LoadLibrary reads and compiles the library file at path.
func LoadLibrary(ctx context.Context, path string, opts ...Option) (*Registry, error) {
	var cfg config

	applyDefaults(&cfg)
	applyOptions(&cfg, opts...)

	f, err := os.Open(path)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", path))
	}
	defer f.Close()

	lib, err := DecodeLibrary(f, filepath.Ext(path))
	if err != nil {
		return nil, WrapError(err).With(slog.String("path", path))
	}

	r, err := lib.Registry()
	if err != nil {
		return nil, WrapError(err).With(slog.String("path", path))
	}

	cfg.logger.DebugContext(ctx, "library loaded",
		slog.String("path", path),
		slog.Int("functions", r.Len()),
	)

	return r, nil
}

// LibraryPath returns the library search path: the given directories
// followed by those listed in [PathEnv]. Duplicates and entries that are
// not existing directories are dropped.
func LibraryPath(dirs ...string) []string {
	// Prefix items are prepended one at a time, so the last one lands first.
	prefix := slices.Clone(dirs)
	slices.Reverse(prefix)

	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv)),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(prefix...),
	).String()

	var path []string

	for _, dir := range filepath.SplitList(joined) {
		if dir != "" && isDir(dir) && !slices.Contains(path, dir) {
			path = append(path, dir)
		}
	}

	return path
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

// LoadLibraries returns the builtin functions extended by every library
// file found in the search path built from dirs (see [LibraryPath]).
//
// A function declared in several libraries keeps the first declaration
// found, searching directories in path order and the files of each
// directory in name order. Library functions replace builtins of the same
// name.
func LoadLibraries(ctx context.Context, dirs []string, opts ...Option) (*Registry, error) {
	path := LibraryPath(dirs...)
	found := NewRegistry()

	for i := len(path) - 1; i >= 0; i-- {
		files, err := libraryFiles(path[i])
		if err != nil {
			return nil, err
		}

		for _, file := range slices.Backward(files) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			lib, err := LoadLibrary(ctx, file, opts...)
			if err != nil {
				return nil, err
			}

			found.Merge(lib)
		}
	}

	r := Builtins()
	r.Merge(found)

	return r, nil
}

// libraryFiles lists the library files directly inside dir in name order.
func libraryFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).With(slog.String("path", dir))
	}

	var files []string

	for _, e := range entries {
		if e.IsDir() || !slices.Contains(libraryExts, strings.ToLower(filepath.Ext(e.Name()))) {
			continue
		}

		files = append(files, filepath.Join(dir, e.Name()))
	}

	slices.Sort(files)

	return files, nil
}
