package lang

import (
	"context"
	"io"
	"log/slog"

	"github.com/goccy/go-yaml"
)

// documentNode is the serialized form of a [Document]. JSON input is
// accepted as well, being a subset of YAML.
//
//	file: chapter.typ
//	calls:
//	  - name: rgb
//	    name_span: 4:22-4:25
//	    span: 4:21-4:38
//	    args:
//	      - value: -30
//	        span: 4:26-4:29
//	      - name: alpha
//	        value: "#ff000080"
//	        kind: color
//	        span: 4:31-4:40
type documentNode struct {
	File   string     `yaml:"file,omitempty"`
	Source string     `yaml:"source,omitempty"`
	Calls  []callNode `yaml:"calls"`
}

type callNode struct {
	Name     string    `yaml:"name"`
	NameSpan string    `yaml:"name_span,omitempty"`
	Span     string    `yaml:"span"`
	Args     []argNode `yaml:"args,omitempty"`
}

type argNode struct {
	Name  string `yaml:"name,omitempty"`
	Kind  string `yaml:"kind,omitempty"`
	Value any    `yaml:"value"`
	Span  string `yaml:"span"`
}

// DecodeDocument reads a serialized call document from r.
// The name is used when the document does not name its own file.
func DecodeDocument(
	ctx context.Context,
	r io.Reader,
	name string,
	opts ...Option,
) (*Document, error) {
	var cfg config

	applyDefaults(&cfg)
	applyOptions(&cfg, opts...)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err).
			With(slog.String("source", name))
	}

	cfg.logger.TraceContext(ctx, "read input",
		slog.String("source", name),
		slog.Int("source_bytes", len(data)),
	)

	var node documentNode

	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, ErrDecode.Wrap(err).
			With(slog.String("source", name))
	}

	doc, err := node.document()
	if err != nil {
		return nil, WrapError(err).
			With(slog.String("source", name))
	}

	if doc.File == "" {
		doc.File = name
	}

	cfg.logger.TraceContext(ctx, "document decoded",
		slog.String("file", doc.File),
		slog.Int("calls", len(doc.Calls)),
	)

	return doc, nil
}

func (n *documentNode) document() (*Document, error) {
	doc := &Document{
		File:   n.File,
		Source: n.Source,
		Calls:  make([]CallExpr, 0, len(n.Calls)),
	}

	for i, cn := range n.Calls {
		call, err := cn.call()
		if err != nil {
			return nil, WrapError(err).With(slog.Int("call", i))
		}

		doc.Calls = append(doc.Calls, call)
	}

	return doc, nil
}

func (n *callNode) call() (CallExpr, error) {
	if n.Name == "" {
		return CallExpr{}, ErrDecode.With(slog.String("issue", "call without name"))
	}

	span, err := ParseSpan(n.Span)
	if err != nil {
		return CallExpr{}, err
	}

	call := CallExpr{
		Name: n.Name,
		Span: span,
		Args: make([]ArgExpr, 0, len(n.Args)),
	}

	if n.NameSpan != "" {
		call.NameSpan, err = ParseSpan(n.NameSpan)
		if err != nil {
			return CallExpr{}, err
		}
	}

	for i, an := range n.Args {
		arg, err := an.arg()
		if err != nil {
			return CallExpr{}, WrapError(err).
				With(slog.String("name", n.Name), slog.Int("arg", i))
		}

		call.Args = append(call.Args, arg)
	}

	return call, nil
}

func (n *argNode) arg() (ArgExpr, error) {
	span, err := ParseSpan(n.Span)
	if err != nil {
		return ArgExpr{}, err
	}

	if n.Value == nil {
		return ArgExpr{}, ErrInvalidValue.
			WithSpan(span).
			With(slog.String("issue", "missing value"))
	}

	value, err := ParseValue(n.Kind, n.Value)
	if err != nil {
		return ArgExpr{}, WrapError(err).WithSpan(span)
	}

	return ArgExpr{Name: n.Name, Value: value, Span: span}, nil
}
