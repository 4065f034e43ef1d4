package lang

import (
	"errors"
	"strings"
	"testing"
)

const chapterYAML = `
file: chapter.typ
source: |
  #set text(fill: red)
  Some [rgb -30, 15.5, 0.5] text.
calls:
  - name: rgb
    name_span: "2:7-2:10"
    span: "2:6-2:26"
    args:
      - value: -30
        span: "2:11-2:14"
      - value: 15.5
        span: "2:16-2:20"
      - value: 0.5
        span: "2:22-2:25"
  - name: underline
    span: "3:1-3:34"
    args:
      - value: "#ff000080"
        kind: color
        span: "3:12-3:22"
      - name: offset
        value: 2
        kind: float
        span: "3:24-3:33"
`

func TestDecodeDocument(t *testing.T) {
	doc, err := DecodeDocument(t.Context(), strings.NewReader(chapterYAML), "fallback")
	if err != nil {
		t.Fatal(err)
	}

	if doc.File != "chapter.typ" {
		t.Errorf("File = %q", doc.File)
	}

	if !strings.HasPrefix(doc.Source, "#set text") {
		t.Errorf("Source = %q", doc.Source)
	}

	if len(doc.Calls) != 2 {
		t.Fatalf("got %d calls, want 2", len(doc.Calls))
	}

	rgb := doc.Calls[0]

	if rgb.String() != "[rgb -30, 15.5, 0.5]" {
		t.Errorf("call = %s", rgb.String())
	}

	if rgb.NameSpan != MakeSpan(2, 7, 2, 10) || rgb.Span != MakeSpan(2, 6, 2, 26) {
		t.Errorf("spans = %s, %s", rgb.NameSpan, rgb.Span)
	}

	if rgb.Args[0].Value != Int(-30) || rgb.Args[1].Value != Float(15.5) {
		t.Errorf("values = %v, %v", rgb.Args[0].Value, rgb.Args[1].Value)
	}

	line := doc.Calls[1]

	if !line.NameSpan.IsZero() {
		t.Errorf("NameSpan = %s, want zero", line.NameSpan)
	}

	if line.Args[0].Value != (Color{255, 0, 0, 128}) {
		t.Errorf("stroke = %v", line.Args[0].Value)
	}

	if line.Args[1].Name != "offset" || line.Args[1].Value != Float(2) {
		t.Errorf("offset = %v", line.Args[1])
	}
}

func TestDecodeDocument_JSON(t *testing.T) {
	const input = `{"calls": [{"name": "rgb", "span": "1:1-1:6"}]}`

	doc, err := DecodeDocument(t.Context(), strings.NewReader(input), "stdin")
	if err != nil {
		t.Fatal(err)
	}

	if doc.File != "stdin" || len(doc.Calls) != 1 || doc.Calls[0].Name != "rgb" {
		t.Errorf("document = %+v", doc)
	}
}

func TestDecodeDocument_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "syntax", input: `calls: [`, want: ErrDecode},
		{name: "shape", input: `calls: 3`, want: ErrDecode},
		{name: "no name", input: `calls: [{span: "1:1-1:2"}]`, want: ErrDecode},
		{name: "bad call span", input: `calls: [{name: rgb, span: "nowhere"}]`, want: ErrInvalidSpan},
		{
			name:  "bad arg span",
			input: `calls: [{name: rgb, span: "1:1-1:9", args: [{value: 1, span: "1:5-1:2"}]}]`,
			want:  ErrInvalidSpan,
		},
		{
			name:  "no value",
			input: `calls: [{name: rgb, span: "1:1-1:9", args: [{span: "1:5-1:6"}]}]`,
			want:  ErrInvalidValue,
		},
		{
			name:  "bad kind",
			input: `calls: [{name: rgb, span: "1:1-1:9", args: [{value: 1, kind: length, span: "1:5-1:6"}]}]`,
			want:  ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDocument(t.Context(), strings.NewReader(tt.input), "test")
			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestDecodeDocument_Check(t *testing.T) {
	doc, err := DecodeDocument(t.Context(), strings.NewReader(chapterYAML), "")
	if err != nil {
		t.Fatal(err)
	}

	report, err := NewBinder(Builtins()).Check(t.Context(), doc)
	if err != nil {
		t.Fatal(err)
	}

	want := "2:11-2:14 should be between 0.0 and 1.0\n2:16-2:20 should be between 0.0 and 1.0"
	if got := report.Diagnostics().String(); got != want {
		t.Errorf("diagnostics =\n%s\nwant\n%s", got, want)
	}
}
