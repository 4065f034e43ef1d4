package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-yaml"
	"github.com/vmihailenco/msgpack/v5"
)

// Format selects how diagnostics are written.
type Format string

// Output formats.
const (
	FormatText    Format = "text"
	FormatPretty  Format = "pretty"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
	FormatMsgpack Format = "msgpack"
)

// Formats returns the names of all output formats.
func Formats() []string {
	return []string{
		string(FormatText),
		string(FormatPretty),
		string(FormatJSON),
		string(FormatYAML),
		string(FormatMsgpack),
	}
}

// ParseFormat returns the Format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))

	switch f {
	case FormatText, FormatPretty, FormatJSON, FormatYAML, FormatMsgpack:
		return f, nil
	default:
		return "", ErrInvalidFormat.With(slog.String("format", s))
	}
}

// Record is the serialized form of a [Diagnostic].
type Record struct {
	File    string `json:"file,omitempty" yaml:"file,omitempty" msgpack:"file,omitempty"`
	Span    string `json:"span"           yaml:"span"           msgpack:"span"`
	Kind    string `json:"kind"           yaml:"kind"           msgpack:"kind"`
	Message string `json:"message"        yaml:"message"        msgpack:"message"`
	Hint    string `json:"hint,omitempty" yaml:"hint,omitempty" msgpack:"hint,omitempty"`
}

// Records flattens the diagnostics of the given reports, in order.
func Records(reports ...*Report) []Record {
	records := []Record{}

	for _, r := range reports {
		var file string
		if r.Document != nil {
			file = r.Document.File
		}

		for _, d := range r.Diagnostics() {
			records = append(records, Record{
				File:    file,
				Span:    d.Span.String(),
				Kind:    d.Kind.String(),
				Message: d.Message,
				Hint:    d.Hint,
			})
		}
	}

	return records
}

// WriteDiagnostics writes the diagnostics of every report to w in the given
// format. Structured formats write a single array covering all reports.
func WriteDiagnostics(
	ctx context.Context,
	w io.Writer,
	format Format,
	reports ...*Report,
) error {
	switch format {
	case FormatText, "":
		return writeText(w, reports)

	case FormatPretty:
		return writePretty(w, reports)

	case FormatJSON:
		data, err := json.MarshalIndent(Records(reports...), "", "  ")
		if err != nil {
			return err
		}

		_, err = fmt.Fprintln(w, string(data))

		return err

	case FormatYAML:
		data, err := yaml.MarshalContext(ctx, Records(reports...), yaml.Indent(2))
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err

	case FormatMsgpack:
		return msgpack.NewEncoder(w).Encode(Records(reports...))

	default:
		return ErrInvalidFormat.With(slog.String("format", string(format)))
	}
}

// writeText writes one "span message" line per diagnostic, prefixed with
// "file:" when the document names its file.
func writeText(w io.Writer, reports []*Report) error {
	for _, r := range reports {
		prefix := ""
		if r.Document != nil && r.Document.File != "" {
			prefix = r.Document.File + ":"
		}

		for _, d := range r.Diagnostics() {
			if _, err := fmt.Fprintln(w, prefix+d.String()); err != nil {
				return err
			}
		}
	}

	return nil
}

// Styles for the pretty format.
var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	markerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

func writePretty(w io.Writer, reports []*Report) error {
	var b strings.Builder

	for _, r := range reports {
		var lines []string

		file := "<input>"

		if r.Document != nil {
			if r.Document.File != "" {
				file = r.Document.File
			}

			if r.Document.Source != "" {
				lines = strings.Split(r.Document.Source, "\n")
			}
		}

		for _, d := range r.Diagnostics() {
			prettyDiagnostic(&b, file, lines, d)
		}
	}

	_, err := io.WriteString(w, b.String())

	return err
}

// prettyDiagnostic renders d with the offending source line, when known,
// and a marker underlining the span:
//
//	error[unknown-function]: unknown function
//	  --> chapter.typ:4:22
//	   |
//	 4 | text [rgbb 1, 0, 0]
//	   |       ^^^^
//	   = hint: did you mean "rgb"?
func prettyDiagnostic(b *strings.Builder, file string, lines []string, d Diagnostic) {
	b.WriteString(errorStyle.Render("error"))
	b.WriteString(kindStyle.Render("[" + d.Kind.String() + "]"))
	b.WriteString(": ")
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(d.Message))
	b.WriteByte('\n')

	start := d.Span.Start
	lineNum := strconv.Itoa(start.Line)
	pad := strings.Repeat(" ", len(lineNum))

	b.WriteString(pad)
	b.WriteString(gutterStyle.Render("--> "))
	b.WriteString(file + ":" + start.String())
	b.WriteByte('\n')

	if start.Line > 0 && start.Line <= len(lines) {
		line := lines[start.Line-1]

		b.WriteString(pad + " " + gutterStyle.Render("|") + "\n")
		b.WriteString(gutterStyle.Render(lineNum+" | ") + line + "\n")

		col := min(max(start.Column-1, 0), len(line))

		width := 1
		if d.Span.End.Line == start.Line {
			width = max(d.Span.End.Column-start.Column, 1)
		} else if n := len(line) - col; n > 0 {
			width = n
		}

		b.WriteString(pad + " " + gutterStyle.Render("|") + " ")
		b.WriteString(strings.Repeat(" ", col))
		b.WriteString(markerStyle.Render(strings.Repeat("^", width)))
		b.WriteByte('\n')
	}

	if d.Hint != "" {
		b.WriteString(pad + " " + hintStyle.Render("= hint: "+d.Hint) + "\n")
	}

	b.WriteByte('\n')
}
