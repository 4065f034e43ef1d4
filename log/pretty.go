package log

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// prettyStyles colors the keys and values of a pretty log record.
// Styles are bound to a renderer for the handler's writer so that color is
// dropped automatically when the writer is not a terminal.
type prettyStyles struct {
	key      lipgloss.Style
	str      lipgloss.Style
	num      lipgloss.Style
	yes      lipgloss.Style
	no       lipgloss.Style
	time     lipgloss.Style
	duration lipgloss.Style
	levels   map[slog.Level]lipgloss.Style
}

func makePrettyStyles(w io.Writer) *prettyStyles {
	r := lipgloss.NewRenderer(w)
	style := func(color string) lipgloss.Style {
		return r.NewStyle().Foreground(lipgloss.Color(color))
	}

	return &prettyStyles{
		key:      style("8"),
		str:      style("6"),
		num:      style("3"),
		yes:      style("2"),
		no:       style("1"),
		time:     style("4"),
		duration: style("5"),
		levels: map[slog.Level]lipgloss.Style{
			slog.Level(LevelTrace): style("8"),
			slog.Level(LevelDebug): style("4"),
			slog.Level(LevelInfo):  style("2").Bold(true),
			slog.Level(LevelWarn):  style("3").Bold(true),
			slog.Level(LevelError): style("1").Bold(true),
		},
	}
}

// prettyHandler is a colorized [slog.Handler] supporting both [FormatText]
// (one key=value record per line) and [FormatJSON] (one field per line).
type prettyHandler struct {
	opts   slog.HandlerOptions
	layout Format
	styles *prettyStyles
	mu     *sync.Mutex
	w      io.Writer
	groups []string
	attrs  []prettyField
}

// prettyField is an attribute flattened to its dotted key.
type prettyField struct {
	key   string
	value slog.Value
	level bool
}

func newPrettyHandler(
	w io.Writer,
	layout Format,
	opts *slog.HandlerOptions,
) *prettyHandler {
	h := &prettyHandler{
		layout: layout,
		styles: makePrettyStyles(w),
		mu:     &sync.Mutex{},
		w:      w,
	}

	if opts != nil {
		h.opts = *opts
	}

	return h
}

func (h *prettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}

	return level >= minLevel
}

func (h *prettyHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]prettyField, 0, 4+len(h.attrs)+r.NumAttrs())

	if !r.Time.IsZero() {
		fields = h.appendAttr(fields, nil, slog.Time(slog.TimeKey, r.Time), false)
	}

	fields = h.appendAttr(fields, nil, slog.Any(slog.LevelKey, r.Level), true)

	if h.opts.AddSource {
		if src := r.Source(); src != nil {
			fields = h.appendAttr(fields, nil,
				slog.String(slog.SourceKey, fmt.Sprintf("%s:%d", src.File, src.Line)),
				false)
		}
	}

	fields = h.appendAttr(fields, nil, slog.String(slog.MessageKey, r.Message), false)
	fields = append(fields, h.attrs...)

	r.Attrs(func(a slog.Attr) bool {
		fields = h.appendAttr(fields, h.groups, a, false)

		return true
	})

	var buf bytes.Buffer

	switch h.layout {
	case FormatJSON:
		h.writeJSON(&buf, fields)
	default:
		h.writeText(&buf, fields)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.w.Write(buf.Bytes())

	return err
}

func (h *prettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	next := *h
	next.attrs = h.attrs[:len(h.attrs):len(h.attrs)]

	for _, a := range attrs {
		next.attrs = h.appendAttr(next.attrs, h.groups, a, false)
	}

	return &next
}

func (h *prettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	next := *h
	next.groups = append(h.groups[:len(h.groups):len(h.groups)], name)

	return &next
}

// appendAttr resolves a, applies ReplaceAttr and flattens groups into dotted
// keys. Empty attributes and empty groups are dropped.
func (h *prettyHandler) appendAttr(
	fields []prettyField,
	groups []string,
	a slog.Attr,
	level bool,
) []prettyField {
	a.Value = a.Value.Resolve()

	if h.opts.ReplaceAttr != nil && a.Value.Kind() != slog.KindGroup {
		a = h.opts.ReplaceAttr(groups, a)
		a.Value = a.Value.Resolve()
	}

	if a.Equal(slog.Attr{}) {
		return fields
	}

	if a.Value.Kind() == slog.KindGroup {
		members := a.Value.Group()
		if len(members) == 0 {
			return fields
		}

		if a.Key != "" {
			groups = append(groups[:len(groups):len(groups)], a.Key)
		}

		for _, m := range members {
			fields = h.appendAttr(fields, groups, m, false)
		}

		return fields
	}

	key := a.Key
	if len(groups) > 0 {
		key = strings.Join(groups, ".") + "." + key
	}

	return append(fields, prettyField{key: key, value: a.Value, level: level})
}

func (h *prettyHandler) writeText(buf *bytes.Buffer, fields []prettyField) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(' ')
		}

		buf.WriteString(h.styles.key.Render(f.key))
		buf.WriteByte('=')
		buf.WriteString(h.renderValue(f, false))
	}

	buf.WriteByte('\n')
}

func (h *prettyHandler) writeJSON(buf *bytes.Buffer, fields []prettyField) {
	buf.WriteString("{\n")

	for i, f := range fields {
		buf.WriteString("  ")
		buf.WriteString(h.styles.key.Render(strconv.Quote(f.key)))
		buf.WriteString(": ")
		buf.WriteString(h.renderValue(f, true))

		if i < len(fields)-1 {
			buf.WriteByte(',')
		}

		buf.WriteByte('\n')
	}

	buf.WriteString("}\n")
}

// renderValue formats and colors a single value. Strings are quoted only in
// the JSON layout.
func (h *prettyHandler) renderValue(f prettyField, quote bool) string {
	str := func(s string) string {
		if quote {
			s = strconv.Quote(s)
		}

		return s
	}

	v := f.value

	switch v.Kind() {
	case slog.KindString:
		if f.level {
			return h.levelStyle(v.String()).Render(str(v.String()))
		}

		return h.styles.str.Render(str(v.String()))

	case slog.KindInt64:
		return h.styles.num.Render(strconv.FormatInt(v.Int64(), 10))

	case slog.KindUint64:
		return h.styles.num.Render(strconv.FormatUint(v.Uint64(), 10))

	case slog.KindFloat64:
		return h.styles.num.Render(strconv.FormatFloat(v.Float64(), 'g', -1, 64))

	case slog.KindBool:
		if v.Bool() {
			return h.styles.yes.Render("true")
		}

		return h.styles.no.Render("false")

	case slog.KindTime:
		return h.styles.time.Render(str(v.Time().Format(time.RFC3339)))

	case slog.KindDuration:
		return h.styles.duration.Render(str(v.Duration().String()))

	default:
		if level, ok := v.Any().(slog.Level); ok {
			label := Level(level).label()

			return h.levelStyle(label).Render(str(label))
		}

		if v.Any() == nil {
			return h.styles.str.Render("null")
		}

		return h.styles.str.Render(str(fmt.Sprint(v.Any())))
	}
}

// levelStyle returns the style of the level with the given label.
func (h *prettyHandler) levelStyle(label string) lipgloss.Style {
	level := ParseLevel(label)
	if style, ok := h.styles.levels[slog.Level(level)]; ok {
		return style
	}

	return h.styles.str
}
