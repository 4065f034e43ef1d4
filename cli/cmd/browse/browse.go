// Package browse implements an interactive, fuzzy-filtered browser over
// function signatures.
package browse

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/callcheck/lang"
	"github.com/ardnew/callcheck/log"
)

const (
	prompt       = "❯ "
	defaultWidth = 80
	// listHeight is the number of matches shown at once.
	listHeight = 10
)

var (
	promptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	nameStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	matchStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	signatureStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	paramStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// Option configures the browser program.
type Option func(*[]tea.ProgramOption)

// WithInput sets the terminal input of the browser.
func WithInput(r io.Reader) Option {
	return func(opts *[]tea.ProgramOption) {
		*opts = append(*opts, tea.WithInput(r))
	}
}

// WithOutput sets the terminal output of the browser.
func WithOutput(w io.Writer) Option {
	return func(opts *[]tea.ProgramOption) {
		*opts = append(*opts, tea.WithOutput(w))
	}
}

// Run opens the browser over sigs with the filter preset to pattern and
// blocks until the user quits. It returns the signature chosen with Enter,
// or nil when the user quit without choosing.
func Run(
	ctx context.Context,
	sigs []*lang.FunctionSignature,
	pattern string,
	opts ...Option,
) (*lang.FunctionSignature, error) {
	log.TraceContext(ctx, "browse start",
		slog.Int("signatures", len(sigs)),
		slog.String("pattern", pattern),
	)

	progOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	for _, opt := range opts {
		opt(&progOpts)
	}

	final, err := tea.NewProgram(newModel(sigs, pattern), progOpts...).Run()
	if err != nil {
		return nil, err
	}

	m, ok := final.(model)
	if !ok {
		return nil, nil
	}

	return m.chosen, nil
}

// model is the Bubble Tea model of the browser.
type model struct {
	input   textinput.Model
	all     []*lang.FunctionSignature
	matches []*lang.FunctionSignature
	marks   [][]int // matched name indexes per match
	cursor  int     // index into matches
	offset  int     // first visible match
	width   int
	chosen  *lang.FunctionSignature
	done    bool
}

func newModel(sigs []*lang.FunctionSignature, pattern string) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Placeholder = "filter functions"
	ti.SetValue(pattern)
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	m := model{input: ti, all: sigs, width: defaultWidth}
	m.refresh()

	return m
}

// refresh recomputes the matches for the current filter text.
func (m *model) refresh() {
	m.matches, m.marks = Filter(m.all, m.input.Value())
	m.cursor = 0
	m.offset = 0
}

// selected returns the highlighted signature, or nil without matches.
func (m model) selected() *lang.FunctionSignature {
	if m.cursor < len(m.matches) {
		return m.matches[m.cursor]
	}

	return nil
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.done = true

		return m, tea.Quit

	case tea.KeyEnter:
		m.chosen = m.selected()
		m.done = true

		return m, tea.Quit

	case tea.KeyUp, tea.KeyCtrlP, tea.KeyShiftTab:
		m.move(-1)

		return m, nil

	case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
		m.move(1)

		return m, nil
	}

	before := m.input.Value()

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	if m.input.Value() != before {
		m.refresh()
	}

	return m, cmd
}

// move shifts the cursor by delta, wrapping around, and scrolls the visible
// window to keep the cursor in view.
func (m *model) move(delta int) {
	n := len(m.matches)
	if n == 0 {
		return
	}

	m.cursor = (m.cursor + delta + n) % n

	switch {
	case m.cursor < m.offset:
		m.offset = m.cursor
	case m.cursor >= m.offset+listHeight:
		m.offset = m.cursor - listHeight + 1
	}
}

func (m model) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.matches) == 0 {
		b.WriteString(hintStyle.Render("no matching functions"))
		b.WriteString("\n")

		return b.String()
	}

	end := min(m.offset+listHeight, len(m.matches))

	for i := m.offset; i < end; i++ {
		line := highlight(m.matches[i].Name, m.marks[i])
		if i == m.cursor {
			line = selectedStyle.Render(m.matches[i].Name)
		}

		b.WriteString("  ")
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString(hintStyle.Render(
		fmt.Sprintf("%d/%d  ↑/↓ move  enter choose  esc quit",
			m.cursor+1, len(m.matches)),
	))
	b.WriteString("\n\n")
	b.WriteString(Describe(m.selected()))

	return b.String()
}

// highlight renders name with the characters at idx emphasized.
func highlight(name string, idx []int) string {
	if len(idx) == 0 {
		return nameStyle.Render(name)
	}

	var b strings.Builder

	for i, r := range name {
		if slices.Contains(idx, i) {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(nameStyle.Render(string(r)))
		}
	}

	return b.String()
}

// Describe renders a signature with its documentation and one line per
// parameter.
func Describe(sig *lang.FunctionSignature) string {
	if sig == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(signatureStyle.Render(sig.String()))
	b.WriteString("\n")

	if sig.Doc != "" {
		b.WriteString("  ")
		b.WriteString(sig.Doc)
		b.WriteString("\n")
	}

	for _, p := range sig.Params {
		var flags []string

		if p.Required {
			flags = append(flags, "required")
		}

		if p.Named {
			flags = append(flags, "named")
		}

		line := "  " + paramStyle.Render(p.Name) + "  " + p.Noun()
		if len(flags) > 0 {
			line += hintStyle.Render(" (" + strings.Join(flags, ", ") + ")")
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
