package browse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ntro/log"
)

const (
	filterPrompt  = "filter ➜ "
	defaultWidth  = 80
	defaultHeight = 24
	// chrome is the number of lines of the view not used by the list.
	chrome = 6
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	keyStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	matchStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	typeStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	publicStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	privateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	selectedMarker = lipgloss.NewStyle().Foreground(lipgloss.Color("4")).Render("▌")
)

// model is the Bubble Tea model of the registry browser.
type model struct {
	ctxFunc   func() context.Context
	logger    log.Logger
	input     textinput.Model
	rows      source
	conflicts []string
	matches   fuzzy.Matches
	cursor    int
	width     int
	height    int
	quitting  bool
}

// Run shows rows in an interactive browser until the user quits or ctx is
// done. conflicts are listed above the rows.
func Run(
	ctx context.Context,
	rows []Row,
	conflicts []string,
	logger log.Logger,
	opts ...tea.ProgramOption,
) error {
	logger.TraceContext(ctx, "browse start",
		slog.Int("rows", len(rows)),
		slog.Int("conflicts", len(conflicts)))

	m := newModel(ctx, rows, conflicts, logger)

	p := tea.NewProgram(m, append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)...)
	_, err := p.Run()

	return err
}

func newModel(
	ctx context.Context,
	rows []Row,
	conflicts []string,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(filterPrompt)
	ti.Placeholder = "type to filter keys"
	ti.Focus()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	m := model{
		ctxFunc:   func() context.Context { return ctx },
		logger:    logger,
		input:     ti,
		rows:      rows,
		conflicts: conflicts,
		width:     defaultWidth,
		height:    defaultHeight,
	}
	m.refresh()

	return m
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
		m.height = msg.Height
		m.input.Width = msg.Width - lipgloss.Width(filterPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "browse keypress",
		slog.String("key", msg.String()))

	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quitting = true

		return m, tea.Quit

	case tea.KeyEsc:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.refresh()

		return m, nil

	case tea.KeyUp, tea.KeyCtrlP, tea.KeyShiftTab:
		if m.cursor > 0 {
			m.cursor--
		}

		return m, nil

	case tea.KeyDown, tea.KeyCtrlN, tea.KeyTab:
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}

		return m, nil

	case tea.KeyHome:
		m.cursor = 0

		return m, nil

	case tea.KeyEnd:
		m.cursor = max(len(m.matches)-1, 0)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)
	m.refresh()

	return m, cmd
}

// refresh recomputes the matches of the filter and clamps the cursor.
func (m *model) refresh() {
	pattern := strings.TrimSpace(m.input.Value())

	if pattern == "" {
		m.matches = make(fuzzy.Matches, len(m.rows))
		for i, r := range m.rows {
			m.matches[i] = fuzzy.Match{Str: r.Key, Index: i}
		}
	} else {
		m.matches = fuzzy.FindFrom(pattern, m.rows)
	}

	m.cursor = min(m.cursor, max(len(m.matches)-1, 0))
}

// selected returns the row under the cursor.
func (m model) selected() (Row, bool) {
	if m.cursor >= len(m.matches) {
		return Row{}, false
	}

	return m.rows[m.matches[m.cursor].Index], true
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	for _, c := range m.conflicts {
		b.WriteString(errorStyle.Render("✗ " + c))
		b.WriteString("\n")
	}

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(hintStyle.Render(fmt.Sprintf("%d/%d", len(m.matches), len(m.rows))))
	b.WriteString("\n")

	first, last := m.window()
	for i := first; i < last; i++ {
		b.WriteString(m.renderRow(m.matches[i], i == m.cursor))
		b.WriteString("\n")
	}

	if r, ok := m.selected(); ok {
		b.WriteString("\n")
		b.WriteString(renderDetail(r))
	}

	return b.String()
}

// window returns the range of matches that fits the terminal, keeping the
// cursor visible.
func (m model) window() (first, last int) {
	size := max(m.height-chrome-len(m.conflicts), 1)

	first = max(m.cursor-size+1, 0)
	last = min(first+size, len(m.matches))

	return first, last
}

func (m model) renderRow(match fuzzy.Match, selected bool) string {
	r := m.rows[match.Index]

	marker := " "
	if selected {
		marker = selectedMarker
	}

	class := privateStyle.Render("private")
	if r.Public {
		class = publicStyle.Render("public ")
	}

	hint := hintStyle.Render("string")
	if r.Hint != "" {
		hint = typeStyle.Render(r.Hint)
	}

	line := marker + " " + class + " " + renderKey(match) + "  " + hint
	if r.Conflict != "" {
		line += " " + errorStyle.Render("✗")
	}

	return line
}

// renderKey renders a key with its matched characters highlighted.
func renderKey(match fuzzy.Match) string {
	matchSet := make(map[int]bool, len(match.MatchedIndexes))
	for _, idx := range match.MatchedIndexes {
		matchSet[idx] = true
	}

	var b strings.Builder

	for i, r := range match.Str {
		if matchSet[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(keyStyle.Render(string(r)))
		}
	}

	return b.String()
}

func renderDetail(r Row) string {
	var b strings.Builder

	field := func(name, value string) {
		b.WriteString(hintStyle.Render(fmt.Sprintf("%-9s", name)))
		b.WriteString(" ")
		b.WriteString(value)
		b.WriteString("\n")
	}

	field("declared", r.Declared)

	if r.Hint != "" {
		field("type", typeStyle.Render(r.Hint)+hintStyle.Render(" ("+r.HintSource+")"))
	}

	if r.Conflict != "" {
		field("conflict", errorStyle.Render(r.Conflict))
	}

	return b.String()
}
