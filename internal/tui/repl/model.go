// Package repl implements the SmartCalc interactive REPL as a bubbletea
// program, grounded on the teacher's cmd/calcmark/tui/repl.Model: a
// scrolling input/output history list backed by bubbles/textinput.
package repl

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	smartcalc "github.com/smartcalc/go-smartcalc"
	coreconfig "github.com/smartcalc/go-smartcalc/config"
	"github.com/smartcalc/go-smartcalc/internal/config"
)

type historyEntry struct {
	Input   string
	Output  string
	IsError bool
}

// Model is the REPL's bubbletea state. Unlike a single execute() call,
// the REPL keeps every submitted line and re-runs the whole buffer
// through smartcalc.Execute on each submission, since a Session only
// lives for one Execute call (spec.md §4.7) — this re-evaluates earlier
// lines too, but keeps variable state correct without reaching into
// Session internals.
type Model struct {
	language string
	cfg      *coreconfig.Config

	lines         []string
	input         textinput.Model
	history       []string
	outputHistory []historyEntry
	historyIdx    int

	width, height int
	quitting      bool

	styles styles
}

type styles struct {
	primary lipgloss.Style
	accent  lipgloss.Style
	errStyl lipgloss.Style
	muted   lipgloss.Style
	output  lipgloss.Style
}

func buildStyles(theme config.ThemeConfig) styles {
	return styles{
		primary: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Primary)).Bold(true),
		accent:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Accent)),
		errStyl: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Error)),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)),
		output:  lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Output)),
	}
}

// New creates a fresh REPL model for the given language and CLI-layer
// config, from which it builds the core config.
func New(language string, cliCfg *config.Config) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "e.g. $25/hour * 14 hours of work"
	ti.Focus()
	ti.CharLimit = 400
	ti.Width = 70

	return Model{
		language:      language,
		cfg:           cliCfg.CoreConfig(),
		input:         ti,
		outputHistory: []historyEntry{},
		historyIdx:    -1,
		width:         80,
		height:        24,
		styles:        buildStyles(cliCfg.TUI.Theme),
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = m.width - 6
	}

	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyCtrlD:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyUp:
		return m.handleHistoryUp(), nil
	case tea.KeyDown:
		return m.handleHistoryDown(), nil
	case tea.KeyEnter:
		return m.handleEnter(), nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleHistoryUp() Model {
	if len(m.history) == 0 {
		return m
	}
	if m.historyIdx == -1 {
		m.historyIdx = len(m.history) - 1
	} else if m.historyIdx > 0 {
		m.historyIdx--
	}
	m.input.SetValue(m.history[m.historyIdx])
	return m
}

func (m Model) handleHistoryDown() Model {
	if m.historyIdx == -1 {
		return m
	}
	m.historyIdx++
	if m.historyIdx >= len(m.history) {
		m.historyIdx = -1
		m.input.SetValue("")
	} else {
		m.input.SetValue(m.history[m.historyIdx])
	}
	return m
}

func (m Model) handleEnter() Model {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.historyIdx = -1
	if line == "" {
		return m
	}
	if line == ":quit" || line == ":q" {
		m.quitting = true
		return m
	}

	m.history = append(m.history, line)
	m.lines = append(m.lines, line)

	results := smartcalc.Execute(m.language, strings.Join(m.lines, "\n"), m.cfg)
	last := results[len(results)-1]

	entry := historyEntry{Input: line}
	if last.Err != nil {
		entry.IsError = true
		entry.Output = last.Err.Error()
	} else if last.Value != nil {
		entry.Output = last.Value.String()
	}
	m.outputHistory = append(m.outputHistory, entry)
	return m
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.primary.Render("SmartCalc REPL") + "\n")
	b.WriteString(m.styles.muted.Render("Enter an expression; :quit to exit") + "\n\n")

	for _, entry := range m.outputHistory {
		b.WriteString(fmt.Sprintf("%s %s\n", m.styles.accent.Render(">"), truncateToWidth(entry.Input, m.width-2)))
		if entry.IsError {
			b.WriteString("  " + m.styles.errStyl.Render(entry.Output) + "\n")
		} else if entry.Output != "" {
			b.WriteString("  " + m.styles.output.Render("= "+entry.Output) + "\n")
		}
	}

	b.WriteString("\n" + m.input.View() + "\n")
	return b.String()
}

// truncateToWidth trims s to fit within width terminal columns, measured by
// display width rather than rune count, so wide (CJK) or zero-width
// characters in a submitted line don't desync the REPL's column alignment.
func truncateToWidth(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
