// ============================================================================
// mpnum - Multi-precision numeric contexts
// ============================================================================
//
// Package:     tui
// Description: Bubbletea model for the interactive mpcalc session
// Author:      Mike Stoffels
// Created:     2026-10-19
// License:     MIT
// ============================================================================

// Package tui is the full-screen mpcalc REPL. The transcript scrolls in a
// viewport above a single-line input; the status bar shows the active
// context of the session.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mpnum/internal/calc"
	"github.com/msto63/mpnum/pkg/core/version"
)

// Prompt precedes every input line
const Prompt = "mp> "

const (
	headerHeight = 1 // title
	footerHeight = 3 // input, status bar, help
)

// entry is one evaluated line of the transcript
type entry struct {
	input   string
	output  string
	failed  bool
	command bool
}

// Model is the Bubbletea model of an mpcalc session
type Model struct {
	// State
	width    int
	height   int
	ready    bool
	quitting bool

	// Components
	input    textinput.Model
	viewport viewport.Model

	session *calc.Session
	entries []entry

	// Input history
	history []string
	histIdx int    // -1 while editing a new line
	draft   string // new line saved while browsing the history
}

// New creates a model evaluating lines in s. history seeds the recall
// buffer, oldest first.
func New(s *calc.Session, history []string) Model {
	ti := textinput.New()
	ti.Prompt = Prompt
	ti.PromptStyle = PromptStyle
	ti.Placeholder = "expression or :command"
	ti.CharLimit = 4096
	ti.ShowSuggestions = true
	ti.SetSuggestions(calc.Commands)
	ti.Focus()

	return Model{
		input:   ti,
		session: s,
		history: append([]string(nil), history...),
		histIdx: -1,
	}
}

// History returns the entered lines, oldest first
func (m Model) History() []string {
	return append([]string(nil), m.history...)
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		h := msg.Height - headerHeight - footerHeight
		if h < 1 {
			h = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, h)
			m.viewport.YPosition = headerHeight
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = h
		}
		m.input.Width = msg.Width - len(Prompt) - 1
		m.updateViewportContent()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true
			return m, tea.Quit
		}

	case tea.KeyEnter:
		return m.submit()

	case tea.KeyUp:
		m.recall(-1)
		return m, nil

	case tea.KeyDown:
		m.recall(1)
		return m, nil

	case tea.KeyCtrlL:
		m.entries = nil
		m.updateViewportContent()
		return m, nil

	case tea.KeyPgUp, tea.KeyPgDown:
		if !m.ready {
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit evaluates the input line and appends it to the transcript
func (m Model) submit() (tea.Model, tea.Cmd) {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	m.histIdx = -1
	m.draft = ""
	if line == "" {
		return m, nil
	}
	if n := len(m.history); n == 0 || m.history[n-1] != line {
		m.history = append(m.history, line)
	}
	if calc.IsQuit(line) {
		m.quitting = true
		return m, tea.Quit
	}

	e := entry{input: line, command: strings.HasPrefix(line, ":")}
	out, err := m.session.Exec(line)
	if err != nil {
		e.output, e.failed = "error: "+err.Error(), true
	} else {
		e.output = out
	}
	m.entries = append(m.entries, e)
	m.updateViewportContent()
	return m, nil
}

// recall moves through the history; step -1 is older, +1 newer
func (m *Model) recall(step int) {
	if len(m.history) == 0 {
		return
	}
	if m.histIdx == -1 {
		if step > 0 {
			return
		}
		m.draft = m.input.Value()
		m.histIdx = len(m.history)
	}
	m.histIdx += step
	switch {
	case m.histIdx < 0:
		m.histIdx = 0
	case m.histIdx >= len(m.history):
		m.histIdx = -1
		m.input.SetValue(m.draft)
		m.input.CursorEnd()
		return
	}
	m.input.SetValue(m.history[m.histIdx])
	m.input.CursorEnd()
}

// Transcript returns the unstyled transcript
func (m Model) Transcript() string {
	var b strings.Builder
	for _, e := range m.entries {
		b.WriteString(Prompt + e.input + "\n")
		if e.output != "" {
			b.WriteString(e.output + "\n")
		}
	}
	return b.String()
}

// updateViewportContent renders the transcript into the viewport
func (m *Model) updateViewportContent() {
	if !m.ready {
		return
	}
	var b strings.Builder
	for _, e := range m.entries {
		b.WriteString(PromptStyle.Render(Prompt) + e.input + "\n")
		switch {
		case e.output == "":
		case e.failed:
			b.WriteString(ErrorStyle.Render(e.output) + "\n")
		case e.command:
			b.WriteString(e.output + "\n")
		default:
			b.WriteString(ResultStyle.Render(e.output) + "\n")
		}
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

// View renders the screen
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Starting mpcalc..."
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render(fmt.Sprintf("mpcalc %s", version.Mpcalc)))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("enter evaluate • ↑/↓ history • tab complete • pgup/pgdn scroll • ctrl+l clear • esc quit"))
	return b.String()
}

// renderStatusBar summarizes the active context
func (m Model) renderStatusBar() string {
	ctx := m.session.Context()
	status := fmt.Sprintf("precision %d │ %s │ emin %d │ emax %d", ctx.Precision(), ctx.Round(), ctx.Emin(), ctx.Emax())
	if flags := ctx.Flags(); flags != 0 {
		status += " │ " + FlagStyle.Render("flags "+flags.String())
	}
	return StatusBarStyle.Width(m.width).Render(status)
}
