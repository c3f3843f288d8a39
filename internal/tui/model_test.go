package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/msto63/mpnum/internal/calc"
	"github.com/msto63/mpnum/pkg/core/config"
	"github.com/msto63/mpnum/pkg/kernel"
	"github.com/msto63/mpnum/pkg/precision"
)

func newModel(t *testing.T, history ...string) Model {
	t.Helper()
	s, err := calc.NewSession(precision.NewStore(kernel.NewBig()), config.Default(), "", nil)
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	t.Cleanup(s.Close)
	m, _ := New(s, history).Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return m.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func enter(t *testing.T, m Model, line string) (Model, tea.Cmd) {
	t.Helper()
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(line)})
	return send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModelEvaluates(t *testing.T) {
	m := newModel(t)
	m, _ = enter(t, m, "1 + 2")
	m, _ = enter(t, m, "1 +")

	want := Prompt + "1 + 2\n3\n" + Prompt + "1 +\n"
	got := m.Transcript()
	if !strings.HasPrefix(got, want) {
		t.Errorf("Transcript() = %q, want prefix %q", got, want)
	}
	if !strings.Contains(got, "error: ") {
		t.Errorf("Transcript() = %q, want an error line", got)
	}
	if m.input.Value() != "" {
		t.Errorf("input after enter = %q", m.input.Value())
	}
}

func TestModelHistoryRecall(t *testing.T) {
	m := newModel(t, "2 * 3")
	m, _ = enter(t, m, "4 - 1")
	m, _ = enter(t, m, "4 - 1")

	if got := m.History(); len(got) != 2 || got[0] != "2 * 3" || got[1] != "4 - 1" {
		t.Fatalf("History() = %q", got)
	}

	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("7")})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "4 - 1" {
		t.Errorf("after up = %q", m.input.Value())
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.input.Value() != "2 * 3" {
		t.Errorf("after up past the oldest = %q", m.input.Value())
	}
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.input.Value() != "7" {
		t.Errorf("after down past the newest = %q, want the draft", m.input.Value())
	}
}

func TestModelQuit(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
	}{
		{"esc", []tea.KeyMsg{{Type: tea.KeyEsc}}},
		{"ctrl+c", []tea.KeyMsg{{Type: tea.KeyCtrlC}}},
		{"ctrl+d on empty line", []tea.KeyMsg{{Type: tea.KeyCtrlD}}},
		{":quit", []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune(":quit")}, {Type: tea.KeyEnter}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newModel(t)
			var cmd tea.Cmd
			for _, k := range tt.keys {
				m, cmd = send(t, m, k)
			}
			if !isQuit(cmd) {
				t.Errorf("no quit command after %s", tt.name)
			}
			if m.View() != "" {
				t.Errorf("View() after quit = %q", m.View())
			}
		})
	}
}

func TestModelCtrlDKeepsTyping(t *testing.T) {
	m := newModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("12")})
	_, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if isQuit(cmd) {
		t.Error("ctrl+d quit with a non-empty line")
	}
}

func TestModelClear(t *testing.T) {
	m := newModel(t)
	m, _ = enter(t, m, "5")
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlL})
	if got := m.Transcript(); got != "" {
		t.Errorf("Transcript() after clear = %q", got)
	}
	if len(m.History()) != 1 {
		t.Errorf("clear dropped the history: %q", m.History())
	}
}

func TestModelStatusBar(t *testing.T) {
	DisableStyles()
	m := newModel(t)
	m, _ = enter(t, m, ":set precision 8")
	if got := m.renderStatusBar(); !strings.Contains(got, "precision 8") || strings.Contains(got, "flags") {
		t.Errorf("status bar = %q", got)
	}

	m, _ = enter(t, m, "1 / 3")
	if got := m.renderStatusBar(); !strings.Contains(got, "flags") {
		t.Errorf("status bar after an inexact division = %q", got)
	}
	if !strings.Contains(m.View(), "precision 8") {
		t.Error("View() lacks the status bar")
	}
}

func TestModelCompletesCommands(t *testing.T) {
	m := newModel(t)
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(":pro")})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != ":profile " {
		t.Errorf("after tab = %q", got)
	}
}

func TestModelBeforeResize(t *testing.T) {
	s, err := calc.NewSession(precision.NewStore(kernel.NewBig()), config.Default(), "", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	m := New(s, nil)
	if m.View() != "Starting mpcalc..." {
		t.Errorf("View() = %q", m.View())
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if next.(Model).ready {
		t.Error("model ready without a window size")
	}
}
