package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressConfirm(m confirmModel, key tea.KeyMsg) (confirmModel, tea.Cmd) {
	next, cmd := m.Update(key)
	return next.(confirmModel), cmd
}

func TestConfirmKeys(t *testing.T) {
	tests := []struct {
		name       string
		defaultYes bool
		key        tea.KeyMsg
		want       bool
	}{
		{"y confirms", false, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{"Y confirms", false, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")}, true},
		{"n declines", true, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
		{"esc declines", true, tea.KeyMsg{Type: tea.KeyEsc}, false},
		{"enter uses default no", false, tea.KeyMsg{Type: tea.KeyEnter}, false},
		{"enter uses default yes", true, tea.KeyMsg{Type: tea.KeyEnter}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, cmd := pressConfirm(confirmModel{prompt: "Seed?", defaultYes: tt.defaultYes}, tt.key)
			if !m.done {
				t.Fatal("expected prompt to be done")
			}
			if m.confirmed != tt.want {
				t.Errorf("confirmed = %v, want %v", m.confirmed, tt.want)
			}
			if cmd == nil {
				t.Error("expected quit command")
			}
		})
	}
}

func TestConfirmIgnoresOtherKeys(t *testing.T) {
	m, cmd := pressConfirm(confirmModel{prompt: "Seed?"}, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if m.done || cmd != nil {
		t.Error("expected unrelated key to be ignored")
	}
}

func TestConfirmViewShowsDefault(t *testing.T) {
	if v := stripANSI(confirmModel{prompt: "Seed?"}.View()); !strings.Contains(v, "[y/N]") {
		t.Errorf("unexpected view %q", v)
	}
	if v := stripANSI(confirmModel{prompt: "Seed?", defaultYes: true}.View()); !strings.Contains(v, "[Y/n]") {
		t.Errorf("unexpected view %q", v)
	}
}
