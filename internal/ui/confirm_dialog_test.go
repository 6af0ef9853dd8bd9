package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

func TestNewConfirmDialog(t *testing.T) {
	d := NewConfirmDialog("Test Title", "Test message")

	if d.Title != "Test Title" {
		t.Errorf("expected title 'Test Title', got %q", d.Title)
	}
	if d.ConfirmLabel != " Confirm " {
		t.Errorf("expected default confirm label ' Confirm ', got %q", d.ConfirmLabel)
	}
	if d.CancelLabel != " Cancel " {
		t.Errorf("expected default cancel label ' Cancel ', got %q", d.CancelLabel)
	}
	if d.Width != ModalWidthMedium {
		t.Errorf("expected width %d, got %d", ModalWidthMedium, d.Width)
	}
}

func TestConfirmDialog_View(t *testing.T) {
	d := NewConfirmDialog("Delete note?", "Delete 'Groceries'?")
	d.ConfirmLabel = " Delete "
	d.Danger = true

	out := ansi.Strip(d.View())
	for _, want := range []string{"Delete note?", "Groceries", "Delete", "Cancel"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}
}

func TestConfirmDialog_HandleKey(t *testing.T) {
	tests := []struct {
		name        string
		focusCancel bool
		keys        []tea.KeyMsg
		want        string
	}{
		{"enter confirms", false, []tea.KeyMsg{{Type: tea.KeyEnter}}, ActionConfirm},
		{"enter on cancel", true, []tea.KeyMsg{{Type: tea.KeyEnter}}, ActionCancel},
		{"tab then enter", true, []tea.KeyMsg{{Type: tea.KeyTab}, {Type: tea.KeyEnter}}, ActionConfirm},
		{"y", true, []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("y")}}, ActionConfirm},
		{"n", false, []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("n")}}, ActionCancel},
		{"esc", false, []tea.KeyMsg{{Type: tea.KeyEsc}}, ActionCancel},
		{"other key", false, []tea.KeyMsg{{Type: tea.KeyRunes, Runes: []rune("x")}}, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewConfirmDialog("T", "M")
			if tt.focusCancel {
				d.FocusCancel()
			}
			var got string
			for _, k := range tt.keys {
				got = d.HandleKey(k)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPrompt(t *testing.T) {
	p := NewPrompt("Search", "text", "bre")

	action, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ad")})
	if action != ActionNone {
		t.Fatalf("typing returned %q", action)
	}
	if p.Value() != "bread" {
		t.Errorf("Value() = %q, want bread", p.Value())
	}
	if !strings.Contains(ansi.Strip(p.View()), "Search") {
		t.Error("view should contain title")
	}

	if action, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter}); action != ActionConfirm {
		t.Errorf("enter returned %q", action)
	}
	if action, _ := p.Update(tea.KeyMsg{Type: tea.KeyEsc}); action != ActionCancel {
		t.Errorf("esc returned %q", action)
	}
}
