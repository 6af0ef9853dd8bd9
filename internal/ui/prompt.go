package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/quill/internal/styles"
)

// Prompt asks for a single line of text in a modal.
type Prompt struct {
	Title string
	Hint  string
	Width int

	input textinput.Model
}

// NewPrompt creates a focused prompt with initial text.
func NewPrompt(title, placeholder, initial string) *Prompt {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 512
	ti.Width = ModalWidthLarge - 10
	ti.SetValue(initial)
	ti.CursorEnd()
	ti.Focus()
	return &Prompt{
		Title: title,
		Hint:  "enter accept  esc cancel",
		Width: ModalWidthLarge,
		input: ti,
	}
}

// Value returns the current text with surrounding spaces removed.
func (p *Prompt) Value() string {
	return strings.TrimSpace(p.input.Value())
}

// Update handles a message. On enter it returns ActionConfirm, on esc
// ActionCancel; other keys edit the text.
func (p *Prompt) Update(msg tea.Msg) (string, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter:
			return ActionConfirm, nil
		case tea.KeyEsc:
			return ActionCancel, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return ActionNone, cmd
}

// View renders the prompt box.
func (p *Prompt) View() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(p.Title))
	b.WriteString("\n")
	b.WriteString(p.input.View())
	b.WriteString("\n\n")
	b.WriteString(styles.Subtle.Render(p.Hint))
	return styles.ModalBox.Width(p.Width - 2).Render(b.String())
}
