package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/quill/internal/styles"
)

// Modal widths
const (
	ModalWidthSmall  = 40
	ModalWidthMedium = 50
	ModalWidthLarge  = 70
)

// Dialog actions
const (
	ActionNone    = ""
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
)

// ConfirmDialog is a keyboard-driven yes/no modal.
type ConfirmDialog struct {
	Title        string
	Message      string
	ConfirmLabel string // e.g., " Confirm ", " Delete ", " Yes "
	CancelLabel  string // e.g., " Cancel ", " No "
	Danger       bool   // red confirm button
	Width        int    // Modal width (default 50)

	focusCancel bool
}

// NewConfirmDialog creates a dialog with sensible defaults.
func NewConfirmDialog(title, message string) *ConfirmDialog {
	return &ConfirmDialog{
		Title:        title,
		Message:      message,
		ConfirmLabel: " Confirm ",
		CancelLabel:  " Cancel ",
		Width:        ModalWidthMedium,
	}
}

// FocusCancel moves focus to the cancel button. Destructive dialogs start
// there so a stray enter does nothing.
func (d *ConfirmDialog) FocusCancel() *ConfirmDialog {
	d.focusCancel = true
	return d
}

// HandleKey processes a key and returns the resulting action.
// y/n answer directly; tab and arrows move focus; enter activates the
// focused button; esc cancels.
func (d *ConfirmDialog) HandleKey(msg tea.KeyMsg) string {
	switch msg.String() {
	case "y", "Y":
		return ActionConfirm
	case "n", "N", "esc", "q":
		return ActionCancel
	case "tab", "shift+tab", "left", "right", "h", "l":
		d.focusCancel = !d.focusCancel
	case "enter", " ":
		if d.focusCancel {
			return ActionCancel
		}
		return ActionConfirm
	}
	return ActionNone
}

// View renders the dialog box.
func (d *ConfirmDialog) View() string {
	width := d.Width
	if width <= 0 {
		width = ModalWidthMedium
	}
	// Box padding (2 each side) and border
	inner := width - 6

	confirm, cancel := styles.Button, styles.Button
	if d.Danger {
		confirm = styles.ButtonDanger
	}
	if d.focusCancel {
		cancel = styles.ButtonFocused
	} else if d.Danger {
		confirm = styles.ButtonDangerFocused
	} else {
		confirm = styles.ButtonFocused
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render(d.Title))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(inner).Render(d.Message))
	b.WriteString("\n\n")
	b.WriteString(confirm.Render(d.ConfirmLabel))
	b.WriteString("  ")
	b.WriteString(cancel.Render(d.CancelLabel))
	b.WriteString("\n\n")
	b.WriteString(styles.Subtle.Render("y/n  tab switch  enter select"))

	box := styles.ModalBox
	if d.Danger {
		box = box.BorderForeground(styles.Error)
	}
	return box.Width(width - 2).Render(b.String())
}
