package app

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/quill/internal/editor"
	"github.com/marcus/quill/internal/keymap"
	"github.com/marcus/quill/internal/msg"
	"github.com/marcus/quill/internal/ui"
)

// Update handles all messages and returns the updated model and commands.
func (m Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(message)

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		m.ready = true
		m.layout()
		return m, nil

	case TickMsg:
		m.clearExpiredToast()
		return m, tickCmd()

	case AutosaveMsg:
		cmd := m.autosave()
		return m, tea.Batch(cmd, autosaveCmd(m.cfg.Editor.AutosaveInterval))

	case StylesheetChangedMsg:
		cmd := msg.ShowToast("Stylesheet reloaded", msg.ShortToast)
		if err := m.loadStylesheet(); err != nil {
			cmd = msg.ShowError("Stylesheet: " + err.Error())
		}
		return m, tea.Batch(cmd, waitForStylesheet(m.sheetChanges))

	case msg.ToastMsg:
		m.setToast(message.Message, message.Duration, message.Level)
		return m, nil

	case RefreshMsg:
		if err := m.list.Reload(m.list.Search()); err != nil {
			return m, ReportError(err)
		}
		return m, nil

	case ErrorMsg:
		m.logger.Error("app: error", "error", message.Err)
		m.setToast("Error: "+message.Err.Error(), msg.LongToast, msg.LevelError)
		return m, nil
	}

	// Cursor blink and other widget messages
	return m.updateWidgets(message)
}

// handleKeyMsg processes keyboard input.
func (m Model) handleKeyMsg(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.activeModal() {
	case ModalPrompt:
		return m.handlePromptKey(k)
	case ModalConfirm:
		return m.handleConfirmKey(k)
	case ModalHelp:
		switch k.String() {
		case "esc", "?", "f1", "q":
			m.showHelp = false
		case "ctrl+c":
			m.showHelp = false
			return m.run(keymap.CmdQuit)
		}
		return m, nil
	}

	if m.focus == PaneEditor {
		switch k.String() {
		case "tab":
			if m.field == fieldTitle {
				cmd := m.focusField(fieldBody)
				return m, cmd
			}
		case "shift+tab":
			if m.field == fieldBody {
				cmd := m.focusField(fieldTitle)
				return m, cmd
			}
		}
	}

	if cmdID, ok := m.keymap.Resolve(k.String(), m.context()); ok {
		return m.run(cmdID)
	}
	if m.keymap.Pending() != "" || m.focus == PaneList {
		return m, nil
	}
	return m.updateWidgets(k)
}

// updateWidgets forwards a message to the focused editor widget and
// records any edit.
func (m Model) updateWidgets(message tea.Msg) (tea.Model, tea.Cmd) {
	if m.focus != PaneEditor {
		return m, nil
	}
	var cmd tea.Cmd
	if m.field == fieldTitle {
		m.titleInput, cmd = m.titleInput.Update(message)
	} else {
		m.body, cmd = m.body.Update(message)
	}
	m.pushEdits()
	return m, cmd
}

func (m Model) handlePromptKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, cmd := m.prompt.Update(k)
	switch action {
	case ui.ActionCancel:
		m.prompt = nil
		return m, nil
	case ui.ActionConfirm:
		value := m.prompt.Value()
		kind := m.promptKind
		m.prompt = nil
		cmd = m.submitPrompt(kind, value)
		return m, cmd
	}
	return m, cmd
}

func (m Model) handleConfirmKey(k tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.confirm.HandleKey(k) {
	case ui.ActionCancel:
		m.confirm = nil
	case ui.ActionConfirm:
		kind, id := m.confirmKind, m.confirmID
		m.confirm = nil
		return m.confirmed(kind, id)
	}
	return m, nil
}

// confirmed performs the action a dialog was guarding.
func (m Model) confirmed(kind confirmKind, id int64) (tea.Model, tea.Cmd) {
	switch kind {
	case confirmDelete:
		cmd := m.deleteNote(id)
		return m, cmd
	case confirmDiscard:
		m.editor.Discard()
		m.syncWidgets()
		cmd := m.focusPane(PaneEditor)
		return m, cmd
	case confirmSelect:
		m.list.Focus(id)
		cmd := m.selectNote()
		return m, cmd
	case confirmQuit:
		m.shutdown()
		return m, tea.Quit
	}
	return m, nil
}

// autosave persists a dirty note with a title.
func (m *Model) autosave() tea.Cmd {
	saved, err := m.editor.Autosave()
	if err != nil {
		return saveErrorToast(err)
	}
	if saved {
		m.logger.Debug("app: autosaved", "id", m.editor.ID())
	}
	return nil
}

func saveErrorToast(err error) tea.Cmd {
	if errors.Is(err, editor.ErrEmptyTitle) {
		return msg.ShowWarning("Enter a note title")
	}
	return msg.ShowError(fmt.Sprintf("Save failed: %v", err))
}
