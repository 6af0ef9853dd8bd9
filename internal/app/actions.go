package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/quill/internal/config"
	"github.com/marcus/quill/internal/editor"
	"github.com/marcus/quill/internal/export"
	"github.com/marcus/quill/internal/keymap"
	"github.com/marcus/quill/internal/msg"
	"github.com/marcus/quill/internal/notelist"
	"github.com/marcus/quill/internal/state"
	"github.com/marcus/quill/internal/ui"
)

// clipboardWrite is swapped out in tests.
var clipboardWrite = clipboard.WriteAll

// run executes a keymap command.
func (m Model) run(cmdID string) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch cmdID {
	case keymap.CmdQuit:
		if m.editor.State() == editor.StateDirty {
			d := ui.NewConfirmDialog("Quit", "You have unsaved changes. Quit anyway?")
			d.ConfirmLabel = " Quit "
			d.FocusCancel()
			m.openConfirm(confirmQuit, 0, d)
			return m, nil
		}
		m.shutdown()
		return m, tea.Quit

	case keymap.CmdToggleHelp:
		m.showHelp = !m.showHelp

	case keymap.CmdSave:
		cmd = m.save()

	case keymap.CmdNewNote, keymap.CmdClear:
		cmd = m.clearEditor()

	case keymap.CmdDeleteNote:
		cmd = m.requestDelete()

	case keymap.CmdExportNote:
		cmd = m.requestExport()

	case keymap.CmdSearch:
		cmd = m.openPrompt(promptSearch, ui.NewPrompt("Search", "text in title or content", m.list.Search()))

	case keymap.CmdFilterTag:
		cmd = m.openPrompt(promptFilter, ui.NewPrompt("Filter by tag", "tag", m.list.TagFilter()))

	case keymap.CmdClearSearch:
		cmd = m.clearFilters()

	case keymap.CmdAddTag:
		if m.list.SelectedID() == 0 {
			return m, msg.ShowWarning("Select a note to tag")
		}
		cmd = m.openPrompt(promptTag, ui.NewPrompt("Add tag", "tag", ""))

	case keymap.CmdToggleFavorite:
		cmd = m.toggleFavorite()

	case keymap.CmdSelect:
		cmd = m.requestSelect()

	case keymap.CmdSwitchPane:
		if m.focus == PaneList {
			cmd = m.focusPane(PaneEditor)
		} else {
			cmd = m.focusPane(PaneList)
		}

	case keymap.CmdTogglePreview:
		mode := m.preview.Next()
		if err := state.SetPreviewMode(string(mode)); err != nil {
			m.logger.Debug("app: save preview mode failed", "error", err)
		}
		cmd = msg.ShowToast("Preview: "+string(mode), msg.ShortToast)

	case keymap.CmdYankContent:
		cmd = m.yankContent()

	case keymap.CmdRefresh:
		if err := m.list.Reload(m.list.Search()); err != nil {
			return m, ReportError(err)
		}
		cmd = msg.ShowToast("Refreshed", msg.ShortToast)

	case keymap.CmdGrowList:
		m.resizeList(listWidthStep)
	case keymap.CmdShrinkList:
		m.resizeList(-listWidthStep)

	case keymap.CmdCursorUp:
		m.list.MoveUp()
	case keymap.CmdCursorDown:
		m.list.MoveDown()
	case keymap.CmdCursorTop:
		m.list.MoveTop()
	case keymap.CmdCursorBottom:
		m.list.MoveBottom()

	default:
		m.logger.Debug("app: unhandled command", "command", cmdID)
	}
	return m, cmd
}

// save writes the editor note and reports the outcome.
func (m *Model) save() tea.Cmd {
	m.pushEdits()
	if !m.editor.CanSave() {
		return nil
	}
	if err := m.editor.Save(); err != nil {
		return saveErrorToast(err)
	}
	state.SetLastNoteID(m.editor.ID())
	return msg.ShowToast("Saved", msg.ShortToast)
}

// clearEditor empties the editor, asking first when there are unsaved edits.
func (m *Model) clearEditor() tea.Cmd {
	m.pushEdits()
	if m.editor.RequestClear() {
		d := ui.NewConfirmDialog("Clear", "You have unsaved changes. Clear the editor?")
		d.ConfirmLabel = " Clear "
		d.FocusCancel()
		m.openConfirm(confirmDiscard, 0, d)
		return nil
	}
	m.syncWidgets()
	return m.focusPane(PaneEditor)
}

func (m *Model) requestDelete() tea.Cmd {
	id := m.list.SelectedID()
	if id == 0 {
		return msg.ShowWarning("Select a note to delete")
	}
	title := ""
	if items := m.list.Items(); m.list.Cursor() < len(items) {
		title = items[m.list.Cursor()].Title
	}
	d := ui.NewConfirmDialog("Delete", fmt.Sprintf("Delete %q?", title))
	d.ConfirmLabel = " Delete "
	d.Danger = true
	d.FocusCancel()
	m.openConfirm(confirmDelete, id, d)
	return nil
}

// deleteNote removes id and empties the editor if it held that note.
func (m *Model) deleteNote(id int64) tea.Cmd {
	if err := m.list.Delete(id); err != nil {
		return msg.ShowError("Delete failed: " + err.Error())
	}
	if m.editor.ID() == id {
		m.editor.Discard()
		m.syncWidgets()
	}
	return msg.ShowToast("Note deleted", msg.ShortToast)
}

func (m *Model) requestExport() tea.Cmd {
	m.pushEdits()
	title := strings.TrimSpace(m.editor.Title())
	if title == "" || m.editor.Content() == "" {
		return msg.ShowWarning("No note to export")
	}
	return m.openPrompt(promptExport, ui.NewPrompt("Export note", "file path", export.DefaultFileName(title)))
}

func (m *Model) exportNote(path string) tea.Cmd {
	if path == "" {
		return nil
	}
	path = config.ExpandPath(path)
	if err := export.Write(path, strings.TrimSpace(m.editor.Title()), m.editor.Content()); err != nil {
		m.logger.Error("app: export failed", "path", path, "error", err)
		return msg.ShowError("Export failed: " + err.Error())
	}
	return msg.ShowToast("Exported to "+path, msg.ShortToast)
}

func (m *Model) clearFilters() tea.Cmd {
	if m.list.Search() == "" && m.list.TagFilter() == "" {
		return nil
	}
	if err := m.list.SetTagFilter(""); err != nil {
		return ReportError(err)
	}
	if err := m.list.Reload(""); err != nil {
		return ReportError(err)
	}
	return nil
}

func (m *Model) toggleFavorite() tea.Cmd {
	if err := m.list.ToggleFavorite(); err != nil {
		if errors.Is(err, notelist.ErrNoSelection) {
			return msg.ShowWarning("Select a note first")
		}
		return msg.ShowError("Favorite failed: " + err.Error())
	}
	return nil
}

// addTag tags the selected note and keeps the editor's copy of the tags
// in step so a later save does not drop it.
func (m *Model) addTag(tag string) tea.Cmd {
	id := m.list.SelectedID()
	if err := m.list.AddTag(tag); err != nil {
		if errors.Is(err, notelist.ErrNoSelection) {
			return msg.ShowWarning("Select a note to tag")
		}
		return msg.ShowError("Tag failed: " + err.Error())
	}
	if tag == "" || id == 0 || m.editor.ID() != id {
		return nil
	}
	note, err := m.store.Get(id)
	if err != nil || note == nil {
		return nil
	}
	if m.editor.State() == editor.StateDirty {
		m.editor.SetTags(note.Tags)
		return nil
	}
	if m.list.Focus(id) {
		if err := m.list.Select(); err != nil {
			return ReportError(err)
		}
		m.syncWidgets()
	}
	return nil
}

// requestSelect loads the note under the cursor, confirming first when
// that would discard unsaved edits to a different note.
func (m *Model) requestSelect() tea.Cmd {
	id := m.list.SelectedID()
	if id == 0 {
		return nil
	}
	m.pushEdits()
	if m.editor.State() == editor.StateDirty && m.editor.ID() != id {
		d := ui.NewConfirmDialog("Open note", "You have unsaved changes. Discard them?")
		d.ConfirmLabel = " Discard "
		d.FocusCancel()
		m.openConfirm(confirmSelect, id, d)
		return nil
	}
	return m.selectNote()
}

func (m *Model) selectNote() tea.Cmd {
	if err := m.list.Select(); err != nil {
		return ReportError(err)
	}
	m.syncWidgets()
	state.SetLastNoteID(m.editor.ID())
	m.field = fieldBody
	return m.focusPane(PaneEditor)
}

func (m *Model) yankContent() tea.Cmd {
	content := m.editor.Content()
	if m.focus == PaneList {
		id := m.list.SelectedID()
		if id == 0 {
			return nil
		}
		note, err := m.store.Get(id)
		if err != nil {
			return ReportError(err)
		}
		if note == nil {
			return nil
		}
		content = note.Content
	}
	if err := clipboardWrite(content); err != nil {
		return msg.ShowError("Copy failed: " + err.Error())
	}
	return msg.ShowToast("Copied note content", msg.ShortToast)
}

// submitPrompt applies the value entered in a prompt.
func (m *Model) submitPrompt(kind promptKind, value string) tea.Cmd {
	switch kind {
	case promptSearch:
		if err := m.list.Reload(value); err != nil {
			return ReportError(err)
		}
	case promptFilter:
		if err := m.list.SetTagFilter(value); err != nil {
			return ReportError(err)
		}
	case promptTag:
		return m.addTag(value)
	case promptExport:
		return m.exportNote(value)
	}
	return nil
}
