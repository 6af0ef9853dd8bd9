package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/quill/internal/editor"
	"github.com/marcus/quill/internal/keymap"
	"github.com/marcus/quill/internal/msg"
	"github.com/marcus/quill/internal/notelist"
	"github.com/marcus/quill/internal/styles"
	"github.com/marcus/quill/internal/ui"
)

const (
	headerHeight = 1
	footerHeight = 1
	minWidth     = 60
	minHeight    = 12

	// status, title, separator and info lines around the body
	editorChromeHeight = 4
	rowsPerNote        = 2
)

// View renders the entire application UI.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	if m.width < minWidth || m.height < minHeight {
		text := fmt.Sprintf("Terminal too small (%dx%d)\nMinimum: %dx%d",
			m.width, m.height, minWidth, minHeight)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			styles.StatusUnsaved.Render(text))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	listW, editorW := m.paneWidths()
	h := m.contentHeight()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		styles.RenderPanel(m.renderList(listW-4, h-2), listW, h, m.focus == PaneList),
		styles.RenderPanel(m.renderEditor(editorW-4, h-2), editorW, h, m.focus == PaneEditor),
	))

	if m.showFooter {
		b.WriteString("\n")
		b.WriteString(m.renderFooter())
	}

	bg := b.String()
	switch m.activeModal() {
	case ModalPrompt:
		return ui.OverlayModal(bg, m.prompt.View(), m.width, m.height)
	case ModalConfirm:
		return ui.OverlayModal(bg, m.confirm.View(), m.width, m.height)
	case ModalHelp:
		return ui.OverlayModal(bg, styles.ModalBox.Render(m.buildHelpContent()), m.width, m.height)
	}
	return bg
}

// paneWidths splits the window between the list and the editor.
func (m Model) paneWidths() (list, edit int) {
	list = m.width * m.listWidth / 100
	return list, m.width - list
}

func (m Model) contentHeight() int {
	h := m.height - headerHeight
	if m.showFooter {
		h -= footerHeight
	}
	return max(h, 0)
}

// renderHeader shows the app name, active filters and the stats line.
func (m Model) renderHeader() string {
	left := styles.Title.Render("quill")
	if s := m.list.Search(); s != "" {
		left += " " + styles.BarChipActive.Render("search: "+s)
	}
	if t := m.list.TagFilter(); t != "" {
		left += " " + styles.BarChipActive.Render("tag: "+t)
	}
	right := styles.Muted.Render(m.list.StatsLine())

	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return ansi.Truncate(left+strings.Repeat(" ", gap)+right, m.width, "")
}

// renderList draws the note summaries, keeping the cursor visible.
func (m Model) renderList(width, height int) string {
	items := m.list.Items()
	if len(items) == 0 {
		text := "No notes"
		if m.list.Search() != "" || m.list.TagFilter() != "" {
			text = "No matching notes"
		}
		hint := keymap.FormatKeys(m.keymap.KeysFor(keymap.CmdNewNote, keymap.ContextList))
		return styles.Muted.Render(text) + "\n" + styles.Subtle.Render(hint+" new note")
	}

	visible := max(height/rowsPerNote, 1)
	cursor := m.list.Cursor()
	start := max(cursor-visible+1, 0)
	end := min(start+visible, len(items))

	lines := make([]string, 0, (end-start)*rowsPerNote)
	for i := start; i < end; i++ {
		title, meta := renderListItem(items[i], i == cursor, width)
		lines = append(lines, title, meta)
	}
	return strings.Join(lines, "\n")
}

func renderListItem(it notelist.Summary, selected bool, width int) (string, string) {
	marker := "  "
	if selected {
		marker = styles.ListCursor.Render("> ")
	}
	star := ""
	titleStyle := styles.ListItemNormal
	if it.Favorite {
		star = styles.ListItemFavorite.Render("★ ")
		titleStyle = styles.ListItemFavorite
	}
	if selected {
		titleStyle = titleStyle.Background(styles.BgTertiary)
	}
	titleText := it.Title
	if titleText == "" {
		titleText = "(untitled)"
	}
	title := marker + star + titleStyle.Render(titleText)

	meta := "  " + styles.Muted.Render(it.Updated)
	if it.Tags != "" {
		meta += "  " + styles.ListTags.Render(it.Tags)
	}
	return ansi.Truncate(title, width, "…"), ansi.Truncate(meta, width, "…")
}

// renderEditor shows the input widgets when focused, otherwise a preview
// of the loaded note.
func (m Model) renderEditor(width, height int) string {
	var b strings.Builder
	b.WriteString(m.renderStatus())
	b.WriteString("\n")

	if m.focus == PaneEditor {
		b.WriteString(m.titleInput.View())
		b.WriteString("\n")
		b.WriteString(styles.Subtle.Render(strings.Repeat("─", max(width, 0))))
		b.WriteString("\n")
		b.WriteString(m.body.View())
	} else {
		title := m.editor.Title()
		if title == "" {
			title = "(untitled)"
		}
		b.WriteString(styles.Title.Render(title))
		b.WriteString("\n")
		b.WriteString(styles.Subtle.Render(strings.Repeat("─", max(width, 0))))
		b.WriteString("\n")
		b.WriteString(m.renderPreview(width, max(height-editorChromeHeight, 0)))
	}

	if info := m.editor.Info(); info != "" {
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render(ansi.Truncate(info, width, "…")))
	}
	return b.String()
}

func (m Model) renderStatus() string {
	var status string
	switch m.editor.State() {
	case editor.StateDirty:
		status = styles.StatusUnsaved.Render("Unsaved")
	case editor.StateClean:
		status = styles.StatusSaved.Render("Saved")
	default:
		status = styles.StatusNew.Render("New note")
	}
	if tags := m.editor.Tags(); tags != "" {
		status += " " + styles.ListTags.Render(tags)
	}
	return status + " " + styles.Subtle.Render("["+string(m.preview.Mode())+"]")
}

// renderPreview renders the note body clipped to height lines.
func (m Model) renderPreview(width, height int) string {
	content := m.editor.Content()
	if content == "" {
		return styles.Subtle.Render("empty")
	}
	out, err := m.preview.Render(content, width)
	if err != nil {
		m.logger.Debug("app: preview fell back to plain", "error", err)
	}
	lines := strings.Split(out, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}

// renderFooter shows key hints and any toast.
func (m Model) renderFooter() string {
	var toast string
	if m.toastMsg != "" {
		style := styles.ToastSuccess
		switch m.toastLevel {
		case msg.LevelWarning:
			style = styles.ToastWarning
		case msg.LevelError:
			style = styles.ToastError
		}
		toast = style.Render(m.toastMsg)
	}

	available := m.width - lipgloss.Width(toast) - 4
	hints := renderHintLineTruncated(m.footerHints(), available)
	spacing := max(m.width-lipgloss.Width(hints)-lipgloss.Width(toast), 0)

	return styles.Footer.Width(m.width).MaxWidth(m.width).
		Render(hints + strings.Repeat(" ", spacing) + toast)
}

type footerHint struct {
	keys  string
	label string
}

func (m Model) footerHints() []footerHint {
	var hints []footerHint
	for _, ctx := range []string{m.context(), keymap.ContextGlobal} {
		for _, b := range m.keymap.HelpBindings(ctx) {
			hints = append(hints, footerHint{keys: b.Help().Key, label: b.Help().Desc})
		}
	}
	return hints
}

// renderHintLineTruncated renders hints but stops adding when maxWidth is exceeded.
func renderHintLineTruncated(hints []footerHint, maxWidth int) string {
	if len(hints) == 0 || maxWidth <= 0 {
		return ""
	}
	var result string
	for _, hint := range hints {
		if hint.keys == "" || hint.label == "" {
			continue
		}
		part := fmt.Sprintf("%s %s", styles.KeyHint.Render(hint.keys), hint.label)
		candidate := part
		if result != "" {
			candidate = result + "  " + part
		}
		if lipgloss.Width(candidate) > maxWidth {
			break
		}
		result = candidate
	}
	return result
}

// buildHelpContent creates the help modal content.
func (m Model) buildHelpContent() string {
	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Keyboard Shortcuts"))
	b.WriteString("\n\n")

	sections := []struct{ name, ctx string }{
		{"Global", keymap.ContextGlobal},
		{"Notes", keymap.ContextList},
	}
	if m.focus == PaneEditor {
		sections[1] = struct{ name, ctx string }{"Editor", keymap.ContextEditor}
	}
	for _, s := range sections {
		b.WriteString(styles.Title.Render(s.name))
		b.WriteString("\n")
		m.renderBindingSection(&b, s.ctx)
		b.WriteString("\n")
	}
	b.WriteString(styles.Subtle.Render("Press ? or esc to close"))
	return b.String()
}

// renderBindingSection renders bindings for a context, one line per command.
func (m Model) renderBindingSection(b *strings.Builder, context string) {
	bindings := m.keymap.BindingsForContext(context)
	seen := make(map[string]bool)
	for _, binding := range bindings {
		if seen[binding.Command] {
			continue
		}
		seen[binding.Command] = true
		keyStr := keymap.FormatKeys(m.keymap.KeysFor(binding.Command, context))
		fmt.Fprintf(b, "  %s %s\n", styles.Muted.Render(fmt.Sprintf("%-11s", keyStr)), formatCommandName(binding.Command))
	}
}

// formatCommandName converts a command ID to a display name.
func formatCommandName(cmd string) string {
	return strings.ReplaceAll(cmd, "-", " ")
}
