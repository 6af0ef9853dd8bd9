package app

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/marcus/quill/internal/config"
	"github.com/marcus/quill/internal/editor"
	"github.com/marcus/quill/internal/event"
	"github.com/marcus/quill/internal/keymap"
	"github.com/marcus/quill/internal/msg"
	"github.com/marcus/quill/internal/notelist"
	"github.com/marcus/quill/internal/preview"
	"github.com/marcus/quill/internal/state"
	"github.com/marcus/quill/internal/store"
	"github.com/marcus/quill/internal/styles"
	"github.com/marcus/quill/internal/ui"
)

// ModalKind identifies an app-level modal. Lower values are checked first
// for rendering and input routing.
type ModalKind int

const (
	ModalNone    ModalKind = iota
	ModalPrompt            // text prompt (search, tag, export path)
	ModalConfirm           // yes/no confirmation
	ModalHelp              // key binding overview
)

// Pane identifies the focused pane.
type Pane int

const (
	PaneList Pane = iota
	PaneEditor
)

// field is the focused editor widget.
type field int

const (
	fieldTitle field = iota
	fieldBody
)

// confirmKind is the action a confirmation dialog guards.
type confirmKind int

const (
	confirmDelete confirmKind = iota
	confirmDiscard
	confirmSelect
	confirmQuit
)

// promptKind is what a text prompt collects.
type promptKind int

const (
	promptSearch promptKind = iota
	promptTag
	promptFilter
	promptExport
)

const (
	listWidthStep = 5
	minListWidth  = 15
	maxListWidth  = 85
)

// Model is the root Bubble Tea model for quill.
type Model struct {
	cfg    *config.Config
	logger *slog.Logger

	store   *store.Store
	bus     *event.Dispatcher
	list    *notelist.List
	editor  *editor.Editor
	preview *preview.Renderer
	keymap  *keymap.Registry

	// Editor widgets
	titleInput textinput.Model
	body       textarea.Model
	field      field

	// Widget values as last loaded from the editor. The widgets may
	// normalize text, so only a change from these counts as an edit.
	syncedTitle string
	syncedBody  string

	// UI state
	focus      Pane
	width      int
	height     int
	listWidth  int // percent of width
	ready      bool
	showHelp   bool
	showFooter bool

	// Confirmation dialog
	confirm     *ui.ConfirmDialog
	confirmKind confirmKind
	confirmID   int64

	// Text prompt
	prompt     *ui.Prompt
	promptKind promptKind

	// Status/toast messages
	toastMsg    string
	toastExpiry time.Time
	toastLevel  msg.Level

	// Stylesheet hot reload
	stylesheet   string
	sheetChanges <-chan struct{}
	sheetWatcher io.Closer
}

// New creates the application model. It wires the presenters to the bus,
// applies the stylesheet and restores the saved window settings.
func New(s *store.Store, bus *event.Dispatcher, km *keymap.Registry, cfg *config.Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	ed := editor.New(s, bus, logger)
	bus.Subscribe(event.TypeSelected, func(e event.Event) {
		if sel, ok := e.(event.Selected); ok {
			ed.Load(sel)
		}
	})
	list := notelist.New(s, bus, logger)

	m := Model{
		cfg:        cfg,
		logger:     logger,
		store:      s,
		bus:        bus,
		list:       list,
		editor:     ed,
		keymap:     km,
		titleInput: newTitleInput(),
		body:       newBody(),
		listWidth:  cfg.UI.ListWidthPercent,
		showFooter: cfg.UI.ShowFooter,
		stylesheet: cfg.UI.Stylesheet,
	}

	m.loadStylesheet()
	m.preview = preview.New(preview.Mode(cfg.UI.PreviewMode), styles.GetMarkdownTheme(), styles.GetSyntaxTheme(), logger)
	if mode := state.GetPreviewMode(); mode != "" {
		m.preview.SetMode(preview.Mode(mode))
	}
	if w := state.GetWindow(); w.ListWidth > 0 {
		m.listWidth = clampListWidth(w.ListWidth)
	}

	if err := list.Reload(""); err != nil {
		logger.Error("app: initial load failed", "error", err)
		m.setToast("Load failed: "+err.Error(), msg.LongToast, msg.LevelError)
	}
	if id := state.GetLastNoteID(); list.Focus(id) {
		if err := list.Select(); err != nil {
			logger.Debug("app: restore last note failed", "id", id, "error", err)
		}
	}
	m.syncWidgets()

	if cfg.UI.WatchStylesheet && m.stylesheet != "" {
		changes, closer, err := styles.NewWatcher(m.stylesheet)
		if err != nil {
			logger.Debug("app: stylesheet watch disabled", "path", m.stylesheet, "error", err)
		} else {
			m.sheetChanges = changes
			m.sheetWatcher = closer
		}
	}
	return m
}

func newTitleInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Title"
	ti.Prompt = ""
	ti.CharLimit = 256
	return ti
}

func newBody() textarea.Model {
	ta := textarea.New()
	ta.Placeholder = "Write your note..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0
	ta.Prompt = ""
	ta.FocusedStyle = textarea.Style{
		Base:        lipgloss.NewStyle(),
		CursorLine:  lipgloss.NewStyle(),
		EndOfBuffer: styles.Muted,
		Placeholder: styles.Muted,
		Prompt:      lipgloss.NewStyle(),
		Text:        lipgloss.NewStyle(),
	}
	ta.BlurredStyle = ta.FocusedStyle
	// ctrl+n is the new-note binding
	ta.KeyMap.LineNext = key.NewBinding(key.WithKeys("down"))
	ta.Blur()
	return ta
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		autosaveCmd(m.cfg.Editor.AutosaveInterval),
		waitForStylesheet(m.sheetChanges),
	)
}

// Focus returns the focused pane.
func (m Model) Focus() Pane { return m.focus }

// Editor exposes the editor presenter.
func (m Model) Editor() *editor.Editor { return m.editor }

// List exposes the list presenter.
func (m Model) List() *notelist.List { return m.list }

// activeModal returns the highest-priority open modal.
func (m *Model) activeModal() ModalKind {
	switch {
	case m.prompt != nil:
		return ModalPrompt
	case m.confirm != nil:
		return ModalConfirm
	case m.showHelp:
		return ModalHelp
	default:
		return ModalNone
	}
}

// context returns the keymap context of the focused pane.
func (m *Model) context() string {
	if m.focus == PaneEditor {
		return keymap.ContextEditor
	}
	return keymap.ContextList
}

// setToast displays a temporary status message.
func (m *Model) setToast(text string, d time.Duration, level msg.Level) {
	m.toastMsg = text
	m.toastExpiry = time.Now().Add(d)
	m.toastLevel = level
}

// clearExpiredToast clears the toast once its time is up.
func (m *Model) clearExpiredToast() {
	if m.toastMsg != "" && time.Now().After(m.toastExpiry) {
		m.toastMsg = ""
	}
}

// syncWidgets copies the editor presenter into the input widgets.
func (m *Model) syncWidgets() {
	m.titleInput.SetValue(m.editor.Title())
	m.titleInput.CursorEnd()
	m.body.SetValue(m.editor.Content())
	m.syncedTitle = m.titleInput.Value()
	m.syncedBody = m.body.Value()
}

// pushEdits copies the input widgets into the editor presenter.
func (m *Model) pushEdits() {
	if v := m.titleInput.Value(); v != m.syncedTitle {
		m.editor.SetTitle(v)
		m.syncedTitle = v
	}
	if v := m.body.Value(); v != m.syncedBody {
		m.editor.SetContent(v)
		m.syncedBody = v
	}
}

// focusPane moves focus and updates widget focus to match.
func (m *Model) focusPane(p Pane) tea.Cmd {
	m.focus = p
	if p == PaneList {
		m.titleInput.Blur()
		m.body.Blur()
		return nil
	}
	return m.focusField(m.field)
}

func (m *Model) focusField(f field) tea.Cmd {
	m.field = f
	if f == fieldTitle {
		m.body.Blur()
		return m.titleInput.Focus()
	}
	m.titleInput.Blur()
	return m.body.Focus()
}

// openConfirm shows a confirmation dialog guarding kind.
func (m *Model) openConfirm(kind confirmKind, id int64, d *ui.ConfirmDialog) {
	m.confirm = d
	m.confirmKind = kind
	m.confirmID = id
}

// openPrompt shows a text prompt.
func (m *Model) openPrompt(kind promptKind, p *ui.Prompt) tea.Cmd {
	m.prompt = p
	m.promptKind = kind
	return textinput.Blink
}

// resizeList changes the list pane width by delta percent.
func (m *Model) resizeList(delta int) {
	m.listWidth = clampListWidth(m.listWidth + delta)
	m.layout()
}

func clampListWidth(w int) int {
	return min(max(w, minListWidth), maxListWidth)
}

// layout sizes the editor widgets for the current window.
func (m *Model) layout() {
	_, editorW := m.paneWidths()
	inner := max(editorW-4, 1)
	m.titleInput.Width = inner
	m.body.SetWidth(inner)
	m.body.SetHeight(max(m.contentHeight()-2-editorChromeHeight, 1))
}

// persistState saves window geometry and the open note.
func (m *Model) persistState() {
	state.SetWindow(state.Window{Width: m.width, Height: m.height, ListWidth: m.listWidth})
	state.SetLastNoteID(m.editor.ID())
	if err := state.Save(); err != nil {
		m.logger.Warn("app: save state failed", "error", err)
	}
}

// shutdown releases resources owned by the model.
func (m *Model) shutdown() {
	m.persistState()
	if m.sheetWatcher != nil {
		_ = m.sheetWatcher.Close()
		m.sheetWatcher = nil
	}
}

// loadStylesheet applies the configured stylesheet, if present.
func (m *Model) loadStylesheet() error {
	if m.stylesheet == "" {
		return nil
	}
	ignored, err := styles.ApplyStylesheetFile(m.stylesheet)
	if err != nil {
		m.logger.Warn("app: stylesheet not applied", "path", m.stylesheet, "error", err)
		return err
	}
	if len(ignored) > 0 {
		m.logger.Warn("app: stylesheet colors ignored", "keys", ignored)
	}
	if m.preview != nil {
		m.preview.SetTheme(styles.GetMarkdownTheme(), styles.GetSyntaxTheme())
	}
	return nil
}
