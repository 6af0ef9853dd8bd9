package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/quill/internal/config"
	"github.com/marcus/quill/internal/editor"
	"github.com/marcus/quill/internal/event"
	"github.com/marcus/quill/internal/keymap"
	"github.com/marcus/quill/internal/msg"
	"github.com/marcus/quill/internal/state"
	"github.com/marcus/quill/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stepClock() func() time.Time {
	t := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Minute)
		return t
	}
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	require.NoError(t, state.InitWithDir(t.TempDir()))
	s, err := store.Open(filepath.Join(t.TempDir(), "notes.db"), store.WithClock(stepClock()))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestModel(t *testing.T, s *store.Store) Model {
	t.Helper()
	cfg := config.Default()
	cfg.UI.Stylesheet = ""
	cfg.UI.WatchStylesheet = false
	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)

	m := New(s, event.New(), km, cfg, nil)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	return next.(Model)
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"tab":    tea.KeyTab,
	"ctrl+s": tea.KeyCtrlS,
	"ctrl+l": tea.KeyCtrlL,
	"ctrl+u": tea.KeyCtrlU,
	"ctrl+y": tea.KeyCtrlY,
}

func keyMsg(k string) tea.KeyMsg {
	if t, ok := namedKeys[k]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

// press sends keys in order and returns the model and the last command.
func press(t *testing.T, m Model, keys ...string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyMsg(k))
		m = next.(Model)
	}
	return m, cmd
}

func toastOf(t *testing.T, cmd tea.Cmd) msg.ToastMsg {
	t.Helper()
	require.NotNil(t, cmd)
	toast, ok := cmd().(msg.ToastMsg)
	require.True(t, ok, "expected a toast")
	return toast
}

func TestNewNote_TypeAndSave(t *testing.T) {
	s := openStore(t)
	m := newTestModel(t, s)

	m, _ = press(t, m, "n")
	assert.Equal(t, PaneEditor, m.Focus())
	assert.Equal(t, editor.StateEmpty, m.Editor().State())

	m, _ = press(t, m, "Groceries", "tab", "milk")
	assert.Equal(t, editor.StateDirty, m.Editor().State())
	assert.Equal(t, "Groceries", m.Editor().Title())
	assert.Equal(t, "milk", m.Editor().Content())

	m, cmd := press(t, m, "ctrl+s")
	toast := toastOf(t, cmd)
	assert.Equal(t, msg.LevelSuccess, toast.Level)
	assert.Equal(t, editor.StateClean, m.Editor().State())
	require.NotZero(t, m.Editor().ID())

	assert.Equal(t, 1, m.List().Len(), "list reloads on save")
	note, err := s.Get(m.Editor().ID())
	require.NoError(t, err)
	assert.Equal(t, "milk", note.Content)
}

func TestSave_EmptyTitleWarns(t *testing.T) {
	m := newTestModel(t, openStore(t))

	m, _ = press(t, m, "n", "tab", "body only")
	m, cmd := press(t, m, "ctrl+s")

	assert.Equal(t, msg.LevelWarning, toastOf(t, cmd).Level)
	assert.Equal(t, editor.StateDirty, m.Editor().State())
	assert.Zero(t, m.List().Len())
}

func TestDelete_Confirmation(t *testing.T) {
	s := openStore(t)
	id, err := s.Create("Doomed", "bye", "")
	require.NoError(t, err)
	m := newTestModel(t, s)

	m, _ = press(t, m, "d")
	require.Equal(t, ModalConfirm, m.activeModal())
	m, _ = press(t, m, "n")
	assert.Equal(t, ModalNone, m.activeModal())
	assert.Equal(t, 1, m.List().Len())

	m, _ = press(t, m, "d", "y")
	assert.Equal(t, 0, m.List().Len())
	note, err := s.Get(id)
	require.NoError(t, err)
	assert.Nil(t, note)
}

func TestDelete_NothingSelectedWarns(t *testing.T) {
	m := newTestModel(t, openStore(t))

	m, cmd := press(t, m, "d")
	assert.Equal(t, ModalNone, m.activeModal())
	assert.Equal(t, msg.LevelWarning, toastOf(t, cmd).Level)
}

func TestDelete_ClearsEditorHoldingNote(t *testing.T) {
	s := openStore(t)
	_, err := s.Create("Open me", "body", "")
	require.NoError(t, err)
	m := newTestModel(t, s)

	m, _ = press(t, m, "enter", "esc", "d", "y")
	assert.Equal(t, editor.StateEmpty, m.Editor().State())
	assert.Zero(t, m.Editor().ID())
}

func TestSelect_DirtyAsksBeforeSwitching(t *testing.T) {
	s := openStore(t)
	a, _ := s.Create("Alpha", "first", "")
	b, _ := s.Create("Beta", "second", "")
	m := newTestModel(t, s)

	m, _ = press(t, m, "enter")
	require.Equal(t, b, m.Editor().ID())
	assert.Equal(t, editor.StateClean, m.Editor().State())

	m, _ = press(t, m, "!", "esc", "j", "enter")
	require.Equal(t, ModalConfirm, m.activeModal())
	assert.Equal(t, b, m.Editor().ID(), "editor untouched until confirmed")

	m, _ = press(t, m, "y")
	assert.Equal(t, a, m.Editor().ID())
	assert.Equal(t, editor.StateClean, m.Editor().State())
	assert.Equal(t, "first", m.Editor().Content())
}

func TestSelect_CleanSwitchesImmediately(t *testing.T) {
	s := openStore(t)
	a, _ := s.Create("Alpha", "first", "")
	s.Create("Beta", "second", "")
	m := newTestModel(t, s)

	m, _ = press(t, m, "enter", "esc", "j", "enter")
	assert.Equal(t, ModalNone, m.activeModal())
	assert.Equal(t, a, m.Editor().ID())
}

func TestClear_DirtyAsks(t *testing.T) {
	m := newTestModel(t, openStore(t))

	m, _ = press(t, m, "n", "Draft", "ctrl+l")
	require.Equal(t, ModalConfirm, m.activeModal())
	m, _ = press(t, m, "esc")
	assert.Equal(t, "Draft", m.Editor().Title(), "cancel keeps the draft")

	m, _ = press(t, m, "ctrl+l", "y")
	assert.Equal(t, editor.StateEmpty, m.Editor().State())
	assert.Empty(t, m.titleInput.Value())
}

func TestAutosave(t *testing.T) {
	s := openStore(t)
	m := newTestModel(t, s)

	m, _ = press(t, m, "n", "Auto", "tab", "saved by tick")
	next, _ := m.Update(AutosaveMsg(time.Now()))
	m = next.(Model)

	assert.Equal(t, editor.StateClean, m.Editor().State())
	require.NotZero(t, m.Editor().ID())
	note, err := s.Get(m.Editor().ID())
	require.NoError(t, err)
	assert.Equal(t, "saved by tick", note.Content)
}

func TestAutosave_SkipsUntitled(t *testing.T) {
	s := openStore(t)
	m := newTestModel(t, s)

	m, _ = press(t, m, "n", "tab", "no title yet")
	next, _ := m.Update(AutosaveMsg(time.Now()))
	m = next.(Model)

	assert.Equal(t, editor.StateDirty, m.Editor().State())
	st, err := s.Stats()
	require.NoError(t, err)
	assert.Zero(t, st.Total)
}

func TestSearchPrompt(t *testing.T) {
	s := openStore(t)
	s.Create("Shopping", "milk and eggs", "")
	s.Create("Work", "quarterly report", "")
	m := newTestModel(t, s)

	m, _ = press(t, m, "/")
	require.Equal(t, ModalPrompt, m.activeModal())
	m, _ = press(t, m, "milk", "enter")

	assert.Equal(t, ModalNone, m.activeModal())
	assert.Equal(t, "milk", m.List().Search())
	require.Equal(t, 1, m.List().Len())
	assert.Equal(t, "Shopping", m.List().Items()[0].Title)

	m, _ = press(t, m, "esc")
	assert.Equal(t, 2, m.List().Len())
}

func TestAddTag_KeepsEditorInStep(t *testing.T) {
	s := openStore(t)
	id, _ := s.Create("Plan", "steps", "home")
	m := newTestModel(t, s)

	m, _ = press(t, m, "enter", "esc", "t", "work", "enter")

	assert.Equal(t, "home,work", m.Editor().Tags())
	assert.Equal(t, editor.StateClean, m.Editor().State())
	note, err := s.Get(id)
	require.NoError(t, err)
	assert.Equal(t, "home,work", note.Tags)
}

func TestExport(t *testing.T) {
	s := openStore(t)
	s.Create("Recipe", "flour\nwater", "")
	m := newTestModel(t, s)
	path := filepath.Join(t.TempDir(), "out", "recipe.md")

	m, _ = press(t, m, "enter", "esc", "e")
	require.Equal(t, ModalPrompt, m.activeModal())
	assert.Equal(t, "Recipe.txt", m.prompt.Value())

	m, cmd := press(t, m, "ctrl+u", path, "enter")
	assert.Equal(t, msg.LevelSuccess, toastOf(t, cmd).Level)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Recipe\n\nflour\nwater", string(data))
}

func TestExport_NothingToExport(t *testing.T) {
	m := newTestModel(t, openStore(t))

	m, cmd := press(t, m, "e")
	assert.Equal(t, ModalNone, m.activeModal())
	assert.Equal(t, msg.LevelWarning, toastOf(t, cmd).Level)
}

func TestYank(t *testing.T) {
	s := openStore(t)
	s.Create("Clip", "copy me", "")
	m := newTestModel(t, s)

	var got string
	orig := clipboardWrite
	clipboardWrite = func(text string) error { got = text; return nil }
	t.Cleanup(func() { clipboardWrite = orig })

	_, cmd := press(t, m, "y")
	assert.Equal(t, msg.LevelSuccess, toastOf(t, cmd).Level)
	assert.Equal(t, "copy me", got)
}

func TestToggleFavorite(t *testing.T) {
	s := openStore(t)
	id, _ := s.Create("Star", "", "")
	m := newTestModel(t, s)

	m, _ = press(t, m, "f")
	note, err := s.Get(id)
	require.NoError(t, err)
	assert.True(t, note.Favorite)
	assert.Equal(t, "Total: 1 | Favorites: 1", m.List().StatsLine())
}

func TestQuit_PersistsWindowState(t *testing.T) {
	s := openStore(t)
	id, _ := s.Create("Last", "seen", "")
	m := newTestModel(t, s)

	m, _ = press(t, m, "enter", "esc", ">")
	assert.Equal(t, 40, m.listWidth)

	_, cmd := press(t, m, "q")
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)

	require.NoError(t, state.Load())
	assert.Equal(t, state.Window{Width: 120, Height: 40, ListWidth: 40}, state.GetWindow())
	assert.Equal(t, id, state.GetLastNoteID())

	// Restored on the next start
	m = newTestModel(t, s)
	assert.Equal(t, 40, m.listWidth)
	assert.Equal(t, id, m.Editor().ID())
}

func TestQuit_DirtyAsks(t *testing.T) {
	m := newTestModel(t, openStore(t))

	m, cmd := press(t, m, "n", "Unsaved", "esc", "q")
	assert.Nil(t, cmd)
	assert.Equal(t, ModalConfirm, m.activeModal())
}

func TestResizeClamped(t *testing.T) {
	m := newTestModel(t, openStore(t))
	for i := 0; i < 20; i++ {
		m, _ = press(t, m, "<")
	}
	assert.Equal(t, minListWidth, m.listWidth)
}

func TestView(t *testing.T) {
	s := openStore(t)
	s.Create("Visible title", "# Heading\n\nbody", "tagged")
	m := newTestModel(t, s)

	out := ansi.Strip(m.View())
	assert.Contains(t, out, "Visible title")
	assert.Contains(t, out, "tagged")
	assert.Contains(t, out, "Total: 1 | Favorites: 0")

	m, _ = press(t, m, "?")
	assert.Contains(t, ansi.Strip(m.View()), "Keyboard Shortcuts")
}

func TestView_TooSmall(t *testing.T) {
	m := newTestModel(t, openStore(t))
	next, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 5})
	assert.Contains(t, next.(Model).View(), "Terminal too small")
}
