package keymap

// Contexts
const (
	ContextGlobal = "global"
	ContextList   = "notes-list"
	ContextEditor = "notes-editor"
)

// Command ids
const (
	CmdNewNote        = "new-note"
	CmdDeleteNote     = "delete-note"
	CmdExportNote     = "export-note"
	CmdSearch         = "search"
	CmdClearSearch    = "clear-search"
	CmdSave           = "save"
	CmdClear          = "clear"
	CmdToggleFavorite = "toggle-favorite"
	CmdAddTag         = "add-tag"
	CmdFilterTag      = "filter-tag"
	CmdSelect         = "select"
	CmdSwitchPane     = "switch-pane"
	CmdTogglePreview  = "toggle-preview"
	CmdYankContent    = "yank-content"
	CmdRefresh        = "refresh"
	CmdGrowList       = "grow-list"
	CmdShrinkList     = "shrink-list"
	CmdCursorUp       = "cursor-up"
	CmdCursorDown     = "cursor-down"
	CmdCursorTop      = "cursor-top"
	CmdCursorBottom   = "cursor-bottom"
	CmdToggleHelp     = "toggle-help"
	CmdQuit           = "quit"
)

// DefaultCommands returns the named commands shown in the footer and help,
// ordered by priority within each context.
func DefaultCommands() []Command {
	return []Command{
		{ID: CmdNewNote, Name: "new", Context: ContextList, Priority: 1},
		{ID: CmdSelect, Name: "open", Context: ContextList, Priority: 2},
		{ID: CmdSearch, Name: "search", Context: ContextList, Priority: 3},
		{ID: CmdDeleteNote, Name: "delete", Context: ContextList, Priority: 4},
		{ID: CmdToggleFavorite, Name: "favorite", Context: ContextList, Priority: 5},
		{ID: CmdAddTag, Name: "tag", Context: ContextList, Priority: 6},
		{ID: CmdFilterTag, Name: "filter", Context: ContextList, Priority: 7},
		{ID: CmdExportNote, Name: "export", Context: ContextList, Priority: 8},
		{ID: CmdTogglePreview, Name: "preview", Context: ContextList, Priority: 9},
		{ID: CmdYankContent, Name: "yank", Context: ContextList, Priority: 10},
		{ID: CmdClearSearch, Name: "clear filter", Context: ContextList, Priority: 11},
		{ID: CmdRefresh, Name: "refresh", Context: ContextList, Priority: 12},
		{ID: CmdShrinkList, Name: "narrower", Context: ContextList, Priority: 13},
		{ID: CmdGrowList, Name: "wider", Context: ContextList, Priority: 14},
		{ID: CmdSwitchPane, Name: "editor", Context: ContextList, Priority: 15},

		{ID: CmdSave, Name: "save", Context: ContextEditor, Priority: 1},
		{ID: CmdSwitchPane, Name: "list", Context: ContextEditor, Priority: 2},
		{ID: CmdNewNote, Name: "new", Context: ContextEditor, Priority: 3},
		{ID: CmdClear, Name: "clear", Context: ContextEditor, Priority: 4},
		{ID: CmdExportNote, Name: "export", Context: ContextEditor, Priority: 5},
		{ID: CmdTogglePreview, Name: "preview", Context: ContextEditor, Priority: 6},

		{ID: CmdToggleHelp, Name: "help", Context: ContextGlobal, Priority: 1},
		{ID: CmdQuit, Name: "quit", Context: ContextGlobal, Priority: 2},
	}
}

// DefaultBindings returns the default key bindings.
func DefaultBindings() []Binding {
	return []Binding{
		// Global bindings
		{Key: "ctrl+c", Command: CmdQuit, Context: ContextGlobal},
		{Key: "ctrl+s", Command: CmdSave, Context: ContextGlobal},
		{Key: "f1", Command: CmdToggleHelp, Context: ContextGlobal},

		// Note list
		{Key: "q", Command: CmdQuit, Context: ContextList},
		{Key: "?", Command: CmdToggleHelp, Context: ContextList},
		{Key: "n", Command: CmdNewNote, Context: ContextList},
		{Key: "enter", Command: CmdSelect, Context: ContextList},
		{Key: "/", Command: CmdSearch, Context: ContextList},
		{Key: "esc", Command: CmdClearSearch, Context: ContextList},
		{Key: "d", Command: CmdDeleteNote, Context: ContextList},
		{Key: "delete", Command: CmdDeleteNote, Context: ContextList},
		{Key: "f", Command: CmdToggleFavorite, Context: ContextList},
		{Key: "t", Command: CmdAddTag, Context: ContextList},
		{Key: "T", Command: CmdFilterTag, Context: ContextList},
		{Key: "e", Command: CmdExportNote, Context: ContextList},
		{Key: "p", Command: CmdTogglePreview, Context: ContextList},
		{Key: "y", Command: CmdYankContent, Context: ContextList},
		{Key: "r", Command: CmdRefresh, Context: ContextList},
		{Key: "<", Command: CmdShrinkList, Context: ContextList},
		{Key: ">", Command: CmdGrowList, Context: ContextList},
		{Key: "tab", Command: CmdSwitchPane, Context: ContextList},
		{Key: "l", Command: CmdSwitchPane, Context: ContextList},
		{Key: "j", Command: CmdCursorDown, Context: ContextList},
		{Key: "down", Command: CmdCursorDown, Context: ContextList},
		{Key: "k", Command: CmdCursorUp, Context: ContextList},
		{Key: "up", Command: CmdCursorUp, Context: ContextList},
		{Key: "g g", Command: CmdCursorTop, Context: ContextList},
		{Key: "home", Command: CmdCursorTop, Context: ContextList},
		{Key: "G", Command: CmdCursorBottom, Context: ContextList},
		{Key: "end", Command: CmdCursorBottom, Context: ContextList},

		// Editor (text input has the focus, so only modified keys)
		{Key: "esc", Command: CmdSwitchPane, Context: ContextEditor},
		{Key: "ctrl+n", Command: CmdNewNote, Context: ContextEditor},
		{Key: "ctrl+l", Command: CmdClear, Context: ContextEditor},
		{Key: "ctrl+e", Command: CmdExportNote, Context: ContextEditor},
		{Key: "ctrl+p", Command: CmdTogglePreview, Context: ContextEditor},
		{Key: "ctrl+y", Command: CmdYankContent, Context: ContextEditor},
	}
}

// RegisterDefaults registers all default bindings and commands with the registry.
func RegisterDefaults(r *Registry) {
	for _, c := range DefaultCommands() {
		r.RegisterCommand(c)
	}
	for _, b := range DefaultBindings() {
		r.RegisterBinding(b)
	}
}
