package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// State holds persistent window settings.
type State struct {
	Window Window `json:"window"`

	// LastNoteID is the note that was selected when quill last exited.
	LastNoteID int64 `json:"lastNoteId,omitempty"`

	// PreviewMode remembers the preview toggle ("" = use config).
	PreviewMode string `json:"previewMode,omitempty"`
}

// Window is the saved geometry. Zero fields mean "no preference".
type Window struct {
	Width  int `json:"width,omitempty"`  // terminal columns at exit
	Height int `json:"height,omitempty"` // terminal rows at exit

	// ListWidth is the list pane width as a percentage of Width.
	ListWidth int `json:"listWidth,omitempty"`
}

var (
	current *State
	mu      sync.RWMutex
	path    string
)

// Init loads state from the default location.
func Init() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	return InitWithDir(filepath.Join(home, ".config", "quill"))
}

// InitWithDir loads state from a specified directory.
// This is primarily for testing to avoid reading real user state.
func InitWithDir(dir string) error {
	mu.Lock()
	path = filepath.Join(dir, "state.json")
	mu.Unlock()
	return Load()
}

// Path returns the state file location.
func Path() string {
	mu.RLock()
	defer mu.RUnlock()
	return path
}

// Load reads state from disk.
func Load() error {
	mu.Lock()
	defer mu.Unlock()

	current = &State{}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil // no state file yet, use defaults
	}
	if err != nil {
		return err
	}

	return json.Unmarshal(data, current)
}

// Save writes state to disk.
func Save() error {
	mu.RLock()
	defer mu.RUnlock()

	if current == nil || path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// GetWindow returns the saved geometry.
func GetWindow() Window {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return Window{}
	}
	return current.Window
}

// SetWindow records the geometry. It is written on the next Save.
func SetWindow(w Window) {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = &State{}
	}
	current.Window = w
}

// GetLastNoteID returns the note selected at last exit, 0 if none.
func GetLastNoteID() int64 {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return 0
	}
	return current.LastNoteID
}

// SetLastNoteID records the selected note. It is written on the next Save.
func SetLastNoteID(id int64) {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = &State{}
	}
	current.LastNoteID = id
}

// GetPreviewMode returns the saved preview mode, "" if none.
func GetPreviewMode() string {
	mu.RLock()
	defer mu.RUnlock()
	if current == nil {
		return ""
	}
	return current.PreviewMode
}

// SetPreviewMode saves the preview mode preference.
func SetPreviewMode(mode string) error {
	mu.Lock()
	if current == nil {
		current = &State{}
	}
	current.PreviewMode = mode
	mu.Unlock()
	return Save()
}
