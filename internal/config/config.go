package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration structure.
type Config struct {
	Store  StoreConfig  `json:"store" mapstructure:"store"`
	Editor EditorConfig `json:"editor" mapstructure:"editor"`
	UI     UIConfig     `json:"ui" mapstructure:"ui"`
	Keymap KeymapConfig `json:"keymap" mapstructure:"keymap"`
}

// StoreConfig selects the database file and driver.
type StoreConfig struct {
	Driver string `json:"driver" mapstructure:"driver" validate:"oneof=sqlite sqlite3"`
	Path   string `json:"path" mapstructure:"path" validate:"required"` // supports ~ expansion
}

// EditorConfig configures the editor pane.
type EditorConfig struct {
	AutosaveInterval time.Duration `json:"autosaveInterval" mapstructure:"autosaveInterval" validate:"gte=1s"`
}

// UIConfig configures UI appearance.
type UIConfig struct {
	Stylesheet       string `json:"stylesheet" mapstructure:"stylesheet"` // YAML palette file, optional
	PreviewMode      string `json:"previewMode" mapstructure:"previewMode" validate:"oneof=markdown source plain"`
	ListWidthPercent int    `json:"listWidthPercent" mapstructure:"listWidthPercent" validate:"min=15,max=85"`
	ShowFooter       bool   `json:"showFooter" mapstructure:"showFooter"`
	WatchStylesheet  bool   `json:"watchStylesheet" mapstructure:"watchStylesheet"`
}

// KeymapConfig holds key binding overrides (key -> command id).
type KeymapConfig struct {
	Overrides map[string]string `json:"overrides" mapstructure:"overrides"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: "sqlite",
			Path:   "~/.local/share/quill/notes.db",
		},
		Editor: EditorConfig{
			AutosaveInterval: 30 * time.Second,
		},
		UI: UIConfig{
			Stylesheet:       "~/.config/quill/styles.yaml",
			PreviewMode:      "markdown",
			ListWidthPercent: 35,
			ShowFooter:       true,
			WatchStylesheet:  true,
		},
		Keymap: KeymapConfig{
			Overrides: make(map[string]string),
		},
	}
}

var validate = validator.New()

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Keymap.Overrides == nil {
		c.Keymap.Overrides = make(map[string]string)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
