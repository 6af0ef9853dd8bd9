package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Store  StoreConfig      `json:"store"`
	Editor saveEditorConfig `json:"editor"`
	UI     UIConfig         `json:"ui"`
	Keymap KeymapConfig     `json:"keymap"`
}

type saveEditorConfig struct {
	AutosaveInterval string `json:"autosaveInterval"`
}

func toSaveConfig(cfg *Config) saveConfig {
	return saveConfig{
		Store: cfg.Store,
		Editor: saveEditorConfig{
			AutosaveInterval: cfg.Editor.AutosaveInterval.String(),
		},
		UI:     cfg.UI,
		Keymap: cfg.Keymap,
	}
}

// Save writes cfg to the default config path.
func Save(cfg *Config) error {
	path := ConfigPath()
	if path == "" {
		return fmt.Errorf("cannot resolve config path")
	}
	return SaveTo(path, cfg)
}

// SaveTo writes cfg as indented JSON, creating the directory if needed.
// Top-level keys already in the file that Config does not manage are kept.
func SaveTo(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	merged := map[string]json.RawMessage{}
	if existing, err := os.ReadFile(path); err == nil {
		// Unparseable files are replaced wholesale.
		_ = json.Unmarshal(existing, &merged)
	}

	managed, err := json.Marshal(toSaveConfig(cfg))
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(managed, &fields); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.MarshalIndent(merged, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
