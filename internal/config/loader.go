package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	configDir  = ".config/quill"
	configFile = "config.json"
)

// Load loads configuration from the default location.
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom loads configuration from a specific path.
// If path is empty, uses ~/.config/quill/config.json. A missing file
// yields the defaults.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath()
	}

	v := viper.New()
	setDefaults(v, Default())
	v.SetConfigType("json")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("stat config: %w", err)
		} else {
			slog.Debug("config: no file, using defaults", "path", path)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.Store.Path = ExpandPath(cfg.Store.Path)
	cfg.UI.Stylesheet = ExpandPath(cfg.UI.Stylesheet)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("store.driver", d.Store.Driver)
	v.SetDefault("store.path", d.Store.Path)
	v.SetDefault("editor.autosaveInterval", d.Editor.AutosaveInterval)
	v.SetDefault("ui.stylesheet", d.UI.Stylesheet)
	v.SetDefault("ui.previewMode", d.UI.PreviewMode)
	v.SetDefault("ui.listWidthPercent", d.UI.ListWidthPercent)
	v.SetDefault("ui.showFooter", d.UI.ShowFooter)
	v.SetDefault("ui.watchStylesheet", d.UI.WatchStylesheet)
	v.SetDefault("keymap.overrides", map[string]string{})
}

// ExpandPath expands ~ to home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
	}
	return path
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, configDir, configFile)
}
