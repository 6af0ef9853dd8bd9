// Command quill is a terminal notes app backed by SQLite.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/marcus/quill/internal/app"
	"github.com/marcus/quill/internal/config"
	"github.com/marcus/quill/internal/event"
	"github.com/marcus/quill/internal/keymap"
	"github.com/marcus/quill/internal/state"
	"github.com/marcus/quill/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags
var Version = ""

// Global flag values.
var (
	flagConfig string
	flagDB     string
	flagDebug  bool
)

// cfg is loaded by PersistentPreRunE for every command.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "quill",
	Short:         "A terminal notes app",
	Long:          "quill keeps titled, tagged notes in a local SQLite database and edits them in a two-pane terminal UI.",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := loadConfig(flagConfig)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if flagDB != "" {
			loaded.Store.Path = config.ExpandPath(flagDB)
		}
		cfg = loaded
		return nil
	},
	RunE: runTUI,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: ~/.config/quill/config.json)")
	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "notes database (default: ~/.local/share/quill/notes.db)")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "quill:", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(config.ExpandPath(path))
	}
	return config.Load()
}

// newLogger builds the process logger. The TUI owns the terminal, so its
// logs go to a file next to the database.
func newLogger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if flagDebug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func openLogFile() (*os.File, error) {
	path := filepath.Join(filepath.Dir(cfg.Store.Path), "quill.log")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	return os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
}

func openStore(logger *slog.Logger) (*store.Store, error) {
	s, err := store.Open(cfg.Store.Path,
		store.WithDriver(cfg.Store.Driver),
		store.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Store.Path, err)
	}
	return s, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	logFile, err := openLogFile()
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logFile.Close()
	logger := newLogger(logFile)
	slog.SetDefault(logger)

	s, err := openStore(logger)
	if err != nil {
		return err
	}
	defer s.Close()

	// State is optional; a broken file only loses window settings.
	if err := state.Init(); err != nil {
		logger.Warn("state load failed", "error", err)
	}

	dispatcher := event.NewWithLogger(logger)
	defer dispatcher.Close()

	km := keymap.NewRegistry()
	keymap.RegisterDefaults(km)
	for key, cmdID := range cfg.Keymap.Overrides {
		km.SetUserOverride(key, cmdID)
	}

	model := app.New(s, dispatcher, km, cfg, logger)
	logger.Info("quill started", "db", s.Path(), "driver", cfg.Store.Driver)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
