package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/marcus/quill/internal/config"
	"github.com/marcus/quill/internal/export"
	"github.com/marcus/quill/internal/store"
	"github.com/marcus/quill/internal/version"
	"github.com/spf13/cobra"
)

var (
	flagJSON   bool
	flagSearch string
	flagTag    string
	flagForce  bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List notes, most recently updated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			notes, err := s.List(flagSearch, flagTag)
			if err != nil {
				return err
			}
			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), notes)
			}
			return writeNoteTable(cmd.OutOrStdout(), notes)
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show note counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(s *store.Store) error {
			st, err := s.Stats()
			if err != nil {
				return err
			}
			if flagJSON {
				return writeJSON(cmd.OutOrStdout(), st)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Total: %d | Favorites: %d | Tag sets: %d\n",
				st.Total, st.Favorites, st.UniqueTags)
			return nil
		})
	},
}

var exportCmd = &cobra.Command{
	Use:   "export ID PATH",
	Short: "Write a note to a text file",
	Long:  "Export writes \"# <title>\", a blank line and the note body to PATH as UTF-8.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid note id %q", args[0])
		}
		path := config.ExpandPath(args[1])
		return withStore(func(s *store.Store) error {
			note, err := s.Get(id)
			if err != nil {
				return err
			}
			if note == nil {
				return fmt.Errorf("note %d not found", id)
			}
			if err := export.Write(path, note.Title, note.Content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %q to %s\n", note.Title, path)
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quill version",
	Args:  cobra.NoArgs,
	// Needs no config
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		info := version.Current(Version)
		if flagJSON {
			return writeJSON(cmd.OutOrStdout(), info)
		}
		fmt.Fprintln(cmd.OutOrStdout(), info.String())
		fmt.Fprintln(cmd.OutOrStdout(), "upgrade:", version.UpgradeCommand(info.Install))
		return nil
	},
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect or create the config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configFilePath()
		if _, err := os.Stat(path); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := config.SaveTo(path, config.Default()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeJSON(cmd.OutOrStdout(), cfg)
	},
}

func init() {
	listCmd.Flags().StringVar(&flagSearch, "search", "", "substring of title or content")
	listCmd.Flags().StringVar(&flagTag, "tag", "", "substring of tags")
	for _, c := range []*cobra.Command{listCmd, statsCmd, versionCmd} {
		c.Flags().BoolVar(&flagJSON, "json", false, "output as JSON")
	}
	configInitCmd.Flags().BoolVar(&flagForce, "force", false, "overwrite an existing file")

	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
}

func configFilePath() string {
	if flagConfig != "" {
		return config.ExpandPath(flagConfig)
	}
	return config.ConfigPath()
}

// withStore opens the configured store for the duration of fn. Logs go to
// stderr since no TUI owns the terminal.
func withStore(fn func(*store.Store) error) error {
	s, err := openStore(newLogger(os.Stderr))
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeNoteTable(w io.Writer, notes []store.Note) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tTAGS\tFAV\tUPDATED")
	for _, n := range notes {
		fav := ""
		if n.Favorite {
			fav = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", n.ID, n.Title, n.Tags, fav, humanize.Time(n.UpdatedAt))
	}
	return tw.Flush()
}
