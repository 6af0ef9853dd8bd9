// Package export writes a note to a plain text file.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Format renders a note in the export layout: a markdown heading with the
// title, a blank line, then the body.
func Format(title, content string) string {
	return "# " + title + "\n\n" + content
}

// Write writes the formatted note to path as UTF-8, replacing any
// existing file.
func Write(path, title, content string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create export dir: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(Format(title, content)), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

var nameReplacer = strings.NewReplacer("/", "_", `\`, "_", "\x00", "")

// DefaultFileName suggests "{title}.txt" with path separators replaced.
func DefaultFileName(title string) string {
	name := strings.TrimSpace(nameReplacer.Replace(title))
	if name == "" {
		name = "note"
	}
	return name + ".txt"
}
