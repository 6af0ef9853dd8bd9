package styles

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Stylesheet is the user's optional styles file:
//
//	theme: light
//	colors:
//	  primary: "#FF5500"
//	  favorite: "#FFD700"
//	  markdownTheme: dracula
type Stylesheet struct {
	Theme  string            `yaml:"theme"`
	Colors map[string]string `yaml:"colors"`
}

// LoadStylesheet reads a stylesheet from path. A missing file returns
// (nil, nil).
func LoadStylesheet(path string) (*Stylesheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read stylesheet: %w", err)
	}
	var sheet Stylesheet
	if err := yaml.Unmarshal(data, &sheet); err != nil {
		return nil, fmt.Errorf("parse stylesheet %s: %w", path, err)
	}
	return &sheet, nil
}

// Apply activates the stylesheet's theme and overrides, returning the
// override keys that were ignored. A nil stylesheet restores the default
// theme.
func (s *Stylesheet) Apply() []string {
	if s == nil {
		ApplyTheme(DefaultTheme.Name)
		return nil
	}
	name := s.Theme
	if name == "" {
		name = DefaultTheme.Name
	}
	return ApplyThemeWithOverrides(name, s.Colors)
}

// ApplyStylesheetFile loads and applies path in one step.
func ApplyStylesheetFile(path string) (ignored []string, err error) {
	sheet, err := LoadStylesheet(path)
	if err != nil {
		return nil, err
	}
	return sheet.Apply(), nil
}
