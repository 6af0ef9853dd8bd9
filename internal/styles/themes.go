package styles

import (
	"regexp"
	"sort"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// themeMu protects access to themeRegistry and currentTheme
var themeMu sync.RWMutex

// hexColorRegex validates hex color codes (#RRGGBB or #RRGGBBAA with alpha)
var hexColorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}([0-9A-Fa-f]{2})?$`)

// ColorPalette holds all theme colors
type ColorPalette struct {
	// Brand colors
	Primary   string `yaml:"primary"`
	Secondary string `yaml:"secondary"`
	Accent    string `yaml:"accent"`

	// Status colors
	Success string `yaml:"success"`
	Warning string `yaml:"warning"`
	Error   string `yaml:"error"`
	Info    string `yaml:"info"`

	// Text colors
	TextPrimary   string `yaml:"textPrimary"`
	TextSecondary string `yaml:"textSecondary"`
	TextMuted     string `yaml:"textMuted"`
	TextSubtle    string `yaml:"textSubtle"`

	// Background colors
	BgPrimary   string `yaml:"bgPrimary"`
	BgSecondary string `yaml:"bgSecondary"`
	BgTertiary  string `yaml:"bgTertiary"`

	// Border colors
	BorderNormal string `yaml:"borderNormal"`
	BorderActive string `yaml:"borderActive"`

	// Note list
	Favorite string `yaml:"favorite"`
	Tag      string `yaml:"tag"`

	ToastSuccessText string `yaml:"toastSuccessText"`
	ToastErrorText   string `yaml:"toastErrorText"`

	// Third-party theme names
	SyntaxTheme   string `yaml:"syntaxTheme"`   // Chroma style name
	MarkdownTheme string `yaml:"markdownTheme"` // Glamour standard style
}

// Theme is a named palette.
type Theme struct {
	Name        string
	DisplayName string
	Colors      ColorPalette
}

// Built-in themes
var (
	DefaultTheme = Theme{
		Name:        "default",
		DisplayName: "Default Dark",
		Colors: ColorPalette{
			Primary:   "#7C3AED",
			Secondary: "#3B82F6",
			Accent:    "#F59E0B",

			Success: "#10B981",
			Warning: "#F59E0B",
			Error:   "#EF4444",
			Info:    "#3B82F6",

			TextPrimary:   "#F9FAFB",
			TextSecondary: "#9CA3AF",
			TextMuted:     "#6B7280",
			TextSubtle:    "#4B5563",

			BgPrimary:   "#111827",
			BgSecondary: "#1F2937",
			BgTertiary:  "#374151",

			BorderNormal: "#374151",
			BorderActive: "#7C3AED",

			Favorite: "#FFA500",
			Tag:      "#60A5FA",

			ToastSuccessText: "#000000",
			ToastErrorText:   "#FFFFFF",

			SyntaxTheme:   "monokai",
			MarkdownTheme: "dark",
		},
	}

	LightTheme = Theme{
		Name:        "light",
		DisplayName: "Light",
		Colors: ColorPalette{
			Primary:   "#6D28D9",
			Secondary: "#2563EB",
			Accent:    "#D97706",

			Success: "#059669",
			Warning: "#D97706",
			Error:   "#DC2626",
			Info:    "#2563EB",

			TextPrimary:   "#111827",
			TextSecondary: "#374151",
			TextMuted:     "#6B7280",
			TextSubtle:    "#9CA3AF",

			BgPrimary:   "#FFFFFF",
			BgSecondary: "#F3F4F6",
			BgTertiary:  "#E5E7EB",

			BorderNormal: "#D1D5DB",
			BorderActive: "#6D28D9",

			Favorite: "#EA580C",
			Tag:      "#2563EB",

			ToastSuccessText: "#FFFFFF",
			ToastErrorText:   "#FFFFFF",

			SyntaxTheme:   "github",
			MarkdownTheme: "light",
		},
	}
)

// themeRegistry holds all available themes
var themeRegistry = map[string]Theme{
	"default": DefaultTheme,
	"light":   LightTheme,
}

// currentTheme tracks the active theme name
var currentTheme = "default"

// IsValidHexColor checks if a string is a valid hex color code (#RRGGBB or #RRGGBBAA)
func IsValidHexColor(hex string) bool {
	return hexColorRegex.MatchString(hex)
}

// IsValidTheme checks if a theme name exists in the registry
func IsValidTheme(name string) bool {
	themeMu.RLock()
	defer themeMu.RUnlock()
	_, ok := themeRegistry[name]
	return ok
}

// GetTheme returns a theme by name, or the default theme if not found
func GetTheme(name string) Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	if theme, ok := themeRegistry[name]; ok {
		return theme
	}
	return DefaultTheme
}

// GetCurrentThemeName returns the name of the currently active theme
func GetCurrentThemeName() string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}

// ListThemes returns the names of all available themes in sorted order
func ListThemes() []string {
	themeMu.RLock()
	defer themeMu.RUnlock()
	names := make([]string, 0, len(themeRegistry))
	for name := range themeRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyTheme applies a theme by name, updating all style variables
func ApplyTheme(name string) {
	ApplyThemeWithOverrides(name, nil)
}

// ApplyThemeWithOverrides applies a theme with color overrides and returns
// the override keys that were rejected.
func ApplyThemeWithOverrides(name string, overrides map[string]string) []string {
	theme := GetTheme(name)
	var rejected []string
	for key, value := range overrides {
		if !applySingleOverride(&theme.Colors, key, value) {
			rejected = append(rejected, key)
		}
	}
	sort.Strings(rejected)

	ApplyThemeColors(theme)
	themeMu.Lock()
	currentTheme = theme.Name
	themeMu.Unlock()
	return rejected
}

// applySingleOverride applies one override. Color values must be valid hex
// colors; unknown keys and invalid colors are skipped.
func applySingleOverride(palette *ColorPalette, key, value string) bool {
	// syntaxTheme and markdownTheme are names, not colors
	isThemeName := key == "syntaxTheme" || key == "markdownTheme"
	if !isThemeName && !IsValidHexColor(value) {
		return false
	}

	switch key {
	case "primary":
		palette.Primary = value
	case "secondary":
		palette.Secondary = value
	case "accent":
		palette.Accent = value
	case "success":
		palette.Success = value
	case "warning":
		palette.Warning = value
	case "error":
		palette.Error = value
	case "info":
		palette.Info = value
	case "textPrimary":
		palette.TextPrimary = value
	case "textSecondary":
		palette.TextSecondary = value
	case "textMuted":
		palette.TextMuted = value
	case "textSubtle":
		palette.TextSubtle = value
	case "bgPrimary":
		palette.BgPrimary = value
	case "bgSecondary":
		palette.BgSecondary = value
	case "bgTertiary":
		palette.BgTertiary = value
	case "borderNormal":
		palette.BorderNormal = value
	case "borderActive":
		palette.BorderActive = value
	case "favorite":
		palette.Favorite = value
	case "tag":
		palette.Tag = value
	case "toastSuccessText":
		palette.ToastSuccessText = value
	case "toastErrorText":
		palette.ToastErrorText = value
	case "syntaxTheme":
		if value == "" {
			return false
		}
		palette.SyntaxTheme = value
	case "markdownTheme":
		if value == "" {
			return false
		}
		palette.MarkdownTheme = value
	default:
		return false
	}
	return true
}

// ApplyThemeColors updates all style package variables from a theme.
// Callers run it from the Bubble Tea event loop or before the program starts.
func ApplyThemeColors(theme Theme) {
	c := theme.Colors

	Primary = lipgloss.Color(c.Primary)
	Secondary = lipgloss.Color(c.Secondary)
	Accent = lipgloss.Color(c.Accent)

	Success = lipgloss.Color(c.Success)
	Warning = lipgloss.Color(c.Warning)
	Error = lipgloss.Color(c.Error)
	Info = lipgloss.Color(c.Info)

	TextPrimary = lipgloss.Color(c.TextPrimary)
	TextSecondary = lipgloss.Color(c.TextSecondary)
	TextMuted = lipgloss.Color(c.TextMuted)
	TextSubtle = lipgloss.Color(c.TextSubtle)

	BgPrimary = lipgloss.Color(c.BgPrimary)
	BgSecondary = lipgloss.Color(c.BgSecondary)
	BgTertiary = lipgloss.Color(c.BgTertiary)

	BorderNormal = lipgloss.Color(c.BorderNormal)
	BorderActive = lipgloss.Color(c.BorderActive)

	FavoriteColor = lipgloss.Color(c.Favorite)
	TagColor = lipgloss.Color(c.Tag)

	ToastSuccessTextColor = lipgloss.Color(c.ToastSuccessText)
	ToastErrorTextColor = lipgloss.Color(c.ToastErrorText)

	CurrentSyntaxTheme = c.SyntaxTheme
	CurrentMarkdownTheme = c.MarkdownTheme

	rebuildStyles()
}

// rebuildStyles recreates all lipgloss styles with current colors
func rebuildStyles() {
	PanelActive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderActive).
		Padding(0, 1)

	PanelInactive = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(BorderNormal).
		Padding(0, 1)

	PanelHeader = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	Body = lipgloss.NewStyle().
		Foreground(TextPrimary)

	Muted = lipgloss.NewStyle().
		Foreground(TextMuted)

	Subtle = lipgloss.NewStyle().
		Foreground(TextSubtle)

	KeyHint = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	StatusSaved = lipgloss.NewStyle().
		Foreground(Success)

	StatusUnsaved = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)

	StatusNew = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	ToastSuccess = lipgloss.NewStyle().
		Background(Success).
		Foreground(ToastSuccessTextColor).
		Bold(true).
		Padding(0, 1)

	ToastWarning = lipgloss.NewStyle().
		Background(Warning).
		Foreground(ToastSuccessTextColor).
		Bold(true).
		Padding(0, 1)

	ToastError = lipgloss.NewStyle().
		Background(Error).
		Foreground(ToastErrorTextColor).
		Bold(true).
		Padding(0, 1)

	ListItemNormal = lipgloss.NewStyle().
		Foreground(TextPrimary)

	ListItemSelected = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(BgTertiary)

	ListItemFavorite = lipgloss.NewStyle().
		Foreground(FavoriteColor).
		Bold(true)

	ListTags = lipgloss.NewStyle().
		Foreground(TagColor)

	ListCursor = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	Footer = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgSecondary)

	BarChip = lipgloss.NewStyle().
		Foreground(TextMuted).
		Background(BgTertiary).
		Padding(0, 1)

	BarChipActive = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Padding(0, 1).
		Bold(true)

	ModalBox = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Background(BgSecondary).
		Padding(1, 2)

	ModalTitle = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Bold(true).
		MarginBottom(1)

	Button = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(BgTertiary).
		Padding(0, 2)

	ButtonFocused = lipgloss.NewStyle().
		Foreground(TextPrimary).
		Background(Primary).
		Padding(0, 2).
		Bold(true)
}

// GetSyntaxTheme returns the chroma style for the current theme
func GetSyntaxTheme() string {
	return CurrentSyntaxTheme
}

// GetMarkdownTheme returns the glamour style for the current theme
func GetMarkdownTheme() string {
	return CurrentMarkdownTheme
}
