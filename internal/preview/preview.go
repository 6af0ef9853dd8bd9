// Package preview renders a read-only view of a note body.
package preview

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
)

// Mode selects how note content is rendered.
type Mode string

const (
	ModePlain    Mode = "plain"
	ModeMarkdown Mode = "markdown"
	ModeSource   Mode = "source"
)

// Modes lists the valid modes in cycle order.
var Modes = []Mode{ModeMarkdown, ModeSource, ModePlain}

// minWrap keeps glamour from wrapping into a one-word column.
const minWrap = 20

// Renderer caches a glamour renderer per wrap width.
type Renderer struct {
	mode        Mode
	glamourTone string // "dark", "light" or "notty"
	chromaStyle string
	logger      *slog.Logger

	termWidth int
	term      *glamour.TermRenderer
}

// New creates a renderer. Unknown modes fall back to plain.
func New(mode Mode, glamourTone, chromaStyle string, logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	if glamourTone == "" {
		glamourTone = "dark"
	}
	if chromaStyle == "" {
		chromaStyle = "monokai"
	}
	r := &Renderer{glamourTone: glamourTone, chromaStyle: chromaStyle, logger: logger}
	r.SetMode(mode)
	return r
}

// Mode returns the active mode.
func (r *Renderer) Mode() Mode { return r.mode }

// SetMode switches the rendering mode.
func (r *Renderer) SetMode(m Mode) {
	switch m {
	case ModeMarkdown, ModeSource, ModePlain:
		r.mode = m
	default:
		r.mode = ModePlain
	}
}

// Next advances to the following mode and returns it.
func (r *Renderer) Next() Mode {
	for i, m := range Modes {
		if m == r.mode {
			r.mode = Modes[(i+1)%len(Modes)]
			return r.mode
		}
	}
	r.mode = Modes[0]
	return r.mode
}

// SetTheme changes the glamour tone and chroma style, dropping the cache.
func (r *Renderer) SetTheme(glamourTone, chromaStyle string) {
	if glamourTone != "" && glamourTone != r.glamourTone {
		r.glamourTone = glamourTone
		r.term = nil
	}
	if chromaStyle != "" {
		r.chromaStyle = chromaStyle
	}
}

// Render renders content for a pane width cells wide. Renderer failures
// return the plain text together with the error so callers can still
// show something.
func (r *Renderer) Render(content string, width int) (string, error) {
	switch r.mode {
	case ModeMarkdown:
		out, err := r.markdown(content, width)
		if err != nil {
			r.logger.Debug("preview: markdown failed", "error", err)
			return content, err
		}
		return out, nil
	case ModeSource:
		out, err := r.source(content)
		if err != nil {
			r.logger.Debug("preview: highlight failed", "error", err)
			return content, err
		}
		return out, nil
	default:
		return content, nil
	}
}

func (r *Renderer) markdown(content string, width int) (string, error) {
	width = max(width, minWrap)
	if r.term == nil || r.termWidth != width {
		term, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(r.glamourTone),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return "", fmt.Errorf("glamour renderer: %w", err)
		}
		r.term = term
		r.termWidth = width
	}
	out, err := r.term.Render(content)
	if err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}

func (r *Renderer) source(content string) (string, error) {
	var b strings.Builder
	if err := quick.Highlight(&b, content, "markdown", "terminal256", r.chromaStyle); err != nil {
		return "", fmt.Errorf("highlight: %w", err)
	}
	return b.String(), nil
}
