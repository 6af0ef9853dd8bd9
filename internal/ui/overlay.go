// Package ui provides the modal widgets and compositing used by the shell.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/marcus/quill/internal/styles"
)

// dimStyle greys out the background behind a modal. Existing colors are
// stripped first since faint does not combine reliably with them.
func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(styles.TextSubtle)
}

func maxLineWidth(lines []string) int {
	w := 0
	for _, line := range lines {
		w = max(w, ansi.StringWidth(line))
	}
	return w
}

func dimLine(s string) string {
	return dimStyle().Render(ansi.Strip(s))
}

// compositeRow returns dimmed-left + boxLine + dimmed-right.
func compositeRow(bgLine, boxLine string, startX, boxWidth, totalWidth int) string {
	var out strings.Builder
	plain := ansi.Strip(bgLine)
	plainWidth := ansi.StringWidth(plain)
	dim := dimStyle()

	if startX > 0 {
		left := ansi.Truncate(plain, startX, "")
		out.WriteString(dim.Render(left))
		if pad := startX - ansi.StringWidth(left); pad > 0 {
			out.WriteString(strings.Repeat(" ", pad))
		}
	}

	out.WriteString(boxLine)
	// Pad short box lines so the right segment stays aligned.
	if pad := boxWidth - ansi.StringWidth(boxLine); pad > 0 {
		out.WriteString(strings.Repeat(" ", pad))
	}

	if right := startX + boxWidth; right < totalWidth && plainWidth > right {
		out.WriteString(dim.Render(ansi.Cut(plain, right, plainWidth)))
	}
	return out.String()
}

// OverlayModal centers box over a dimmed copy of background, producing
// exactly height lines.
func OverlayModal(background, box string, width, height int) string {
	bgLines := strings.Split(background, "\n")
	boxLines := strings.Split(box, "\n")

	boxWidth := maxLineWidth(boxLines)
	boxHeight := len(boxLines)
	startX := max((width-boxWidth)/2, 0)
	startY := max((height-boxHeight)/2, 0)

	out := make([]string, 0, height)
	for y := 0; y < height; y++ {
		bg := ""
		if y < len(bgLines) {
			bg = bgLines[y]
		}
		if row := y - startY; row >= 0 && row < boxHeight {
			out = append(out, compositeRow(bg, boxLines[row], startX, boxWidth, width))
			continue
		}
		out = append(out, dimLine(bg))
	}
	return strings.Join(out, "\n")
}
