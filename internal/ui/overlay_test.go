package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestMaxLineWidth(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{"empty", nil, 0},
		{"plain", []string{"ab", "abcd", "a"}, 4},
		{"ansi ignored", []string{"\x1b[31mred\x1b[0m"}, 3},
		{"wide runes", []string{"日本"}, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := maxLineWidth(tt.lines); got != tt.want {
				t.Errorf("maxLineWidth() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCompositeRow(t *testing.T) {
	got := ansi.Strip(compositeRow("0123456789", "AB", 4, 2, 10))
	if got != "0123AB6789" {
		t.Errorf("compositeRow() = %q, want %q", got, "0123AB6789")
	}

	// Short background is padded up to the box.
	got = ansi.Strip(compositeRow("ab", "X", 5, 1, 10))
	if got != "ab   X" {
		t.Errorf("compositeRow() = %q, want %q", got, "ab   X")
	}
}

func TestOverlayModal(t *testing.T) {
	bg := "line1\nline2\nline3\nline4\nline5"
	result := OverlayModal(bg, "[M]", 10, 5)

	lines := strings.Split(result, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "[M]") {
		t.Errorf("modal not on middle line: %q", lines[2])
	}
}

func TestOverlayModal_StripsBackgroundColors(t *testing.T) {
	result := OverlayModal("\x1b[31mred\x1b[0m\n\x1b[32mgreen\x1b[0m", "X", 10, 3)
	if strings.Contains(result, "\x1b[31m") {
		t.Error("original red ANSI code should be stripped")
	}
	if !strings.Contains(result, "X") {
		t.Error("modal should be present")
	}
}

func TestOverlayModal_ShortBackground(t *testing.T) {
	result := OverlayModal("a\nb", "MODAL", 10, 5)
	lines := strings.Split(result, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[2], "MODAL") {
		t.Errorf("modal not centered: %q", lines)
	}
}
