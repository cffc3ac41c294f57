package layout

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/vidnotes/tui/styles"
)

// Box clips rendered content to exactly Width columns by Height lines.
type Box struct {
	Width  int
	Height int
}

// Render fits content into the box. Lines cut off at the bottom are counted in
// a "↓ N more" marker on the last row.
func (b Box) Render(content string) string {
	if b.Width <= 0 || b.Height <= 0 {
		return ""
	}
	lines := strings.Split(content, "\n")

	if hidden := len(lines) - b.Height; hidden > 0 {
		lines = lines[:b.Height]
		marker := lipgloss.NewStyle().Foreground(styles.Purple).
			Render(fmt.Sprintf("↓ %d more", hidden+1))
		lines[b.Height-1] = marker
	}

	lines = FitLines(lines, b.Height)
	for i, line := range lines {
		lines[i] = Fit(line, b.Width)
	}
	return strings.Join(lines, "\n")
}

// Fit pads s with spaces, or truncates it with an ellipsis, to exactly width cells.
// Width is measured ANSI-aware, so styled text and wide runes fit correctly.
func Fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = ansi.Truncate(s, width, "…")
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

// FitLines cuts or pads lines with blanks to exactly height entries.
func FitLines(lines []string, height int) []string {
	if height <= 0 {
		return nil
	}
	out := make([]string, height)
	copy(out, lines)
	return out
}
