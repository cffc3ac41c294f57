package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/vidnotes/tui/styles"
)

// RenderInfoBox renders contentLines inside a rounded box with the title set into
// the top border. A focused box gets a bright border.
//
//	╭─ Title ─────╮
//	│content      │
//	╰─────────────╯
func RenderInfoBox(title string, contentLines []string, width int, focused bool) string {
	if width < 4 {
		return ""
	}
	innerWidth := width - 2

	borderColor := styles.Purple
	if focused {
		borderColor = styles.BrightPurple
	}
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	headerStyle := lipgloss.NewStyle().Foreground(styles.Pink).Bold(true)

	headerText := headerStyle.Render(" " + title + " ")
	fill := innerWidth - 1 - lipgloss.Width(headerText)
	if fill < 0 {
		fill = 0
	}
	lines := []string{
		borderStyle.Render("╭─") + headerText + borderStyle.Render(strings.Repeat("─", fill)+"╮"),
	}

	for _, line := range contentLines {
		if lipgloss.Width(line) > innerWidth {
			line = ansi.Truncate(line, innerWidth, "…")
		}
		pad := innerWidth - lipgloss.Width(line)
		lines = append(lines, borderStyle.Render("│")+line+strings.Repeat(" ", pad)+borderStyle.Render("│"))
	}

	lines = append(lines, borderStyle.Render("╰"+strings.Repeat("─", innerWidth)+"╯"))
	return strings.Join(lines, "\n")
}
