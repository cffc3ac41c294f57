package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidnotes/tui/styles"
)

type binding struct {
	key  string
	desc string
}

type bindingGroup struct {
	title    string
	bindings []binding
}

var helpGroups = []bindingGroup{
	{
		title: "Video",
		bindings: []binding{
			{"o", "Open a video URL or id"},
			{"Enter", "Jump to the selected note's timestamp"},
		},
	},
	{
		title: "Notes",
		bindings: []binding{
			{"j / k", "Select next / previous note"},
			{"n", "Focus the draft editor"},
			{"e", "Edit the selected note"},
			{"d", "Delete the selected note"},
			{"D", "Clear all notes for this video"},
			{"x", "Export notes to a text file"},
		},
	},
	{
		title: "Draft",
		bindings: []binding{
			{"Tab", "Switch between title and content"},
			{"Ctrl+T", "Insert the current time at the cursor"},
			{"Ctrl+S", "Save the draft as a note"},
			{"Esc", "Return to the notes list"},
		},
	},
	{
		title: "General",
		bindings: []binding{
			{"?", "Show/hide this help"},
			{"q", "Quit application"},
		},
	},
}

// HelpOverlay renders the keybinding overlay centred in width x height.
func HelpOverlay(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(styles.Cyan).
		Bold(true).
		Padding(0, 1)

	groupHeaderStyle := lipgloss.NewStyle().
		Foreground(styles.Pink).
		Bold(true).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Width(12)

	var lines []string
	lines = append(lines, titleStyle.Render("Keybindings"), "")

	for _, group := range helpGroups {
		lines = append(lines, groupHeaderStyle.Render(group.title))
		for _, b := range group.bindings {
			lines = append(lines, "  "+keyStyle.Render(b.key)+styles.PrimaryText.Render(b.desc))
		}
	}

	lines = append(lines, "", styles.Placeholder.Render("Press any key to close"))

	panel := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.BrightPurple).
		Padding(1, 2).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
