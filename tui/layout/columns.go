package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidnotes/tui/styles"
)

// Responsive layout constants.
const (
	// SplitThreshold is the terminal width below which the draft stacks under the notes.
	SplitThreshold = 100
	// DraftMinWidth is the narrowest draft column in split layout.
	DraftMinWidth = 36
)

// ComputeColumnWidths returns the notes and draft column widths. split is false when
// the terminal is too narrow for two columns; both widths are then the full width.
// At >=140 width the columns split 60/40, below that the draft gets its minimum.
func ComputeColumnWidths(termWidth int) (notesWidth, draftWidth int, split bool) {
	if termWidth < SplitThreshold {
		return termWidth, termWidth, false
	}

	// One border character between the columns
	usable := termWidth - 1
	if termWidth >= 140 {
		notesWidth = usable * 3 / 5
	} else {
		notesWidth = usable - DraftMinWidth
	}
	return notesWidth, usable - notesWidth, true
}

// JoinColumns joins pre-rendered column strings side by side with purple border separators.
// Each column is normalized to the given height and padded to its width.
func JoinColumns(columns []string, widths []int, height int) string {
	borderStr := lipgloss.NewStyle().
		Foreground(styles.Purple).
		Render("│")

	colLines := make([][]string, len(columns))
	for i, col := range columns {
		colLines[i] = FitLines(strings.Split(col, "\n"), height)
	}

	rows := make([]string, 0, height)
	for row := 0; row < height; row++ {
		parts := make([]string, 0, len(colLines))
		for i, lines := range colLines {
			parts = append(parts, Fit(lines[row], widths[i]))
		}
		rows = append(rows, strings.Join(parts, borderStr))
	}

	return strings.Join(rows, "\n")
}
