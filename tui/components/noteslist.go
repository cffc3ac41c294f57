package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/user/vidnotes/notes"
	"github.com/user/vidnotes/tui/styles"
)

// NotesListState holds the notes of the current video and the selection.
type NotesListState struct {
	// Items is the note collection in insertion order
	Items []notes.Note
	// SelectedIndex is the currently selected item index
	SelectedIndex int
	// ScrollOffset is the first visible row
	ScrollOffset int
}

// NotesList renders the notes as a table of rows rows (excluding header).
func NotesList(state *NotesListState, width, rows int) string {
	headerStyle := lipgloss.NewStyle().
		Foreground(styles.Lavender).
		Bold(true).
		Underline(true)

	// Column widths (Time: 10, Title: 20, Content: rest)
	timeWidth := 10
	titleWidth := 20
	contentWidth := width - timeWidth - titleWidth - 4
	if contentWidth < 10 {
		contentWidth = 10
	}

	lines := []string{headerStyle.Render(fmt.Sprintf(" %-*s %-*s %-*s",
		timeWidth, "Time",
		titleWidth, "Title",
		contentWidth, "Content"))}

	if len(state.Items) == 0 {
		lines = append(lines, styles.Placeholder.Render(" No notes for this video"))
		return strings.Join(lines, "\n")
	}

	state.clampScroll(rows)

	for row := 0; row < rows; row++ {
		i := state.ScrollOffset + row
		if i >= len(state.Items) {
			break
		}
		lines = append(lines, renderNoteRow(state.Items[i], i == state.SelectedIndex, timeWidth, titleWidth, contentWidth, width))
	}
	return strings.Join(lines, "\n")
}

// clampScroll keeps the selected row visible.
func (s *NotesListState) clampScroll(rows int) {
	if rows < 1 {
		rows = 1
	}
	if s.SelectedIndex < s.ScrollOffset {
		s.ScrollOffset = s.SelectedIndex
	} else if s.SelectedIndex >= s.ScrollOffset+rows {
		s.ScrollOffset = s.SelectedIndex - rows + 1
	}
	maxOffset := len(s.Items) - rows
	if maxOffset < 0 {
		maxOffset = 0
	}
	if s.ScrollOffset > maxOffset {
		s.ScrollOffset = maxOffset
	}
	if s.ScrollOffset < 0 {
		s.ScrollOffset = 0
	}
}

func renderNoteRow(n notes.Note, selected bool, timeWidth, titleWidth, contentWidth, fullWidth int) string {
	timeStr := "-"
	if n.HasTimestamp() {
		timeStr = "[" + n.TimestampText() + "]"
	}
	content := strings.ReplaceAll(n.Content, "\n", " ")

	row := fmt.Sprintf(" %-*s %-*s %-*s",
		timeWidth, timeStr,
		titleWidth, truncate(n.Title, titleWidth),
		contentWidth, truncate(content, contentWidth))

	lineStyle := styles.PrimaryText.Width(fullWidth)
	if selected {
		lineStyle = styles.Highlight.Width(fullWidth)
	}
	return lineStyle.Render(row)
}

// truncate shortens s to maxLen cells with an ellipsis.
func truncate(s string, maxLen int) string {
	return ansi.Truncate(s, maxLen, "…")
}

// SetItems replaces the list contents, keeping the selection in range.
func (s *NotesListState) SetItems(items []notes.Note) {
	s.Items = items
	if s.SelectedIndex >= len(items) {
		s.SelectedIndex = len(items) - 1
	}
	if s.SelectedIndex < 0 {
		s.SelectedIndex = 0
	}
}

// MoveUp moves the selection up in the list.
func (s *NotesListState) MoveUp() {
	if s.SelectedIndex > 0 {
		s.SelectedIndex--
	}
}

// MoveDown moves the selection down in the list.
func (s *NotesListState) MoveDown() {
	if s.SelectedIndex < len(s.Items)-1 {
		s.SelectedIndex++
	}
}

// Selected returns the selected note, or nil if the list is empty.
func (s *NotesListState) Selected() *notes.Note {
	if len(s.Items) == 0 || s.SelectedIndex < 0 || s.SelectedIndex >= len(s.Items) {
		return nil
	}
	return &s.Items[s.SelectedIndex]
}
