package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidnotes/tui/styles"
)

// DraftField represents which field of the draft is being edited.
type DraftField int

const (
	// DraftFieldTitle is the title input.
	DraftFieldTitle DraftField = iota
	// DraftFieldContent is the multi-line content input.
	DraftFieldContent
)

// DraftState holds the unsaved note being composed. Cursors are rune offsets.
type DraftState struct {
	// Active indicates the draft has keyboard focus
	Active bool
	// Field is the focused field
	Field DraftField
	// Title is the title buffer
	Title string
	// Content is the content buffer
	Content string
	// TitleCursor is the cursor position within Title
	TitleCursor int
	// ContentCursor is the cursor position within Content
	ContentCursor int
}

// NoteDraft renders the draft editor inside an info box.
func NoteDraft(state DraftState, width, height int) string {
	labelStyle := styles.SecondaryText.Bold(true)
	active := lipgloss.NewStyle().Foreground(styles.LightLavender)
	inactive := styles.SecondaryText

	var lines []string

	title := state.Title
	if state.Active && state.Field == DraftFieldTitle {
		title = active.Render(withCursor(state.Title, state.TitleCursor))
	} else if title == "" {
		title = styles.Placeholder.Render("(title)")
	} else {
		title = inactive.Render(title)
	}
	lines = append(lines, labelStyle.Render("Title: ")+title, "")

	content := state.Content
	if state.Active && state.Field == DraftFieldContent {
		content = withCursor(state.Content, state.ContentCursor)
	}
	if content == "" {
		lines = append(lines, styles.Placeholder.Render("(content: ctrl+t inserts the current time)"))
	} else {
		style := inactive
		if state.Active && state.Field == DraftFieldContent {
			style = active
		}
		for _, line := range strings.Split(content, "\n") {
			lines = append(lines, style.Render(line))
		}
	}

	for len(lines) < height-3 {
		lines = append(lines, "")
	}
	lines = append(lines, styles.Placeholder.Render("tab field · ctrl+t stamp · ctrl+s save · esc leave"))

	return RenderInfoBox("Draft", lines, width, state.Active)
}

func withCursor(s string, cursor int) string {
	runes := []rune(s)
	if cursor > len(runes) {
		cursor = len(runes)
	}
	return string(runes[:cursor]) + "▏" + string(runes[cursor:])
}

// Clear resets the draft buffers. Focus is kept.
func (s *DraftState) Clear() {
	s.Field = DraftFieldTitle
	s.Title = ""
	s.Content = ""
	s.TitleCursor = 0
	s.ContentCursor = 0
}

// NextField toggles between title and content.
func (s *DraftState) NextField() {
	if s.Field == DraftFieldTitle {
		s.Field = DraftFieldContent
	} else {
		s.Field = DraftFieldTitle
	}
}

// field returns the focused buffer and cursor.
func (s *DraftState) field() (*string, *int) {
	if s.Field == DraftFieldTitle {
		return &s.Title, &s.TitleCursor
	}
	return &s.Content, &s.ContentCursor
}

// Insert inserts text at the cursor of the focused field.
func (s *DraftState) Insert(text string) {
	buf, cursor := s.field()
	runes := []rune(*buf)
	if *cursor > len(runes) {
		*cursor = len(runes)
	}
	*buf = string(runes[:*cursor]) + text + string(runes[*cursor:])
	*cursor += len([]rune(text))
}

// Backspace deletes the rune before the cursor.
func (s *DraftState) Backspace() {
	buf, cursor := s.field()
	runes := []rune(*buf)
	if *cursor <= 0 || len(runes) == 0 {
		return
	}
	if *cursor > len(runes) {
		*cursor = len(runes)
	}
	*buf = string(runes[:*cursor-1]) + string(runes[*cursor:])
	*cursor--
}

// MoveLeft moves the cursor of the focused field left.
func (s *DraftState) MoveLeft() {
	_, cursor := s.field()
	if *cursor > 0 {
		*cursor--
	}
}

// MoveRight moves the cursor of the focused field right.
func (s *DraftState) MoveRight() {
	buf, cursor := s.field()
	if *cursor < len([]rune(*buf)) {
		*cursor++
	}
}

// SetContent replaces the content buffer and its cursor.
func (s *DraftState) SetContent(content string, cursor int) {
	s.Content = content
	s.ContentCursor = cursor
}
