package components

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidnotes/tui/styles"
)

// PromptState holds the single-line prompt used to enter a video URL, and the
// result message shown in the same bar when the prompt is closed.
type PromptState struct {
	// Active indicates the prompt is open
	Active bool
	// Label is shown before the input
	Label string
	// Input is the current input buffer
	Input string
	// CursorPos is the rune position of the cursor within Input
	CursorPos int
	// Result is the result message to display (success or error)
	Result string
	// IsError indicates if the result is an error message
	IsError bool
}

// Prompt renders the prompt bar. When closed it shows the last result, if any.
func Prompt(state PromptState, width int) string {
	lineStyle := lipgloss.NewStyle().
		Background(styles.DarkPurple).
		Width(width)

	if state.Active {
		label := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true).Render(state.Label)
		input := styles.PrimaryText.Render(withCursor(state.Input, state.CursorPos))
		return lineStyle.Render(" " + label + input)
	}

	if state.Result != "" {
		resultStyle := lipgloss.NewStyle().Foreground(styles.Cyan).Bold(true)
		if state.IsError {
			resultStyle = styles.Warning
		}
		return lineStyle.Render(" " + resultStyle.Render(state.Result))
	}

	return lineStyle.Render(" ")
}

// Open activates the prompt with an empty buffer.
func (s *PromptState) Open(label string) {
	s.Active = true
	s.Label = label
	s.Input = ""
	s.CursorPos = 0
	s.ClearResult()
}

// InsertText inserts text at the cursor.
func (s *PromptState) InsertText(text string) {
	runes := []rune(s.Input)
	if s.CursorPos > len(runes) {
		s.CursorPos = len(runes)
	}
	s.Input = string(runes[:s.CursorPos]) + text + string(runes[s.CursorPos:])
	s.CursorPos += len([]rune(text))
}

// Backspace deletes the rune before the cursor.
func (s *PromptState) Backspace() {
	runes := []rune(s.Input)
	if s.CursorPos <= 0 || len(runes) == 0 {
		return
	}
	if s.CursorPos > len(runes) {
		s.CursorPos = len(runes)
	}
	s.Input = string(runes[:s.CursorPos-1]) + string(runes[s.CursorPos:])
	s.CursorPos--
}

// MoveCursorLeft moves the cursor left.
func (s *PromptState) MoveCursorLeft() {
	if s.CursorPos > 0 {
		s.CursorPos--
	}
}

// MoveCursorRight moves the cursor right.
func (s *PromptState) MoveCursorRight() {
	if s.CursorPos < len([]rune(s.Input)) {
		s.CursorPos++
	}
}

// Submit returns the input and closes the prompt.
func (s *PromptState) Submit() string {
	input := s.Input
	s.Cancel()
	return input
}

// Cancel closes the prompt and clears its buffer.
func (s *PromptState) Cancel() {
	s.Active = false
	s.Input = ""
	s.CursorPos = 0
}

// SetResult sets the result message.
func (s *PromptState) SetResult(msg string, isError bool) {
	s.Result = msg
	s.IsError = isError
}

// ClearResult clears the result message.
func (s *PromptState) ClearResult() {
	s.Result = ""
	s.IsError = false
}
