package forms

import (
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidnotes/tui/styles"
)

// Theme returns a huh theme that matches the TUI color palette.
func Theme() *huh.Theme {
	t := huh.ThemeBase()

	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	button := func(bg, text lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Background(bg).Foreground(text).Padding(0, 1)
	}

	// Focused field styles
	t.Focused.Base = t.Focused.Base.
		BorderStyle(lipgloss.ThickBorder()).
		BorderLeft(true).
		BorderForeground(styles.BrightPurple).
		PaddingLeft(1)
	t.Focused.Title = fg(styles.Pink).Bold(true)
	t.Focused.NoteTitle = fg(styles.Cyan).Bold(true)
	t.Focused.Description = fg(styles.Lavender)
	t.Focused.ErrorIndicator = fg(styles.Pink).Bold(true)
	t.Focused.ErrorMessage = fg(styles.Pink)
	t.Focused.TextInput.Cursor = fg(styles.Cyan)
	t.Focused.TextInput.Placeholder = fg(styles.Purple)
	t.Focused.TextInput.Prompt = fg(styles.Cyan)
	t.Focused.TextInput.Text = fg(styles.LightLavender)
	t.Focused.FocusedButton = button(styles.BrightPurple, styles.LightLavender).Bold(true)
	t.Focused.BlurredButton = button(styles.Purple, styles.Lavender)
	t.Focused.Next = t.Focused.FocusedButton
	t.Focused.Card = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(styles.Purple).
		Padding(0, 1)

	// Blurred field styles
	t.Blurred.Base = t.Blurred.Base.
		BorderStyle(lipgloss.HiddenBorder()).
		BorderLeft(true).
		PaddingLeft(1)
	t.Blurred.Title = fg(styles.Lavender)
	t.Blurred.NoteTitle = fg(styles.Lavender)
	t.Blurred.Description = fg(styles.Purple)
	t.Blurred.ErrorIndicator = fg(styles.Pink)
	t.Blurred.ErrorMessage = fg(styles.Pink)
	t.Blurred.TextInput.Cursor = fg(styles.Purple)
	t.Blurred.TextInput.Placeholder = fg(styles.Purple)
	t.Blurred.TextInput.Prompt = fg(styles.Purple)
	t.Blurred.TextInput.Text = fg(styles.Lavender)
	t.Blurred.FocusedButton = button(styles.Purple, styles.Lavender)
	t.Blurred.BlurredButton = button(styles.DeepPurple, styles.Purple)
	t.Blurred.Next = t.Blurred.FocusedButton
	t.Blurred.Card = t.Focused.Card.BorderForeground(styles.DeepPurple)

	return t
}
