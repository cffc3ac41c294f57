// Package forms provides huh-based form components for the TUI and CLI.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// NewConfirmDeleteForm asks whether to delete the note titled title.
// The result pointer is bound to the confirm field value.
func NewConfirmDeleteForm(title string, confirmed *bool) *huh.Form {
	return newConfirmForm(
		"Delete note?",
		fmt.Sprintf("%q will be removed permanently.", title),
		"Yes, delete",
		confirmed,
	)
}

// NewConfirmClearForm asks whether to delete every note of videoID.
func NewConfirmClearForm(videoID string, count int, confirmed *bool) *huh.Form {
	return newConfirmForm(
		"Clear all notes?",
		fmt.Sprintf("All %d notes for video %s will be removed permanently.", count, videoID),
		"Yes, clear all",
		confirmed,
	)
}

func newConfirmForm(title, description, affirmative string, confirmed *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative(affirmative).
				Negative("No, go back").
				Value(confirmed),
		),
	).WithTheme(Theme())
}
