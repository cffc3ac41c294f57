package forms

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"
)

// NoteFormResult holds the data returned by a completed note form.
type NoteFormResult struct {
	Title   string
	Content string
}

// HasData returns true if any field in the note form result has a non-empty value.
func (r *NoteFormResult) HasData() bool {
	return strings.TrimSpace(r.Title) != "" || strings.TrimSpace(r.Content) != ""
}

func required(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(field + " is required")
		}
		return nil
	}
}

// NewNoteForm creates a huh form for a note's title and content. header is shown
// above the fields; result is bound to the fields and pre-fills them.
func NewNoteForm(header string, result *NoteFormResult) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title(header).
				Description("Write [MM:SS] or [HH:MM:SS] in the content to link the note to a moment."),

			huh.NewInput().
				Title("Title").
				Description("Required").
				Value(&result.Title).
				Validate(required("title")),

			huh.NewText().
				Title("Content").
				Description("Required").
				Lines(5).
				Value(&result.Content).
				Validate(required("content")),
		),
	).WithTheme(Theme())
}
