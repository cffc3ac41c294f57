package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/vidnotes/logger"
	"github.com/user/vidnotes/notes"
	"github.com/user/vidnotes/player"
	"github.com/user/vidnotes/session"
	"github.com/user/vidnotes/tui/components"
	"github.com/user/vidnotes/tui/forms"
)

// openVideo loads raw in the background; the outcome arrives as a videoOpenedMsg.
func (m *Model) openVideo(raw string) tea.Cmd {
	if _, err := session.ExtractVideoID(raw); err != nil {
		return m.setResult(errorMessage(err), true)
	}

	m.openSeq++
	seq := m.openSeq
	m.loading = true
	m.notesList.SetItems(nil)
	m.prompt.SetResult("Initializing video player...", false)

	ctx, timeout := m.ctx, m.opts.LoadTimeout
	sess := m.session
	return func() tea.Msg {
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		list, err := sess.OpenVideo(ctx, raw)
		return videoOpenedMsg{seq: seq, raw: raw, notes: list, err: err}
	}
}

func (m *Model) handleVideoOpened(msg videoOpenedMsg) tea.Cmd {
	// A newer open already replaced this one.
	if msg.seq != m.openSeq || errors.Is(msg.err, player.ErrSuperseded) {
		return nil
	}
	m.loading = false
	if msg.err != nil {
		logger.Log.Error().Err(msg.err).Str("input", msg.raw).Msg("open video")
		return m.setResult(errorMessage(msg.err), true)
	}

	m.notesList.SelectedIndex = 0
	m.notesList.SetItems(msg.notes)
	m.refreshStatus()
	return m.setResult("Video loaded successfully!", false)
}

// reloadNotes refreshes the list from the session, keeping the selection in range.
func (m *Model) reloadNotes() error {
	list, err := m.session.Notes(m.ctx)
	if err != nil {
		return err
	}
	m.notesList.SetItems(list)
	m.statusBar.NoteCount = len(list)
	return nil
}

func (m *Model) selectNote(noteID string) {
	for i, n := range m.notesList.Items {
		if n.ID == noteID {
			m.notesList.SelectedIndex = i
			return
		}
	}
}

func (m *Model) stampDraft() tea.Cmd {
	content, cursor, err := m.session.StampCurrentTime(m.draft.Content, m.draft.ContentCursor)
	if err != nil {
		return m.setResult(errorMessage(err), true)
	}
	m.draft.SetContent(content, cursor)
	m.draft.Field = components.DraftFieldContent
	return nil
}

func (m *Model) saveDraft() tea.Cmd {
	note, err := m.session.SaveNote(m.ctx, notes.Input{Title: m.draft.Title, Content: m.draft.Content})
	if err != nil {
		return m.setResult(errorMessage(err), true)
	}
	m.draft.Clear()
	if err := m.reloadNotes(); err != nil {
		return m.setResult(errorMessage(err), true)
	}
	m.selectNote(note.ID)
	return m.setResult("Note saved successfully!", false)
}

func (m *Model) jumpToSelected() tea.Cmd {
	selected := m.notesList.Selected()
	if selected == nil {
		return nil
	}
	note, err := m.session.JumpToNote(m.ctx, selected.ID)
	if err != nil {
		return m.setResult(errorMessage(err), true)
	}
	return m.setResult("Jumped to "+note.TimestampText(), false)
}

func (m *Model) openEditForm() tea.Cmd {
	selected := m.notesList.Selected()
	if selected == nil {
		return nil
	}
	m.noteForm = forms.NoteFormResult{Title: selected.Title, Content: selected.Content}
	return m.showForm(formEditNote, selected.ID, forms.NewNoteForm("Edit Note", &m.noteForm))
}

func (m *Model) openDeleteForm() tea.Cmd {
	selected := m.notesList.Selected()
	if selected == nil {
		return nil
	}
	m.confirmed = false
	return m.showForm(formDeleteNote, selected.ID, forms.NewConfirmDeleteForm(selected.Title, &m.confirmed))
}

func (m *Model) openClearForm() tea.Cmd {
	videoID, ok := m.session.CurrentVideoID()
	if !ok {
		return m.setResult(errorMessage(session.ErrNoVideoLoaded), true)
	}
	m.confirmed = false
	return m.showForm(formClearAll, "", forms.NewConfirmClearForm(videoID, len(m.notesList.Items), &m.confirmed))
}

// finishForm applies a completed form.
func (m *Model) finishForm() tea.Cmd {
	kind, noteID, confirmed := m.formKind, m.formNoteID, m.confirmed
	m.closeForm()

	var (
		err error
		msg string
	)
	switch kind {
	case formEditNote:
		err = m.session.EditNote(m.ctx, noteID, notes.Input{Title: m.noteForm.Title, Content: m.noteForm.Content})
		msg = "Note updated successfully!"
	case formDeleteNote:
		if !confirmed {
			return nil
		}
		err = m.session.DeleteNote(m.ctx, noteID)
		msg = "Note deleted successfully!"
	case formClearAll:
		if !confirmed {
			return nil
		}
		err = m.session.ClearAll(m.ctx)
		msg = "All notes cleared!"
	default:
		return nil
	}
	if err != nil {
		return m.setResult(errorMessage(err), true)
	}
	if err := m.reloadNotes(); err != nil {
		return m.setResult(errorMessage(err), true)
	}
	return m.setResult(msg, false)
}

// exportNotes writes the current video's notes to a text file in the export directory.
func (m *Model) exportNotes() tea.Cmd {
	videoID, ok := m.session.CurrentVideoID()
	if !ok {
		return m.setResult(errorMessage(session.ErrNoVideoLoaded), true)
	}
	if len(m.notesList.Items) == 0 {
		return m.setResult("No notes to export", true)
	}

	text, err := m.session.Export(m.ctx)
	if err != nil {
		return m.setResult(errorMessage(err), true)
	}

	path := filepath.Join(m.opts.ExportDir, notes.ExportFilename(videoID, m.now()))
	if err := os.MkdirAll(m.opts.ExportDir, 0755); err != nil {
		logger.Log.Error().Err(err).Str("dir", m.opts.ExportDir).Msg("create export dir")
		return m.setResult("Error exporting notes", true)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		logger.Log.Error().Err(err).Str("path", path).Msg("write export")
		return m.setResult("Error exporting notes", true)
	}
	logger.Log.Info().Str("path", path).Msg("notes exported")
	return m.setResult("Notes exported to "+path, false)
}

// errorMessage turns session errors into result-line text.
func errorMessage(err error) string {
	var (
		verr    *notes.ValidationError
		initErr *player.InitError
	)
	switch {
	case errors.As(err, &verr):
		return "Please enter both title and content"
	case errors.Is(err, session.ErrInvalidVideoReference):
		return "Invalid YouTube URL. Please check the format."
	case errors.Is(err, session.ErrNoVideoLoaded):
		return "No video loaded"
	case errors.Is(err, session.ErrPlayerNotReady):
		return "Video player not ready yet. Please wait."
	case errors.Is(err, session.ErrNoteNotFound):
		return "Note not found"
	case errors.Is(err, session.ErrNoTimestamp):
		return "This note has no timestamp"
	case errors.Is(err, context.DeadlineExceeded):
		return "Timed out loading video"
	case errors.As(err, &initErr):
		return fmt.Sprintf("Error loading video (code %d). Please check the URL and try again.", initErr.Code)
	default:
		return err.Error()
	}
}
