package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidnotes/player"
	"github.com/user/vidnotes/tui/components"
	"github.com/user/vidnotes/tui/layout"
	"github.com/user/vidnotes/tui/styles"
)

const (
	// minTerminalWidth is the narrowest terminal the layout renders in.
	minTerminalWidth = 60
	// draftHeight is the draft editor height when stacked under the notes.
	draftHeight = 10
)

// View renders the TUI.
func (m *Model) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	if m.showHelp {
		return components.HelpOverlay(m.width, m.height)
	}

	if m.width > 0 && m.width < minTerminalWidth {
		hintStyle := lipgloss.NewStyle().Foreground(styles.Lavender).Italic(true)
		return styles.Warning.Render(fmt.Sprintf("Terminal too narrow (%d cols)", m.width)) + "\n" +
			hintStyle.Render(fmt.Sprintf("Minimum width: %d columns", minTerminalWidth)) + "\n" +
			hintStyle.Render("Please resize your terminal.")
	}

	if m.form != nil {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.View())
	}

	width := m.width
	if width == 0 {
		width = 80
	}

	header := styles.Bar.Width(width).Render(" " + styles.Timestamp.Render("vidnotes") +
		styles.SecondaryText.Render("  ? help · q quit"))

	info, _ := m.status.VideoInfo()
	ready := m.status.Ready() && !m.loading
	state := m.status.State()
	if m.loading {
		state = player.Loading
	}
	videoPanel := components.VideoPanel(info, ready, state, width)

	prompt := components.Prompt(m.prompt, width)
	statusBar := components.StatusBar(m.statusBar, width)

	bodyHeight := m.height - 3 - lipgloss.Height(videoPanel)
	if bodyHeight < 6 {
		bodyHeight = 6
	}

	notesWidth, draftWidth, split := layout.ComputeColumnWidths(width)
	var body string
	if split {
		notesView := components.RenderInfoBox("Notes", m.notesLines(notesWidth-2, bodyHeight-3), notesWidth, !m.draft.Active)
		draftView := components.NoteDraft(m.draft, draftWidth, bodyHeight)
		body = layout.JoinColumns([]string{notesView, draftView}, []int{notesWidth, draftWidth}, bodyHeight)
	} else {
		dh := draftHeight
		if dh > bodyHeight/2 {
			dh = bodyHeight / 2
		}
		notesHeight := bodyHeight - dh
		notesView := components.RenderInfoBox("Notes", m.notesLines(notesWidth-2, notesHeight-3), notesWidth, !m.draft.Active)
		notesView = layout.Box{Width: notesWidth, Height: notesHeight}.Render(notesView)
		draftView := layout.Box{Width: draftWidth, Height: dh}.Render(components.NoteDraft(m.draft, draftWidth, dh))
		body = notesView + "\n" + draftView
	}

	return strings.Join([]string{header, videoPanel, body, prompt, statusBar}, "\n")
}

// notesLines renders the notes table as info box content lines.
func (m *Model) notesLines(width, rows int) []string {
	if rows < 1 {
		rows = 1
	}
	return strings.Split(components.NotesList(&m.notesList, width, rows), "\n")
}
