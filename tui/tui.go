// Package tui is the bubbletea terminal interface over a note-taking session.
package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/user/vidnotes/notes"
	"github.com/user/vidnotes/player"
	"github.com/user/vidnotes/session"
	"github.com/user/vidnotes/tui/components"
	"github.com/user/vidnotes/tui/forms"
)

const (
	// tickInterval is the interval for polling player status.
	tickInterval = 250 * time.Millisecond
	// resultDisplayDuration is how long to show action results.
	resultDisplayDuration = 3 * time.Second
)

// StatusSource reports player status for the status bar and video panel.
// *player.Adapter implements it.
type StatusSource interface {
	State() player.State
	Ready() bool
	PlaybackState() int
	CurrentTime() int
	VideoInfo() (player.VideoInfo, bool)
}

// Options configures the TUI.
type Options struct {
	// ExportDir is where exported note files are written.
	ExportDir string
	// LoadTimeout bounds each video load. Zero means no limit.
	LoadTimeout time.Duration
	// InitialVideo, when set, is opened on start.
	InitialVideo string
}

// formKind identifies what the active huh form is for.
type formKind int

const (
	formNone formKind = iota
	formEditNote
	formDeleteNote
	formClearAll
)

// tickMsg is sent on every tick interval to refresh player status.
type tickMsg time.Time

// clearResultMsg clears the result line if no newer result replaced it.
type clearResultMsg struct{ seq int }

// videoOpenedMsg carries the outcome of an asynchronous OpenVideo.
type videoOpenedMsg struct {
	seq   int
	raw   string
	notes []notes.Note
	err   error
}

// Model is the Bubbletea model for the TUI application.
type Model struct {
	ctx     context.Context
	session *session.Session
	status  StatusSource
	opts    Options
	now     func() time.Time

	width    int
	height   int
	quitting bool
	showHelp bool
	loading  bool
	openSeq  int

	statusBar components.StatusBarState
	notesList components.NotesListState
	draft     components.DraftState
	prompt    components.PromptState
	resultSeq int

	form       *huh.Form
	formKind   formKind
	formNoteID string
	noteForm   forms.NoteFormResult
	confirmed  bool
}

// NewModel creates a TUI model over sess. status is usually the session's player adapter.
func NewModel(ctx context.Context, sess *session.Session, status StatusSource, opts Options) *Model {
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	return &Model{
		ctx:     ctx,
		session: sess,
		status:  status,
		opts:    opts,
		now:     time.Now,
	}
}

// Init starts the status ticker and opens the initial video, if any.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{tickCmd()}
	if m.opts.InitialVideo != "" {
		cmds = append(cmds, m.openVideo(m.opts.InitialVideo))
	}
	return tea.Batch(cmds...)
}

// tickCmd returns a command that sends a tickMsg after the tick interval.
func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the TUI on the alternate screen and blocks until it exits.
func Run(ctx context.Context, sess *session.Session, status StatusSource, opts Options) error {
	model := NewModel(ctx, sess, status, opts)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		m.refreshStatus()
		return m, tickCmd()

	case clearResultMsg:
		if msg.seq == m.resultSeq {
			m.prompt.ClearResult()
		}
		return m, nil

	case videoOpenedMsg:
		return m, m.handleVideoOpened(msg)
	}

	if m.form != nil {
		return m, m.updateForm(msg)
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	// Any key dismisses the help overlay
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}
	if m.prompt.Active {
		return m, m.handlePromptKey(key)
	}
	if m.draft.Active {
		return m, m.handleDraftKey(key)
	}
	return m, m.handleNormalKey(key)
}

// handleNormalKey handles keys while the notes list has focus.
func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return tea.Quit
	case "?":
		m.showHelp = true
	case "o":
		m.prompt.Open("Video URL or id: ")
	case "j", "down":
		m.notesList.MoveDown()
	case "k", "up":
		m.notesList.MoveUp()
	case "n", "i":
		m.draft.Active = true
	case "enter":
		return m.jumpToSelected()
	case "e":
		return m.openEditForm()
	case "d":
		return m.openDeleteForm()
	case "D":
		return m.openClearForm()
	case "x":
		return m.exportNotes()
	}
	return nil
}

// handlePromptKey edits the video URL prompt.
func (m *Model) handlePromptKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.prompt.Cancel()
	case tea.KeyEnter:
		raw := m.prompt.Submit()
		return m.openVideo(raw)
	case tea.KeyBackspace:
		m.prompt.Backspace()
	case tea.KeyLeft:
		m.prompt.MoveCursorLeft()
	case tea.KeyRight:
		m.prompt.MoveCursorRight()
	case tea.KeySpace:
		m.prompt.InsertText(" ")
	case tea.KeyRunes:
		m.prompt.InsertText(string(msg.Runes))
	case tea.KeyCtrlC:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// handleDraftKey edits the draft note.
func (m *Model) handleDraftKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.draft.Active = false
	case tea.KeyTab, tea.KeyShiftTab:
		m.draft.NextField()
	case tea.KeyCtrlT:
		return m.stampDraft()
	case tea.KeyCtrlS:
		return m.saveDraft()
	case tea.KeyEnter:
		if m.draft.Field == components.DraftFieldTitle {
			m.draft.NextField()
		} else {
			m.draft.Insert("\n")
		}
	case tea.KeyBackspace:
		m.draft.Backspace()
	case tea.KeyLeft:
		m.draft.MoveLeft()
	case tea.KeyRight:
		m.draft.MoveRight()
	case tea.KeySpace:
		m.draft.Insert(" ")
	case tea.KeyRunes:
		m.draft.Insert(string(msg.Runes))
	case tea.KeyCtrlC:
		m.quitting = true
		return tea.Quit
	}
	return nil
}

// updateForm forwards msg to the active huh form and acts on completion.
func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && key.Type == tea.KeyEsc {
		m.closeForm()
		return m.setResult("Cancelled", false)
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.finishForm()
	case huh.StateAborted:
		m.closeForm()
		return m.setResult("Cancelled", false)
	}
	return cmd
}

func (m *Model) showForm(kind formKind, noteID string, form *huh.Form) tea.Cmd {
	form.SubmitCmd = nil
	form.CancelCmd = nil
	m.form = form
	m.formKind = kind
	m.formNoteID = noteID
	return form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.formKind = formNone
	m.formNoteID = ""
	m.confirmed = false
}

// setResult shows msg in the result line and schedules it to clear.
func (m *Model) setResult(msg string, isError bool) tea.Cmd {
	m.resultSeq++
	seq := m.resultSeq
	m.prompt.SetResult(msg, isError)
	return tea.Tick(resultDisplayDuration, func(time.Time) tea.Msg {
		return clearResultMsg{seq: seq}
	})
}

// refreshStatus polls the player for the status bar.
func (m *Model) refreshStatus() {
	m.statusBar.State = m.status.State()
	m.statusBar.Playback = m.status.PlaybackState()
	m.statusBar.TimePos = m.status.CurrentTime()
	m.statusBar.VideoID, _ = m.session.CurrentVideoID()
	m.statusBar.NoteCount = len(m.notesList.Items)
	if info, ok := m.status.VideoInfo(); ok {
		m.statusBar.Duration = info.DurationSeconds
	} else {
		m.statusBar.Duration = 0
	}
}
