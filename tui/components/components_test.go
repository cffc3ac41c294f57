package components

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/vidnotes/notes"
	"github.com/user/vidnotes/player"
)

func intPtr(v int) *int { return &v }

func TestDraftState_Editing(t *testing.T) {
	var d DraftState
	d.Insert("Intrö")
	assert.Equal(t, "Intrö", d.Title)
	assert.Equal(t, 5, d.TitleCursor)

	d.MoveLeft()
	d.MoveLeft()
	d.Backspace()
	assert.Equal(t, "Inrö", d.Title)
	assert.Equal(t, 2, d.TitleCursor)

	d.NextField()
	require.Equal(t, DraftFieldContent, d.Field)
	d.Insert("body")
	d.MoveRight()
	assert.Equal(t, 4, d.ContentCursor)
	assert.Equal(t, "Inrö", d.Title)

	d.SetContent("[00:10] body", 8)
	d.Insert("x")
	assert.Equal(t, "[00:10] xbody", d.Content)

	d.Clear()
	assert.Equal(t, DraftState{}, d)
}

func TestPromptState(t *testing.T) {
	var p PromptState
	p.SetResult("old", true)
	p.Open("URL: ")
	assert.True(t, p.Active)
	assert.Empty(t, p.Result)

	p.InsertText("abd")
	p.MoveCursorLeft()
	p.InsertText("c")
	assert.Equal(t, "abcd", p.Input)
	p.MoveCursorRight()
	p.Backspace()
	assert.Equal(t, "abc", p.Input)

	assert.Equal(t, "abc", p.Submit())
	assert.False(t, p.Active)
	assert.Empty(t, p.Input)
}

func TestNotesListState_Selection(t *testing.T) {
	var l NotesListState
	assert.Nil(t, l.Selected())

	l.SetItems([]notes.Note{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	l.MoveUp()
	assert.Equal(t, "a", l.Selected().ID)
	l.MoveDown()
	l.MoveDown()
	l.MoveDown()
	assert.Equal(t, "c", l.Selected().ID)

	l.SetItems([]notes.Note{{ID: "a"}})
	assert.Equal(t, 0, l.SelectedIndex)
	l.SetItems(nil)
	assert.Nil(t, l.Selected())
}

func TestNotesList_Render(t *testing.T) {
	state := &NotesListState{}
	assert.Contains(t, NotesList(state, 80, 5), "No notes for this video")

	items := make([]notes.Note, 10)
	for i := range items {
		items[i] = notes.Note{ID: string(rune('a' + i)), Title: "note " + string(rune('a'+i)), Content: "c"}
	}
	items[0].Timestamp = intPtr(75)
	state.SetItems(items)

	out := NotesList(state, 80, 3)
	assert.Contains(t, out, "[01:15]")
	assert.Len(t, strings.Split(out, "\n"), 4)

	state.SelectedIndex = 9
	out = NotesList(state, 80, 3)
	assert.Equal(t, 7, state.ScrollOffset)
	assert.Contains(t, out, "note j")
	assert.NotContains(t, out, "note a")
}

func TestVideoPanel(t *testing.T) {
	assert.Contains(t, VideoPanel(player.VideoInfo{}, false, player.Uninitialized, 60), "Press o to open a video")
	assert.Contains(t, VideoPanel(player.VideoInfo{}, false, player.Loading, 60), "Loading player...")

	info := player.VideoInfo{VideoID: "dQw4w9WgXcQ", Title: "Song", DurationSeconds: 212}
	out := VideoPanel(info, true, player.Ready, 60)
	assert.Contains(t, out, "Song")
	assert.Contains(t, out, "dQw4w9WgXcQ")
	assert.Contains(t, out, "03:32")
}

func TestRenderInfoBox(t *testing.T) {
	out := RenderInfoBox("Notes", []string{"a very long line that will not fit"}, 12, false)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "Notes")
	assert.Empty(t, RenderInfoBox("x", nil, 3, false))
}
