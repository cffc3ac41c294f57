package session

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/vidnotes/notes"
	"github.com/user/vidnotes/player"
	"github.com/user/vidnotes/player/playertest"
)

const videoID = "dQw4w9WgXcQ"

func newSession(t *testing.T) (*Session, *playertest.Platform, *notes.Store) {
	t.Helper()
	plat := playertest.NewPlatform()
	plat.AutoReady = true
	store := notes.NewStore(notes.NewMemoryBackend())
	return New(player.NewAdapter(plat, "player"), store), plat, store
}

func openVideo(t *testing.T, s *Session) {
	t.Helper()
	_, err := s.OpenVideo(context.Background(), "https://www.youtube.com/watch?v="+videoID)
	require.NoError(t, err)
}

func TestSession_EndToEnd(t *testing.T) {
	ctx := context.Background()
	s, plat, _ := newSession(t)

	list, err := s.OpenVideo(ctx, "https://www.youtube.com/watch?v="+videoID)
	require.NoError(t, err)
	assert.Empty(t, list)

	id, ok := s.CurrentVideoID()
	require.True(t, ok)
	assert.Equal(t, videoID, id)

	note, err := s.SaveNote(ctx, notes.Input{Title: "Intro", Content: "intro [0:15]"})
	require.NoError(t, err)
	require.NotNil(t, note.Timestamp)
	assert.Equal(t, 15, *note.Timestamp)

	jumped, err := s.JumpToNote(ctx, note.ID)
	require.NoError(t, err)
	assert.Equal(t, note.ID, jumped.ID)
	assert.Equal(t, []float64{15}, plat.Players()[0].Seeks())
}

func TestSession_NoVideoLoaded(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newSession(t)

	_, ok := s.CurrentVideoID()
	assert.False(t, ok)

	_, err := s.SaveNote(ctx, notes.Input{Title: "a", Content: "b"})
	assert.ErrorIs(t, err, ErrNoVideoLoaded)
	assert.ErrorIs(t, s.EditNote(ctx, "x", notes.Input{Title: "a", Content: "b"}), ErrNoVideoLoaded)
	assert.ErrorIs(t, s.DeleteNote(ctx, "x"), ErrNoVideoLoaded)
	assert.ErrorIs(t, s.ClearAll(ctx), ErrNoVideoLoaded)
	_, err = s.Notes(ctx)
	assert.ErrorIs(t, err, ErrNoVideoLoaded)
	_, err = s.Export(ctx)
	assert.ErrorIs(t, err, ErrNoVideoLoaded)
	_, err = s.JumpToNote(ctx, "x")
	assert.ErrorIs(t, err, ErrNoVideoLoaded)
}

func TestSession_OpenVideoInvalid(t *testing.T) {
	s, plat, _ := newSession(t)

	_, err := s.OpenVideo(context.Background(), "https://youtu.be/short")
	assert.ErrorIs(t, err, ErrInvalidVideoReference)
	assert.Empty(t, plat.Players())
}

func TestSession_OpenVideoFailedLoad(t *testing.T) {
	ctx := context.Background()
	plat := playertest.NewPlatform()
	s := New(player.NewAdapter(plat, "player"), notes.NewStore(notes.NewMemoryBackend()))

	done := make(chan error, 1)
	go func() {
		_, err := s.OpenVideo(ctx, videoID)
		done <- err
	}()
	plat.NextPlayer(t).Ready()
	require.NoError(t, <-done)

	// A second open that fails leaves no video current.
	go func() {
		_, err := s.OpenVideo(ctx, "9bZkp7q19f0")
		done <- err
	}()
	plat.NextPlayer(t).Fail(player.ErrCodeNotFound)
	err := <-done

	var initErr *player.InitError
	require.ErrorAs(t, err, &initErr)
	assert.Equal(t, player.ErrCodeNotFound, initErr.Code)
	_, ok := s.CurrentVideoID()
	assert.False(t, ok)
}

func TestSession_OpenVideoReturnsExistingNotes(t *testing.T) {
	ctx := context.Background()
	s, _, store := newSession(t)

	_, err := store.Add(ctx, videoID, notes.Input{Title: "Old", Content: "kept"})
	require.NoError(t, err)

	list, err := s.OpenVideo(ctx, videoID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Old", list[0].Title)
}

func TestSession_StampCurrentTime(t *testing.T) {
	s, plat, _ := newSession(t)

	_, _, err := s.StampCurrentTime("draft", 0)
	assert.ErrorIs(t, err, ErrPlayerNotReady)

	openVideo(t, s)
	plat.Players()[0].SetTime(3723.6)

	tests := []struct {
		name       string
		draft      string
		cursor     int
		want       string
		wantCursor int
	}{
		{"empty", "", 0, "[01:02:03] ", 11},
		{"middle", "abcdef", 3, "abc[01:02:03] def", 14},
		{"end", "abc", 3, "abc[01:02:03] ", 14},
		{"past end clamps", "abc", 99, "abc[01:02:03] ", 14},
		{"negative clamps", "abc", -4, "[01:02:03] abc", 11},
		{"multibyte", "héllo", 2, "hé[01:02:03] llo", 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, cursor, err := s.StampCurrentTime(tt.draft, tt.cursor)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantCursor, cursor)
		})
	}
}

func TestSession_EditAndDelete(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newSession(t)
	openVideo(t, s)

	note, err := s.SaveNote(ctx, notes.Input{Title: "A", Content: "[0:10]"})
	require.NoError(t, err)

	require.NoError(t, s.EditNote(ctx, note.ID, notes.Input{Title: "A2", Content: "moved [0:20]"}))
	list, err := s.Notes(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "A2", list[0].Title)
	assert.Equal(t, 20, *list[0].Timestamp)

	assert.ErrorIs(t, s.EditNote(ctx, "missing", notes.Input{Title: "x", Content: "y"}), ErrNoteNotFound)
	var verr *notes.ValidationError
	assert.ErrorAs(t, s.EditNote(ctx, note.ID, notes.Input{Title: "", Content: "y"}), &verr)

	require.NoError(t, s.DeleteNote(ctx, note.ID))
	assert.ErrorIs(t, s.DeleteNote(ctx, note.ID), ErrNoteNotFound)
}

func TestSession_ClearAll(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newSession(t)
	openVideo(t, s)

	_, _ = s.SaveNote(ctx, notes.Input{Title: "A", Content: "a"})
	_, _ = s.SaveNote(ctx, notes.Input{Title: "B", Content: "b"})
	require.NoError(t, s.ClearAll(ctx))

	list, err := s.Notes(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestSession_JumpToNoteErrors(t *testing.T) {
	ctx := context.Background()
	s, plat, _ := newSession(t)
	openVideo(t, s)

	_, err := s.JumpToNote(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoteNotFound)

	plain, err := s.SaveNote(ctx, notes.Input{Title: "Plain", Content: "no time"})
	require.NoError(t, err)
	_, err = s.JumpToNote(ctx, plain.ID)
	assert.ErrorIs(t, err, ErrNoTimestamp)

	timed, err := s.SaveNote(ctx, notes.Input{Title: "Timed", Content: "[1:00]"})
	require.NoError(t, err)

	// Reload without signalling ready: the note is found but the player is not ready.
	plat.AutoReady = false
	loadCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = s.player.Load(loadCtx, videoID)

	_, err = s.JumpToNote(ctx, timed.ID)
	assert.ErrorIs(t, err, ErrPlayerNotReady)
}

func TestSession_Export(t *testing.T) {
	ctx := context.Background()
	s, plat, _ := newSession(t)
	openVideo(t, s)

	_, err := s.SaveNote(ctx, notes.Input{Title: "Intro", Content: "intro [0:15]"})
	require.NoError(t, err)

	text, err := s.Export(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Video Notes: Video "+videoID))
	assert.Contains(t, text, "1. Intro")

	// With the player not ready the title falls back.
	plat.AutoReady = false
	loadCtx, cancel := context.WithCancel(ctx)
	cancel()
	_ = s.player.Load(loadCtx, videoID)

	text, err = s.Export(ctx)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Video Notes: "+UnknownVideoTitle))
}

// scriptedPlayer is a Player whose Load is supplied by the test.
type scriptedPlayer struct {
	load func(ctx context.Context, videoID string) error
}

func (p *scriptedPlayer) Load(ctx context.Context, videoID string) error { return p.load(ctx, videoID) }
func (p *scriptedPlayer) Ready() bool { return true }
func (p *scriptedPlayer) CurrentTime() int { return 0 }
func (p *scriptedPlayer) Seek(int) error { return nil }
func (p *scriptedPlayer) VideoInfo() (player.VideoInfo, bool) { return player.VideoInfo{}, false }

func TestSession_OpenVideoOvertaken(t *testing.T) {
	const newer = "9bZkp7q19f0"

	tests := []struct {
		name      string
		newerErr  error
		wantVideo string
	}{
		{"newer open fails", &player.InitError{Code: player.ErrCodeNotFound}, ""},
		{"newer open succeeds", nil, newer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			newerEntered := make(chan struct{})
			releaseNewer := make(chan struct{})
			newerDone := make(chan error, 1)

			var s *Session
			p := &scriptedPlayer{}
			p.load = func(ctx context.Context, id string) error {
				if id == newer {
					close(newerEntered)
					<-releaseNewer
					return tt.newerErr
				}
				// The older load completes only after the newer open has started.
				go func() {
					_, err := s.OpenVideo(ctx, newer)
					newerDone <- err
				}()
				<-newerEntered
				return nil
			}
			s = New(p, notes.NewStore(notes.NewMemoryBackend()))

			list, err := s.OpenVideo(ctx, videoID)
			require.ErrorIs(t, err, player.ErrSuperseded)
			assert.Nil(t, list)
			_, ok := s.CurrentVideoID()
			assert.False(t, ok, "overtaken open must not set the current video")

			close(releaseNewer)
			err = <-newerDone
			if tt.newerErr != nil {
				require.ErrorAs(t, err, new(*player.InitError))
			} else {
				require.NoError(t, err)
			}

			id, ok := s.CurrentVideoID()
			assert.Equal(t, tt.wantVideo, id)
			assert.Equal(t, tt.wantVideo != "", ok)
		})
	}
}
