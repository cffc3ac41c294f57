// Package session ties the player adapter and the note store into one
// timestamp-linked note-taking session for the current video.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/user/vidnotes/logger"
	"github.com/user/vidnotes/notes"
	"github.com/user/vidnotes/pkg/timeutil"
	"github.com/user/vidnotes/player"
)

// UnknownVideoTitle is used in exports when the player cannot report a title.
const UnknownVideoTitle = "Unknown Video"

// Player is the part of player.Adapter the session drives.
type Player interface {
	Load(ctx context.Context, videoID string) error
	Ready() bool
	CurrentTime() int
	Seek(seconds int) error
	VideoInfo() (player.VideoInfo, bool)
}

// Session holds the current video and routes note operations to its collection.
type Session struct {
	player Player
	store  *notes.Store

	mu      sync.Mutex
	videoID string
	// openGen is bumped by every OpenVideo; only the newest open may set videoID.
	openGen uint64
}

// New creates a session with no current video.
func New(p Player, store *notes.Store) *Session {
	return &Session{player: p, store: store}
}

// CurrentVideoID returns the current video, if any.
func (s *Session) CurrentVideoID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.videoID, s.videoID != ""
}

func (s *Session) current() (string, error) {
	id, ok := s.CurrentVideoID()
	if !ok {
		return "", ErrNoVideoLoaded
	}
	return id, nil
}

// OpenVideo loads the video referenced by raw and makes it current, returning its notes.
// A failed load leaves no video current. An open overtaken by a newer one returns
// player.ErrSuperseded and changes nothing.
func (s *Session) OpenVideo(ctx context.Context, raw string) ([]notes.Note, error) {
	videoID, err := ExtractVideoID(raw)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.openGen++
	gen := s.openGen
	s.videoID = ""
	s.mu.Unlock()

	loadErr := s.player.Load(ctx, videoID)

	s.mu.Lock()
	if gen != s.openGen {
		s.mu.Unlock()
		logger.Log.Debug().Str("video_id", videoID).Msg("open video superseded")
		return nil, fmt.Errorf("load video %s: %w", videoID, player.ErrSuperseded)
	}
	if loadErr == nil {
		s.videoID = videoID
	}
	s.mu.Unlock()

	if loadErr != nil {
		logger.Log.Warn().Err(loadErr).Str("video_id", videoID).Msg("open video failed")
		return nil, fmt.Errorf("load video %s: %w", videoID, loadErr)
	}

	logger.Log.Info().Str("video_id", videoID).Msg("video opened")
	return s.store.List(ctx, videoID)
}

// StampCurrentTime inserts "[<current time>] " into draft at the rune offset cursor
// and returns the new text with the cursor placed after the insertion.
func (s *Session) StampCurrentTime(draft string, cursor int) (string, int, error) {
	if !s.player.Ready() {
		return draft, cursor, ErrPlayerNotReady
	}

	stamp := "[" + timeutil.FormatTimestamp(s.player.CurrentTime()) + "] "
	runes := []rune(draft)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}

	out := string(runes[:cursor]) + stamp + string(runes[cursor:])
	return out, cursor + len([]rune(stamp)), nil
}

// SaveNote adds a note to the current video.
func (s *Session) SaveNote(ctx context.Context, in notes.Input) (notes.Note, error) {
	videoID, err := s.current()
	if err != nil {
		return notes.Note{}, err
	}
	return s.store.Add(ctx, videoID, in)
}

// EditNote replaces the title and content of noteID.
func (s *Session) EditNote(ctx context.Context, noteID string, in notes.Input) error {
	videoID, err := s.current()
	if err != nil {
		return err
	}
	ok, err := s.store.Update(ctx, videoID, noteID, in)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoteNotFound
	}
	return nil
}

// DeleteNote removes noteID from the current video.
func (s *Session) DeleteNote(ctx context.Context, noteID string) error {
	videoID, err := s.current()
	if err != nil {
		return err
	}
	ok, err := s.store.Delete(ctx, videoID, noteID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoteNotFound
	}
	return nil
}

// ClearAll removes every note of the current video.
func (s *Session) ClearAll(ctx context.Context) error {
	videoID, err := s.current()
	if err != nil {
		return err
	}
	_, err = s.store.ClearAll(ctx, videoID)
	return err
}

// Notes lists the current video's notes in insertion order.
func (s *Session) Notes(ctx context.Context) ([]notes.Note, error) {
	videoID, err := s.current()
	if err != nil {
		return nil, err
	}
	return s.store.List(ctx, videoID)
}

// Export renders the current video's notes as text, titled with the player's video title.
func (s *Session) Export(ctx context.Context) (string, error) {
	videoID, err := s.current()
	if err != nil {
		return "", err
	}
	title := UnknownVideoTitle
	if info, ok := s.player.VideoInfo(); ok {
		title = info.Title
	}
	return s.store.ExportText(ctx, videoID, title)
}

// JumpToNote seeks the player to the timestamp of noteID.
func (s *Session) JumpToNote(ctx context.Context, noteID string) (notes.Note, error) {
	videoID, err := s.current()
	if err != nil {
		return notes.Note{}, err
	}

	note, found, err := s.store.Find(ctx, videoID, noteID)
	if err != nil {
		return notes.Note{}, err
	}
	if !found {
		return notes.Note{}, ErrNoteNotFound
	}
	if note.Timestamp == nil {
		return note, ErrNoTimestamp
	}
	if !s.player.Ready() {
		return note, ErrPlayerNotReady
	}

	if err := s.player.Seek(*note.Timestamp); err != nil {
		return note, fmt.Errorf("seek to %s: %w", note.TimestampText(), err)
	}
	logger.Log.Debug().Str("note_id", noteID).Int("seconds", *note.Timestamp).Msg("jumped to note")
	return note, nil
}
