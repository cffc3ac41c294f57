package notes

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/user/vidnotes/logger"
	"github.com/user/vidnotes/pkg/timeutil"
)

// Store implements note CRUD for each video over a Persistence backend.
// Each backend call is treated as atomic; concurrent writers to one video are not
// serialized beyond that.
type Store struct {
	backend Persistence
	now     func() time.Time
	newID   func() string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithClock sets the time source used for createdAt, updatedAt and export headers.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// WithIDGenerator sets the function that assigns new note ids.
func WithIDGenerator(newID func() string) StoreOption {
	return func(s *Store) {
		s.newID = newID
	}
}

// NewStore creates a Store over backend.
func NewStore(backend Persistence, opts ...StoreOption) *Store {
	s := &Store{
		backend: backend,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validate trims the input and rejects empty fields.
func validate(in Input) (Input, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Content = strings.TrimSpace(in.Content)
	if in.Title == "" {
		return in, &ValidationError{Field: "title"}
	}
	if in.Content == "" {
		return in, &ValidationError{Field: "content"}
	}
	return in, nil
}

func deriveTimestamp(content string) *int {
	if ts, ok := timeutil.ExtractFirstTimestamp(content); ok {
		return &ts
	}
	return nil
}

// Add appends a new note to videoID's collection.
func (s *Store) Add(ctx context.Context, videoID string, in Input) (Note, error) {
	in, err := validate(in)
	if err != nil {
		return Note{}, err
	}

	existing, err := s.List(ctx, videoID)
	if err != nil {
		return Note{}, err
	}

	note := Note{
		ID:        s.newID(),
		VideoID:   videoID,
		Title:     in.Title,
		Content:   in.Content,
		Timestamp: deriveTimestamp(in.Content),
		CreatedAt: s.now(),
	}
	if err := s.save(ctx, videoID, append(existing, note)); err != nil {
		return Note{}, err
	}

	logger.Log.Debug().
		Str("video_id", videoID).
		Str("note_id", note.ID).
		Msg("note added")
	return note, nil
}

// Update replaces the title and content of noteID. It returns false without writing
// when the note does not exist.
func (s *Store) Update(ctx context.Context, videoID, noteID string, in Input) (bool, error) {
	in, err := validate(in)
	if err != nil {
		return false, err
	}

	existing, err := s.List(ctx, videoID)
	if err != nil {
		return false, err
	}

	idx := indexOf(existing, noteID)
	if idx < 0 {
		return false, nil
	}

	now := s.now()
	note := existing[idx]
	note.Title = in.Title
	note.Content = in.Content
	note.Timestamp = deriveTimestamp(in.Content)
	note.UpdatedAt = &now
	existing[idx] = note

	if err := s.save(ctx, videoID, existing); err != nil {
		return false, err
	}
	logger.Log.Debug().Str("video_id", videoID).Str("note_id", noteID).Msg("note updated")
	return true, nil
}

// Delete removes noteID. It returns false without writing when the note does not exist.
func (s *Store) Delete(ctx context.Context, videoID, noteID string) (bool, error) {
	existing, err := s.List(ctx, videoID)
	if err != nil {
		return false, err
	}

	idx := indexOf(existing, noteID)
	if idx < 0 {
		return false, nil
	}

	remaining := append(existing[:idx:idx], existing[idx+1:]...)
	if err := s.save(ctx, videoID, remaining); err != nil {
		return false, err
	}
	logger.Log.Debug().Str("video_id", videoID).Str("note_id", noteID).Msg("note deleted")
	return true, nil
}

// ClearAll removes every note of videoID. It reports true even when there was nothing to remove.
func (s *Store) ClearAll(ctx context.Context, videoID string) (bool, error) {
	if err := s.backend.Delete(ctx, videoID); err != nil {
		logger.Log.Error().Err(err).Str("video_id", videoID).Msg("clear notes")
		return false, fmt.Errorf("failed to clear notes for %s: %w", videoID, err)
	}
	logger.Log.Debug().Str("video_id", videoID).Msg("notes cleared")
	return true, nil
}

// List returns the notes of videoID in insertion order. The result is never nil.
func (s *Store) List(ctx context.Context, videoID string) ([]Note, error) {
	stored, found, err := s.backend.Get(ctx, videoID)
	if err != nil {
		logger.Log.Error().Err(err).Str("video_id", videoID).Msg("load notes")
		return nil, fmt.Errorf("failed to load notes for %s: %w", videoID, err)
	}
	if !found || stored == nil {
		return []Note{}, nil
	}
	return stored, nil
}

// Find returns noteID from videoID's collection.
func (s *Store) Find(ctx context.Context, videoID, noteID string) (Note, bool, error) {
	existing, err := s.List(ctx, videoID)
	if err != nil {
		return Note{}, false, err
	}
	idx := indexOf(existing, noteID)
	if idx < 0 {
		return Note{}, false, nil
	}
	return existing[idx], true, nil
}

// Videos lists the ids of videos that have notes.
func (s *Store) Videos(ctx context.Context) ([]string, error) {
	ids, err := s.backend.Videos(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list videos: %w", err)
	}
	return ids, nil
}

func (s *Store) save(ctx context.Context, videoID string, notes []Note) error {
	if err := s.backend.Set(ctx, videoID, notes); err != nil {
		logger.Log.Error().Err(err).Str("video_id", videoID).Msg("save notes")
		return fmt.Errorf("failed to save notes for %s: %w", videoID, err)
	}
	return nil
}

func indexOf(notes []Note, noteID string) int {
	for i, n := range notes {
		if n.ID == noteID {
			return i
		}
	}
	return -1
}
