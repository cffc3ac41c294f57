// Package notes manages per-video collections of timestamped notes on top of a
// key-value persistence backend.
package notes

import (
	"context"
	"time"

	"github.com/user/vidnotes/pkg/timeutil"
)

// Note is a single annotation on a video. Timestamp is derived from the first
// bracketed timecode in Content and is nil when Content has none.
type Note struct {
	ID        string     `json:"id"`
	VideoID   string     `json:"videoId"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Timestamp *int       `json:"timestamp,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// HasTimestamp reports whether the note is bound to a moment in the video.
func (n Note) HasTimestamp() bool {
	return n.Timestamp != nil
}

// TimestampText returns the encoded timestamp, or "" when the note has none.
func (n Note) TimestampText() string {
	if n.Timestamp == nil {
		return ""
	}
	return timeutil.FormatTimestamp(*n.Timestamp)
}

// Input is the user-editable part of a note.
type Input struct {
	Title   string
	Content string
}

// Persistence stores the ordered note collection of each video.
type Persistence interface {
	// Get returns the notes stored for videoID. found is false when nothing is stored.
	Get(ctx context.Context, videoID string) (notes []Note, found bool, err error)
	// Set replaces the notes stored for videoID, preserving order.
	Set(ctx context.Context, videoID string, notes []Note) error
	// Delete removes everything stored for videoID.
	Delete(ctx context.Context, videoID string) error
	// Videos lists the video ids that have stored notes.
	Videos(ctx context.Context) ([]string, error)
}
