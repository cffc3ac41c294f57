package session

import "errors"

var (
	// ErrInvalidVideoReference is returned when no video id can be extracted from input.
	ErrInvalidVideoReference = errors.New("invalid video URL or id")
	// ErrPlayerNotReady is returned when an operation needs a ready player.
	ErrPlayerNotReady = errors.New("video player not ready")
	// ErrNoVideoLoaded is returned by note operations when no video is current.
	ErrNoVideoLoaded = errors.New("no video loaded")
	// ErrNoteNotFound is returned when a note id is not in the current video's collection.
	ErrNoteNotFound = errors.New("note not found")
	// ErrNoTimestamp is returned when jumping to a note that has no timestamp.
	ErrNoTimestamp = errors.New("note has no timestamp")
)
