// Package components provides reusable TUI components.
package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/user/vidnotes/pkg/timeutil"
	"github.com/user/vidnotes/player"
	"github.com/user/vidnotes/tui/styles"
)

// StatusBarState holds the player status shown in the status bar.
type StatusBarState struct {
	// State is the adapter lifecycle state
	State player.State
	// Playback is the last playback state code
	Playback int
	// VideoID is the current video, empty when none is open
	VideoID string
	// TimePos is the current playback position in seconds
	TimePos int
	// Duration is the video duration in seconds
	Duration int
	// NoteCount is the number of notes on the current video
	NoteCount int
}

// StatusBar renders the status bar: playback icon, time and duration on the left,
// player state and note count on the right.
func StatusBar(state StatusBarState, width int) string {
	left := fmt.Sprintf(" %s %s / %s",
		playbackIcon(state.Playback),
		timeutil.FormatTimestamp(state.TimePos),
		timeutil.FormatTimestamp(state.Duration))

	video := state.VideoID
	if video == "" {
		video = "no video"
	}
	right := fmt.Sprintf("%s  %s  %d notes ",
		video,
		styles.StateLabel.Render(state.State.String()),
		state.NoteCount)

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return styles.Bar.
		Bold(true).
		Width(width).
		Render(left + strings.Repeat(" ", padding) + right)
}

func playbackIcon(code int) string {
	switch code {
	case player.PlaybackPlaying:
		return "▶"
	case player.PlaybackPaused:
		return "⏸"
	case player.PlaybackBuffering:
		return "…"
	case player.PlaybackEnded:
		return "■"
	default:
		return "·"
	}
}
