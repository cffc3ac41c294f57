package components

import (
	"github.com/user/vidnotes/player"
	"github.com/user/vidnotes/tui/styles"
)

// VideoPanel renders the loaded video's title, id and duration. Before the player is
// ready it shows the adapter state instead.
func VideoPanel(info player.VideoInfo, ready bool, state player.State, width int) string {
	label := styles.SecondaryText.Bold(true)

	var lines []string
	if !ready {
		msg := "Press o to open a video"
		switch state {
		case player.Loading:
			msg = "Loading player..."
		case player.Error:
			msg = "Player failed to load"
		}
		lines = append(lines, styles.Placeholder.Render(" "+msg))
		return RenderInfoBox("Video", lines, width, false)
	}

	lines = append(lines,
		label.Render(" Title:    ")+styles.PrimaryText.Render(info.Title),
		label.Render(" ID:       ")+styles.PrimaryText.Render(info.VideoID),
		label.Render(" Duration: ")+styles.Timestamp.Render(info.DurationText()),
	)
	return RenderInfoBox("Video", lines, width, false)
}
