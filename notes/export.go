package notes

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	exportRule = "=================================================="
	noteRule   = "--------------------------------------------------"
)

// ExportFilename returns the download name for an export of videoID taken at at.
func ExportFilename(videoID string, at time.Time) string {
	return fmt.Sprintf("youtube-notes-%s-%d.txt", videoID, at.UnixMilli())
}

// ExportText renders every note of videoID as plain text, in list order.
func (s *Store) ExportText(ctx context.Context, videoID, videoTitle string) (string, error) {
	notes, err := s.List(ctx, videoID)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Video Notes: %s\n", videoTitle)
	fmt.Fprintf(&b, "Video ID: %s\n", videoID)
	fmt.Fprintf(&b, "Exported: %s\n", s.now().Format(time.RFC3339))
	fmt.Fprintf(&b, "Total Notes: %d\n", len(notes))
	b.WriteString(exportRule + "\n\n")

	for i, n := range notes {
		fmt.Fprintf(&b, "%d. %s\n", i+1, n.Title)
		if n.Timestamp != nil {
			fmt.Fprintf(&b, "Timestamp: %s\n", n.TimestampText())
		}
		fmt.Fprintf(&b, "Created: %s\n", n.CreatedAt.Format(time.RFC3339))
		if n.UpdatedAt != nil {
			fmt.Fprintf(&b, "Updated: %s\n", n.UpdatedAt.Format(time.RFC3339))
		}
		b.WriteString("\n")
		b.WriteString(n.Content)
		b.WriteString("\n")
		b.WriteString(noteRule + "\n\n")
	}

	return b.String(), nil
}
