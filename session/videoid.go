package session

import (
	"regexp"
	"strings"
)

// VideoIDLength is the length of every valid video id.
const VideoIDLength = 11

// videoURLPatterns are tried in order; the first one that matches decides.
var videoURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`youtube\.com/watch\?v=([^&\n?#]+)`),
	regexp.MustCompile(`youtu\.be/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/embed/([^&\n?#]+)`),
	regexp.MustCompile(`youtube\.com/watch\?.*[?&]v=([^&\n?#]+)`),
}

var bareVideoID = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// ExtractVideoID returns the video id referenced by raw, which may be a watch,
// short, or embed URL, or a bare id.
func ExtractVideoID(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidVideoReference
	}

	for _, pattern := range videoURLPatterns {
		m := pattern.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		if len(m[1]) != VideoIDLength {
			return "", ErrInvalidVideoReference
		}
		return m[1], nil
	}

	if bareVideoID.MatchString(raw) {
		return raw, nil
	}
	return "", ErrInvalidVideoReference
}
